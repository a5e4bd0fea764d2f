package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
	"shopadmin/internal/dto"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/infrastructure/mysql"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error)
}

type ProductRepository interface {
	FindByIDForShare(ctx context.Context, tx mysql.DBTX, id int) (*domain.Product, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx mysql.DBTX, item domain.OrderItem) (uint, error)
}

type OrderWriter interface {
	Insert(ctx context.Context, tx mysql.DBTX, order *domain.Order) (uint, error)
}

// PlacementService writes one order and its lines in a single transaction,
// pricing every line from the product row it locks.
type PlacementService struct {
	db            TransactionManager
	productRepo   ProductRepository
	orderItemRepo OrderItemRepository
	orderRepo     OrderWriter
	logger        *zap.Logger
	txTimeout     time.Duration
}

func NewPlacementService(
	db TransactionManager,
	productRepo ProductRepository,
	orderItemRepo OrderItemRepository,
	orderRepo OrderWriter,
	logger *zap.Logger,
	txTimeout time.Duration,
) *PlacementService {
	return &PlacementService{
		db:            db,
		productRepo:   productRepo,
		orderItemRepo: orderItemRepo,
		orderRepo:     orderRepo,
		logger:        logger,
		txTimeout:     txTimeout,
	}
}

// PlaceOrder runs one attempt. Callers retry on deadlocks.
func (s *PlacementService) PlaceOrder(ctx context.Context, draft dto.OrderDraft) (uint, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}
	// MySQL ignores rollback after commit.
	defer tx.Rollback()

	lines, err := s.priceItems(txCtx, tx, draft.Items)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, line := range lines {
		total += line.Subtotal()
	}
	total = math.Round(total*100) / 100

	orderID, err := s.orderRepo.Insert(txCtx, tx, &domain.Order{
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		CustomerEmail: draft.CustomerEmail,
		Address:       draft.Address,
		Comment:       draft.Comment,
		Status:        domain.OrderStatusPending,
		TotalPrice:    total,
	})
	if err != nil {
		s.logger.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	for _, line := range lines {
		line.OrderID = orderID
		if _, err := s.orderItemRepo.Insert(txCtx, tx, line); err != nil {
			s.logger.Error("failed to insert order item", zap.Uint("orderId", orderID), zap.Int("productId", line.ProductID), zap.Error(err))
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("transaction committed", zap.Uint("orderId", orderID), zap.Int("itemCount", len(lines)), zap.Float64("totalPrice", total))
	return orderID, nil
}

// priceItems locks each product and snapshots its name and price. Missing
// and inactive products are collected into one validation error.
func (s *PlacementService) priceItems(ctx context.Context, tx mysql.DBTX, items []dto.PlacementItem) ([]domain.OrderItem, error) {
	lines := make([]domain.OrderItem, 0, len(items))
	var details []apperrors.ValidationDetail

	for _, item := range items {
		field := fmt.Sprintf("items[%d].productId", item.Index)

		product, err := s.productRepo.FindByIDForShare(ctx, tx, item.ProductID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				details = append(details, apperrors.ValidationDetail{
					Field:   field,
					Message: fmt.Sprintf("product %d does not exist", item.ProductID),
				})
				continue
			}
			return nil, err
		}

		if !product.IsActive {
			details = append(details, apperrors.ValidationDetail{
				Field:   field,
				Message: fmt.Sprintf("product %d is not available", item.ProductID),
			})
			continue
		}

		lines = append(lines, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
		})
	}

	if len(details) > 0 {
		s.logger.Warn("order rejected", zap.Int("invalidItems", len(details)))
		return nil, apperrors.NewValidationError("validation failed", details...)
	}
	return lines, nil
}
