package service

import (
	"context"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	List(ctx context.Context, status string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type OrderItemReader interface {
	FindByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderItem, error)
}

// OrderService serves the admin side of orders.
type OrderService struct {
	orderRepo OrderRepository
	itemRepo  OrderItemReader
	logger    *zap.Logger
}

func NewOrderService(orderRepo OrderRepository, itemRepo OrderItemReader, logger *zap.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, itemRepo: itemRepo, logger: logger}
}

func (s *OrderService) List(ctx context.Context, status string) ([]domain.Order, error) {
	orders, err := s.orderRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := s.itemRepo.FindByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if lines, ok := items[orders[i].ID]; ok {
			orders[i].Items = lines
		}
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByOrderIDs(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	if lines, ok := items[id]; ok {
		order.Items = lines
	}
	return order, nil
}

// UpdateStatus sets the status unconditionally. Concurrent updates resolve
// as last write wins.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error) {
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.Info("order status changed", zap.Uint("orderId", id), zap.String("status", status))
	return s.Get(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.Uint("orderId", id))
	return nil
}
