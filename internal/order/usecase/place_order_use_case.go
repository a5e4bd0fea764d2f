package usecase

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
	"shopadmin/internal/dto"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/infrastructure/metrics"
	"shopadmin/internal/infrastructure/mysql"
)

type OrderPlacementService interface {
	PlaceOrder(ctx context.Context, draft dto.OrderDraft) (uint, error)
}

type OrderReader interface {
	Get(ctx context.Context, id uint) (*domain.Order, error)
}

// Backoff before attempt 1, 2, 3 and later.
var backoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

type PlaceOrderUseCase struct {
	placementSvc     OrderPlacementService
	orders           OrderReader
	logger           *zap.Logger
	maxRetryAttempts int
	sleep            func(ctx context.Context, d time.Duration) error
}

func NewPlaceOrderUseCase(
	placementSvc OrderPlacementService,
	orders OrderReader,
	logger *zap.Logger,
	maxRetryAttempts int,
) *PlaceOrderUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &PlaceOrderUseCase{
		placementSvc:     placementSvc,
		orders:           orders,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		sleep:            sleepCtx,
	}
}

func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, draft dto.OrderDraft) (*domain.Order, error) {
	uc.logger.Info("order placement started", zap.Int("itemCount", len(draft.Items)))

	// Lock products in ascending id order so concurrent orders cannot deadlock
	// on each other's share locks.
	items := append([]dto.PlacementItem(nil), draft.Items...)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	draft.Items = items

	orderID, err := uc.placeWithRetry(ctx, draft)
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	return uc.orders.Get(ctx, orderID)
}

func (uc *PlaceOrderUseCase) placeWithRetry(ctx context.Context, draft dto.OrderDraft) (uint, error) {
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		if attempt > 1 {
			if err := uc.sleep(ctx, backoff(attempt)); err != nil {
				return 0, err
			}
		}

		orderID, err := uc.placementSvc.PlaceOrder(ctx, draft)
		if err == nil {
			return orderID, nil
		}

		if !mysql.IsRetryable(err) {
			return 0, err
		}

		metrics.OrderRetries.Inc()
		uc.logger.Warn("deadlock detected, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
			zap.Error(err),
		)
	}

	return 0, apperrors.NewDeadlockError("max retries exceeded")
}

// backoff returns the wait before the given attempt with ±20% jitter.
func backoff(attempt int) time.Duration {
	i := attempt - 1
	if i >= len(backoffs) {
		i = len(backoffs) - 1
	}
	base := backoffs[i]
	if base == 0 {
		return 0
	}
	jitter := time.Duration((rand.Float64()*0.4 - 0.2) * float64(base))
	return base + jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
