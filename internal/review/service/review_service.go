package service

import (
	"context"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
	"shopadmin/internal/infrastructure/metrics"
)

type ReviewRepository interface {
	List(ctx context.Context, status string) ([]domain.Review, error)
	FindByID(ctx context.Context, id int) (*domain.Review, error)
	Create(ctx context.Context, rv *domain.Review) error
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
}

type ReviewInput struct {
	Name  string
	Text  string
	Email *string
	Phone *string
}

type ReviewService struct {
	repo   ReviewRepository
	logger *zap.Logger
}

func NewReviewService(repo ReviewRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger}
}

// Submit stores a storefront review. New reviews always wait for moderation.
func (s *ReviewService) Submit(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	rv := &domain.Review{
		Name:   in.Name,
		Text:   in.Text,
		Email:  in.Email,
		Phone:  in.Phone,
		Status: domain.ReviewStatusPending,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	metrics.ReviewsSubmitted.Inc()

	s.logger.Info("review submitted", zap.Int("reviewId", rv.ID))
	return s.repo.FindByID(ctx, rv.ID)
}

func (s *ReviewService) ListApproved(ctx context.Context) ([]domain.Review, error) {
	return s.repo.List(ctx, domain.ReviewStatusApproved)
}

func (s *ReviewService) ListAll(ctx context.Context, status string) ([]domain.Review, error) {
	return s.repo.List(ctx, status)
}

func (s *ReviewService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Review, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.Info("review status changed", zap.Int("reviewId", id), zap.String("status", status))
	return s.repo.FindByID(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("review deleted", zap.Int("reviewId", id))
	return nil
}
