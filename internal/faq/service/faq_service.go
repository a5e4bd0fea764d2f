package service

import (
	"context"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
)

type FAQRepository interface {
	List(ctx context.Context) ([]domain.FAQ, error)
	FindByID(ctx context.Context, id int) (*domain.FAQ, error)
	Create(ctx context.Context, f *domain.FAQ) error
	Update(ctx context.Context, f *domain.FAQ) error
	Delete(ctx context.Context, id int) error
}

type FAQService struct {
	repo   FAQRepository
	logger *zap.Logger
}

func NewFAQService(repo FAQRepository, logger *zap.Logger) *FAQService {
	return &FAQService{repo: repo, logger: logger}
}

func (s *FAQService) List(ctx context.Context) ([]domain.FAQ, error) {
	return s.repo.List(ctx)
}

func (s *FAQService) Get(ctx context.Context, id int) (*domain.FAQ, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FAQService) Create(ctx context.Context, title string, description domain.Blocks) (*domain.FAQ, error) {
	f := &domain.FAQ{Title: title, Description: description}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("faq created", zap.Int("faqId", f.ID))
	return s.repo.FindByID(ctx, f.ID)
}

// Update replaces title and description. The row must exist.
func (s *FAQService) Update(ctx context.Context, id int, title string, description domain.Blocks) (*domain.FAQ, error) {
	f := &domain.FAQ{ID: id, Title: title, Description: description}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("faq updated", zap.Int("faqId", id))
	return s.repo.FindByID(ctx, id)
}

func (s *FAQService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("faq deleted", zap.Int("faqId", id))
	return nil
}
