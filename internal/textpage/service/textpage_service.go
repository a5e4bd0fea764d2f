package service

import (
	"context"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
)

type TextPageRepository interface {
	FindLatest(ctx context.Context) (*domain.TextPage, error)
	FindByID(ctx context.Context, id int) (*domain.TextPage, error)
	Create(ctx context.Context, p *domain.TextPage) error
	Update(ctx context.Context, p *domain.TextPage) error
	Delete(ctx context.Context, id int) error
}

type TextPageService struct {
	repo   TextPageRepository
	logger *zap.Logger
}

func NewTextPageService(repo TextPageRepository, logger *zap.Logger) *TextPageService {
	return &TextPageService{repo: repo, logger: logger}
}

func (s *TextPageService) Get(ctx context.Context) (*domain.TextPage, error) {
	return s.repo.FindLatest(ctx)
}

func (s *TextPageService) Create(ctx context.Context, title string, text domain.Blocks) (*domain.TextPage, error) {
	p := &domain.TextPage{Title: title, Text: text}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("text page created", zap.Int("pageId", p.ID))
	return s.repo.FindByID(ctx, p.ID)
}

func (s *TextPageService) Update(ctx context.Context, id int, title string, text domain.Blocks) (*domain.TextPage, error) {
	if err := s.repo.Update(ctx, &domain.TextPage{ID: id, Title: title, Text: text}); err != nil {
		return nil, err
	}
	s.logger.Info("text page updated", zap.Int("pageId", id))
	return s.repo.FindByID(ctx, id)
}

func (s *TextPageService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("text page deleted", zap.Int("pageId", id))
	return nil
}
