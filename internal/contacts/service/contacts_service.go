package service

import (
	"context"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
)

type ContactRepository interface {
	FindLatest(ctx context.Context) (*domain.Contact, error)
	FindByID(ctx context.Context, id int) (*domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) error
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id int) error
}

type ContactService struct {
	repo   ContactRepository
	logger *zap.Logger
}

func NewContactService(repo ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

func (s *ContactService) Get(ctx context.Context) (*domain.Contact, error) {
	return s.repo.FindLatest(ctx)
}

func (s *ContactService) Create(ctx context.Context, fields domain.ContactFields) (*domain.Contact, error) {
	c := &domain.Contact{Fields: fields}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("contacts created", zap.Int("contactsId", c.ID), zap.Int("fields", len(fields)))
	return s.repo.FindByID(ctx, c.ID)
}

// Update replaces every field of the row.
func (s *ContactService) Update(ctx context.Context, id int, fields domain.ContactFields) (*domain.Contact, error) {
	if err := s.repo.Update(ctx, &domain.Contact{ID: id, Fields: fields}); err != nil {
		return nil, err
	}
	s.logger.Info("contacts updated", zap.Int("contactsId", id), zap.Int("fields", len(fields)))
	return s.repo.FindByID(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("contacts deleted", zap.Int("contactsId", id))
	return nil
}
