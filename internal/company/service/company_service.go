package service

import (
	"context"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
	"shopadmin/internal/upload"
)

const imagePrefix = "company"

type CompanyRepository interface {
	FindLatest(ctx context.Context) (*domain.Company, error)
	FindByID(ctx context.Context, id int) (*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id int) error
}

type ImageStore interface {
	Store(ctx context.Context, prefix string, files []*upload.File) (domain.Images, error)
	Discard(ctx context.Context, images ...domain.Image)
}

// CompanyInput is a validated create or update. DeletedImages lists ids or
// urls of current images to drop; NewImages are appended after the kept ones.
type CompanyInput struct {
	Title         string
	Description   domain.Blocks
	DeletedImages []string
	NewImages     []*upload.File
}

type CompanyService struct {
	repo   CompanyRepository
	images ImageStore
	logger *zap.Logger
}

func NewCompanyService(repo CompanyRepository, images ImageStore, logger *zap.Logger) *CompanyService {
	return &CompanyService{repo: repo, images: images, logger: logger}
}

func (s *CompanyService) Get(ctx context.Context) (*domain.Company, error) {
	return s.repo.FindLatest(ctx)
}

func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (*domain.Company, error) {
	stored, err := s.images.Store(ctx, imagePrefix, in.NewImages)
	if err != nil {
		return nil, err
	}

	c := &domain.Company{Title: in.Title, Description: in.Description, Images: stored}
	if err := s.repo.Create(ctx, c); err != nil {
		s.images.Discard(ctx, stored...)
		return nil, err
	}

	s.logger.Info("company info created", zap.Int("companyId", c.ID), zap.Int("images", len(stored)))
	return s.repo.FindByID(ctx, c.ID)
}

func (s *CompanyService) Update(ctx context.Context, id int, in CompanyInput) (*domain.Company, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kept, removed := upload.Remove(c.Images, in.DeletedImages)
	stored, err := s.images.Store(ctx, imagePrefix, in.NewImages)
	if err != nil {
		return nil, err
	}

	c.Title = in.Title
	c.Description = in.Description
	c.Images = append(kept, stored...)

	if err := s.repo.Update(ctx, c); err != nil {
		s.images.Discard(ctx, stored...)
		return nil, err
	}
	s.images.Discard(ctx, removed...)

	s.logger.Info("company info updated",
		zap.Int("companyId", id),
		zap.Int("added", len(stored)),
		zap.Int("removed", len(removed)),
	)
	return s.repo.FindByID(ctx, id)
}

func (s *CompanyService) Delete(ctx context.Context, id int) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.images.Discard(ctx, c.Images...)

	s.logger.Info("company info deleted", zap.Int("companyId", id))
	return nil
}
