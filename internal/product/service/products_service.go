package service

import (
	"context"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
	"shopadmin/internal/product/repository"
	"shopadmin/internal/upload"
)

const imagePrefix = "products"

type ProductRepository interface {
	List(ctx context.Context, filter repository.ListFilter) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int) error
}

type ImageStore interface {
	Store(ctx context.Context, prefix string, files []*upload.File) (domain.Images, error)
	Discard(ctx context.Context, images ...domain.Image)
}

// ProductInput carries validated form values. Image replaces the current
// image; DeleteImage clears it when no new image is sent.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	IsActive    bool
	Image       *upload.File
	DeleteImage bool
}

type ProductService struct {
	repo   ProductRepository
	images ImageStore
	logger *zap.Logger
}

func NewProductService(repo ProductRepository, images ImageStore, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, images: images, logger: logger}
}

func (s *ProductService) List(ctx context.Context, filter repository.ListFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsActive:    in.IsActive,
	}

	var stored domain.Images
	if in.Image != nil {
		var err error
		stored, err = s.images.Store(ctx, imagePrefix, []*upload.File{in.Image})
		if err != nil {
			return nil, err
		}
		p.Image = domain.NullImage{Image: stored[0], Valid: true}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.images.Discard(ctx, stored...)
		return nil, err
	}

	s.logger.Info("product created", zap.Int("productId", p.ID))
	return s.repo.FindByID(ctx, p.ID)
}

func (s *ProductService) Update(ctx context.Context, id int, in ProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.IsActive = in.IsActive

	var stored, replaced domain.Images
	if p.Image.Valid && (in.Image != nil || in.DeleteImage) {
		replaced = domain.Images{p.Image.Image}
		p.Image = domain.NullImage{}
	}
	if in.Image != nil {
		stored, err = s.images.Store(ctx, imagePrefix, []*upload.File{in.Image})
		if err != nil {
			return nil, err
		}
		p.Image = domain.NullImage{Image: stored[0], Valid: true}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.images.Discard(ctx, stored...)
		return nil, err
	}
	s.images.Discard(ctx, replaced...)

	s.logger.Info("product updated", zap.Int("productId", id))
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if p.Image.Valid {
		s.images.Discard(ctx, p.Image.Image)
	}

	s.logger.Info("product deleted", zap.Int("productId", id))
	return nil
}
