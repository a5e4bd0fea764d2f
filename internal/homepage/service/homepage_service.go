package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/upload"
)

const imagePrefix = "homepage"

type HomepageRepository interface {
	FindLatest(ctx context.Context) (*domain.Homepage, error)
	FindByID(ctx context.Context, id int) (*domain.Homepage, error)
	Create(ctx context.Context, h *domain.Homepage) error
	Update(ctx context.Context, h *domain.Homepage) error
	Delete(ctx context.Context, id int) error
}

type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error)
}

type ImageStore interface {
	Store(ctx context.Context, prefix string, files []*upload.File) (domain.Images, error)
	Discard(ctx context.Context, images ...domain.Image)
}

// HomepageInput is a validated create or update. On update, when
// RetainImages is set only the current images named in ExistingImages stay;
// otherwise all of them are kept. NewImages are appended.
type HomepageInput struct {
	Title           string
	Description     string
	PopularProducts []int
	RetainImages    bool
	ExistingImages  []string
	NewImages       []*upload.File
}

// HomepageView is the homepage with its popular products resolved.
type HomepageView struct {
	domain.Homepage
	Products []domain.Product `json:"products"`
}

type HomepageService struct {
	repo     HomepageRepository
	products ProductLookup
	images   ImageStore
	logger   *zap.Logger
}

func NewHomepageService(repo HomepageRepository, products ProductLookup, images ImageStore, logger *zap.Logger) *HomepageService {
	return &HomepageService{repo: repo, products: products, images: images, logger: logger}
}

func (s *HomepageService) Get(ctx context.Context) (*HomepageView, error) {
	h, err := s.repo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, h)
}

func (s *HomepageService) Create(ctx context.Context, in HomepageInput) (*HomepageView, error) {
	popular, err := s.checkProducts(ctx, in.PopularProducts)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.Store(ctx, imagePrefix, in.NewImages)
	if err != nil {
		return nil, err
	}

	h := &domain.Homepage{
		Title:           in.Title,
		Description:     in.Description,
		Images:          stored,
		PopularProducts: popular,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.images.Discard(ctx, stored...)
		return nil, err
	}

	s.logger.Info("homepage created", zap.Int("homepageId", h.ID), zap.Int("images", len(stored)))
	return s.reload(ctx, h.ID)
}

func (s *HomepageService) Update(ctx context.Context, id int, in HomepageInput) (*HomepageView, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	popular, err := s.checkProducts(ctx, in.PopularProducts)
	if err != nil {
		return nil, err
	}

	kept, removed := h.Images, domain.Images(nil)
	if in.RetainImages {
		kept, removed = upload.Retain(h.Images, in.ExistingImages)
	}

	stored, err := s.images.Store(ctx, imagePrefix, in.NewImages)
	if err != nil {
		return nil, err
	}

	h.Title = in.Title
	h.Description = in.Description
	h.PopularProducts = popular
	h.Images = append(append(domain.Images{}, kept...), stored...)

	if err := s.repo.Update(ctx, h); err != nil {
		s.images.Discard(ctx, stored...)
		return nil, err
	}
	s.images.Discard(ctx, removed...)

	s.logger.Info("homepage updated",
		zap.Int("homepageId", id),
		zap.Int("added", len(stored)),
		zap.Int("removed", len(removed)),
	)
	return s.reload(ctx, id)
}

func (s *HomepageService) Delete(ctx context.Context, id int) error {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.images.Discard(ctx, h.Images...)

	s.logger.Info("homepage deleted", zap.Int("homepageId", id))
	return nil
}

func (s *HomepageService) reload(ctx context.Context, id int) (*HomepageView, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, h)
}

// view resolves popular products in list order. Products deleted since the
// homepage was saved are skipped.
func (s *HomepageService) view(ctx context.Context, h *domain.Homepage) (*HomepageView, error) {
	found, err := s.products.FindByIDs(ctx, h.PopularProducts)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := []domain.Product{}
	for _, id := range h.PopularProducts {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return &HomepageView{Homepage: *h, Products: products}, nil
}

// checkProducts drops repeated ids and rejects ids with no product.
func (s *HomepageService) checkProducts(ctx context.Context, ids []int) (domain.IDList, error) {
	unique := domain.IDList{}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return unique, nil
	}

	found, err := s.products.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	exists := make(map[int]bool, len(found))
	for _, p := range found {
		exists[p.ID] = true
	}

	var missing []string
	for _, id := range unique {
		if !exists[id] {
			missing = append(missing, strconv.Itoa(id))
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "popularProducts",
			Message: fmt.Sprintf("unknown product ids: %s", strings.Join(missing, ", ")),
		})
	}
	return unique, nil
}
