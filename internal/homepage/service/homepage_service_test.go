package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/upload"
)

type mockHomepageRepository struct {
	FindLatestFunc func(ctx context.Context) (*domain.Homepage, error)
	FindByIDFunc   func(ctx context.Context, id int) (*domain.Homepage, error)
	CreateFunc     func(ctx context.Context, h *domain.Homepage) error
	UpdateFunc     func(ctx context.Context, h *domain.Homepage) error
	DeleteFunc     func(ctx context.Context, id int) error
}

func (m *mockHomepageRepository) FindLatest(ctx context.Context) (*domain.Homepage, error) {
	return m.FindLatestFunc(ctx)
}

func (m *mockHomepageRepository) FindByID(ctx context.Context, id int) (*domain.Homepage, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockHomepageRepository) Create(ctx context.Context, h *domain.Homepage) error {
	return m.CreateFunc(ctx, h)
}

func (m *mockHomepageRepository) Update(ctx context.Context, h *domain.Homepage) error {
	return m.UpdateFunc(ctx, h)
}

func (m *mockHomepageRepository) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

// catalog is a fixed set of products keyed by id.
type catalog map[int]domain.Product

func (c catalog) FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := c[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockImageStore struct {
	stored    int
	discarded []domain.Image
}

func (m *mockImageStore) Store(ctx context.Context, prefix string, files []*upload.File) (domain.Images, error) {
	out := domain.Images{}
	for _, f := range files {
		m.stored++
		out = append(out, domain.Image{ID: "new-" + f.Name, URL: "/uploads/" + f.Name, Key: prefix + "/" + f.Name})
	}
	return out, nil
}

func (m *mockImageStore) Discard(ctx context.Context, images ...domain.Image) {
	m.discarded = append(m.discarded, images...)
}

var products = catalog{
	1: {ID: 1, Name: "Bagel", IsActive: true},
	2: {ID: 2, Name: "Croissant", IsActive: true},
	3: {ID: 3, Name: "Baguette", IsActive: true},
}

func storedHomepage() *domain.Homepage {
	return &domain.Homepage{
		ID:    1,
		Title: "Welcome",
		Images: domain.Images{
			{ID: "a", URL: "/uploads/a.png", Key: "homepage/a.png"},
			{ID: "b", URL: "/uploads/b.png", Key: "homepage/b.png"},
			{ID: "c", URL: "/uploads/c.png", Key: "homepage/c.png"},
		},
		PopularProducts: domain.IDList{3, 1},
	}
}

func memoryRepo() *mockHomepageRepository {
	current := storedHomepage()
	return &mockHomepageRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Homepage, error) {
			cp := *current
			cp.Images = append(domain.Images{}, current.Images...)
			return &cp, nil
		},
		UpdateFunc: func(ctx context.Context, h *domain.Homepage) error {
			current = h
			return nil
		},
	}
}

func TestHomepageService_GetResolvesProductsInOrder(t *testing.T) {
	repo := &mockHomepageRepository{
		FindLatestFunc: func(ctx context.Context) (*domain.Homepage, error) {
			return &domain.Homepage{ID: 1, PopularProducts: domain.IDList{3, 99, 1}}, nil
		},
	}
	svc := NewHomepageService(repo, products, &mockImageStore{}, zap.NewNop())

	view, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Products, 2)
	assert.Equal(t, "Baguette", view.Products[0].Name)
	assert.Equal(t, "Bagel", view.Products[1].Name)
	assert.Equal(t, domain.IDList{3, 99, 1}, view.PopularProducts)
}

func TestHomepageService_UpdateRetainsExistingImages(t *testing.T) {
	images := &mockImageStore{}
	svc := NewHomepageService(memoryRepo(), products, images, zap.NewNop())

	view, err := svc.Update(context.Background(), 1, HomepageInput{
		Title:           "Welcome back",
		PopularProducts: []int{2, 2, 1},
		RetainImages:    true,
		ExistingImages:  []string{"/uploads/c.png", "a"},
		NewImages:       []*upload.File{{Name: "d.png"}},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(view.Images))
	for _, img := range view.Images {
		ids = append(ids, img.ID)
	}
	assert.Equal(t, []string{"c", "a", "new-d.png"}, ids)
	assert.Equal(t, domain.IDList{2, 1}, view.PopularProducts)
	require.Len(t, images.discarded, 1)
	assert.Equal(t, "homepage/b.png", images.discarded[0].Key)
}

func TestHomepageService_UpdateWithoutExistingImagesKeepsAll(t *testing.T) {
	images := &mockImageStore{}
	svc := NewHomepageService(memoryRepo(), products, images, zap.NewNop())

	view, err := svc.Update(context.Background(), 1, HomepageInput{
		Title:     "Welcome",
		NewImages: []*upload.File{{Name: "d.png"}},
	})
	require.NoError(t, err)
	assert.Len(t, view.Images, 4)
	assert.Empty(t, images.discarded)
}

func TestHomepageService_UnknownProduct(t *testing.T) {
	images := &mockImageStore{}
	repo := &mockHomepageRepository{
		CreateFunc: func(ctx context.Context, h *domain.Homepage) error {
			t.Fatal("create must not run")
			return nil
		},
	}
	svc := NewHomepageService(repo, products, images, zap.NewNop())

	_, err := svc.Create(context.Background(), HomepageInput{
		Title:           "Welcome",
		PopularProducts: []int{1, 42, 77},
		NewImages:       []*upload.File{{Name: "x.png"}},
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "popularProducts", ve.Details[0].Field)
	assert.Contains(t, ve.Details[0].Message, "42, 77")
	assert.Zero(t, images.stored)
}
