package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"shopadmin/internal/domain"
)

type mockTextPageRepository struct {
	FindLatestFunc func(ctx context.Context) (*domain.TextPage, error)
	FindByIDFunc   func(ctx context.Context, id int) (*domain.TextPage, error)
	CreateFunc     func(ctx context.Context, p *domain.TextPage) error
	UpdateFunc     func(ctx context.Context, p *domain.TextPage) error
	DeleteFunc     func(ctx context.Context, id int) error
}

func (m *mockTextPageRepository) FindLatest(ctx context.Context) (*domain.TextPage, error) {
	return m.FindLatestFunc(ctx)
}

func (m *mockTextPageRepository) FindByID(ctx context.Context, id int) (*domain.TextPage, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockTextPageRepository) Create(ctx context.Context, p *domain.TextPage) error {
	return m.CreateFunc(ctx, p)
}

func (m *mockTextPageRepository) Update(ctx context.Context, p *domain.TextPage) error {
	return m.UpdateFunc(ctx, p)
}

func (m *mockTextPageRepository) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func TestTextPageService_UpdateLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var saved *domain.TextPage
	repo := &mockTextPageRepository{
		UpdateFunc: func(ctx context.Context, p *domain.TextPage) error {
			saved = p
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id int) (*domain.TextPage, error) {
			return saved, nil
		},
	}
	svc := NewTextPageService(repo, zap.New(core))

	p, err := svc.Update(context.Background(), 4, "Payment", domain.Blocks{"Card"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.ID)
	assert.Equal(t, 1, logs.FilterMessage("text page updated").Len())
}

func TestTextPageService_DeleteError(t *testing.T) {
	repo := &mockTextPageRepository{
		DeleteFunc: func(ctx context.Context, id int) error {
			return errors.New("connection reset")
		},
	}
	svc := NewTextPageService(repo, zap.NewNop())

	assert.Error(t, svc.Delete(context.Background(), 1))
}
