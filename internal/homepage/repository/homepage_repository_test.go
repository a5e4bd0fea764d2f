package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/domain"
	"shopadmin/internal/errors"
	"shopadmin/internal/testutil"
)

func TestHomepageRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLHomepageRepository(db)
	ctx := context.Background()

	h := &domain.Homepage{
		Title:           "Welcome",
		Description:     "Fresh bread daily",
		Images:          domain.Images{{ID: "a", URL: "/uploads/homepage/a.png", Key: "homepage/a.png"}},
		PopularProducts: domain.IDList{3, 1},
	}
	require.NoError(t, repo.Create(ctx, h))

	latest, err := repo.FindLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, h.ID, latest.ID)
	assert.Equal(t, domain.IDList{3, 1}, latest.PopularProducts)
	require.Len(t, latest.Images, 1)
	assert.Equal(t, "homepage/a.png", latest.Images[0].Key)

	h.Images = domain.Images{}
	h.PopularProducts = domain.IDList{}
	require.NoError(t, repo.Update(ctx, h))

	got, err := repo.FindByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.PopularProducts)

	require.NoError(t, repo.Delete(ctx, h.ID))
	_, err = repo.FindLatest(ctx)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
