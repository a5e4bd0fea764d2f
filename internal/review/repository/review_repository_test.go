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

func TestReviewRepository_ListByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReviewRepository(db)
	ctx := context.Background()

	email := "anna@example.com"
	first := &domain.Review{Name: "Anna", Text: "Great bread", Email: &email, Status: domain.ReviewStatusPending}
	second := &domain.Review{Name: "Boris", Text: "Slow delivery", Status: domain.ReviewStatusPending}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.ReviewStatusApproved))

	approved, err := repo.List(ctx, domain.ReviewStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Anna", approved[0].Name)
	require.NotNil(t, approved[0].Email)
	assert.Equal(t, email, *approved[0].Email)
	assert.Nil(t, approved[0].Phone)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestReviewRepository_MissingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReviewRepository(db)
	ctx := context.Background()

	err := repo.UpdateStatus(ctx, 999, domain.ReviewStatusApproved)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Delete(ctx, 999)
	_, ok = errors.IsNotFoundError(err)
	assert.True(t, ok)
}
