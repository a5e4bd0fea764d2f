package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/domain"
	"shopadmin/internal/errors"
	"shopadmin/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}

// Integration Tests

func TestProductRepository_CreateAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	p := &domain.Product{
		Name:        "Ceramic mug",
		Description: "350 ml",
		Price:       12.5,
		Image:       domain.NullImage{Image: domain.Image{ID: "img-1", URL: "/uploads/products/a.png", Key: "products/a.png"}, Valid: true},
		IsActive:    true,
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ceramic mug", found.Name)
	assert.Equal(t, 12.5, found.Price)
	assert.True(t, found.Image.Valid)
	assert.Equal(t, "products/a.png", found.Image.Image.Key)
	assert.False(t, found.CreatedAt.IsZero())
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	p, err := repo.FindByID(context.Background(), 999999)
	assert.Nil(t, p)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	_, err := db.Exec(`
		INSERT INTO products (name, description, price, is_active)
		VALUES ('Green tea', '', 4.00, 1),
		       ('Black tea', '', 5.00, 0),
		       ('Coffee 100%', '', 9.00, 1)
	`)
	require.NoError(t, err)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := repo.List(ctx, ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	tea, err := repo.List(ctx, ListFilter{Search: "tea"})
	require.NoError(t, err)
	assert.Len(t, tea, 2)

	percent, err := repo.List(ctx, ListFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, percent, 1)
	assert.Equal(t, "Coffee 100%", percent[0].Name)
}

func TestProductRepository_UpdateUnchangedRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	p := &domain.Product{Name: "Plate", Price: 3, IsActive: true}
	require.NoError(t, repo.Create(ctx, p))

	assert.NoError(t, repo.Update(ctx, p))

	p.ID = 999999
	_, ok := errors.IsNotFoundError(repo.Update(ctx, p))
	assert.True(t, ok)
}

func TestProductRepository_FindByIDsSkipsMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	p := &domain.Product{Name: "Bowl", Price: 7, IsActive: true}
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.FindByIDs(ctx, []int{p.ID, 999999})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, p.ID, found[0].ID)

	none, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	p := &domain.Product{Name: "Jar", Price: 2, IsActive: true}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, ok := errors.IsNotFoundError(repo.Delete(ctx, p.ID))
	assert.True(t, ok)
}

func TestProductRepository_FindByIDForShare(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ctx := context.Background()

	p := &domain.Product{Name: "Cup", Price: 6, IsActive: true}
	require.NoError(t, repo.Create(ctx, p))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	locked, err := repo.FindByIDForShare(ctx, tx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cup", locked.Name)

	_, err = repo.FindByIDForShare(ctx, tx, 999999)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
