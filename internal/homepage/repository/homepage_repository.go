package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
)

const homepageColumns = `id, title, description, images, popular_products, created_at, updated_at`

type MySQLHomepageRepository struct {
	db *sql.DB
}

func NewMySQLHomepageRepository(db *sql.DB) *MySQLHomepageRepository {
	return &MySQLHomepageRepository{db: db}
}

func scanHomepage(row *sql.Row) (*domain.Homepage, error) {
	var h domain.Homepage
	err := row.Scan(&h.ID, &h.Title, &h.Description, &h.Images, &h.PopularProducts, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *MySQLHomepageRepository) FindLatest(ctx context.Context) (*domain.Homepage, error) {
	h, err := scanHomepage(r.db.QueryRowContext(ctx,
		`SELECT `+homepageColumns+` FROM homepage ORDER BY id DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("homepage not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest homepage: %w", err)
	}
	return h, nil
}

func (r *MySQLHomepageRepository) FindByID(ctx context.Context, id int) (*domain.Homepage, error) {
	h, err := scanHomepage(r.db.QueryRowContext(ctx,
		`SELECT `+homepageColumns+` FROM homepage WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("homepage with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying homepage by id: %w", err)
	}
	return h, nil
}

func (r *MySQLHomepageRepository) Create(ctx context.Context, h *domain.Homepage) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO homepage (title, description, images, popular_products) VALUES (?, ?, ?, ?)`,
		h.Title, h.Description, h.Images, h.PopularProducts)
	if err != nil {
		return fmt.Errorf("inserting homepage: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	h.ID = int(id)
	return nil
}

func (r *MySQLHomepageRepository) Update(ctx context.Context, h *domain.Homepage) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE homepage SET title = ?, description = ?, images = ?, popular_products = ? WHERE id = ?`,
		h.Title, h.Description, h.Images, h.PopularProducts, h.ID)
	if err != nil {
		return fmt.Errorf("updating homepage: %w", err)
	}
	return requireRow(result, h.ID)
}

func (r *MySQLHomepageRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM homepage WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting homepage: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("homepage with id %d not found", id))
	}
	return nil
}
