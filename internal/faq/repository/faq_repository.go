package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
)

type MySQLFAQRepository struct {
	db *sql.DB
}

func NewMySQLFAQRepository(db *sql.DB) *MySQLFAQRepository {
	return &MySQLFAQRepository{db: db}
}

func (r *MySQLFAQRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, created_at, updated_at FROM faqs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying faqs: %w", err)
	}
	defer rows.Close()

	faqs := []domain.FAQ{}
	for rows.Next() {
		var f domain.FAQ
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning faq row: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating faq rows: %w", err)
	}

	return faqs, nil
}

func (r *MySQLFAQRepository) FindByID(ctx context.Context, id int) (*domain.FAQ, error) {
	var f domain.FAQ
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, created_at, updated_at FROM faqs WHERE id = ?`, id,
	).Scan(&f.ID, &f.Title, &f.Description, &f.CreatedAt, &f.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("faq with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying faq by id: %w", err)
	}
	return &f, nil
}

func (r *MySQLFAQRepository) Create(ctx context.Context, f *domain.FAQ) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO faqs (title, description) VALUES (?, ?)`, f.Title, f.Description)
	if err != nil {
		return fmt.Errorf("inserting faq: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	f.ID = int(id)
	return nil
}

func (r *MySQLFAQRepository) Update(ctx context.Context, f *domain.FAQ) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE faqs SET title = ?, description = ? WHERE id = ?`, f.Title, f.Description, f.ID)
	if err != nil {
		return fmt.Errorf("updating faq: %w", err)
	}
	return requireRow(result, f.ID)
}

func (r *MySQLFAQRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting faq: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("faq with id %d not found", id))
	}
	return nil
}
