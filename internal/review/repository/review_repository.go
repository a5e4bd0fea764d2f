package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
)

const reviewColumns = `id, name, text, email, phone, status, created_at, updated_at`

type MySQLReviewRepository struct {
	db *sql.DB
}

func NewMySQLReviewRepository(db *sql.DB) *MySQLReviewRepository {
	return &MySQLReviewRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var (
		rv    domain.Review
		email sql.NullString
		phone sql.NullString
	)
	if err := row.Scan(&rv.ID, &rv.Name, &rv.Text, &email, &phone, &rv.Status, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		rv.Email = &email.String
	}
	if phone.Valid {
		rv.Phone = &phone.String
	}
	return &rv, nil
}

// List returns reviews newest first. An empty status returns every review.
func (r *MySQLReviewRepository) List(ctx context.Context, status string) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review rows: %w", err)
	}
	return reviews, nil
}

func (r *MySQLReviewRepository) FindByID(ctx context.Context, id int) (*domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying review by id: %w", err)
	}
	return rv, nil
}

func (r *MySQLReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (name, text, email, phone, status) VALUES (?, ?, ?, ?, ?)`,
		rv.Name, rv.Text, rv.Email, rv.Phone, rv.Status)
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	rv.ID = int(id)
	return nil
}

func (r *MySQLReviewRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE reviews SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating review status: %w", err)
	}
	return requireRow(result, id)
}

func (r *MySQLReviewRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %d not found", id))
	}
	return nil
}
