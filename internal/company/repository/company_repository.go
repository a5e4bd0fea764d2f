package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
)

const companyColumns = `id, title, description, images, created_at, updated_at`

type MySQLCompanyRepository struct {
	db *sql.DB
}

func NewMySQLCompanyRepository(db *sql.DB) *MySQLCompanyRepository {
	return &MySQLCompanyRepository{db: db}
}

func (r *MySQLCompanyRepository) scan(row *sql.Row, notFound string) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Images, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying company: %w", err)
	}
	return &c, nil
}

// FindLatest returns the most recently created company record.
func (r *MySQLCompanyRepository) FindLatest(ctx context.Context) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM company ORDER BY id DESC LIMIT 1`)
	return r.scan(row, "company info not found")
}

func (r *MySQLCompanyRepository) FindByID(ctx context.Context, id int) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM company WHERE id = ?`, id)
	return r.scan(row, fmt.Sprintf("company with id %d not found", id))
}

func (r *MySQLCompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO company (title, description, images) VALUES (?, ?, ?)`,
		c.Title, c.Description, c.Images,
	)
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	c.ID = int(id)
	return nil
}

func (r *MySQLCompanyRepository) Update(ctx context.Context, c *domain.Company) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE company SET title = ?, description = ?, images = ? WHERE id = ?`,
		c.Title, c.Description, c.Images, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}
	return requireRow(result, c.ID)
}

func (r *MySQLCompanyRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM company WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("company with id %d not found", id))
	}
	return nil
}
