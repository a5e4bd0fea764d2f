package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
)

type MySQLContactRepository struct {
	db *sql.DB
}

func NewMySQLContactRepository(db *sql.DB) *MySQLContactRepository {
	return &MySQLContactRepository{db: db}
}

func (r *MySQLContactRepository) FindLatest(ctx context.Context) (*domain.Contact, error) {
	var c domain.Contact
	err := r.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM contacts ORDER BY id DESC LIMIT 1`,
	).Scan(&c.ID, &c.Fields, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("contacts not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest contacts: %w", err)
	}
	return &c, nil
}

func (r *MySQLContactRepository) FindByID(ctx context.Context, id int) (*domain.Contact, error) {
	var c domain.Contact
	err := r.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM contacts WHERE id = ?`, id,
	).Scan(&c.ID, &c.Fields, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("contacts with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying contacts by id: %w", err)
	}
	return &c, nil
}

func (r *MySQLContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	result, err := r.db.ExecContext(ctx, `INSERT INTO contacts (data) VALUES (?)`, c.Fields)
	if err != nil {
		return fmt.Errorf("inserting contacts: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	c.ID = int(id)
	return nil
}

func (r *MySQLContactRepository) Update(ctx context.Context, c *domain.Contact) error {
	result, err := r.db.ExecContext(ctx, `UPDATE contacts SET data = ? WHERE id = ?`, c.Fields, c.ID)
	if err != nil {
		return fmt.Errorf("updating contacts: %w", err)
	}
	return requireRow(result, c.ID)
}

func (r *MySQLContactRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contacts: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("contacts with id %d not found", id))
	}
	return nil
}
