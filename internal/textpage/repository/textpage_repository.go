package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
)

// Tables holding text pages.
const (
	TablePartnership = "partnership"
	TablePaymentInfo = "payment_info"
)

// MySQLTextPageRepository reads and writes one text page table. The table
// name is never taken from a request.
type MySQLTextPageRepository struct {
	db    *sql.DB
	table string
	label string
}

func NewMySQLTextPageRepository(db *sql.DB, table, label string) *MySQLTextPageRepository {
	return &MySQLTextPageRepository{db: db, table: table, label: label}
}

func (r *MySQLTextPageRepository) FindLatest(ctx context.Context) (*domain.TextPage, error) {
	p, err := r.scanOne(r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, title, text, created_at, updated_at FROM %s ORDER BY id DESC LIMIT 1`, r.table)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(r.label + " not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest %s: %w", r.label, err)
	}
	return p, nil
}

func (r *MySQLTextPageRepository) FindByID(ctx context.Context, id int) (*domain.TextPage, error) {
	p, err := r.scanOne(r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, title, text, created_at, updated_at FROM %s WHERE id = ?`, r.table), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s by id: %w", r.label, err)
	}
	return p, nil
}

func (r *MySQLTextPageRepository) Create(ctx context.Context, p *domain.TextPage) error {
	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (title, text) VALUES (?, ?)`, r.table), p.Title, p.Text)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", r.label, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	p.ID = int(id)
	return nil
}

func (r *MySQLTextPageRepository) Update(ctx context.Context, p *domain.TextPage) error {
	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET title = ?, text = ? WHERE id = ?`, r.table), p.Title, p.Text, p.ID)
	if err != nil {
		return fmt.Errorf("updating %s: %w", r.label, err)
	}
	return r.requireRow(result, p.ID)
}

func (r *MySQLTextPageRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table), id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.label, err)
	}
	return r.requireRow(result, id)
}

func (r *MySQLTextPageRepository) scanOne(row *sql.Row) (*domain.TextPage, error) {
	var p domain.TextPage
	if err := row.Scan(&p.ID, &p.Title, &p.Text, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLTextPageRepository) notFound(id int) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", r.label, id))
}

func (r *MySQLTextPageRepository) requireRow(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return r.notFound(id)
	}
	return nil
}
