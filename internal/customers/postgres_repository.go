package customers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// pgxQuerier is satisfied by *pgxpool.Pool and pgxmock pools.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores customers in Postgres.
type PostgresRepository struct {
	db pgxQuerier
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db pgxQuerier) *PostgresRepository {
	if db == nil {
		panic("customers: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.normalize()

	id := uuid.New()
	query := `
		INSERT INTO customers (id, org_id, name, phone, email, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.OrgID,
		req.Name,
		req.Phone,
		req.Email,
		req.Notes,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("customers: insert failed: %w", err)
	}

	return &Customer{
		ID:        id.String(),
		OrgID:     req.OrgID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a customer scoped to the org.
func (r *PostgresRepository) GetByID(ctx context.Context, orgID, id string) (*Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCustomerNotFound
	}
	query := `
		SELECT id, org_id, name, phone, email, notes, created_at
		FROM customers
		WHERE id = $1 AND org_id = $2
	`
	var c Customer
	if err := r.db.QueryRow(ctx, query, id, orgID).Scan(
		&c.ID, &c.OrgID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customers: select failed: %w", err)
	}
	return &c, nil
}

// ListByOrg returns the org's customers, newest first.
func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string, filter ListFilter) ([]*Customer, error) {
	filter = filter.normalized()
	query := `
		SELECT id, org_id, name, phone, email, notes, created_at
		FROM customers
		WHERE org_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, orgID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("customers: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.OrgID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("customers: scan failed: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customers: iterate failed: %w", err)
	}
	return out, nil
}
