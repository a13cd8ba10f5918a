package customer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"bookhaven/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `id::text, email, password_hash, first_name, last_name, address, loyalty_points, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	addrJSON, err := json.Marshal(c.Address)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO customers (email, password_hash, first_name, last_name, address)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + customerColumns + `
`
	row := r.pool.QueryRow(ctx, q, strings.ToLower(c.Email), c.PasswordHash, c.FirstName, c.LastName, addrJSON)
	out, err := scanCustomer(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: create email=%s error=%v", c.Email, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.get(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.get(ctx, q, strings.ToLower(strings.TrimSpace(email)))
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*domain.Customer, error) {
	addrJSON, err := json.Marshal(in.Address)
	if err != nil {
		return nil, err
	}

	const q = `
UPDATE customers
SET first_name = $1, last_name = $2, address = $3
WHERE id = $4
RETURNING ` + customerColumns + `
`
	out, err := scanCustomer(r.pool.QueryRow(ctx, q, in.FirstName, in.LastName, addrJSON, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: update profile id=%s error=%v", id, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE customers SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddLoyaltyPoints credits points after a placed order. Runs outside the
// order transaction on purpose (best-effort, see order service).
func (r *postgresRepo) AddLoyaltyPoints(ctx context.Context, id string, points int) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE customers SET loyalty_points = loyalty_points + $1 WHERE id = $2`, points, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) get(ctx context.Context, query, arg string) (*domain.Customer, error) {
	out, err := scanCustomer(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get error=%v", err)
		return nil, err
	}
	return out, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var addrJSON []byte
	if err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName, &addrJSON, &c.LoyaltyPoints, &c.CreatedAt); err != nil {
		return nil, err
	}
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &c.Address); err != nil {
			return nil, err
		}
	}
	return &c, nil
}
