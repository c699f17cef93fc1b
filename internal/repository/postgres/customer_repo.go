// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/customer"
	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, email, name, phone, company, address, created_at, updated_at`

// Create inserts a new customer row. The id is supplied by the caller so
// it can equal the identity id when the account was created first.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (id, email, name, phone, company, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.Email, c.Name, c.Phone, c.Company, c.Address,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", mapError(err))
	}

	return nil
}

// FindByID retrieves a customer by id.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Email, &c.Name, &c.Phone, &c.Company, &c.Address,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &c, nil
}

// FindByEmail retrieves a customer by the unique business key.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&c.ID, &c.Email, &c.Name, &c.Phone, &c.Company, &c.Address,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &c, nil
}

// List returns all customers, newest first.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(
			&c.ID, &c.Email, &c.Name, &c.Phone, &c.Company, &c.Address,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// UpdateProfile applies a partial update to the owner-editable fields.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, id string, req *customer.UpdateProfileRequest) error {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	idx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.Company != nil {
		add("company", *req.Company)
	}
	if req.Address != nil {
		add("address", *req.Address)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// RelinkID moves an existing customer row (matched by email) onto a fresh
// identity id, optionally filling in the address collected at sign-up.
func (r *CustomerRepository) RelinkID(ctx context.Context, email, newID string, address *string) error {
	query := `
		UPDATE customers
		SET id = $1, address = COALESCE($2, address), updated_at = now()
		WHERE email = $3
	`

	if _, err := r.db.Exec(ctx, query, newID, address, email); err != nil {
		return fmt.Errorf("failed to relink customer: %w", mapError(err))
	}

	return nil
}
