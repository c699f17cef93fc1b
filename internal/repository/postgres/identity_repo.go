// internal/repository/postgres/identity_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IdentityRepository struct {
	db *pgxpool.Pool
}

func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// Create inserts an authentication account. A unique violation on email
// surfaces as ErrConflict, which the registration flow recovers from.
func (r *IdentityRepository) Create(ctx context.Context, ident *identity.Identity) error {
	query := `
		INSERT INTO identities (id, email, password_hash, role, name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		ident.ID, ident.Email, ident.PasswordHash, ident.Role, ident.Name,
	).Scan(&ident.CreatedAt, &ident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", mapError(err))
	}

	return nil
}

// FindByEmail retrieves an account by email.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	query := `
		SELECT id, email, password_hash, role, name, created_at, updated_at
		FROM identities
		WHERE email = $1
	`

	var ident identity.Identity
	err := r.db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&ident.ID, &ident.Email, &ident.PasswordHash, &ident.Role, &ident.Name,
		&ident.CreatedAt, &ident.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &ident, nil
}

// ExistsByEmail reports whether an account already uses the email.
func (r *IdentityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM identities WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}

	return exists, nil
}
