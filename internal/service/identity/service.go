// internal/service/identity/service.go
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/customer"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"
	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"
	jwtpkg "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/jwt"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/session"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IdentityRepo is the persistence surface the service needs for accounts.
type IdentityRepo interface {
	Create(ctx context.Context, ident *identity.Identity) error
	FindByEmail(ctx context.Context, email string) (*identity.Identity, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CustomerRepo covers the customer-side work registration does: creating
// the linked customer row, or adopting one left behind by an earlier
// unregistered quote.
type CustomerRepo interface {
	Create(ctx context.Context, c *customer.Customer) error
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)
	RelinkID(ctx context.Context, email, newID string, address *string) error
}

// SessionStore tracks live sessions so logout can revoke tokens early.
type SessionStore interface {
	Create(ctx context.Context, s *session.Data) error
	Get(ctx context.Context, identityID, jti string) (*session.Data, error)
	Delete(ctx context.Context, identityID, jti string) error
}

type Service struct {
	identities IdentityRepo
	customers  CustomerRepo
	tokens     *jwtpkg.Manager
	sessions   SessionStore
	logger     *zap.Logger
}

func NewService(
	identities IdentityRepo,
	customers CustomerRepo,
	tokens *jwtpkg.Manager,
	sessions SessionStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		identities: identities,
		customers:  customers,
		tokens:     tokens,
		sessions:   sessions,
		logger:     logger,
	}
}

// SignUp creates an account and its customer record, then opens a session.
// All input validation runs before anything is written. The account is
// created first so a failure between the two writes leaves no customer
// record without a login, only the reverse.
func (s *Service) SignUp(ctx context.Context, req *customer.RegisterRequest) (*identity.Session, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ident := &identity.Identity{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         identity.RoleCustomer,
		Name:         strings.TrimSpace(req.Name),
	}

	if err := s.identities.Create(ctx, ident); err != nil {
		if xerrors.Is(err, xerrors.ErrConflict) {
			return nil, xerrors.Wrap(xerrors.ErrConflict, "an account with this email already exists, please sign in")
		}
		return nil, err
	}

	if err := s.attachCustomer(ctx, ident, req); err != nil {
		return nil, err
	}

	s.logger.Info("customer registered",
		zap.String("identity_id", ident.ID),
		zap.String("email", ident.Email),
	)

	return s.openSession(ctx, ident)
}

// attachCustomer creates the customer row sharing the identity id. When a
// customer row already exists for the email, left by a quote submitted
// before registration, it is relinked onto the new identity id instead.
func (s *Service) attachCustomer(ctx context.Context, ident *identity.Identity, req *customer.RegisterRequest) error {
	c := &customer.Customer{
		ID:      ident.ID,
		Email:   ident.Email,
		Name:    ident.Name,
		Phone:   optional(req.Phone),
		Company: optional(req.Company),
		Address: optional(req.Address),
	}

	err := s.customers.Create(ctx, c)
	if err == nil {
		return nil
	}
	if !xerrors.Is(err, xerrors.ErrConflict) {
		return err
	}

	s.logger.Info("adopting existing customer record",
		zap.String("email", ident.Email),
		zap.String("identity_id", ident.ID),
	)

	return s.customers.RelinkID(ctx, ident.Email, ident.ID, optional(req.Address))
}

// SignIn verifies credentials and opens a session. Unknown email and wrong
// password return the same error.
func (s *Service) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	ident, err := s.identities.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid email or password")
	}

	return s.openSession(ctx, ident)
}

// Authenticate resolves a bearer token into a live session. A valid JWT
// whose session record is gone has been signed out and is rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (*identity.Session, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid or expired token")
	}

	data, err := s.sessions.Get(ctx, claims.IdentityID, claims.ID)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrSessionExpired, "session expired or signed out")
	}

	return &identity.Session{
		JTI:        claims.ID,
		IdentityID: data.IdentityID,
		Email:      data.Email,
		Role:       data.Role,
		Name:       data.Name,
		ExpiresAt:  data.ExpiresAt,
	}, nil
}

// SignOut revokes the session behind the token's JTI.
func (s *Service) SignOut(ctx context.Context, identityID, jti string) error {
	if err := s.sessions.Delete(ctx, identityID, jti); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// EnsureAdmin seeds the back-office account from configuration on startup.
// It is a no-op when the account already exists or no email is configured.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		s.logger.Warn("admin account not configured, skipping seed")
		return nil
	}

	email = normalizeEmail(email)
	exists, err := s.identities.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	ident := &identity.Identity{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         identity.RoleAdmin,
		Name:         name,
	}

	if err := s.identities.Create(ctx, ident); err != nil {
		if xerrors.Is(err, xerrors.ErrConflict) {
			return nil
		}
		return err
	}

	s.logger.Info("admin account seeded", zap.String("email", ident.Email))
	return nil
}

func (s *Service) openSession(ctx context.Context, ident *identity.Identity) (*identity.Session, error) {
	token, jti, expiresAt, err := s.tokens.Generate(ident.ID, ident.Email, ident.Role)
	if err != nil {
		return nil, err
	}

	data := &session.Data{
		JTI:        jti,
		IdentityID: ident.ID,
		Email:      ident.Email,
		Role:       ident.Role,
		Name:       ident.Name,
		LoginAt:    time.Now(),
		ExpiresAt:  expiresAt,
	}
	if err := s.sessions.Create(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &identity.Session{
		Token:      token,
		JTI:        jti,
		IdentityID: ident.ID,
		Email:      ident.Email,
		Role:       ident.Role,
		Name:       ident.Name,
		ExpiresAt:  expiresAt,
	}, nil
}

func validateRegistration(req *customer.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return xerrors.NewFieldError("name", "name is required")
	}
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return xerrors.NewFieldError("email", "a valid email address is required")
	}
	if len(req.Password) < 6 {
		return xerrors.NewFieldError("password", "password must be at least 6 characters")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
