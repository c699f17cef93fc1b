package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/customer"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"
	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"
	jwtpkg "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/jwt"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeIdentityRepo struct {
	byEmail map[string]*identity.Identity

	created   []*identity.Identity
	createErr error
}

func (f *fakeIdentityRepo) Create(ctx context.Context, ident *identity.Identity) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[ident.Email]; ok {
		return xerrors.ErrConflict
	}
	if f.byEmail == nil {
		f.byEmail = make(map[string]*identity.Identity)
	}
	f.byEmail[ident.Email] = ident
	f.created = append(f.created, ident)
	return nil
}

func (f *fakeIdentityRepo) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	if ident, ok := f.byEmail[email]; ok {
		return ident, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeIdentityRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeCustomerRepo struct {
	createErr error
	created   []*customer.Customer

	relinked   bool
	relinkedID string
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeCustomerRepo) RelinkID(ctx context.Context, email, newID string, address *string) error {
	f.relinked = true
	f.relinkedID = newID
	return nil
}

type fakeSessionStore struct {
	sessions map[string]*session.Data
}

func (f *fakeSessionStore) key(identityID, jti string) string { return identityID + ":" + jti }

func (f *fakeSessionStore) Create(ctx context.Context, s *session.Data) error {
	if f.sessions == nil {
		f.sessions = make(map[string]*session.Data)
	}
	f.sessions[f.key(s.IdentityID, s.JTI)] = s
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, identityID, jti string) (*session.Data, error) {
	if s, ok := f.sessions[f.key(identityID, jti)]; ok {
		return s, nil
	}
	return nil, errors.New("session not found")
}

func (f *fakeSessionStore) Delete(ctx context.Context, identityID, jti string) error {
	delete(f.sessions, f.key(identityID, jti))
	return nil
}

func testTokens(t *testing.T) *jwtpkg.Manager {
	t.Helper()
	m, err := jwtpkg.NewManager(jwtpkg.Config{Secret: "test-secret", Issuer: "wawa-test", TTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build token manager: %v", err)
	}
	return m
}

func newService(t *testing.T, identities *fakeIdentityRepo, customers *fakeCustomerRepo, sessions *fakeSessionStore) *Service {
	t.Helper()
	if identities == nil {
		identities = &fakeIdentityRepo{}
	}
	if customers == nil {
		customers = &fakeCustomerRepo{}
	}
	if sessions == nil {
		sessions = &fakeSessionStore{}
	}
	return NewService(identities, customers, testTokens(t), sessions, zap.NewNop())
}

func validRegistration() *customer.RegisterRequest {
	return &customer.RegisterRequest{
		Name:     "Jan de Vries",
		Email:    "Jan@Example.com",
		Password: "secret123",
	}
}

func TestSignUp(t *testing.T) {
	t.Run("creates account, customer and session", func(t *testing.T) {
		identities := &fakeIdentityRepo{}
		customers := &fakeCustomerRepo{}
		sessions := &fakeSessionStore{}
		svc := newService(t, identities, customers, sessions)

		sess, err := svc.SignUp(context.Background(), validRegistration())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.Token == "" || sess.JTI == "" {
			t.Fatal("session missing token or jti")
		}
		if sess.Email != "jan@example.com" {
			t.Fatalf("email not normalized: %q", sess.Email)
		}
		if sess.Role != identity.RoleCustomer {
			t.Fatalf("expected customer role, got %q", sess.Role)
		}
		if len(customers.created) != 1 {
			t.Fatalf("expected 1 customer record, got %d", len(customers.created))
		}
		if customers.created[0].ID != sess.IdentityID {
			t.Fatal("customer record does not share the identity id")
		}
		if len(sessions.sessions) != 1 {
			t.Fatalf("expected 1 stored session, got %d", len(sessions.sessions))
		}
	})

	t.Run("validation runs before any write", func(t *testing.T) {
		cases := []struct {
			name string
			req  customer.RegisterRequest
		}{
			{"missing name", customer.RegisterRequest{Email: "j@e.c", Password: "secret123"}},
			{"missing email", customer.RegisterRequest{Name: "J", Password: "secret123"}},
			{"malformed email", customer.RegisterRequest{Name: "J", Email: "nope", Password: "secret123"}},
			{"short password", customer.RegisterRequest{Name: "J", Email: "j@e.c", Password: "12345"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				identities := &fakeIdentityRepo{}
				svc := newService(t, identities, nil, nil)

				_, err := svc.SignUp(context.Background(), &tc.req)
				if !errors.Is(err, xerrors.ErrInvalidInput) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if len(identities.created) != 0 {
					t.Fatal("account written despite invalid input")
				}
			})
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		identities := &fakeIdentityRepo{}
		svc := newService(t, identities, nil, nil)

		if _, err := svc.SignUp(context.Background(), validRegistration()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := svc.SignUp(context.Background(), validRegistration())
		if !errors.Is(err, xerrors.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("adopts customer row left by an unregistered quote", func(t *testing.T) {
		customers := &fakeCustomerRepo{createErr: xerrors.ErrConflict}
		svc := newService(t, nil, customers, nil)

		sess, err := svc.SignUp(context.Background(), validRegistration())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !customers.relinked {
			t.Fatal("existing customer row not relinked")
		}
		if customers.relinkedID != sess.IdentityID {
			t.Fatalf("relinked to %q, want %q", customers.relinkedID, sess.IdentityID)
		}
	})
}

func TestSignIn(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	identities := &fakeIdentityRepo{byEmail: map[string]*identity.Identity{
		"jan@example.com": {
			ID:           "ID1",
			Email:        "jan@example.com",
			PasswordHash: string(hash),
			Role:         identity.RoleCustomer,
			Name:         "Jan",
		},
	}}

	t.Run("valid credentials open a session", func(t *testing.T) {
		sessions := &fakeSessionStore{}
		svc := newService(t, identities, nil, sessions)

		sess, err := svc.SignIn(context.Background(), "jan@example.com", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.IdentityID != "ID1" || sess.Token == "" {
			t.Fatalf("unexpected session %+v", sess)
		}
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		sessions := &fakeSessionStore{}
		svc := newService(t, identities, nil, sessions)

		if _, err := svc.SignIn(context.Background(), "Jan@Example.COM", "secret123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newService(t, identities, nil, nil)
		_, err := svc.SignIn(context.Background(), "jan@example.com", "wrong")
		if !errors.Is(err, xerrors.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		svc := newService(t, identities, nil, nil)
		_, err := svc.SignIn(context.Background(), "nobody@example.com", "secret123")
		if !errors.Is(err, xerrors.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	svc := newService(t, nil, nil, nil)

	signedUp, err := svc.SignUp(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("live token resolves", func(t *testing.T) {
		sess, err := svc.Authenticate(context.Background(), signedUp.Token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.IdentityID != signedUp.IdentityID || sess.JTI != signedUp.JTI {
			t.Fatalf("unexpected session %+v", sess)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "not.a.token")
		if !errors.Is(err, xerrors.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("signed-out token rejected even though the JWT is valid", func(t *testing.T) {
		if err := svc.SignOut(context.Background(), signedUp.IdentityID, signedUp.JTI); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := svc.Authenticate(context.Background(), signedUp.Token)
		if !errors.Is(err, xerrors.ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("seeds the admin account", func(t *testing.T) {
		identities := &fakeIdentityRepo{}
		svc := newService(t, identities, nil, nil)

		if err := svc.EnsureAdmin(context.Background(), "admin@wawa.nl", "secret123", "Studio"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(identities.created) != 1 {
			t.Fatalf("expected 1 account, got %d", len(identities.created))
		}
		if identities.created[0].Role != identity.RoleAdmin {
			t.Fatalf("expected admin role, got %q", identities.created[0].Role)
		}
	})

	t.Run("skips when account exists", func(t *testing.T) {
		identities := &fakeIdentityRepo{byEmail: map[string]*identity.Identity{
			"admin@wawa.nl": {ID: "A1", Email: "admin@wawa.nl", Role: identity.RoleAdmin},
		}}
		svc := newService(t, identities, nil, nil)

		if err := svc.EnsureAdmin(context.Background(), "admin@wawa.nl", "secret123", "Studio"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(identities.created) != 0 {
			t.Fatal("existing admin re-created")
		}
	})

	t.Run("skips when unconfigured", func(t *testing.T) {
		identities := &fakeIdentityRepo{}
		svc := newService(t, identities, nil, nil)

		if err := svc.EnsureAdmin(context.Background(), "", "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(identities.created) != 0 {
			t.Fatal("account created without configuration")
		}
	})
}
