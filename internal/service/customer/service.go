// internal/service/customer/service.go
package customer

import (
	"context"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/customer"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"

	"go.uber.org/zap"
)

// CustomerRepo is the persistence surface for customer records.
type CustomerRepo interface {
	FindByID(ctx context.Context, id string) (*customer.Customer, error)
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)
	List(ctx context.Context) ([]customer.Customer, error)
	UpdateProfile(ctx context.Context, id string, req *customer.UpdateProfileRequest) error
}

type Service struct {
	customers CustomerRepo
	logger    *zap.Logger
}

func NewService(customers CustomerRepo, logger *zap.Logger) *Service {
	return &Service{customers: customers, logger: logger}
}

// List returns every customer record. Admin read path.
func (s *Service) List(ctx context.Context) ([]customer.Customer, error) {
	return s.customers.List(ctx)
}

// Profile resolves the caller's customer record. A registered account
// whose customer row was created at sign-up shares the identity id; an
// account whose quotes predate registration is matched by email.
func (s *Service) Profile(ctx context.Context, sess *identity.Session) (*customer.Customer, error) {
	c, err := s.customers.FindByID(ctx, sess.IdentityID)
	if err == nil {
		return c, nil
	}

	return s.customers.FindByEmail(ctx, sess.Email)
}

// UpdateProfile applies a partial update to the caller's own record.
func (s *Service) UpdateProfile(ctx context.Context, sess *identity.Session, req *customer.UpdateProfileRequest) (*customer.Customer, error) {
	current, err := s.Profile(ctx, sess)
	if err != nil {
		return nil, err
	}

	trim(req)
	if err := s.customers.UpdateProfile(ctx, current.ID, req); err != nil {
		return nil, err
	}

	s.logger.Info("customer profile updated", zap.String("customer_id", current.ID))
	return s.customers.FindByID(ctx, current.ID)
}

func trim(req *customer.UpdateProfileRequest) {
	if req.Name != nil {
		v := strings.TrimSpace(*req.Name)
		req.Name = &v
	}
	if req.Phone != nil {
		v := strings.TrimSpace(*req.Phone)
		req.Phone = &v
	}
	if req.Company != nil {
		v := strings.TrimSpace(*req.Company)
		req.Company = &v
	}
	if req.Address != nil {
		v := strings.TrimSpace(*req.Address)
		req.Address = &v
	}
}
