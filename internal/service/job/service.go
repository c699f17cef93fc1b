// internal/service/job/service.go
package job

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/job"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/quote"
	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/reconciler"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const snapshotCollection = "jobs"

// JobRepo is the primary record store surface for jobs.
type JobRepo interface {
	Create(ctx context.Context, j *job.Job) error
	FindByID(ctx context.Context, id string) (*job.Job, error)
	List(ctx context.Context) ([]job.Job, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]job.Job, error)
	ExistsByQuoteID(ctx context.Context, quoteID string) (bool, error)
	Update(ctx context.Context, id string, req *job.UpdateRequest) error
	Delete(ctx context.Context, id string) error
}

// QuoteReader checks the source quote before a job is created from it.
type QuoteReader interface {
	FindByID(ctx context.Context, id string) (*quote.Quote, error)
}

// SnapshotStore is the fallback read channel and legacy mirror target.
type SnapshotStore interface {
	Save(ctx context.Context, collection string, v interface{}) error
	Load(ctx context.Context, collection string, dest interface{}) error
}

type Service struct {
	jobs         JobRepo
	quotes       QuoteReader
	snapshots    SnapshotStore
	mirrorWrites bool
	logger       *zap.Logger
}

func NewService(jobs JobRepo, quotes QuoteReader, snapshots SnapshotStore, mirrorWrites bool, logger *zap.Logger) *Service {
	return &Service{
		jobs:         jobs,
		quotes:       quotes,
		snapshots:    snapshots,
		mirrorWrites: mirrorWrites,
		logger:       logger,
	}
}

// Create opens a job from a quote. The quote must be approved and must not
// already have a job; one quote spawns at most one job.
func (s *Service) Create(ctx context.Context, req *job.CreateRequest) (*job.Job, error) {
	q, err := s.quotes.FindByID(ctx, req.QuoteID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NewFieldError("quote_id", "quote not found")
		}
		return nil, err
	}
	if !quote.CanSpawnJob(q.Status) {
		return nil, xerrors.NewFieldError("quote_id",
			fmt.Sprintf("only approved quotes can start a job, quote is %q", q.Status))
	}

	exists, err := s.jobs.ExistsByQuoteID(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "a job already exists for this quote")
	}

	status := req.Status
	if status == "" {
		status = job.InitialStatus()
	}
	if !status.IsValid() {
		return nil, xerrors.NewFieldError("status", fmt.Sprintf("unknown status %q", status))
	}

	progress := 0
	if req.ProgressPercentage != nil {
		progress = job.ClampProgress(*req.ProgressPercentage)
	}

	j := &job.Job{
		ID:                   ulid.Make().String(),
		QuoteID:              req.QuoteID,
		CustomerID:           req.CustomerID,
		Title:                strings.TrimSpace(req.Title),
		Description:          optional(req.Description),
		Status:               status,
		StartDate:            req.StartDate,
		EstimatedEndDate:     req.EstimatedEndDate,
		ProgressPercentage:   progress,
		AdminNotes:           optional(req.AdminNotes),
		CustomerVisibleNotes: optional(req.CustomerVisibleNotes),
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}

	s.logger.Info("job created",
		zap.String("job_id", j.ID),
		zap.String("quote_id", j.QuoteID),
		zap.String("customer_id", j.CustomerID),
	)

	s.mirrorSnapshot(ctx)
	return j, nil
}

// Update applies a partial update. Progress is clamped to [0,100] and a
// supplied status must be known.
func (s *Service) Update(ctx context.Context, id string, req *job.UpdateRequest) (*job.Job, error) {
	if req.Status != nil && !req.Status.IsValid() {
		return nil, xerrors.NewFieldError("status", fmt.Sprintf("unknown status %q", *req.Status))
	}
	if req.ProgressPercentage != nil {
		clamped := job.ClampProgress(*req.ProgressPercentage)
		req.ProgressPercentage = &clamped
	}

	if err := s.jobs.Update(ctx, id, req); err != nil {
		return nil, err
	}

	updated, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job updated", zap.String("job_id", id))
	s.mirrorSnapshot(ctx)
	return updated, nil
}

// Delete removes a job permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("job deleted", zap.String("job_id", id))
	s.mirrorSnapshot(ctx)
	return nil
}

// Get returns the full job, admin fields included.
func (s *Service) Get(ctx context.Context, id string) (*job.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

// ListAll is the admin list view with snapshot fallback.
func (s *Service) ListAll(ctx context.Context) ([]job.Job, error) {
	rows, fromFallback, err := reconciler.Read(ctx, s.jobs.List, s.loadSnapshot)
	if err != nil {
		return nil, err
	}
	if fromFallback {
		s.logger.Warn("job list served from snapshot fallback")
	}
	return rows, nil
}

// ListForCustomer returns the caller's jobs with admin notes stripped.
// Jobs always carry a customer_id, so there is no dual-key read here.
func (s *Service) ListForCustomer(ctx context.Context, sess *identity.Session) ([]job.CustomerView, error) {
	primary := func(ctx context.Context) ([]job.Job, error) {
		return s.jobs.ListByCustomerID(ctx, sess.IdentityID)
	}

	fallback := func(ctx context.Context) ([]job.Job, error) {
		all, err := s.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		var mine []job.Job
		for _, j := range all {
			if j.CustomerID == sess.IdentityID {
				mine = append(mine, j)
			}
		}
		return mine, nil
	}

	rows, fromFallback, err := reconciler.Read(ctx, primary, fallback)
	if err != nil {
		return nil, err
	}
	if fromFallback {
		s.logger.Warn("customer job list served from snapshot fallback",
			zap.String("identity_id", sess.IdentityID),
		)
	}

	views := make([]job.CustomerView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].ToCustomerView())
	}
	return views, nil
}

// loadSnapshot reads the fallback rows and restores the newest-first
// order the primary queries produce server-side; the snapshot blob
// carries no ordering guarantee of its own.
func (s *Service) loadSnapshot(ctx context.Context) ([]job.Job, error) {
	var rows []job.Job
	if err := s.snapshots.Load(ctx, snapshotCollection, &rows); err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (s *Service) mirrorSnapshot(ctx context.Context) {
	if !s.mirrorWrites {
		return
	}

	rows, err := s.jobs.List(ctx)
	if err != nil {
		s.logger.Warn("snapshot mirror skipped, record store unavailable", zap.Error(err))
		return
	}
	if err := s.snapshots.Save(ctx, snapshotCollection, rows); err != nil {
		s.logger.Warn("snapshot mirror write failed", zap.Error(err))
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
