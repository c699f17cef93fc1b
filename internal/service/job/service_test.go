package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/job"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/quote"
	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeJobRepo struct {
	byID map[string]*job.Job

	hasJobForQuote bool
	existsErr      error

	listRows []job.Job
	listErr  error

	byCustRows []job.Job
	byCustErr  error

	created []*job.Job
	deleted []string
}

func (f *fakeJobRepo) Create(ctx context.Context, j *job.Job) error {
	f.created = append(f.created, j)
	if f.byID == nil {
		f.byID = make(map[string]*job.Job)
	}
	f.byID[j.ID] = j
	return nil
}

func (f *fakeJobRepo) FindByID(ctx context.Context, id string) (*job.Job, error) {
	if j, ok := f.byID[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	return f.listRows, f.listErr
}

func (f *fakeJobRepo) ListByCustomerID(ctx context.Context, customerID string) ([]job.Job, error) {
	return f.byCustRows, f.byCustErr
}

func (f *fakeJobRepo) ExistsByQuoteID(ctx context.Context, quoteID string) (bool, error) {
	return f.hasJobForQuote, f.existsErr
}

func (f *fakeJobRepo) Update(ctx context.Context, id string, req *job.UpdateRequest) error {
	j, ok := f.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if req.Status != nil {
		j.Status = *req.Status
	}
	if req.ProgressPercentage != nil {
		j.ProgressPercentage = *req.ProgressPercentage
	}
	if req.Title != nil {
		j.Title = *req.Title
	}
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeQuoteReader struct {
	quotes map[string]*quote.Quote
}

func (f *fakeQuoteReader) FindByID(ctx context.Context, id string) (*quote.Quote, error) {
	if q, ok := f.quotes[id]; ok {
		return q, nil
	}
	return nil, xerrors.ErrNotFound
}

type fakeSnapshot struct {
	data map[string][]byte
}

func (f *fakeSnapshot) Save(ctx context.Context, collection string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	f.data[collection] = raw
	return nil
}

func (f *fakeSnapshot) Load(ctx context.Context, collection string, dest interface{}) error {
	raw, ok := f.data[collection]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func approvedQuote(id string) *quote.Quote {
	return &quote.Quote{ID: id, Status: quote.StatusApproved, CustomerEmail: "jan@example.com"}
}

func newService(jobs *fakeJobRepo, quotes *fakeQuoteReader, snap *fakeSnapshot) *Service {
	if jobs == nil {
		jobs = &fakeJobRepo{}
	}
	if quotes == nil {
		quotes = &fakeQuoteReader{}
	}
	if snap == nil {
		snap = &fakeSnapshot{}
	}
	return NewService(jobs, quotes, snap, false, zap.NewNop())
}

func TestCreate(t *testing.T) {
	t.Run("approved quote spawns a job with defaults", func(t *testing.T) {
		jobs := &fakeJobRepo{}
		quotes := &fakeQuoteReader{quotes: map[string]*quote.Quote{"q1": approvedQuote("q1")}}
		svc := newService(jobs, quotes, nil)

		j, err := svc.Create(context.Background(), &job.CreateRequest{
			QuoteID:    "q1",
			CustomerID: "CUST1",
			Title:      "Apartment build-out",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if j.Status != job.StatusPlanning {
			t.Fatalf("expected planning default, got %q", j.Status)
		}
		if j.ProgressPercentage != 0 {
			t.Fatalf("expected zero progress, got %d", j.ProgressPercentage)
		}
		if j.ID == "" {
			t.Fatal("job id not assigned")
		}
	})

	t.Run("unapproved quote is rejected", func(t *testing.T) {
		for _, status := range []quote.Status{
			quote.StatusPending, quote.StatusReviewed, quote.StatusRejected,
			quote.StatusInProgress, quote.StatusCompleted,
		} {
			quotes := &fakeQuoteReader{quotes: map[string]*quote.Quote{
				"q1": {ID: "q1", Status: status},
			}}
			svc := newService(nil, quotes, nil)

			_, err := svc.Create(context.Background(), &job.CreateRequest{
				QuoteID: "q1", CustomerID: "CUST1", Title: "t",
			})
			if !errors.Is(err, xerrors.ErrInvalidInput) {
				t.Fatalf("status %q: expected validation error, got %v", status, err)
			}
		}
	})

	t.Run("missing quote", func(t *testing.T) {
		svc := newService(nil, nil, nil)
		_, err := svc.Create(context.Background(), &job.CreateRequest{
			QuoteID: "nope", CustomerID: "CUST1", Title: "t",
		})
		if !errors.Is(err, xerrors.ErrInvalidInput) {
			t.Fatalf("expected field error on quote_id, got %v", err)
		}
	})

	t.Run("second job for the same quote conflicts", func(t *testing.T) {
		jobs := &fakeJobRepo{hasJobForQuote: true}
		quotes := &fakeQuoteReader{quotes: map[string]*quote.Quote{"q1": approvedQuote("q1")}}
		svc := newService(jobs, quotes, nil)

		_, err := svc.Create(context.Background(), &job.CreateRequest{
			QuoteID: "q1", CustomerID: "CUST1", Title: "t",
		})
		if !errors.Is(err, xerrors.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if len(jobs.created) != 0 {
			t.Fatal("duplicate job persisted")
		}
	})

	t.Run("progress clamps on create", func(t *testing.T) {
		jobs := &fakeJobRepo{}
		quotes := &fakeQuoteReader{quotes: map[string]*quote.Quote{"q1": approvedQuote("q1")}}
		svc := newService(jobs, quotes, nil)

		over := 250
		j, err := svc.Create(context.Background(), &job.CreateRequest{
			QuoteID: "q1", CustomerID: "CUST1", Title: "t",
			ProgressPercentage: &over,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if j.ProgressPercentage != 100 {
			t.Fatalf("progress not clamped: %d", j.ProgressPercentage)
		}
	})
}

func TestUpdate(t *testing.T) {
	seed := func() *fakeJobRepo {
		return &fakeJobRepo{byID: map[string]*job.Job{
			"j1": {ID: "j1", QuoteID: "q1", CustomerID: "CUST1", Status: job.StatusPlanning, ProgressPercentage: 10},
		}}
	}

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := newService(seed(), nil, nil)
		bad := job.Status("paused")
		_, err := svc.Update(context.Background(), "j1", &job.UpdateRequest{Status: &bad})
		if !errors.Is(err, xerrors.ErrInvalidInput) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("progress clamps on update", func(t *testing.T) {
		jobs := seed()
		svc := newService(jobs, nil, nil)
		under := -5
		j, err := svc.Update(context.Background(), "j1", &job.UpdateRequest{ProgressPercentage: &under})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if j.ProgressPercentage != 0 {
			t.Fatalf("progress not clamped: %d", j.ProgressPercentage)
		}
	})

	t.Run("status change applies", func(t *testing.T) {
		jobs := seed()
		svc := newService(jobs, nil, nil)
		next := job.StatusInProgress
		j, err := svc.Update(context.Background(), "j1", &job.UpdateRequest{Status: &next})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if j.Status != job.StatusInProgress {
			t.Fatalf("status not applied: %q", j.Status)
		}
	})

	t.Run("missing job", func(t *testing.T) {
		svc := newService(seed(), nil, nil)
		_, err := svc.Update(context.Background(), "nope", &job.UpdateRequest{})
		if !errors.Is(err, xerrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	jobs := &fakeJobRepo{byID: map[string]*job.Job{"j1": {ID: "j1"}}}
	svc := newService(jobs, nil, nil)

	if err := svc.Delete(context.Background(), "j1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), "j1"); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListForCustomer(t *testing.T) {
	sess := &identity.Session{IdentityID: "CUST1", Email: "jan@example.com"}

	t.Run("primary rows strip admin notes", func(t *testing.T) {
		notes := "supplier delay, do not share"
		jobs := &fakeJobRepo{byCustRows: []job.Job{
			{ID: "j1", CustomerID: "CUST1", AdminNotes: &notes},
		}}
		svc := newService(jobs, nil, nil)

		views, err := svc.ListForCustomer(context.Background(), sess)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(views) != 1 || views[0].ID != "j1" {
			t.Fatalf("unexpected views %v", views)
		}
	})

	t.Run("snapshot fallback filters to owner, newest first", func(t *testing.T) {
		jobs := &fakeJobRepo{byCustErr: errors.New("store down")}
		snap := &fakeSnapshot{}
		// Stored oldest-first: the snapshot blob carries no ordering of
		// its own, the read has to restore newest-first.
		_ = snap.Save(context.Background(), "jobs", []job.Job{
			{ID: "j1", CustomerID: "CUST1", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "j2", CustomerID: "OTHER", CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "j3", CustomerID: "CUST1", CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		})
		svc := newService(jobs, nil, snap)

		views, err := svc.ListForCustomer(context.Background(), sess)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(views) != 2 {
			t.Fatalf("fallback not filtered to owner: %v", views)
		}
		if views[0].ID != "j3" || views[1].ID != "j1" {
			t.Fatalf("fallback not newest-first: got %s, %s", views[0].ID, views[1].ID)
		}
	})
}

func TestListAll_SnapshotFallback(t *testing.T) {
	jobs := &fakeJobRepo{listErr: errors.New("store down")}
	snap := &fakeSnapshot{}
	_ = snap.Save(context.Background(), "jobs", []job.Job{
		{ID: "old", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "new", CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	})
	svc := newService(jobs, nil, snap)

	rows, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != "new" || rows[1].ID != "old" {
		t.Fatalf("fallback not newest-first: got %s, %s", rows[0].ID, rows[1].ID)
	}
}
