// internal/service/quote/service.go
package quote

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/customer"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/quote"
	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/attachment"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/email"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/reconciler"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const snapshotCollection = "quotes"

// QuoteRepo is the primary record store surface for quotes.
type QuoteRepo interface {
	Create(ctx context.Context, q *quote.Quote) error
	FindByID(ctx context.Context, id string) (*quote.Quote, error)
	List(ctx context.Context) ([]quote.Quote, error)
	ListByEmail(ctx context.Context, email string) ([]quote.Quote, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]quote.Quote, error)
	UpdateStatus(ctx context.Context, id string, status quote.Status, adminNotes *string) error
	UpdateProposal(ctx context.Context, id string, status quote.Status,
		adminNotes, proposalDocumentURL *string, quoteAmount *float64, attachmentURLs []string,
		customerVisibleNotes, proposalDescription, proposedTimeline *string) error
}

// CustomerRepo is consulted when a submitter opted in to registration but
// the account already exists.
type CustomerRepo interface {
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)
}

// Registrar creates the account and customer record for opt-in sign-ups.
type Registrar interface {
	SignUp(ctx context.Context, req *customer.RegisterRequest) (*identity.Session, error)
}

// Uploader validates and stores quote attachments.
type Uploader interface {
	Validate(fileName, contentType string, size int64) error
	Upload(ctx context.Context, fileName, contentType string, data []byte) string
}

// Notifier sends the studio notification email for a new quote.
type Notifier interface {
	NotifyQuoteReceived(n email.QuoteNotification) email.NotifyResult
}

// Broadcaster pushes realtime events to connected admin dashboards.
type Broadcaster interface {
	QuoteReceived(q *quote.Quote)
	QuoteUpdated(q *quote.Quote)
}

// SnapshotStore is the fallback channel consulted when the record store is
// unreachable, and the mirror target for legacy dual writes.
type SnapshotStore interface {
	Save(ctx context.Context, collection string, v interface{}) error
	Load(ctx context.Context, collection string, dest interface{}) error
}

// Upload is an in-memory attachment read from the multipart form.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Service struct {
	quotes       QuoteRepo
	customers    CustomerRepo
	registrar    Registrar
	uploader     Uploader
	notifier     Notifier
	broadcaster  Broadcaster
	snapshots    SnapshotStore
	mirrorWrites bool
	logger       *zap.Logger
}

func NewService(
	quotes QuoteRepo,
	customers CustomerRepo,
	registrar Registrar,
	uploader Uploader,
	notifier Notifier,
	broadcaster Broadcaster,
	snapshots SnapshotStore,
	mirrorWrites bool,
	logger *zap.Logger,
) *Service {
	return &Service{
		quotes:       quotes,
		customers:    customers,
		registrar:    registrar,
		uploader:     uploader,
		notifier:     notifier,
		broadcaster:  broadcaster,
		snapshots:    snapshots,
		mirrorWrites: mirrorWrites,
		logger:       logger,
	}
}

// Submit handles the public quote form. The quote row is the only write
// that can fail the request: attachment upload, notification email and the
// dashboard broadcast are all best-effort. sess is non-nil when the
// submitter was already signed in, in which case the quote links to their
// customer record without any registration step.
func (s *Service) Submit(ctx context.Context, req *quote.SubmitRequest, file *Upload, sess *identity.Session) (*quote.SubmitResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, xerrors.NewFieldError("email", "a valid email address is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, xerrors.NewFieldError("name", "name is required")
	}

	// Attachment validation is a hard failure but the upload itself is
	// not: a quote without its file beats a lost lead.
	var attachmentURL string
	if file != nil {
		if err := s.uploader.Validate(file.FileName, file.ContentType, int64(len(file.Data))); err != nil {
			return nil, err
		}
		attachmentURL = s.uploader.Upload(ctx, file.FileName, file.ContentType, file.Data)
	}

	customerID, err := s.resolveCustomer(ctx, req, sess)
	if err != nil {
		return nil, err
	}

	q := &quote.Quote{
		ID:                 ulid.Make().String(),
		CustomerID:         customerID,
		CustomerName:       strings.TrimSpace(req.Name),
		CustomerEmail:      req.Email,
		CustomerPhone:      optional(req.Phone),
		ProjectType:        req.ProjectType,
		ProjectDescription: optional(buildDescription(req)),
		Budget:             optional(req.Budget),
		Location:           optional(req.Location),
		Status:             quote.InitialStatus(),
	}
	if attachmentURL != "" {
		q.AttachmentURLs = []string{attachmentURL}
	}

	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, err
	}

	s.logger.Info("quote submitted",
		zap.String("quote_id", q.ID),
		zap.String("customer_email", q.CustomerEmail),
		zap.Bool("has_attachment", attachmentURL != ""),
	)

	go s.afterSubmit(q, req, file)

	result := &quote.SubmitResult{QuoteID: q.ID, AttachmentURL: attachmentURL}
	if customerID != nil {
		result.CustomerID = *customerID
	}
	return result, nil
}

// resolveCustomer decides which customer record, if any, the quote links
// to. Without the registration opt-in no customer record is ever created.
func (s *Service) resolveCustomer(ctx context.Context, req *quote.SubmitRequest, sess *identity.Session) (*string, error) {
	if sess != nil {
		id := sess.IdentityID
		return &id, nil
	}
	if !req.Register {
		return nil, nil
	}

	signUp := &customer.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Company:  req.Company,
		Address:  req.Address,
	}

	created, err := s.registrar.SignUp(ctx, signUp)
	if err == nil {
		id := created.IdentityID
		return &id, nil
	}
	if xerrors.Is(err, xerrors.ErrInvalidInput) {
		// The submitter asked for an account; a bad password should be
		// corrected rather than silently dropped.
		return nil, err
	}
	if xerrors.Is(err, xerrors.ErrConflict) {
		existing, lookupErr := s.customers.FindByEmail(ctx, req.Email)
		if lookupErr == nil {
			s.logger.Info("quote linked to already registered customer",
				zap.String("email", req.Email),
			)
			id := existing.ID
			return &id, nil
		}
		return nil, nil
	}

	s.logger.Warn("registration during quote submit failed, continuing without account",
		zap.String("email", req.Email),
		zap.Error(err),
	)
	return nil, nil
}

// afterSubmit runs the best-effort side effects detached from the request.
func (s *Service) afterSubmit(q *quote.Quote, req *quote.SubmitRequest, file *Upload) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	notification := email.QuoteNotification{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Location:    req.Location,
		ProjectArea: req.ProjectArea,
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
		Message:     req.Message,
	}
	if file != nil {
		notification.Attachment = &email.Attachment{
			FileName:    file.FileName,
			ContentType: file.ContentType,
			Data:        file.Data,
		}
	}
	if result := s.notifier.NotifyQuoteReceived(notification); !result.Success {
		s.logger.Warn("quote notification undelivered", zap.String("quote_id", q.ID))
	}

	s.broadcaster.QuoteReceived(q)
	s.mirrorSnapshot(ctx)
}

// UpdateStatus applies the admin status change. admin_notes is only
// touched when the request carries it.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *quote.StatusUpdateRequest) (*quote.Quote, error) {
	if !req.Status.IsValid() {
		return nil, xerrors.NewFieldError("status", fmt.Sprintf("unknown status %q", req.Status))
	}

	current, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quote.CanTransition(current.Status, req.Status) {
		return nil, xerrors.NewFieldError("status",
			fmt.Sprintf("cannot move quote from %q to %q", current.Status, req.Status))
	}

	if err := s.quotes.UpdateStatus(ctx, id, req.Status, req.AdminNotes); err != nil {
		return nil, err
	}

	updated, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote status updated",
		zap.String("quote_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(req.Status)),
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.broadcaster.QuoteUpdated(updated)
		s.mirrorSnapshot(ctx)
	}()

	return updated, nil
}

// UpdateProposal replaces the negotiation fields wholesale. Attachment
// URLs arrive in whatever shape the admin form produced and are
// normalized to a clean list first.
func (s *Service) UpdateProposal(ctx context.Context, id string, req *quote.ProposalUpdateRequest) (*quote.Quote, error) {
	if !req.Status.IsValid() {
		return nil, xerrors.NewFieldError("status", fmt.Sprintf("unknown status %q", req.Status))
	}

	urls := attachment.NormalizeURLList(req.AttachmentURLs)

	err := s.quotes.UpdateProposal(ctx, id, req.Status,
		optional(req.AdminNotes), optional(req.ProposalDocumentURL), req.QuoteAmount, urls,
		optional(req.CustomerVisibleNotes), optional(req.ProposalDescription), optional(req.ProposedTimeline))
	if err != nil {
		return nil, err
	}

	updated, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote proposal updated", zap.String("quote_id", id))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.broadcaster.QuoteUpdated(updated)
		s.mirrorSnapshot(ctx)
	}()

	return updated, nil
}

// Get returns the full quote, admin fields included.
func (s *Service) Get(ctx context.Context, id string) (*quote.Quote, error) {
	return s.quotes.FindByID(ctx, id)
}

// ListAll is the admin list view, served from the record store with the
// snapshot as fallback.
func (s *Service) ListAll(ctx context.Context) ([]quote.Quote, error) {
	rows, fromFallback, err := reconciler.Read(ctx,
		s.quotes.List,
		s.loadSnapshot,
	)
	if err != nil {
		return nil, err
	}
	if fromFallback {
		s.logger.Warn("quote list served from snapshot fallback")
	}
	return rows, nil
}

// ListForCustomer returns the caller's quotes. Quotes are reachable by
// customer_email and by customer_id, and a customer can hold quotes under
// either key, so both queries run and the results merge de-duplicated by
// quote id. admin_notes never appears in the result.
func (s *Service) ListForCustomer(ctx context.Context, sess *identity.Session) ([]quote.CustomerView, error) {
	primary := func(ctx context.Context) ([]quote.Quote, error) {
		byEmail, err := s.quotes.ListByEmail(ctx, sess.Email)
		if err != nil {
			return nil, err
		}
		byID, err := s.quotes.ListByCustomerID(ctx, sess.IdentityID)
		if err != nil {
			return nil, err
		}
		return reconciler.MergeByID(func(q quote.Quote) string { return q.ID }, byEmail, byID), nil
	}

	fallback := func(ctx context.Context) ([]quote.Quote, error) {
		all, err := s.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		var mine []quote.Quote
		for _, q := range all {
			if s.ownedBy(&q, sess) {
				mine = append(mine, q)
			}
		}
		return mine, nil
	}

	rows, fromFallback, err := reconciler.Read(ctx, primary, fallback)
	if err != nil {
		return nil, err
	}
	if fromFallback {
		s.logger.Warn("customer quote list served from snapshot fallback",
			zap.String("identity_id", sess.IdentityID),
		)
	}

	views := make([]quote.CustomerView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].ToCustomerView())
	}
	return views, nil
}

// GetForCustomer returns one quote to its owner, admin fields stripped.
func (s *Service) GetForCustomer(ctx context.Context, sess *identity.Session, id string) (*quote.CustomerView, error) {
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.ownedBy(q, sess) {
		return nil, xerrors.Wrap(xerrors.ErrForbidden, "quote belongs to another customer")
	}

	view := q.ToCustomerView()
	return &view, nil
}

func (s *Service) ownedBy(q *quote.Quote, sess *identity.Session) bool {
	if strings.EqualFold(q.CustomerEmail, sess.Email) {
		return true
	}
	return q.CustomerID != nil && *q.CustomerID == sess.IdentityID
}

// loadSnapshot reads the fallback rows and restores the newest-first
// order the primary queries produce server-side; the snapshot blob
// carries no ordering guarantee of its own.
func (s *Service) loadSnapshot(ctx context.Context) ([]quote.Quote, error) {
	var rows []quote.Quote
	if err := s.snapshots.Load(ctx, snapshotCollection, &rows); err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

// mirrorSnapshot refreshes the fallback snapshot after writes. Only active
// while the legacy dual-write mode is on.
func (s *Service) mirrorSnapshot(ctx context.Context) {
	if !s.mirrorWrites {
		return
	}

	rows, err := s.quotes.List(ctx)
	if err != nil {
		s.logger.Warn("snapshot mirror skipped, record store unavailable", zap.Error(err))
		return
	}
	if err := s.snapshots.Save(ctx, snapshotCollection, rows); err != nil {
		s.logger.Warn("snapshot mirror write failed", zap.Error(err))
	}
}

func buildDescription(req *quote.SubmitRequest) string {
	var parts []string
	if msg := strings.TrimSpace(req.Message); msg != "" {
		parts = append(parts, msg)
	}
	if area := strings.TrimSpace(req.ProjectArea); area != "" {
		parts = append(parts, fmt.Sprintf("Project Area: %s m²", area))
	}
	if company := strings.TrimSpace(req.Company); company != "" {
		parts = append(parts, fmt.Sprintf("Company: %s", company))
	}
	return strings.Join(parts, "\n\n")
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
