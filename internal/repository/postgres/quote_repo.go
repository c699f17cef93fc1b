// internal/repository/postgres/quote_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/quote"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type QuoteRepository struct {
	db *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const quoteColumns = `id, customer_id, customer_name, customer_email, customer_phone,
	project_type, project_description, budget, location, status, admin_notes,
	proposal_document_url, quote_amount, attachment_urls, customer_visible_notes,
	proposal_description, proposed_timeline, created_at, updated_at`

// Create inserts a quote. attachment_urls is persisted as TEXT[] and is
// never null; an empty list means no attachments.
func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	query := `
		INSERT INTO quotes (
			id, customer_id, customer_name, customer_email, customer_phone,
			project_type, project_description, budget, location, status, attachment_urls
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	if q.AttachmentURLs == nil {
		q.AttachmentURLs = pq.StringArray{}
	}

	err := r.db.QueryRow(ctx, query,
		q.ID, q.CustomerID, q.CustomerName, q.CustomerEmail, q.CustomerPhone,
		q.ProjectType, q.ProjectDescription, q.Budget, q.Location, q.Status, q.AttachmentURLs,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", mapError(err))
	}

	return nil
}

// FindByID retrieves a quote by id.
func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*quote.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	q, err := scanQuote(row)
	if err != nil {
		return nil, mapError(err)
	}

	return q, nil
}

// List returns every quote, newest first. Admin read path.
func (r *QuoteRepository) List(ctx context.Context) ([]quote.Quote, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC`)
}

// ListByEmail returns the quotes reachable by customer_email, newest first.
func (r *QuoteRepository) ListByEmail(ctx context.Context, email string) ([]quote.Quote, error) {
	return r.list(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE customer_email = $1 ORDER BY created_at DESC`,
		strings.ToLower(strings.TrimSpace(email)),
	)
}

// ListByCustomerID returns the quotes reachable by customer_id, newest first.
func (r *QuoteRepository) ListByCustomerID(ctx context.Context, customerID string) ([]quote.Quote, error) {
	return r.list(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID,
	)
}

func (r *QuoteRepository) list(ctx context.Context, query string, args ...interface{}) ([]quote.Quote, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var quotes []quote.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *q)
	}

	return quotes, rows.Err()
}

// UpdateStatus applies the partial status update: admin_notes is only
// touched when supplied.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status quote.Status, adminNotes *string) error {
	var (
		query string
		args  []interface{}
	)

	if adminNotes != nil {
		query = `UPDATE quotes SET status = $1, admin_notes = $2, updated_at = now() WHERE id = $3`
		args = []interface{}{status, *adminNotes, id}
	} else {
		query = `UPDATE quotes SET status = $1, updated_at = now() WHERE id = $2`
		args = []interface{}{status, id}
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("quote", id)
	}

	return nil
}

// UpdateProposal replaces the negotiation fields in one statement. Empty
// optional strings persist as NULL, matching the admin form semantics.
func (r *QuoteRepository) UpdateProposal(ctx context.Context, id string, status quote.Status,
	adminNotes, proposalDocumentURL *string, quoteAmount *float64, attachmentURLs []string,
	customerVisibleNotes, proposalDescription, proposedTimeline *string) error {

	query := `
		UPDATE quotes SET
			status = $1,
			admin_notes = $2,
			proposal_document_url = $3,
			quote_amount = $4,
			attachment_urls = $5,
			customer_visible_notes = $6,
			proposal_description = $7,
			proposed_timeline = $8,
			updated_at = now()
		WHERE id = $9
	`

	if attachmentURLs == nil {
		attachmentURLs = []string{}
	}

	tag, err := r.db.Exec(ctx, query,
		status, adminNotes, proposalDocumentURL, quoteAmount, pq.StringArray(attachmentURLs),
		customerVisibleNotes, proposalDescription, proposedTimeline, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote proposal: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("quote", id)
	}

	return nil
}

func scanQuote(row pgx.Row) (*quote.Quote, error) {
	var q quote.Quote
	err := row.Scan(
		&q.ID, &q.CustomerID, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&q.ProjectType, &q.ProjectDescription, &q.Budget, &q.Location, &q.Status, &q.AdminNotes,
		&q.ProposalDocumentURL, &q.QuoteAmount, &q.AttachmentURLs, &q.CustomerVisibleNotes,
		&q.ProposalDescription, &q.ProposedTimeline, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if q.AttachmentURLs == nil {
		q.AttachmentURLs = pq.StringArray{}
	}
	return &q, nil
}
