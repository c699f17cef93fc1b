// internal/domain/quote/entity.go
package quote

import (
	"time"

	"github.com/lib/pq"
)

// Quote is a customer's request for a design/build project and its
// negotiation state. CustomerID is nullable: a quote exists without a
// linked customer unless the submitter opted in to registration. The quote
// stays reachable by customer_email either way, so customer-facing reads
// must query both keys and de-duplicate by id.
type Quote struct {
	ID         string  `json:"id" db:"id"`
	CustomerID *string `json:"customer_id" db:"customer_id"`

	CustomerName  string  `json:"customer_name" db:"customer_name"`
	CustomerEmail string  `json:"customer_email" db:"customer_email"`
	CustomerPhone *string `json:"customer_phone,omitempty" db:"customer_phone"`

	ProjectType        string  `json:"project_type" db:"project_type"`
	ProjectDescription *string `json:"project_description,omitempty" db:"project_description"`
	Budget             *string `json:"budget,omitempty" db:"budget"`
	Location           *string `json:"location,omitempty" db:"location"`

	Status     Status  `json:"status" db:"status"`
	AdminNotes *string `json:"admin_notes,omitempty" db:"admin_notes"`

	// Negotiation fields, visible to both admin and the owning customer.
	ProposalDocumentURL  *string        `json:"proposal_document_url,omitempty" db:"proposal_document_url"`
	QuoteAmount          *float64       `json:"quote_amount,omitempty" db:"quote_amount"`
	AttachmentURLs       pq.StringArray `json:"attachment_urls" db:"attachment_urls"`
	CustomerVisibleNotes *string        `json:"customer_visible_notes,omitempty" db:"customer_visible_notes"`
	ProposalDescription  *string        `json:"proposal_description,omitempty" db:"proposal_description"`
	ProposedTimeline     *string        `json:"proposed_timeline,omitempty" db:"proposed_timeline"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerView is the quote shape exposed on the customer-facing read
// path. admin_notes never leaves the admin surface.
type CustomerView struct {
	ID                   string    `json:"id"`
	CustomerID           *string   `json:"customer_id"`
	CustomerName         string    `json:"customer_name"`
	CustomerEmail        string    `json:"customer_email"`
	CustomerPhone        *string   `json:"customer_phone,omitempty"`
	ProjectType          string    `json:"project_type"`
	ProjectDescription   *string   `json:"project_description,omitempty"`
	Budget               *string   `json:"budget,omitempty"`
	Location             *string   `json:"location,omitempty"`
	Status               Status    `json:"status"`
	ProposalDocumentURL  *string   `json:"proposal_document_url,omitempty"`
	QuoteAmount          *float64  `json:"quote_amount,omitempty"`
	AttachmentURLs       []string  `json:"attachment_urls"`
	CustomerVisibleNotes *string   `json:"customer_visible_notes,omitempty"`
	ProposalDescription  *string   `json:"proposal_description,omitempty"`
	ProposedTimeline     *string   `json:"proposed_timeline,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ToCustomerView strips admin-only fields from a quote.
func (q *Quote) ToCustomerView() CustomerView {
	urls := []string(q.AttachmentURLs)
	if urls == nil {
		urls = []string{}
	}
	return CustomerView{
		ID:                   q.ID,
		CustomerID:           q.CustomerID,
		CustomerName:         q.CustomerName,
		CustomerEmail:        q.CustomerEmail,
		CustomerPhone:        q.CustomerPhone,
		ProjectType:          q.ProjectType,
		ProjectDescription:   q.ProjectDescription,
		Budget:               q.Budget,
		Location:             q.Location,
		Status:               q.Status,
		ProposalDocumentURL:  q.ProposalDocumentURL,
		QuoteAmount:          q.QuoteAmount,
		AttachmentURLs:       urls,
		CustomerVisibleNotes: q.CustomerVisibleNotes,
		ProposalDescription:  q.ProposalDescription,
		ProposedTimeline:     q.ProposedTimeline,
		CreatedAt:            q.CreatedAt,
		UpdatedAt:            q.UpdatedAt,
	}
}
