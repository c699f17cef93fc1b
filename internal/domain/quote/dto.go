// internal/domain/quote/dto.go
package quote

// SubmitRequest carries the public quote form. The registration block is
// honoured only when Register is true; otherwise no customer record is
// ever created for the submission.
type SubmitRequest struct {
	Name        string `form:"name" json:"name" binding:"required,max=255"`
	Email       string `form:"email" json:"email" binding:"required,max=255"`
	Phone       string `form:"phone" json:"phone" binding:"max=30"`
	Company     string `form:"company" json:"company" binding:"max=255"`
	Location    string `form:"location" json:"location" binding:"max=255"`
	ProjectArea string `form:"project_area" json:"project_area" binding:"max=50"`
	ProjectType string `form:"project_type" json:"project_type" binding:"max=100"`
	Budget      string `form:"budget" json:"budget" binding:"max=100"`
	Message     string `form:"message" json:"message" binding:"max=5000"`

	Register bool   `form:"register" json:"register"`
	Password string `form:"password" json:"password"`
	Address  string `form:"address" json:"address" binding:"max=500"`
}

// StatusUpdateRequest is a partial update: only supplied fields change.
type StatusUpdateRequest struct {
	Status     Status  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

// ProposalUpdateRequest is the admin bulk update of negotiation fields.
// AttachmentURLs arrives as a comma-delimited string from the admin form
// and is normalized to a list before persistence.
type ProposalUpdateRequest struct {
	Status               Status   `json:"status" binding:"required"`
	AdminNotes           string   `json:"admin_notes"`
	ProposalDocumentURL  string   `json:"proposal_document_url"`
	QuoteAmount          *float64 `json:"quote_amount"`
	AttachmentURLs       string   `json:"attachment_urls"`
	CustomerVisibleNotes string   `json:"customer_visible_notes"`
	ProposalDescription  string   `json:"proposal_description"`
	ProposedTimeline     string   `json:"proposed_timeline"`
}

type SubmitResult struct {
	QuoteID       string `json:"quote_id"`
	CustomerID    string `json:"customer_id,omitempty"`
	AttachmentURL string `json:"attachment_url,omitempty"`
}
