// internal/domain/job/entity.go
package job

import "time"

// Job is the execution-tracking record created from an approved quote.
// Unlike a quote, a job always has an owning customer. Once created, its
// state machine is independent of the source quote's.
type Job struct {
	ID         string `json:"id" db:"id"`
	QuoteID    string `json:"quote_id" db:"quote_id"`
	CustomerID string `json:"customer_id" db:"customer_id"`

	Title       string  `json:"title" db:"title"`
	Description *string `json:"description,omitempty" db:"description"`
	Status      Status  `json:"status" db:"status"`

	StartDate        *time.Time `json:"start_date,omitempty" db:"start_date"`
	EstimatedEndDate *time.Time `json:"estimated_end_date,omitempty" db:"estimated_end_date"`
	ActualEndDate    *time.Time `json:"actual_end_date,omitempty" db:"actual_end_date"`

	ProgressPercentage int `json:"progress_percentage" db:"progress_percentage"`

	AdminNotes           *string `json:"admin_notes,omitempty" db:"admin_notes"`
	CustomerVisibleNotes *string `json:"customer_visible_notes,omitempty" db:"customer_visible_notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerView is the job shape exposed to the owning customer.
type CustomerView struct {
	ID                   string     `json:"id"`
	QuoteID              string     `json:"quote_id"`
	CustomerID           string     `json:"customer_id"`
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	Status               Status     `json:"status"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	EstimatedEndDate     *time.Time `json:"estimated_end_date,omitempty"`
	ActualEndDate        *time.Time `json:"actual_end_date,omitempty"`
	ProgressPercentage   int        `json:"progress_percentage"`
	CustomerVisibleNotes *string    `json:"customer_visible_notes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ToCustomerView strips admin_notes from a job.
func (j *Job) ToCustomerView() CustomerView {
	return CustomerView{
		ID:                   j.ID,
		QuoteID:              j.QuoteID,
		CustomerID:           j.CustomerID,
		Title:                j.Title,
		Description:          j.Description,
		Status:               j.Status,
		StartDate:            j.StartDate,
		EstimatedEndDate:     j.EstimatedEndDate,
		ActualEndDate:        j.ActualEndDate,
		ProgressPercentage:   j.ProgressPercentage,
		CustomerVisibleNotes: j.CustomerVisibleNotes,
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
	}
}
