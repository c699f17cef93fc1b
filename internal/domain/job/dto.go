// internal/domain/job/dto.go
package job

import "time"

type CreateRequest struct {
	QuoteID     string `json:"quote_id" binding:"required"`
	CustomerID  string `json:"customer_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`

	Status             Status     `json:"status"`
	StartDate          *time.Time `json:"start_date"`
	EstimatedEndDate   *time.Time `json:"estimated_end_date"`
	ProgressPercentage *int       `json:"progress_percentage"`

	AdminNotes           string `json:"admin_notes"`
	CustomerVisibleNotes string `json:"customer_visible_notes"`
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Status      *Status `json:"status"`

	StartDate        *time.Time `json:"start_date"`
	EstimatedEndDate *time.Time `json:"estimated_end_date"`
	ActualEndDate    *time.Time `json:"actual_end_date"`

	ProgressPercentage *int `json:"progress_percentage"`

	AdminNotes           *string `json:"admin_notes"`
	CustomerVisibleNotes *string `json:"customer_visible_notes"`
}
