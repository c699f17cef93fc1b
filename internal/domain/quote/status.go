// internal/domain/quote/status.go
package quote

type Status string

const (
	StatusPending    Status = "pending"
	StatusReviewed   Status = "reviewed"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// InitialStatus is the status every quote is created with.
func InitialStatus() Status {
	return StatusPending
}

// IsValid reports whether s is a known quote status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected,
		StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether an admin may move a quote from one status
// to another. Transitions are intentionally unrestricted: the status
// selector allows any status to be set, review is optional, and terminal
// statuses may still be reopened. Whether e.g. completed -> pending should
// stay legal is an open product question; until it is answered this stays
// permissive.
func CanTransition(from, to Status) bool {
	return from.IsValid() && to.IsValid()
}

// CanSpawnJob reports whether a quote in the given status is eligible to
// materialize a job. Only approved quotes qualify; the one-job-per-quote
// rule is enforced against the job collection at creation time.
func CanSpawnJob(current Status) bool {
	return current == StatusApproved
}

// ProjectTypeLabels maps quote form project type values to the labels used
// in project descriptions and notification emails.
var ProjectTypeLabels = map[string]string{
	"residential": "Residential Design & Execution",
	"office":      "Office Design & Execution",
	"cafe":        "Cafe & Restaurant Design & Execution",
	"clinic":      "Clinic & Healthcare Design & Execution",
	"retail":      "Retail Store Design & Execution",
}
