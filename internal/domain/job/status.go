// internal/domain/job/status.go
package job

type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// InitialStatus is the status every job starts in unless overridden.
func InitialStatus() Status {
	return StatusPlanning
}

// IsValid reports whether s is a known job status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ClampProgress forces a progress percentage into [0,100]. The admin form
// uses a range control so out-of-range values are not reachable through
// normal interaction, but the server clamps anyway.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
