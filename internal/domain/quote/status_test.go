package quote

import "testing"

func TestStatusIsValid(t *testing.T) {
	valid := []Status{
		StatusPending, StatusReviewed, StatusApproved,
		StatusRejected, StatusInProgress, StatusCompleted,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}

	for _, s := range []Status{"", "archived", "Pending", "done"} {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	all := []Status{
		StatusPending, StatusReviewed, StatusApproved,
		StatusRejected, StatusInProgress, StatusCompleted,
	}

	// Any known status may move to any known status, reopening terminal
	// ones included.
	for _, from := range all {
		for _, to := range all {
			if !CanTransition(from, to) {
				t.Errorf("transition %q -> %q should be allowed", from, to)
			}
		}
	}

	if CanTransition(StatusPending, "archived") {
		t.Error("transition to unknown status should be rejected")
	}
	if CanTransition("archived", StatusPending) {
		t.Error("transition from unknown status should be rejected")
	}
}

func TestCanSpawnJob(t *testing.T) {
	if !CanSpawnJob(StatusApproved) {
		t.Error("approved quote should be able to spawn a job")
	}
	for _, s := range []Status{StatusPending, StatusReviewed, StatusRejected, StatusInProgress, StatusCompleted} {
		if CanSpawnJob(s) {
			t.Errorf("%q quote should not spawn a job", s)
		}
	}
}

func TestToCustomerView(t *testing.T) {
	notes := "margin notes"
	q := Quote{ID: "q1", AdminNotes: &notes}

	view := q.ToCustomerView()
	if view.AttachmentURLs == nil {
		t.Error("attachment_urls should serialize as an empty list, not null")
	}
}
