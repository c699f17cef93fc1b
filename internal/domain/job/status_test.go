package job

import "testing"

func TestStatusIsValid(t *testing.T) {
	valid := []Status{
		StatusPlanning, StatusInProgress, StatusOnHold,
		StatusCompleted, StatusCancelled,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}

	for _, s := range []Status{"", "paused", "Planning", "done"} {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestClampProgress(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-1, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{101, 100},
		{1000, 100},
	}
	for _, tc := range cases {
		if got := ClampProgress(tc.in); got != tc.want {
			t.Errorf("ClampProgress(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
