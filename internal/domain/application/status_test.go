package application

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses() {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []Status{"", "open", "PENDING", "in_review"} {
		if ValidStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusReviewed},
		{StatusPending, StatusInterview},
		{StatusPending, StatusRejected},
		{StatusPending, StatusHired},
		{StatusReviewed, StatusInterview},
		{StatusReviewed, StatusRejected},
		{StatusReviewed, StatusHired},
		{StatusInterview, StatusInterview},
		{StatusInterview, StatusRejected},
		{StatusInterview, StatusHired},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusPending},
		{StatusReviewed, StatusPending},
		{StatusReviewed, StatusReviewed},
		{StatusInterview, StatusPending},
		{StatusRejected, StatusPending},
		{StatusRejected, StatusReviewed},
		{StatusRejected, StatusHired},
		{StatusHired, StatusRejected},
		{StatusHired, StatusInterview},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []Status{StatusRejected, StatusHired} {
		for _, to := range Statuses() {
			if CanTransition(terminal, to) {
				t.Fatalf("terminal %s must not transition to %s", terminal, to)
			}
		}
	}
}
