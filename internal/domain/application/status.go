package application

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusHired     Status = "hired"
)

// Statuses lists every legal status, in review order.
func Statuses() []Status {
	return []Status{StatusPending, StatusReviewed, StatusInterview, StatusRejected, StatusHired}
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}

// transitions is the full state machine. rejected and hired are terminal:
// no exits, so a concluded application cannot be reopened through the API.
var transitions = map[Status][]Status{
	StatusPending:   {StatusReviewed, StatusInterview, StatusRejected, StatusHired},
	StatusReviewed:  {StatusInterview, StatusRejected, StatusHired},
	StatusInterview: {StatusInterview, StatusRejected, StatusHired},
	StatusRejected:  {},
	StatusHired:     {},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
