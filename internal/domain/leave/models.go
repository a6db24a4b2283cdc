package leave

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusDenied   = "Denied"
)

type Outcome string

const (
	OutcomeApprove Outcome = "approve"
	OutcomeDeny    Outcome = "deny"
)

func (o Outcome) Status() (string, bool) {
	switch o {
	case OutcomeApprove:
		return StatusApproved, true
	case OutcomeDeny:
		return StatusDenied, true
	default:
		return "", false
	}
}

type Request struct {
	ID            int64      `json:"id"`
	RequesterID   int64      `json:"requesterId"`
	RequesterRole string     `json:"requesterRole"`
	Reason        string     `json:"reason"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	Days          float64    `json:"days"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
}

func (r Request) Terminal() bool {
	return r.Status == StatusApproved || r.Status == StatusDenied
}

// Application is a validated leave submission.
type Application struct {
	RequesterID   int64
	RequesterRole string
	Reason        string
	StartDate     time.Time
	EndDate       time.Time
}

// ApplicationPayload is the wire form of a leave submission.
type ApplicationPayload struct {
	Reason    string `json:"reason"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
