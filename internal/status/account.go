package status

import "errors"

// DefaultUsageLimit is assumed until the service reports a limit.
const DefaultUsageLimit = 5

var (
	ErrNoURL            = errors.New("status url not configured")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Usage counts prompt uses against the free-tier limit.
type Usage struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// Locked reports whether a free user has used up the limit.
func (u Usage) Locked() bool {
	return u.Limit > 0 && u.Count >= u.Limit
}

// Account is the response of GET /api/user-status. Usage is nil when the
// service omits it.
type Account struct {
	IsPro bool   `json:"isPro"`
	Usage *Usage `json:"usage,omitempty"`
}
