package domain

import (
	"errors"
	"time"
)

// Subscription plans. The billing flow is illustrative: switching plans
// updates the record and nothing else.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

var (
	ErrNotFound    = errors.New("account not found")
	ErrInvalidPlan = errors.New("invalid plan")
)

// Account is the session-scoped profile backing the mocked
// account/subscription views.
type Account struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Plan        string    `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountPatch carries a partial profile update.
type AccountPatch struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// ValidPlan reports whether plan is a known subscription tier.
func ValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanPro
}
