package model

import "time"

// Status is the lifecycle state of a directory account.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Role tags recognized by the directory. A user may carry several.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleUser   = "USER"
)

// User represents a directory account. The remote directory owns it; the
// console only holds it transiently per request.
type User struct {
	ID         string       `json:"id"`
	Username   string       `json:"username"`
	Email      string       `json:"email"`
	Name       string       `json:"name"`
	Roles      []string     `json:"roles"`
	Status     Status       `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	AuditTrail []AuditEntry `json:"auditTrail,omitempty"` // populated on detail reads only
}

// AuditEntry is one recorded action against a user account.
type AuditEntry struct {
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details,omitempty"`
}
