package model

import "time"

// Default preference values applied when a user has none yet.
const (
	DefaultTheme    = "light"
	DefaultLanguage = "en"
)

// Preferences are a user's console settings. A user may have none;
// absence is a valid state, distinct from an error.
type Preferences struct {
	Theme                string    `json:"theme"`
	Language             string    `json:"language"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
