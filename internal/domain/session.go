package domain

import "time"

// Session identifies the currently authenticated user within the client
// context. Exactly one session may be current at a time, stored in either
// the persistent or the tab-scoped tier depending on the "remember"
// choice made at login.
type Session struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
