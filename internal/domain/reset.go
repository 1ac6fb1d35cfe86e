package domain

// ResetRequest is the pending password-reset slot for one email, stored
// under a per-email key. At most one request is outstanding per email;
// issuing a new code overwrites the old slot.
// ExpiresAt is Unix milliseconds.
type ResetRequest struct {
	Code      string `json:"code"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}
