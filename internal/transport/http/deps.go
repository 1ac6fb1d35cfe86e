package http

import (
	"github.com/go-lms-auth/internal/infrastructure/kv"
	"github.com/go-lms-auth/internal/infrastructure/mailer"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	// Persistent is the shared durable store backing accounts, reset
	// requests, remembered sessions and the intended-destination marker.
	Persistent kv.Store
	Mailer     mailer.Mailer
}
