package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/go-lms-auth/internal/application/account"
	"github.com/go-lms-auth/internal/application/auth"
	"github.com/go-lms-auth/internal/application/reset"
	"github.com/go-lms-auth/internal/application/session"
	"github.com/go-lms-auth/internal/config"
	"github.com/go-lms-auth/internal/transport/http/handler"
	appmiddleware "github.com/go-lms-auth/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	tabStores := appmiddleware.NewTabStores()
	r.Use(tabStores.Attach)

	// 5 requests/second, burst of 10, applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountSvc := account.NewService(account.ServiceDeps{Store: deps.Persistent})
	resetSvc := reset.NewService(reset.ServiceDeps{
		Accounts: accountSvc,
		Store:    deps.Persistent,
		Mailer:   deps.Mailer,
		TTL:      time.Duration(cfg.ResetCodeTTLMinutes) * time.Minute,
	})

	// The session tier split depends on the request's client context,
	// so the auth facade is assembled per request.
	authSvc := func(req *http.Request) auth.Service {
		sessionSvc := session.NewService(session.ServiceDeps{
			Persistent: deps.Persistent,
			TabScoped:  appmiddleware.TabStore(req.Context()),
		})
		return auth.NewService(auth.ServiceDeps{
			Accounts: accountSvc,
			Sessions: sessionSvc,
			Reset:    resetSvc,
		})
	}

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	resetH := handler.NewPasswordResetHandler(authSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.Post("/auth/logout", authH.Logout)
		r.Get("/auth/session", authH.GetCurrent)
		r.Get("/auth/require", authH.Require)

		r.With(sensitiveRL.Limit).Post("/password-reset/{action}", resetH.Action)
	})

	return r
}
