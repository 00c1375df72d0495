package httpapi

import (
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the HTTP surface. Auth routes carry a per-IP rate limit;
// admin routes require the admin role on top of a valid token.
func NewRouter(cfg *infra.Config, app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	var lookup middleware.CountryLookup
	if app.Geo != nil {
		lookup = app.Geo.CountryCode
	}
	r.Use(middleware.I18N(cfg.DefaultLocale, lookup))

	r.Get("/", app.Root)
	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/metrics/sse", app.MetricsStream)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
				r.Post("/register", app.AuthRegister)
				r.Post("/login", app.AuthLogin)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(cfg.JWTSecret))
				r.Get("/me", app.AuthMe)
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/chats", app.ChatsList)
			r.Get("/chats/{chatID}", app.ChatMessages)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(cfg.JWTSecret))
				r.Post("/chats/{chatID}/send", app.ChatSend)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", app.EventsList)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(cfg.JWTSecret))
				r.Post("/{id}/register", app.EventsRegister)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(cfg.JWTSecret))
				r.Use(middleware.RequireRole(string(domain.UserRoleAdmin)))
				r.Post("/", app.EventsCreate)
			})
		})

		r.Route("/mail", func(r chi.Router) {
			r.Get("/", app.MailList)
			r.Post("/compose", app.MailCompose)
			r.Post("/{id}/archive", app.MailArchive)
			r.Delete("/{id}", app.MailDelete)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", app.CampaignsList)
			r.With(middleware.OptionalAuthJWT(cfg.JWTSecret)).Post("/{id}/donate", app.CampaignsDonate)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(cfg.JWTSecret))
				r.Use(middleware.RequireRole(string(domain.UserRoleAdmin)))
				r.Post("/", app.CampaignsCreate)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuthJWT(cfg.JWTSecret))
			r.Use(middleware.RequireRole(string(domain.UserRoleAdmin)))
			r.Get("/users", app.AdminUsers)
			r.Get("/donations", app.AdminDonations)
		})
	})

	return r
}
