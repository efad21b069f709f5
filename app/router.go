package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	authdomain "github.com/timkene/EKO-FITNESS/app/modules/auth/domain"
	authhandlers "github.com/timkene/EKO-FITNESS/app/modules/auth/infrastructure/handlers"
	matchdayrouter "github.com/timkene/EKO-FITNESS/app/modules/matchday/infrastructure/router"
	ratingrouter "github.com/timkene/EKO-FITNESS/app/modules/rating/infrastructure/router"
	rosterrouter "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/router"
	"github.com/timkene/EKO-FITNESS/app/shared/httpx"
)

// Router assembles the HTTP surface: member routes behind member tokens,
// admin routes behind admin tokens, plus metrics and health probes.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()

	limiter := authhandlers.NewIPRateLimiter(
		rate.Limit(app.Cfg.HTTP.RateLimitPerSecond),
		app.Cfg.HTTP.RateLimitBurst,
	)
	r.Use(authhandlers.RequestIDMiddleware)
	r.Use(authhandlers.CORSMiddleware(app.Cfg.HTTP.CORSAllowedOrigins))
	r.Use(authhandlers.RateLimitMiddleware(limiter))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/football", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authhandlers.RequireRole(app.jwtProvider, authdomain.RoleMember))
			matchdayrouter.MemberRoutes(r, app.matchdayHandlers)
			ratingrouter.MemberRoutes(r, app.ratingHandlers)
			rosterrouter.MemberRoutes(r, app.rosterHandlers)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authhandlers.RequireRole(app.jwtProvider, authdomain.RoleAdmin))
			matchdayrouter.AdminRoutes(r, app.matchdayHandlers)
			ratingrouter.AdminRoutes(r, app.ratingHandlers)
			rosterrouter.AdminRoutes(r, app.rosterHandlers)
		})
	})

	return r
}
