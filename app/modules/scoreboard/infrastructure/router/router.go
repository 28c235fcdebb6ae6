package scoreboardrouter

import (
	scoreboardhandlers "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Options controls the guards placed in front of the handlers.
type Options struct {
	EditKey        string
	AllowedOrigins []string
	WriteRPS       float64
	WriteBurst     int
}

// RegisterRoutes mounts the scoreboard endpoints on httpRouter.
func RegisterRoutes(httpRouter chi.Router, handlers scoreboardhandlers.Handlers, opts Options) {
	httpRouter.Get("/healthz", handlers.HandleHealth)

	limiter := scoreboardhandlers.NewIPRateLimiter(rate.Limit(opts.WriteRPS), opts.WriteBurst)

	httpRouter.Route("/api", func(r chi.Router) {
		r.Use(scoreboardhandlers.CORSMiddleware(opts.AllowedOrigins))

		r.Get("/scores", handlers.HandleGetScores)
		r.Get("/scores/{categoryID}", handlers.HandleGetScore)
		r.Get("/history", handlers.HandleGetHistory)
		r.Get("/history/export", handlers.HandleExportHistory)

		r.Group(func(r chi.Router) {
			if opts.WriteRPS > 0 {
				r.Use(scoreboardhandlers.RateLimitMiddleware(limiter))
			}
			r.Use(scoreboardhandlers.RequireEditKey(opts.EditKey))
			r.Post("/score", handlers.HandleUpdateScore)
		})
	})
}
