package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gridironlabs/gridiron-system/handlers"
	"github.com/gridironlabs/gridiron-system/middleware"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Player    *handlers.PlayerHandler
	Team      *handlers.TeamHandler
	Odds      *handlers.OddsHandler
	Injury    *handlers.InjuryHandler
	Content   *handlers.ContentHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, auth *middleware.Authenticator) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/token", h.Auth.Token)
		r.Post("/refresh", h.Auth.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Get("/me", h.Auth.Me)
			r.Put("/me", h.Auth.UpdateMe)
			r.Delete("/me", h.Auth.DeleteMe)
		})
	})

	router.Route("/content", func(r chi.Router) {
		r.Get("/landing", h.Content.Landing)
		r.Get("/hero", h.Content.Hero)
		r.Get("/testimonials", h.Content.Testimonials)
		r.Get("/faq", h.Content.FAQ)
		r.Get("/pricing", h.Content.Pricing)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.List)
		r.Get("/{gsisID}", h.Player.Get)
		r.Get("/{gsisID}/roster", h.Player.SeasonRoster)
		r.Get("/{gsisID}/props", h.Player.Props)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.List)
		r.Get("/{abbr}", h.Team.Get)
		r.Get("/{abbr}/roster", h.Team.Roster)
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", h.Odds.ListGames)
		r.Get("/{id}", h.Odds.GetGame)
		r.Get("/{id}/odds", h.Odds.GameOdds)
		r.Get("/{id}/compare", h.Odds.Compare)
		r.Get("/{id}/movements", h.Odds.Movements)
		r.Get("/{id}/consensus", h.Odds.Consensus)
		r.Get("/{id}/props", h.Odds.GameProps)
	})

	router.Get("/bookmakers", h.Odds.ListBookmakers)
	router.Get("/props/types", h.Odds.ListPropTypes)

	router.Route("/injuries", func(r chi.Router) {
		r.Get("/", h.Injury.List)
		r.Get("/{tweetID}", h.Injury.Get)
	})

	router.Get("/ws/games/{id}", h.WebSocket.WatchGame)

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(auth.RequireAdmin)

		r.Get("/users", h.Auth.ListUsers)
		r.Get("/users/{id}", h.Auth.GetUser)
		r.Put("/users/{id}/active", h.Auth.SetUserActive)

		r.Put("/players", h.Player.Upsert)
		r.Delete("/players/{gsisID}", h.Player.Delete)
		r.Post("/players/{gsisID}/headshot", h.Player.UploadHeadshot)

		r.Put("/teams", h.Team.Upsert)
		r.Post("/teams/{abbr}/logo", h.Team.UploadLogo)
		r.Put("/rosters", h.Team.UpsertRosterEntry)

		r.Post("/odds/sync", h.Odds.SyncOdds)
		r.Post("/props/sync", h.Odds.SyncProps)
		r.Post("/roster/sync", h.Injury.SyncRoster)

		r.Post("/injuries/ingest", h.Injury.Ingest)
		r.Post("/injuries/{tweetID}/verify", h.Injury.Verify)
		r.Post("/injuries/{tweetID}/reject", h.Injury.Reject)
	})

	return router
}
