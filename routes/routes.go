package routes

import (
	"net/http"

	_ "github.com/Dosada05/league-system/docs"
	"github.com/Dosada05/league-system/handlers"
	"github.com/Dosada05/league-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	ReportRateLimit float64
	ReportRateBurst int
}

type Handlers struct {
	Auth        *handlers.AuthHandler
	Team        *handlers.TeamHandler
	Player      *handlers.PlayerHandler
	Competition *handlers.CompetitionHandler
	Fixture     *handlers.FixtureHandler
	Result      *handlers.ResultHandler
	WebSocket   *handlers.WebSocketHandler
}

func SetupRoutes(r chi.Router, h Handlers, opts Options) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(opts.JWTSecret))
	admin := func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireAdmin)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket подписка на канал доставки
	r.Get("/ws/channels/{channel}", h.WebSocket.ServeWs)

	r.Post("/auth/login", h.Auth.AdminLogin)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Get("/{teamID}", h.Team.GetTeamByID)

		r.Group(func(r chi.Router) {
			admin(r)
			r.Post("/", h.Team.CreateTeam)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
		})
	})

	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListPlayers)
		r.Get("/{playerID}/status", h.Player.GetPlayerStatus)
		r.Get("/{playerID}/h2h/{opponentID}", h.Result.HeadToHead)

		r.Group(func(r chi.Router) {
			admin(r)
			r.Post("/", h.Player.RegisterPlayer)
			r.Post("/assign", h.Player.AssignTeam)
			r.Put("/{playerID}", h.Player.RenamePlayer)
			r.Delete("/{playerID}", h.Player.DeletePlayer)
		})
	})

	r.Route("/competitions", func(r chi.Router) {
		r.Get("/", h.Competition.ListCompetitions)

		r.Route("/{competitionID}", func(r chi.Router) {
			r.Get("/", h.Competition.GetCompetition)
			r.Get("/participants", h.Competition.ListParticipants)
			r.Get("/fixtures", h.Fixture.ListFixtures)
			r.Get("/players/{playerID}/next", h.Result.NextFixture)

			// Результаты сообщают игроки, поэтому без авторизации, но с ограничением частоты
			r.With(middleware.RateLimit(opts.ReportRateLimit, opts.ReportRateBurst)).
				Post("/results", h.Result.ReportResult)

			r.Group(func(r chi.Router) {
				admin(r)
				r.Delete("/", h.Competition.DeleteCompetition)
				r.Put("/channels/{role}", h.Competition.SetChannel)
				r.Post("/participants", h.Competition.AddParticipants)
				r.Delete("/participants/{participantType}/{participantID}", h.Competition.RemoveParticipant)
				r.Post("/fixtures", h.Fixture.GenerateFixtures)
			})
		})

		r.Group(func(r chi.Router) {
			admin(r)
			r.Post("/", h.Competition.CreateCompetition)
		})
	})

	r.Group(func(r chi.Router) {
		admin(r)
		r.Post("/confirmations/{token}", h.Fixture.ResolveConfirmation)
		r.Post("/fixtures/{fixtureID}/complete", h.Fixture.CompleteFixture)
	})
}
