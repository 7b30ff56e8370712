package routes

import (
	"github.com/Dosada05/league-system/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	playerHandler *handlers.PlayerHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	dashboardHandler *handlers.DashboardHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/players", func(r chi.Router) {
		r.Post("/", playerHandler.CreatePlayer)
		r.Get("/", playerHandler.ListPlayers)
		r.Get("/{playerID}", playerHandler.GetPlayerByID)
		r.Put("/{playerID}", playerHandler.UpdatePlayer)
		r.Delete("/{playerID}", playerHandler.DeletePlayer)
		r.Post("/{playerID}/leave-team", playerHandler.LeaveTeam)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", teamHandler.CreateTeam)
		r.Get("/", teamHandler.ListTeams)
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Put("/{teamID}", teamHandler.UpdateTeamName)
		r.Delete("/{teamID}", teamHandler.DeleteTeam)
		r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		r.Post("/swap-players", teamHandler.SwapPlayers)
		r.Post("/generate", teamHandler.GenerateTeams)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Post("/", matchHandler.CreateMatch)
		r.Get("/", matchHandler.ListMatches)
	})

	router.Get("/dashboard", dashboardHandler.GetStats)

	router.Delete("/admin/data", adminHandler.ResetData)

	router.Get("/ws/matches", webSocketHandler.ServeMatches)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
