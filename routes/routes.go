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
	fixtureHandler *handlers.FixtureHandler,
	groupHandler *handlers.GroupHandler,
	venueHandler *handlers.VenueHandler,
	bookingHandler *handlers.BookingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/competitions/{competitionID}", func(r chi.Router) {
		r.Get("/fixture", fixtureHandler.GetFixtureHandler)
		r.Post("/fixture", fixtureHandler.GenerateFixtureHandler)
		r.Post("/groups/draw", groupHandler.DrawGroupsHandler)
	})

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.ListVenuesHandler)
		r.Post("/", venueHandler.CreateVenueHandler)
		r.Get("/{venueID}", venueHandler.GetVenueHandler)
		r.Post("/{venueID}/photo", venueHandler.UploadVenuePhotoHandler)
		r.Get("/{venueID}/bookings", bookingHandler.ListVenueBookingsHandler)
		r.Post("/{venueID}/bookings", bookingHandler.CreateBookingHandler)
	})

	router.Get("/users/{userID}/bookings", bookingHandler.ListUserBookingsHandler)

	router.Get("/ws/competitions/{competitionID}", webSocketHandler.ServeCompetition)
	router.Get("/ws/venues/{venueID}", webSocketHandler.ServeVenue)
}
