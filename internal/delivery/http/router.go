package http

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Conference *controllers.ConferenceController
	Session    *controllers.SessionController
	Profile    *controllers.ProfileController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Conferences
	mux.HandleFunc("POST /conferences", auth(c.Conference.CreateConference))
	mux.HandleFunc("GET /conferences/created", auth(c.Conference.ListCreated))
	mux.HandleFunc("GET /conferences/attending", auth(c.Conference.ListAttending))
	mux.HandleFunc("POST /conferences/query", c.Conference.QueryConferences)
	mux.HandleFunc("GET /conferences/{key}", c.Conference.GetConference)
	mux.HandleFunc("PUT /conferences/{key}", auth(c.Conference.UpdateConference))
	mux.HandleFunc("POST /conferences/{key}/registration", auth(c.Conference.Register))
	mux.HandleFunc("DELETE /conferences/{key}/registration", auth(c.Conference.Unregister))
	mux.HandleFunc("GET /announcement", c.Conference.GetAnnouncement)

	// Sessions
	mux.HandleFunc("POST /conferences/{key}/sessions", auth(c.Session.CreateSession))
	mux.HandleFunc("GET /conferences/{key}/sessions", c.Session.ListByConference)
	mux.HandleFunc("POST /conferences/{key}/sessions/query", c.Session.QuerySessions)
	mux.HandleFunc("GET /conferences/{key}/sessions/by-time", c.Session.ListByTime)
	mux.HandleFunc("POST /conferences/{key}/sessions/import/sessionize/{sessionizeID}", auth(c.Session.ImportSessionize))
	mux.HandleFunc("GET /sessions/by-speaker", c.Session.ListBySpeaker)
	mux.HandleFunc("GET /sessions/non-workshop", c.Session.ListNonWorkshop)
	mux.HandleFunc("GET /sessions/by-city-and-date", c.Session.ListByCityAndDate)
	mux.HandleFunc("GET /featured-speaker", c.Session.GetFeaturedSpeaker)

	// Wishlist
	mux.HandleFunc("POST /wishlist/{sessionKey}", auth(c.Session.AddToWishlist))
	mux.HandleFunc("DELETE /wishlist/{sessionKey}", auth(c.Session.RemoveFromWishlist))
	mux.HandleFunc("GET /conferences/{key}/wishlist", auth(c.Session.ListWishlist))

	// Profile
	mux.HandleFunc("GET /profile", auth(c.Profile.GetProfile))
	mux.HandleFunc("POST /profile", auth(c.Profile.SaveProfile))

	// Metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
