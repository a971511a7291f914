package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// DefaultNonWorkshopBefore is the latest start time used by GET /sessions/non-workshop
// when no before parameter is given.
const DefaultNonWorkshopBefore = "19:00"

// SessionSuccessResponse is the success envelope for single-session endpoints.
type SessionSuccessResponse struct {
	Data  SessionForm       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionListSuccessResponse is the success envelope for session lists.
type SessionListSuccessResponse struct {
	Data  []SessionForm     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionQueryResponse is the data of POST /conferences/{key}/sessions/query.
type SessionQueryResponse struct {
	Items []SessionForm    `json:"items"`
	Page  helpers.PageMeta `json:"page"`
}

// ImportResult is the data of the Sessionize import endpoint.
type ImportResult struct {
	Imported int `json:"imported"`
}

// FeaturedSpeakerSuccessResponse is the success envelope of GET /featured-speaker.
type FeaturedSpeakerSuccessResponse struct {
	Data  *domain.FeaturedSpeaker `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Create a session
// @Description Only the conference organizer may add sessions. Missing highlights, duration, typeOfSession and location get defaults.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Websafe conference key"
// @Param session body SessionRequest true "Session data"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{key}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sess, err := c.Service.CreateSession(r.Context(), user, key, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toSessionForm(sess))
}

// ListByConference godoc
// @Summary List sessions of a conference
// @Tags sessions
// @Produce json
// @Param key path string true "Websafe conference key"
// @Param type query string false "Only sessions of this type"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{key}/sessions [get]
func (c *SessionController) ListByConference(w http.ResponseWriter, r *http.Request) {
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	sessions, err := c.Service.ListByConference(r.Context(), key, strings.TrimSpace(r.URL.Query().Get("type")))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(sessions))
}

// QuerySessions godoc
// @Summary Query sessions of a conference
// @Description Filters are ANDed. Fields: typeOfSession, location, date. At most one field may use a non-equality operator.
// @Tags sessions
// @Accept json
// @Produce json
// @Param key path string true "Websafe conference key"
// @Param query body QueryRequest false "Filter triples"
// @Param filter query string false "AIP-160 filter expression"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.SessionQueryResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{key}/sessions/query [post]
func (c *SessionController) QuerySessions(w http.ResponseWriter, r *http.Request) {
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	filters, ok := readFilters(w, r)
	if !ok {
		return
	}
	page := helpers.ParsePagination(r)
	sessions, err := c.Service.QuerySessions(r.Context(), key, filters, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SessionQueryResponse{
		Items: toSessionForms(sessions),
		Page:  helpers.NewPageMeta(page, len(sessions)),
	})
}

// ListByTime godoc
// @Summary List sessions of a conference in a time window
// @Description Sessions on date whose startTime is between start_time and end_time inclusive.
// @Tags sessions
// @Produce json
// @Param key path string true "Websafe conference key"
// @Param date query string true "YYYY-MM-DD"
// @Param start_time query string true "HH:MM"
// @Param end_time query string true "HH:MM"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /conferences/{key}/sessions/by-time [get]
func (c *SessionController) ListByTime(w http.ResponseWriter, r *http.Request) {
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	q := r.URL.Query()
	date, err := domain.ParseDate(q.Get("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return
	}
	start, err := domain.ParseTimeOfDay(q.Get("start_time"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start_time must be HH:MM")
		return
	}
	end, err := domain.ParseTimeOfDay(q.Get("end_time"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end_time must be HH:MM")
		return
	}
	sessions, err := c.Service.ListByTime(r.Context(), key, date, start, end)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(sessions))
}

// ImportSessionize godoc
// @Summary Import sessions from Sessionize
// @Description Creates a session for every non-service session of the published Sessionize schedule.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param key path string true "Websafe conference key"
// @Param sessionizeID path string true "Sessionize event id"
// @Success 200 {object} controllers.ImportResult
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{key}/sessions/import/sessionize/{sessionizeID} [post]
func (c *SessionController) ImportSessionize(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	n, err := c.Service.ImportSessionize(r.Context(), user, key, r.PathValue("sessionizeID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ImportResult{Imported: n})
}

// ListBySpeaker godoc
// @Summary List sessions given by a speaker
// @Tags sessions
// @Produce json
// @Param speaker query string true "Speaker name"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /sessions/by-speaker [get]
func (c *SessionController) ListBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := strings.TrimSpace(r.URL.Query().Get("speaker"))
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "speaker is required")
		return
	}
	sessions, err := c.Service.ListBySpeaker(r.Context(), speaker)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(sessions))
}

// ListNonWorkshop godoc
// @Summary List non-workshop sessions starting no later than a time
// @Tags sessions
// @Produce json
// @Param before query string false "HH:MM (default 19:00)"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /sessions/non-workshop [get]
func (c *SessionController) ListNonWorkshop(w http.ResponseWriter, r *http.Request) {
	before := r.URL.Query().Get("before")
	if before == "" {
		before = DefaultNonWorkshopBefore
	}
	latest, err := domain.ParseTimeOfDay(before)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "before must be HH:MM")
		return
	}
	sessions, err := c.Service.ListNonWorkshopBefore(r.Context(), latest)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(sessions))
}

// ListByCityAndDate godoc
// @Summary List sessions in a city between two dates
// @Tags sessions
// @Produce json
// @Param city query string true "City"
// @Param start_date query string true "YYYY-MM-DD"
// @Param end_date query string true "YYYY-MM-DD"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /sessions/by-city-and-date [get]
func (c *SessionController) ListByCityAndDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := strings.TrimSpace(q.Get("city"))
	if city == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "city is required")
		return
	}
	start, end, ok := dateRange(w, q.Get("start_date"), q.Get("end_date"))
	if !ok {
		return
	}
	sessions, err := c.Service.ListByCityAndDate(r.Context(), city, start, end)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(sessions))
}

func dateRange(w http.ResponseWriter, startStr, endStr string) (time.Time, time.Time, bool) {
	start, err := domain.ParseDate(startStr)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start_date must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := domain.ParseDate(endStr)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end_date must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end_date must not be before start_date")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// AddToWishlist godoc
// @Summary Add a session to the wishlist
// @Description The caller must be registered for the session's conference.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionKey path string true "Websafe session key"
// @Success 200 {object} controllers.BoolSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /wishlist/{sessionKey} [post]
func (c *SessionController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "sessionKey", domain.KindSession)
	if !ok {
		return
	}
	added, err := c.Service.AddToWishlist(r.Context(), user, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, added)
}

// RemoveFromWishlist godoc
// @Summary Remove a session from the wishlist
// @Description Returns false when the session was not wishlisted.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionKey path string true "Websafe session key"
// @Success 200 {object} controllers.BoolSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /wishlist/{sessionKey} [delete]
func (c *SessionController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "sessionKey", domain.KindSession)
	if !ok {
		return
	}
	removed, err := c.Service.RemoveFromWishlist(r.Context(), user, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, removed)
}

// ListWishlist godoc
// @Summary List wishlisted sessions of a conference
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param key path string true "Websafe conference key"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /conferences/{key}/wishlist [get]
func (c *SessionController) ListWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	sessions, err := c.Service.ListWishlist(r.Context(), user, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toSessionForms(sessions))
}

// GetFeaturedSpeaker godoc
// @Summary Featured speaker
// @Description The most recent speaker with more than one session in a conference, or null.
// @Tags sessions
// @Produce json
// @Success 200 {object} controllers.FeaturedSpeakerSuccessResponse
// @Router /featured-speaker [get]
func (c *SessionController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.GetFeaturedSpeaker(r.Context()))
}
