package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// ConferenceSuccessResponse is the success envelope for single-conference endpoints.
type ConferenceSuccessResponse struct {
	Data  ConferenceForm    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ConferenceListSuccessResponse is the success envelope for conference lists.
type ConferenceListSuccessResponse struct {
	Data  []ConferenceForm  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ConferenceQueryResponse is the data of POST /conferences/query.
type ConferenceQueryResponse struct {
	Items []ConferenceForm `json:"items"`
	Page  helpers.PageMeta `json:"page"`
}

// BoolSuccessResponse is the success envelope of registration and wishlist changes.
type BoolSuccessResponse struct {
	Data  bool              `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StringSuccessResponse is the success envelope of GET /announcement.
type StringSuccessResponse struct {
	Data  string            `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference owned by the caller. Missing city, topics and maxAttendees get defaults; seatsAvailable starts at maxAttendees. A confirmation email is queued for the organizer.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body ConferenceRequest true "Conference data"
// @Success 201 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.CreateConference(r.Context(), user, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toConferenceForm(conf, ""))
}

// GetConference godoc
// @Summary Get a conference
// @Tags conferences
// @Produce json
// @Param key path string true "Websafe conference key"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{key} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	conf, err := c.Service.GetConference(r.Context(), key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForm(conf.Conference, conf.OrganizerDisplayName))
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Only the organizer may update. Changing maxAttendees moves seatsAvailable by the same amount and cannot go below the seats already taken.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Websafe conference key"
// @Param conference body ConferenceRequest true "Fields to change"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /conferences/{key} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.UpdateConference(r.Context(), user, key, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForm(conf.Conference, conf.OrganizerDisplayName))
}

// ListCreated godoc
// @Summary List conferences created by the caller
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences/created [get]
func (c *ConferenceController) ListCreated(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	confs, err := c.Service.ListCreated(r.Context(), user)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForms(confs))
}

// QueryConferences godoc
// @Summary Query conferences
// @Description Filters are ANDed. Fields: city, topics, month, maxAttendees. Operators: =, >, >=, <, <=, != (or EQ, GT, GTEQ, LT, LTEQ, NE). Only one field may use a non-equality operator; results are ordered by that field, then by name. Filters may also be given as an AIP-160 expression in the filter query parameter.
// @Tags conferences
// @Accept json
// @Produce json
// @Param query body QueryRequest false "Filter triples"
// @Param filter query string false "AIP-160 filter, e.g. city = \"London\" AND maxAttendees > 10"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ConferenceQueryResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	filters, ok := readFilters(w, r)
	if !ok {
		return
	}
	page := helpers.ParsePagination(r)
	confs, err := c.Service.QueryConferences(r.Context(), filters, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ConferenceQueryResponse{
		Items: toConferenceForms(confs),
		Page:  helpers.NewPageMeta(page, len(confs)),
	})
}

// readFilters collects filter triples from the JSON body and the AIP filter
// query parameter.
func readFilters(w http.ResponseWriter, r *http.Request) ([]domain.RawFilter, bool) {
	var req QueryRequest
	if !helpers.DecodeOptional(w, r, &req) {
		return nil, false
	}
	filters := req.Filters
	if expr := r.URL.Query().Get("filter"); expr != "" {
		parsed, err := query.ParseAIPFilter(expr)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return nil, false
		}
		filters = append(filters, parsed...)
	}
	return filters, true
}

// ListAttending godoc
// @Summary List conferences the caller is registered for
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences/attending [get]
func (c *ConferenceController) ListAttending(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	confs, err := c.Service.ListAttending(r.Context(), user)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toConferenceForms(confs))
}

// Register godoc
// @Summary Register for a conference
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Param key path string true "Websafe conference key"
// @Success 200 {object} controllers.BoolSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or sold out)"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /conferences/{key}/registration [post]
func (c *ConferenceController) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	registered, err := c.Service.Register(r.Context(), user, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, registered)
}

// Unregister godoc
// @Summary Unregister from a conference
// @Description Returns false when the caller was not registered.
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Param key path string true "Websafe conference key"
// @Success 200 {object} controllers.BoolSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /conferences/{key}/registration [delete]
func (c *ConferenceController) Unregister(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, ok := pathKey(w, r, "key", domain.KindConference)
	if !ok {
		return
	}
	removed, err := c.Service.Unregister(r.Context(), user, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, removed)
}

// GetAnnouncement godoc
// @Summary Nearly sold out announcement
// @Description Empty when no conference is nearly sold out.
// @Tags conferences
// @Produce json
// @Success 200 {object} controllers.StringSuccessResponse
// @Router /announcement [get]
func (c *ConferenceController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.GetAnnouncement(r.Context()))
}
