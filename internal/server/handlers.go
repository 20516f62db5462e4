package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/hrvxo-music/internal/services"
)

const maxBodyBytes = 1 << 20

// API serves the service endpoints.
type API struct {
	backend services.Backend
	logger  *log.Logger
}

// NewAPI creates an [API] backed by backend.
func NewAPI(backend services.Backend, logger *log.Logger) *API {
	return &API{backend: backend, logger: logger}
}

// Routes returns the endpoints served by [API].
func (a *API) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/health", Handler: a.health},
		{Method: http.MethodPost, Path: "/search", Handler: a.search},
		{Method: http.MethodPost, Path: "/create-playlist", Handler: a.createPlaylist},
	}
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchRequest struct {
	Query string `json:"query"`
}

func (a *API) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !a.decode(w, r, &req) {
		return
	}

	results, err := a.backend.Search(r.Context(), req.Query)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (a *API) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePlaylistRequest
	if !a.decode(w, r, &req) {
		return
	}

	resp, err := a.backend.CreatePlaylist(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body into v, answering 400 when it cannot.
func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		a.logger.Debug("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// fail writes err with the status of its kind. Errors without a kind are internal.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		a.logger.Error("unclassified failure", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	switch svcErr.Kind {
	case services.Validation:
		a.logger.Debug("rejected request", "path", r.URL.Path, "reason", svcErr.Message)
	case services.Credential:
		a.logger.Warn("credentials unavailable", "path", r.URL.Path, "error", svcErr.Err)
	default:
		a.logger.Error("upstream failure", "path", r.URL.Path, "error", svcErr.Err)
	}

	writeError(w, svcErr.Kind.StatusCode(), svcErr.Message)
}
