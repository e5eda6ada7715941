package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"outreach/internal/audience"
	"outreach/internal/dispatch"
	"outreach/internal/domain"
	"outreach/internal/observability"
	"outreach/internal/template"
)

type API struct {
	Dispatcher *dispatch.Dispatcher
}

func (a *API) Register(mux *mux.Router) {
	mux.HandleFunc("/v1/campaigns/launch", a.handleLaunch).Methods(http.MethodPost)
	mux.HandleFunc("/v1/templates/preview", a.handlePreview).Methods(http.MethodPost)
	mux.HandleFunc("/v1/templates/{channel}", a.handleTemplates).Methods(http.MethodGet)
	mux.HandleFunc("/v1/audience/filters", a.handleFilters).Methods(http.MethodGet)
	mux.HandleFunc("/v1/audience/reach", a.handleReach).Methods(http.MethodPost)
}

type launchRequest struct {
	domain.Campaign

	// Filters is the quick-filter selection from the targeting step.
	// Reach display only; dispatch targets the full directory.
	Filters []string `json:"filters,omitempty"`
}

func (a *API) handleLaunch(w http.ResponseWriter, r *http.Request) {
	var req launchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.APIRequests.WithLabelValues("/v1/campaigns/launch", "400").Inc()
		http.Error(w, ErrInvalidJSON, http.StatusBadRequest)
		return
	}

	summary, err := a.Dispatcher.Launch(r.Context(), req.Campaign)
	if err != nil {
		status := launchErrorStatus(err)
		slog.Error("campaign launch failed",
			"err", err,
			"name", req.Name,
			"channel", string(req.Channel),
			"status", status,
		)
		observability.APIRequests.WithLabelValues("/v1/campaigns/launch", strconv.Itoa(status)).Inc()
		http.Error(w, err.Error(), status)
		return
	}

	observability.APIRequests.WithLabelValues("/v1/campaigns/launch", "200").Inc()
	writeJSON(w, http.StatusOK, summary)
}

func launchErrorStatus(err error) int {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var ce *domain.ConfigurationError
	if errors.As(err, &ce) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func (a *API) handleTemplates(w http.ResponseWriter, r *http.Request) {
	ch := domain.Channel(mux.Vars(r)["channel"])
	if !ch.Valid() {
		observability.APIRequests.WithLabelValues("/v1/templates", "400").Inc()
		http.Error(w, ErrUnknownChannel, http.StatusBadRequest)
		return
	}
	list := template.ForChannel(ch)
	if list == nil {
		list = []domain.MessageTemplate{}
	}
	observability.APIRequests.WithLabelValues("/v1/templates", "200").Inc()
	writeJSON(w, http.StatusOK, list)
}

type previewRequest struct {
	Body string `json:"body"`
}

func (a *API) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidJSON, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"preview": template.Preview(req.Body)})
}

func (a *API) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, audience.Filters)
}

type reachRequest struct {
	Filters []string `json:"filters"`
}

type reachResponse struct {
	All   bool `json:"all"`
	Reach int  `json:"reach"`
}

func (a *API) handleReach(w http.ResponseWriter, r *http.Request) {
	var req reachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidJSON, http.StatusBadRequest)
		return
	}
	reach := audience.ComputeReach(audience.Filters, req.Filters)
	if reach == audience.ReachAll {
		writeJSON(w, http.StatusOK, reachResponse{All: true})
		return
	}
	writeJSON(w, http.StatusOK, reachResponse{Reach: reach})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
