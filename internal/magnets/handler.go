package magnets

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/shellac-studio/shellac/pkg/handlers"
	"github.com/shellac-studio/shellac/pkg/pagination"
	"github.com/shellac-studio/shellac/pkg/routes"
)

// Handler provides HTTP endpoints for session event operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// CreateRequest is the JSON body accepted by the create endpoint.
type CreateRequest struct {
	AssetID string `json:"assetId"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Client  string `json:"client"`
}

// NewHandler creates a Handler with the given system, logger, and
// pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "magnets"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for session event endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/magnets",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/create", Handler: h.Create},
		},
	}
}

// List returns a paginated list of session events with optional query
// parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single session event by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	se, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, se)
}

// Search accepts a JSON body with pagination and filter criteria and
// returns matching session events.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create anchors an analyzed asset into a new session event.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd, err := req.toCommand()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	se, err := h.sys.Anchor(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, se)
}

func (req CreateRequest) toCommand() (CreateCommand, error) {
	if req.AssetID == "" {
		return CreateCommand{}, ErrMissingAsset
	}

	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return CreateCommand{}, ErrMissingAsset
	}

	if req.Date == "" {
		return CreateCommand{}, ErrMissingDate
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return CreateCommand{}, err
	}

	return CreateCommand{
		AssetID: assetID,
		Title:   req.Title,
		Date:    date,
		Client:  req.Client,
	}, nil
}
