package trades

import (
	"log/slog"
	"net/http"

	"github.com/termsight/termsight/pkg/handlers"
	"github.com/termsight/termsight/pkg/pagination"
	"github.com/termsight/termsight/pkg/routes"
)

// Handler provides HTTP endpoints for trade record operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "trades"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for trade record endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/trade-records",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{tradeId}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
		},
	}
}

// List returns a paginated list of trade records with optional filters.
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

// Find returns a single trade record by its trade identifier.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	tradeID := r.PathValue("tradeId")
	if tradeID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingTradeID)
		return
	}

	record, err := h.sys.FindByTradeID(r.Context(), tradeID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}

// Create registers a new trade record from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	record, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, record)
}
