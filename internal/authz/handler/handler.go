package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lear/internal/authz"
	bmodels "lear/internal/business/models"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/platform/httputil"
	"lear/pkg/requestcontext"
)

// Service is the subset of authz.Service the handler needs.
type Service interface {
	GetAllowableActions(ctx context.Context, caller authz.CallerContext, identifier string, legalTypeHint bmodels.LegalType) (*authz.AllowableActions, error)
	GetAllowed(state bmodels.State, legalType bmodels.LegalType, caller authz.CallerContext) []authz.AllowedName
}

// Handler serves the allowable-actions endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the routes on r. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/businesses/{identifier}/allowable", h.HandleAllowableActions)
	r.Get("/allowable/{legalType}/{state}", h.HandleAllowed)
}

// HandleAllowableActions returns the filing descriptors, submission link and view-all flag.
// The legalType query parameter names the legal type of a bootstrap without a business.
func (h *Handler) HandleAllowableActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identifier := chi.URLParam(r, "identifier")
	caller := authz.CallerFrom(requestcontext.Caller(ctx))

	actions, err := h.service.GetAllowableActions(ctx, caller, identifier, bmodels.LegalType(r.URL.Query().Get("legalType")))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve allowable actions",
			"request_id", requestcontext.RequestID(ctx),
			"identifier", identifier,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"allowableActions": actions})
}

// HandleAllowed is the legacy projection keyed by legal type and state only.
func (h *Handler) HandleAllowed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lt := bmodels.LegalType(strings.ToUpper(chi.URLParam(r, "legalType")))
	state, ok := bmodels.ParseState(chi.URLParam(r, "state"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid business state"))
		return
	}
	if !lt.IsKnown() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid legal type"))
		return
	}
	caller := authz.CallerFrom(requestcontext.Caller(ctx))
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"allowedFilingTypes": h.service.GetAllowed(state, lt, caller),
	})
}
