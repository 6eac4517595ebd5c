package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"lear/internal/authz"
	"lear/internal/fees"
	fmodels "lear/internal/filing/models"
	"lear/internal/filing/service"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/platform/httputil"
	"lear/pkg/requestcontext"
)

// Service is the subset of the filing service the handler needs.
type Service interface {
	Save(ctx context.Context, req service.SaveRequest) (*fmodels.Filing, error)
	Get(ctx context.Context, identifier string, filingID int64) (*service.FilingView, error)
	List(ctx context.Context, identifier string) ([]*service.FilingView, error)
	CancelPayment(ctx context.Context, identifier string, filingID int64) (*fmodels.Filing, error)
	Delete(ctx context.Context, identifier string, filingID int64) error
	Review(ctx context.Context, identifier string, filingID int64, caller authz.CallerContext, d service.ReviewDecision) (*fmodels.Filing, error)
	FeePreview(ctx context.Context, identifier string, doc fmodels.Document) ([]fees.FilingTypeCode, error)
	ApplyPayment(ctx context.Context, filingID int64, statusCode string, completedAt time.Time) (*fmodels.Filing, error)
	Complete(ctx context.Context, filingID int64) (*fmodels.Filing, error)
}

// Handler serves the filing endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the business-scoped routes on r. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/businesses/{identifier}", func(r chi.Router) {
		r.Get("/filings", h.HandleList)
		r.Post("/filings", h.HandleCreate)
		r.Post("/filings/{id}", h.HandleCreate)
		r.Get("/filings/{id}", h.HandleGet)
		r.Put("/filings/{id}", h.HandleUpdate)
		r.Patch("/filings/{id}", h.HandleCancelPayment)
		r.Delete("/filings/{id}", h.HandleDelete)
		r.Post("/filings/{id}/review", h.HandleReview)
		r.Post("/fees", h.HandleFees)
	})
}

// RegisterInternal mounts the callbacks used by the payment system and the filer.
// The caller must restrict r to the system role.
func (h *Handler) RegisterInternal(r chi.Router) {
	r.Post("/internal/filings/{id}/payment", h.HandlePayment)
	r.Post("/internal/filings/{id}/complete", h.HandleComplete)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identifier := chi.URLParam(r, "identifier")

	views, err := h.service.List(ctx, identifier)
	if err != nil {
		h.fail(ctx, w, "failed to list filings", identifier, err)
		return
	}
	now := requestcontext.Now(ctx)
	out := make([]map[string]any, 0, len(views))
	for _, v := range views {
		out = append(out, render(v, now))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"filings": out})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identifier := chi.URLParam(r, "identifier")
	id, ok := filingID(w, r)
	if !ok {
		return
	}

	v, err := h.service.Get(ctx, identifier, id)
	if err != nil {
		h.fail(ctx, w, "failed to get filing", identifier, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, render(v, requestcontext.Now(ctx)))
}

// HandleCreate saves a new filing. ?draft=true stores it without submitting.
// A create that names a filing id is passed through so the service can refuse it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var id int64
	if chi.URLParam(r, "id") != "" {
		var ok bool
		if id, ok = filingID(w, r); !ok {
			return
		}
	}
	h.save(w, r, id, true, http.StatusCreated)
}

// HandleUpdate replaces a draft, or submits it when draft is not requested.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := filingID(w, r)
	if !ok {
		return
	}
	h.save(w, r, id, false, http.StatusAccepted)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id int64, create bool, status int) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	identifier := chi.URLParam(r, "identifier")

	body, ok := httputil.DecodeAndPrepare[documentBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	f, err := h.service.Save(ctx, service.SaveRequest{
		Identifier: identifier,
		FilingID:   id,
		Create:     create,
		Draft:      isDraft(r),
		Document:   body.Document(),
		Caller:     authz.CallerFrom(requestcontext.Caller(ctx)),
	})
	if err != nil {
		h.fail(ctx, w, "failed to save filing", identifier, err)
		return
	}
	httputil.WriteJSON(w, status, render(&service.FilingView{Filing: f}, requestcontext.Now(ctx)))
}

// HandleCancelPayment withdraws the invoice of a PENDING filing and returns it to DRAFT.
func (h *Handler) HandleCancelPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identifier := chi.URLParam(r, "identifier")
	id, ok := filingID(w, r)
	if !ok {
		return
	}

	f, err := h.service.CancelPayment(ctx, identifier, id)
	if err != nil {
		h.fail(ctx, w, "failed to cancel payment", identifier, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, render(&service.FilingView{Filing: f}, requestcontext.Now(ctx)))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identifier := chi.URLParam(r, "identifier")
	id, ok := filingID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, identifier, id); err != nil {
		h.fail(ctx, w, "failed to delete filing", identifier, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"message": "Filing deleted."})
}

func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	identifier := chi.URLParam(r, "identifier")
	id, ok := filingID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[reviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	caller := authz.CallerFrom(requestcontext.Caller(ctx))
	f, err := h.service.Review(ctx, identifier, id, caller, service.ReviewDecision{Event: req.event, Comment: req.Comment})
	if err != nil {
		h.fail(ctx, w, "failed to review filing", identifier, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, render(&service.FilingView{Filing: f}, requestcontext.Now(ctx)))
}

// HandleFees previews the fee codes a document would be invoiced with.
func (h *Handler) HandleFees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	identifier := chi.URLParam(r, "identifier")

	body, ok := httputil.DecodeAndPrepare[documentBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	lines, err := h.service.FeePreview(ctx, identifier, body.Document())
	if err != nil {
		h.fail(ctx, w, "failed to resolve fee codes", identifier, err)
		return
	}
	if lines == nil {
		lines = []fees.FilingTypeCode{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"filingTypes": lines})
}

// HandlePayment records a payment completion reported by the payment system.
func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := filingID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[paymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	f, err := h.service.ApplyPayment(ctx, id, req.StatusCode, req.completedAt())
	if err != nil {
		h.fail(ctx, w, "failed to apply payment", strconv.FormatInt(id, 10), err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, render(&service.FilingView{Filing: f}, requestcontext.Now(ctx)))
}

// HandleComplete is called by the filer once the filing has been applied.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := filingID(w, r)
	if !ok {
		return
	}

	f, err := h.service.Complete(ctx, id)
	if err != nil {
		h.fail(ctx, w, "failed to complete filing", strconv.FormatInt(id, 10), err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, render(&service.FilingView{Filing: f}, requestcontext.Now(ctx)))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg, subject string, err error) {
	level := slog.LevelInfo
	if de, ok := dErrors.As(err); !ok || dErrors.HTTPStatus(de.Code) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"subject", subject,
		"error", err,
	)
	httputil.WriteError(w, err)
}

func filingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid filing id"))
		return 0, false
	}
	return id, true
}

func isDraft(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("draft"))
	return v
}

// render returns the stored document with the server-owned header fields merged in.
func render(v *service.FilingView, now time.Time) map[string]any {
	root := make(map[string]any, len(v.Content.Root())+1)
	for k, val := range v.Content.Root() {
		root[k] = val
	}
	header := map[string]any{}
	if h, ok := root["header"].(map[string]any); ok {
		for k, val := range h {
			header[k] = val
		}
	}
	header["name"] = string(v.FilingType)
	header["filingId"] = v.ID
	header["status"] = v.Status
	header["source"] = v.Source
	header["date"] = v.FilingDate
	header["effectiveDate"] = v.EffectiveDate
	header["isFutureEffective"] = v.IsFutureEffective(now)
	header["deletionLocked"] = v.DeletionLocked
	header["withdrawalPending"] = v.WithdrawalPending
	if v.PaymentToken != "" {
		header["paymentToken"] = v.PaymentToken
	}
	if v.PaymentStatusCode != "" {
		header["paymentStatusCode"] = v.PaymentStatusCode
	}
	if v.PaymentCompletionDate != nil {
		header["paymentDate"] = v.PaymentCompletionDate
	}
	if v.ReviewComment != "" {
		header["reviewComment"] = v.ReviewComment
	}
	if len(v.ColinEventIDs) > 0 {
		header["colinIds"] = v.ColinEventIDs
	}
	root["header"] = header

	out := map[string]any{"filing": root}
	if v.NoticeOfWithdrawal != nil {
		out["noticeOfWithdrawal"] = v.NoticeOfWithdrawal
	}
	return out
}
