package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"lear/internal/authz"
	"lear/internal/fees"
	"lear/internal/filing/handler/mocks"
	fmodels "lear/internal/filing/models"
	"lear/internal/filing/service"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

var (
	staff = requestcontext.Identity{Username: "idir/registry", Roles: []string{"staff"}}
	now   = time.Date(2026, 5, 15, 18, 0, 0, 0, time.UTC)
)

const arBody = `{"filing":{"header":{"name":"annualReport","certifiedBy":"Jane Doe"},"annualReport":{"annualReportDate":"2026-05-01"}}}`

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithCaller(r.Context(), staff)
			ctx = requestcontext.WithTime(ctx, now)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.Register(s.router)
	h.RegisterInternal(s.router)
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func header(body map[string]any) map[string]any {
	filing, _ := body["filing"].(map[string]any)
	h, _ := filing["header"].(map[string]any)
	return h
}

func pendingAR() *fmodels.Filing {
	var doc fmodels.Document
	_ = json.Unmarshal([]byte(arBody), &doc)
	return &fmodels.Filing{
		ID:            42,
		FilingType:    rules.AnnualReport,
		Status:        fmodels.StatusPending,
		Source:        fmodels.SourceLEAR,
		PaymentToken:  "8821",
		FilingDate:    now,
		EffectiveDate: now,
		Content:       doc,
	}
}

// =============================================================================
// Save
// =============================================================================

func (s *HandlerSuite) TestCreate() {
	s.Run("submits and merges server fields into the header", func() {
		s.service.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.SaveRequest) (*fmodels.Filing, error) {
				s.Equal("BC1234567", req.Identifier)
				s.True(req.Create)
				s.False(req.Draft)
				s.Zero(req.FilingID)
				s.Equal(authz.CallerFrom(staff), req.Caller)
				s.Equal("Jane Doe", req.Document.String("header", "certifiedBy"))
				return pendingAR(), nil
			})

		w := s.do(http.MethodPost, "/businesses/BC1234567/filings", arBody)
		s.Require().Equal(http.StatusCreated, w.Code)
		h := header(s.decode(w))
		s.Equal(float64(42), h["filingId"])
		s.Equal("PENDING", h["status"])
		s.Equal("8821", h["paymentToken"])
		s.Equal("Jane Doe", h["certifiedBy"])
		s.Equal(false, h["isFutureEffective"])
	})

	s.Run("draft flag", func() {
		s.service.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.SaveRequest) (*fmodels.Filing, error) {
				s.True(req.Draft)
				f := pendingAR()
				f.Status = fmodels.StatusDraft
				f.PaymentToken = ""
				return f, nil
			})

		w := s.do(http.MethodPost, "/businesses/BC1234567/filings?draft=true", arBody)
		s.Require().Equal(http.StatusCreated, w.Code)
		h := header(s.decode(w))
		s.Equal("DRAFT", h["status"])
		s.NotContains(h, "paymentToken")
	})

	s.Run("missing filing envelope", func() {
		w := s.do(http.MethodPost, "/businesses/BC1234567/filings", `{"annualReport":{}}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("empty body", func() {
		w := s.do(http.MethodPost, "/businesses/BC1234567/filings", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("validation errors carry details", func() {
		s.service.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.WithDetails(dErrors.CodeValidation, "invalid filing", dErrors.Detail{
				Error: "certifiedBy is required", Path: "/filing/header/certifiedBy",
			}))

		w := s.do(http.MethodPost, "/businesses/BC1234567/filings", arBody)
		s.Require().Equal(http.StatusBadRequest, w.Code)
		body := s.decode(w)
		errs, _ := body["errors"].([]any)
		s.Len(errs, 1)
	})

	s.Run("not allowed", func() {
		s.service.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "Not authorized to submit annualReport."))

		w := s.do(http.MethodPost, "/businesses/BC1234567/filings", arBody)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("create naming an existing filing", func() {
		s.service.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.SaveRequest) (*fmodels.Filing, error) {
				s.True(req.Create)
				s.Equal(int64(42), req.FilingID)
				return nil, dErrors.New(dErrors.CodeForbidden, "Illegal to attempt to create a duplicate filing.")
			})

		w := s.do(http.MethodPost, "/businesses/BC1234567/filings/42", arBody)
		s.Equal(http.StatusForbidden, w.Code)
		s.Contains(w.Body.String(), "duplicate filing")
	})

	s.Run("payment failure", func() {
		s.service.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodePaymentRequired, "account has insufficient funds"))

		w := s.do(http.MethodPost, "/businesses/BC1234567/filings", arBody)
		s.Equal(http.StatusPaymentRequired, w.Code)
	})
}

func (s *HandlerSuite) TestUpdate() {
	s.Run("passes the filing id", func() {
		s.service.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.SaveRequest) (*fmodels.Filing, error) {
				s.Equal(int64(42), req.FilingID)
				s.False(req.Create)
				return pendingAR(), nil
			})

		w := s.do(http.MethodPut, "/businesses/BC1234567/filings/42", arBody)
		s.Equal(http.StatusAccepted, w.Code)
	})

	s.Run("rejects a malformed id", func() {
		w := s.do(http.MethodPut, "/businesses/BC1234567/filings/abc", arBody)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// Read
// =============================================================================

func (s *HandlerSuite) TestGet() {
	s.Run("embeds the notice of withdrawal", func() {
		f := pendingAR()
		f.Status = fmodels.StatusPaid
		f.EffectiveDate = now.Add(72 * time.Hour)
		f.WithdrawalPending = true
		s.service.EXPECT().
			Get(gomock.Any(), "BC1234567", int64(42)).
			Return(&service.FilingView{
				Filing:             f,
				NoticeOfWithdrawal: &service.WithdrawalRef{ID: 77, Status: fmodels.StatusDraft},
			}, nil)

		w := s.do(http.MethodGet, "/businesses/BC1234567/filings/42", "")
		s.Require().Equal(http.StatusOK, w.Code)
		body := s.decode(w)
		s.Equal(true, header(body)["isFutureEffective"])
		s.Equal(true, header(body)["withdrawalPending"])
		s.Equal(map[string]any{"filingId": float64(77), "status": "DRAFT"}, body["noticeOfWithdrawal"])
	})

	s.Run("not found", func() {
		s.service.EXPECT().
			Get(gomock.Any(), "BC1234567", int64(9)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "filing not found"))

		w := s.do(http.MethodGet, "/businesses/BC1234567/filings/9", "")
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *HandlerSuite) TestList() {
	s.Run("wraps the filings", func() {
		s.service.EXPECT().
			List(gomock.Any(), "BC1234567").
			Return([]*service.FilingView{{Filing: pendingAR()}}, nil)

		w := s.do(http.MethodGet, "/businesses/BC1234567/filings", "")
		s.Require().Equal(http.StatusOK, w.Code)
		filings, _ := s.decode(w)["filings"].([]any)
		s.Len(filings, 1)
	})

	s.Run("empty list renders as an array", func() {
		s.service.EXPECT().List(gomock.Any(), "BC7654321").Return(nil, nil)

		w := s.do(http.MethodGet, "/businesses/BC7654321/filings", "")
		s.Require().Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"filings":[]}`, w.Body.String())
	})

	s.Run("internal errors do not leak", func() {
		s.service.EXPECT().
			List(gomock.Any(), "BC1234567").
			Return(nil, dErrors.New(dErrors.CodeInternal, "connection reset"))

		w := s.do(http.MethodGet, "/businesses/BC1234567/filings", "")
		s.Require().Equal(http.StatusInternalServerError, w.Code)
		s.NotContains(w.Body.String(), "connection reset")
	})
}

// =============================================================================
// Lifecycle
// =============================================================================

func (s *HandlerSuite) TestCancelPayment() {
	f := pendingAR()
	f.Status = fmodels.StatusDraft
	f.PaymentToken = ""
	s.service.EXPECT().CancelPayment(gomock.Any(), "BC1234567", int64(42)).Return(f, nil)

	w := s.do(http.MethodPatch, "/businesses/BC1234567/filings/42", "")
	s.Require().Equal(http.StatusAccepted, w.Code)
	s.Equal("DRAFT", header(s.decode(w))["status"])
}

func (s *HandlerSuite) TestDelete() {
	s.Run("deleted", func() {
		s.service.EXPECT().Delete(gomock.Any(), "BC1234567", int64(42)).Return(nil)

		w := s.do(http.MethodDelete, "/businesses/BC1234567/filings/42", "")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("locked", func() {
		s.service.EXPECT().
			Delete(gomock.Any(), "BC1234567", int64(43)).
			Return(dErrors.New(dErrors.CodeLocked, "This filing cannot be deleted at this moment."))

		w := s.do(http.MethodDelete, "/businesses/BC1234567/filings/43", "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *HandlerSuite) TestReview() {
	s.Run("forwards the decision", func() {
		f := pendingAR()
		f.Status = fmodels.StatusChangeRequested
		f.ReviewComment = "please fix the address"
		s.service.EXPECT().
			Review(gomock.Any(), "BC1234567", int64(42), authz.CallerFrom(staff), service.ReviewDecision{
				Event: fmodels.EventRequestChange, Comment: "please fix the address",
			}).
			Return(f, nil)

		w := s.do(http.MethodPost, "/businesses/BC1234567/filings/42/review",
			`{"decision":"requestChange","comment":" please fix the address "}`)
		s.Require().Equal(http.StatusOK, w.Code)
		s.Equal("please fix the address", header(s.decode(w))["reviewComment"])
	})

	s.Run("unknown decision", func() {
		w := s.do(http.MethodPost, "/businesses/BC1234567/filings/42/review", `{"decision":"maybe"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestFees() {
	s.service.EXPECT().
		FeePreview(gomock.Any(), "BC1234567", gomock.Any()).
		Return([]fees.FilingTypeCode{{FilingTypeCode: "BCANN"}}, nil)

	w := s.do(http.MethodPost, "/businesses/BC1234567/fees", arBody)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"filingTypes":[{"filingTypeCode":"BCANN"}]}`, w.Body.String())
}

// =============================================================================
// Internal callbacks
// =============================================================================

func (s *HandlerSuite) TestPayment() {
	s.Run("normalises the status code", func() {
		completed := time.Date(2026, 5, 15, 17, 30, 0, 0, time.UTC)
		f := pendingAR()
		f.Status = fmodels.StatusPaid
		s.service.EXPECT().ApplyPayment(gomock.Any(), int64(42), "COMPLETED", completed).Return(f, nil)

		w := s.do(http.MethodPost, "/internal/filings/42/payment",
			`{"statusCode":"completed","completedAt":"2026-05-15T17:30:00Z"}`)
		s.Require().Equal(http.StatusOK, w.Code)
		s.Equal("PAID", header(s.decode(w))["status"])
	})

	s.Run("missing timestamp is left to the service", func() {
		s.service.EXPECT().ApplyPayment(gomock.Any(), int64(42), "COMPLETED", time.Time{}).Return(pendingAR(), nil)

		w := s.do(http.MethodPost, "/internal/filings/42/payment", `{"statusCode":"COMPLETED"}`)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("status code required", func() {
		w := s.do(http.MethodPost, "/internal/filings/42/payment", `{}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("conflict", func() {
		s.service.EXPECT().
			ApplyPayment(gomock.Any(), int64(43), "COMPLETED", time.Time{}).
			Return(nil, dErrors.New(dErrors.CodeConflict, "filing 43 is not awaiting payment"))

		w := s.do(http.MethodPost, "/internal/filings/43/payment", `{"statusCode":"COMPLETED"}`)
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *HandlerSuite) TestComplete() {
	f := pendingAR()
	f.Status = fmodels.StatusCompleted
	s.service.EXPECT().Complete(gomock.Any(), int64(42)).Return(f, nil)

	w := s.do(http.MethodPost, "/internal/filings/42/complete", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("COMPLETED", header(s.decode(w))["status"])
}
