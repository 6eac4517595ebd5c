//go:build integration

package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lear/internal/authz"
	bmodels "lear/internal/business/models"
	bstore "lear/internal/business/store"
	"lear/internal/filing/mocks"
	fmodels "lear/internal/filing/models"
	fstore "lear/internal/filing/store"
	"lear/internal/platform/database"
	"lear/internal/rules"
	dErrors "lear/pkg/domain-errors"
	"lear/pkg/platform/audit/publishers/compliance"
	auditpg "lear/pkg/platform/audit/store/postgres"
	"lear/pkg/requestcontext"
	"lear/pkg/testutil/containers"
)

func TestSubmitAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, pg.Truncate(ctx))

	businesses := bstore.NewPostgres(pg.DB)
	filings := fstore.NewPostgres(pg.DB)

	lastAR := now.AddDate(0, -3, 0)
	b := &bmodels.Business{
		Identifier:   identifier,
		LegalName:    "0870754 B.C. LTD.",
		LegalType:    bmodels.LegalTypeBC,
		State:        bmodels.StateActive,
		FoundingDate: now.AddDate(-4, 0, 0),
		LastARDate:   &lastAR,
		LastARYear:   lastAR.Year() - 1,
	}
	require.NoError(t, businesses.Create(ctx, b))

	// A completed filing that is also the state filing, so every facts query returns rows.
	bid := b.ID
	ar := &fmodels.Filing{
		BusinessID:    &bid,
		FilingType:    rules.AnnualReport,
		Status:        fmodels.StatusCompleted,
		Source:        fmodels.SourceLEAR,
		FilingDate:    now.AddDate(0, -3, 0),
		EffectiveDate: now.AddDate(0, -3, 0),
		Content:       document(map[string]any{"name": "annualReport"}, nil),
		LastModified:  now,
	}
	require.NoError(t, filings.Create(ctx, ar))
	b.StateFilingID = &ar.ID
	require.NoError(t, businesses.Save(ctx, b))

	ctrl := gomock.NewController(t)
	payments := mocks.NewMockPaymentClient(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authorizer, err := authz.New(businesses, filings, authz.WithLogger(logger))
	require.NoError(t, err)
	svc, err := New(filings, businesses, authorizer, payments, database.NewTxRunner(pg.DB, 10*time.Second),
		WithLogger(logger),
		WithCompliance(compliance.New(auditpg.New(pg.DB))),
	)
	require.NoError(t, err)

	reqCtx := requestcontext.WithTime(requestcontext.WithCaller(ctx, staff), now)

	payments.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(pendingInvoice("inv-pg"), nil)
	f, err := svc.Save(reqCtx, create(staff, identifier, coaDoc(), false))
	require.NoError(t, err)
	assert.Equal(t, fmodels.StatusPending, f.Status)

	stored, err := filings.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "inv-pg", stored.PaymentToken)

	// The open filing now blocks a second change of address; the refusal must be a
	// decision, not a store failure.
	_, err = svc.Save(reqCtx, create(staff, identifier, coaDoc(), false))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden), "got %v", err)
}
