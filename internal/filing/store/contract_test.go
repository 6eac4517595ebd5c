package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lear/internal/filing/models"
	"lear/internal/rules"
	"lear/pkg/platform/sentinel"
)

type filingStore interface {
	Create(ctx context.Context, f *models.Filing) error
	Update(ctx context.Context, f *models.Filing) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Filing, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Filing, error)
	ListByBusiness(ctx context.Context, businessID int64, statuses []models.Status) ([]*models.Filing, error)
	ListByTempReg(ctx context.Context, tempRegID string) ([]*models.Filing, error)
	ListCompletedRefs(ctx context.Context, businessID int64) ([]rules.FilingRef, error)
	FindActiveWithdrawal(ctx context.Context, targetID int64) (*models.Filing, error)
}

var at = time.Date(2026, 5, 15, 18, 0, 0, 0, time.UTC)

func newFiling(businessID int64, ft rules.FilingType, status models.Status) *models.Filing {
	id := businessID
	return &models.Filing{
		BusinessID:    &id,
		FilingType:    ft,
		Status:        status,
		Source:        models.SourceLEAR,
		FilingDate:    at,
		EffectiveDate: at,
		Content:       models.Document{"filing": map[string]any{"header": map[string]any{"name": string(ft)}}},
		LastModified:  at,
	}
}

// exerciseStore runs the behaviour every filing store must share.
func exerciseStore(t *testing.T, store filingStore, businessID int64) {
	ctx := context.Background()

	draft := newFiling(businessID, rules.ChangeOfAddress, models.StatusDraft)
	draft.ColinEventIDs = []int64{7, 8}
	draft.SubmitterRoles = []string{"staff"}
	require.NoError(t, store.Create(ctx, draft))
	require.NotZero(t, draft.ID)

	t.Run("round trip", func(t *testing.T) {
		got, err := store.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, rules.ChangeOfAddress, got.FilingType)
		assert.Equal(t, []int64{7, 8}, got.ColinEventIDs)
		assert.Equal(t, []string{"staff"}, got.SubmitterRoles)
		assert.Equal(t, "changeOfAddress", got.Content.String("header", "name"))
		assert.True(t, at.Equal(got.EffectiveDate))
		assert.Nil(t, got.TempRegID)
	})

	t.Run("update", func(t *testing.T) {
		got, err := store.FindByIDForUpdate(ctx, draft.ID)
		require.NoError(t, err)
		got.Status = models.StatusPending
		got.PaymentToken = "inv-1"
		require.NoError(t, store.Update(ctx, got))

		again, err := store.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, again.Status)
		assert.Equal(t, "inv-1", again.PaymentToken)
	})

	completed := newFiling(businessID, rules.Dissolution, models.StatusCompleted)
	completed.FilingSubType = rules.DissolutionVoluntary
	require.NoError(t, store.Create(ctx, completed))

	t.Run("list by business and status", func(t *testing.T) {
		all, err := store.ListByBusiness(ctx, businessID, nil)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, draft.ID, all[0].ID)

		open, err := store.ListByBusiness(ctx, businessID, models.OpenStatuses)
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, draft.ID, open[0].ID)

		refs, err := store.ListCompletedRefs(ctx, businessID)
		require.NoError(t, err)
		assert.Equal(t, []rules.FilingRef{{Type: rules.Dissolution, SubType: rules.DissolutionVoluntary}}, refs)
	})

	t.Run("active withdrawal", func(t *testing.T) {
		_, err := store.FindActiveWithdrawal(ctx, draft.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		notice := newFiling(businessID, rules.NoticeOfWithdrawal, models.StatusDraft)
		target := draft.ID
		notice.WithdrawnFilingID = &target
		require.NoError(t, store.Create(ctx, notice))

		got, err := store.FindActiveWithdrawal(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, notice.ID, got.ID)

		notice.Status = models.StatusWithdrawn
		require.NoError(t, store.Update(ctx, notice))
		_, err = store.FindActiveWithdrawal(ctx, draft.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("temp registration", func(t *testing.T) {
		tempID := "Tb31yQIuBw"
		f := &models.Filing{
			TempRegID: &tempID, FilingType: rules.IncorporationApplication, Status: models.StatusDraft,
			Source: models.SourceLEAR, FilingDate: at, EffectiveDate: at, LastModified: at,
			Content: models.Document{"filing": map[string]any{}},
		}
		require.NoError(t, store.Create(ctx, f))

		list, err := store.ListByTempReg(ctx, tempID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Nil(t, list[0].BusinessID)

		require.NoError(t, store.Delete(ctx, f.ID))
		list, err = store.ListByTempReg(ctx, tempID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("missing rows", func(t *testing.T) {
		_, err := store.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, 9999), sentinel.ErrNotFound)

		ghost := newFiling(businessID, rules.ChangeOfAddress, models.StatusDraft)
		ghost.ID = 9999
		assert.ErrorIs(t, store.Update(ctx, ghost), sentinel.ErrNotFound)
	})
}
