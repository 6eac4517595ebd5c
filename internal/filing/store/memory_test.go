package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lear/internal/filing/models"
	"lear/internal/rules"
)

func TestInMemoryStore(t *testing.T) {
	exerciseStore(t, NewInMemory(), 1)
}

func TestInMemoryStoreReturnsCopies(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	f := newFiling(1, rules.ChangeOfDirectors, models.StatusDraft)
	f.SubmitterRoles = []string{"public_user"}
	require.NoError(t, store.Create(ctx, f))

	got, err := store.FindByID(ctx, f.ID)
	require.NoError(t, err)
	got.Status = models.StatusPaid
	got.SubmitterRoles[0] = "staff"

	again, err := store.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, again.Status)
	assert.Equal(t, []string{"public_user"}, again.SubmitterRoles)
}
