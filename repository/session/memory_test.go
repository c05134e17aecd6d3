package session

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadheryan/product-console/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Hour)

	got, err := repo.GetState(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	id := uint64(4)
	state := &model.State{
		Products:  []model.Product{{ID: 4, Title: "A", Description: "B", SellerID: 3}},
		Loaded:    true,
		Draft:     model.Draft{Title: "A", Description: "B", SellerID: "3"},
		EditingID: &id,
		ModalOpen: true,
	}
	require.NoError(t, repo.SaveState(ctx, "s1", state))

	got, err = repo.GetState(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	// the stored copy is independent of the caller's value
	state.Products[0].Title = "changed"
	got, err = repo.GetState(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Products[0].Title)

	require.NoError(t, repo.DeleteState(ctx, "s1"))
	got, err = repo.GetState(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository(time.Minute).(*memory)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.SaveState(ctx, "s1", model.NewState()))

	now = now.Add(59 * time.Second)
	got, err := repo.GetState(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(time.Second)
	got, err = repo.GetState(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
