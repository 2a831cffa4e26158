package services

import (
	"context"
	"testing"

	"wedding-site-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineEnsureDefaults_SeedsOnce(t *testing.T) {
	store := &fakeTimelineStore{}
	svc := NewTimelineService(store)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx))
	events, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 4)
	for i, event := range events {
		assert.Equal(t, i, event.Order)
		assert.True(t, event.IsDefault)
	}

	// a second run must not duplicate the seed set
	require.NoError(t, svc.EnsureDefaults(ctx))
	events, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestTimelineCreate_AppendsAfterHighestOrder(t *testing.T) {
	store := &fakeTimelineStore{}
	svc := NewTimelineService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	event, err := svc.Create(ctx, models.TimelineEventFields{
		Date:        "June 2026",
		Title:       "Honeymoon",
		Description: "Off to the mountains.",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, event.Order)
	assert.False(t, event.IsDefault)
	assert.Equal(t, models.IconHeart, event.Icon, "icon defaults to heart")
}

func TestTimelineCreate_FirstEventGetsOrderZero(t *testing.T) {
	svc := NewTimelineService(&fakeTimelineStore{})

	event, err := svc.Create(context.Background(), models.TimelineEventFields{
		Date:        "First Met",
		Title:       "Hello",
		Description: "A beginning.",
		Icon:        models.IconSparkles,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, event.Order)
}

func TestTimelineCreate_Validation(t *testing.T) {
	svc := NewTimelineService(&fakeTimelineStore{})
	ctx := context.Background()

	_, err := svc.Create(ctx, models.TimelineEventFields{Title: "no date"})
	_, ok := AsValidation(err)
	assert.True(t, ok)

	_, err = svc.Create(ctx, models.TimelineEventFields{
		Date: "x", Title: "y", Description: "z", Icon: "star",
	})
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Message, "icon")
}

func TestTimelineUpdate_ClearsDefaultFlag(t *testing.T) {
	store := &fakeTimelineStore{}
	svc := NewTimelineService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	events, err := svc.List(ctx)
	require.NoError(t, err)
	target := events[0]
	require.True(t, target.IsDefault)

	updated, err := svc.Update(ctx, target.ID.Hex(), models.TimelineEventFields{
		Date:        target.Date,
		Title:       "Edited",
		Description: target.Description,
		Icon:        target.Icon,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assert.Equal(t, target.Order, updated.Order, "order survives an edit")
}

func TestTimelineUpdate_NotFound(t *testing.T) {
	svc := NewTimelineService(&fakeTimelineStore{})

	_, err := svc.Update(context.Background(), "64b000000000000000000000", models.TimelineEventFields{
		Date: "x", Title: "y", Description: "z",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimelineDelete_CompactsOrders(t *testing.T) {
	store := &fakeTimelineStore{}
	svc := NewTimelineService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	events, err := svc.List(ctx)
	require.NoError(t, err)
	removed := events[1]
	survivors := []string{events[0].Title, events[2].Title, events[3].Title}

	require.NoError(t, svc.Delete(ctx, removed.ID.Hex()))

	events, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, event := range events {
		assert.Equal(t, i, event.Order)
		assert.Equal(t, survivors[i], event.Title, "relative order preserved")
	}
}

func TestTimelineDelete_InvalidAndUnknownID(t *testing.T) {
	svc := NewTimelineService(&fakeTimelineStore{})
	ctx := context.Background()

	err := svc.Delete(ctx, "nope")
	_, ok := AsValidation(err)
	assert.True(t, ok)

	err = svc.Delete(ctx, "64b000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimelineReorder(t *testing.T) {
	store := &fakeTimelineStore{}
	svc := NewTimelineService(store)
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	events, err := svc.List(ctx)
	require.NoError(t, err)

	// reverse the display order
	requests := make([]ReorderRequest, len(events))
	for i, event := range events {
		requests[i] = ReorderRequest{ID: event.ID.Hex(), Order: len(events) - 1 - i}
	}
	require.NoError(t, svc.Reorder(ctx, requests))

	reordered, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, events[3].ID, reordered[0].ID)
	assert.Equal(t, events[0].ID, reordered[3].ID)
}

func TestTimelineReorder_Validation(t *testing.T) {
	svc := NewTimelineService(&fakeTimelineStore{})
	ctx := context.Background()

	err := svc.Reorder(ctx, nil)
	_, ok := AsValidation(err)
	assert.True(t, ok)

	err = svc.Reorder(ctx, []ReorderRequest{{ID: "bad", Order: 0}})
	_, ok = AsValidation(err)
	assert.True(t, ok)
}

func TestTimelineReset_RestoresDefaults(t *testing.T) {
	store := &fakeTimelineStore{}
	svc := NewTimelineService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.TimelineEventFields{
		Date: "d", Title: "custom", Description: "x",
	})
	require.NoError(t, err)

	events, err := svc.Reset(ctx)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "Where It All Began", events[0].Title)
	for _, event := range events {
		assert.True(t, event.IsDefault)
	}
}
