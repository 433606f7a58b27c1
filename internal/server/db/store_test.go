package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedFrazAli/geoscope/internal/objects"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	client, err := New(Config{
		Dialect: "sqlite",
		DSN:     "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestNewRejectsUnknownDialect(t *testing.T) {
	_, err := New(Config{Dialect: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestProductStoreSeed(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	store := NewProductStore(client)

	products, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)

	assert.Equal(t, "Crop Health Monitoring", products[0].Name)
	assert.Equal(t, "Pro Plan (All Access)", products[4].Name)
	assert.Equal(t, 5, products[4].ID)
}

func TestProductStoreNamesByIDs(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore(newTestClient(t))

	names, err := store.NamesByIDs(ctx, []int{1, 2, 99})
	require.NoError(t, err)

	assert.Equal(t, map[int]string{
		1: "Crop Health Monitoring",
		2: "Wildfire Risk Assessment",
	}, names)

	names, err = store.NamesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestObservationStoreCreateDefaultsTimestamp(t *testing.T) {
	ctx := context.Background()
	store := NewObservationStore(newTestClient(t))

	before := time.Now().UTC().Add(-time.Second)

	id, err := store.Create(ctx, &objects.ObservationRecord{
		ProductID: lo.ToPtr(1),
		Value:     "0.75",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	rec, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec.Timestamp)
	assert.True(t, rec.Timestamp.After(before))
	assert.Equal(t, "0.75", rec.Value)
	require.NotNil(t, rec.ProductID)
	assert.Equal(t, 1, *rec.ProductID)
}

func TestObservationStoreGetNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewObservationStore(newTestClient(t))

	_, err := store.Get(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestObservationStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewObservationStore(newTestClient(t))

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	oldID, err := store.Create(ctx, &objects.ObservationRecord{
		ProductID: lo.ToPtr(1),
		Value:     "0.1",
		Timestamp: lo.ToPtr(base),
	})
	require.NoError(t, err)

	newID, err := store.Create(ctx, &objects.ObservationRecord{
		ProductID: lo.ToPtr(2),
		Value:     "0.2",
		Timestamp: lo.ToPtr(base.Add(time.Hour)),
	})
	require.NoError(t, err)

	// Unowned records never appear in listings.
	_, err = store.Create(ctx, &objects.ObservationRecord{
		Value:     "0.3",
		Timestamp: lo.ToPtr(base.Add(2 * time.Hour)),
	})
	require.NoError(t, err)

	records, err := store.ListAllOwned(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newID, records[0].ID)
	assert.Equal(t, oldID, records[1].ID)

	records, err = store.ListByProducts(ctx, []int{1})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, oldID, records[0].ID)

	records, err = store.ListByProducts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestObservationStoreListByIDs(t *testing.T) {
	ctx := context.Background()
	store := NewObservationStore(newTestClient(t))

	id1, err := store.Create(ctx, &objects.ObservationRecord{ProductID: lo.ToPtr(1), Value: "0.1"})
	require.NoError(t, err)

	id2, err := store.Create(ctx, &objects.ObservationRecord{Value: "0.2"})
	require.NoError(t, err)

	records, err := store.ListByIDs(ctx, []int{id1, id2, 999})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, id1, records[0].ID)
	assert.Equal(t, id2, records[1].ID)
	assert.Nil(t, records[1].ProductID)
}

func TestObservationStoreUpdatePartial(t *testing.T) {
	ctx := context.Background()
	store := NewObservationStore(newTestClient(t))

	id, err := store.Create(ctx, &objects.ObservationRecord{
		ProductID: lo.ToPtr(1),
		Value:     "0.5",
		Unit:      "NDVI",
	})
	require.NoError(t, err)

	t.Run("updates known columns", func(t *testing.T) {
		err := store.UpdatePartial(ctx, id, map[string]any{
			"notes":      "rescanned",
			"confidence": 98.5,
			"product_id": 2,
		})
		require.NoError(t, err)

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "rescanned", rec.Notes)
		require.NotNil(t, rec.Confidence)
		assert.InDelta(t, 98.5, *rec.Confidence, 0.0001)
		require.NotNil(t, rec.ProductID)
		assert.Equal(t, 2, *rec.ProductID)
		assert.Equal(t, "NDVI", rec.Unit)
	})

	t.Run("ignores unknown columns", func(t *testing.T) {
		err := store.UpdatePartial(ctx, id, map[string]any{
			"id":       999,
			"whatever": "x",
		})
		require.NoError(t, err)

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.ID)
	})

	t.Run("clears product id", func(t *testing.T) {
		err := store.UpdatePartial(ctx, id, map[string]any{"product_id": nil})
		require.NoError(t, err)

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec.ProductID)
	})

	t.Run("not found", func(t *testing.T) {
		err := store.UpdatePartial(ctx, 999, map[string]any{"notes": "x"})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestObservationStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewObservationStore(newTestClient(t))

	id, err := store.Create(ctx, &objects.ObservationRecord{ProductID: lo.ToPtr(1), Value: "0.5"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	require.ErrorIs(t, store.Delete(ctx, id), ErrNotFound)

	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriptionStoreGrantRevoke(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriptionStore(newTestClient(t))

	t.Run("revoke without grant fails", func(t *testing.T) {
		require.ErrorIs(t, store.Revoke(ctx, "alice@example.com", 1), ErrNotFound)
	})

	t.Run("grant then revoke round trip", func(t *testing.T) {
		sub, err := store.Grant(ctx, "alice@example.com", 1)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", sub.UserID)
		assert.Equal(t, 1, sub.ProductID)
		assert.NotNil(t, sub.CreatedAt)

		require.NoError(t, store.Revoke(ctx, "alice@example.com", 1))

		ids, err := store.ProductIDsForUser(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("duplicate grants allowed, revoke removes one", func(t *testing.T) {
		_, err := store.Grant(ctx, "bob@example.com", 2)
		require.NoError(t, err)
		_, err = store.Grant(ctx, "bob@example.com", 2)
		require.NoError(t, err)

		subs, err := store.ListForUser(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Len(t, subs, 2)

		ids, err := store.ProductIDsForUser(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, []int{2}, ids)

		require.NoError(t, store.Revoke(ctx, "bob@example.com", 2))

		subs, err = store.ListForUser(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("revoke must match user and product exactly", func(t *testing.T) {
		_, err := store.Grant(ctx, "carol@example.com", 3)
		require.NoError(t, err)

		require.ErrorIs(t, store.Revoke(ctx, "carol@example.com", 4), ErrNotFound)
		require.ErrorIs(t, store.Revoke(ctx, "someone@example.com", 3), ErrNotFound)
	})
}

func TestUsageStore(t *testing.T) {
	ctx := context.Background()
	store := NewUsageStore(newTestClient(t))

	now := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, "GET /api/observations", now.Add(-2*time.Hour)))
	require.NoError(t, store.Insert(ctx, "GET /api/observations", now.Add(-10*time.Minute)))
	require.NoError(t, store.Insert(ctx, "POST /api/observations", now.Add(-5*time.Minute)))

	timestamps, err := store.TimestampsSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, timestamps, 2)
	assert.True(t, timestamps[0].Before(timestamps[1]))

	purged, err := store.Purge(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	timestamps, err = store.TimestampsSince(ctx, now.Add(-3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, timestamps, 2)
}
