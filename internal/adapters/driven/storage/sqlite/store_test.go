package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testRoute(id string, createdAt time.Time) domain.SavedRoute {
	return domain.SavedRoute{
		ID:              id,
		Origin:          domain.NewPlace(domain.Coordinate{Lat: 40.7128, Lng: -74.006}, "New York, NY"),
		Destination:     domain.NewPlace(domain.Coordinate{Lat: 40.1, Lng: -74.1}, "Somewhere, NJ"),
		Profile:         domain.ProfileDriving,
		DistanceMeters:  14000,
		DurationSeconds: 900,
		Summary:         "New York, NY → Somewhere, NJ",
		Geometry: domain.RouteGeometry{
			{Lat: 40.7128, Lng: -74.006},
			{Lat: 40.4, Lng: -74.05},
			{Lat: 40.1, Lng: -74.1},
		},
		CreatedAt: createdAt,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "history.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".wayfinder", "data", "history.db"), store.Path())
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.HistoryStore().Save(ctx, testRoute("r1", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	got, err := second.HistoryStore().Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
}

func TestHistoryStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	created := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	route := testRoute("r1", created)

	require.NoError(t, store.Save(ctx, route))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, route.Origin, got.Origin)
	assert.Equal(t, route.Destination, got.Destination)
	assert.Equal(t, route.Profile, got.Profile)
	assert.InDelta(t, route.DistanceMeters, got.DistanceMeters, 0)
	assert.InDelta(t, route.DurationSeconds, got.DurationSeconds, 0)
	assert.Equal(t, route.Summary, got.Summary)
	assert.Equal(t, route.Geometry, got.Geometry)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestHistoryStore_SaveEmptyGeometry(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	route := testRoute("r1", time.Now())
	route.Geometry = nil

	require.NoError(t, store.Save(ctx, route))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, got.Geometry)
}

func TestHistoryStore_SaveUpdatesExisting(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	route := testRoute("r1", time.Now())
	require.NoError(t, store.Save(ctx, route))

	route.Summary = "renamed"
	route.Profile = domain.ProfileWalking
	require.NoError(t, store.Save(ctx, route))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Summary)
	assert.Equal(t, domain.ProfileWalking, got.Profile)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHistoryStore_SaveRequiresID(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	err := store.Save(context.Background(), testRoute("", time.Now()))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_ListOrderAndLimit(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testRoute("old", base)))
	require.NoError(t, store.Save(ctx, testRoute("new", base.Add(48*time.Hour))))
	require.NoError(t, store.Save(ctx, testRoute("mid", base.Add(24*time.Hour))))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)
	assert.Len(t, all[0].Geometry, 3)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)
}

func TestHistoryStore_ListEmpty(t *testing.T) {
	store := setupTestStore(t).HistoryStore()

	routes, err := store.List(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestHistoryStore_Delete(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testRoute("r1", time.Now())))

	require.NoError(t, store.Delete(ctx, "r1"))

	_, err := store.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "r1"), domain.ErrNotFound)
}

func TestGeometryEncoding_RoundTrip(t *testing.T) {
	g := testRoute("x", time.Now()).Geometry

	data, err := encodeGeometry(g)
	require.NoError(t, err)
	decoded, err := decodeGeometry(data)
	require.NoError(t, err)

	assert.Equal(t, g, decoded)
}

func TestGeometryEncoding_RejectsGarbage(t *testing.T) {
	_, err := decodeGeometry([]byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
}
