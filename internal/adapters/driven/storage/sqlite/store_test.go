package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testRecord(name, fingerprint string, created time.Time) *domain.ProfileRecord {
	return &domain.ProfileRecord{
		Name:        name,
		Path:        "/tmp/" + name,
		Format:      domain.ProfileFormatCollapsed,
		Fingerprint: fingerprint,
		Samples:     2,
		CreatedAt:   created,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "profiles.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.ProfileStore().SaveProfile(context.Background(),
		testRecord("cpu.folded", "abc", time.Now()), []byte("main 1\n")))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	profiles, err := second.ProfileStore().ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestProfileStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	ps := setupTestStore(t).ProfileStore()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := testRecord("cpu.folded", "abc", created)

	require.NoError(t, ps.SaveProfile(ctx, rec, []byte("main;work 1\n")))
	require.NotEmpty(t, rec.ID)

	got, err := ps.GetProfile(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "cpu.folded", got.Name)
	assert.Equal(t, "/tmp/cpu.folded", got.Path)
	assert.Equal(t, domain.ProfileFormatCollapsed, got.Format)
	assert.Equal(t, "abc", got.Fingerprint)
	assert.Equal(t, 2, got.Samples)
	assert.True(t, created.Equal(got.CreatedAt))

	data, err := ps.GetProfileData(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("main;work 1\n"), data)
}

func TestProfileStore_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	ps := setupTestStore(t).ProfileStore()
	rec := testRecord("cpu.folded", "abc", time.Now())
	require.NoError(t, ps.SaveProfile(ctx, rec, []byte("a 1\n")))

	rec.Name = "renamed"
	require.NoError(t, ps.SaveProfile(ctx, rec, []byte("b 1\n")))

	got, err := ps.GetProfile(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	data, err := ps.GetProfileData(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("b 1\n"), data)
}

func TestProfileStore_DuplicateFingerprint(t *testing.T) {
	ctx := context.Background()
	ps := setupTestStore(t).ProfileStore()
	require.NoError(t, ps.SaveProfile(ctx, testRecord("a", "same", time.Now()), []byte("a 1\n")))

	err := ps.SaveProfile(ctx, testRecord("b", "same", time.Now()), []byte("a 1\n"))

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestProfileStore_FindByFingerprint(t *testing.T) {
	ctx := context.Background()
	ps := setupTestStore(t).ProfileStore()
	rec := testRecord("cpu.folded", "abc", time.Now())
	require.NoError(t, ps.SaveProfile(ctx, rec, []byte("x 1\n")))

	got, err := ps.FindByFingerprint(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = ps.FindByFingerprint(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	ps := setupTestStore(t).ProfileStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ps.SaveProfile(ctx, testRecord("old", "1", base), []byte("a 1\n")))
	require.NoError(t, ps.SaveProfile(ctx, testRecord("new", "2", base.Add(time.Hour)), []byte("b 1\n")))

	profiles, err := ps.ListProfiles(ctx)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "new", profiles[0].Name)
	assert.Equal(t, "old", profiles[1].Name)
}

func TestProfileStore_ListEmpty(t *testing.T) {
	profiles, err := setupTestStore(t).ProfileStore().ListProfiles(context.Background())

	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestProfileStore_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupTestStore(t).ProfileStore()
	rec := testRecord("cpu.folded", "abc", time.Now())
	require.NoError(t, ps.SaveProfile(ctx, rec, []byte("x 1\n")))

	require.NoError(t, ps.DeleteProfile(ctx, rec.ID))

	_, err := ps.GetProfile(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ps.GetProfileData(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileStore_GetMissing(t *testing.T) {
	_, err := setupTestStore(t).ProfileStore().GetProfile(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
