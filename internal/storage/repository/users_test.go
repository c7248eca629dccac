package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frolovda/user-registry/internal/models"
	"github.com/frolovda/user-registry/internal/storage"
)

func newTestRepo(t *testing.T) *Users {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.InitSchema(context.Background()))
	// Schema creation is idempotent.
	require.NoError(t, db.InitSchema(context.Background()))

	return NewUsers(db)
}

func structured(t *testing.T, raw string) models.Feature {
	t.Helper()
	require.True(t, json.Valid([]byte(raw)))
	return models.StructuredFeature(json.RawMessage(raw))
}

func TestUsers_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.Create(ctx, "alice", "alice@example.com", structured(t, `{"role":"admin"}`))
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	got, err := repo.GetByID(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)

	feature, err := json.Marshal(got.Feature)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"admin"}`, string(feature))

	// SQLite dialect stores ISO-8601 text with a trailing Z.
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z$`, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestUsers_OpaqueFeatureRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "bob", "bob@example.com", models.OpaqueFeature("just some text")))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	feature, err := json.Marshal(users[0].Feature)
	require.NoError(t, err)
	assert.Equal(t, `"just some text"`, string(feature))
}

func TestUsers_AbsentFeature(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "carol", "carol@example.com", models.Feature{}))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].Feature.IsAbsent())
}

func TestUsers_DuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "alice", "alice@example.com", models.Feature{}))

	err := repo.Create(ctx, "alice", "other@example.com", models.Feature{})
	require.Error(t, err)
	assert.True(t, storage.IsDuplicateKey(err))

	err = repo.Create(ctx, "other", "alice@example.com", models.Feature{})
	require.Error(t, err)
	assert.True(t, storage.IsDuplicateKey(err))

	// The failed attempts added no rows.
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUsers_ListOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, name, name+"@example.com", models.Feature{}))
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// Newest first, strictly descending ids.
	assert.Equal(t, "third", users[0].Username)
	assert.Equal(t, "second", users[1].Username)
	assert.Equal(t, "first", users[2].Username)
	assert.Greater(t, users[0].ID, users[1].ID)
	assert.Greater(t, users[1].ID, users[2].ID)
}

func TestUsers_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
}

func TestUsers_UpdatePartial(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "alice", "alice@example.com", models.Feature{}))
	users, err := repo.List(ctx)
	require.NoError(t, err)
	id := users[0].ID
	before := users[0].UpdatedAt

	time.Sleep(2 * time.Millisecond)

	feature := structured(t, `{"role":"editor"}`)
	count, err := repo.Update(ctx, id, models.UpdateFields{Feature: &feature})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	// Untouched columns survive.
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)

	raw, err := json.Marshal(got.Feature)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"editor"}`, string(raw))

	// ISO-8601 text compares chronologically.
	assert.Greater(t, got.UpdatedAt, before)
	assert.Equal(t, users[0].CreatedAt, got.CreatedAt)
}

func TestUsers_UpdateDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "alice", "alice@example.com", models.Feature{}))
	require.NoError(t, repo.Create(ctx, "bob", "bob@example.com", models.Feature{}))

	users, err := repo.List(ctx)
	require.NoError(t, err)

	username := "alice"
	_, err = repo.Update(ctx, users[0].ID, models.UpdateFields{Username: &username})
	require.Error(t, err)
	assert.True(t, storage.IsDuplicateKey(err))
}

func TestUsers_UpdateMissingID(t *testing.T) {
	repo := newTestRepo(t)

	email := "ghost@example.com"
	count, err := repo.Update(context.Background(), 9999, models.UpdateFields{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUsers_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "alice", "alice@example.com", models.Feature{}))
	users, err := repo.List(ctx)
	require.NoError(t, err)

	count, err := repo.Delete(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.GetByID(ctx, users[0].ID)
	assert.True(t, storage.IsNotFound(err))

	// Deleting a missing id is not an error.
	count, err = repo.Delete(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
