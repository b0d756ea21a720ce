package store

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)

	// Clean up runs table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM runs")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPostgresStore_SaveAndFindRun(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := NewRunRecord(42, "classic", "digest-a")
	run.Steps = 3600
	run.Outcome = "cleared"
	run.Score = 2610
	run.TrajectoryDigest = "traj-a"
	require.NoError(t, s.SaveRun(ctx, run))

	found, err := s.FindRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, uint64(42), found.Seed)
	assert.Equal(t, "classic", found.MapName)
	assert.Equal(t, "digest-a", found.MapDigest)
	assert.Equal(t, int64(3600), found.Steps)
	assert.Equal(t, "cleared", found.Outcome)
	assert.Equal(t, 2610, found.Score)
	assert.Equal(t, "traj-a", found.TrajectoryDigest)
	assert.WithinDuration(t, run.CreatedAt, found.CreatedAt, time.Second)
}

func TestPostgresStore_FindRun_NotFound(t *testing.T) {
	s := setupTestStore(t)

	found, err := s.FindRun(context.Background(), "nonexistent-id")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, found)
}

func TestPostgresStore_SeedAboveInt64(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := NewRunRecord(math.MaxUint64, "classic", "digest-max")
	require.NoError(t, s.SaveRun(ctx, run))

	found, err := s.FindRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), found.Seed)
}

func TestPostgresStore_ListBySeed(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	older := NewRunRecord(7, "classic", "digest-a")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := NewRunRecord(7, "classic", "digest-a")
	otherMap := NewRunRecord(7, "other", "digest-b")
	otherSeed := NewRunRecord(8, "classic", "digest-a")
	for _, run := range []*RunRecord{older, newer, otherMap, otherSeed} {
		require.NoError(t, s.SaveRun(ctx, run))
	}

	runs, err := s.ListBySeed(ctx, 7, "digest-a")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)
}

func TestPostgresStore_DuplicateID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := NewRunRecord(1, "classic", "digest-a")
	require.NoError(t, s.SaveRun(ctx, run))
	assert.Error(t, s.SaveRun(ctx, run))
}
