package sqlite_test

import (
	"context"
	"testing"

	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(ownerID string, vector []float32) *sportsense.EmbeddingEntry {
	return &sportsense.EmbeddingEntry{
		OwnerID:  ownerID,
		Kind:     sportsense.KindArticle,
		Vector:   vector,
		Metadata: map[string]string{"source": "sportsday"},
	}
}

func TestVectorIndex_Upsert(t *testing.T) {
	t.Parallel()

	t.Run("repeated upsert keeps one entry per owner", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		idx := sqlite.NewVectorIndex(db)
		ctx := context.Background()

		require.NoError(t, idx.Upsert(ctx, testEntry("a1", []float32{1, 0, 0})))
		require.NoError(t, idx.Upsert(ctx, testEntry("a1", []float32{0, 1, 0})))

		n, err := idx.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		// The replacement vector wins.
		matches, err := idx.Query(ctx, []float32{0, 1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	})

	t.Run("returns error for invalid entry", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		idx := sqlite.NewVectorIndex(db)

		err := idx.Upsert(context.Background(), &sportsense.EmbeddingEntry{OwnerID: "a1"})
		assert.Equal(t, sportsense.EINVALID, sportsense.ErrorCode(err))
	})
}

func TestVectorIndex_Query(t *testing.T) {
	t.Parallel()

	t.Run("returns k nearest entries best first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		idx := sqlite.NewVectorIndex(db)
		ctx := context.Background()

		require.NoError(t, idx.Upsert(ctx, testEntry("close", []float32{1, 0.1, 0})))
		require.NoError(t, idx.Upsert(ctx, testEntry("closer", []float32{1, 0, 0})))
		require.NoError(t, idx.Upsert(ctx, testEntry("far", []float32{0, 0, 1})))

		matches, err := idx.Query(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "closer", matches[0].OwnerID)
		assert.Equal(t, "close", matches[1].OwnerID)
		assert.Greater(t, matches[0].Score, matches[1].Score)
		assert.Equal(t, "sportsday", matches[0].Metadata["source"])
	})

	t.Run("skips entries with mismatched dimensions", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		idx := sqlite.NewVectorIndex(db)
		ctx := context.Background()

		require.NoError(t, idx.Upsert(ctx, testEntry("old-model", []float32{1, 0})))
		require.NoError(t, idx.Upsert(ctx, testEntry("current", []float32{1, 0, 0})))

		matches, err := idx.Query(ctx, []float32{1, 0, 0}, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "current", matches[0].OwnerID)
	})

	t.Run("empty index returns no matches", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		idx := sqlite.NewVectorIndex(db)

		matches, err := idx.Query(context.Background(), []float32{1, 0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("rejects invalid arguments", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		idx := sqlite.NewVectorIndex(db)
		ctx := context.Background()

		_, err := idx.Query(ctx, nil, 5)
		assert.Equal(t, sportsense.EINVALID, sportsense.ErrorCode(err))

		_, err = idx.Query(ctx, []float32{1}, 0)
		assert.Equal(t, sportsense.EINVALID, sportsense.ErrorCode(err))
	})
}

func TestVectorIndex_DeleteByOwner(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	idx := sqlite.NewVectorIndex(db)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, testEntry("a1", []float32{1, 0, 0})))
	require.NoError(t, idx.DeleteByOwner(ctx, "a1"))
	require.NoError(t, idx.DeleteByOwner(ctx, "a1"), "deleting absent owner is not an error")

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVectorIndex_Clear(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	idx := sqlite.NewVectorIndex(db)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, testEntry("a1", []float32{1, 0, 0})))
	require.NoError(t, idx.Upsert(ctx, testEntry("a2", []float32{0, 1, 0})))
	require.NoError(t, idx.Clear(ctx))

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
