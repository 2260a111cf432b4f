package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of sportsense.VectorIndex.
type VectorIndex struct {
	UpsertFn        func(ctx context.Context, entry *sportsense.EmbeddingEntry) error
	QueryFn         func(ctx context.Context, vector []float32, k int) ([]sportsense.Match, error)
	DeleteByOwnerFn func(ctx context.Context, ownerID string) error
	CountFn         func(ctx context.Context) (int, error)
	ClearFn         func(ctx context.Context) error
}

func (i *VectorIndex) Upsert(ctx context.Context, entry *sportsense.EmbeddingEntry) error {
	return i.UpsertFn(ctx, entry)
}

func (i *VectorIndex) Query(ctx context.Context, vector []float32, k int) ([]sportsense.Match, error) {
	return i.QueryFn(ctx, vector, k)
}

func (i *VectorIndex) DeleteByOwner(ctx context.Context, ownerID string) error {
	return i.DeleteByOwnerFn(ctx, ownerID)
}

func (i *VectorIndex) Count(ctx context.Context) (int, error) {
	return i.CountFn(ctx)
}

func (i *VectorIndex) Clear(ctx context.Context) error {
	return i.ClearFn(ctx)
}

var _ sportsense.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of sportsense.Embedder.
type Embedder struct {
	EmbedTextsFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedTextsFn(ctx, texts)
}
