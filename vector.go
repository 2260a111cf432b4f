package sportsense

import (
	"context"
	"time"
)

// EntryKind distinguishes what kind of record owns an embedding entry.
type EntryKind string

// Embedding entry kinds.
const (
	KindArticle EntryKind = "article"
	KindStat    EntryKind = "stat"
)

// EmbeddingEntry is one vector in the index. Exactly one entry exists per
// owning record; re-indexing the same owner replaces its entry.
type EmbeddingEntry struct {
	OwnerID   string            `json:"ownerId"`
	Kind      EntryKind         `json:"kind"`
	Vector    []float32         `json:"vector"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	IndexedAt time.Time         `json:"indexedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *EmbeddingEntry) Validate() error {
	if e.OwnerID == "" {
		return Errorf(EINVALID, "embedding owner ID required")
	}
	if len(e.Vector) == 0 {
		return Errorf(EINVALID, "embedding vector required")
	}
	return nil
}

// Match is one nearest-neighbor result from a vector query.
type Match struct {
	OwnerID  string            `json:"ownerId"`
	Kind     EntryKind         `json:"kind"`
	Score    float64           `json:"score"` // cosine similarity, higher is closer
	Metadata map[string]string `json:"metadata,omitempty"`
}

// VectorIndex stores embedding entries and answers similarity queries.
// Upserts are atomic per owner ID.
type VectorIndex interface {
	// Upsert inserts or replaces the entry for its owner.
	Upsert(ctx context.Context, entry *EmbeddingEntry) error

	// Query returns the k entries nearest to the vector, best first.
	Query(ctx context.Context, vector []float32, k int) ([]Match, error)

	// DeleteByOwner removes the entry for an owner, if present.
	DeleteByOwner(ctx context.Context, ownerID string) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// Embedder converts text into embedding vectors.
type Embedder interface {
	// EmbedTexts returns one vector per input text, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
