package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/sportsense/sportsense"
)

// Compile-time interface verification.
var _ sportsense.VectorIndex = (*VectorIndex)(nil)

// VectorIndex implements sportsense.VectorIndex over a SQLite table.
// Vectors are stored as little-endian float32 blobs and similarity search
// is a brute-force cosine scan, which is appropriate for a local corpus
// of at most a few thousand entries.
type VectorIndex struct {
	db *DB
}

// NewVectorIndex creates a new VectorIndex.
func NewVectorIndex(db *DB) *VectorIndex {
	return &VectorIndex{db: db}
}

// Upsert inserts or replaces the entry for its owner. The write is a
// single statement, so per-owner upserts are atomic.
func (v *VectorIndex) Upsert(ctx context.Context, entry *sportsense.EmbeddingEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if entry.IndexedAt.IsZero() {
		entry.IndexedAt = time.Now().UTC()
	}

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return err
	}

	_, err = v.db.ExecContext(ctx, `
		INSERT INTO embeddings (owner_id, kind, vector, metadata, indexed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			kind = excluded.kind,
			vector = excluded.vector,
			metadata = excluded.metadata,
			indexed_at = excluded.indexed_at
	`, entry.OwnerID, string(entry.Kind), encodeVector(entry.Vector), string(metadata),
		entry.IndexedAt.Format(time.RFC3339))

	return err
}

// Query returns the k entries nearest to the vector by cosine similarity,
// best first.
func (v *VectorIndex) Query(ctx context.Context, vector []float32, k int) ([]sportsense.Match, error) {
	if len(vector) == 0 {
		return nil, sportsense.Errorf(sportsense.EINVALID, "query vector required")
	}
	if k <= 0 {
		return nil, sportsense.Errorf(sportsense.EINVALID, "k must be positive")
	}

	rows, err := v.db.QueryContext(ctx, "SELECT owner_id, kind, vector, metadata FROM embeddings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []sportsense.Match
	for rows.Next() {
		var ownerID, kind, metadata string
		var blob []byte
		if err := rows.Scan(&ownerID, &kind, &blob, &metadata); err != nil {
			return nil, err
		}

		candidate := decodeVector(blob)
		if len(candidate) != len(vector) {
			continue // stale entry from a different embedding model
		}

		var meta map[string]string
		if err := json.Unmarshal([]byte(metadata), &meta); err != nil {
			return nil, err
		}

		matches = append(matches, sportsense.Match{
			OwnerID:  ownerID,
			Kind:     sportsense.EntryKind(kind),
			Score:    cosineSimilarity(vector, candidate),
			Metadata: meta,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// DeleteByOwner removes the entry for an owner, if present.
func (v *VectorIndex) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := v.db.ExecContext(ctx, "DELETE FROM embeddings WHERE owner_id = ?", ownerID)
	return err
}

// Count returns the number of stored entries.
func (v *VectorIndex) Count(ctx context.Context) (int, error) {
	var n int
	err := v.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM embeddings").Scan(&n)
	return n, err
}

// Clear removes all entries.
func (v *VectorIndex) Clear(ctx context.Context) error {
	_, err := v.db.ExecContext(ctx, "DELETE FROM embeddings")
	return err
}

// encodeVector serializes a vector as little-endian float32 bytes.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, f := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector is the inverse of encodeVector. Trailing bytes that do not
// fill a float32 are ignored.
func decodeVector(buf []byte) []float32 {
	vector := make([]float32, len(buf)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vector
}

// cosineSimilarity returns the cosine of the angle between a and b.
// Zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
