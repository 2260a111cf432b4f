package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sportsense/sportsense"
	main "github.com/sportsense/sportsense/cmd/sportsense"
	"github.com/sportsense/sportsense/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexDeps(stdout, stderr *bytes.Buffer, articles []*sportsense.Article, stats []*sportsense.StatRecord) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Articles: &mock.ArticleService{
			FindArticlesFn: func(ctx context.Context, filter sportsense.ArticleFilter) ([]*sportsense.Article, error) {
				return articles, nil
			},
		},
		Stats: &mock.StatService{
			FindStatsFn: func(ctx context.Context, filter sportsense.StatFilter) ([]*sportsense.StatRecord, error) {
				return stats, nil
			},
		},
		Embedder: &mock.Embedder{
			EmbedTextsFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				vectors := make([][]float32, len(texts))
				for i := range vectors {
					vectors[i] = []float32{1, 0, 0}
				}
				return vectors, nil
			},
		},
	}
}

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds the index from stored records", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := indexDeps(stdout, stderr,
			[]*sportsense.Article{{ID: "a1", Source: "sportsday", Title: "Derby draw", Content: "2-2.", Sport: "football"}},
			[]*sportsense.StatRecord{{ID: "s1", Subject: "Thunder", Metric: "Wins", Value: 68}},
		)

		cleared := false
		var upserted []*sportsense.EmbeddingEntry
		deps.Index = &mock.VectorIndex{
			ClearFn: func(ctx context.Context) error {
				cleared = true
				return nil
			},
			UpsertFn: func(ctx context.Context, entry *sportsense.EmbeddingEntry) error {
				upserted = append(upserted, entry)
				return nil
			},
		}

		err := (&main.IndexCmd{}).Run(deps)

		require.NoError(t, err)
		assert.True(t, cleared)
		require.Len(t, upserted, 2)
		assert.Equal(t, "a1", upserted[0].OwnerID)
		assert.Equal(t, sportsense.KindArticle, upserted[0].Kind)
		assert.Equal(t, "Derby draw", upserted[0].Metadata["title"])
		assert.Equal(t, "s1", upserted[1].OwnerID)
		assert.Equal(t, sportsense.KindStat, upserted[1].Kind)
		assert.Contains(t, stdout.String(), "Indexed 2 records.")
	})

	t.Run("says so when the store is empty", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := indexDeps(stdout, stderr, nil, nil)

		require.NoError(t, (&main.IndexCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "Nothing to index.")
	})

	t.Run("keeps the existing index when embedding fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := indexDeps(stdout, stderr,
			[]*sportsense.Article{{ID: "a1", Source: "sportsday", Title: "Derby draw"}}, nil)
		deps.Embedder = &mock.Embedder{
			EmbedTextsFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				return nil, sportsense.Errorf(sportsense.EUNAVAILABLE, "backend down")
			},
		}
		deps.Index = &mock.VectorIndex{
			ClearFn: func(ctx context.Context) error {
				t.Fatal("Clear must not run when embedding fails")
				return nil
			},
		}

		err := (&main.IndexCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "backend down")
	})
}
