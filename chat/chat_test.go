package chat_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/chat"
	"github.com/sportsense/sportsense/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSession wires a Session to mocks with one indexed article and a
// completer that echoes a fixed answer.
func newSession() *chat.Session {
	return &chat.Session{
		Embedder: &mock.Embedder{
			EmbedTextsFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				vectors := make([][]float32, len(texts))
				for i := range vectors {
					vectors[i] = []float32{1, 0, 0}
				}
				return vectors, nil
			},
		},
		Index: &mock.VectorIndex{
			CountFn: func(ctx context.Context) (int, error) { return 1, nil },
			QueryFn: func(ctx context.Context, vector []float32, k int) ([]sportsense.Match, error) {
				return []sportsense.Match{{OwnerID: "a1", Kind: sportsense.KindArticle, Score: 0.9}}, nil
			},
		},
		Articles: &mock.ArticleService{
			FindArticleByIDFn: func(ctx context.Context, id string) (*sportsense.Article, error) {
				return &sportsense.Article{
					ID: id, Source: "sportsday", URL: "https://sportsday.example.com/news/" + id,
					Title: "Derby draw", Content: "The derby finished 2-2.",
				}, nil
			},
		},
		Stats: &mock.StatService{
			FindStatByIDFn: func(ctx context.Context, id string) (*sportsense.StatRecord, error) {
				return nil, sportsense.Errorf(sportsense.ENOTFOUND, "stat not found")
			},
		},
		Completer: &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				return "It finished 2-2.", nil
			},
		},
		Language: "English",
	}
}

func TestSession_Ask(t *testing.T) {
	t.Parallel()

	t.Run("answers from retrieved records", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		var gotPrompt string
		s.Completer = &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				gotPrompt = prompt
				return "It finished 2-2.", nil
			},
		}

		answer, err := s.Ask(context.Background(), "How did the derby end?")
		require.NoError(t, err)

		assert.Equal(t, "It finished 2-2.", answer)
		assert.Contains(t, gotPrompt, "The derby finished 2-2.", "retrieved article is in the prompt")
		assert.Contains(t, gotPrompt, "Q: How did the derby end?")
	})

	t.Run("requests the configured number of matches", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		s.TopK = 3
		var gotK int
		s.Index = &mock.VectorIndex{
			CountFn: func(ctx context.Context) (int, error) { return 1, nil },
			QueryFn: func(ctx context.Context, vector []float32, k int) ([]sportsense.Match, error) {
				gotK = k
				return nil, nil
			},
		}

		_, err := s.Ask(context.Background(), "Any news?")
		require.NoError(t, err)
		assert.Equal(t, 3, gotK)
	})

	t.Run("later questions see earlier exchanges", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		var lastPrompt string
		s.Completer = &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				lastPrompt = prompt
				return "Answer.", nil
			},
		}

		_, err := s.Ask(context.Background(), "First question?")
		require.NoError(t, err)
		_, err = s.Ask(context.Background(), "Second question?")
		require.NoError(t, err)

		assert.Contains(t, lastPrompt, "Q: First question?")
		assert.Contains(t, lastPrompt, "A: Answer.")
	})

	t.Run("history is trimmed to the window", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		s.Window = 2
		for i := 0; i < 3; i++ {
			_, err := s.Ask(context.Background(), fmt.Sprintf("Question %d?", i))
			require.NoError(t, err)
		}

		history := s.History()
		require.Len(t, history, 4, "two exchanges of question and answer")
		assert.Equal(t, "Question 1?", history[0])
		assert.Equal(t, "Question 2?", history[2])
	})

	t.Run("fails with ECHAT when nothing is indexed", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		s.Index = &mock.VectorIndex{
			CountFn: func(ctx context.Context) (int, error) { return 0, nil },
		}

		_, err := s.Ask(context.Background(), "Any news?")
		assert.Equal(t, sportsense.ECHAT, sportsense.ErrorCode(err))
	})

	t.Run("failed questions stay out of the history", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		s.Completer = &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts sportsense.CompletionOptions) (string, error) {
				return "", sportsense.Errorf(sportsense.EUNAVAILABLE, "backend down")
			},
		}

		_, err := s.Ask(context.Background(), "Any news?")
		require.Error(t, err)
		assert.Equal(t, sportsense.ECHAT, sportsense.ErrorCode(err))
		assert.Empty(t, s.History())
	})

	t.Run("drops matches whose record has disappeared", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		s.Articles = &mock.ArticleService{
			FindArticleByIDFn: func(ctx context.Context, id string) (*sportsense.Article, error) {
				return nil, sportsense.Errorf(sportsense.ENOTFOUND, "article not found")
			},
		}

		answer, err := s.Ask(context.Background(), "Any news?")
		require.NoError(t, err)
		assert.NotEmpty(t, answer)
	})

	t.Run("rejects a blank question", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		_, err := s.Ask(context.Background(), "  ")
		assert.Equal(t, sportsense.EINVALID, sportsense.ErrorCode(err))
	})

	t.Run("reset clears the history", func(t *testing.T) {
		t.Parallel()

		s := newSession()
		_, err := s.Ask(context.Background(), "Any news?")
		require.NoError(t, err)
		s.Reset()
		assert.Empty(t, s.History())
	})
}
