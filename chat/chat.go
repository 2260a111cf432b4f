// Package chat implements interactive question answering over the
// indexed records. Each question is answered from the nearest indexed
// articles and stats plus a rolling window of conversation history.
package chat

import (
	"context"
	"strings"

	"github.com/sportsense/sportsense"
)

// Defaults for retrieval depth and history length.
const (
	DefaultTopK   = 5
	DefaultWindow = 8
)

const systemPrompt = "You are a sports news assistant. Answer questions using the provided articles " +
	"and statistics. When the material does not contain the answer, say so instead of guessing."

// Session holds the conversation state for one chat. It is not safe for
// concurrent use.
type Session struct {
	Embedder  sportsense.Embedder
	Index     sportsense.VectorIndex
	Articles  sportsense.ArticleService
	Stats     sportsense.StatService
	Completer sportsense.Completer

	Model    string
	Language string

	// TopK is the number of records retrieved per question.
	// Defaults to DefaultTopK.
	TopK int

	// Window is the number of past exchanges kept as context.
	// Defaults to DefaultWindow.
	Window int

	history []exchange
}

// exchange is one question and its answer.
type exchange struct {
	question string
	answer   string
}

// Ask answers a question from the indexed records. Fails with ECHAT when
// the index is empty or a backend errors; the failed question is not
// added to the history.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", sportsense.Errorf(sportsense.EINVALID, "question required")
	}

	count, err := s.Index.Count(ctx)
	if err != nil {
		return "", sportsense.Errorf(sportsense.ECHAT, "checking index: %s", sportsense.ErrorMessage(err))
	}
	if count == 0 {
		return "", sportsense.Errorf(sportsense.ECHAT, "nothing indexed yet; run an ingestion first")
	}

	vectors, err := s.Embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return "", sportsense.Errorf(sportsense.ECHAT, "embedding question: %s", sportsense.ErrorMessage(err))
	}
	if len(vectors) != 1 {
		return "", sportsense.Errorf(sportsense.ECHAT, "embedder returned %d vectors for one question", len(vectors))
	}

	matches, err := s.Index.Query(ctx, vectors[0], s.topK())
	if err != nil {
		return "", sportsense.Errorf(sportsense.ECHAT, "querying index: %s", sportsense.ErrorMessage(err))
	}

	articles, stats, err := s.loadRecords(ctx, matches)
	if err != nil {
		return "", sportsense.Errorf(sportsense.ECHAT, "loading records: %s", sportsense.ErrorMessage(err))
	}

	prompt := s.buildPrompt(articles, stats, question)
	answer, err := s.Completer.Complete(ctx, prompt, sportsense.CompletionOptions{
		Model:        s.Model,
		Language:     s.Language,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return "", sportsense.Errorf(sportsense.ECHAT, "generating answer: %s", sportsense.ErrorMessage(err))
	}

	s.history = append(s.history, exchange{question: question, answer: answer})
	if window := s.window(); len(s.history) > window {
		s.history = s.history[len(s.history)-window:]
	}
	return answer, nil
}

// History returns the retained exchanges as alternating question and
// answer strings, oldest first.
func (s *Session) History() []string {
	out := make([]string, 0, len(s.history)*2)
	for _, e := range s.history {
		out = append(out, e.question, e.answer)
	}
	return out
}

// Reset clears the conversation history.
func (s *Session) Reset() {
	s.history = nil
}

// loadRecords resolves matches to their stored records. Matches whose
// record has disappeared are dropped.
func (s *Session) loadRecords(ctx context.Context, matches []sportsense.Match) ([]*sportsense.Article, []*sportsense.StatRecord, error) {
	var articles []*sportsense.Article
	var stats []*sportsense.StatRecord

	for _, m := range matches {
		switch m.Kind {
		case sportsense.KindArticle:
			article, err := s.Articles.FindArticleByID(ctx, m.OwnerID)
			if err != nil {
				if sportsense.ErrorCode(err) == sportsense.ENOTFOUND {
					continue
				}
				return nil, nil, err
			}
			articles = append(articles, article)
		case sportsense.KindStat:
			stat, err := s.Stats.FindStatByID(ctx, m.OwnerID)
			if err != nil {
				if sportsense.ErrorCode(err) == sportsense.ENOTFOUND {
					continue
				}
				return nil, nil, err
			}
			stats = append(stats, stat)
		}
	}
	return articles, stats, nil
}

// buildPrompt assembles retrieved context, conversation history, and the
// question.
func (s *Session) buildPrompt(articles []*sportsense.Article, stats []*sportsense.StatRecord, question string) string {
	var sb strings.Builder
	if formatted := sportsense.FormatArticles(articles); formatted != "" {
		sb.WriteString(formatted)
		sb.WriteString("\n\n")
	}
	if formatted := sportsense.FormatStats(stats); formatted != "" {
		sb.WriteString(formatted)
		sb.WriteString("\n\n")
	}
	for _, e := range s.history {
		sb.WriteString("Q: " + e.question + "\n")
		sb.WriteString("A: " + e.answer + "\n")
	}
	sb.WriteString("Q: " + question)
	return sb.String()
}

func (s *Session) topK() int {
	if s.TopK > 0 {
		return s.TopK
	}
	return DefaultTopK
}

func (s *Session) window() int {
	if s.Window > 0 {
		return s.Window
	}
	return DefaultWindow
}
