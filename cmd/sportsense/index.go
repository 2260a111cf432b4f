package main

import (
	"fmt"
	"time"

	"github.com/sportsense/sportsense"
)

// Run executes the index command: re-embed every stored record and
// rebuild the vector index from scratch.
func (c *IndexCmd) Run(deps *Dependencies) error {
	articles, err := deps.Articles.FindArticles(deps.Ctx, sportsense.ArticleFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}
	stats, err := deps.Stats.FindStats(deps.Ctx, sportsense.StatFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}
	if len(articles) == 0 && len(stats) == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to index. Run 'sportsense ingest' first.")
		return nil
	}

	texts := make([]string, 0, len(articles)+len(stats))
	entries := make([]*sportsense.EmbeddingEntry, 0, cap(texts))
	now := time.Now()
	for _, a := range articles {
		texts = append(texts, a.Title+"\n\n"+a.Content)
		entries = append(entries, &sportsense.EmbeddingEntry{
			OwnerID: a.ID,
			Kind:    sportsense.KindArticle,
			Metadata: map[string]string{
				"source": a.Source,
				"title":  a.Title,
				"sport":  a.Sport,
			},
			IndexedAt: now,
		})
	}
	for _, s := range stats {
		texts = append(texts, sportsense.FormatStat(s))
		entries = append(entries, &sportsense.EmbeddingEntry{
			OwnerID: s.ID,
			Kind:    sportsense.KindStat,
			Metadata: map[string]string{
				"source":  s.Source,
				"subject": s.Subject,
				"metric":  s.Metric,
			},
			IndexedAt: now,
		})
	}

	vectors, err := deps.Embedder.EmbedTexts(deps.Ctx, texts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}
	if len(vectors) != len(texts) {
		return sportsense.Errorf(sportsense.EINDEX, "embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	// Clear only after embedding succeeded so a backend failure leaves
	// the existing index intact.
	if err := deps.Index.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}
	for i, entry := range entries {
		entry.Vector = vectors[i]
		if err := deps.Index.Upsert(deps.Ctx, entry); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d records.\n", len(entries))
	return nil
}
