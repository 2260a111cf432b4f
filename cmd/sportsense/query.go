package main

import (
	"fmt"

	"github.com/sportsense/sportsense"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	vectors, err := deps.Embedder.EmbedTexts(deps.Ctx, []string{c.Text})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}
	if len(vectors) != 1 {
		return sportsense.Errorf(sportsense.EINTERNAL, "embedder returned %d vectors for 1 text", len(vectors))
	}

	matches, err := deps.Index.Query(deps.Ctx, vectors[0], c.K)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches. Run 'sportsense news' to collect and index records.")
		return nil
	}

	for _, m := range matches {
		label := m.Metadata["title"]
		if label == "" {
			label = m.Metadata["subject"] + " " + m.Metadata["metric"]
		}
		fmt.Fprintf(deps.Stdout, "%.3f  %-7s  %s  %s\n", m.Score, m.Kind, m.OwnerID, label)
	}
	return nil
}
