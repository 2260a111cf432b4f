package main

import (
	"fmt"

	"github.com/sportsense/sportsense"
)

// Run executes the collect command. Nothing is stored; the fetched
// records are printed for inspection.
func (c *CollectCmd) Run(deps *Dependencies) error {
	if len(deps.Config.Sources) == 0 {
		fmt.Fprintln(deps.Stderr, "No sources configured. Add a sources list to your config file.")
		return sportsense.Errorf(sportsense.ECONFIG, "no sources configured")
	}

	result, err := deps.Collector.FetchAll(deps.Ctx, func(p sportsense.CollectProgress) {
		if p.Err != nil {
			fmt.Fprintf(deps.Stderr, "%s: %s: %s\n", p.Source, p.URL, sportsense.ErrorMessage(p.Err))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}

	for _, a := range result.Articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", a.ID, a.Source, a.Title)
	}
	for _, s := range result.Stats {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", s.ID, sportsense.FormatStat(s))
	}
	for _, se := range result.SourceErrors {
		fmt.Fprintf(deps.Stderr, "source %s failed: %s\n", se.Source, sportsense.ErrorMessage(se.Err))
	}

	fmt.Fprintf(deps.Stdout, "%d articles, %d stats, %d skipped\n",
		len(result.Articles), len(result.Stats), result.Skipped)
	return nil
}
