package main

import (
	"fmt"

	"github.com/sportsense/sportsense"
)

// Run executes the ingest command: fetch from all sources and store the
// records without indexing or reporting.
func (c *IngestCmd) Run(deps *Dependencies) error {
	if len(deps.Config.Sources) == 0 {
		fmt.Fprintln(deps.Stderr, "No sources configured. Add a sources list to your config file.")
		return sportsense.Errorf(sportsense.ECONFIG, "no sources configured")
	}

	result, err := deps.Collector.FetchAll(deps.Ctx, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}

	for _, se := range result.SourceErrors {
		fmt.Fprintf(deps.Stderr, "source %s failed: %s\n", se.Source, sportsense.ErrorMessage(se.Err))
	}
	if len(result.Articles) == 0 && len(result.Stats) == 0 {
		if len(result.SourceErrors) > 0 {
			return sportsense.Errorf(sportsense.ECOLLECTION, "all sources failed")
		}
		fmt.Fprintln(deps.Stdout, "Nothing new to ingest.")
		return nil
	}

	if err := deps.Records.UpsertRecords(deps.Ctx, result.Articles, result.Stats); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d articles and %d stats (%d skipped).\n",
		len(result.Articles), len(result.Stats), result.Skipped)
	return nil
}
