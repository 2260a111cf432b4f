package main

import (
	"fmt"
	"time"

	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/pipeline"
)

// Run executes the news command.
func (c *NewsCmd) Run(deps *Dependencies) error {
	if len(deps.Config.Sources) == 0 {
		fmt.Fprintln(deps.Stderr, "No sources configured. Add a sources list to your config file.")
		return sportsense.Errorf(sportsense.ECONFIG, "no sources configured")
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	language := c.Language
	if language == "" {
		language = deps.Config.Language
	}

	ran := false
	run, err := deps.Runner.Run(deps.Ctx, date, language, c.Force, func(e pipeline.ProgressEvent) {
		ran = true
		switch e.Outcome {
		case sportsense.StageRunning:
			fmt.Fprintf(deps.Stdout, "%s...\n", e.Stage)
		case sportsense.StageSucceeded:
			fmt.Fprintf(deps.Stdout, "%s: %d records\n", e.Stage, e.Records)
		case sportsense.StageFailed:
			fmt.Fprintf(deps.Stderr, "%s failed: %s\n", e.Stage, sportsense.ErrorMessage(e.Err))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}

	if !ran {
		fmt.Fprintf(deps.Stdout, "Run %s already completed. Use --force to re-run.\n", run.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Run %s completed.\n", run.ID)

	if rep, err := deps.Reports.FindReport(deps.Ctx, date, language); err == nil {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, rep.Summary)
	}
	return nil
}
