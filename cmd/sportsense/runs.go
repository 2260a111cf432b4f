package main

import (
	"fmt"
	"strings"

	"github.com/sportsense/sportsense"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := sportsense.RunFilter{Limit: c.Limit}
	if c.Date != "" {
		filter.Date = &c.Date
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Run 'sportsense news' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %s  %s\n", r.ID, r.State, r.Language, stageSummary(r))
	}
	return nil
}

// stageSummary renders per-stage outcomes in execution order.
func stageSummary(r *sportsense.PipelineRun) string {
	parts := make([]string, 0, len(sportsense.Stages()))
	for _, s := range sportsense.Stages() {
		parts = append(parts, fmt.Sprintf("%s=%s", s, r.Stages[s].Outcome))
	}
	return strings.Join(parts, " ")
}
