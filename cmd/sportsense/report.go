package main

import (
	"fmt"
	"time"

	"github.com/sportsense/sportsense"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	if c.All {
		reports, err := deps.Reports.FindReports(deps.Ctx, sportsense.ReportFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
			return err
		}
		if len(reports) == 0 {
			fmt.Fprintln(deps.Stdout, "No reports yet. Run 'sportsense news' to generate one.")
			return nil
		}
		for _, r := range reports {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.Date, r.Language, r.Model)
		}
		return nil
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	language := c.Language
	if language == "" {
		language = deps.Config.Language
	}

	doc, err := deps.Generator.Generate(deps.Ctx, date, language)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, doc.Summary)
	return nil
}
