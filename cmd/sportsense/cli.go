package main

import (
	"context"
	"io"

	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/chat"
	"github.com/sportsense/sportsense/pipeline"
	"github.com/sportsense/sportsense/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Config sportsense.Config
	DB     *sqlite.DB

	Articles sportsense.ArticleService
	Stats    sportsense.StatService
	Records  sportsense.RecordWriter
	Reports  sportsense.ReportService
	Runs     sportsense.RunService
	Index    sportsense.VectorIndex

	Collector sportsense.SourceCollector
	Embedder  sportsense.Embedder
	Completer sportsense.Completer
	Generator sportsense.ReportGenerator
	Runner    *pipeline.Runner
	Session   *chat.Session
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	News    NewsCmd    `cmd:"" help:"Run the daily ingestion workflow and print the report"`
	Collect CollectCmd `cmd:"" help:"Fetch from all sources without storing anything"`
	Ingest  IngestCmd  `cmd:"" help:"Fetch from all sources and store the records"`
	Index   IndexCmd   `cmd:"" help:"Rebuild the vector index from stored records"`
	Report  ReportCmd  `cmd:"" help:"Generate a daily report or list stored reports"`
	Query   QueryCmd   `cmd:"" help:"Search the vector index"`
	Chat    ChatCmd    `cmd:"" help:"Ask questions about collected news"`
	Runs    RunsCmd    `cmd:"" help:"List pipeline runs"`
}

// NewsCmd is the "news" subcommand.
type NewsCmd struct {
	Date     string `help:"Run date (YYYY-MM-DD), defaults to today"`
	Language string `help:"Report language, defaults to the configured language"`
	Force    bool   `short:"f" help:"Re-run even if the date already completed"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct{}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct{}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Date     string `help:"Report date (YYYY-MM-DD), defaults to today"`
	Language string `help:"Report language, defaults to the configured language"`
	All      bool   `help:"List stored reports instead of generating one"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Text string `arg:"" help:"Query text"`
	K    int    `short:"k" default:"5" help:"Number of matches to return"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Date  string `help:"Filter runs by date (YYYY-MM-DD)"`
	Limit int    `default:"20" help:"Maximum number of runs listed"`
}
