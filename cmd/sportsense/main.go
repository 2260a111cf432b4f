package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/sportsense/sportsense"
	"github.com/sportsense/sportsense/chat"
	"github.com/sportsense/sportsense/collect"
	"github.com/sportsense/sportsense/gemini"
	"github.com/sportsense/sportsense/goquery"
	"github.com/sportsense/sportsense/htmltomarkdown"
	sportsensehttp "github.com/sportsense/sportsense/http"
	"github.com/sportsense/sportsense/openai"
	"github.com/sportsense/sportsense/pipeline"
	"github.com/sportsense/sportsense/report"
	sportsenseslog "github.com/sportsense/sportsense/slog"
	"github.com/sportsense/sportsense/sqlite"
	"github.com/sportsense/sportsense/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Database path override; empty uses the configured path.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Articles sportsense.ArticleService
	Stats    sportsense.StatService
	Reports  sportsense.ReportService
	Runs     sportsense.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: os.Getenv(sportsense.EnvConfigPath),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := sportsense.LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to point at a valid config file\n", sportsense.EnvConfigPath)
		return err
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  os.Stdin,
		Config: cfg,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sportsense"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sportsense --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	dbPath := cfg.DBPath
	if m.DBPath != "" {
		dbPath = m.DBPath
	}
	dbPath = expandHome(dbPath)
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", sportsense.EnvDBPath)
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Wire core services into dependencies
	m.Articles = sqlite.NewArticleService(m.DB)
	m.Stats = sqlite.NewStatService(m.DB)
	m.Reports = sqlite.NewReportService(m.DB)
	m.Runs = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Articles = m.Articles
	deps.Stats = m.Stats
	deps.Records = sqlite.NewRecordService(m.DB)
	deps.Reports = m.Reports
	deps.Runs = m.Runs
	deps.Index = sportsenseslog.NewLoggingVectorIndex(sqlite.NewVectorIndex(m.DB), logger)

	// Wire command-specific dependencies based on command
	if cmd == "news" || cmd == "collect" || cmd == "ingest" {
		collector := &collect.Collector{
			Sources:     cfg.Sources,
			Fetcher:     sportsensehttp.NewFetcher(),
			Feeds:       sportsensehttp.NewFeedService(nil),
			Links:       goquery.NewLinkExtractor(),
			Stats:       goquery.NewStatsParser(),
			Extractor:   trafilatura.NewExtractor(),
			Converter:   htmltomarkdown.NewConverter(),
			Limiter:     collect.NewDomainLimiter(cfg.Collect.RPS),
			Articles:    m.Articles,
			Concurrency: cfg.Collect.Concurrency,
			DaysBack:    cfg.Collect.DaysBack,
		}
		deps.Collector = sportsenseslog.NewLoggingSourceCollector(collector, logger)
	}

	if cmd == "news" || cmd == "index" || cmd == "report" || cmd == "query" || cmd == "chat" {
		switch cfg.LLM.Provider {
		case "gemini":
			if cfg.LLM.APIKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set")
			}
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  cfg.LLM.APIKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			deps.Completer = gemini.NewCompleter(client, cfg.LLM.Model)
			deps.Embedder = gemini.NewEmbedder(client, cfg.LLM.EmbeddingModel)
		default:
			if cfg.LLM.APIKey == "" && cfg.LLM.BaseURL == "" {
				fmt.Fprintf(stderr, "%s environment variable not set. Set %s instead to use a local endpoint such as Ollama.\n",
					sportsense.EnvOpenAIKey, sportsense.EnvOpenAIBase)
				return fmt.Errorf("%s not set", sportsense.EnvOpenAIKey)
			}
			client := openai.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
			deps.Completer = openai.NewCompleter(client, cfg.LLM.Model)
			deps.Embedder = openai.NewEmbedder(client, cfg.LLM.EmbeddingModel)
		}
	}

	if cmd == "news" || cmd == "report" {
		generator := &report.Generator{
			Articles:  m.Articles,
			Stats:     m.Stats,
			Reports:   m.Reports,
			Completer: deps.Completer,
			Model:     cfg.LLM.Model,
		}
		// The local Gemini tokenizer approximates prompt budgets for
		// non-Gemini backends too; without it articles are never trimmed.
		if tokens, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			generator.Tokens = tokens
		}
		deps.Generator = generator
	}

	if cmd == "news" {
		deps.Runner = &pipeline.Runner{
			Collector: deps.Collector,
			Embedder:  deps.Embedder,
			Index:     deps.Index,
			Records:   deps.Records,
			Reports:   deps.Generator,
			Runs:      m.Runs,
		}
	}

	if cmd == "chat" {
		deps.Session = &chat.Session{
			Embedder:  deps.Embedder,
			Index:     deps.Index,
			Articles:  m.Articles,
			Stats:     m.Stats,
			Completer: deps.Completer,
			Model:     cfg.LLM.Model,
			Language:  cfg.Language,
			TopK:      cfg.Chat.TopK,
			Window:    cfg.Chat.Window,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting; it must be a model the
// google.golang.org/genai/tokenizer package supports locally.
const tokenizerModel = "gemini-2.5-flash"

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
