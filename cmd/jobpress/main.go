package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rojgarbhaskar/jobpress"
	"github.com/rojgarbhaskar/jobpress/compose"
	"github.com/rojgarbhaskar/jobpress/goquery"
	jphttp "github.com/rojgarbhaskar/jobpress/http"
	"github.com/rojgarbhaskar/jobpress/pipeline"
	jpslog "github.com/rojgarbhaskar/jobpress/slog"
	"github.com/rojgarbhaskar/jobpress/sqlite"
	"github.com/rojgarbhaskar/jobpress/wordpress"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, jobpress.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the run-history ledger.
	DB *sqlite.DB

	// Run ledger, exposed for end-to-end testing.
	RunService jobpress.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobpress"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobpress --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Flags may precede the command, so the command name comes from the
	// parsed context, not the raw argument list.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Configuration problems are fatal before any candidate is
	// processed; every command except "runs" needs the config.
	if cmd != "runs" {
		cfg, err := jobpress.LoadConfig(cli.Config)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: set %s, %s and %s, and check %q\n",
				jobpress.EnvSiteURL, jobpress.EnvUsername, jobpress.EnvAppPassword, cli.Config)
			return err
		}
		deps.Config = cfg
	}

	deps.Logger = newLogger(stderr, deps.Config)

	// Open the run ledger for commands that touch it.
	if cmd == "run" || cmd == "runs" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set JOBPRESS_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		m.RunService = sqlite.NewRunService(m.DB)
		deps.DB = m.DB
		deps.Runs = m.RunService
	}

	if cmd == "run" || cmd == "preview" {
		fetcher := jpslog.NewFetcher(jphttp.NewFetcher(), deps.Logger)
		deps.Fetcher = fetcher
		deps.Harvester = goquery.NewHarvester()
	}

	if cmd == "run" {
		cfg := deps.Config
		categories, err := cfg.CategoryMap()
		if err != nil {
			return err
		}

		publisher := jpslog.NewPublisher(
			wordpress.NewPublisher(cfg.Store.SiteURL, cfg.Store.Username, cfg.Store.AppPassword),
			deps.Logger,
		)

		deps.Runner = &pipeline.Runner{
			Fetcher:      deps.Fetcher,
			Harvester:    deps.Harvester,
			Feeds:        jphttp.NewFeedHarvester(),
			Extractor:    goquery.NewExtractor(cfg.Blocklist),
			Composer:     compose.NewComposer(),
			Publisher:    publisher,
			Categories:   categories,
			Limiter:      pipeline.NewHostLimiter(cfg.Pipeline.RequestsPerSecond),
			Runs:         deps.Runs,
			Concurrency:  cfg.Pipeline.Concurrency,
			MaxPerSource: cfg.Pipeline.MaxPerSource,
			PublishDelay: time.Duration(cfg.Pipeline.PublishDelaySecs) * time.Second,
			Logger: func(format string, args ...any) {
				deps.Logger.Warn(fmt.Sprintf(format, args...))
			},
		}
	}

	return kongCtx.Run(deps)
}

func newLogger(stderr io.Writer, cfg *jobpress.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("JOBPRESS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobpress.db"
	}
	dir := filepath.Join(home, ".jobpress")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "jobpress.db")
}
