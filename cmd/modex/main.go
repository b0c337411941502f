package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/modex/modex"
	"github.com/modex/modex/crawl"
	"github.com/modex/modex/gemini"
	"github.com/modex/modex/goquery"
	"github.com/modex/modex/htmltomarkdown"
	modexhttp "github.com/modex/modex/http"
	"github.com/modex/modex/process"
	"github.com/modex/modex/rod"
	modexslog "github.com/modex/modex/slog"
	"github.com/modex/modex/sqlite"
	"github.com/modex/modex/trafilatura"
	"google.golang.org/genai"
)

// tokenizerModel is used for local token counting; the tokenizer library
// lags behind the generation models.
const tokenizerModel = "gemini-2.5-flash"

// maxInputTokens bounds the per-page prompt sent for module extraction.
const maxInputTokens = 200000

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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the storage services.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService  modex.RunService
	PageService modex.PageService
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
		kong.Name("modex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'modex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MODEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	m.PageService = sqlite.NewPageService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService
	deps.Pages = m.PageService

	if cmd == "extract" {
		fetcher, err := newFetcher(cli.Extract.HTTP, logger, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:   fetcher,
			Extractor: trafilatura.NewExtractor(),
			Links:     goquery.NewLinkSelector(),
			Sitemaps:  modexslog.NewLoggingSitemapService(modexhttp.NewSitemapService(nil), logger),
			MaxDepth:  cli.Extract.Depth,
			MaxPages:  cli.Extract.MaxPages,
			Logger:    logger,
		}

		deps.Processor = process.NewProcessor(
			goquery.NewStructureExtractor(htmltomarkdown.NewConverter()),
			cli.Extract.Concurrency,
			logger,
		)

		if !cli.Extract.SkipModules {
			modules, err := newModuleExtractor(ctx, cli.Extract.Model, logger, stderr)
			if err != nil {
				return err
			}
			deps.Modules = modules
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher picks the page fetcher: headless Chrome by default, plain HTTP
// on request.
func newFetcher(plainHTTP bool, logger *slog.Logger, stderr io.Writer) (modex.Fetcher, error) {
	if plainHTTP {
		return modexhttp.NewFetcher(), nil
	}

	fetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --http for static sites")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return rod.NewLoggingFetcher(fetcher, logger), nil
}

// newModuleExtractor builds the Gemini-backed extractor from the environment.
func newModuleExtractor(ctx context.Context, model string, logger *slog.Logger, stderr io.Writer) (modex.ModuleExtractor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey, or pass --skip-modules")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	opts := []gemini.Option{gemini.WithModel(model), gemini.WithLogger(logger)}
	if tc, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
		opts = append(opts, gemini.WithTokenBudget(tc, maxInputTokens))
	} else {
		logger.Warn("local tokenizer unavailable, prompts are not budgeted", "error", err)
	}

	return modexslog.NewLoggingModuleExtractor(gemini.NewExtractor(client, opts...), logger), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("MODEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "modex.db"
	}
	dir := filepath.Join(home, ".modex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "modex.db")
}
