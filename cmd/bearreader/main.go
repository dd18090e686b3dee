package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/bloom"
	"github.com/fwojciec/bearreader/config"
	"github.com/fwojciec/bearreader/fs"
	"github.com/fwojciec/bearreader/gemini"
	"github.com/fwojciec/bearreader/goquery"
	"github.com/fwojciec/bearreader/htmltomarkdown"
	bearhttp "github.com/fwojciec/bearreader/http"
	"github.com/fwojciec/bearreader/readability"
	"github.com/fwojciec/bearreader/reader"
	"github.com/fwojciec/bearreader/rod"
	bearslog "github.com/fwojciec/bearreader/slog"
	"github.com/fwojciec/bearreader/sqlite"
	"github.com/fwojciec/bearreader/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

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

	// Page cache directory. Defaults to a cache directory next to the database.
	CacheDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the network fetcher for end-to-end testing.
	Fetcher bearreader.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: config.DefaultDBPath(),
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bearreader"),
		kong.Description("Read Bear blogs from the terminal"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bearreader --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Open database
	if m.DBPath != ":memory:" {
		dir := filepath.Dir(m.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", config.DBPathEnv)
			return fmt.Errorf("failed to create database directory %q: %w", dir, err)
		}
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", config.DBPathEnv)
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	deps.Posts = sqlite.NewPostService(m.DB)
	deps.Subscriptions = sqlite.NewSubscriptionService(m.DB)
	deps.Settings = sqlite.NewSettingsService(m.DB)
	deps.Previewer = goquery.NewSelectorPreviewer()
	deps.Seen = bloom.NewFilter(bloom.DefaultCapacity, bloom.DefaultFalsePositiveRate)

	settings, err := deps.Settings.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cacheDir := m.CacheDir
	if cacheDir == "" {
		cacheDir = config.DefaultCacheDir(m.DBPath)
	}
	cache, err := fs.NewCache(cacheDir)
	if err != nil {
		return fmt.Errorf("failed to open page cache at %q: %w", cacheDir, err)
	}
	deps.Cache = cache

	fetcher, closeFetcher, err := m.fetcher(cli, cmd, settings, stderr)
	if err != nil {
		return err
	}
	defer closeFetcher()
	fetcher = bearslog.NewLoggingFetcher(fetcher, logger)
	deps.Fetcher = fetcher

	deps.Reader = &reader.Reader{
		Fetcher:       fetcher,
		Cache:         cache,
		Limiter:       reader.NewDomainLimiter(reader.DefaultRequestsPerSecond),
		Listings:      bearslog.NewLoggingListingExtractor(goquery.NewListingExtractor(), logger),
		Content:       bearslog.NewLoggingContentExtractor(goquery.NewContentExtractor(htmltomarkdown.NewConverter(), goquery.WithLogger(logger)), logger),
		Fallback:      fallbackExtractor(cli, cmd),
		Posts:         deps.Posts,
		Settings:      deps.Settings,
		Subscriptions: deps.Subscriptions,
		Feeds:         bearslog.NewLoggingFeedService(bearhttp.NewFeedService(nil, settings.UserAgent), logger),
		Logger:        logger,
		RetryDelays:   reader.DefaultRetryDelays(),
		Concurrency:   reader.DefaultConcurrency,
	}

	if cmd == "read" && cli.Read.Save != "" {
		deps.Writer = fs.NewWriter(cli.Read.Save)
	}

	if cmd == "summarize" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		summarizer := gemini.NewSummarizer(client)
		if counter, err := gemini.NewTokenCounter(gemini.Model); err != nil {
			logger.Warn("token counter unavailable", "err", err)
		} else {
			summarizer.Counter = counter
		}
		deps.Summarizer = summarizer
	}

	return kongCtx.Run(deps)
}

// fetcher returns the fetcher for cmd: a headless browser when rendering
// was requested, plain HTTP otherwise.
func (m *Main) fetcher(cli *CLI, cmd string, settings *bearreader.Settings, stderr io.Writer) (bearreader.Fetcher, func(), error) {
	if m.Fetcher != nil {
		return m.Fetcher, func() {}, nil
	}

	render := (cmd == "read" && cli.Read.Render) || (cmd == "summarize" && cli.Summarize.Render)
	if render {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithUserAgent(settings.UserAgent),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	f := bearhttp.NewFetcher(
		bearhttp.WithTimeout(cli.Timeout),
		bearhttp.WithUserAgent(settings.UserAgent),
		bearhttp.WithLanguage(cli.Lang),
	)
	return f, func() { _ = f.Close() }, nil
}

// fallbackExtractor returns the content locator selected for cmd, or nil.
func fallbackExtractor(cli *CLI, cmd string) bearreader.Extractor {
	var name string
	switch cmd {
	case "read":
		name = cli.Read.Fallback
	case "summarize":
		name = cli.Summarize.Fallback
	}
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	default:
		return nil
	}
}
