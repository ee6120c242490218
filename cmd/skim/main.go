package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/skim"
	"github.com/fwojciec/skim/extract"
	"github.com/fwojciec/skim/gemini"
	"github.com/fwojciec/skim/goquery"
	"github.com/fwojciec/skim/htmltomarkdown"
	skimhttp "github.com/fwojciec/skim/http"
	"github.com/fwojciec/skim/huggingface"
	"github.com/fwojciec/skim/readability"
	"github.com/fwojciec/skim/rod"
	skimslog "github.com/fwojciec/skim/slog"
	"github.com/fwojciec/skim/summarize"
	"github.com/fwojciec/skim/trafilatura"
	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config replaces the environment when set. Set before calling Run().
	Config *Config

	// Stdin is read by the summarize command.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("skim"),
		kong.Description("Extract readable text from web pages and summarize it"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'skim --help' to see available commands")
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

	if m.Config != nil {
		deps.Config = *m.Config
	} else if deps.Config, err = LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	deps.Logger, err = newLogger(stderr, deps.Config, cli.Verbose, cmd == "serve")
	if err != nil {
		return err
	}

	switch cmd {
	case "extract", "run", "serve":
		render := cli.Extract.Render || cli.Run.Render || cli.Serve.Render
		fetcher, err := newFetcher(deps.Config, render, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		if cmd == "run" && cli.Run.HostRPS > 0 {
			fetcher = extract.NewLimitedFetcher(fetcher, extract.NewHostLimiter(cli.Run.HostRPS))
		}

		svc := extract.NewService(skimslog.NewLoggingFetcher(fetcher, deps.Logger), newExtractor())
		svc.Timeout = deps.Config.FetchTimeout
		deps.Extractor = skimslog.NewLoggingArticleExtractor(svc, deps.Logger)
		deps.Converter = htmltomarkdown.NewConverter()
	}

	switch cmd {
	case "summarize", "run", "serve":
		inferencer, err := newInferencer(ctx, deps.Config)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check that your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to create inference client: %w", err)
		}
		if inferencer != nil {
			inferencer = skimslog.NewLoggingInferencer(inferencer, deps.Logger)
		}
		svc := summarize.NewService(inferencer, deps.Logger)
		svc.NotConfiguredMessage = notConfiguredMessage(deps.Config.Backend)
		deps.Summarizer = skimslog.NewLoggingSummarizer(svc, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newLogger builds the stderr logger. The server logs JSON at info level by
// default; CLI commands only log warnings unless asked to be verbose.
func newLogger(w io.Writer, cfg Config, verbose, server bool) (*slog.Logger, error) {
	fallback := slog.LevelWarn
	if server {
		fallback = slog.LevelInfo
	}
	level, err := cfg.Level(fallback)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if server {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// newFetcher returns a headless browser fetcher when render is set and a
// plain HTTP fetcher otherwise.
func newFetcher(cfg Config, render bool, logger *slog.Logger) (skim.Fetcher, error) {
	if render {
		return rod.NewFetcher(
			rod.WithFetchTimeout(cfg.FetchTimeout),
			rod.WithBrowserBin(cfg.ChromeBin),
			rod.WithMaxPages(cfg.MaxPages),
			rod.WithLogger(logger),
		)
	}
	return skimhttp.NewFetcher(skimhttp.WithTimeout(cfg.FetchTimeout)), nil
}

// newExtractor returns the extraction chain, most precise extractor first.
func newExtractor() skim.Extractor {
	return extract.Chain{
		readability.NewExtractor(),
		trafilatura.NewExtractor(),
		goquery.NewExtractor(),
	}
}

// notConfiguredMessage names the credential the chosen backend needs.
func notConfiguredMessage(backend string) string {
	if backend == BackendGemini {
		return "Summarization service not configured. Please set GEMINI_API_KEY in your .env.local file."
	}
	return summarize.DefaultNotConfiguredMessage
}

// newInferencer returns the configured inference backend, or nil when its
// credential is missing.
func newInferencer(ctx context.Context, cfg Config) (skim.Inferencer, error) {
	var limiter *rate.Limiter
	if cfg.InferenceRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.InferenceRPS), 1)
	}

	switch cfg.Backend {
	case BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return gemini.NewInferencer(client,
			gemini.WithModel(cfg.GeminiModel),
			gemini.WithLimiter(limiter),
		), nil
	default:
		if cfg.HFAPIKey == "" {
			return nil, nil
		}
		return huggingface.NewInferencer(cfg.HFAPIKey,
			huggingface.WithModelURL(cfg.HFModelURL),
			huggingface.WithLimiter(limiter),
		), nil
	}
}
