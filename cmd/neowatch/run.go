package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"neowatch/internal/config"
	"neowatch/internal/fetcher"
	"neowatch/internal/formatter"
	"neowatch/internal/logger"
	"neowatch/internal/processor"
)

// run is the main function with the operating system passed in. It returns
// an error instead of exiting.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)

	configFile := flags.String("config", "", "Path to YAML configuration file")
	envFile := flags.String("env-file", ".env", "Dotenv file with NASA_API_KEY and other overrides (ignored if missing)")
	start := flags.String("start", "2015-09-07", "Start date (YYYY-MM-DD)")
	end := flags.String("end", "2015-09-08", "End date (YYYY-MM-DD)")
	limit := flags.Int("limit", 0, "Objects kept per date (default from config)")
	output := flags.String("output", "", "Output format: inline, lines or table (overrides config)")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	timeout := flags.Duration("timeout", 0, "HTTP timeout, e.g. 10s (overrides config)")

	if err := flags.Parse(args[1:]); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	lookup, err := envLookup(*envFile, getenv)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*configFile, lookup)
	if err != nil {
		return err
	}

	if *output != "" {
		cfg.Output.Format = *output
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if *timeout > 0 {
		cfg.HTTP.TimeoutSec = int((*timeout + time.Second - 1) / time.Second)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	log := logger.NewLoggerWithWriter(stderr, cfg.Logging.Level)
	log.Debug("configuration loaded", "config", cfg.String())

	recordLimit := cfg.Query.DefaultLimit
	if isFlagSet(flags, "limit") {
		recordLimit = *limit
	}

	proc := processor.NewProcessor(fetcher.NewFetcher(cfg, log), log)

	switch cfg.Output.Format {
	case config.FormatTable:
		entries, err := proc.GetEntries(ctx, *start, *end, recordLimit)
		if err != nil {
			return err
		}

		return writeLines(stdout, formatter.FormatEntriesTable(entries, isTerminal(stdout)))
	case config.FormatLines:
		lines, err := proc.GetNearEarthObjects(ctx, *start, *end, recordLimit)
		if err != nil {
			return err
		}

		return writeLines(stdout, lines)
	default:
		lines, err := proc.GetNearEarthObjects(ctx, *start, *end, recordLimit)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(stdout, formatter.JoinInline(lines))

		return err
	}
}

// envLookup layers the process environment over an optional dotenv file.
func envLookup(path string, getenv func(string) string) (func(string) string, error) {
	fileEnv := map[string]string{}

	if path != "" {
		values, err := godotenv.Read(path)

		switch {
		case err == nil:
			fileEnv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}

	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}

		return fileEnv[key]
	}, nil
}

func loadConfig(path string, lookup func(string) string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}

		cfg = loaded
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	return cfg, nil
}

func isFlagSet(flags *flag.FlagSet, name string) bool {
	set := false

	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
