package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/dimithria/Calculadora-CO2/internal/calculator"
	"github.com/dimithria/Calculadora-CO2/internal/carbon"
	"github.com/dimithria/Calculadora-CO2/internal/routes"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// Config holds settings resolved from flags, environment and .env.
type Config struct {
	LogLevel    zerolog.Level
	LogFormat   string
	FactorsFile string
	RoutesFile  string
	Output      string
}

// loadDotEnv loads path into the process environment. A missing file is
// not an error; variables already set are not overridden.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// parseConfig reads the global flags of c.
func parseConfig(c *cli.Context) (Config, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.String("log-level")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
	}

	cfg := Config{
		LogLevel:    level,
		LogFormat:   strings.ToLower(c.String("log-format")),
		FactorsFile: c.String("factors-file"),
		RoutesFile:  c.String("routes-file"),
		Output:      strings.ToLower(c.String("output")),
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("invalid log format %q, want console or json", cfg.LogFormat)
	}
	switch cfg.Output {
	case outputTable, outputJSON:
	default:
		return Config{}, fmt.Errorf("invalid output %q, want %s or %s", cfg.Output, outputTable, outputJSON)
	}
	return cfg, nil
}

// newLogger builds the process logger on w.
func newLogger(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(cfg.LogLevel).With().Timestamp().Str("service", appName).Logger()
}

// env is everything a command needs, built once per invocation.
type env struct {
	cfg     Config
	logger  zerolog.Logger
	engine  carbon.Config
	calc    *carbon.Calculator
	routes  *routes.Table
	service *calculator.Service
}

func newEnv(c *cli.Context) (*env, error) {
	cfg, err := parseConfig(c)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, c.App.ErrWriter)
	carbon.SetLogger(logger)

	engine := carbon.DefaultConfig()
	if cfg.FactorsFile != "" {
		engine, err = loadFile(cfg.FactorsFile, carbon.LoadConfig)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.FactorsFile).Msg("using custom emission factors")
	}

	var table *routes.Table
	if cfg.RoutesFile != "" {
		table, err = loadFile(cfg.RoutesFile, func(r io.Reader) (*routes.Table, error) {
			return routes.Load(r, logger)
		})
	} else {
		table, err = routes.NewTable(logger)
	}
	if err != nil {
		return nil, err
	}

	calc := carbon.NewCalculator(engine.Table)
	return &env{
		cfg:     cfg,
		logger:  logger,
		engine:  engine,
		calc:    calc,
		routes:  table,
		service: calculator.NewService(calc, engine.Pricing, table, logger),
	}, nil
}

func loadFile[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	v, err := load(f)
	if err != nil {
		return zero, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return v, nil
}
