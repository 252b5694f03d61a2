// co2calc estimates the CO2 emitted by a trip and compares transport modes.
//
// Usage:
//
//	co2calc estimate --origin "São Paulo, SP" --destination "Rio de Janeiro, RJ" --mode bus
//	co2calc compare --distance 430
//	co2calc cities
//	co2calc route --origin "Curitiba, PR" --destination "Florianópolis, SC"
//	co2calc batch --file trips.json
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/dimithria/Calculadora-CO2/internal/calculator"
	"github.com/dimithria/Calculadora-CO2/internal/carbon"
)

const appName = "co2calc"

var version = "dev"

func main() {
	if err := loadDotEnv(envFile()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func envFile() string {
	if path, ok := os.LookupEnv("CO2CALC_ENV_FILE"); ok {
		return path
	}
	return ".env"
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      appName,
		Usage:     "Estimate trip CO2 emissions and the carbon credits to offset them",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"CO2CALC_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "console",
				Usage:   "Log format (console, json)",
				EnvVars: []string{"CO2CALC_LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "factors-file",
				Usage:   "YAML file replacing the built-in emission factors",
				EnvVars: []string{"CO2CALC_FACTORS_FILE"},
			},
			&cli.StringFlag{
				Name:    "routes-file",
				Usage:   "YAML file replacing the built-in route distances",
				EnvVars: []string{"CO2CALC_ROUTES_FILE"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   outputTable,
				Usage:   "Output format (table, json)",
				EnvVars: []string{"CO2CALC_OUTPUT"},
			},
		},
		Commands: []*cli.Command{
			estimateCommand(),
			compareCommand(),
			citiesCommand(),
			routeCommand(),
			batchCommand(),
		},
	}
}

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate the emission, savings and credits of one trip",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "origin", Usage: "Origin city", Required: true},
			&cli.StringFlag{Name: "destination", Usage: "Destination city", Required: true},
			&cli.Float64Flag{Name: "distance", Aliases: []string{"d"}, Usage: "Distance in km; looked up from the route table when omitted"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: string(carbon.ModeCar), Usage: "Transport mode"},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			mode, err := e.calc.Table().ParseMode(c.String("mode"))
			if err != nil {
				return err
			}

			report, err := e.service.Calculate(c.Context, calculator.Request{
				Origin:      c.String("origin"),
				Destination: c.String("destination"),
				DistanceKm:  c.Float64("distance"),
				Mode:        mode,
			})
			if err != nil {
				return err
			}

			if e.cfg.Output == outputJSON {
				return writeJSON(c.App.Writer, report)
			}
			return renderReport(c.App.Writer, e.calc.Table(), e.engine.Pricing, report)
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Rank every transport mode for a distance",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "distance", Aliases: []string{"d"}, Usage: "Distance in km", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			entries, err := e.calc.CalculateAllModes(c.Float64("distance"))
			if err != nil {
				return err
			}

			if e.cfg.Output == outputJSON {
				return writeJSON(c.App.Writer, entries)
			}
			return renderComparison(c.App.Writer, e.calc.Table(), entries, "")
		},
	}
}

func citiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "cities",
		Usage: "List the cities known to the route table",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			cities := e.routes.Cities()

			if e.cfg.Output == outputJSON {
				return writeJSON(c.App.Writer, cities)
			}
			for _, city := range cities {
				fmt.Fprintln(c.App.Writer, city)
			}
			return nil
		},
	}
}

func routeCommand() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Look up the distance between two cities",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "origin", Usage: "Origin city", Required: true},
			&cli.StringFlag{Name: "destination", Usage: "Destination city", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			origin, destination := c.String("origin"), c.String("destination")
			distance, ok := e.routes.FindDistance(origin, destination)
			if !ok {
				return fmt.Errorf("%s → %s: %w", origin, destination, calculator.ErrRouteNotFound)
			}

			if e.cfg.Output == outputJSON {
				return writeJSON(c.App.Writer, struct {
					Origin      string  `json:"origin"`
					Destination string  `json:"destination"`
					DistanceKm  float64 `json:"distance_km"`
				}{origin, destination, distance})
			}
			fmt.Fprintf(c.App.Writer, "%s → %s: %s km\n", origin, destination, formatNumber(distance, 0))
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Estimate every trip of a JSON array",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "JSON file with an array of trips, - for stdin", Required: true},
			&cli.IntFlag{Name: "concurrency", Value: calculator.DefaultBatchConcurrency, Usage: "Trips calculated at once"},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			reqs, err := readRequests(c.String("file"), c.App.Reader)
			if err != nil {
				return err
			}
			e.logger.Debug().Str("file", c.String("file")).Int("trips", len(reqs)).Msg("loaded trips")

			results, err := e.service.WithConcurrency(c.Int("concurrency")).CalculateBatch(c.Context, normalizeModes(e.calc.Table(), reqs))
			if err != nil {
				return err
			}
			if err := renderBatch(c.App.Writer, results, e.cfg.Output); err != nil {
				return err
			}

			if n := failedCount(results); n > 0 {
				return fmt.Errorf("%d of %d trips failed", n, len(results))
			}
			return nil
		},
	}
}

func readRequests(path string, stdin io.Reader) ([]calculator.Request, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trips: %w", err)
	}

	var reqs []calculator.Request
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("failed to parse trips: %w", err)
	}
	return reqs, nil
}

func failedCount(results []calculator.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// normalizeModes canonicalizes each mode name. Names the table does not know
// are passed through so the calculation reports them.
func normalizeModes(table *carbon.FactorTable, reqs []calculator.Request) []calculator.Request {
	for i := range reqs {
		if mode, err := table.ParseMode(string(reqs[i].Mode)); err == nil {
			reqs[i].Mode = mode
		}
	}
	return reqs
}
