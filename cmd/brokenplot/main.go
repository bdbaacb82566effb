// Command brokenplot renders a chart with broken axes from a chart
// description file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vdobler/brokenaxes"
	"github.com/vdobler/brokenaxes/internal/config"
)

// options holds the parsed command line.
type options struct {
	config  string
	output  string
	verbose bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.config, "config", "", "chart description, yaml, toml or json (required)")
	flag.StringVar(&opts.output, "o", "", "output file, overrides the chart's output")
	flag.BoolVar(&opts.verbose, "v", false, "log layout decisions")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: brokenplot -config chart.yaml [-o out.png] [-v]\n\n")
		fmt.Fprintf(os.Stderr, "Brokenplot draws a plot with gaps in its x and/or y axis.\n")
		fmt.Fprintf(os.Stderr, "The output format follows the file extension: png, jpg, tif,\n")
		fmt.Fprintf(os.Stderr, "svg, pdf or eps.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if opts.config == "" {
		fmt.Fprintln(os.Stderr, "error: -config is required")
		flag.Usage()
		os.Exit(2)
	}
	return opts
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(opts options, log *slog.Logger) error {
	chart, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.output != "" {
		chart.Output = opts.output
	}

	b, err := build(chart, opts.config)
	if err != nil {
		return err
	}
	if err := save(b, chart); err != nil {
		return err
	}
	log.Info("chart written", "output", chart.Output,
		"rows", b.Rows(), "cols", b.Cols(), "series", len(chart.Series))
	return nil
}

func main() {
	opts := parseFlags()
	log := newLogger(opts.verbose)
	brokenaxes.SetLogger(log)
	if err := run(opts, log); err != nil {
		fmt.Fprintf(os.Stderr, "brokenplot: %v\n", err)
		os.Exit(1)
	}
}
