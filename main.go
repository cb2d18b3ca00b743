// Package main provides the linkscout CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/scoutlab/linkscout/crawler"
	"github.com/scoutlab/linkscout/report"
	"github.com/scoutlab/linkscout/tui"
)

var cli struct {
	URL         string `arg:"" help:"Seed URL to crawl (scheme optional, https assumed)."`
	Config      string `help:"Path to a YAML config file." type:"existingfile" optional:""`
	Retries     int    `help:"Attempts per request before giving up." default:"3"`
	Timeout     int    `help:"Per-attempt timeout in seconds." default:"10"`
	Concurrency int    `help:"Maximum concurrent requests." default:"5"`
	Output      string `help:"Path for the JSON report." default:"link_report.json"`
	HTMLOutput  string `help:"Path for the HTML report." default:"link_report.html"`
	CSVOutput   string `help:"Optional path for a CSV export." optional:""`
	Plain       bool   `help:"Disable the interactive progress display and log instead."`
	LogLevel    string `help:"Log level in plain mode." default:"info" enum:"debug,info,warn,error"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("linkscout"),
		kong.Description("Crawl a website and report broken, inactive, and erroring links."),
	)

	cfg := crawler.DefaultConfig(cli.URL)
	cfg.MaxRetries = cli.Retries
	cfg.TimeoutSeconds = cli.Timeout
	cfg.MaxConcurrent = cli.Concurrency
	if cli.Config != "" {
		var err error
		cfg, err = crawler.LoadConfig(cli.Config, cfg)
		kctx.FatalIfErrorf(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rep *report.Report
	if cli.Plain {
		engine, err := crawler.New(cfg, newLogger(cli.LogLevel), nil)
		kctx.FatalIfErrorf(err)
		rep, err = engine.Run(ctx)
		kctx.FatalIfErrorf(err)
	} else {
		progressCh := make(chan crawler.Event, 100)
		engine, err := crawler.New(cfg, zerolog.Nop(), progressCh)
		kctx.FatalIfErrorf(err)

		finalModel, err := tea.NewProgram(tui.NewModel(ctx, cancel, engine, progressCh)).Run()
		kctx.FatalIfErrorf(err)

		model := finalModel.(tui.Model)
		kctx.FatalIfErrorf(model.GetError())
		rep = model.GetReport()
	}
	if rep == nil {
		// Interrupted before the engine produced anything.
		return
	}

	// Persisting the report is the one fatal failure of a run.
	kctx.FatalIfErrorf(report.SaveJSON(cli.Output, rep))
	kctx.FatalIfErrorf(report.SaveHTML(cli.HTMLOutput, rep))
	if cli.CSVOutput != "" {
		kctx.FatalIfErrorf(saveCSV(cli.CSVOutput, rep))
	}

	report.PrintSummary(os.Stdout, rep)
	fmt.Printf("\nReport saved to %s\n", cli.Output)

	if rep.Summary.BrokenLinks > 0 || rep.Summary.InactiveLinks > 0 {
		os.Exit(1)
	}
}

func saveCSV(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return report.WriteCSV(f, rep)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
