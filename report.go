package main

import (
	"fmt"
	"path/filepath"

	"webpconv/logger"
)

// Reporter receives progress notifications from a run. FileDone is called
// once per processed input; calls are serialized by the Processor.
type Reporter interface {
	Begin(summary *Summary)
	FileDone(r Result)
	// Overwrote is called before FileDone when r's output replaced the output
	// written earlier in the same run for previousInput.
	Overwrote(r Result, previousInput string)
	End(summary *Summary)
}

type nopReporter struct{}

func (nopReporter) Begin(*Summary) {}

func (nopReporter) FileDone(Result) {}

func (nopReporter) Overwrote(Result, string) {}

func (nopReporter) End(*Summary) {}

// ConsoleReporter prints one line per file and a summary table.
type ConsoleReporter struct {
	Console *logger.Console
	Quality int
	Format  string

	bar   *logger.ProgressBar
	timer *logger.Timer
}

func NewConsoleReporter(console *logger.Console, cfg *Config) *ConsoleReporter {
	return &ConsoleReporter{
		Console: console,
		Quality: cfg.Quality,
		Format:  cfg.Format,
	}
}

func (r *ConsoleReporter) Begin(s *Summary) {
	if s.NothingToDo {
		r.Console.Warn("No supported image files found in: %s", s.InputFolder)
		return
	}

	r.Console.Box("webpconv", fmt.Sprintf(
		"Input folder:  %s\nOutput folder: %s\nFormat:        %s\nQuality:       %d%%",
		s.InputFolder, s.OutputDir, r.Format, r.Quality))
	r.Console.Info("Found %d image(s) to convert...", s.Total)

	r.timer = r.Console.StartTimer("Conversion")
	r.bar = r.Console.NewProgressBar(int64(s.Total), "Converting images")
}

func (r *ConsoleReporter) Overwrote(res Result, previousInput string) {
	r.bar.Clear()
	r.Console.Warn("%s overwrote the output of %s",
		filepath.Base(res.InputPath), filepath.Base(previousInput))
}

func (r *ConsoleReporter) FileDone(res Result) {
	r.bar.Clear()
	if res.Succeeded() {
		r.Console.Success("Converted: %s -> %s",
			filepath.Base(res.InputPath), filepath.Base(res.OutputPath))
	} else {
		r.Console.Error("Failed to convert %s: %s", filepath.Base(res.InputPath), res.ErrorMessage())
	}
	r.bar.Increment(1)
}

func (r *ConsoleReporter) End(s *Summary) {
	if s.NothingToDo {
		return
	}

	r.bar.Complete()
	if r.timer != nil {
		r.timer.End()
	}

	if s.Interrupted {
		r.Console.Warn("Conversion cancelled by user after %d of %d file(s)", s.Processed(), s.Total)
	}

	table := r.Console.NewTable([]string{"Metric", "Value"})
	table.AddRow("Total files", fmt.Sprintf("%d", s.Total))
	table.AddRow("Successfully converted", fmt.Sprintf("%d", s.Succeeded))
	table.AddRow("Failed", fmt.Sprintf("%d", s.Failed))
	if s.Interrupted {
		table.AddRow("Not processed", fmt.Sprintf("%d", s.Total-s.Processed()))
	}
	table.AddRow("Original size", fmt.Sprintf("%.2f MB", float64(s.TotalOriginalSize)/1024/1024))
	table.AddRow("Compressed size", fmt.Sprintf("%.2f MB", float64(s.TotalCompressedSize)/1024/1024))
	table.AddRow("Compression ratio", fmt.Sprintf("%.1f%%", s.CompressionRatio()))
	if s.SpaceSaved() > 0 {
		table.AddRow("Space saved", fmt.Sprintf("%.2f MB", float64(s.SpaceSaved())/1024/1024))
	}

	r.Console.Info("Conversion complete!")
	r.Console.PrintTable(table)
}
