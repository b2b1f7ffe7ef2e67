package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"webpconv/logger"
)

func plainConsole(buf *bytes.Buffer, jsonLogs bool) *logger.Console {
	opts := logger.DefaultOptions()
	opts.Output = buf
	opts.ProgressOutput = nil
	opts.EnableColors = false
	opts.EnableJSON = jsonLogs
	return logger.NewConsole(opts)
}

func TestConsoleReporter_Lines(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "good.png"), gradient(8, 8))
	writeCorruptJPEG(t, filepath.Join(in, "bad.jpg"))

	var buf bytes.Buffer
	cfg := DefaultConfig()
	p, err := NewProcessor(cfg, NewConsoleReporter(plainConsole(&buf, false), cfg))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(context.Background(), in, t.TempDir()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Found 2 image(s) to convert",
		"Quality:       80%",
		"✓ Converted: good.png -> good.webp",
		"✗ Failed to convert bad.jpg:",
		"Conversion complete!",
		"Total files",
		"Successfully converted",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output contains ANSI escapes with colors disabled")
	}
}

func TestConsoleReporter_NothingToDo(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	p, err := NewProcessor(cfg, NewConsoleReporter(plainConsole(&buf, false), cfg))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(context.Background(), t.TempDir(), ""); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No supported image files found") {
		t.Errorf("missing nothing-to-do warning:\n%s", out)
	}
	if strings.Contains(out, "Total files") {
		t.Errorf("empty run should not print a summary table:\n%s", out)
	}
}

func TestConsoleReporter_Interrupted(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(plainConsole(&buf, false), DefaultConfig())

	s := &Summary{InputFolder: "/in", OutputDir: "/out", Total: 3}
	r.Begin(s)
	res := Result{InputPath: "/in/a.png", OutputPath: "/out/a.webp"}
	s.add(res)
	r.FileDone(res)
	s.Interrupted = true
	r.End(s)

	out := buf.String()
	for _, want := range []string{"cancelled by user after 1 of 3", "Not processed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(plainConsole(&buf, true), DefaultConfig())

	s := &Summary{InputFolder: "/in", OutputDir: "/out", Total: 1}
	r.Begin(s)
	res := Result{InputPath: "/in/a.png", OutputPath: "/out/a.webp"}
	s.add(res)
	r.Overwrote(res, "/in/a.jpg")
	r.FileDone(res)
	r.End(s)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 5 {
		t.Fatalf("got %d lines, want a record per event:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line is not JSON: %q: %v", line, err)
		}
		if _, ok := entry["msg"]; !ok {
			t.Errorf("record without msg: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "a.png overwrote the output of a.jpg") {
		t.Errorf("missing overwrite warning:\n%s", buf.String())
	}
}
