package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type RichLoggerOptions struct {
	Output           io.Writer
	ProgressOutput   io.Writer
	TimeFormat       string
	Level            slog.Level
	AddSource        bool
	EnableJSON       bool
	EnableColors     bool
	CompactJSON      bool
	EnableSeparators bool
}

func DefaultOptions() *RichLoggerOptions {
	return &RichLoggerOptions{
		Level:          slog.LevelInfo,
		EnableColors:   true,
		TimeFormat:     "15:04:05.000",
		Output:         os.Stdout,
		ProgressOutput: os.Stderr,
		CompactJSON:    true,
	}
}

type palette struct {
	time    lipgloss.Style
	source  lipgloss.Style
	message lipgloss.Style
	rule    lipgloss.Style
	levels  map[slog.Level]lipgloss.Style
}

func newPalette(out io.Writer, enabled bool) palette {
	r := lipgloss.NewRenderer(out)
	if !enabled {
		plain := r.NewStyle()
		return palette{
			time: plain, source: plain, message: plain, rule: plain,
			levels: map[slog.Level]lipgloss.Style{},
		}
	}
	return palette{
		time:    r.NewStyle().Foreground(lipgloss.Color("33")),
		source:  r.NewStyle().Foreground(lipgloss.Color("170")),
		message: r.NewStyle().Bold(true),
		rule:    r.NewStyle().Foreground(lipgloss.Color("240")),
		levels: map[slog.Level]lipgloss.Style{
			slog.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("37")).Bold(true),
			slog.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
			slog.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			slog.LevelError: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
	}
}

// RichHandler is a slog.Handler writing one styled line per record, or one
// JSON object per record when EnableJSON is set.
type RichHandler struct {
	opts   *RichLoggerOptions
	styles palette
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewRichHandler(opts *RichLoggerOptions) *RichHandler {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &RichHandler{
		opts:   opts,
		styles: newPalette(opts.Output, opts.EnableColors),
		mu:     &sync.Mutex{},
	}
}

func (h *RichHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

func (h *RichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	for _, a := range attrs {
		// Qualify now: groups opened later do not apply to these attrs.
		h2.attrs = append(h2.attrs, slog.Attr{Key: h.attrKey(a.Key), Value: a.Value})
	}
	return h2
}

func (h *RichHandler) WithGroup(name string) slog.Handler {
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *RichHandler) clone() *RichHandler {
	h2 := &RichHandler{
		opts:   h.opts,
		styles: h.styles,
		mu:     h.mu,
		attrs:  make([]slog.Attr, len(h.attrs)),
		groups: make([]string, len(h.groups)),
	}
	copy(h2.attrs, h.attrs)
	copy(h2.groups, h.groups)
	return h2
}

func (h *RichHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.EnableJSON {
		return h.handleJSON(record)
	}
	return h.handleText(record)
}

func (h *RichHandler) attrKey(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

func (h *RichHandler) handleJSON(record slog.Record) error {
	entry := map[string]any{
		"time":  record.Time.Format(h.opts.TimeFormat),
		"level": record.Level.String(),
		"msg":   record.Message,
	}

	if h.opts.AddSource && record.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := fs.Next()
		entry["source"] = fmt.Sprintf("%s:%d", f.File, f.Line)
	}

	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		entry[h.attrKey(a.Key)] = a.Value.Any()
		return true
	})

	var data []byte
	var err error
	if h.opts.CompactJSON {
		data, err = json.Marshal(entry)
	} else {
		data, err = json.MarshalIndent(entry, "", "  ")
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(h.opts.Output, string(data))
	return err
}

func (h *RichHandler) handleText(record slog.Record) error {
	var b strings.Builder

	b.WriteString(h.styles.time.Render(record.Time.Format(h.opts.TimeFormat)))
	b.WriteString(" ")

	level := fmt.Sprintf("%-5s", strings.ToUpper(record.Level.String()))
	if style, ok := h.styles.levels[record.Level]; ok {
		level = style.Render(level)
	}
	b.WriteString(level)
	b.WriteString(" ")

	if h.opts.AddSource && record.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := fs.Next()
		file := f.File
		if i := strings.LastIndex(file, "/"); i >= 0 {
			file = file[i+1:]
		}
		b.WriteString(h.styles.source.Render(fmt.Sprintf("%s:%d", file, f.Line)))
		b.WriteString(" ")
	}

	b.WriteString(h.styles.message.Render(record.Message))

	writeAttr := func(key string, v slog.Value) {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(v.String())
	}
	for _, a := range h.attrs {
		writeAttr(a.Key, a.Value)
	}
	record.Attrs(func(a slog.Attr) bool {
		writeAttr(h.attrKey(a.Key), a.Value)
		return true
	})

	if h.opts.EnableSeparators {
		b.WriteString("\n")
		b.WriteString(h.styles.rule.Render(strings.Repeat("─", 80)))
	}

	_, err := fmt.Fprintln(h.opts.Output, b.String())
	return err
}

func NewRichLogger(opts *RichLoggerOptions) *slog.Logger {
	return slog.New(NewRichHandler(opts))
}
