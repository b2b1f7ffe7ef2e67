package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Console is the user-facing output of the converter: leveled log lines,
// boxes and tables on Out, and the progress bar on the progress writer.
type Console struct {
	Logger    *slog.Logger
	Out       io.Writer
	Colorized bool

	json     bool
	progress io.Writer
	success  lipgloss.Style
	info     lipgloss.Style
	warn     lipgloss.Style
	errStyle lipgloss.Style
	border   lipgloss.Style
}

func NewConsole(opts *RichLoggerOptions) *Console {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := lipgloss.NewRenderer(opts.Output)
	c := &Console{
		Logger:    NewRichLogger(opts),
		Out:       opts.Output,
		Colorized: opts.EnableColors && !opts.EnableJSON,
		json:      opts.EnableJSON,
		success:   r.NewStyle(),
		info:      r.NewStyle(),
		warn:      r.NewStyle(),
		errStyle:  r.NewStyle(),
		border:    r.NewStyle(),
	}
	if !opts.EnableJSON {
		c.progress = opts.ProgressOutput
	}
	if c.Colorized {
		c.success = r.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
		c.info = r.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
		c.warn = r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
		c.errStyle = r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		c.border = r.NewStyle().Foreground(lipgloss.Color("86"))
	}
	return c
}

func (c *Console) StartTimer(name string) *Timer {
	return &Timer{
		Name:      name,
		StartTime: time.Now(),
		Console:   c,
	}
}

func (c *Console) Success(format string, args ...any) {
	c.Logger.Info(c.success.Render("✓ " + fmt.Sprintf(format, args...)))
}

func (c *Console) Info(format string, args ...any) {
	c.Logger.Info(c.info.Render("ℹ " + fmt.Sprintf(format, args...)))
}

func (c *Console) Log(format string, args ...any) {
	c.Logger.Info(fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...any) {
	c.Logger.Warn(c.warn.Render("⚠ " + fmt.Sprintf(format, args...)))
}

func (c *Console) Error(format string, args ...any) {
	c.Logger.Error(c.errStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}

// NewProgressBar returns a bar drawn on the progress writer, or an inert bar
// when the console has none (JSON logging, tests).
func (c *Console) NewProgressBar(total int64, label string) *ProgressBar {
	return NewProgressBar(total, label, c.progress)
}

func (c *Console) NewTable(headers []string) *Table {
	return NewTable(headers, c.Out)
}

// Box prints content framed under a title. In JSON mode every line is logged
// as a separate record instead.
func (c *Console) Box(title string, content string) {
	lines := strings.Split(content, "\n")
	if c.json {
		for _, line := range lines {
			c.Log("%s: %s", title, line)
		}
		return
	}

	maxWidth := len(title)
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	maxWidth += 4

	var b strings.Builder
	b.WriteString(c.border.Render("┌─" + title + strings.Repeat("─", maxWidth+1-len(title)) + "┐"))
	b.WriteString("\n")
	for _, line := range lines {
		pad := strings.Repeat(" ", maxWidth-lipgloss.Width(line))
		b.WriteString(c.border.Render("│") + " " + line + pad + " " + c.border.Render("│"))
		b.WriteString("\n")
	}
	b.WriteString(c.border.Render("└" + strings.Repeat("─", maxWidth+2) + "┘"))
	fmt.Fprintln(c.Out, b.String())
}

// PrintTable draws t on Out, or logs one record per row in JSON mode.
func (c *Console) PrintTable(t *Table) {
	if !c.json {
		t.Print()
		return
	}
	for _, row := range t.rows {
		args := make([]any, 0, 2*len(row))
		for i := 1; i < len(row); i++ {
			args = append(args, strings.ToLower(t.headers[i]), row[i])
		}
		c.Logger.Info(row[0], args...)
	}
}
