package logger

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar counts finished files. A bar without a writer does nothing, so
// callers never need to check whether progress output is enabled.
type ProgressBar struct {
	mu       sync.Mutex
	bar      *progressbar.ProgressBar
	complete bool
}

func NewProgressBar(total int64, label string, w io.Writer) *ProgressBar {
	if w == nil || total <= 0 {
		return &ProgressBar{}
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &ProgressBar{bar: bar}
}

// Increment advances the bar by amount.
func (p *ProgressBar) Increment(amount int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil || p.complete {
		return
	}
	_ = p.bar.Add64(amount)
}

// Clear erases the bar so a log line can be printed in its place. The next
// Increment redraws it.
func (p *ProgressBar) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil || p.complete {
		return
	}
	_ = p.bar.Clear()
}

func (p *ProgressBar) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil || p.complete {
		return
	}
	_ = p.bar.Finish()
	p.complete = true
}
