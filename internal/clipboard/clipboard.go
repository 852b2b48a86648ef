// Package clipboard copies snippets to the system clipboard without letting a
// failure escape to the caller.
package clipboard

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// IndicatorDuration is how long a "copied" indicator stays up.
const IndicatorDuration = 2 * time.Second

// Copier writes text to a clipboard.
type Copier struct {
	write  func(string) error
	logger *zap.Logger
}

// New returns a Copier backed by the system clipboard.
func New(logger *zap.Logger) *Copier {
	return NewWithWriter(clipboard.WriteAll, logger)
}

// NewWithWriter returns a Copier that hands text to write.
func NewWithWriter(write func(string) error, logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{write: write, logger: logger}
}

// Copy reports whether text reached the clipboard. Errors and panics from the
// writer are logged and turned into false.
func (c *Copier) Copy(text string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("clipboard write panicked", zap.String("panic", fmt.Sprint(r)))
			ok = false
		}
	}()

	if c.write == nil {
		c.logger.Warn("clipboard unavailable")
		return false
	}
	if err := c.write(text); err != nil {
		c.logger.Warn("clipboard write failed", zap.Error(err), zap.Int("bytes", len(text)))
		return false
	}
	return true
}

// CopiedMsg reports the outcome of CopyCmd. Index identifies the snippet.
type CopiedMsg struct {
	Index int
	OK    bool
}

// IndicatorExpiredMsg clears the indicator raised for snippet Index.
type IndicatorExpiredMsg struct {
	Index int
}

// CopyCmd copies text in the background and reports a CopiedMsg.
func (c *Copier) CopyCmd(index int, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Index: index, OK: c.Copy(text)}
	}
}

// ExpireIndicator schedules an IndicatorExpiredMsg for index.
func ExpireIndicator(index int) tea.Cmd {
	return tea.Tick(IndicatorDuration, func(time.Time) tea.Msg {
		return IndicatorExpiredMsg{Index: index}
	})
}
