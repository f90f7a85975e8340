package ui

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// NewProgress returns a file counter bar on stdout. The bar is silent when disabled
// or when stdout is not a terminal, so piped output stays clean.
func NewProgress(total int, description string, enabled bool) *progressbar.ProgressBar {
	if !enabled || !isTerminal(os.Stdout) {
		return progressbar.DefaultSilent(int64(total), description)
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
