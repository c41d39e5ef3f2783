package report

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

func init() {
	// Stdout carries the report; keep the opener's chatter off it.
	browser.Stdout = os.Stderr
}

// WriteFile saves the report to path.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
	}
	log.Info().Str("path", path).Msg("Report written")
	return nil
}

// CopyToClipboard places the report on the system clipboard.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return goerr.Wrap(err, "failed to copy report to clipboard")
	}
	log.Info().Int("bytes", len(text)).Msg("Report copied to clipboard")
	return nil
}

// OpenFile shows a saved report in the desktop's default viewer.
func OpenFile(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return goerr.Wrap(err, "failed to open report", goerr.V("path", path))
	}
	return nil
}
