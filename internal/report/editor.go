package report

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog/log"
)

const defaultEditor = "vi"

// EditorCommand returns $EDITOR, falling back to vi.
func EditorCommand() string {
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	return defaultEditor
}

// RunEditor opens path in editor with the terminal attached and waits for it
// to exit. editor may carry arguments, e.g. "code --wait".
func RunEditor(editor, path string) error {
	args := strings.Fields(editor)
	if len(args) == 0 {
		return goerr.New("no editor configured")
	}

	c := exec.Command(args[0], append(args[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	log.Debug().Str("editor", editor).Str("path", path).Msg("Launching editor")
	if err := c.Run(); err != nil {
		return goerr.Wrap(err, "editor exited with an error", goerr.V("editor", editor))
	}
	return nil
}

// Edit hands text to editor through a temporary report.md and returns the
// edited contents. The temporary directory is always removed.
func Edit(text, editor string) (string, error) {
	dir, err := os.MkdirTemp("", "oncall-report-")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "report.md")
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		return "", goerr.Wrap(err, "failed to write temporary report", goerr.V("path", path))
	}

	if err := RunEditor(editor, path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read edited report", goerr.V("path", path))
	}
	return string(edited), nil
}
