package report

import (
	"os"

	"github.com/cbroglie/mustache"
	"github.com/m-mizutani/goerr/v2"
)

// LoadTemplate reads a mustache template from path.
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read template", goerr.V("path", path))
	}
	return string(data), nil
}

// Render expands a mustache template against the report context.
func Render(template string, data Data) (string, error) {
	out, err := mustache.Render(template, data.Context())
	if err != nil {
		return "", goerr.Wrap(err, "failed to render template")
	}
	return out, nil
}
