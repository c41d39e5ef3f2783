// Package credentials resolves API tokens from the environment or a local
// password store.
package credentials

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog/log"
)

// TokenEnvVar overrides the password store when set.
const TokenEnvVar = "PAGERDUTY_API_TOKEN"

// ErrNoToken is returned when no store yields a token.
var ErrNoToken = goerr.New("no API token found")

// Store looks up a secret by name.
type Store interface {
	Lookup(name string) (string, error)
}

// EnvStore reads a token from an environment variable, ignoring the name.
type EnvStore struct {
	Variable string
}

func (s EnvStore) Lookup(name string) (string, error) {
	return strings.TrimSpace(os.Getenv(s.Variable)), nil
}

// PassStore reads a token with passwordstore.org's `pass` command.
type PassStore struct {
	Command string
	Timeout time.Duration
}

func (s PassStore) Lookup(name string) (string, error) {
	command := s.Command
	if command == "" {
		command = "pass"
	}
	timeout := s.Timeout
	if timeout == 0 {
		// gpg may prompt for a passphrase
		timeout = 2 * time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, command, name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", goerr.Wrap(err, "password store lookup failed",
			goerr.V("command", command), goerr.V("name", name))
	}

	// pass prints the secret on the first line; anything after is metadata.
	token, _, _ := strings.Cut(stdout.String(), "\n")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", goerr.New("password store returned an empty secret", goerr.V("name", name))
	}
	return token, nil
}

// Chain tries each store in order and returns the first non-empty token.
type Chain []Store

func (c Chain) Lookup(name string) (string, error) {
	for _, store := range c {
		token, err := store.Lookup(name)
		if err != nil {
			return "", err
		}
		if token != "" {
			log.Debug().Str("name", name).Msgf("Resolved API token via %T", store)
			return token, nil
		}
	}
	return "", goerr.Wrap(ErrNoToken, "token lookup exhausted all stores", goerr.V("name", name))
}

// Default checks PAGERDUTY_API_TOKEN before falling back to `pass`.
func Default() Store {
	return Chain{
		EnvStore{Variable: TokenEnvVar},
		PassStore{},
	}
}
