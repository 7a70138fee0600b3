// Package session holds the API credential for the single active workflow.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrNoCredential is returned when no credential has been acquired.
var ErrNoCredential = errors.New("no API credential has been linked")

// Env variables consulted by EnvSelector, in order.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvAPIKey       = "API_KEY"
)

// Selector obtains a credential from the user or host environment.
type Selector interface {
	Select(ctx context.Context) (string, error)
}

// EnvSelector reads the key from the process environment.
type EnvSelector struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Select returns the first non-empty value of GEMINI_API_KEY or API_KEY.
func (s EnvSelector) Select(_ context.Context) (string, error) {
	lookup := s.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, name := range []string{EnvGeminiAPIKey, EnvAPIKey} {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", fmt.Errorf("%w: set %s or %s", ErrNoCredential, EnvGeminiAPIKey, EnvAPIKey)
}

// StaticSelector always returns the same key.
type StaticSelector string

// Select returns the key.
func (s StaticSelector) Select(_ context.Context) (string, error) {
	return string(s), nil
}

// PromptSelector reads one line from In, writing Prompt to Out first.
type PromptSelector struct {
	In     io.Reader
	Out    io.Writer
	Prompt string
}

// Select reads a key line. An empty line yields an empty key.
func (s PromptSelector) Select(ctx context.Context) (string, error) {
	if s.In == nil {
		return "", fmt.Errorf("prompt selector has no input")
	}
	if s.Out != nil {
		prompt := s.Prompt
		if prompt == "" {
			prompt = "Gemini API key: "
		}
		_, _ = fmt.Fprint(s.Out, prompt)
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(s.In).ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		done <- result{line: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return "", fmt.Errorf("failed to read API key: %w", r.err)
		}
		return r.line, nil
	}
}

// Context is the explicit credential holder passed to the phase clients.
// The zero value holds no credential.
type Context struct {
	mu         sync.RWMutex
	credential string
}

// New returns a Context preloaded with key. An empty key leaves it unlinked.
func New(key string) *Context {
	return &Context{credential: strings.TrimSpace(key)}
}

// Acquire asks selector for a credential and stores it. An empty key clears
// any previous credential and reports ErrNoCredential.
func (c *Context) Acquire(ctx context.Context, selector Selector) error {
	if selector == nil {
		return fmt.Errorf("%w: no selector configured", ErrNoCredential)
	}
	key, err := selector.Select(ctx)
	if err != nil {
		c.Clear()
		return err
	}
	key = strings.TrimSpace(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = key
	if key == "" {
		return ErrNoCredential
	}
	return nil
}

// Credential returns the linked key or ErrNoCredential.
func (c *Context) Credential() (string, error) {
	if c == nil {
		return "", ErrNoCredential
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.credential == "" {
		return "", ErrNoCredential
	}
	return c.credential, nil
}

// Connected reports whether a credential is held.
func (c *Context) Connected() bool {
	_, err := c.Credential()
	return err == nil
}

// Clear drops the credential.
func (c *Context) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.credential = ""
	c.mu.Unlock()
}
