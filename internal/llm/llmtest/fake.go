// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/resume-tailor/internal/llm"
)

// Reply is one scripted outcome.
type Reply struct {
	Response *llm.Response
	Err      error
}

// Text returns a Reply with a plain text response and no usage metadata.
func Text(text string) Reply {
	return Reply{Response: &llm.Response{Text: text}}
}

// Fail returns a Reply that fails with an *llm.Error of the given kind.
func Fail(kind llm.ErrorKind, message string) Reply {
	return Reply{Err: &llm.Error{Kind: kind, Message: message}}
}

// Fake replays Replies in order. When the script runs out, the last reply is
// repeated, so a single reply makes the fake deterministic.
type Fake struct {
	mu       sync.Mutex
	replies  []Reply
	calls    []llm.Request
	clients  int
	closed   int
	inFlight int
	maxInFl  int

	// Block, when set, is received from before each reply is returned.
	Block chan struct{}
}

// New returns a Fake scripted with replies.
func New(replies ...Reply) *Fake {
	return &Fake{replies: replies}
}

// Factory returns an llm.Factory that hands out this fake.
func (f *Fake) Factory() llm.Factory {
	return func(_ context.Context, apiKey string) (llm.Client, error) {
		if apiKey == "" {
			return nil, &llm.Error{Kind: llm.KindAuth, Message: "API key is required"}
		}
		f.mu.Lock()
		f.clients++
		f.mu.Unlock()
		return f, nil
	}
}

// Generate records req and returns the next scripted reply.
func (f *Fake) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	idx := len(f.calls)
	f.calls = append(f.calls, req)
	f.inFlight++
	if f.inFlight > f.maxInFl {
		f.maxInFl = f.inFlight
	}
	block := f.Block
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, &llm.Error{Kind: llm.KindTimeout, Message: "fake call interrupted", Cause: ctx.Err()}
		}
	}

	if len(f.replies) == 0 {
		return nil, fmt.Errorf("llmtest: no scripted reply for call %d", idx)
	}
	reply := f.replies[min(idx, len(f.replies)-1)]
	return reply.Response, reply.Err
}

// Close counts Close calls.
func (f *Fake) Close() error {
	f.mu.Lock()
	f.closed++
	f.mu.Unlock()
	return nil
}

// Calls returns a copy of every recorded request in call order.
func (f *Fake) Calls() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.calls...)
}

// CallCount returns the number of Generate calls.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// ClientsCreated returns how many clients the factory handed out.
func (f *Fake) ClientsCreated() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clients
}

// ClosedCount returns how many times Close was called.
func (f *Fake) ClosedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// MaxConcurrent returns the highest number of overlapping Generate calls seen.
func (f *Fake) MaxConcurrent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFl
}
