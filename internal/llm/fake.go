package llm

import (
	"context"
	"sync"
)

// FakeClient is a scripted client for tests. Each Complete call pops the next
// response; once the script is exhausted the last entry repeats. A non-nil Err
// takes precedence over responses.
type FakeClient struct {
	ClientName string
	Responses  []string
	Err        error

	mu    sync.Mutex
	calls int
}

func (f *FakeClient) Name() string {
	if f.ClientName == "" {
		return "fake"
	}
	return f.ClientName
}

func (f *FakeClient) Complete(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", ErrEmptyCompletion
	}
	i := f.calls - 1
	if i >= len(f.Responses) {
		i = len(f.Responses) - 1
	}
	return f.Responses[i], nil
}

// Calls reports how many times Complete ran.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
