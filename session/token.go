package session

import (
	"context"
	"sync"
)

// TokenSource yields the bearer token for outgoing API requests. An empty
// token with a nil error means "no credentials"; requests are still sent,
// just without the Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Memory holds the in-process session token. It is the first source
// consulted; after a restart it is empty until the next sign-in.
type Memory struct {
	mu    sync.RWMutex
	token string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

func (m *Memory) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

func (m *Memory) Clear() {
	m.Set("")
}

// Static always returns the same token. Used when the token is supplied via
// configuration.
type Static string

func (s Static) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// Chain consults sources in order and returns the first non-empty token.
// Errors stop the chain; exhausting it yields "" and no error.
func Chain(sources ...TokenSource) TokenSource {
	return chain(sources)
}

type chain []TokenSource

func (c chain) Token(ctx context.Context) (string, error) {
	for _, src := range c {
		token, err := src.Token(ctx)
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}
	return "", nil
}
