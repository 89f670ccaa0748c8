package balancer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var ErrNoEndpoints = errors.New("no backend endpoints configured")

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EndpointEntry struct {
	Generator Generator
	Endpoint  string
}

// EndpointPool spreads attempts over several backends in round-robin order.
type EndpointPool struct {
	entries []EndpointEntry
	index   uint64
	mu      sync.RWMutex
}

func NewEndpointPool() *EndpointPool {
	return &EndpointPool{
		entries: make([]EndpointEntry, 0),
	}
}

func (p *EndpointPool) Add(generator Generator, endpoint string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, EndpointEntry{
		Generator: generator,
		Endpoint:  endpoint,
	})
}

func (p *EndpointPool) Next() (Generator, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.entries) == 0 {
		return nil, ""
	}
	idx := atomic.AddUint64(&p.index, 1) - 1
	entry := p.entries[idx%uint64(len(p.entries))]
	return entry.Generator, entry.Endpoint
}

func (p *EndpointPool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Generate sends the prompt to the next endpoint. It never fails over to
// another endpoint: one user action is one attempt.
func (p *EndpointPool) Generate(ctx context.Context, prompt string) (string, error) {
	generator, _ := p.Next()
	if generator == nil {
		return "", ErrNoEndpoints
	}
	return generator.Generate(ctx, prompt)
}
