package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/uvensys/cerberus/lib/store"
)

type factory struct{}

func (factory) Build(ctx context.Context, _ json.RawMessage) (store.Interface, error) {
	return New(ctx), nil
}

func (factory) Valid(json.RawMessage) error { return nil }

func init() {
	store.Register("memory", factory{})
}

type entry struct {
	value     []byte
	expiresAt time.Time // zero means the entry never expires
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

type impl struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func (i *impl) Delete(_ context.Context, key string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.entries[key]; !ok {
		return fmt.Errorf("%w: %q", store.ErrNotFound, key)
	}

	delete(i.entries, key)
	return nil
}

func (i *impl) Get(_ context.Context, key string) ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	result, ok := i.entries[key]
	if !ok || result.expired(time.Now()) {
		return nil, fmt.Errorf("%w: %q", store.ErrNotFound, key)
	}

	return result.value, nil
}

func (i *impl) Set(_ context.Context, key string, value []byte, expiry time.Duration) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	e := entry{value: value}
	if expiry > 0 {
		e.expiresAt = time.Now().Add(expiry)
	}

	i.entries[key] = e
	return nil
}

func (i *impl) cleanup() {
	now := time.Now()

	i.mu.Lock()
	defer i.mu.Unlock()

	for key, e := range i.entries {
		if e.expired(now) {
			delete(i.entries, key)
		}
	}
}

func (i *impl) cleanupThread(ctx context.Context) {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			i.cleanup()
		}
	}
}

// New creates a simple in-memory store. This will not survive a process
// restart and will not scale to multiple Cerberus instances.
func New(ctx context.Context) store.Interface {
	result := &impl{
		entries: map[string]entry{},
	}

	go result.cleanupThread(ctx)

	return result
}
