package challenge

import (
	"sort"
	"sync"
)

var (
	registry map[string]Impl = map[string]Impl{}
	regLock  sync.RWMutex
)

func Register(name string, impl Impl) {
	regLock.Lock()
	defer regLock.Unlock()

	registry[name] = impl
}

func Get(name string) (Impl, bool) {
	regLock.RLock()
	defer regLock.RUnlock()
	result, ok := registry[name]
	return result, ok
}

func Methods() []string {
	regLock.RLock()
	defer regLock.RUnlock()
	var result []string
	for method := range registry {
		result = append(result, method)
	}
	sort.Strings(result)
	return result
}

type Impl interface {
	// Check validates a candidate nonce against a challenge secret. It
	// returns nil when the nonce solves the challenge, ErrInvalidFormat
	// when the nonce is not a well-formed non-negative integer literal,
	// and ErrFailed when the solution hash misses the difficulty target.
	Check(secret, nonce string, difficulty int) error
}
