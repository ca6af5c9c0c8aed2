package inventory

import (
	"context"
	"sort"
	"sync"
)

// KeyLocker serializes work on named keys. Lock blocks until every key is
// held or ctx is done, and returns a function that releases them all.
// Implementations must acquire keys in sorted order.
type KeyLocker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

// LocalKeyLocker is an in-process keyed mutex. Entries are dropped once no
// goroutine holds or waits for a key.
type LocalKeyLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewLocalKeyLocker creates a new LocalKeyLocker
func NewLocalKeyLocker() *LocalKeyLocker {
	return &LocalKeyLocker{locks: make(map[string]*keyLock)}
}

// Lock acquires all keys in sorted order
func (l *LocalKeyLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := SortLockKeys(keys)
	held := make([]string, 0, len(sorted))
	for _, k := range sorted {
		if err := l.acquire(ctx, k); err != nil {
			l.releaseAll(held)
			return nil, err
		}
		held = append(held, k)
	}
	var once sync.Once
	return func() {
		once.Do(func() { l.releaseAll(held) })
	}, nil
}

// Held returns the number of keys currently tracked
func (l *LocalKeyLocker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *LocalKeyLocker) acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.drop(key, kl)
		return ctx.Err()
	}
}

func (l *LocalKeyLocker) releaseAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.mu.Lock()
		kl := l.locks[keys[i]]
		l.mu.Unlock()
		if kl == nil {
			continue
		}
		<-kl.ch
		l.drop(keys[i], kl)
	}
}

func (l *LocalKeyLocker) drop(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

// SortLockKeys returns the keys sorted with duplicates removed
func SortLockKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var _ KeyLocker = (*LocalKeyLocker)(nil)
