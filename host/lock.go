package host

import (
	"sync"
	"sync/atomic"
)

// Lock is a non-reentrant exclusive section guarding a host object model.
// The zero value is ready to use.
type Lock struct {
	mu sync.Mutex
}

// Acquire blocks until the section is free and returns a token for it.
func (l *Lock) Acquire() *Token {
	l.mu.Lock()
	return &Token{lock: l}
}

// With runs fn inside the section. The section is released when fn returns,
// including when it panics.
func (l *Lock) With(fn func(tok *Token) error) error {
	tok := l.Acquire()
	defer tok.Release()
	return fn(tok)
}

// Token proves that its holder is inside a Lock's section.
type Token struct {
	lock     *Lock
	released atomic.Bool
}

// Release leaves the section. Releasing more than once is a no-op.
func (t *Token) Release() {
	if t == nil || t.lock == nil {
		return
	}
	if t.released.CompareAndSwap(false, true) {
		t.lock.mu.Unlock()
	}
}

// Holds reports whether t is an unreleased token for l.
func (t *Token) Holds(l *Lock) bool {
	return t != nil && t.lock == l && !t.released.Load()
}
