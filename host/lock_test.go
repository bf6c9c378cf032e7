package host

import (
	"errors"
	"sync"
	"testing"
)

func TestLock_AcquireRelease(t *testing.T) {
	var l Lock

	tok := l.Acquire()
	if !tok.Holds(&l) {
		t.Fatal("fresh token should hold the lock")
	}

	tok.Release()
	if tok.Holds(&l) {
		t.Error("released token should not hold the lock")
	}

	// double release must not unlock twice
	tok.Release()

	tok2 := l.Acquire()
	defer tok2.Release()
	if !tok2.Holds(&l) {
		t.Error("lock should be acquirable after release")
	}
}

func TestToken_HoldsOtherLock(t *testing.T) {
	var a, b Lock
	tok := a.Acquire()
	defer tok.Release()

	if tok.Holds(&b) {
		t.Error("token must not hold a different lock")
	}

	var nilTok *Token
	if nilTok.Holds(&a) {
		t.Error("nil token holds nothing")
	}
	nilTok.Release()
}

func TestLock_WithReleasesOnError(t *testing.T) {
	var l Lock
	want := errors.New("boom")

	var inside *Token
	err := l.With(func(tok *Token) error {
		inside = tok
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("With returned %v, want %v", err, want)
	}
	if inside.Holds(&l) {
		t.Error("token should be released after With returns")
	}
}

func TestLock_WithReleasesOnPanic(t *testing.T) {
	var l Lock

	func() {
		defer func() { _ = recover() }()
		_ = l.With(func(tok *Token) error {
			panic("host exploded")
		})
	}()

	done := make(chan struct{})
	go func() {
		tok := l.Acquire()
		tok.Release()
		close(done)
	}()
	<-done
}

func TestLock_Exclusive(t *testing.T) {
	var l Lock
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.With(func(tok *Token) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}
