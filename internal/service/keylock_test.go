package service

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	t.Parallel()

	k := newKeyLock()
	id := uuid.New()

	var (
		wg      sync.WaitGroup
		inside  atomic.Int32
		overlap atomic.Bool
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(id)
			if inside.Add(1) > 1 {
				overlap.Store(true)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	if overlap.Load() {
		t.Fatalf("two holders of the same key overlapped")
	}
	if k.size() != 0 {
		t.Fatalf("expected lock table to drain, got %d entries", k.size())
	}
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	k := newKeyLock()
	unlockA := k.Lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := k.Lock(uuid.New())
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("lock on a different key blocked")
	}
}
