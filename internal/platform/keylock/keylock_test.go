package keylock

import (
	"sync"
	"testing"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	t.Parallel()

	locks := New()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("team:Flamengo")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter=%d want %d", counter, workers)
	}
}

func TestKeyLock_DisjointKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	locks := New()

	unlockA := locks.Lock("team:Santos")
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("team:Bahia")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}

func TestKeyLock_EntriesAreReclaimed(t *testing.T) {
	t.Parallel()

	locks := New()
	for i := 0; i < 100; i++ {
		unlock := locks.Lock("match:2023-05-01T16:00:00Z|Flamengo|Palmeiras")
		unlock()
	}

	locks.mu.Lock()
	size := len(locks.locks)
	locks.mu.Unlock()
	if size != 0 {
		t.Fatalf("lock map should be empty after release, has %d entries", size)
	}
}
