package tlex

import (
	"runtime"
	"strconv"
	"sync"
	"testing"
)

func TestNullMutex_StateMachine(t *testing.T) {
	var m NullMutex
	var p NullProfile
	h := m.NewHandle(&p)

	if h.Status() != StatusUnknown {
		t.Fatalf("fresh handle status = %v, want %v", h.Status(), StatusUnknown)
	}
	const loops = 100
	for range loops {
		h.Lock()
		if h.Status() != StatusLockedUnique {
			t.Fatalf("status = %v inside lock, want %v", h.Status(), StatusLockedUnique)
		}
		h.Unlock()
		if h.Status() != StatusUnlocked {
			t.Fatalf("status = %v after unlock, want %v", h.Status(), StatusUnlocked)
		}
	}
	if !p.Consistent(loops) {
		t.Fatalf("null profile inconsistent")
	}
}

func TestMutex_HandleStatus(t *testing.T) {
	var m Mutex
	h := m.NewHandle(nil)
	if h.Status() != StatusUnknown {
		t.Fatalf("fresh handle status = %v, want %v", h.Status(), StatusUnknown)
	}
	h.Lock()
	if h.Status() != StatusLockedUnique {
		t.Fatalf("status = %v inside lock, want %v", h.Status(), StatusLockedUnique)
	}
	h.Unlock()
	if h.Status() != StatusUnlocked {
		t.Fatalf("status = %v after unlock, want %v", h.Status(), StatusUnlocked)
	}
}

// The contended-counter scenario: N workers, each with its own handle and
// profile block, all incrementing one plain int.
func TestMutex_Counter(t *testing.T) {
	const loops = 20000
	workers := runtime.GOMAXPROCS(0)

	var m Mutex
	var profs PlainProfileSet
	var counter int

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		h := m.NewHandle(profs.Get(workerLabel(i)))
		go func() {
			defer wg.Done()
			for range loops {
				h.Lock()
				counter++
				h.Unlock()
			}
		}()
	}
	wg.Wait()

	total := uint64(workers) * loops
	if uint64(counter) != total {
		t.Fatalf("counter = %d, want %d", counter, total)
	}
	sum := profs.Sum()
	if sum.LocksAcquired != total {
		t.Fatalf("LocksAcquired = %d, want %d", sum.LocksAcquired, total)
	}
	if !sum.Consistent(total) {
		t.Fatalf("profile inconsistent: %+v", *sum)
	}
}

func workerLabel(i int) string {
	return "worker-" + strconv.Itoa(i)
}
