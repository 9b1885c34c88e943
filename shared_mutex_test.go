package tlex

import (
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSharedMutex_Counter(t *testing.T) {
	const loops = 5000
	writerN := 2
	readerN := runtime.GOMAXPROCS(0)

	var m SharedMutex
	var profs PlainProfileSet
	var c int64
	var reads atomic.Int64

	var wg sync.WaitGroup
	wg.Add(writerN + readerN)
	for i := range writerN {
		h := m.NewHandle(profs.Get("writer-" + strconv.Itoa(i)))
		go func() {
			defer wg.Done()
			for range loops {
				h.Lock()
				c++
				h.Unlock()
			}
		}()
	}
	for i := range readerN {
		h := m.NewHandle(profs.Get("reader-" + strconv.Itoa(i)))
		go func() {
			defer wg.Done()
			last := int64(-1)
			for range loops {
				h.RLock()
				v := c
				h.RUnlock()
				if v < last {
					t.Errorf("read went backwards: %d after %d", v, last)
					return
				}
				last = v
				reads.Add(1)
			}
		}()
	}
	wg.Wait()

	if c != int64(writerN)*loops {
		t.Fatalf("c = %d, want %d", c, writerN*loops)
	}
	total := uint64(writerN)*loops + uint64(reads.Load())
	sum := profs.Sum()
	if sum.LocksAcquired != total {
		t.Fatalf("LocksAcquired = %d, want %d", sum.LocksAcquired, total)
	}
	if !sum.Consistent(total) {
		t.Fatalf("profile inconsistent: %+v", *sum)
	}
}
