package tlex

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRWSpinLock_Basic(t *testing.T) {
	var a int
	var rw RWSpinLock
	rw.Lock()
	a = 1
	rw.Unlock()
	rw.RLock()
	_ = a
	rw.RUnlock()
	if rw.IsLocked() {
		t.Fatalf("IsLocked() = true on an idle lock")
	}
}

func TestRWSpinLock_ReadersCoexist(t *testing.T) {
	var rw RWSpinLock
	rw.RLock()
	done := make(chan struct{})
	go func() {
		rw.RLock()
		rw.RUnlock()
		close(done)
	}()
	<-done
	rw.RUnlock()
}

func TestRWSpinLock_ReadersAndWriters(t *testing.T) {
	var rw RWSpinLock
	var readers int32
	var writers int32

	const loops = 1000
	readerN := runtime.GOMAXPROCS(0)
	writerN := 2

	var wg sync.WaitGroup
	wg.Add(readerN + writerN)

	for range readerN {
		go func() {
			defer wg.Done()
			for range loops {
				rw.RLock()
				n := atomic.AddInt32(&readers, 1)
				if atomic.LoadInt32(&writers) != 0 {
					t.Errorf("reader observed active writer")
					rw.RUnlock()
					return
				}
				if n <= 0 {
					t.Errorf("invalid reader count")
					rw.RUnlock()
					return
				}
				atomic.AddInt32(&readers, -1)
				rw.RUnlock()
			}
		}()
	}

	for range writerN {
		go func() {
			defer wg.Done()
			for range loops {
				rw.Lock()
				if atomic.AddInt32(&writers, 1) != 1 {
					t.Errorf("two active writers")
				}
				if atomic.LoadInt32(&readers) != 0 {
					t.Errorf("writer observed active readers")
				}
				atomic.AddInt32(&writers, -1)
				rw.Unlock()
			}
		}()
	}

	wg.Wait()
	if rw.IsLocked() {
		t.Fatalf("lock not idle after all workers joined")
	}
}

// A pending writer must block new readers even while current readers still
// hold the lock, or a steady reader stream would starve writers.
func TestRWSpinLock_PendingWriterBlocksReaders(t *testing.T) {
	var rw RWSpinLock
	rw.RLock()

	wdone := make(chan struct{})
	go func() {
		rw.Lock()
		rw.Unlock()
		close(wdone)
	}()

	// Wait until the writer has announced itself.
	for atomic.LoadUint32((*uint32)(&rw))&rwPending == 0 {
		runtime.Gosched()
	}

	rdone := make(chan struct{})
	go func() {
		rw.RLock()
		rw.RUnlock()
		close(rdone)
	}()

	// The second reader must not get in ahead of the pending writer.
	for range 100 {
		runtime.Gosched()
	}
	select {
	case <-rdone:
		t.Fatalf("reader acquired past a pending writer")
	default:
	}

	rw.RUnlock()
	<-wdone
	<-rdone
}

func TestRWSpinLock_WriterReleaseClearsPending(t *testing.T) {
	var rw RWSpinLock
	rw.Lock()
	atomic.OrUint32((*uint32)(&rw), rwPending)
	rw.Unlock()
	if s := atomic.LoadUint32((*uint32)(&rw)); s != 0 {
		t.Fatalf("state = %#x after write unlock, want 0", s)
	}
}

func TestRWSpinLock_UnlockWait(t *testing.T) {
	var rw RWSpinLock
	rw.UnlockWait() // idle: returns immediately

	rw.RLock()
	done := make(chan struct{})
	go func() {
		rw.UnlockWait()
		close(done)
	}()
	select {
	case <-done:
		t.Fatalf("UnlockWait returned while a reader was active")
	default:
	}
	rw.RUnlock()
	<-done
	if rw.IsLocked() {
		t.Fatalf("UnlockWait mutated the lock word")
	}
}
