package gallery

import (
	"context"
	"sync"
	"time"

	"go-calc/debug"
)

// saveTimeout bounds a single store write
const saveTimeout = 10 * time.Second

// Persister writes gallery snapshots in the background, one at a time and in
// submission order. A snapshot still waiting when a newer one arrives is
// replaced by it: the store only ever needs the latest state.
type Persister struct {
	store Store

	mu      sync.Mutex
	pending *Snapshot
	lastErr error
	saves   int

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewPersister starts the writer goroutine. Call Close to flush and stop it.
func NewPersister(store Store) *Persister {
	p := &Persister{
		store: store,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

// Submit queues snap for writing. It never blocks.
func (p *Persister) Submit(snap Snapshot) {
	p.mu.Lock()
	p.pending = &snap
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.flush()
		case <-p.stop:
			p.flush()
			return
		}
	}
}

func (p *Persister) flush() {
	for {
		p.mu.Lock()
		snap := p.pending
		p.pending = nil
		p.mu.Unlock()
		if snap == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := p.store.Save(ctx, *snap)
		cancel()

		p.mu.Lock()
		p.saves++
		p.lastErr = err
		p.mu.Unlock()

		if err != nil {
			// in-memory gallery stays authoritative, try again on the next mutation
			debug.Log("store", "save failed: %v", err)
		} else {
			debug.Log("store", "saved %d images, selected=%q", len(snap.Images), snap.Selected)
		}
	}
}

// Err returns the result of the most recent write
func (p *Persister) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Saves counts completed writes
func (p *Persister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

// Close writes any pending snapshot and stops the writer. It does not close
// the store.
func (p *Persister) Close() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	<-p.done
}
