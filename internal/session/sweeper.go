package session

import (
	"context"
	"time"
)

// Sweeper periodically discards expired sessions.
type Sweeper struct {
	store            *Store
	interval         time.Duration
	shutdownComplete chan struct{}
}

// NewSweeper constructs a Sweeper.
func NewSweeper(store *Store, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		store:            store,
		interval:         interval,
		shutdownComplete: make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled. It should be called in a goroutine.
func (sw *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer func() {
		ticker.Stop()
		close(sw.shutdownComplete)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sw.store.Sweep(sw.store.now().UTC())
		}
	}
}

// Wait blocks until the sweep loop has stopped.
func (sw *Sweeper) Wait() {
	<-sw.shutdownComplete
}
