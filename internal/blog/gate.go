package blog

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var ErrBusy = errors.New("a generation is already in progress")

// admits one generation at a time. a second caller is turned away instead of
// queued.
type Gate struct {
	sem  *semaphore.Weighted
	held atomic.Bool
}

func NewGate() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// returns ErrBusy without blocking when the slot is taken
func (g *Gate) TryAcquire() error {
	if !g.sem.TryAcquire(1) {
		return ErrBusy
	}
	g.held.Store(true)

	return nil
}

func (g *Gate) Release() {
	g.held.Store(false)
	g.sem.Release(1)
}

// reports whether a generation holds the gate right now
func (g *Gate) Busy() bool {
	return g.held.Load()
}
