package infrastructure

import (
	"sync"
	"time"
)

// Poller runs one task on a fixed interval until stopped. The task fires
// once immediately on Start, then on every tick. Runs of the same poller
// never overlap: ticks are consumed by a single goroutine, so a slow run
// simply delays the next one.
type Poller struct {
	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

func NewPoller() *Poller {
	return &Poller{}
}

// Start begins polling. Calling Start on a running poller restarts it with
// the new interval and task.
func (p *Poller) Start(interval time.Duration, task func()) {
	p.Stop()

	p.mu.Lock()
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.running = true
	stop, done := p.stop, p.done
	p.mu.Unlock()

	go func() {
		defer close(done)

		task()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

// Stop tears the poller down and waits for an in-flight run to finish, so
// no tick fires after Stop returns. Safe to call when not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	stop, done := p.stop, p.done
	p.mu.Unlock()

	close(stop)
	<-done
}
