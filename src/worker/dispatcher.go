package worker

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

var ErrDispatcherClosed = fmt.Errorf("dispatcher closed")

type Task func()

// Dispatcher runs posted tasks one at a time, in order, on the goroutine that calls Run.
// Everything a symbol owns is mutated from its dispatcher only.
type Dispatcher struct {
	name  string
	queue *eventmodels.FIFOQueue[Task]
	done  chan struct{}
}

func NewDispatcher(name string, size int) *Dispatcher {
	return &Dispatcher{
		name:  name,
		queue: eventmodels.NewFIFOQueue[Task](name, size),
		done:  make(chan struct{}),
	}
}

func (d *Dispatcher) Name() string {
	return d.name
}

// Post blocks while the queue is full.
func (d *Dispatcher) Post(task Task) error {
	select {
	case <-d.done:
		return fmt.Errorf("Dispatcher.Post: %s: %w", d.name, ErrDispatcherClosed)
	default:
	}

	if !d.queue.Enqueue(task) {
		return fmt.Errorf("Dispatcher.Post: %s: %w", d.name, ErrDispatcherClosed)
	}

	return nil
}

// Call runs fn on the dispatcher and waits for it to return. It must not be called from a task.
func (d *Dispatcher) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})

	err := d.Post(func() {
		defer close(finished)
		fn()
	})
	if err != nil {
		return fmt.Errorf("Dispatcher.Call: %w", err)
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("Dispatcher.Call: %s: %w", d.name, ctx.Err())
	}
}

// Run executes tasks until the dispatcher is closed and drained, or ctx is done.
// Tasks still queued when ctx is done are dropped.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)

	log.Debugf("%s: dispatcher started", d.name)
	for {
		task, ok := d.queue.DequeueWait(ctx)
		if !ok {
			if ctx.Err() != nil {
				d.discard()
			}

			log.Debugf("%s: dispatcher stopped", d.name)
			return
		}

		task()
	}
}

// discard closes the queue and drops whatever is left in it, releasing blocked posters and Close.
func (d *Dispatcher) discard() {
	go d.queue.Close()

	go func() {
		dropped := 0
		for {
			if _, ok := d.queue.DequeueWait(context.Background()); !ok {
				if dropped > 0 {
					log.Warnf("%s: dropped %d queued tasks", d.name, dropped)
				}
				return
			}
			dropped++
		}
	}()
}

// Close stops accepting tasks, then waits for Run to finish the queued ones.
// Run must have been started. If Run already stopped on its context, Close returns without running them.
func (d *Dispatcher) Close() {
	d.queue.Close()
	<-d.done
}

// Done is closed when Run returns.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}
