package eventmodels

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

type FIFOQueue[T any] struct {
	caller  string
	queue   chan T
	wg      *sync.WaitGroup
	counter uint
	mutex   *sync.Mutex
	closed  bool
}

func NewFIFOQueue[T any](caller string, size int) *FIFOQueue[T] {
	return &FIFOQueue[T]{
		queue:   make(chan T, size),
		wg:      &sync.WaitGroup{},
		counter: 0,
		mutex:   &sync.Mutex{},
		caller:  caller,
	}
}

// Enqueue blocks while the queue is full. It returns false once the queue is closed.
func (q *FIFOQueue[T]) Enqueue(item T) bool {
	q.mutex.Lock()
	if q.closed {
		q.mutex.Unlock()
		return false
	}

	q.counter++
	counter := q.counter
	q.wg.Add(1)
	q.mutex.Unlock()

	log.Tracef("%v (%p): Enqueueing item, count=%v", q.caller, q, counter)
	q.queue <- item
	return true
}

func (q *FIFOQueue[T]) Dequeue() (T, bool) {
	select {
	case item, ok := <-q.queue:
		if !ok {
			var zero T
			return zero, false
		}

		q.done()
		return item, true
	default:
		var zero T
		return zero, false
	}
}

// DequeueWait blocks until an item arrives, the queue is closed or ctx is done.
func (q *FIFOQueue[T]) DequeueWait(ctx context.Context) (T, bool) {
	select {
	case item, ok := <-q.queue:
		if !ok {
			var zero T
			return zero, false
		}

		q.done()
		return item, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

func (q *FIFOQueue[T]) Len() uint {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return q.counter
}

func (q *FIFOQueue[T]) done() {
	q.mutex.Lock()
	q.counter--
	counter := q.counter
	q.mutex.Unlock()

	q.wg.Done()
	log.Tracef("%v (%p): Dequeued item, count=%v", q.caller, q, counter)
}

// Close waits for every enqueued item to be dequeued, then closes the queue.
func (q *FIFOQueue[T]) Close() {
	q.mutex.Lock()
	if q.closed {
		q.mutex.Unlock()
		return
	}
	q.closed = true
	q.mutex.Unlock()

	q.wg.Wait()
	close(q.queue)
}
