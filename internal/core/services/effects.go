package services

import "sync"

// effectQueue runs side effects one at a time, in submission order, on a
// single goroutine. Effects pushed while another effect runs are queued
// behind it, so an effect that calls back into the session never
// interleaves with the transition that produced it.
type effectQueue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

func newEffectQueue() *effectQueue {
	q := &effectQueue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// push enqueues effects. Effects pushed after close are dropped.
func (q *effectQueue) push(effects ...func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, effects...)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *effectQueue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		for _, fn := range batch {
			fn()
		}

		if len(batch) == 0 {
			if closed {
				return
			}
			<-q.wake
		}
	}
}

// close drains queued effects and stops the worker.
// It must not be called from inside an effect.
func (q *effectQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.done
}
