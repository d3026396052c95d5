package gridui

import "sync"

// eventQueue is an unbounded FIFO between the render thread and the
// application. push never blocks on a slow reader; events pile up until
// read. After close, out is closed once every queued event is delivered.
type eventQueue struct {
	mu     sync.Mutex
	closed bool
	in     chan InputEvent
	out    chan InputEvent
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		in:  make(chan InputEvent),
		out: make(chan InputEvent),
	}
	go q.pump()
	return q
}

// push enqueues an event; false if the queue is already closed
func (q *eventQueue) push(ev InputEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.in <- ev
	return true
}

// close stops intake. Safe to call multiple times.
func (q *eventQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.in)
}

// events returns the consumer side
func (q *eventQueue) events() <-chan InputEvent {
	return q.out
}

func (q *eventQueue) pump() {
	var pending []InputEvent
	in := q.in
	for in != nil || len(pending) > 0 {
		var out chan InputEvent
		var next InputEvent
		if len(pending) > 0 {
			out = q.out
			next = pending[0]
		}
		select {
		case ev, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, ev)
		case out <- next:
			pending = pending[1:]
		}
	}
	close(q.out)
}
