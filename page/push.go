package page

import (
	"io"
	"sync"
)

// PushSink delivers messages to the browser, in order. Sinks are compared
// by identity, implementations must be comparable.
type PushSink interface {
	Push(msg []byte) error
}

// pushQueue is the FIFO of messages for the browser.
type pushQueue struct {
	mu      sync.Mutex
	sink    PushSink
	pending [][]byte
	enabled bool // keep messages the sink failed to deliver
}

func (q *pushQueue) push(msg []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sink == nil {
		tracer().Debugf("no push sink, dropping message of %d bytes", len(msg))
		return
	}
	q.pending = append(q.pending, msg)
	q.flush()
}

// flush delivers pending messages. The caller holds q.mu.
func (q *pushQueue) flush() {
	for len(q.pending) > 0 && q.sink != nil {
		if err := q.sink.Push(q.pending[0]); err != nil {
			if q.enabled {
				tracer().Debugf("push failed, %d messages queued: %v", len(q.pending), err)
				return
			}
			tracer().Errorf("push failed, dropping message: %v", err)
		}
		q.pending[0] = nil
		q.pending = q.pending[1:]
	}
}

func (q *pushQueue) attach(sink PushSink) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sink = sink
	q.flush()
}

func (q *pushQueue) detach(sink PushSink) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sink == nil || q.sink != sink {
		return false
	}
	q.sink = nil
	return true
}

func (q *pushQueue) hasSink() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.sink != nil
}

func (q *pushQueue) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
}

// close detaches and closes the sink, if it can be closed.
func (q *pushQueue) close() {
	q.mu.Lock()
	sink := q.sink
	q.sink, q.pending = nil, nil
	q.mu.Unlock()
	if c, ok := sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			tracer().Errorf("closing push sink: %v", err)
		}
	}
}

func (q *pushQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
