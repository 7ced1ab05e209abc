package publish

import (
	"errors"
	"fmt"
	"sync"

	"github.com/verte-zerg/keydrill/internal/session"
)

// ErrQueueFull is reported for records dropped because the queue was full.
var ErrQueueFull = errors.New("publish queue full")

type queued struct {
	lesson string
	record session.Record
}

// Queue publishes records from a background goroutine so callers never wait
// on the server.
type Queue struct {
	pub   *Publisher
	items chan queued
	done  chan struct{}

	mu   sync.Mutex
	errs []error
}

// NewQueue starts publishing through pub, buffering up to size records.
func NewQueue(pub *Publisher, size int) *Queue {
	q := &Queue{
		pub:   pub,
		items: make(chan queued, max(size, 1)),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for item := range q.items {
		if err := q.pub.Publish(item.lesson, item.record); err != nil {
			q.fail(err)
		}
	}
}

func (q *Queue) fail(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = append(q.errs, err)
}

// Enqueue hands a record to the background publisher without blocking.
// It must not be called after Close.
func (q *Queue) Enqueue(lessonName string, rec session.Record) {
	select {
	case q.items <- queued{lesson: lessonName, record: rec}:
	default:
		q.fail(fmt.Errorf("%w: dropped record for %s", ErrQueueFull, lessonName))
	}
}

// Close waits for queued records to be sent and returns every failure.
func (q *Queue) Close() []error {
	close(q.items)
	<-q.done
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]error(nil), q.errs...)
}
