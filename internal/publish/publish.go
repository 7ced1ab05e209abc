// Package publish announces finished training records on a NATS subject.
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/verte-zerg/keydrill/internal/session"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "keydrill.records"

// Event is the wire form of a published record.
type Event struct {
	Lesson    string    `json:"lesson"`
	Timestamp time.Time `json:"timestamp"`
	Errors    int       `json:"errors"`
	CPM       int       `json:"cpm"`
	WPM       int       `json:"wpm"`
}

// NewEvent converts a record for lessonName into an Event.
func NewEvent(lessonName string, rec session.Record) Event {
	return Event{
		Lesson:    lessonName,
		Timestamp: rec.Timestamp,
		Errors:    rec.Stats.Errors,
		CPM:       rec.Stats.Speed.CPM(),
		WPM:       rec.Stats.Speed.WPM(),
	}
}

// Conn is the subset of *nats.Conn used by Publisher.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Drain() error
}

// Publisher sends events to a subject.
type Publisher struct {
	conn         Conn
	subject      string
	flushTimeout time.Duration
}

// New wraps an existing connection.
func New(conn Conn, subject string) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{conn: conn, subject: subject, flushTimeout: 2 * time.Second}
}

// Connect dials the NATS server at url.
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("keydrill"),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return New(nc, subject), nil
}

// Subject returns the subject events are published on.
func (p *Publisher) Subject() string {
	return p.subject
}

// Publish sends one record and waits for the server to acknowledge the flush.
func (p *Publisher) Publish(lessonName string, rec session.Record) error {
	data, err := json.Marshal(NewEvent(lessonName, rec))
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish record: %w", err)
	}
	if err := p.conn.FlushTimeout(p.flushTimeout); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
