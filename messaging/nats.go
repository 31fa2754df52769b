// Package messaging publishes domain events on NATS.
package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects.
const (
	PostCreated         = "post.created"
	PostLiked           = "post.liked"
	PostDeleted         = "post.deleted"
	CommentCreated      = "comment.created"
	UserFollowed        = "user.followed"
	ApplicationCreated  = "program.applied"
	NotificationCreated = "notification.created"
	MessageSent         = "message.sent"
)

type Publisher interface {
	Publish(subject string, event interface{}) error
}

// Event is the envelope every message carries.
type Event struct {
	Subject   string      `json:"subject"`
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
}

type NATS struct {
	conn *nats.Conn
}

func Connect(url string) (*NATS, error) {
	conn, err := nats.Connect(url, nats.Name("kovan"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	log.Println("NATS connected successfully")
	return &NATS{conn: conn}, nil
}

func (n *NATS) Publish(subject string, event interface{}) error {
	data, err := json.Marshal(Event{
		Subject:   subject,
		Payload:   event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return n.conn.Publish(subject, data)
}

// Subscribe delivers the raw envelope of every event matching subject
// (wildcards allowed, e.g. "post.*").
func (n *NATS) Subscribe(subject string, handler func(Event)) (*nats.Subscription, error) {
	return n.conn.Subscribe(subject, func(msg *nats.Msg) {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Printf("[messaging] bad event on %s: %v", msg.Subject, err)
			return
		}
		handler(ev)
	})
}

func (n *NATS) Close() {
	n.conn.Drain()
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(string, interface{}) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(subject string, event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Subject: subject, Payload: event})
	return nil
}

// Subjects lists the recorded subjects in publish order.
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Subject
	}
	return out
}
