// Package push provides the client and event types for the transcript and
// coaching push channel, a JSON event stream over a websocket.
package push

import "time"

// Segment is one finalized transcript line. Segments are ordered, append-only
// and owned by the push service; the dashboard only reads them.
type Segment struct {
	Speaker        string    `json:"speaker"` // "agent" or "caller"
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
	SequenceNumber int       `json:"sequenceNumber"`
}

// Coaching is an inline coaching tip delivered alongside the transcript.
type Coaching struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Event is one message streamed to a subscribed dashboard.
type Event struct {
	Event    string    `json:"event"` // segment, coaching, status, ping
	Segment  *Segment  `json:"segment,omitempty"`
	Coaching *Coaching `json:"coaching,omitempty"`
	Status   string    `json:"status,omitempty"`
	Live     *bool     `json:"live,omitempty"`
}
