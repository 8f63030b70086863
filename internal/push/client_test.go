package push

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

// startMockStream serves a websocket that pushes the given events and then
// closes.
func startMockStream(t *testing.T, events []Event) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/stream/") {
			t.Errorf("path = %s", r.URL.Path)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for _, ev := range events {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestReadSegmentEvents(t *testing.T) {
	srv := startMockStream(t, []Event{
		{Event: "segment", Segment: &Segment{Speaker: "caller", Text: "My roof is leaking", SequenceNumber: 1}},
		{Event: "segment", Segment: &Segment{Speaker: "agent", Text: "Let me pull up your policy", SequenceNumber: 2}},
		{Event: "status", Status: "connected"},
	})
	defer srv.Close()

	c, err := Dial(wsURL(srv), "sess-1")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	ev, err := c.ReadEvent()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Event != "segment" || ev.Segment == nil || ev.Segment.SequenceNumber != 1 {
		t.Errorf("event = %+v", ev)
	}

	ev, err = c.ReadEvent()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Segment == nil || ev.Segment.Speaker != "agent" {
		t.Errorf("event = %+v", ev)
	}

	ev, err = c.ReadEvent()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Event != "status" || ev.Status != "connected" {
		t.Errorf("event = %+v", ev)
	}
}

func TestReadCoachingEvent(t *testing.T) {
	srv := startMockStream(t, []Event{
		{Event: "coaching", Coaching: &Coaching{ID: "tip-1", Title: "Empathize", Body: "Acknowledge the water damage stress"}},
	})
	defer srv.Close()

	c, err := Dial(wsURL(srv), "sess-1")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	ev, err := c.ReadEvent()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Coaching == nil || ev.Coaching.ID != "tip-1" {
		t.Errorf("event = %+v", ev)
	}
}

func TestReadAfterCloseErrors(t *testing.T) {
	srv := startMockStream(t, nil)
	defer srv.Close()

	c, err := Dial(wsURL(srv), "sess-1")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if _, err := c.ReadEvent(); err == nil {
		t.Error("expected error when the stream closes")
	}
}

func TestDialFailure(t *testing.T) {
	if _, err := Dial("ws://127.0.0.1:1", "sess-1"); err == nil {
		t.Error("expected error dialing a closed port")
	}
}
