package push

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const dialTimeout = 10 * time.Second

// Client reads the push event stream for one call session.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to the push channel and subscribes to the session's stream.
func Dial(baseURL, sessionID string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse push url: %w", err)
	}
	u.Path = "/v1/stream/" + sessionID

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect push channel: %w", err)
	}
	return &Client{conn: conn}, nil
}

// ReadEvent blocks until the next event arrives. Call in a loop; any error
// means the channel is gone and status tracking degrades to poll-only.
func (c *Client) ReadEvent() (Event, error) {
	var ev Event
	if err := c.conn.ReadJSON(&ev); err != nil {
		return Event{}, fmt.Errorf("read push event: %w", err)
	}
	return ev, nil
}

// Close shuts the channel down.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
