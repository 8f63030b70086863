// Package db is the local SQLite store: a call log of completed calls for
// caller-history display, and wrap-up draft notes that survive a crash.
package db

import "time"

// CallLogEntry is one completed call recorded locally.
type CallLogEntry struct {
	SessionID    string
	PhoneNumber  string
	Direction    string
	Disposition  string
	Summary      string
	StartedAt    time.Time
	DurationSecs int
}
