package domain

import "time"

// Message is one entry in the append-only message log. Threads are
// derived from the (from, to) pair; messages are never edited or
// deleted.
type Message struct {
	ID        string
	FromID    string
	FromName  string
	ToID      string
	ToName    string
	Text      string
	Timestamp time.Time
}
