package store

import "time"

// Session holds the unspoken remainder of a truncated answer so a follow-up
// request can resume where the spoken chunk left off.
type Session struct {
	ID           string    `json:"id"`
	Intent       string    `json:"intent"`
	Continuation string    `json:"continuation"`
	FullAnswer   string    `json:"full_answer"`
	CreatedAt    time.Time `json:"created_at"`
}
