// Package queue defines message payloads exchanged over the message broker.
package queue

// EventSubmittedEvent is published after a submission pipeline run finishes,
// successfully or not. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type EventSubmittedEvent struct {
	DraftID     string `json:"draft_id"`
	UserID      string `json:"user_id"`
	EventID     string `json:"event_id,omitempty"` // platform id on success
	Title       string `json:"title"`
	IsRelease   bool   `json:"is_release"`
	Strategy    int    `json:"strategy"` // which attempt landed; 0 when none did
	Outcome     string `json:"outcome"`  // "created" or "failed"
	FailureNote string `json:"failure_note,omitempty"`
	SubmittedAt string `json:"submitted_at"`
}
