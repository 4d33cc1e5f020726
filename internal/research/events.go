// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

// EventKind labels a progress event.
type EventKind string

const (
	EventAnalyzing EventKind = "analyzing"
	EventKept      EventKind = "kept"
	EventSkipped   EventKind = "skipped"
	EventWarning   EventKind = "warning"
	EventDone      EventKind = "done"
)

// Event is one progress update emitted while a run is in flight. Message is
// the human-readable line the UI shows.
type Event struct {
	Kind    EventKind `json:"type"`
	Index   int       `json:"index"`
	Total   int       `json:"total"`
	Title   string    `json:"title,omitempty"`
	URL     string    `json:"url,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Error   string    `json:"error,omitempty"`
	Message string    `json:"message"`
	Summary *Summary  `json:"summary,omitempty"`
}

// Observer receives progress events. It is called synchronously from the
// run loop.
type Observer func(Event)

// Summary holds per-run item counts.
type Summary struct {
	Searched int `json:"searched"`
	Kept     int `json:"kept"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Total returns the number of items processed.
func (s Summary) Total() int {
	return s.Kept + s.Skipped + s.Failed
}

// HasFailures reports whether any item's model call failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}
