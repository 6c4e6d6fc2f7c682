package models

import "time"

// SimEvent is a single log entry.
type SimEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // RUN_COMPLETE | LIVE_START | LIVE_STOP | TARGETS_CHANGE | SATURATION | RESET
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
