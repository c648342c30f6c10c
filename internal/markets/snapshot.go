package markets

import "time"

// Snapshot is the payload placed on the per-platform Kafka topics by the
// external collectors.
type Snapshot struct {
	Platform   Platform  `json:"platform"`
	Market     Market    `json:"market"`
	CapturedAt time.Time `json:"captured_at"`
}

// NewSnapshot wraps a market with its capture time.
func NewSnapshot(m Market, capturedAt time.Time) Snapshot {
	return Snapshot{
		Platform:   m.Platform,
		Market:     m,
		CapturedAt: capturedAt.UTC(),
	}
}
