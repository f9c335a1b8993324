package history

import (
	"time"
)

// Entry is one completed confirmation round trip
type Entry struct {
	ID           int       `json:"id"`
	RequestID    string    `json:"request_id"`
	Message      string    `json:"message"`
	ProjectName  string    `json:"project_name,omitempty"`
	Cwd          string    `json:"cwd,omitempty"`
	SectionCount int       `json:"section_count"`
	Confirmed    bool      `json:"confirmed"`
	Selected     []int     `json:"selected_sections"`
	UserInput    string    `json:"user_input,omitempty"`
	ImageCount   int       `json:"image_count"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// Outcome returns a short label for the decision
func (e Entry) Outcome() string {
	switch {
	case !e.Confirmed:
		return OutcomeCancelled
	case len(e.Selected) > 0:
		return OutcomeSelected
	default:
		return OutcomeConfirmed
	}
}

// Outcome labels
const (
	OutcomeCancelled = "cancelled"
	OutcomeConfirmed = "confirmed"
	OutcomeSelected  = "selected"
)

// SearchResult is a history entry matched by a full-text query
type SearchResult struct {
	Entry Entry   `json:"entry"`
	Rank  float64 `json:"rank"`
}
