package incident

import "time"

// Phase tells where a call degraded.
type Phase string

const (
	PhaseTransport Phase = "transport"
	PhaseParse     Phase = "parse"
	PhasePanic     Phase = "panic"
)

// Incident is a provider call that fell back to a synthetic or repaired result.
type Incident struct {
	ID          int64     `json:"id"`
	Provider    string    `json:"provider"`
	Task        string    `json:"task"`
	Phase       Phase     `json:"phase"`
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
