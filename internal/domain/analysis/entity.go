package analysis

import (
	"time"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

// ID identifier type
type ID string

// Analysis is one analyze call as stored for insights and history.
type Analysis struct {
	ID        ID                `json:"id"`
	UserID    string            `json:"userId,omitempty"`
	Region    string            `json:"region"`
	InputText string            `json:"inputText"`
	Category  string            `json:"category"`
	Result    ai.AnalysisResult `json:"aiResult"`
	Provider  string            `json:"provider"`
	IsMock    bool              `json:"isMock"`
	CreatedAt time.Time         `json:"createdAt"`
}
