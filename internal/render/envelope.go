package render

import (
	"time"

	"github.com/KaramelBytes/csvscope/internal/profile"
	"github.com/google/uuid"
)

// Envelope wraps a report with run metadata for JSON output.
type Envelope struct {
	ID          string                  `json:"id"`
	Source      string                  `json:"source"`
	GeneratedAt time.Time               `json:"generated_at"`
	Report      *profile.AnalysisReport `json:"report"`
}

// NewEnvelope stamps rep with a fresh run ID and the current time.
func NewEnvelope(source string, rep *profile.AnalysisReport) *Envelope {
	return &Envelope{
		ID:          uuid.NewString(),
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Report:      rep,
	}
}
