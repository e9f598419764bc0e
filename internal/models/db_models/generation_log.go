package db_models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type GenerationOutcome string

const (
	OutcomeSuccess         GenerationOutcome = "success"
	OutcomeGenerationError GenerationOutcome = "generation_error"
	OutcomeDecodeError     GenerationOutcome = "decode_error"
)

// GenerationLog is one call to the completion service, kept for diagnosing
// replies the decoder rejected.
type GenerationLog struct {
	BaseModel
	SessionID   string            `gorm:"size:64;index"`
	Destination string            `gorm:"size:200;not null"`
	Duration    int               `gorm:"not null"`
	Interests   string            `gorm:"type:text;not null"`
	Provider    string            `gorm:"size:32;not null"`
	Outcome     GenerationOutcome `gorm:"size:32;index;not null"`
	Error       string            `gorm:"type:text"`
	RawResponse string            `gorm:"type:text"`
	Itinerary   datatypes.JSON    `gorm:"type:jsonb"`
	Sources     pq.StringArray    `gorm:"type:text[]"`
	DayCount    int
	LatencyMs   int64
}
