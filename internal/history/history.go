package history

import (
	"context"
	"time"
)

const (
	GameMath    = "math"
	GameReading = "reading"
)

// Attempt is one graded answer, right or wrong.
type Attempt struct {
	ID         string    `json:"id"`
	Game       string    `json:"game"`
	RefID      string    `json:"ref_id"`
	Level      int       `json:"level"`
	Correct    bool      `json:"correct"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Summary aggregates attempts per game over a window.
type Summary struct {
	Game          string  `json:"game"`
	Attempts      int     `json:"attempts"`
	Correct       int     `json:"correct"`
	Accuracy      float64 `json:"accuracy"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

// Recorder is what the API layer writes attempts through.
type Recorder interface {
	RecordAttempt(ctx context.Context, a Attempt) error
	Summaries(ctx context.Context, since time.Time) ([]Summary, error)
	Close() error
}

// NopRecorder stands in when history is disabled.
type NopRecorder struct{}

func (NopRecorder) RecordAttempt(ctx context.Context, a Attempt) error { return nil }

func (NopRecorder) Summaries(ctx context.Context, since time.Time) ([]Summary, error) {
	return nil, nil
}

func (NopRecorder) Close() error { return nil }
