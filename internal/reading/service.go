package reading

import (
	"errors"
	"sync"

	"github.com/on321go/wildkinCards/internal/content"
)

// RNG is the randomness the service consumes. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

var (
	ErrUnknownPassage = errors.New("reading: unknown passage")
	ErrNoPassages     = errors.New("reading: no passages at that level")
)

// PassageView is what the reading screen renders: the raw text plus the
// wrapped rows, so every client breaks lines the same way.
type PassageView struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Text  string `json:"text"`
	Rows  []Row  `json:"rows"`
}

// Service picks passages and checks read-aloud transcripts against
// them. Speech recognition itself happens on the client; only the
// transcript travels here.
type Service struct {
	mu      sync.Mutex
	lib     *content.Library
	rng     RNG
	maxCols int
}

func NewService(lib *content.Library, rng RNG, maxCols int) *Service {
	if maxCols <= 0 {
		maxCols = defaultMaxCols
	}
	return &Service{lib: lib, rng: rng, maxCols: maxCols}
}

// Pick returns a passage at the level, any level when level is 0.
func (s *Service) Pick(level int) (PassageView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pool []content.Passage
	for _, p := range s.lib.Passages {
		if level == 0 || p.Level == level {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return PassageView{}, ErrNoPassages
	}

	p := pool[s.rng.Intn(len(pool))]
	return PassageView{
		ID:    p.ID,
		Level: p.Level,
		Text:  p.Text,
		Rows:  LayoutRows(p.Text, s.maxCols),
	}, nil
}

// AttemptResult reports one read-aloud attempt. Heard echoes the
// normalized transcript so the client can highlight what differed.
type AttemptResult struct {
	Correct   bool   `json:"correct"`
	PassageID string `json:"passage_id"`
	Level     int    `json:"level"`
	Heard     string `json:"heard"`
}

// CheckTranscript compares the transcript with the passage after both
// sides are normalized. An empty transcript is never correct.
func (s *Service) CheckTranscript(passageID, transcript string) (AttemptResult, error) {
	p, ok := s.lib.PassageByID(passageID)
	if !ok {
		return AttemptResult{}, ErrUnknownPassage
	}

	heard := Normalize(transcript)
	return AttemptResult{
		Correct:   heard != "" && heard == Normalize(p.Text),
		PassageID: p.ID,
		Level:     p.Level,
		Heard:     heard,
	}, nil
}
