package mathgame

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// RNG is the randomness the service consumes. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

var (
	ErrUnknownLevel    = errors.New("mathgame: unknown level")
	ErrProblemNotFound = errors.New("mathgame: problem not open")
)

// maxOpen bounds how many issued problems can wait for an answer at
// once. Oldest fall off first; a kid only ever has one on screen.
const maxOpen = 128

// Service issues problems and grades answers. Grading is exact
// arithmetic equality.
type Service struct {
	mu     sync.Mutex
	levels map[int]Level
	rng    RNG
	open   map[string]Problem
	order  []string
}

func NewService(levels []Level, rng RNG) *Service {
	if len(levels) == 0 {
		levels = DefaultLevels()
	}
	byLevel := make(map[int]Level, len(levels))
	for _, l := range levels {
		byLevel[l.Level] = l
	}
	return &Service{
		levels: byLevel,
		rng:    rng,
		open:   make(map[string]Problem),
	}
}

// Levels lists the configured tiers, lowest first.
func (s *Service) Levels() []Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Level, 0, len(s.levels))
	for _, l := range s.levels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// NewProblem rolls a fresh question at the given level and keeps it
// open until answered correctly.
func (s *Service) NewProblem(level int) (Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lv, ok := s.levels[level]
	if !ok {
		return Problem{}, ErrUnknownLevel
	}

	p := s.roll(lv)
	s.open[p.ID] = p
	s.order = append(s.order, p.ID)
	if len(s.order) > maxOpen {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.open, oldest)
	}
	return p, nil
}

func (s *Service) roll(lv Level) Problem {
	op := lv.Operators[s.rng.Intn(len(lv.Operators))]
	left := s.rng.Intn(lv.MaxOperand + 1)
	right := s.rng.Intn(lv.MaxOperand + 1)

	var answer int
	switch op {
	case "-":
		// No negative results at this age.
		if right > left {
			left, right = right, left
		}
		answer = left - right
	case "*":
		answer = left * right
	default:
		op = "+"
		answer = left + right
	}

	return Problem{
		ID:       uuid.NewString(),
		Level:    lv.Level,
		Left:     left,
		Right:    right,
		Operator: op,
		Prompt:   fmt.Sprintf("%d %s %d", left, op, right),
		answer:   answer,
	}
}

// GradeResult reports one answer attempt.
type GradeResult struct {
	Correct   bool   `json:"correct"`
	Level     int    `json:"level"`
	ProblemID string `json:"problem_id"`
}

// Grade checks a submitted answer. A correct answer closes the problem
// so it cannot be farmed; a wrong one leaves it open for another try.
func (s *Service) Grade(problemID string, answer int) (GradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.open[problemID]
	if !ok {
		return GradeResult{}, ErrProblemNotFound
	}

	correct := answer == p.answer
	if correct {
		delete(s.open, problemID)
	}
	return GradeResult{Correct: correct, Level: p.Level, ProblemID: p.ID}, nil
}
