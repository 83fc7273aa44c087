package mathgame

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewProblemUnknownLevel(t *testing.T) {
	s := NewService(nil, rand.New(rand.NewSource(1)))
	if _, err := s.NewProblem(9); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("err = %v, want ErrUnknownLevel", err)
	}
}

func TestProblemsStayInBounds(t *testing.T) {
	s := NewService(nil, rand.New(rand.NewSource(42)))

	for _, lv := range DefaultLevels() {
		for i := 0; i < 300; i++ {
			p, err := s.NewProblem(lv.Level)
			if err != nil {
				t.Fatalf("NewProblem(%d): %v", lv.Level, err)
			}
			if p.Left < 0 || p.Left > lv.MaxOperand || p.Right < 0 || p.Right > lv.MaxOperand {
				t.Fatalf("operands out of range for level %d: %+v", lv.Level, p)
			}
			if p.answer < 0 {
				t.Fatalf("negative answer for %q", p.Prompt)
			}
			found := false
			for _, op := range lv.Operators {
				if op == p.Operator {
					found = true
				}
			}
			if !found {
				t.Fatalf("operator %q not allowed at level %d", p.Operator, lv.Level)
			}
		}
	}
}

func TestGradeExactEquality(t *testing.T) {
	s := NewService(nil, rand.New(rand.NewSource(7)))
	p, err := s.NewProblem(1)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}

	wrong, err := s.Grade(p.ID, p.answer+1)
	if err != nil {
		t.Fatalf("Grade wrong: %v", err)
	}
	if wrong.Correct {
		t.Fatal("off-by-one graded correct")
	}

	// A wrong answer leaves the problem open for another try.
	right, err := s.Grade(p.ID, p.answer)
	if err != nil {
		t.Fatalf("Grade retry: %v", err)
	}
	if !right.Correct {
		t.Fatal("exact answer graded wrong")
	}
	if right.Level != 1 || right.ProblemID != p.ID {
		t.Fatalf("result metadata mismatch: %+v", right)
	}

	// Correct answers close the problem; it cannot be farmed.
	if _, err := s.Grade(p.ID, p.answer); !errors.Is(err, ErrProblemNotFound) {
		t.Fatalf("err after close = %v, want ErrProblemNotFound", err)
	}
}

func TestOpenProblemsEvictOldest(t *testing.T) {
	s := NewService(nil, rand.New(rand.NewSource(3)))

	first, err := s.NewProblem(1)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	var last Problem
	for i := 0; i < maxOpen; i++ {
		last, err = s.NewProblem(1)
		if err != nil {
			t.Fatalf("NewProblem: %v", err)
		}
	}

	if _, err := s.Grade(first.ID, first.answer); !errors.Is(err, ErrProblemNotFound) {
		t.Fatalf("oldest problem should have been evicted, got %v", err)
	}
	if res, err := s.Grade(last.ID, last.answer); err != nil || !res.Correct {
		t.Fatalf("latest problem should still grade: %v %+v", err, res)
	}
}

func TestMultiplicationLevel(t *testing.T) {
	levels := []Level{{Level: 3, Operators: []string{"*"}, MaxOperand: 12}}
	s := NewService(levels, rand.New(rand.NewSource(11)))

	p, err := s.NewProblem(3)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	if p.Operator != "*" {
		t.Fatalf("operator = %q, want *", p.Operator)
	}
	res, err := s.Grade(p.ID, p.Left*p.Right)
	if err != nil || !res.Correct {
		t.Fatalf("product graded wrong: %v %+v", err, res)
	}
}
