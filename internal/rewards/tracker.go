package rewards

import (
	"time"

	"github.com/on321go/wildkinCards/internal/cards"
)

// RewardInterval is how many correct answers earn one card token.
const RewardInterval = 15

// Phase describes where the reward loop currently sits. It is derived
// from the tracker, never stored.
type Phase string

const (
	PhaseNoTokens        Phase = "no_tokens"
	PhaseTokensAvailable Phase = "tokens_available"
	PhaseCardPending     Phase = "card_pending"
)

// TrackerState is everything the reward loop remembers between answers.
// PendingCard is a single slot, not a queue: at most one card sits here
// waiting for the reveal animation to finish.
type TrackerState struct {
	TotalCorrect  int         `json:"total_correct"`
	PendingTokens int         `json:"pending_tokens"`
	RewardEarned  bool        `json:"reward_earned"`
	PendingCard   *cards.Card `json:"pending_card,omitempty"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Phase derives the loop position. A pending card dominates: it must be
// committed before tokens can be spent again.
func (s TrackerState) Phase() Phase {
	switch {
	case s.PendingCard != nil:
		return PhaseCardPending
	case s.PendingTokens > 0:
		return PhaseTokensAvailable
	default:
		return PhaseNoTokens
	}
}

// clone deep-copies the state so repo callers cannot share the pending
// card through the pointer.
func (s TrackerState) clone() TrackerState {
	out := s
	if s.PendingCard != nil {
		c := *s.PendingCard
		out.PendingCard = &c
	}
	return out
}
