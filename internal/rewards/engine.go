package rewards

import (
	"context"
	"sync"
	"time"

	"github.com/on321go/wildkinCards/internal/cards"
	"github.com/on321go/wildkinCards/internal/collection"
	"github.com/on321go/wildkinCards/internal/content"
	"github.com/on321go/wildkinCards/internal/telemetry"
)

// Notifier pushes reward moments to connected screens. A nil Notifier
// drops them.
type Notifier interface {
	Publish(event string, payload map[string]any)
}

// Engine runs the reward loop: correct answers earn tokens, tokens mint
// cards, cards land in the collection. One kid, one session; the lock
// makes each operation run to completion before the next starts, which
// is what keeps generate-while-pending a clean refusal instead of a
// race. Construct by pointer and share.
type Engine struct {
	State      StateRepository
	Collection collection.Repository
	Library    *content.Library
	Generator  cards.Generator
	Clock      Clock
	Telemetry  telemetry.Repository
	Notifier   Notifier

	mu sync.Mutex
}

// RecordResult reports the tracker after one correct answer. EarnedNow
// is true only on the answer that crossed a reward boundary; the
// RewardEarned flag stays up until acknowledged.
type RecordResult struct {
	TotalCorrect  int  `json:"total_correct"`
	PendingTokens int  `json:"pending_tokens"`
	EarnedNow     bool `json:"earned_now"`
	RewardEarned  bool `json:"reward_earned"`
}

// RecordCorrectAnswer bumps the lifetime counter and, on every
// RewardInterval-th answer, grants a token. Wrong answers never come
// through here.
func (e *Engine) RecordCorrectAnswer(ctx context.Context) (RecordResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.State.Get(ctx)
	if err != nil {
		return RecordResult{}, err
	}

	s.TotalCorrect++
	earned := s.TotalCorrect%RewardInterval == 0
	if earned {
		s.PendingTokens++
		s.RewardEarned = true
	}
	s.UpdatedAt = e.now()
	if err := e.State.Set(ctx, s); err != nil {
		return RecordResult{}, err
	}

	if earned {
		e.record(telemetry.EventRewardEarned, telemetry.EventMetadata{
			"total_correct":  s.TotalCorrect,
			"pending_tokens": s.PendingTokens,
		})
		e.publish("reward_earned", map[string]any{
			"total_correct":  s.TotalCorrect,
			"pending_tokens": s.PendingTokens,
		})
	}

	return RecordResult{
		TotalCorrect:  s.TotalCorrect,
		PendingTokens: s.PendingTokens,
		EarnedNow:     earned,
		RewardEarned:  s.RewardEarned,
	}, nil
}

// GenerateResult reports whether a card was minted. Generated false is
// not an error: pressing the button with nothing to spend does nothing.
type GenerateResult struct {
	Generated     bool        `json:"generated"`
	Card          *cards.Card `json:"card,omitempty"`
	PendingTokens int         `json:"pending_tokens"`
}

// GenerateCard spends one token and mints a card into the pending slot.
// It refuses silently while a card is pending, when no tokens are
// banked, or when there is nothing to mint from.
func (e *Engine) GenerateCard(ctx context.Context) (GenerateResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.State.Get(ctx)
	if err != nil {
		return GenerateResult{}, err
	}

	if s.PendingCard != nil || s.PendingTokens == 0 || e.Library == nil || len(e.Library.Creatures) == 0 {
		return GenerateResult{PendingTokens: s.PendingTokens}, nil
	}

	card, err := e.Generator.Mint(e.now())
	if err != nil {
		return GenerateResult{}, err
	}

	s.PendingTokens--
	s.PendingCard = &card
	s.UpdatedAt = e.now()
	if err := e.State.Set(ctx, s); err != nil {
		return GenerateResult{}, err
	}

	e.record(telemetry.EventCardGenerated, telemetry.EventMetadata{
		"card_id":     card.ID,
		"creature_id": card.CreatureID,
		"rarity":      string(card.Rarity),
	})
	e.publish("card_generated", map[string]any{
		"card":           card,
		"pending_tokens": s.PendingTokens,
	})

	return GenerateResult{Generated: true, Card: &card, PendingTokens: s.PendingTokens}, nil
}

// CommitResult reports a commit. Committed false means the slot was
// already empty.
type CommitResult struct {
	Committed      bool        `json:"committed"`
	Card           *cards.Card `json:"card,omitempty"`
	CollectionSize int         `json:"collection_size"`
}

// CommitPendingCard moves the pending card to the end of the
// collection. The client calls this after the reveal animation; calling
// it with an empty slot is a no-op.
func (e *Engine) CommitPendingCard(ctx context.Context) (CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.State.Get(ctx)
	if err != nil {
		return CommitResult{}, err
	}
	n, err := e.Collection.Count(ctx)
	if err != nil {
		return CommitResult{}, err
	}
	if s.PendingCard == nil {
		return CommitResult{CollectionSize: n}, nil
	}

	card := *s.PendingCard
	if err := e.Collection.Append(ctx, card); err != nil {
		return CommitResult{}, err
	}
	s.PendingCard = nil
	s.UpdatedAt = e.now()
	if err := e.State.Set(ctx, s); err != nil {
		return CommitResult{}, err
	}

	e.record(telemetry.EventCardCommitted, telemetry.EventMetadata{
		"card_id": card.ID,
		"rarity":  string(card.Rarity),
	})
	e.publish("card_committed", map[string]any{
		"card":            card,
		"collection_size": n + 1,
	})

	return CommitResult{Committed: true, Card: &card, CollectionSize: n + 1}, nil
}

// AckResult is the flag state after acknowledging, always lowered.
type AckResult struct {
	RewardEarned bool `json:"reward_earned"`
}

// AcknowledgeReward lowers the one-shot reward flag once the client has
// shown the celebration.
func (e *Engine) AcknowledgeReward(ctx context.Context) (AckResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.State.Get(ctx)
	if err != nil {
		return AckResult{}, err
	}
	if !s.RewardEarned {
		return AckResult{}, nil
	}

	s.RewardEarned = false
	s.UpdatedAt = e.now()
	if err := e.State.Set(ctx, s); err != nil {
		return AckResult{}, err
	}
	e.record(telemetry.EventRewardAcked, telemetry.EventMetadata{
		"total_correct": s.TotalCorrect,
	})
	return AckResult{}, nil
}

// StateSnapshot is the full view a client needs to render the reward
// area.
type StateSnapshot struct {
	TotalCorrect   int         `json:"total_correct"`
	PendingTokens  int         `json:"pending_tokens"`
	RewardEarned   bool        `json:"reward_earned"`
	PendingCard    *cards.Card `json:"pending_card,omitempty"`
	Phase          Phase       `json:"phase"`
	CollectionSize int         `json:"collection_size"`
}

// Snapshot reads the tracker and collection size in one consistent
// view.
func (e *Engine) Snapshot(ctx context.Context) (StateSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.State.Get(ctx)
	if err != nil {
		return StateSnapshot{}, err
	}
	n, err := e.Collection.Count(ctx)
	if err != nil {
		return StateSnapshot{}, err
	}
	return StateSnapshot{
		TotalCorrect:   s.TotalCorrect,
		PendingTokens:  s.PendingTokens,
		RewardEarned:   s.RewardEarned,
		PendingCard:    s.PendingCard,
		Phase:          s.Phase(),
		CollectionSize: n,
	}, nil
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e *Engine) record(typ telemetry.EventType, meta telemetry.EventMetadata) {
	if e.Telemetry == nil {
		return
	}
	_ = e.Telemetry.RecordEvent(typ, meta)
}

func (e *Engine) publish(event string, payload map[string]any) {
	if e.Notifier == nil {
		return
	}
	e.Notifier.Publish(event, payload)
}
