package telemetry

import "time"

type EventType string

const (
	EventAnswerCorrect EventType = "answer_correct"
	EventAnswerWrong   EventType = "answer_wrong"
	EventRewardEarned  EventType = "reward_earned"
	EventRewardAcked   EventType = "reward_acked"
	EventCardGenerated EventType = "card_generated"
	EventCardCommitted EventType = "card_committed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
