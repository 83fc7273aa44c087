package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period         string            `json:"period"`
	EventCounts    map[EventType]int `json:"event_counts"`
	AnswersCorrect int               `json:"answers_correct"`
	AnswersWrong   int               `json:"answers_wrong"`
	Accuracy       float64           `json:"accuracy"`
	CorrectByGame  map[string]int    `json:"correct_by_game"`
	RewardsEarned  int               `json:"rewards_earned"`
	CardsGenerated int               `json:"cards_generated"`
	CardsCommitted int               `json:"cards_committed"`
	CardsByRarity  map[string]int    `json:"cards_by_rarity"`
}

// CalculateStats computes practice stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:        since.Format("2006-01-02"),
		EventCounts:   make(map[EventType]int),
		CorrectByGame: make(map[string]int),
		CardsByRarity: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventAnswerCorrect:
			stats.AnswersCorrect++
			if game, ok := metadata["game"].(string); ok {
				stats.CorrectByGame[game]++
			}
		case EventAnswerWrong:
			stats.AnswersWrong++
		case EventRewardEarned:
			stats.RewardsEarned++
		case EventCardGenerated:
			stats.CardsGenerated++
			if rarity, ok := metadata["rarity"].(string); ok {
				stats.CardsByRarity[rarity]++
			}
		case EventCardCommitted:
			stats.CardsCommitted++
		}
	}

	if total := stats.AnswersCorrect + stats.AnswersWrong; total > 0 {
		stats.Accuracy = float64(stats.AnswersCorrect) / float64(total)
	}

	return stats, nil
}
