package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/on321go/wildkinCards/internal/gateway"
	"github.com/on321go/wildkinCards/internal/history"
	"github.com/on321go/wildkinCards/internal/mathgame"
	"github.com/on321go/wildkinCards/internal/reading"
	"github.com/on321go/wildkinCards/internal/rewards"
	"github.com/on321go/wildkinCards/internal/telemetry"
)

// App holds everything the handlers depend on.
// This makes it obvious what the API surface is built from.
type App struct {
	Engine    *rewards.Engine
	Math      *mathgame.Service
	Reading   *reading.Service
	History   history.Recorder
	Telemetry telemetry.Repository
	Hub       *gateway.Hub
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// recordAttempt writes one graded answer to durable history and the
// telemetry feed. Neither failing should fail the answer itself.
func recordAttempt(r *http.Request, app *App, a history.Attempt) {
	if app.History != nil {
		_ = app.History.RecordAttempt(r.Context(), a)
	}
	if app.Telemetry != nil {
		typ := telemetry.EventAnswerWrong
		if a.Correct {
			typ = telemetry.EventAnswerCorrect
		}
		_ = app.Telemetry.RecordEvent(typ, telemetry.EventMetadata{
			"game":        a.Game,
			"level":       a.Level,
			"ref_id":      a.RefID,
			"duration_ms": a.DurationMS,
		})
	}
}

// sinceParam reads ?since_days=N, falling back to the default window.
func sinceParam(r *http.Request, defaultDays int) time.Time {
	days := defaultDays
	if v := r.URL.Query().Get("since_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	return time.Now().AddDate(0, 0, -days)
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	engine := app.Engine
	mathSvc := app.Math
	readingSvc := app.Reading

	// Reward tracker
	Handle(mux, rr, "GET /api/state", "Reward tracker snapshot", "", func(w http.ResponseWriter, r *http.Request) {
		snap, err := engine.Snapshot(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, snap)
	})

	Handle(mux, rr, "POST /api/rewards/ack", "Acknowledge the reward banner", `{}`, func(w http.ResponseWriter, r *http.Request) {
		res, err := engine.AcknowledgeReward(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, res)
	})

	// Cards
	Handle(mux, rr, "POST /api/cards/generate", "Spend a token and mint the pending card", `{}`, func(w http.ResponseWriter, r *http.Request) {
		res, err := engine.GenerateCard(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, res)
	})

	Handle(mux, rr, "POST /api/cards/commit", "Move the pending card into the album", `{}`, func(w http.ResponseWriter, r *http.Request) {
		res, err := engine.CommitPendingCard(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, res)
	})

	Handle(mux, rr, "GET /api/collection", "List the album, oldest card first", "", func(w http.ResponseWriter, r *http.Request) {
		cs, err := engine.Collection.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, cs)
	})

	// Math drill
	Handle(mux, rr, "GET /api/math/levels", "List math levels", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, mathSvc.Levels())
	})

	Handle(mux, rr, "GET /api/math/problem", "Roll a math problem", "", func(w http.ResponseWriter, r *http.Request) {
		level := 1
		if v := r.URL.Query().Get("level"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "level must be a number", 400)
				return
			}
			level = n
		}

		p, err := mathSvc.NewProblem(level)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, p)
	})

	Handle(mux, rr, "POST /api/math/answer", "Grade a math answer", `{"problem_id":"p_...","answer":12,"duration_ms":5200}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProblemID  string `json:"problem_id"`
			Answer     int    `json:"answer"`
			DurationMS int64  `json:"duration_ms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.ProblemID == "" {
			http.Error(w, "problem_id is required", 400)
			return
		}

		res, err := mathSvc.Grade(body.ProblemID, body.Answer)
		if err != nil {
			if errors.Is(err, mathgame.ErrProblemNotFound) {
				http.Error(w, "problem not found", 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}

		recordAttempt(r, app, history.Attempt{
			Game:       history.GameMath,
			RefID:      res.ProblemID,
			Level:      res.Level,
			Correct:    res.Correct,
			DurationMS: body.DurationMS,
		})

		out := map[string]any{
			"correct":    res.Correct,
			"level":      res.Level,
			"problem_id": res.ProblemID,
		}
		if res.Correct {
			rec, err := engine.RecordCorrectAnswer(r.Context())
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			out["reward"] = rec
		}
		writeJSON(w, out)
	})

	// Reading practice
	Handle(mux, rr, "GET /api/reading/passage", "Pick a reading passage", "", func(w http.ResponseWriter, r *http.Request) {
		level := 0 // any
		if v := r.URL.Query().Get("level"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "level must be a number", 400)
				return
			}
			level = n
		}

		p, err := readingSvc.Pick(level)
		if err != nil {
			if errors.Is(err, reading.ErrNoPassages) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, p)
	})

	Handle(mux, rr, "POST /api/reading/attempt", "Check a read-aloud transcript", `{"passage_id":"ps_fox_sun","transcript":"the fox naps in the warm sun","duration_ms":9000}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PassageID  string `json:"passage_id"`
			Transcript string `json:"transcript"`
			DurationMS int64  `json:"duration_ms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.PassageID == "" {
			http.Error(w, "passage_id is required", 400)
			return
		}

		res, err := readingSvc.CheckTranscript(body.PassageID, body.Transcript)
		if err != nil {
			if errors.Is(err, reading.ErrUnknownPassage) {
				http.Error(w, "passage not found", 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}

		recordAttempt(r, app, history.Attempt{
			Game:       history.GameReading,
			RefID:      res.PassageID,
			Level:      res.Level,
			Correct:    res.Correct,
			DurationMS: body.DurationMS,
		})

		out := map[string]any{
			"correct":    res.Correct,
			"level":      res.Level,
			"passage_id": res.PassageID,
			"heard":      res.Heard,
		}
		if res.Correct {
			rec, err := engine.RecordCorrectAnswer(r.Context())
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			out["reward"] = rec
		}
		writeJSON(w, out)
	})

	// Content
	Handle(mux, rr, "GET /api/content/creatures", "List the creature pool", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Library.Creatures)
	})

	Handle(mux, rr, "GET /api/content/abilities", "List the ability pools", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"innate": engine.Library.Innate,
			"switch": engine.Library.Switch,
		})
	})

	// Progress for parents
	Handle(mux, rr, "GET /api/history/summary", "Per-game practice summary", "", func(w http.ResponseWriter, r *http.Request) {
		if app.History == nil {
			writeJSON(w, []history.Summary{})
			return
		}
		sums, err := app.History.Summaries(r.Context(), sinceParam(r, 7))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if sums == nil {
			sums = []history.Summary{}
		}
		writeJSON(w, sums)
	})

	Handle(mux, rr, "GET /api/telemetry/stats", "Practice stats from the event feed", "", func(w http.ResponseWriter, r *http.Request) {
		since := sinceParam(r, 7)
		events, err := app.Telemetry.GetEvents(since, nil)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, stats)
	})

	// Live updates
	if app.Hub != nil {
		Handle(mux, rr, "GET /api/events", "Live updates over websocket", "", app.Hub.HandleWS)
	}
}
