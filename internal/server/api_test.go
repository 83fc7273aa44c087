package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/on321go/wildkinCards/internal/cards"
	"github.com/on321go/wildkinCards/internal/collection"
	"github.com/on321go/wildkinCards/internal/content"
	"github.com/on321go/wildkinCards/internal/history"
	"github.com/on321go/wildkinCards/internal/mathgame"
	"github.com/on321go/wildkinCards/internal/reading"
	"github.com/on321go/wildkinCards/internal/rewards"
	"github.com/on321go/wildkinCards/internal/telemetry"
)

func newTestApp(t *testing.T) (*App, *http.ServeMux, *RouteRegistry) {
	t.Helper()

	lib, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}

	tel := telemetry.NewMemoryRepository()
	engine := &rewards.Engine{
		State:      rewards.NewMemoryStateRepo(),
		Collection: collection.NewMemoryRepo(),
		Library:    lib,
		Generator:  cards.Generator{Library: lib, RNG: rand.New(rand.NewSource(1))},
		Clock:      rewards.NewFakeClock(time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC)),
		Telemetry:  tel,
	}

	app := &App{
		Engine:    engine,
		Math:      mathgame.NewService(nil, rand.New(rand.NewSource(2))),
		Reading:   reading.NewService(lib, rand.New(rand.NewSource(3)), 0),
		History:   history.NopRecorder{},
		Telemetry: tel,
	}

	mux := http.NewServeMux()
	rr := &RouteRegistry{}
	RegisterAPIRoutes(mux, rr, app)
	return app, mux, rr
}

func do(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

// answerOneProblem fetches a fresh problem, solves it, and posts the
// answer. It returns the decoded response.
func answerOneProblem(t *testing.T, mux *http.ServeMux) map[string]any {
	t.Helper()

	rec := do(t, mux, "GET", "/api/math/problem?level=1", "")
	if rec.Code != 200 {
		t.Fatalf("problem status = %d, body %s", rec.Code, rec.Body.String())
	}
	var p mathgame.Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}

	answer := p.Left + p.Right
	if p.Operator == "-" {
		answer = p.Left - p.Right
	}

	body, _ := json.Marshal(map[string]any{
		"problem_id":  p.ID,
		"answer":      answer,
		"duration_ms": 4200,
	})
	rec = do(t, mux, "POST", "/api/math/answer", string(body))
	if rec.Code != 200 {
		t.Fatalf("answer status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decodeMap(t, rec)
}

func TestStateEndpoint(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, "GET", "/api/state", "")
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	snap := decodeMap(t, rec)
	if snap["phase"] != "no_tokens" {
		t.Fatalf("phase = %v, want no_tokens", snap["phase"])
	}
	if snap["total_correct"] != float64(0) {
		t.Fatalf("total_correct = %v, want 0", snap["total_correct"])
	}
}

func TestMathAnswerGradesCorrectly(t *testing.T) {
	_, mux, _ := newTestApp(t)

	out := answerOneProblem(t, mux)
	if out["correct"] != true {
		t.Fatalf("correct = %v, want true", out["correct"])
	}
	reward, ok := out["reward"].(map[string]any)
	if !ok {
		t.Fatalf("correct answer carried no tracker update: %v", out)
	}
	if reward["earned_now"] != false {
		t.Fatalf("earned_now = %v on the first answer, want false", reward["earned_now"])
	}
	if reward["total_correct"] != float64(1) {
		t.Fatalf("total_correct = %v, want 1", reward["total_correct"])
	}
}

func TestMathAnswerWrong(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, "GET", "/api/math/problem?level=1", "")
	var p mathgame.Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}

	// No level-1 sum or difference of operands up to 10 reaches 999.
	body, _ := json.Marshal(map[string]any{"problem_id": p.ID, "answer": 999})
	rec = do(t, mux, "POST", "/api/math/answer", string(body))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	out := decodeMap(t, rec)
	if out["correct"] != false {
		t.Fatalf("correct = %v, want false", out["correct"])
	}

	snap := decodeMap(t, do(t, mux, "GET", "/api/state", ""))
	if snap["total_correct"] != float64(0) {
		t.Fatalf("wrong answers must not advance the counter: %v", snap["total_correct"])
	}
}

func TestMathAnswerUnknownProblem(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, "POST", "/api/math/answer", `{"problem_id":"nope","answer":1}`)
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestFifteenAnswersEarnAndMintAndCommit(t *testing.T) {
	_, mux, _ := newTestApp(t)

	var last map[string]any
	for i := 0; i < 15; i++ {
		last = answerOneProblem(t, mux)
	}

	reward, ok := last["reward"].(map[string]any)
	if !ok {
		t.Fatalf("15th answer carried no reward: %v", last)
	}
	if reward["earned_now"] != true {
		t.Fatalf("earned_now = %v, want true", reward["earned_now"])
	}
	if reward["pending_tokens"] != float64(1) {
		t.Fatalf("pending_tokens = %v, want 1", reward["pending_tokens"])
	}

	gen := decodeMap(t, do(t, mux, "POST", "/api/cards/generate", "{}"))
	if gen["generated"] != true {
		t.Fatalf("generated = %v, want true", gen["generated"])
	}
	if gen["card"] == nil {
		t.Fatalf("generate returned no card: %v", gen)
	}

	com := decodeMap(t, do(t, mux, "POST", "/api/cards/commit", "{}"))
	if com["committed"] != true {
		t.Fatalf("committed = %v, want true", com["committed"])
	}

	rec := do(t, mux, "GET", "/api/collection", "")
	var album []cards.Card
	if err := json.Unmarshal(rec.Body.Bytes(), &album); err != nil {
		t.Fatalf("decode collection: %v", err)
	}
	if len(album) != 1 {
		t.Fatalf("collection size = %d, want 1", len(album))
	}

	ack := do(t, mux, "POST", "/api/rewards/ack", "{}")
	if ack.Code != 200 {
		t.Fatalf("ack status = %d", ack.Code)
	}
	snap := decodeMap(t, do(t, mux, "GET", "/api/state", ""))
	if snap["reward_earned"] != false {
		t.Fatalf("reward_earned = %v after ack, want false", snap["reward_earned"])
	}
}

func TestGenerateWithNothingBanked(t *testing.T) {
	_, mux, _ := newTestApp(t)

	gen := decodeMap(t, do(t, mux, "POST", "/api/cards/generate", "{}"))
	if gen["generated"] != false {
		t.Fatalf("generated = %v, want false", gen["generated"])
	}
}

func TestReadingAttemptFlow(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, "GET", "/api/reading/passage", "")
	if rec.Code != 200 {
		t.Fatalf("passage status = %d", rec.Code)
	}
	var p reading.PassageView
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode passage: %v", err)
	}
	if len(p.Rows) == 0 {
		t.Fatalf("passage has no rows: %+v", p)
	}

	body, _ := json.Marshal(map[string]any{
		"passage_id": p.ID,
		"transcript": p.Text,
	})
	out := decodeMap(t, do(t, mux, "POST", "/api/reading/attempt", string(body)))
	if out["correct"] != true {
		t.Fatalf("reading the passage verbatim should pass: %v", out)
	}

	body, _ = json.Marshal(map[string]any{
		"passage_id": p.ID,
		"transcript": "completely different words",
	})
	out = decodeMap(t, do(t, mux, "POST", "/api/reading/attempt", string(body)))
	if out["correct"] != false {
		t.Fatalf("garbled transcript should fail: %v", out)
	}
}

func TestReadingUnknownPassage(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, "POST", "/api/reading/attempt", `{"passage_id":"ps_nope","transcript":"hi"}`)
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestContentEndpoints(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, "GET", "/api/content/creatures", "")
	var creatures []content.Creature
	if err := json.Unmarshal(rec.Body.Bytes(), &creatures); err != nil {
		t.Fatalf("decode creatures: %v", err)
	}
	if len(creatures) == 0 {
		t.Fatal("no creatures returned")
	}

	abilities := decodeMap(t, do(t, mux, "GET", "/api/content/abilities", ""))
	if abilities["innate"] == nil || abilities["switch"] == nil {
		t.Fatalf("ability pools missing: %v", abilities)
	}
}

func TestTelemetryStatsCountAnswers(t *testing.T) {
	_, mux, _ := newTestApp(t)

	answerOneProblem(t, mux)
	answerOneProblem(t, mux)

	stats := decodeMap(t, do(t, mux, "GET", "/api/telemetry/stats", ""))
	if stats["answers_correct"] != float64(2) {
		t.Fatalf("answers_correct = %v, want 2", stats["answers_correct"])
	}
}

func TestHistorySummaryEmpty(t *testing.T) {
	_, mux, _ := newTestApp(t)

	rec := do(t, mux, "GET", "/api/history/summary", "")
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestRouteRegistryListsEverything(t *testing.T) {
	_, _, rr := newTestApp(t)

	patterns := make(map[string]bool)
	for _, d := range rr.List() {
		patterns[d.Method+" "+d.Pattern] = true
	}
	for _, want := range []string{
		"GET /api/state",
		"POST /api/cards/generate",
		"POST /api/cards/commit",
		"POST /api/rewards/ack",
		"GET /api/collection",
		"POST /api/math/answer",
		"POST /api/reading/attempt",
	} {
		if !patterns[want] {
			t.Fatalf("route %q not registered; have %v", want, patterns)
		}
	}
}

func TestAdminUI(t *testing.T) {
	_, mux, rr := newTestApp(t)
	RegisterAdminUI(mux, rr, ":8414")

	rec := do(t, mux, "GET", "/_/admin/routes.json", "")
	if rec.Code != 200 {
		t.Fatalf("routes.json status = %d", rec.Code)
	}
	var docs []RouteDoc
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatalf("decode routes.json: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("routes.json is empty")
	}

	rec = do(t, mux, "GET", "/_/admin", "")
	if rec.Code != 200 {
		t.Fatalf("admin page status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "wildkin") {
		t.Fatal("admin page does not render")
	}
}
