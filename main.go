package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/on321go/wildkinCards/internal/cards"
	"github.com/on321go/wildkinCards/internal/collection"
	"github.com/on321go/wildkinCards/internal/content"
	"github.com/on321go/wildkinCards/internal/gateway"
	"github.com/on321go/wildkinCards/internal/history"
	"github.com/on321go/wildkinCards/internal/mathgame"
	"github.com/on321go/wildkinCards/internal/reading"
	"github.com/on321go/wildkinCards/internal/rewards"
	"github.com/on321go/wildkinCards/internal/server"
	"github.com/on321go/wildkinCards/internal/telemetry"
	staticfiles "github.com/on321go/wildkinCards/static"
	"github.com/on321go/wildkinCards/ui/page"
)

// Dev harness: everything in memory, pre-seeded so the reward loop is
// one correct answer away from firing. The real entrypoint with config
// and persistence is cmd/server.
const PORT = "8484"

func main() {
	ctx := context.Background()

	app, err := SeedDemo(ctx)
	if err != nil {
		log.Fatal(err)
	}

	mux := http.NewServeMux()

	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, app)
	server.RegisterAdminUI(mux, rr, ":"+PORT)

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticfiles.EmbeddedFS()))))
	mux.Handle("/", templ.Handler(page.HomePage()))
	mux.Handle("/album", templ.Handler(page.AlbumPage()))

	addr := ":" + PORT
	fmt.Printf("wildkin demo listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// SeedDemo walks a fresh engine through two full reward rounds and
// stops fourteen answers into the third, so the album has cards in it
// and the very next correct answer earns a token.
func SeedDemo(ctx context.Context) (*server.App, error) {
	lib, err := content.Load()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	hub := gateway.NewHub(log.Default())
	tel := telemetry.NewMemoryRepository()

	engine := &rewards.Engine{
		State:      rewards.NewMemoryStateRepo(),
		Collection: collection.NewMemoryRepo(),
		Library:    lib,
		Generator:  cards.Generator{Library: lib, RNG: rng},
		Clock:      rewards.RealClock{},
		Telemetry:  tel,
		Notifier:   hub,
	}

	for round := 0; round < 2; round++ {
		for i := 0; i < rewards.RewardInterval; i++ {
			if _, err := engine.RecordCorrectAnswer(ctx); err != nil {
				return nil, err
			}
		}
		if _, err := engine.GenerateCard(ctx); err != nil {
			return nil, err
		}
		res, err := engine.CommitPendingCard(ctx)
		if err != nil {
			return nil, err
		}
		if res.Card != nil {
			fmt.Printf("seeded %s %s into the album\n", res.Card.Rarity, res.Card.Name)
		}
		if _, err := engine.AcknowledgeReward(ctx); err != nil {
			return nil, err
		}
	}
	for i := 0; i < rewards.RewardInterval-1; i++ {
		if _, err := engine.RecordCorrectAnswer(ctx); err != nil {
			return nil, err
		}
	}

	return &server.App{
		Engine:    engine,
		Math:      mathgame.NewService(nil, rand.New(rand.NewSource(time.Now().UnixNano()))),
		Reading:   reading.NewService(lib, rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		History:   history.NopRecorder{},
		Telemetry: tel,
		Hub:       hub,
	}, nil
}
