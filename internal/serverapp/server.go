package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/on321go/wildkinCards/internal/cards"
	"github.com/on321go/wildkinCards/internal/collection"
	"github.com/on321go/wildkinCards/internal/config"
	"github.com/on321go/wildkinCards/internal/content"
	"github.com/on321go/wildkinCards/internal/gateway"
	"github.com/on321go/wildkinCards/internal/history"
	"github.com/on321go/wildkinCards/internal/httpmw"
	"github.com/on321go/wildkinCards/internal/mathgame"
	"github.com/on321go/wildkinCards/internal/reading"
	"github.com/on321go/wildkinCards/internal/rewards"
	"github.com/on321go/wildkinCards/internal/server"
	"github.com/on321go/wildkinCards/internal/telemetry"
	staticfiles "github.com/on321go/wildkinCards/static"
	"github.com/on321go/wildkinCards/ui/page"
)

type Options struct {
	Config        *config.Config
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
}

// NewHandler assembles the whole app behind one http.Handler: content,
// storage per the configured mode, the reward engine, both games, and
// the pages the kids actually see.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	cfg := opts.Config
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	lib, err := loadLibrary(cfg)
	if err != nil {
		return nil, err
	}

	var (
		state rewards.StateRepository
		album collection.Repository
	)
	switch cfg.Storage.Mode {
	case config.ModeFile:
		state, err = rewards.NewFileStateRepo(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		album, err = collection.NewFileRepo(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
	default:
		state = rewards.NewMemoryStateRepo()
		album = collection.NewMemoryRepo()
	}

	tel := telemetry.NewMemoryRepository()
	hub := gateway.NewHub(opts.Logger)

	engine := &rewards.Engine{
		State:      state,
		Collection: album,
		Library:    lib,
		Generator:  cards.Generator{Library: lib, RNG: newRNG()},
		Clock:      rewards.RealClock{},
		Telemetry:  tel,
		Notifier:   hub,
	}

	var recorder history.Recorder = history.NopRecorder{}
	if !cfg.History.Disabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		recorder = store
	}

	app := &server.App{
		Engine:    engine,
		Math:      mathgame.NewService(cfg.Math.Levels, newRNG()),
		Reading:   reading.NewService(lib, newRNG(), cfg.Reading.MaxColumns),
		History:   recorder,
		Telemetry: tel,
		Hub:       hub,
	}

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "wildkin",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := state.Get(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "tracker storage unavailable",
			})
			return
		}
		if _, err := album.Count(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "album storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "wildkin",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, app)
	server.RegisterAdminUI(mux, rr, cfg.Server.Addr)

	mux.Handle("/", templ.Handler(page.HomePage()))
	mux.Handle("/album", templ.Handler(page.AlbumPage()))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

// loadLibrary prefers a content directory when one is configured, so
// creatures and passages can be edited without a rebuild.
func loadLibrary(cfg *config.Config) (*content.Library, error) {
	if dir := strings.TrimSpace(cfg.Content.Dir); dir != "" {
		return content.LoadDir(dir)
	}
	return content.Load()
}

// newRNG seeds a private source per consumer. *rand.Rand is not safe
// for concurrent use, so the engine and each game get their own.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("WILDKIN_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
