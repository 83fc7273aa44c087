package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"

	"github.com/on321go/wildkinCards/internal/config"
	"github.com/on321go/wildkinCards/internal/serverapp"
)

func main() {
	configPath := flag.String("config", "", "path to a wildkin.yml config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dataDir := flag.String("data-dir", "", "data directory (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if err := config.ParseEnv(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dataDir != "" {
		// The flag moves everything, the history database included.
		cfg.Storage.DataDir = *dataDir
		cfg.History.Path = filepath.Join(*dataDir, "history.db")
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		StaticDir:     "static",
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
