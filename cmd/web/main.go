package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckclash/internal/content"
	"github.com/peterkuimelis/deckclash/internal/game"
	"github.com/peterkuimelis/deckclash/internal/session"
	"github.com/peterkuimelis/deckclash/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	contentDir := flag.String("content", "", "directory with cards/passives/opponents/starters YAML (default: bundled)")
	seed := flag.Int64("seed", 0, "base RNG seed (0 = random)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cat *game.Catalog
	if *contentDir == "" {
		cat, err = content.Default()
	} else {
		cat, err = content.LoadDir(*contentDir)
	}
	if err != nil {
		logger.Fatal("load content", zap.Error(err))
	}

	mgr := session.NewManager(cat, session.Config{Seed: *seed, Logger: logger})
	srv := web.NewServer(mgr, logger)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("deckclash web UI listening", zap.String("url", fmt.Sprintf("http://localhost:%d", *port)))
	if err := srv.ListenAndServe(addr); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}
