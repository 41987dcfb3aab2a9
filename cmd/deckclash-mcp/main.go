package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckclash/internal/content"
	"github.com/peterkuimelis/deckclash/internal/game"
	dcmcp "github.com/peterkuimelis/deckclash/internal/mcp"
	"github.com/peterkuimelis/deckclash/internal/session"
)

func main() {
	contentDir := flag.String("content", "", "directory with cards/passives/opponents/starters YAML (default: bundled)")
	seed := flag.Int64("seed", 0, "base RNG seed (0 = random)")
	flag.Parse()

	// stdout carries the MCP stream; process logs go to stderr.
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
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
	s := server.NewMCPServer("deckclash", "1.0.0")
	dcmcp.RegisterTools(s, mgr)

	if err := server.ServeStdio(s); err != nil {
		logger.Error("serve stdio", zap.Error(err))
		os.Exit(1)
	}
}
