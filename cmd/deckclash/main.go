package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckclash/internal/content"
	"github.com/peterkuimelis/deckclash/internal/game"
	"github.com/peterkuimelis/deckclash/internal/log"
	dcnet "github.com/peterkuimelis/deckclash/internal/net"
	"github.com/peterkuimelis/deckclash/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  deckclash play  [--starter ID] [--difficulty D] [--seed N] [--content DIR] [--transcript FILE]")
	fmt.Println("  deckclash serve [--port P] [--seed N] [--content DIR] [--verbose]")
	fmt.Println("  deckclash join  [--addr ADDR] [--starter ID] [--difficulty D]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Battle an AI opponent in this terminal")
	fmt.Println("  serve   Host AI battles for remote terminal clients")
	fmt.Println("  join    Connect to a battle server")
}

// catalog loads the content tables from dir, or the bundled tables when dir
// is empty.
func catalog(dir string) (*game.Catalog, error) {
	if dir == "" {
		return content.Default()
	}
	cat, err := content.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load content from %s: %w", dir, err)
	}
	return cat, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	starter := fs.String("starter", "", "starter loadout id (prompted when empty)")
	difficulty := fs.String("difficulty", "Normal", "opponent difficulty: Easy, Normal, Hard or Boss")
	seed := fs.Int64("seed", 0, "RNG seed (0 = random)")
	contentDir := fs.String("content", "", "directory with cards/passives/opponents/starters YAML (default: bundled)")
	transcript := fs.String("transcript", "", "write every battle event to this file")
	fs.Parse(args)

	cat, err := catalog(*contentDir)
	if err != nil {
		return err
	}
	cfg := session.Config{Seed: *seed}
	if *transcript != "" {
		f, err := os.Create(*transcript)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		cfg.Events = func(string) log.EventLogger {
			return log.NewTextLogger(f)
		}
	}
	mgr := session.NewManager(cat, cfg)
	client := dcnet.NewClient(*starter, *difficulty, os.Stdin, os.Stdout)
	return dcnet.PlayLocal(ctx, mgr, zap.NewNop(), client)
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	seed := fs.Int64("seed", 0, "base RNG seed (0 = random)")
	contentDir := fs.String("content", "", "directory with cards/passives/opponents/starters YAML (default: bundled)")
	verbose := fs.Bool("verbose", false, "log every battle event at debug level")
	fs.Parse(args)

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := catalog(*contentDir)
	if err != nil {
		return err
	}
	logger.Info("content loaded",
		zap.Int("cards", len(cat.Cards())),
		zap.Int("opponents", len(cat.Opponents())),
		zap.Int("starters", len(cat.Starters())))

	cfg := session.Config{Seed: *seed, Logger: logger}
	if *verbose {
		cfg.Events = func(id string) log.EventLogger {
			return log.NewZapLogger(logger.With(zap.String("battle", id)))
		}
	}
	srv := &dcnet.Server{
		Manager: session.NewManager(cat, cfg),
		Port:    *port,
		Logger:  logger,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	starter := fs.String("starter", "", "starter loadout id (prompted when empty)")
	difficulty := fs.String("difficulty", "", "opponent difficulty (server default when empty)")
	fs.Parse(args)

	client := dcnet.NewClient(*starter, *difficulty, os.Stdin, os.Stdout)
	fmt.Printf("Connecting to %s...\n", *addr)
	return client.Connect(ctx, *addr)
}
