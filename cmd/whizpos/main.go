// whizpos runs the terminal sync core: it restores the persisted state
// snapshot, optionally performs the connect flow, then keeps the
// background sync loop running until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/twoem/whiz-pos-apk/pkg/config"
	"github.com/twoem/whiz-pos-apk/pkg/kv"
	"github.com/twoem/whiz-pos-apk/pkg/state"
	possync "github.com/twoem/whiz-pos-apk/pkg/sync"
	"github.com/twoem/whiz-pos-apk/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file path")
	apiURL := flag.String("url", "", "backend URL, triggers the connect flow")
	apiKey := flag.String("key", "", "backend API key")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	store, err := kv.NewBadgerStore(filepath.Join(cfg.DataDir, "db"))
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer store.Close()

	st := state.New()
	if err := st.Load(store); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	client := transport.NewClient(st, transport.WithLogger(log))
	orch := possync.New(st, client,
		possync.WithInterval(cfg.SyncInterval),
		possync.WithLogger(log),
		possync.WithSnapshotStore(store),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Flags win over config presets; either can start the connect flow.
	url, key := *apiURL, *apiKey
	if url == "" {
		url, key = cfg.APIURL, cfg.APIKey
	}
	if url != "" {
		if err := orch.Connect(ctx, url, key); err != nil {
			return fmt.Errorf("connect to %s: %w", possync.NormalizeURL(url), err)
		}
	}

	conn := st.Connection()
	if !conn.IsConnected || conn.APIURL == "" {
		log.Infow("no backend configured, running offline", "hint", "pass -url and -key to connect")
	}

	orch.Start(ctx)
	<-ctx.Done()
	orch.Stop()

	if err := st.Save(store); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
