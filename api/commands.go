package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/rogerio-castellano/stock-ledger/docs"
	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/broadcast"
	"github.com/rogerio-castellano/stock-ledger/internal/config"
	"github.com/rogerio-castellano/stock-ledger/internal/db"
	api "github.com/rogerio-castellano/stock-ledger/internal/http"
	"github.com/rogerio-castellano/stock-ledger/internal/http/ban"
	"github.com/rogerio-castellano/stock-ledger/internal/http/handlers"
	rl "github.com/rogerio-castellano/stock-ledger/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
	"github.com/rogerio-castellano/stock-ledger/internal/redissvc"
	"github.com/rogerio-castellano/stock-ledger/internal/repo"
)

// openStore builds the configured backend and initializes it. The returned
// func releases the connection pool, if any.
func openStore(ctx context.Context, cfg config.Config) (repo.Store, func(), error) {
	seed := repo.SeedAdmin{Username: cfg.AdminUsername, Password: cfg.AdminPassword}

	var store repo.Store
	closeFn := func() {}

	switch cfg.Backend {
	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		store = repo.NewPostgresStore(database, seed)
		closeFn = func() { database.Close() }
	default:
		store = repo.NewMemoryStore(seed)
	}

	if err := store.Initialize(ctx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("initialize %s store: %w", cfg.Backend, err)
	}
	return store, closeFn, nil
}

type initCmd struct{}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the schema and the seed administrator" }
func (*initCmd) Usage() string {
	return `init

  Initializes the configured storage backend and exits. Safe to run twice.
`
}

func (*initCmd) SetFlags(*flag.FlagSet) {}

func (*initCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Printf("❌ %v", err)
		return subcommands.ExitFailure
	}
	closeStore()

	log.Printf("✅ %s store initialized", cfg.Backend)
	return subcommands.ExitSuccess
}

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP and websocket server" }
func (*serveCmd) Usage() string {
	return `serve [-port N]

  Serves the REST API, the websocket snapshot feed and the swagger UI.
  Settings come from the environment or CONFIG_FILE.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "listen port, overrides PORT")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.port > 0 {
		cfg.Port = c.port
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Could not open storage: %v", err)
	}
	defer closeStore()

	hub := broadcast.NewHub(store)
	defer hub.Close()

	svc := inventory.NewService(store, hub, inventory.WithProvisionalPasswords(cfg.ProvisionalPasswords))
	gate := auth.NewGate(cfg.JWTSecret, cfg.TokenTTL)

	var guard *ban.Guard
	if cfg.RedisAddr != "" {
		rs, err := redissvc.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, login ban guard disabled: %v", err)
		} else {
			defer rs.Close()
			guard = ban.NewGuard(rs.Rdb(), cfg.LoginMaxStrikes, cfg.LoginBanTTL)
		}
	}

	var limiter *rl.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go limiter.StartCleanupLoop(ctx, time.Minute)
	}

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Port)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewRouter(api.Deps{
			Server:      handlers.NewServer(svc, gate, guard),
			Gate:        gate,
			Hub:         hub,
			Limiter:     limiter,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Server running on %s (%s storage)", srv.Addr, cfg.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ Server stopped: %v", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		log.Println("🛑 Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️ Graceful shutdown failed: %v", err)
		}
	}

	return subcommands.ExitSuccess
}
