package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agenthub/agenthub/internal/config"
	"github.com/agenthub/agenthub/internal/health"
	"github.com/agenthub/agenthub/internal/registry"
	"github.com/agenthub/agenthub/internal/router"
	"github.com/agenthub/agenthub/internal/service"
	"github.com/agenthub/agenthub/internal/store"
	transport "github.com/agenthub/agenthub/internal/transport/http"
	"github.com/agenthub/agenthub/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting agent hub...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Sweep interval: %s, stale after: %s", cfg.SweepInterval, cfg.StaleAfter)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rebuild the registry from the durable store so a restart does not
	// lose registered agents. Mailboxes are ephemeral and start empty.
	reg := registry.New(db)
	if err := reg.Rebuild(ctx); err != nil {
		log.Fatalf("Failed to rebuild registry: %v", err)
	}
	rt := router.New()
	for _, id := range reg.IDs() {
		rt.Ensure(id)
	}

	// Initialize dispatch policy engine
	policyContent := policy.DefaultPolicy
	if cfg.PolicyFile != "" {
		data, err := os.ReadFile(cfg.PolicyFile)
		if err != nil {
			log.Fatalf("Failed to read policy file: %v", err)
		}
		policyContent = string(data)
	}
	policyEngine, err := policy.NewEngine(ctx, policyContent)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, reg, rt, policyEngine, cfg)

	// Start health monitor
	monitor := health.NewMonitor(svc, cfg.SweepInterval)
	go monitor.Run(ctx)

	// Create HTTP server
	server := transport.NewServer(svc)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Hub API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down hub...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Hub stopped")
}
