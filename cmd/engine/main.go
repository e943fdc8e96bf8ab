package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gighunt-engine/internal/alert"
	"go-gighunt-engine/internal/api"
	"go-gighunt-engine/internal/browser"
	"go-gighunt-engine/internal/collector"
	"go-gighunt-engine/internal/config"
	"go-gighunt-engine/internal/ledger"
	"go-gighunt-engine/internal/scanner"
	"go-gighunt-engine/internal/scheduler"
	"go-gighunt-engine/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to yaml config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database ready")

	cooldownWindow := time.Duration(cfg.AlertCooldownMinutes) * time.Minute
	var cooldown ledger.Ledger
	if cfg.RedisURL != "" {
		client, err := ledger.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Redis connection failed: %v", err)
		}
		defer client.Close()
		cooldown = ledger.NewRedis(client, cooldownWindow)
		log.Println("✅ Redis cooldown ledger ready")
	} else {
		cooldown = ledger.NewMemory(cooldownWindow, 0)
		log.Println("ℹ️ Using in-memory cooldown ledger")
	}

	notifier, err := alert.NewTelegramNotifier(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("❌ Telegram bot init failed: %v", err)
	}

	mgr, err := browser.NewManager(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Browser launch failed: %v", err)
	}
	defer mgr.Close()

	if !browser.HasAuthSession(cfg.AuthStatePath) {
		log.Printf("⚠️ No auth session at %s, run the savesession tool first", cfg.AuthStatePath)
	}

	source := collector.NewXSource(mgr, cfg.AuthStatePath)
	col := collector.New(source,
		time.Duration(cfg.KeywordDelayMS)*time.Millisecond,
		time.Duration(cfg.CategoryDelayMS)*time.Millisecond,
	)

	dispatcher := alert.New(db, notifier, cooldown, cfg.AlertBatchCap,
		time.Duration(cfg.AlertDelayMS)*time.Millisecond)

	scan := scanner.New(col, db, dispatcher)

	sched := scheduler.New(scan)
	sched.Start()
	defer sched.Stop()

	srv := api.NewServer(cfg.ListenAddr, sched, db)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Admin API failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("👋 Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Admin API shutdown: %v", err)
	}
}
