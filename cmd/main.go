package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fivec_analysis/internal/config"
	"fivec_analysis/internal/handlers"
	"fivec_analysis/internal/repository/database"
	"fivec_analysis/internal/server"
	"fivec_analysis/internal/transport/auth"
)

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Init(setupCtx)
	fmt.Println("✅ All connections successfully established!")

	if err := cfg.CheckConnections(setupCtx); err != nil {
		log.Fatalf("❌ Connection check failed: %v", err)
	}
	fmt.Println("🟢 All connections OK")

	h := handlers.New(cfg)

	var tokenRepo auth.TokenRepo
	if cfg.AuthEnabled {
		tokenRepo = database.NewTokenRepo(cfg.Postgres, "")
	}
	srv := server.NewServer(cfg.Port, h, tokenRepo)

	if err := srv.Run(runCtx); err != nil {
		log.Fatal(err)
	}
}
