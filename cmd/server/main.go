package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ccatimbang/todo-api/internal/config"
	"github.com/ccatimbang/todo-api/internal/server"
	"github.com/ccatimbang/todo-api/internal/storage"
	"github.com/ccatimbang/todo-api/internal/storage/memory"
	"github.com/ccatimbang/todo-api/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		users storage.UserStore
		todos storage.TodoStore
	)
	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("init database: %v", err)
		}
		defer store.Close()
		users, todos = store, store
	} else {
		log.Println("DATABASE_URL not set; using the seeded in-memory store")
		store := memory.New()
		users, todos = store, store
	}

	srv := server.New(cfg, users, todos)

	go func() {
		log.Printf("todo API listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
