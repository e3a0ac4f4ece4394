package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forumCPT/cmd/app"
	"forumCPT/internal/config"
	handlers "forumCPT/internal/handler"
	"forumCPT/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx := context.Background()

	db, _, services := app.App(ctx, cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	// setting up routes
	router := handlers.NewRouter(handler)

	handlerChain := middleware.Chain(router, middleware.Stack(cfg)...)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handlerChain,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Starting the server
	go func() {
		log.Printf("Server listening on %s (database %s, storage %s)", srv.Addr, cfg.DB.DbDRIVER, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
