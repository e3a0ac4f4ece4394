package app

import (
	"context"
	"log"

	"forumCPT/internal/config"
	"forumCPT/internal/database"
	"forumCPT/internal/repository"
	"forumCPT/internal/service"
	"forumCPT/internal/storage"
)

func App(ctx context.Context, cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// image storage, local directory or MinIO
	store, err := storage.New(ctx, cfg)
	if err != nil {
		db.CloseDB()
		log.Fatalf("Failed to initialize %s storage: %v", cfg.Storage.Backend, err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, store)

	return db, repo, services
}
