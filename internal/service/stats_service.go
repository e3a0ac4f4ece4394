package service

import (
	"context"

	"forumCPT/internal/models"
	"forumCPT/internal/repository"
)

type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*models.Stats, error) {
	return s.statsRepo.CountRows(ctx)
}
