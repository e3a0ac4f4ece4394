package repository

import (
	"context"
	"fmt"

	"forumCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountRows(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats

	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM forums) AS forums,
			(SELECT COUNT(*) FROM comments) AS comments,
			(SELECT COUNT(*) FROM likes) AS likes,
			(SELECT COUNT(*) FROM notifications) AS notifications
	`)
	if err != nil {
		return nil, fmt.Errorf("error counting rows: %w", err)
	}

	return &stats, nil
}
