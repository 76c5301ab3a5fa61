package service

import (
	"context"

	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/stats/domain"
	statsrepo "github.com/splitroom/backend/internal/stats/repository"
)

type StatsService struct {
	repo statsrepo.Repository
	log  *logger.Logger
}

func NewStatsService(repo statsrepo.Repository, log *logger.Logger) *StatsService {
	return &StatsService{repo: repo, log: log}
}

func (s *StatsService) Overview(ctx context.Context) (domain.Overview, error) {
	return s.repo.Overview(ctx)
}
