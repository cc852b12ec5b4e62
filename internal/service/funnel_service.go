package service

import (
	"context"

	"job-funnel-service/internal/entity"
	"job-funnel-service/internal/funnel"
)

// FunnelService serves the read side: the stage catalog and the caller's metrics.
type FunnelService struct {
	repo    JobRepository
	catalog *funnel.Catalog
}

func NewFunnelService(repo JobRepository, catalog *funnel.Catalog) *FunnelService {
	return &FunnelService{repo: repo, catalog: catalog}
}

func (s *FunnelService) ListStages() []entity.Stage {
	return s.catalog.All()
}

func (s *FunnelService) GetMetrics(ctx context.Context, userID int64) (entity.Metrics, error) {
	jobs, err := s.repo.ListByOwner(ctx, userID, nil)
	if err != nil {
		return entity.Metrics{}, err
	}
	return s.catalog.ComputeMetrics(jobs), nil
}
