package service

import (
	"context"

	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
)

var defaultCourts = []model.Court{
	{Name: "Court 1", Surface: model.SurfaceGrass},
	{Name: "Court 2", Surface: model.SurfaceClay},
}

// Seed inserts the default courts on first start. A non-empty collection is
// left untouched so operator-created courts survive restarts.
func (s *courtService) Seed(ctx context.Context) error {
	if !s.cfg.SeedDefaultCourts {
		return nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return apperrors.Internal("Failed to count courts before seeding", err)
	}
	if count > 0 {
		s.cfg.Log.Debug("Skipping court seeding, collection not empty", "count", count)
		return nil
	}

	for i := range defaultCourts {
		court := defaultCourts[i]
		if _, err := s.repo.Save(ctx, &court); err != nil {
			return apperrors.Internal("Failed to seed courts", err)
		}
		s.cfg.Log.Info("Seeded court", "name", court.Name, "surface", court.Surface)
	}

	return nil
}
