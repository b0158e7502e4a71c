package service

import (
	"context"
	"fmt"
	"time"

	"harvest-keeper/internal/catalog"
	"harvest-keeper/internal/config"
	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/repository"

	"go.uber.org/zap"
)

// LoadCatalog builds the catalog named by cfg, or the built-in table when
// no file is configured
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.File == "" {
		return catalog.Default(cfg.Catalog.FallbackType)
	}
	return catalog.LoadFile(cfg.Catalog.File, cfg.Catalog.FallbackType)
}

// FixedClock pins the clock to noon of day in loc
func FixedClock(day domain.Date, loc *time.Location) Clock {
	t := day.Time()
	fixed := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
	return func() time.Time { return fixed }
}

// NewHarvestServiceFromConfig assembles catalog, repository and service the
// way both front ends run them. A nil clock means time.Now.
func NewHarvestServiceFromConfig(ctx context.Context, cfg *config.Config, clock Clock, logger *zap.Logger) (HarvestService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	svc := NewHarvestService(
		repository.NewProductRepository(),
		cat,
		clock,
		Options{Location: loc, ResnapshotOnEdit: cfg.Catalog.ResnapshotOnEdit},
		logger,
	)

	logger.Info("Catalog loaded",
		zap.Int("plant_types", len(cat.ListKnownTypes())),
		zap.String("fallback", cat.FallbackType()),
		zap.String("timezone", loc.String()),
	)

	if cfg.App.SeedDemoData {
		if err := svc.SeedDemoProducts(ctx); err != nil {
			return nil, err
		}
	}
	return svc, nil
}
