package service

import (
	"context"
	"fmt"

	"harvest-keeper/internal/domain"

	"go.uber.org/zap"
)

// demoProducts mirrors the sample stock shown on first launch
var demoProducts = []struct {
	name        string
	plantType   string
	harvestDate string
}{
	{name: "Tomat Merah", plantType: "Tomat", harvestDate: "2025-11-27"},
	{name: "Wortel Organik", plantType: "Wortel", harvestDate: "2025-11-25"},
	{name: "Padi Kering", plantType: "Padi", harvestDate: "2025-11-20"},
}

// SeedDemoProducts adds the demo products through the normal add path
func (s *harvestService) SeedDemoProducts(ctx context.Context) error {
	for _, demo := range demoProducts {
		input := HarvestInput{
			Name:        demo.name,
			PlantType:   demo.plantType,
			HarvestDate: domain.MustParseDate(demo.harvestDate),
		}
		if _, err := s.AddHarvest(ctx, input); err != nil {
			return fmt.Errorf("failed to seed %q: %w", demo.name, err)
		}
	}
	s.logger.Info("Seeded demo products", zap.Int("count", len(demoProducts)))
	return nil
}
