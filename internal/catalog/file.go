package catalog

import (
	"fmt"
	"io"
	"os"

	"harvest-keeper/internal/domain"

	"gopkg.in/yaml.v3"
)

// fileEntry is one item of a catalog YAML document:
//
//	profiles:
//	  - plant_type: Tomat
//	    shelf_life_days: 7
//	    storage_method: Ruang dingin
//	    temperature: 10-12°C
//	    humidity: 85-90%
//	    ventilation: Sedang
type fileEntry struct {
	PlantType     string `yaml:"plant_type"`
	ShelfLifeDays int    `yaml:"shelf_life_days"`
	StorageMethod string `yaml:"storage_method"`
	Temperature   string `yaml:"temperature"`
	Humidity      string `yaml:"humidity"`
	Ventilation   string `yaml:"ventilation"`
}

type fileDocument struct {
	Fallback string      `yaml:"fallback"`
	Profiles []fileEntry `yaml:"profiles"`
}

// LoadFile reads a catalog from a YAML file. A non-empty fallbackType
// overrides the fallback named in the file.
func LoadFile(path, fallbackType string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f, fallbackType)
}

// Load reads a catalog YAML document from r
func Load(r io.Reader, fallbackType string) (*Catalog, error) {
	var doc fileDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Profiles))
	for _, fe := range doc.Profiles {
		vent, err := domain.ParseVentilation(fe.Ventilation)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidEntry, fe.PlantType, err)
		}
		entries = append(entries, Entry{
			PlantType: fe.PlantType,
			Profile: domain.StorageProfile{
				ShelfLifeDays: fe.ShelfLifeDays,
				StorageMethod: fe.StorageMethod,
				Temperature:   fe.Temperature,
				Humidity:      fe.Humidity,
				Ventilation:   vent,
			},
		})
	}

	fallback := doc.Fallback
	if fallbackType != "" {
		fallback = fallbackType
	}
	if fallback == "" {
		fallback = DefaultFallbackType
	}

	return New(entries, fallback)
}
