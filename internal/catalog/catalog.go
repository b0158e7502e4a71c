package catalog

import (
	"errors"
	"fmt"
	"strings"

	"harvest-keeper/internal/domain"
)

var (
	ErrInvalidEntry    = errors.New("invalid catalog entry")
	ErrUnknownFallback = errors.New("fallback plant type is not registered")
)

// DefaultFallbackType is used when no fallback is configured
const DefaultFallbackType = "Tomat"

// Entry registers a storage profile under a plant type name
type Entry struct {
	PlantType string
	Profile   domain.StorageProfile
}

// Catalog maps plant types to their recommended storage profile. It is
// built once and never mutated, so it is safe for concurrent readers.
type Catalog struct {
	order    []string
	profiles map[string]domain.StorageProfile
	fallback string
}

// New builds a catalog from entries in registration order. fallbackType
// must be one of the registered plant types.
func New(entries []Entry, fallbackType string) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: catalog has no entries", ErrInvalidEntry)
	}

	c := &Catalog{
		order:    make([]string, 0, len(entries)),
		profiles: make(map[string]domain.StorageProfile, len(entries)),
		fallback: fallbackType,
	}

	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, exists := c.profiles[e.PlantType]; exists {
			return nil, fmt.Errorf("%w: duplicate plant type %q", ErrInvalidEntry, e.PlantType)
		}
		c.order = append(c.order, e.PlantType)
		c.profiles[e.PlantType] = e.Profile
	}

	if _, ok := c.profiles[fallbackType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFallback, fallbackType)
	}

	return c, nil
}

// Default returns the built-in catalog with the given fallback type
func Default(fallbackType string) (*Catalog, error) {
	if fallbackType == "" {
		fallbackType = DefaultFallbackType
	}
	return New(DefaultEntries(), fallbackType)
}

func validateEntry(e Entry) error {
	if strings.TrimSpace(e.PlantType) == "" {
		return fmt.Errorf("%w: empty plant type", ErrInvalidEntry)
	}
	if e.Profile.ShelfLifeDays <= 0 {
		return fmt.Errorf("%w: %q shelf life must be positive, got %d", ErrInvalidEntry, e.PlantType, e.Profile.ShelfLifeDays)
	}
	if !e.Profile.Ventilation.Valid() {
		return fmt.Errorf("%w: %q has unknown ventilation", ErrInvalidEntry, e.PlantType)
	}
	return nil
}

// Lookup returns the profile registered under plantType. Matching is exact
// and case-sensitive; unknown types get the fallback profile.
func (c *Catalog) Lookup(plantType string) domain.StorageProfile {
	if p, ok := c.profiles[plantType]; ok {
		return p
	}
	return c.profiles[c.fallback]
}

// Known reports whether plantType is registered
func (c *Catalog) Known(plantType string) bool {
	_, ok := c.profiles[plantType]
	return ok
}

// ListKnownTypes returns the plant types in registration order
func (c *Catalog) ListKnownTypes() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// FallbackType returns the plant type whose profile backs unknown lookups
func (c *Catalog) FallbackType() string {
	return c.fallback
}

// Entries returns every registered entry in registration order
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, Entry{PlantType: name, Profile: c.profiles[name]})
	}
	return out
}
