package domain

import (
	"encoding/json"
	"fmt"
)

// Ventilation describes the airflow a storage room needs
type Ventilation int

const (
	VentilationLow Ventilation = iota + 1
	VentilationMedium
	VentilationHigh
)

var ventilationLabels = map[Ventilation]string{
	VentilationLow:    "Rendah",
	VentilationMedium: "Sedang",
	VentilationHigh:   "Tinggi",
}

// String returns the label shown to users
func (v Ventilation) String() string {
	if label, ok := ventilationLabels[v]; ok {
		return label
	}
	return fmt.Sprintf("Ventilation(%d)", int(v))
}

// Valid reports whether v is one of the known levels
func (v Ventilation) Valid() bool {
	_, ok := ventilationLabels[v]
	return ok
}

// ParseVentilation accepts either the user-facing label or the English level name
func ParseVentilation(s string) (Ventilation, error) {
	switch s {
	case "Rendah", "Low", "low":
		return VentilationLow, nil
	case "Sedang", "Medium", "medium":
		return VentilationMedium, nil
	case "Tinggi", "High", "high":
		return VentilationHigh, nil
	}
	return 0, fmt.Errorf("unknown ventilation level %q", s)
}

func (v Ventilation) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid ventilation %d", int(v))
	}
	return json.Marshal(v.String())
}

func (v *Ventilation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVentilation(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// StorageProfile holds the recommended storage conditions for a plant type
type StorageProfile struct {
	ShelfLifeDays int         `json:"shelf_life_days"`
	StorageMethod string      `json:"storage_method"`
	Temperature   string      `json:"temperature"`
	Humidity      string      `json:"humidity"`
	Ventilation   Ventilation `json:"ventilation"`
}

// ProductDraft is a product before the repository assigns it an ID
type ProductDraft struct {
	Name          string      `json:"name"`
	PlantType     string      `json:"plant_type"`
	HarvestDate   Date        `json:"harvest_date"`
	ShelfLifeDays int         `json:"shelf_life_days"`
	StorageMethod string      `json:"storage_method"`
	Temperature   string      `json:"temperature"`
	Humidity      string      `json:"humidity"`
	Ventilation   Ventilation `json:"ventilation"`
	IsHarvested   bool        `json:"is_harvested"`
}

// Product represents a tracked harvest. The storage fields are a snapshot
// taken from the catalog when the product was created.
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	PlantType     string      `json:"plant_type"`
	HarvestDate   Date        `json:"harvest_date"`
	ShelfLifeDays int         `json:"shelf_life_days"`
	StorageMethod string      `json:"storage_method"`
	Temperature   string      `json:"temperature"`
	Humidity      string      `json:"humidity"`
	Ventilation   Ventilation `json:"ventilation"`
	IsHarvested   bool        `json:"is_harvested"`
}

// NewDraft builds a draft whose storage fields are copied from profile
func NewDraft(name, plantType string, harvestDate Date, profile StorageProfile) ProductDraft {
	d := ProductDraft{
		Name:        name,
		PlantType:   plantType,
		HarvestDate: harvestDate,
	}
	d.ApplyProfile(profile)
	return d
}

// ApplyProfile overwrites the storage snapshot of the draft
func (d *ProductDraft) ApplyProfile(profile StorageProfile) {
	d.ShelfLifeDays = profile.ShelfLifeDays
	d.StorageMethod = profile.StorageMethod
	d.Temperature = profile.Temperature
	d.Humidity = profile.Humidity
	d.Ventilation = profile.Ventilation
}

// WithID turns the draft into a stored product
func (d ProductDraft) WithID(id string) Product {
	return Product{
		ID:            id,
		Name:          d.Name,
		PlantType:     d.PlantType,
		HarvestDate:   d.HarvestDate,
		ShelfLifeDays: d.ShelfLifeDays,
		StorageMethod: d.StorageMethod,
		Temperature:   d.Temperature,
		Humidity:      d.Humidity,
		Ventilation:   d.Ventilation,
		IsHarvested:   d.IsHarvested,
	}
}

// ApplyProfile overwrites the storage snapshot of the product
func (p *Product) ApplyProfile(profile StorageProfile) {
	p.ShelfLifeDays = profile.ShelfLifeDays
	p.StorageMethod = profile.StorageMethod
	p.Temperature = profile.Temperature
	p.Humidity = profile.Humidity
	p.Ventilation = profile.Ventilation
}

// Profile returns the storage snapshot carried by the product
func (p *Product) Profile() StorageProfile {
	return StorageProfile{
		ShelfLifeDays: p.ShelfLifeDays,
		StorageMethod: p.StorageMethod,
		Temperature:   p.Temperature,
		Humidity:      p.Humidity,
		Ventilation:   p.Ventilation,
	}
}

// Session is the profile returned by the mock login
type Session struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	LoggedInAt  string `json:"logged_in_at"`
}
