package catalog

import "harvest-keeper/internal/domain"

// DefaultEntries returns the built-in storage table
func DefaultEntries() []Entry {
	return []Entry{
		{PlantType: "Tomat", Profile: domain.StorageProfile{
			ShelfLifeDays: 7,
			StorageMethod: "Ruang dingin dengan kelembaban terkontrol",
			Temperature:   "10-12°C",
			Humidity:      "85-90%",
			Ventilation:   domain.VentilationMedium,
		}},
		{PlantType: "Wortel", Profile: domain.StorageProfile{
			ShelfLifeDays: 14,
			StorageMethod: "Gudang dingin dengan ventilasi baik",
			Temperature:   "0-2°C",
			Humidity:      "95-98%",
			Ventilation:   domain.VentilationHigh,
		}},
		{PlantType: "Padi", Profile: domain.StorageProfile{
			ShelfLifeDays: 90,
			StorageMethod: "Gudang kering dengan sirkulasi udara",
			Temperature:   "25-30°C",
			Humidity:      "12-14%",
			Ventilation:   domain.VentilationHigh,
		}},
		{PlantType: "Kentang", Profile: domain.StorageProfile{
			ShelfLifeDays: 30,
			StorageMethod: "Ruang gelap dan sejuk dengan ventilasi",
			Temperature:   "7-10°C",
			Humidity:      "85-90%",
			Ventilation:   domain.VentilationMedium,
		}},
		{PlantType: "Cabai", Profile: domain.StorageProfile{
			ShelfLifeDays: 10,
			StorageMethod: "Ruang dingin dengan kelembaban rendah",
			Temperature:   "7-10°C",
			Humidity:      "60-70%",
			Ventilation:   domain.VentilationHigh,
		}},
		{PlantType: "Bawang", Profile: domain.StorageProfile{
			ShelfLifeDays: 60,
			StorageMethod: "Gudang kering dengan ventilasi baik",
			Temperature:   "20-25°C",
			Humidity:      "65-70%",
			Ventilation:   domain.VentilationHigh,
		}},
		{PlantType: "Selada", Profile: domain.StorageProfile{
			ShelfLifeDays: 5,
			StorageMethod: "Ruang dingin dengan kelembaban tinggi",
			Temperature:   "0-2°C",
			Humidity:      "95-98%",
			Ventilation:   domain.VentilationLow,
		}},
		{PlantType: "Jagung", Profile: domain.StorageProfile{
			ShelfLifeDays: 21,
			StorageMethod: "Gudang kering dengan suhu terkontrol",
			Temperature:   "15-20°C",
			Humidity:      "13-15%",
			Ventilation:   domain.VentilationHigh,
		}},
	}
}
