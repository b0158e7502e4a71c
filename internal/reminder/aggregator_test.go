package reminder

import (
	"fmt"
	"testing"

	"harvest-keeper/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

var today = domain.MustParseDate("2025-12-03")

// productExpiringIn builds a product with the given days remaining as of today
func productExpiringIn(id string, days int) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          id,
		PlantType:     "Tomat",
		HarvestDate:   today.AddDays(days - 7),
		ShelfLifeDays: 7,
	}
}

func names(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestPartitionBuckets(t *testing.T) {
	products := []*domain.Product{
		productExpiringIn("safe-8", 8),
		productExpiringIn("urgent-0", 0),
		productExpiringIn("expired-1", -1),
		productExpiringIn("soon-7", 7),
		productExpiringIn("urgent-3", 3),
		productExpiringIn("soon-4", 4),
		productExpiringIn("expired-10", -10),
	}

	b := Partition(products, today)

	assert.Equal(t, []string{"expired-1", "expired-10"}, names(b.Expired))
	assert.Equal(t, []string{"urgent-0", "urgent-3"}, names(b.Urgent))
	assert.Equal(t, []string{"soon-7", "soon-4"}, names(b.Soon))
}

func TestPartitionKeepsHarvestedProducts(t *testing.T) {
	p := productExpiringIn("harvested", 1)
	p.IsHarvested = true

	b := Partition([]*domain.Product{p}, today)
	assert.Len(t, b.Urgent, 1)

	assert.Empty(t, Partition(Pending([]*domain.Product{p}), today).Urgent)
}

func TestPartitionEmptyInput(t *testing.T) {
	b := Partition(nil, today)
	assert.NotNil(t, b.Expired)
	assert.Equal(t, 0, b.Len())
}

func TestEvaluateReferenceProduct(t *testing.T) {
	p := &domain.Product{ID: "1", HarvestDate: domain.MustParseDate("2025-11-27"), ShelfLifeDays: 7}

	s := Evaluate(p, today)
	assert.Equal(t, 1, s.DaysRemaining)
	assert.Equal(t, "2025-12-04", s.ExpiryDate.String())
	assert.Equal(t, domain.TierUrgent, s.Tier)
}

func TestSummarize(t *testing.T) {
	harvested := productExpiringIn("h", 20)
	harvested.IsHarvested = true

	products := []*domain.Product{
		productExpiringIn("e", -2),
		productExpiringIn("u", 2),
		productExpiringIn("s", 5),
		harvested,
	}

	s := Summarize(products, today)
	assert.Equal(t, Summary{Total: 4, Harvested: 1, Attention: 2, Expired: 1, Urgent: 1, Soon: 1, Safe: 1}, s)
}

// Feature: harvest-inventory, Property 20: Partition never drops or duplicates a product
func TestProperty_PartitionConservesProducts(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("bucket sizes plus safe count equal the input size", prop.ForAll(
		func(offsets []int) bool {
			products := make([]*domain.Product, 0, len(offsets))
			for i, d := range offsets {
				products = append(products, productExpiringIn(fmt.Sprintf("p%d", i), d))
			}

			b := Partition(products, today)
			s := Summarize(products, today)

			if b.Len()+s.Safe != len(products) {
				t.Logf("FAIL: %d bucketed + %d safe != %d", b.Len(), s.Safe, len(products))
				return false
			}

			seen := make(map[string]bool)
			for _, bucket := range [][]*domain.Product{b.Expired, b.Urgent, b.Soon} {
				for _, p := range bucket {
					if seen[p.ID] {
						t.Logf("FAIL: %s appears twice", p.ID)
						return false
					}
					seen[p.ID] = true
				}
			}

			return s.Attention == s.Expired+s.Urgent &&
				len(b.Expired) == s.Expired &&
				len(b.Urgent) == s.Urgent &&
				len(b.Soon) == s.Soon
		},
		gen.SliceOf(gen.IntRange(-30, 30)),
	))

	properties.Property("buckets preserve input order", prop.ForAll(
		func(offsets []int) bool {
			products := make([]*domain.Product, 0, len(offsets))
			position := make(map[string]int)
			for i, d := range offsets {
				id := fmt.Sprintf("p%d", i)
				position[id] = i
				products = append(products, productExpiringIn(id, d))
			}

			b := Partition(products, today)
			for _, bucket := range [][]*domain.Product{b.Expired, b.Urgent, b.Soon} {
				for i := 1; i < len(bucket); i++ {
					if position[bucket[i-1].ID] > position[bucket[i].ID] {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-30, 30)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
