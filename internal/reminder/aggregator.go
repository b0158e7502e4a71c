package reminder

import (
	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/expiry"
)

// Status is a product together with its countdown as of a given day
type Status struct {
	Product       *domain.Product    `json:"product"`
	DaysRemaining int                `json:"days_remaining"`
	ExpiryDate    domain.Date        `json:"expiry_date"`
	Tier          domain.UrgencyTier `json:"tier"`
}

// Buckets groups products that need attention. Each bucket keeps the
// relative order of the input; safe products are in none of them.
type Buckets struct {
	Expired []*domain.Product `json:"expired"`
	Urgent  []*domain.Product `json:"urgent"`
	Soon    []*domain.Product `json:"soon"`
}

// Len returns the number of products across all buckets
func (b Buckets) Len() int {
	return len(b.Expired) + len(b.Urgent) + len(b.Soon)
}

// Summary holds the dashboard counters
type Summary struct {
	Total     int `json:"total"`
	Harvested int `json:"harvested"`
	// Attention counts products with three days or fewer left, expired included
	Attention int `json:"attention"`
	Expired   int `json:"expired"`
	Urgent    int `json:"urgent"`
	Soon      int `json:"soon"`
	Safe      int `json:"safe"`
}

// Evaluate computes the countdown of a single product
func Evaluate(p *domain.Product, today domain.Date) Status {
	days, tier := expiry.ClassifyProduct(p, today)
	return Status{
		Product:       p,
		DaysRemaining: days,
		ExpiryDate:    expiry.ExpiryDate(p.HarvestDate, p.ShelfLifeDays),
		Tier:          tier,
	}
}

// EvaluateAll evaluates every product, keeping input order
func EvaluateAll(products []*domain.Product, today domain.Date) []Status {
	out := make([]Status, 0, len(products))
	for _, p := range products {
		out = append(out, Evaluate(p, today))
	}
	return out
}

// Partition buckets products by urgency tier. Harvested products are not
// filtered out here; callers decide whether to hide them.
func Partition(products []*domain.Product, today domain.Date) Buckets {
	b := Buckets{
		Expired: []*domain.Product{},
		Urgent:  []*domain.Product{},
		Soon:    []*domain.Product{},
	}
	for _, p := range products {
		_, tier := expiry.ClassifyProduct(p, today)
		switch tier {
		case domain.TierExpired:
			b.Expired = append(b.Expired, p)
		case domain.TierUrgent:
			b.Urgent = append(b.Urgent, p)
		case domain.TierSoon:
			b.Soon = append(b.Soon, p)
		}
	}
	return b
}

// Summarize counts products per tier for the dashboard
func Summarize(products []*domain.Product, today domain.Date) Summary {
	s := Summary{Total: len(products)}
	for _, p := range products {
		if p.IsHarvested {
			s.Harvested++
		}
		_, tier := expiry.ClassifyProduct(p, today)
		switch tier {
		case domain.TierExpired:
			s.Expired++
		case domain.TierUrgent:
			s.Urgent++
		case domain.TierSoon:
			s.Soon++
		default:
			s.Safe++
		}
		if tier.NeedsAttention() {
			s.Attention++
		}
	}
	return s
}

// Pending drops harvested products, for displays that only show stock
// still in storage
func Pending(products []*domain.Product) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if !p.IsHarvested {
			out = append(out, p)
		}
	}
	return out
}
