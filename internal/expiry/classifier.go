// Package expiry computes shelf-life countdowns and urgency tiers. Every
// function is pure: the current date is always passed in by the caller.
package expiry

import (
	"time"

	"harvest-keeper/internal/domain"
)

// Tier thresholds, inclusive upper bounds in days remaining
const (
	UrgentMaxDays = 3
	SoonMaxDays   = 7
)

// Today converts an injected instant to its calendar day in loc.
// A nil loc means UTC.
func Today(now time.Time, loc *time.Location) domain.Date {
	if loc == nil {
		loc = time.UTC
	}
	return domain.DateOf(now.In(loc))
}

// ExpiryDate is the harvest date moved forward by the shelf life
func ExpiryDate(harvest domain.Date, shelfLifeDays int) domain.Date {
	return harvest.AddDays(shelfLifeDays)
}

// DaysRemaining returns the whole calendar days between today and the
// expiry date. Negative values mean the product has expired.
func DaysRemaining(harvest domain.Date, shelfLifeDays int, today domain.Date) int {
	// Both sides are midnight UTC, so the difference is an exact number
	// of days and the ceiling is the value itself.
	return today.DaysUntil(ExpiryDate(harvest, shelfLifeDays))
}

// Classify maps days remaining to an urgency tier
func Classify(daysRemaining int) domain.UrgencyTier {
	switch {
	case daysRemaining < 0:
		return domain.TierExpired
	case daysRemaining <= UrgentMaxDays:
		return domain.TierUrgent
	case daysRemaining <= SoonMaxDays:
		return domain.TierSoon
	default:
		return domain.TierSafe
	}
}

// ClassifyProduct is DaysRemaining followed by Classify
func ClassifyProduct(p *domain.Product, today domain.Date) (int, domain.UrgencyTier) {
	days := DaysRemaining(p.HarvestDate, p.ShelfLifeDays, today)
	return days, Classify(days)
}
