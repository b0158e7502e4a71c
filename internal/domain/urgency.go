package domain

// UrgencyTier is derived from days remaining and never stored
type UrgencyTier int

const (
	TierSafe UrgencyTier = iota
	TierSoon
	TierUrgent
	TierExpired
)

func (t UrgencyTier) String() string {
	switch t {
	case TierExpired:
		return "expired"
	case TierUrgent:
		return "urgent"
	case TierSoon:
		return "soon"
	default:
		return "safe"
	}
}

func (t UrgencyTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// NeedsAttention reports whether the tier is shown on the dashboard alert
func (t UrgencyTier) NeedsAttention() bool {
	return t == TierUrgent || t == TierExpired
}
