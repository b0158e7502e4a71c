// Package tui is the interactive terminal front end. Screen changes go
// through navigation.Navigator; all data goes through service.HarvestService.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"harvest-keeper/internal/domain"
)

var (
	ColorPrimary = lipgloss.Color("#4C7B46")
	ColorMuted   = lipgloss.Color("#6B8E6B")
	ColorSurface = lipgloss.Color("#E8F3E8")
	ColorExpired = lipgloss.Color("#FF6B6B")
	ColorUrgent  = lipgloss.Color("#FFB74D")
	ColorSoon    = lipgloss.Color("#F9A825")
	ColorSafe    = lipgloss.Color("#81C784")
)

// Styles holds every lipgloss style the screens use
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Footer   lipgloss.Style
	Card     lipgloss.Style
	Label    lipgloss.Style

	badge lipgloss.Style
}

// DefaultStyles returns the green palette
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
		Body: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Selected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Background(ColorSurface).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorExpired).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSafe).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(22),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),
	}
}

// Badge renders the status pill shown next to a product. Harvested
// products get their own pill regardless of tier.
func (s Styles) Badge(tier domain.UrgencyTier, harvested bool) string {
	if harvested {
		return s.badge.Background(ColorPrimary).Render("Diambil")
	}
	switch tier {
	case domain.TierExpired:
		return s.badge.Background(ColorExpired).Render("Kadaluarsa")
	case domain.TierUrgent:
		return s.badge.Background(ColorUrgent).Render("Segera")
	case domain.TierSoon:
		return s.badge.Background(ColorSoon).Render("Perhatikan")
	default:
		return s.badge.Background(ColorSafe).Render("Aman")
	}
}

// TierColor returns the accent color of a tier
func TierColor(tier domain.UrgencyTier) lipgloss.Color {
	switch tier {
	case domain.TierExpired:
		return ColorExpired
	case domain.TierUrgent:
		return ColorUrgent
	case domain.TierSoon:
		return ColorSoon
	default:
		return ColorSafe
	}
}
