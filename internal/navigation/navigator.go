// Package navigation owns screen transitions for the front ends. The
// screen set is a closed enumeration and every change goes through Fire.
package navigation

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid screen transition")

// Screen is one of the front-end views
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenLogin
	ScreenDashboard
	ScreenAddHarvest
	ScreenProductDetail
	ScreenReminders
)

func (s Screen) String() string {
	switch s {
	case ScreenSplash:
		return "splash"
	case ScreenLogin:
		return "login"
	case ScreenDashboard:
		return "dashboard"
	case ScreenAddHarvest:
		return "add-harvest"
	case ScreenProductDetail:
		return "product-detail"
	case ScreenReminders:
		return "reminders"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// EventKind names what happened on the current screen
type EventKind int

const (
	SplashElapsed EventKind = iota
	LoggedIn
	OpenAddHarvest
	HarvestSaved
	ViewProduct
	ProductChanged
	ProductDeleted
	OpenReminders
	Back
	Logout
)

func (k EventKind) String() string {
	names := [...]string{
		"splash-elapsed", "logged-in", "open-add-harvest", "harvest-saved",
		"view-product", "product-changed", "product-deleted", "open-reminders",
		"back", "logout",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is fired at the navigator. ProductID is only read for ViewProduct.
type Event struct {
	Kind      EventKind
	ProductID string
}

type transitionKey struct {
	from Screen
	kind EventKind
}

var transitions = map[transitionKey]Screen{
	{ScreenSplash, SplashElapsed}: ScreenLogin,
	{ScreenLogin, LoggedIn}:       ScreenDashboard,

	{ScreenDashboard, OpenAddHarvest}: ScreenAddHarvest,
	{ScreenDashboard, ViewProduct}:    ScreenProductDetail,
	{ScreenDashboard, OpenReminders}:  ScreenReminders,
	{ScreenDashboard, Logout}:         ScreenLogin,

	{ScreenAddHarvest, HarvestSaved}: ScreenDashboard,
	{ScreenAddHarvest, Back}:         ScreenDashboard,

	{ScreenProductDetail, ProductChanged}: ScreenDashboard,
	{ScreenProductDetail, ProductDeleted}: ScreenDashboard,
	{ScreenProductDetail, Back}:           ScreenDashboard,

	{ScreenReminders, ViewProduct}: ScreenProductDetail,
	{ScreenReminders, Back}:        ScreenDashboard,
}

// MaxHistory bounds how many previous screens a navigator remembers
const MaxHistory = 32

// Navigator tracks the active screen and the selected product. It is not
// safe for concurrent use; each front-end session owns one.
type Navigator struct {
	current  Screen
	selected string
	history  []Screen
}

// New returns a navigator positioned on the splash screen
func New() *Navigator {
	return &Navigator{current: ScreenSplash}
}

// Current returns the active screen
func (n *Navigator) Current() Screen {
	return n.current
}

// SelectedProduct returns the product shown on the detail screen
func (n *Navigator) SelectedProduct() (string, bool) {
	return n.selected, n.selected != ""
}

// History returns up to MaxHistory screens visited before the current one,
// oldest first
func (n *Navigator) History() []Screen {
	out := make([]Screen, len(n.history))
	copy(out, n.history)
	return out
}

// Can reports whether kind is accepted on the current screen
func (n *Navigator) Can(kind EventKind) bool {
	_, ok := transitions[transitionKey{n.current, kind}]
	return ok
}

// Fire applies ev and returns the new screen. An event that is not valid
// on the current screen leaves the navigator unchanged.
func (n *Navigator) Fire(ev Event) (Screen, error) {
	next, ok := transitions[transitionKey{n.current, ev.Kind}]
	if !ok {
		return n.current, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev.Kind, n.current)
	}
	if ev.Kind == ViewProduct && ev.ProductID == "" {
		return n.current, fmt.Errorf("%w: %s without a product", ErrInvalidTransition, ev.Kind)
	}

	if len(n.history) == MaxHistory {
		n.history = n.history[1:]
	}
	n.history = append(n.history, n.current)
	n.current = next

	switch {
	case ev.Kind == ViewProduct:
		n.selected = ev.ProductID
	case next != ScreenProductDetail:
		n.selected = ""
	}

	return n.current, nil
}
