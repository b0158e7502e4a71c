package navigation

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHappyPath(t *testing.T) {
	n := New()
	assert.Equal(t, ScreenSplash, n.Current())

	steps := []struct {
		ev   Event
		want Screen
	}{
		{Event{Kind: SplashElapsed}, ScreenLogin},
		{Event{Kind: LoggedIn}, ScreenDashboard},
		{Event{Kind: OpenAddHarvest}, ScreenAddHarvest},
		{Event{Kind: HarvestSaved}, ScreenDashboard},
		{Event{Kind: OpenReminders}, ScreenReminders},
		{Event{Kind: ViewProduct, ProductID: "p1"}, ScreenProductDetail},
		{Event{Kind: ProductDeleted}, ScreenDashboard},
		{Event{Kind: Logout}, ScreenLogin},
	}

	for _, step := range steps {
		got, err := n.Fire(step.ev)
		require.NoError(t, err, "event %s", step.ev.Kind)
		assert.Equal(t, step.want, got)
	}
	assert.Len(t, n.History(), len(steps))
}

func TestSelectedProductLifecycle(t *testing.T) {
	n := New()
	_, _ = n.Fire(Event{Kind: SplashElapsed})
	_, _ = n.Fire(Event{Kind: LoggedIn})

	_, ok := n.SelectedProduct()
	assert.False(t, ok)

	_, err := n.Fire(Event{Kind: ViewProduct, ProductID: "abc"})
	require.NoError(t, err)
	id, ok := n.SelectedProduct()
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, err = n.Fire(Event{Kind: Back})
	require.NoError(t, err)
	_, ok = n.SelectedProduct()
	assert.False(t, ok)
}

func TestViewProductRequiresID(t *testing.T) {
	n := New()
	_, _ = n.Fire(Event{Kind: SplashElapsed})
	_, _ = n.Fire(Event{Kind: LoggedIn})

	got, err := n.Fire(Event{Kind: ViewProduct})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ScreenDashboard, got)
}

func TestHistoryIsBounded(t *testing.T) {
	n := New()
	_, _ = n.Fire(Event{Kind: SplashElapsed})
	_, _ = n.Fire(Event{Kind: LoggedIn})

	for i := 0; i < 500; i++ {
		_, err := n.Fire(Event{Kind: OpenReminders})
		require.NoError(t, err)
		_, err = n.Fire(Event{Kind: Back})
		require.NoError(t, err)
	}

	history := n.History()
	require.Len(t, history, MaxHistory)
	assert.Equal(t, ScreenReminders, history[len(history)-1])
	assert.Equal(t, ScreenDashboard, history[len(history)-2])
}

func TestInvalidTransitionLeavesStateUnchanged(t *testing.T) {
	n := New()

	got, err := n.Fire(Event{Kind: OpenReminders})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ScreenSplash, got)
	assert.Empty(t, n.History())
	assert.False(t, n.Can(LoggedIn))
	assert.True(t, n.Can(SplashElapsed))
}

// Feature: harvest-inventory, Property 50: Only table transitions change the screen
func TestProperty_TransitionsFollowTable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("random event sequences never reach an undefined state", prop.ForAll(
		func(kinds []int) bool {
			n := New()
			for _, k := range kinds {
				kind := EventKind(k)
				before := n.Current()
				_, allowed := transitions[transitionKey{before, kind}]

				got, err := n.Fire(Event{Kind: kind, ProductID: "p"})
				if allowed != (err == nil) {
					t.Logf("FAIL: %s on %s allowed=%v err=%v", kind, before, allowed, err)
					return false
				}
				if !allowed && got != before {
					return false
				}
				if _, selected := n.SelectedProduct(); selected != (n.Current() == ScreenProductDetail) {
					t.Logf("FAIL: selection out of sync on %s", n.Current())
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(int(SplashElapsed), int(Logout))),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
