package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harvest-keeper/internal/catalog"
	"harvest-keeper/internal/navigation"
	"harvest-keeper/internal/repository"
	"harvest-keeper/internal/service"
)

func newTestModel(t *testing.T, now time.Time) Model {
	t.Helper()

	cat, err := catalog.Default("")
	require.NoError(t, err)

	clock := func() time.Time { return now }
	svc := service.NewHarvestService(
		repository.NewProductRepository(),
		cat,
		clock,
		service.Options{Location: time.UTC, ResnapshotOnEdit: true},
		nil,
	)
	require.NoError(t, svc.SeedDemoProducts(context.Background()))

	m := New(svc, service.NewSessionService(clock), nil)
	m.splashDelay = time.Millisecond
	return m
}

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
}

func keyMsg(k string) tea.KeyMsg {
	if kt, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = press(m, string(r))
	}
	return m
}

func loggedIn(t *testing.T, now time.Time) Model {
	t.Helper()

	m := newTestModel(t, now)
	m = press(m, "enter")
	require.Equal(t, navigation.ScreenLogin, m.Screen())

	m = typeText(m, "petani@kebun.id")
	m = press(m, "tab")
	m = typeText(m, "rahasia")
	m = press(m, "enter")
	require.Equal(t, navigation.ScreenDashboard, m.Screen(), m.err)
	return m
}

var nov27 = time.Date(2025, time.November, 27, 9, 0, 0, 0, time.UTC)

func TestSplashAdvancesOnTick(t *testing.T) {
	m := newTestModel(t, nov27)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), appName)

	updated, _ := m.Update(splashDoneMsg{})
	m = updated.(Model)
	assert.Equal(t, navigation.ScreenLogin, m.Screen())

	// a late tick is ignored
	updated, _ = m.Update(splashDoneMsg{})
	assert.Equal(t, navigation.ScreenLogin, updated.(Model).Screen())
}

func TestLoginRequiresCredentials(t *testing.T) {
	m := newTestModel(t, nov27)
	m = press(m, "enter", "enter")

	assert.Equal(t, navigation.ScreenLogin, m.Screen())
	assert.Equal(t, errFormLogin.Error(), m.err)
	assert.Contains(t, m.View(), errFormLogin.Error())
}

func TestLoginShowsDashboard(t *testing.T) {
	m := loggedIn(t, nov27)

	require.NotNil(t, m.session)
	assert.Equal(t, "petani", m.session.DisplayName)
	assert.Len(t, m.products, 3)
	assert.Equal(t, 3, m.summary.Total)

	view := m.View()
	assert.Contains(t, view, "petani")
	assert.Contains(t, view, "Tomat Merah")
	assert.Contains(t, view, "Perhatikan")
}

func TestPasswordIsMasked(t *testing.T) {
	m := newTestModel(t, nov27)
	m = press(m, "enter")
	m = press(m, "tab")
	m = typeText(m, "rahasia")

	assert.NotContains(t, m.View(), "rahasia")
}

func TestAddHarvestFlow(t *testing.T) {
	m := loggedIn(t, nov27)

	m = press(m, "a")
	require.Equal(t, navigation.ScreenAddHarvest, m.Screen())
	assert.Equal(t, "Tomat", m.form.plantType())

	m = typeText(m, "Beras")
	m = press(m, "tab", "right", "right")
	assert.Equal(t, "Padi", m.form.plantType())
	assert.Contains(t, m.View(), "90 hari")

	m = press(m, "enter")
	require.Equal(t, navigation.ScreenDashboard, m.Screen(), m.err)
	require.Len(t, m.products, 4)

	added := m.products[3]
	assert.Equal(t, "Beras", added.Product.Name)
	assert.Equal(t, "Padi", added.Product.PlantType)
	assert.Equal(t, "2025-11-27", added.Product.HarvestDate.String())
	assert.Equal(t, 90, added.DaysRemaining)
	assert.Contains(t, m.View(), "Beras ditambahkan")
}

func TestAddHarvestValidation(t *testing.T) {
	m := loggedIn(t, nov27)
	m = press(m, "a", "enter")
	assert.Equal(t, navigation.ScreenAddHarvest, m.Screen())
	assert.Equal(t, errFormName.Error(), m.err)

	m = typeText(m, "Besok")
	m = press(m, "tab", "tab")
	for i := 0; i < 10; i++ {
		m = press(m, "backspace")
	}
	m = typeText(m, "2025-11-28")
	m = press(m, "enter")
	assert.Equal(t, navigation.ScreenAddHarvest, m.Screen())
	assert.Equal(t, errFormFuture.Error(), m.err)

	for i := 0; i < 10; i++ {
		m = press(m, "backspace")
	}
	m = typeText(m, "28-11-2025")
	m = press(m, "enter")
	assert.Equal(t, errFormDate.Error(), m.err)

	m = press(m, "esc")
	assert.Equal(t, navigation.ScreenDashboard, m.Screen())
	assert.Len(t, m.products, 3)
}

func TestDetailToggleEditDelete(t *testing.T) {
	m := loggedIn(t, nov27)

	m = press(m, "enter")
	require.Equal(t, navigation.ScreenProductDetail, m.Screen())
	require.NotNil(t, m.detail.Product)
	assert.Equal(t, "Tomat Merah", m.detail.Product.Name)
	assert.Contains(t, m.View(), "Tandai Sudah Diambil")

	m = press(m, "t")
	assert.Equal(t, navigation.ScreenDashboard, m.Screen())
	assert.True(t, m.products[0].Product.IsHarvested)
	assert.Contains(t, m.View(), "Diambil")

	m = press(m, "enter", "e")
	require.True(t, m.editing)
	assert.Equal(t, "Tomat Merah", m.form.name.Value())
	m = press(m, "tab", "right", "enter")
	require.Equal(t, navigation.ScreenDashboard, m.Screen(), m.err)
	assert.Equal(t, "Wortel", m.products[0].Product.PlantType)
	assert.Equal(t, 14, m.products[0].Product.ShelfLifeDays)

	m = press(m, "enter", "d")
	assert.True(t, m.confirmDelete)
	assert.Contains(t, m.View(), "yakin ingin menghapus")
	m = press(m, "n")
	assert.False(t, m.confirmDelete)
	assert.Equal(t, navigation.ScreenProductDetail, m.Screen())

	m = press(m, "d", "y")
	assert.Equal(t, navigation.ScreenDashboard, m.Screen())
	assert.Len(t, m.products, 2)
	assert.Equal(t, "Wortel Organik", m.products[0].Product.Name)
}

func TestEditCancelKeepsProduct(t *testing.T) {
	m := loggedIn(t, nov27)
	m = press(m, "down", "enter", "e")
	m = typeText(m, "XYZ")
	m = press(m, "esc")

	assert.False(t, m.editing)
	assert.Equal(t, navigation.ScreenProductDetail, m.Screen())

	m = press(m, "esc")
	assert.Equal(t, "Wortel Organik", m.products[1].Product.Name)
}

func TestRemindersNavigation(t *testing.T) {
	// Tomat has 1 day left, Wortel 6
	m := loggedIn(t, time.Date(2025, time.December, 3, 9, 0, 0, 0, time.UTC))

	m = press(m, "r")
	require.Equal(t, navigation.ScreenReminders, m.Screen())
	require.Len(t, m.reminderItems, 2)

	view := m.View()
	assert.Contains(t, view, "Segera (1)")
	assert.Contains(t, view, "Perhatikan (1)")
	assert.NotContains(t, view, "Kadaluarsa (")

	m = press(m, "down", "enter")
	require.Equal(t, navigation.ScreenProductDetail, m.Screen())
	assert.Equal(t, "Wortel Organik", m.detail.Product.Name)

	m = press(m, "esc")
	assert.Equal(t, navigation.ScreenDashboard, m.Screen())
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m := loggedIn(t, nov27)
	m = press(m, "x")

	assert.Equal(t, navigation.ScreenLogin, m.Screen())
	assert.Nil(t, m.session)
}

func TestUnknownKeysKeepScreen(t *testing.T) {
	m := loggedIn(t, nov27)
	m = press(m, "z", "esc", "left")
	assert.Equal(t, navigation.ScreenDashboard, m.Screen())
}

func TestCtrlCQuits(t *testing.T) {
	m := loggedIn(t, nov27)
	_, cmd := m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestRenderHelpers(t *testing.T) {
	cat, err := catalog.Default("")
	require.NoError(t, err)

	out := RenderCatalog(cat)
	assert.Contains(t, out, "Tomat (default)")
	assert.Contains(t, out, "Jagung")
	assert.Less(t, strings.Index(out, "Tomat"), strings.Index(out, "Jagung"))

	assert.Contains(t, RenderReminders(service.ReminderReport{}), "Semua Produk Aman!")
}
