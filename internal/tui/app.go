package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/navigation"
	"harvest-keeper/internal/reminder"
	"harvest-keeper/internal/service"
)

// SplashDelay is how long the splash screen stays up before the login form
const SplashDelay = 2500 * time.Millisecond

type splashDoneMsg struct{}

// Model is the root bubbletea model
type Model struct {
	nav      *navigation.Navigator
	harvest  service.HarvestService
	sessions service.SessionService
	logger   *zap.Logger
	styles   Styles

	splashDelay time.Duration
	session     *domain.Session

	login         loginForm
	form          harvestForm
	editing       bool
	confirmDelete bool

	products []reminder.Status
	summary  reminder.Summary
	report   service.ReminderReport
	// reminderItems flattens report in display order for cursor movement
	reminderItems []reminder.Status
	detail        reminder.Status
	cursor        int

	flash string
	err   string

	width  int
	height int
}

// New creates the root model positioned on the splash screen
func New(harvest service.HarvestService, sessions service.SessionService, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		nav:         navigation.New(),
		harvest:     harvest,
		sessions:    sessions,
		logger:      logger,
		styles:      DefaultStyles(),
		splashDelay: SplashDelay,
	}
}

// Screen returns the active screen
func (m Model) Screen() navigation.Screen {
	return m.nav.Current()
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.splashDelay, func(time.Time) tea.Msg {
		return splashDoneMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case splashDoneMsg:
		if m.nav.Current() == navigation.ScreenSplash {
			return m.goTo(navigation.Event{Kind: navigation.SplashElapsed})
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.nav.Current() {
		case navigation.ScreenSplash:
			return m.goTo(navigation.Event{Kind: navigation.SplashElapsed})
		case navigation.ScreenLogin:
			return m.updateLogin(msg)
		case navigation.ScreenDashboard:
			return m.updateDashboard(msg)
		case navigation.ScreenAddHarvest:
			return m.updateAddHarvest(msg)
		case navigation.ScreenProductDetail:
			return m.updateDetail(msg)
		case navigation.ScreenReminders:
			return m.updateReminders(msg)
		}
	}
	return m, nil
}

// fire moves the navigator and loads whatever the new screen shows
func (m *Model) fire(ev navigation.Event) tea.Cmd {
	screen, err := m.nav.Fire(ev)
	if err != nil {
		m.logger.Warn("Rejected screen transition", zap.Error(err))
		return nil
	}
	m.err = ""
	m.cursor = 0

	switch screen {
	case navigation.ScreenLogin:
		m.login = newLoginForm()
		return textinput.Blink
	case navigation.ScreenDashboard:
		m.loadDashboard()
	case navigation.ScreenAddHarvest:
		m.form = newHarvestForm(m.harvest.Catalog().ListKnownTypes(), m.harvest.Today())
		return textinput.Blink
	case navigation.ScreenProductDetail:
		m.editing = false
		m.confirmDelete = false
		m.detail = reminder.Status{}
		m.loadDetail()
	case navigation.ScreenReminders:
		m.loadReminders()
	}
	return nil
}

// goTo is fire for Update branches that return the model directly
func (m Model) goTo(ev navigation.Event) (tea.Model, tea.Cmd) {
	cmd := m.fire(ev)
	return m, cmd
}

func (m *Model) setErr(msg string, err error) {
	m.logger.Error(msg, zap.Error(err))
	m.err = msg
}

func (m *Model) loadDashboard() {
	ctx := context.Background()

	products, err := m.harvest.ListProducts(ctx)
	if err != nil {
		m.setErr("Gagal memuat produk", err)
		return
	}
	summary, err := m.harvest.Dashboard(ctx)
	if err != nil {
		m.setErr("Gagal memuat ringkasan", err)
		return
	}
	m.products = products
	m.summary = summary
}

func (m *Model) loadDetail() {
	id, ok := m.nav.SelectedProduct()
	if !ok {
		return
	}
	status, err := m.harvest.GetProduct(context.Background(), id)
	if err != nil {
		m.setErr("Produk tidak ditemukan", err)
		return
	}
	m.detail = status
}

func (m *Model) loadReminders() {
	report, err := m.harvest.Reminders(context.Background())
	if err != nil {
		m.setErr("Gagal memuat reminder", err)
		return
	}
	m.report = report

	items := make([]reminder.Status, 0, len(report.Expired)+len(report.Urgent)+len(report.Soon))
	items = append(items, report.Expired...)
	items = append(items, report.Urgent...)
	items = append(items, report.Soon...)
	m.reminderItems = items
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	session, err := m.sessions.Login(context.Background(), m.login.email.Value(), m.login.password.Value())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			m.err = errFormLogin.Error()
			return m, nil
		}
		m.setErr("Gagal masuk", err)
		return m, nil
	}

	m.session = session
	m.logger.Info("Session started", zap.String("display_name", session.DisplayName))
	return m.goTo(navigation.Event{Kind: navigation.LoggedIn})
}

func moveCursor(cursor, n int, key string) int {
	switch key {
	case "up", "k":
		if cursor > 0 {
			cursor--
		}
	case "down", "j":
		if cursor < n-1 {
			cursor++
		}
	}
	return cursor
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "up", "k", "down", "j":
		m.cursor = moveCursor(m.cursor, len(m.products), key)
	case "enter":
		if m.cursor < len(m.products) {
			id := m.products[m.cursor].Product.ID
			return m.goTo(navigation.Event{Kind: navigation.ViewProduct, ProductID: id})
		}
	case "a":
		m.flash = ""
		return m.goTo(navigation.Event{Kind: navigation.OpenAddHarvest})
	case "r":
		m.flash = ""
		return m.goTo(navigation.Event{Kind: navigation.OpenReminders})
	case "x":
		m.session = nil
		m.flash = ""
		return m.goTo(navigation.Event{Kind: navigation.Logout})
	}
	return m, nil
}

func (m Model) updateAddHarvest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.goTo(navigation.Event{Kind: navigation.Back})
	case "enter":
		name, plantType, date, err := m.form.submit(m.harvest.Today())
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		product, err := m.harvest.AddHarvest(context.Background(), service.HarvestInput{
			Name:        name,
			PlantType:   plantType,
			HarvestDate: date,
		})
		if err != nil {
			m.setErr("Gagal menyimpan panen", err)
			return m, nil
		}
		m.flash = product.Name + " ditambahkan"
		return m.goTo(navigation.Event{Kind: navigation.HarvestSaved})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	product := m.detail.Product
	if product == nil {
		if msg.String() == "esc" {
			return m.goTo(navigation.Event{Kind: navigation.Back})
		}
		return m, nil
	}

	switch {
	case m.confirmDelete:
		switch msg.String() {
		case "y":
			if err := m.harvest.DeleteProduct(ctx, product.ID); err != nil {
				m.setErr("Gagal menghapus produk", err)
				return m, nil
			}
			m.flash = product.Name + " dihapus"
			return m.goTo(navigation.Event{Kind: navigation.ProductDeleted})
		case "n", "esc":
			m.confirmDelete = false
		}
		return m, nil

	case m.editing:
		switch msg.String() {
		case "esc":
			m.editing = false
			m.err = ""
			return m, nil
		case "enter":
			name, plantType, date, err := m.form.submit(m.harvest.Today())
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			if _, err := m.harvest.EditProduct(ctx, product.ID, service.ProductEdit{
				Name:        name,
				PlantType:   plantType,
				HarvestDate: date,
			}); err != nil {
				m.setErr("Gagal menyimpan perubahan", err)
				return m, nil
			}
			m.flash = name + " diperbarui"
			return m.goTo(navigation.Event{Kind: navigation.ProductChanged})
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "backspace":
		return m.goTo(navigation.Event{Kind: navigation.Back})
	case "t":
		updated, err := m.harvest.ToggleHarvested(ctx, product.ID)
		if err != nil {
			m.setErr("Gagal memperbarui status", err)
			return m, nil
		}
		if updated.IsHarvested {
			m.flash = updated.Name + " sudah diambil dari gudang"
		} else {
			m.flash = updated.Name + " kembali ke stok"
		}
		return m.goTo(navigation.Event{Kind: navigation.ProductChanged})
	case "e":
		m.editing = true
		m.form = newEditForm(m.harvest.Catalog().ListKnownTypes(), product)
	case "d":
		m.confirmDelete = true
	}
	return m, nil
}

func (m Model) updateReminders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "backspace":
		return m.goTo(navigation.Event{Kind: navigation.Back})
	case "up", "k", "down", "j":
		m.cursor = moveCursor(m.cursor, len(m.reminderItems), key)
	case "enter":
		if m.cursor < len(m.reminderItems) {
			id := m.reminderItems[m.cursor].Product.ID
			return m.goTo(navigation.Event{Kind: navigation.ViewProduct, ProductID: id})
		}
	}
	return m, nil
}
