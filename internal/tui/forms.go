package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"harvest-keeper/internal/domain"
)

var (
	errFormName      = errors.New("Nama produk wajib diisi")
	errFormPlantType = errors.New("Pilih tipe tumbuhan")
	errFormDate      = errors.New("Tanggal panen harus berformat YYYY-MM-DD")
	errFormFuture    = errors.New("Tanggal panen tidak boleh di masa depan")
	errFormLogin     = errors.New("Email dan password wajib diisi")
)

const (
	fieldName = iota
	fieldPlantType
	fieldDate
	fieldCount
)

// harvestForm is shared by the add screen and the edit mode of the
// detail screen
type harvestForm struct {
	name       textinput.Model
	date       textinput.Model
	plantTypes []string
	plantIdx   int
	focus      int
}

func newHarvestForm(plantTypes []string, today domain.Date) harvestForm {
	name := textinput.New()
	name.Placeholder = "Contoh: Tomat Merah"
	name.CharLimit = 100

	date := textinput.New()
	date.Placeholder = domain.DateLayout
	date.CharLimit = len(domain.DateLayout)
	date.SetValue(today.String())

	f := harvestForm{
		name:       name,
		date:       date,
		plantTypes: plantTypes,
	}
	f.setFocus(fieldName)
	return f
}

// newEditForm prefills the form from p. A plant type missing from the
// catalog is kept as an extra choice so editing does not silently change it.
func newEditForm(plantTypes []string, p *domain.Product) harvestForm {
	types := append([]string(nil), plantTypes...)
	idx := -1
	for i, t := range types {
		if t == p.PlantType {
			idx = i
			break
		}
	}
	if idx < 0 {
		types = append(types, p.PlantType)
		idx = len(types) - 1
	}

	f := newHarvestForm(types, p.HarvestDate)
	f.name.SetValue(p.Name)
	f.plantIdx = idx
	return f
}

func (f *harvestForm) setFocus(field int) {
	f.focus = (field + fieldCount) % fieldCount
	f.name.Blur()
	f.date.Blur()
	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldDate:
		f.date.Focus()
	}
}

func (f *harvestForm) plantType() string {
	if len(f.plantTypes) == 0 {
		return ""
	}
	return f.plantTypes[f.plantIdx]
}

func (f *harvestForm) cyclePlantType(step int) {
	if n := len(f.plantTypes); n > 0 {
		f.plantIdx = (f.plantIdx + step + n) % n
	}
}

func (f harvestForm) Update(msg tea.KeyMsg) (harvestForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return f, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return f, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldPlantType:
		switch msg.String() {
		case "left", "h":
			f.cyclePlantType(-1)
		case "right", "l", " ":
			f.cyclePlantType(1)
		}
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	}
	return f, cmd
}

// submit checks the form the way the HTTP layer checks a request body
func (f harvestForm) submit(today domain.Date) (name, plantType string, date domain.Date, err error) {
	name = strings.TrimSpace(f.name.Value())
	if name == "" {
		return "", "", domain.Date{}, errFormName
	}
	plantType = f.plantType()
	if plantType == "" {
		return "", "", domain.Date{}, errFormPlantType
	}
	date, err = domain.ParseDate(strings.TrimSpace(f.date.Value()))
	if err != nil {
		return "", "", domain.Date{}, errFormDate
	}
	if date.After(today) {
		return "", "", domain.Date{}, errFormFuture
	}
	return name, plantType, date, nil
}

type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "nama@email.com"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{email: email, password: password}
}

func (f loginForm) Update(msg tea.KeyMsg) (loginForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		f.focus = 1 - f.focus
		if f.focus == 0 {
			f.password.Blur()
			f.email.Focus()
		} else {
			f.email.Blur()
			f.password.Focus()
		}
		return f, nil
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}
