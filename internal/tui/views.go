package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"harvest-keeper/internal/catalog"
	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/navigation"
	"harvest-keeper/internal/reminder"
	"harvest-keeper/internal/service"
)

const appName = "MadangTani"

func (m Model) View() string {
	var body string
	switch m.nav.Current() {
	case navigation.ScreenSplash:
		body = m.viewSplash()
	case navigation.ScreenLogin:
		body = m.viewLogin()
	case navigation.ScreenDashboard:
		body = m.viewDashboard()
	case navigation.ScreenAddHarvest:
		body = m.viewAddHarvest()
	case navigation.ScreenProductDetail:
		body = m.viewDetail()
	case navigation.ScreenReminders:
		body = m.viewReminders()
	}

	if m.err != "" {
		body += "\n" + m.styles.Error.Render(m.err)
	}
	return body + "\n"
}

func (m Model) viewSplash() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(appName),
		m.styles.Subtitle.Render("Kelola stok hasil panen Anda"),
		m.styles.Footer.Render("tekan tombol apa saja"),
	)
}

func (m Model) viewLogin() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Selamat Datang!"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Masuk ke akun " + appName + " Anda"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Label.Render("Email") + m.login.email.View() + "\n")
	sb.WriteString(m.styles.Label.Render("Password") + m.login.password.View() + "\n")
	sb.WriteString(m.styles.Footer.Render("tab: pindah kolom • enter: masuk • ctrl+c: keluar"))
	return sb.String()
}

func (m Model) viewDashboard() string {
	var sb strings.Builder

	greeting := "Dashboard"
	if m.session != nil {
		greeting = "Dashboard • " + m.session.DisplayName
	}
	sb.WriteString(m.styles.Header.Render(greeting))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %d    %s %d    %s\n",
		m.styles.Muted.Render("Total Produk"), m.summary.Total,
		m.styles.Muted.Render("Butuh Perhatian"), m.summary.Attention,
		m.styles.Muted.Render("Hari ini "+m.harvest.Today().String()),
	))
	if m.flash != "" {
		sb.WriteString(m.styles.Body.Render("✓ " + m.flash))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render("Stok Produk"))
	sb.WriteString("\n")

	if len(m.products) == 0 {
		sb.WriteString(m.styles.Muted.Render("Belum ada produk tersimpan. Tambahkan hasil panen pertama Anda."))
		sb.WriteString("\n")
	}
	for i, s := range m.products {
		sb.WriteString(m.productLine(s, i == m.cursor))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Footer.Render("↑/↓: pilih • enter: detail • a: tambah panen • r: reminder • x: keluar akun • q: tutup"))
	return sb.String()
}

func (m Model) productLine(s reminder.Status, selected bool) string {
	p := s.Product
	countdown := fmt.Sprintf("%d hari lagi", s.DaysRemaining)
	if s.Tier == domain.TierExpired {
		countdown = "Lewat"
	}
	if p.IsHarvested {
		countdown = ""
	}

	line := fmt.Sprintf("%-24s %-10s %s  %s  %s",
		truncate(p.Name, 24), p.PlantType, p.HarvestDate, m.styles.Badge(s.Tier, p.IsHarvested), countdown)
	if selected {
		return m.styles.Selected.Render("> " + line)
	}
	return "  " + line
}

func (m Model) viewAddHarvest() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Tambah Panen Baru"))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewForm())
	sb.WriteString("\n")

	profile := m.harvest.Catalog().Lookup(m.form.plantType())
	sb.WriteString(m.styles.Title.Render("Informasi Penyimpanan Optimal"))
	sb.WriteString("\n")
	sb.WriteString(renderProfile(m.styles, profile))
	sb.WriteString(m.styles.Footer.Render("tab: pindah kolom • ←/→: tipe tumbuhan • enter: simpan • esc: batal"))
	return sb.String()
}

func (m Model) viewForm() string {
	marker := func(field int) string {
		if m.form.focus == field {
			return "> "
		}
		return "  "
	}

	var sb strings.Builder
	sb.WriteString(marker(fieldName) + m.styles.Label.Render("Nama Produk") + m.form.name.View() + "\n")
	sb.WriteString(marker(fieldPlantType) + m.styles.Label.Render("Tipe Tumbuhan") + "◀ " + m.form.plantType() + " ▶\n")
	sb.WriteString(marker(fieldDate) + m.styles.Label.Render("Tanggal Panen") + m.form.date.View() + "\n")
	return sb.String()
}

func (m Model) viewDetail() string {
	s := m.detail
	if s.Product == nil {
		return m.styles.Header.Render("Detail Produk") + "\n\n" + m.styles.Footer.Render("esc: kembali")
	}
	p := s.Product

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(p.PlantType))
	sb.WriteString("\n\n")

	if m.editing {
		sb.WriteString(m.viewForm())
		sb.WriteString(m.styles.Footer.Render("tab: pindah kolom • ←/→: tipe tumbuhan • enter: simpan • esc: batal"))
		return sb.String()
	}

	var headline, sub string
	switch s.Tier {
	case domain.TierExpired:
		headline = "Produk Kadaluarsa"
		sub = fmt.Sprintf("Melewati batas %d hari", -s.DaysRemaining)
	case domain.TierUrgent:
		headline = "Perhatian Segera!"
		sub = fmt.Sprintf("Sisa %d hari lagi", s.DaysRemaining)
	default:
		headline = "Kondisi Baik"
		sub = fmt.Sprintf("Sisa %d hari lagi", s.DaysRemaining)
	}
	card := m.styles.Card.BorderForeground(TierColor(s.Tier)).Render(
		lipgloss.JoinVertical(lipgloss.Left, headline, sub),
	)
	sb.WriteString(card)
	sb.WriteString("\n")

	status := "Tandai Sudah Diambil"
	if p.IsHarvested {
		status = "Sudah Diambil dari Gudang"
	}
	sb.WriteString(m.styles.Label.Render("Status") + status + "\n")
	sb.WriteString(m.styles.Label.Render("Tanggal Panen") + p.HarvestDate.String() + "\n")
	sb.WriteString(m.styles.Label.Render("Tanggal Kadaluarsa") + s.ExpiryDate.String() + "\n\n")

	sb.WriteString(m.styles.Title.Render("Informasi Penyimpanan"))
	sb.WriteString("\n")
	sb.WriteString(renderProfile(m.styles, p.Profile()))

	if m.confirmDelete {
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Apakah Anda yakin ingin menghapus %s? (y/n)", p.Name)))
		return sb.String()
	}
	sb.WriteString(m.styles.Footer.Render("t: ubah status diambil • e: edit produk • d: hapus produk • esc: kembali"))
	return sb.String()
}

func (m Model) viewReminders() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Reminder & Notifikasi"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Pantau produk yang memerlukan perhatian"))
	sb.WriteString("\n\n")
	sb.WriteString(renderReport(m.styles, m.report, m.cursor))
	sb.WriteString(m.styles.Footer.Render("↑/↓: pilih • enter: detail • esc: kembali"))
	return sb.String()
}

// renderReport draws the three buckets. cursor indexes the flattened
// expired, urgent, soon sequence; pass -1 for no selection.
func renderReport(st Styles, report service.ReminderReport, cursor int) string {
	var sb strings.Builder

	if len(report.Expired)+len(report.Urgent)+len(report.Soon) == 0 {
		sb.WriteString(st.Title.Render("Semua Produk Aman!"))
		sb.WriteString("\n")
		sb.WriteString(st.Muted.Render("Tidak ada produk yang memerlukan perhatian khusus"))
		sb.WriteString("\n")
		return sb.String()
	}

	index := 0
	section := func(title string, tier domain.UrgencyTier, items []reminder.Status, describe func(reminder.Status) string) {
		if len(items) == 0 {
			return
		}
		heading := lipgloss.NewStyle().Foreground(TierColor(tier)).Bold(true)
		sb.WriteString(heading.Render(fmt.Sprintf("%s (%d)", title, len(items))))
		sb.WriteString("\n")
		for _, s := range items {
			line := fmt.Sprintf("%-24s %s • Panen: %s", truncate(s.Product.Name, 24), describe(s), s.Product.HarvestDate)
			if index == cursor {
				sb.WriteString(st.Selected.Render("> " + line))
			} else {
				sb.WriteString("  " + line)
			}
			sb.WriteString("\n")
			index++
		}
		sb.WriteString("\n")
	}

	section("Kadaluarsa", domain.TierExpired, report.Expired, func(s reminder.Status) string {
		return fmt.Sprintf("Melewati batas %d hari yang lalu", -s.DaysRemaining)
	})
	section("Segera", domain.TierUrgent, report.Urgent, func(s reminder.Status) string {
		return fmt.Sprintf("Akan kadaluarsa dalam %d hari", s.DaysRemaining)
	})
	section("Perhatikan", domain.TierSoon, report.Soon, func(s reminder.Status) string {
		return fmt.Sprintf("Sisa %d hari lagi", s.DaysRemaining)
	})
	return sb.String()
}

func renderProfile(st Styles, p domain.StorageProfile) string {
	var sb strings.Builder
	sb.WriteString(st.Label.Render("Metode Penyimpanan") + p.StorageMethod + "\n")
	sb.WriteString(st.Label.Render("Suhu Ideal") + p.Temperature + "\n")
	sb.WriteString(st.Label.Render("Kelembaban") + p.Humidity + "\n")
	sb.WriteString(st.Label.Render("Ventilasi") + p.Ventilation.String() + "\n")
	sb.WriteString(st.Label.Render("Masa Simpan") + fmt.Sprintf("%d hari", p.ShelfLifeDays) + "\n")
	return sb.String()
}

// RenderReminders formats a reminder report for non-interactive output
func RenderReminders(report service.ReminderReport) string {
	st := DefaultStyles()
	return st.Header.Render("Reminder "+report.Today.String()) + "\n\n" + renderReport(st, report, -1)
}

// RenderCatalog formats the storage profile table for non-interactive output
func RenderCatalog(cat *catalog.Catalog) string {
	st := DefaultStyles()

	var sb strings.Builder
	sb.WriteString(st.Header.Render("Katalog Penyimpanan"))
	sb.WriteString("\n\n")
	for _, e := range cat.Entries() {
		title := e.PlantType
		if e.PlantType == cat.FallbackType() {
			title += " (default)"
		}
		sb.WriteString(st.Title.Render(title))
		sb.WriteString("\n")
		sb.WriteString(renderProfile(st, e.Profile))
		sb.WriteString("\n")
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
