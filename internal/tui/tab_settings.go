package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldIncomeType
	settingsFieldFrequency
	settingsFieldCount
)

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd) {
	if key != "enter" {
		return a, nil
	}

	switch a.cursor[tabSettings] {
	case settingsFieldTheme:
		a.cfg.Appearance.Theme = cycle(theme.Names(), a.cfg.Appearance.Theme)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.persistConfig("Theme: " + a.cfg.Appearance.Theme)
	case settingsFieldCurrency:
		return a.startEdit(editCurrency, "", a.cfg.General.Currency, "symbol, e.g. $")
	case settingsFieldIncomeType:
		a.cfg.Defaults.IncomeType = string(cycle(model.IncomeTypes, model.IncomeType(a.cfg.Defaults.IncomeType)))
		a.applyDefaultIncome()
		a.persistConfig("Default income type: " + a.cfg.Defaults.IncomeType)
	case settingsFieldFrequency:
		a.cfg.Defaults.Frequency = string(cycle(model.Frequencies, model.Frequency(a.cfg.Defaults.Frequency)))
		a.applyDefaultIncome()
		a.persistConfig("Default frequency: " + a.cfg.Defaults.Frequency)
	}
	return a, nil
}

// applyDefaultIncome hands the [defaults] income to the book so an empty
// store shows it right away.
func (a *App) applyDefaultIncome() {
	in := model.DefaultIncome()
	in.Type = model.IncomeType(a.cfg.Defaults.IncomeType)
	in.Frequency = model.Frequency(a.cfg.Defaults.Frequency)
	a.book.SetDefaultIncome(in)
	a.refresh()
}

// persistConfig saves settings. A failed save keeps the change for this session.
func (a *App) persistConfig(ok string) {
	if err := a.saveConfig(a.cfg); err != nil {
		a.setFlash("Save failed: "+err.Error(), components.StatusError)
		return
	}
	a.setFlash(ok, components.StatusOK)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	fields := []struct {
		label string
		value string
	}{
		{"Theme", a.cfg.Appearance.Theme},
		{"Currency", a.cfg.General.Currency},
		{"Default income type", a.cfg.Defaults.IncomeType},
		{"Default frequency", a.cfg.Defaults.Frequency},
	}

	var form strings.Builder
	for i, f := range fields {
		if i == settingsFieldCurrency && a.edit.editing(editCurrency, "") {
			form.WriteString(a.renderEditRow(f.label, 20))
		} else {
			form.WriteString(renderRow(i == a.cursor[tabSettings], f.label, f.value, 20, innerW))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(hint("[j/k] navigate  [enter] edit or cycle  [esc] cancel"))

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	months := a.book.Keys()
	span := "none"
	if len(months) > 0 {
		span = fmt.Sprintf("%s → %s", months[0].Label(), months[len(months)-1].Label())
	}

	var info strings.Builder
	info.WriteString(labelStyle.Render("Saved to:      ") + valueStyle.Render(a.location) + "\n")
	info.WriteString(labelStyle.Render("Backend:       ") + valueStyle.Render(a.cfg.General.Backend) + "\n")
	info.WriteString(labelStyle.Render("Months saved:  ") + valueStyle.Render(fmt.Sprint(len(months))) + "\n")
	info.WriteString(labelStyle.Render("Range:         ") + valueStyle.Render(span) + "\n")
	info.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", form.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}
