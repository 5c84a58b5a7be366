// Package tui provides the interactive Bubble Tea dashboard for tally.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	tabBudget = iota
	tabCheckin
	tabGoal
	tabSettings
	tabCount
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 140
	minContentHeight = 5
)

// Options configures a new App.
type Options struct {
	// Month is the month shown first. Empty means the current month.
	Month model.MonthKey
	// Location describes where budgets are saved, for the status bar.
	Location string
	// Setup shows the first-run form before the dashboard.
	Setup bool
	// SaveConfig persists settings changes. Defaults to config.Save.
	SaveConfig func(config.Config) error
}

// monthTotal is one bar of the spending history chart.
type monthTotal struct {
	key      model.MonthKey
	spent    decimal.Decimal
	budgeted decimal.Decimal
}

// App is the root Bubble Tea model.
type App struct {
	book       *store.Book
	cfg        config.Config
	saveConfig func(config.Config) error
	location   string

	// Selected month and everything derived from it
	month   model.MonthKey
	rec     model.MonthRecord
	report  model.Report
	stored  bool
	history []monthTotal

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    [tabCount]int

	edit editState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	flash     string
	flashKind components.StatusKind
}

// NewApp creates a new TUI app model over an opened book.
func NewApp(book *store.Book, cfg config.Config, opts Options) App {
	month := opts.Month
	if month == "" {
		month = model.CurrentMonth()
	}
	save := opts.SaveConfig
	if save == nil {
		save = config.Save
	}

	theme.SetActive(cfg.Appearance.Theme)

	a := App{
		book:       book,
		cfg:        cfg,
		saveConfig: save,
		location:   opts.Location,
		month:      month,
	}
	a.refresh()

	if opts.Setup {
		a.setupVals = newSetupValues(a.rec.Income, cfg)
		a.setupForm = newSetupForm(a.setupVals)
		a.needSetup = true
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// refresh recomputes the selected month's record, report and history.
func (a *App) refresh() {
	a.rec = a.book.Month(a.month)
	a.stored = a.book.Months().Has(a.month)
	a.report = pipeline.BuildReport(a.month, a.rec)

	keys := a.book.Keys()
	a.history = make([]monthTotal, 0, len(keys))
	for _, k := range keys {
		r := pipeline.BuildReport(k, a.book.Month(k))
		a.history = append(a.history, monthTotal{key: k, spent: r.TotalSpent, budgeted: r.TotalBudgeted})
	}

	for tab := range a.cursor {
		a.cursor[tab] = min(a.cursor[tab], max(a.rowCount(tab)-1, 0))
	}
}

func (a App) rowCount(tab int) int {
	switch tab {
	case tabBudget:
		return budgetFixedRows + len(a.rec.Categories)
	case tabCheckin:
		return len(a.rec.Categories)
	case tabGoal:
		return goalFieldCount
	case tabSettings:
		return settingsFieldCount
	}
	return 0
}

// apply writes a patch for the selected month and reports the outcome.
func (a *App) apply(p model.Patch, ok string) {
	_, err := a.book.Update(context.Background(), a.month, p)
	a.refresh()
	if err != nil {
		a.setFlash("Save failed: "+err.Error(), components.StatusError)
		return
	}
	a.setFlash(ok, components.StatusOK)
}

func (a *App) setFlash(msg string, kind components.StatusKind) {
	a.flash = msg
	a.flashKind = kind
}

func (a *App) setMonth(k model.MonthKey) {
	a.month = k
	a.flash = ""
	a.refresh()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.needSetup || a.edit.active() {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.edit.active() {
			return a.updateEdit(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "[":
			a.setMonth(a.month.Prev())
			return a, nil
		case "]":
			a.setMonth(a.month.Next())
			return a, nil
		case "t":
			a.setMonth(model.CurrentMonth())
			return a, nil
		case "left":
			a.activeTab = (a.activeTab - 1 + tabCount) % tabCount
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % tabCount
			return a, nil
		case "j", "down":
			if a.cursor[a.activeTab] < a.rowCount(a.activeTab)-1 {
				a.cursor[a.activeTab]++
			}
			return a, nil
		case "k", "up":
			if a.cursor[a.activeTab] > 0 {
				a.cursor[a.activeTab]--
			}
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabBudget:
			return a.updateBudgetKey(key)
		case tabCheckin:
			return a.updateCheckinKey(key)
		case tabGoal:
			return a.updateGoalKey(key)
		case tabSettings:
			return a.updateSettingsKey(key)
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.edit.active() {
		var cmd tea.Cmd
		a.edit.input, cmd = a.edit.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tally needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"b c g x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"[ ]", "Previous / Next month"},
			{"t", "This month"},
			{"j k", "Move between rows"},
		}},
		{"Editing", []struct{ key, desc string }{
			{"Enter", "Edit value / cycle choice"},
			{"a", "Add category (Budget)"},
			{"r", "Rename category (Budget)"},
			{"D", "Delete category / clear goal"},
			{"Esc", "Cancel edit"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + a.renderMonthPill(w)
	statusBar := components.RenderStatusBar(w, a.flash, a.flashKind, a.location)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabCheckin:
		content = a.renderCheckinTab(cw)
	case tabGoal:
		content = a.renderGoalTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderMonthPill draws the selected month and whether it is saved yet.
func (a App) renderMonthPill(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	state := "saved"
	if !a.stored {
		state = "carried forward, not saved yet"
		if a.book.Months().Len() == 0 {
			state = "defaults"
		}
	}

	pill := dim.Render(" ◂ ") + accent.Render(a.month.Label()) + dim.Render(" ▸ │ "+state+" ")
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)
}

// ─── Helpers ────────────────────────────────────────────────────

func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(d, a.cfg.General.Currency)
}

// renderRow draws one selectable line inside a card. The selected line gets
// a marker and a highlight across the card's inner width.
func renderRow(selected bool, label, value string, labelW, innerW int) string {
	t := theme.Active

	if !selected {
		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		return lipgloss.NewStyle().Background(t.Surface).Render("  ") +
			labelStyle.Render(fmt.Sprintf("%-*s ", labelW, label)) +
			valueStyle.Render(value)
	}

	marker := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Render("▸ ")
	l := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true).
		Render(fmt.Sprintf("%-*s ", labelW, label))
	v := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Render(value)

	row := marker + l + v
	if padLen := innerW - lipgloss.Width(row); padLen > 0 {
		row += lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen))
	}
	return row
}

// renderEditRow draws the line currently being edited.
func (a App) renderEditRow(label string, labelW int) string {
	t := theme.Active
	marker := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render("▸ ")
	l := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).
		Render(fmt.Sprintf("%-*s ", labelW, label))
	return marker + l + a.edit.input.View()
}

func hint(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(s)
}

func warnLine(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("⚠ " + s)
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}
