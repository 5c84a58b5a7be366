package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2 // horizontal padding in tab renderer
			if i != active && tab.KeyPos < 0 {
				w += 3 // inactive Settings adds "[x]"
			}
			x := pos + w/2
			require.Equalf(t, i, a.tabAtX(x), "active=%d x=%d", active, x)
			pos += w + 1
		}
		require.Equalf(t, -1, a.tabAtX(pos+50), "active=%d: click past the tabs", active)
	}
}

type testApp struct {
	t     *testing.T
	app   App
	path  string
	saved []config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budgets.json")
	book := store.Open(context.Background(), store.NewJSONFile(path), log.Discard())

	ta := &testApp{t: t, path: path}
	ta.app = NewApp(book, config.DefaultConfig(), Options{
		Month:    "2024-03",
		Location: path,
		SaveConfig: func(c config.Config) error {
			ta.saved = append(ta.saved, c)
			return nil
		},
	})
	ta.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return ta
}

func (ta *testApp) send(msg tea.Msg) {
	ta.t.Helper()
	m, _ := ta.app.Update(msg)
	app, ok := m.(App)
	require.Truef(ta.t, ok, "Update returned %T, want App", m)
	ta.app = app
}

// keys sends each named key; anything else is typed as runes.
func (ta *testApp) keys(keys ...string) {
	ta.t.Helper()
	for _, k := range keys {
		switch k {
		case "enter":
			ta.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			ta.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "down":
			ta.send(tea.KeyMsg{Type: tea.KeyDown})
		case "ctrl+u":
			ta.send(tea.KeyMsg{Type: tea.KeyCtrlU})
		default:
			ta.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// persisted reads the store back from disk.
func (ta *testApp) persisted() store.Months {
	ta.t.Helper()
	m, err := store.NewJSONFile(ta.path).Load(context.Background())
	require.NoError(ta.t, err, "loading saved store")
	return m
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s %v", want, got, msgAndArgs)
}

func TestEditIncomePersists(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("enter", "3000", "enter")

	assertDecimal(t, 3000, ta.app.report.MonthlyIncome)
	rec, ok := ta.persisted().Stored("2024-03")
	require.True(t, ok, "2024-03 was not saved")
	assertDecimal(t, 3000, rec.Income.Amount)
}

func TestEditIncomeAcceptsGroupedAmount(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("enter", "2,500", "enter")

	assertDecimal(t, 2500, ta.app.rec.Income.Amount)
}

func TestCycleFrequency(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("enter", "1200", "enter", "down", "enter")

	require.Equal(t, model.Weekly, ta.app.rec.Income.Frequency)
	assertDecimal(t, 4800, ta.app.report.MonthlyIncome)
}

func TestEscCancelsEdit(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("enter", "999", "esc")

	require.False(t, ta.app.edit.active(), "editor still open after esc")
	assert.False(t, ta.app.stored, "cancelled edit should not save the month")
}

func TestAddAndDeleteCategory(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("a", "Pets", "enter")

	cats := ta.app.rec.Categories
	require.Len(t, cats, 7)
	assert.Equal(t, "pets", cats[6].Key)
	assert.Equal(t, "Pets", cats[6].Name)
	assert.Equal(t, budgetFixedRows+6, ta.app.cursor[tabBudget], "cursor should sit on the new category")

	ta.keys("D")
	_, ok := ta.app.rec.Categories.Lookup("pets")
	require.False(t, ok, "pets still present after delete")
	assert.Len(t, ta.persisted().Get("2024-03").Categories, 6)
}

func TestRecordSpending(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("enter", "1000", "enter") // income
	ta.keys("c", "enter", "450", "enter")

	line := ta.app.report.Lines[0]
	require.Equal(t, "food", line.Key)
	assertDecimal(t, 450, line.Spent)
	assert.True(t, line.Over, "450 against a 300 budget should be over")
	assert.Equal(t, 1, ta.app.report.OverCount)
}

func TestMonthNavigationCarriesForward(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("enter", "2000", "enter", "c", "enter", "80", "enter")
	ta.keys("]")

	require.Equal(t, model.MonthKey("2024-04"), ta.app.month)
	assert.False(t, ta.app.stored, "navigating must not create the month")
	assertDecimal(t, 2000, ta.app.rec.Income.Amount, "carried income")
	assert.True(t, ta.app.report.TotalSpent.IsZero(), "carried spending should be 0")
	assert.False(t, ta.persisted().Has("2024-04"), "2024-04 should not be saved by navigation alone")

	ta.keys("[", "[")
	assert.Equal(t, model.MonthKey("2024-02"), ta.app.month)
}

func TestGoalEditing(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("enter", "1000", "enter") // savings budget is 250
	ta.keys("g", "enter", "1200", "enter", "down", "enter", "4", "enter")

	g := ta.app.report.Goal
	require.True(t, g.Active)
	assertDecimal(t, 300, g.PerMonth)
	assert.True(t, g.Tight, "300 per month against a 250 savings budget should be tight")

	ta.keys("D")
	assert.False(t, ta.app.report.Goal.Active, "goal still active after clearing")
}

func TestSettingsSaveConfig(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("x", "down", "enter", "ctrl+u", "$", "enter")

	require.Equal(t, "$", ta.app.cfg.General.Currency)
	require.Len(t, ta.saved, 1)
	assert.Equal(t, "$", ta.saved[0].General.Currency)
	assert.Contains(t, ta.app.money(decimal.NewFromInt(5)), "$5.00")
}

func TestSettingsDefaultFrequencySeedsEmptyStore(t *testing.T) {
	ta := newTestApp(t)

	ta.keys("x", "down", "down", "down", "enter")

	require.Equal(t, "Weekly", ta.app.cfg.Defaults.Frequency)
	assert.Equal(t, model.Weekly, ta.app.rec.Income.Frequency)
	assert.False(t, ta.app.stored, "changing defaults must not save a month")
}

func TestViewRendersEveryTab(t *testing.T) {
	ta := newTestApp(t)
	ta.keys("enter", "3000", "enter")

	want := []string{"Food & Drinks", "History", "Savings goal", "Default frequency"}
	for tab := range tabCount {
		ta.app.activeTab = tab
		view := ta.app.View()
		assert.Containsf(t, view, want[tab], "tab %d", tab)
		assert.Lenf(t, strings.Split(view, "\n"), 40, "tab %d line count", tab)
	}
}
