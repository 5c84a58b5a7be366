package tui

import (
	"strings"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/components"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// editTarget is the value an open text input will write to.
type editTarget int

const (
	editNone editTarget = iota
	editIncome
	editPercent
	editRename
	editNewCategory
	editSpent
	editGoalTarget
	editGoalMonths
	editCurrency
)

// editState is the shared inline editor. key names the category for
// per-category targets.
type editState struct {
	target editTarget
	key    string
	input  textinput.Model
}

func (e editState) active() bool { return e.target != editNone }

func (e editState) editing(target editTarget, key string) bool {
	return e.target == target && e.key == key
}

func newEditInput(value, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Focus()
	return ti
}

// amountValue pre-fills an editor, leaving it blank for zero.
func amountValue(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func (a App) startEdit(target editTarget, key, value, placeholder string) (tea.Model, tea.Cmd) {
	a.edit = editState{target: target, key: key, input: newEditInput(value, placeholder)}
	a.flash = ""
	return a, a.edit.input.Cursor.BlinkCmd()
}

func (a App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		e := a.edit
		a.edit = editState{}
		a.commitEdit(e, strings.TrimSpace(e.input.Value()))
		return a, nil
	case "esc":
		a.edit = editState{}
		return a, nil
	}

	var cmd tea.Cmd
	a.edit.input, cmd = a.edit.input.Update(msg)
	return a, cmd
}

// commitEdit writes an accepted value. Numbers that don't parse count as zero.
func (a *App) commitEdit(e editState, val string) {
	switch e.target {
	case editIncome:
		in := a.rec.Income
		in.Amount = pipeline.ParseAmount(val)
		a.apply(model.Patch{Income: &in}, "Income updated")

	case editPercent:
		cats, err := a.rec.Categories.WithPercent(e.key, pipeline.ParseAmount(val))
		if err != nil {
			a.setFlash(err.Error(), components.StatusError)
			return
		}
		a.apply(model.Patch{Categories: cats}, "Allocation updated")

	case editRename:
		c, ok := a.rec.Categories.Lookup(e.key)
		if !ok || val == "" {
			return
		}
		c.Name = val
		a.apply(model.Patch{Categories: a.rec.Categories.With(c)}, "Category renamed")

	case editNewCategory:
		if val == "" {
			return
		}
		c := model.Category{Key: a.rec.Categories.NewCategoryKey(val), Name: val, Percent: decimal.Zero}
		a.apply(model.Patch{Categories: a.rec.Categories.With(c)}, "Added "+val)
		a.cursor[tabBudget] = a.rowCount(tabBudget) - 1

	case editSpent:
		a.apply(model.Patch{Spending: a.rec.Spending.With(e.key, pipeline.ParseAmount(val))}, "Spending recorded")

	case editGoalTarget:
		g := a.rec.Goal
		g.Target = pipeline.ParseAmount(val)
		a.apply(model.Patch{Goal: &g}, "Goal updated")

	case editGoalMonths:
		g := a.rec.Goal
		g.Months = pipeline.ParseCount(val)
		a.apply(model.Patch{Goal: &g}, "Goal updated")

	case editCurrency:
		if val == "" {
			val = config.DefaultConfig().General.Currency
		}
		a.cfg.General.Currency = val
		a.persistConfig("Currency updated")
	}
}
