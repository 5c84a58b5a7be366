package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// setupValues is bound to the first-run form. It is shared by pointer so
// every copy of the App sees the form's writes.
type setupValues struct {
	amount     string
	incomeType model.IncomeType
	frequency  model.Frequency
	currency   string
	theme      string
}

func newSetupValues(in model.Income, cfg config.Config) *setupValues {
	return &setupValues{
		amount:     amountValue(in.Amount),
		incomeType: model.IncomeType(cfg.Defaults.IncomeType),
		frequency:  model.Frequency(cfg.Defaults.Frequency),
		currency:   cfg.General.Currency,
		theme:      cfg.Appearance.Theme,
	}
}

func validateAmount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := decimal.NewFromString(pipeline.NormalizeAmount(s)); err != nil {
		return errors.New("enter a number, e.g. 2500")
	}
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	typeOpts := make([]huh.Option[model.IncomeType], len(model.IncomeTypes))
	for i, it := range model.IncomeTypes {
		typeOpts[i] = huh.NewOption(string(it), it)
	}
	freqOpts := make([]huh.Option[model.Frequency], len(model.Frequencies))
	for i, f := range model.Frequencies {
		freqOpts[i] = huh.NewOption(string(f), f)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tally").
				Description("Tell us about your income. Categories start from a\nsensible split you can change on the Budget tab."),
			huh.NewInput().
				Title("Income amount").
				Placeholder("2500").
				Validate(validateAmount).
				Value(&v.amount),
			huh.NewSelect[model.Frequency]().
				Title("How often is it paid?").
				Options(freqOpts...).
				Value(&v.frequency),
			huh.NewSelect[model.IncomeType]().
				Title("Where does it come from?").
				Options(typeOpts...).
				Value(&v.incomeType),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Value(&v.currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.theme),
		),
	).WithTheme(huh.ThemeDracula())
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishSetup()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// finishSetup saves the chosen income for the selected month and the
// chosen preferences to the config file.
func (a *App) finishSetup() {
	v := a.setupVals

	if c := strings.TrimSpace(v.currency); c != "" {
		a.cfg.General.Currency = c
	}
	a.cfg.Appearance.Theme = v.theme
	a.cfg.Defaults.IncomeType = string(v.incomeType)
	a.cfg.Defaults.Frequency = string(v.frequency)
	theme.SetActive(v.theme)

	in := model.Income{
		Amount:    pipeline.ParseAmount(v.amount),
		Type:      v.incomeType,
		Frequency: v.frequency,
	}
	a.apply(model.Patch{Income: &in}, "Welcome! Your budget is ready")
	if a.flashKind == components.StatusError {
		return
	}
	a.persistConfig("Welcome! Your budget is ready")
}
