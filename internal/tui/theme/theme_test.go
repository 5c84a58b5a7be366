package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByNameFallsBack(t *testing.T) {
	assert.Equal(t, "ledger", ByName("nope").Name)
	assert.Equal(t, "paper", ByName("paper").Name)
}

func TestNamesAndValid(t *testing.T) {
	names := Names()
	require.Len(t, names, len(All))
	for _, n := range names {
		assert.Truef(t, Valid(n), "Valid(%q)", n)
	}
	assert.False(t, Valid("solarized"))
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { SetActive("ledger") })

	SetActive("terminal")
	assert.Equal(t, Terminal.Name, Active.Name)
	SetActive("missing")
	assert.Equal(t, Ledger.Name, Active.Name)
}

func TestSpendColor(t *testing.T) {
	th := Ledger
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, string(th.Green)},
		{0.75, string(th.Yellow)},
		{0.95, string(th.Orange)},
		{1.0, string(th.Orange)},
		{1.2, string(th.Red)},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, string(th.Spend(tt.ratio)), "Spend(%v)", tt.ratio)
	}
}
