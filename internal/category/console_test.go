package category

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banklens-dev/banklens/internal/model"
)

func consoleResolve(t *testing.T, input string) (Decision, string) {
	t.Helper()
	var out bytes.Buffer
	o := NewConsoleOracle(strings.NewReader(input), &out)
	d, err := o.Resolve(txnWith("CARTE MYSTERY SHOP"), model.AllCategories)
	require.NoError(t, err)
	return d, out.String()
}

func TestConsoleResolveSelection(t *testing.T) {
	d, out := consoleResolve(t, "1\nMystery\n")
	assert.Equal(t, model.Groceries, d.Category)
	assert.Equal(t, "Mystery", d.Pattern)
	assert.False(t, d.Ignore)

	assert.Contains(t, out, "Transaction Categorization")
	assert.Contains(t, out, "Transaction description: CARTE MYSTERY SHOP")
	assert.Contains(t, out, "1: Groceries")
	assert.Contains(t, out, "18: Ignore this transaction")
}

func TestConsoleResolveBlankDefaultsToMiscellaneous(t *testing.T) {
	d, _ := consoleResolve(t, "\n\n")
	assert.Equal(t, model.MiscellaneousOther, d.Category)
	assert.Empty(t, d.Pattern)
}

func TestConsoleResolveIgnoreOption(t *testing.T) {
	d, _ := consoleResolve(t, "18\n")
	assert.True(t, d.Ignore)
}

func TestConsoleResolveRepromptsOnInvalidInput(t *testing.T) {
	d, out := consoleResolve(t, "abc\n99\n2\nPizza\n")
	assert.Equal(t, model.DiningEntertainment, d.Category)
	assert.Contains(t, out, "Invalid index. Please enter a valid integer value.")
	assert.Contains(t, out, "Invalid index. Please enter a value between 1 and 18")
}

func TestConsoleRetryPattern(t *testing.T) {
	var out bytes.Buffer
	o := NewConsoleOracle(strings.NewReader("Another Pattern\n"), &out)

	p, err := o.RetryPattern(txnWith("CARTE MYSTERY SHOP"))
	require.NoError(t, err)
	assert.Equal(t, "Another Pattern", p)
	assert.Contains(t, out.String(), "Could not deduce the category from given pattern. Please try again.")
}
