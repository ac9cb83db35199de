package category

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banklens-dev/banklens/internal/model"
)

// ConsoleOracle resolves categorization misses by prompting a human on
// the terminal. Each invocation blocks the pipeline until answered.
type ConsoleOracle struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleOracle creates an oracle reading from in and writing to out.
func NewConsoleOracle(in io.Reader, out io.Writer) *ConsoleOracle {
	return &ConsoleOracle{in: bufio.NewReader(in), out: out}
}

// Resolve presents the transaction and the category list plus an
// "ignore" option, and reads a numeric selection. Blank input selects
// the catch-all category.
func (o *ConsoleOracle) Resolve(txn model.Transaction, candidates []model.Category) (Decision, error) {
	fmt.Fprintln(o.out, strings.Repeat("-", 25)+"Transaction Categorization"+strings.Repeat("-", 25))
	fmt.Fprintf(o.out, "\nTransaction description: %s\n", txn.Description)
	fmt.Fprintf(o.out, "Transaction expense: %s\n", txn.ExpenseAmount.String())
	fmt.Fprintf(o.out, "Transaction income: %s\n", txn.IncomeAmount.String())
	fmt.Fprintf(o.out, "Transaction date: %s\n", txn.Date.Format("2006-01-02"))
	fmt.Fprintln(o.out, "Please select a category:")

	for i, cat := range candidates {
		fmt.Fprintf(o.out, "%d: %s\n", i+1, cat.Label())
	}
	ignoreIdx := len(candidates) + 1
	fmt.Fprintf(o.out, "%d: Ignore this transaction\n", ignoreIdx)

	idx, err := o.readIndex("Choose category", 1, ignoreIdx)
	if err != nil {
		return Decision{}, err
	}
	if idx == 0 {
		// Blank input defaults to the catch-all category.
		return o.withPattern(Decision{Category: model.MiscellaneousOther})
	}
	if idx == ignoreIdx {
		return Decision{Ignore: true}, nil
	}
	return o.withPattern(Decision{Category: candidates[idx-1]})
}

// RetryPattern reports the failed attempt and asks for another pattern.
func (o *ConsoleOracle) RetryPattern(txn model.Transaction) (string, error) {
	fmt.Fprintln(o.out, "Could not deduce the category from given pattern. Please try again.")
	return o.readLine("Enter a key / pattern description name (Optional): ")
}

func (o *ConsoleOracle) withPattern(d Decision) (Decision, error) {
	pattern, err := o.readLine("Enter a key / pattern description name (Optional): ")
	if err != nil {
		return Decision{}, err
	}
	d.Pattern = pattern
	return d, nil
}

// readIndex keeps prompting until it gets a blank line (returned as 0)
// or an integer within [min, max].
func (o *ConsoleOracle) readIndex(msg string, min, max int) (int, error) {
	for {
		line, err := o.readLine(fmt.Sprintf("%s (Optional): ", msg))
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(line) == "" {
			return 0, nil
		}
		idx, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(o.out, "Invalid index. Please enter a valid integer value.")
			continue
		}
		if idx < min || idx > max {
			fmt.Fprintf(o.out, "Invalid index. Please enter a value between %d and %d\n", min, max)
			continue
		}
		return idx, nil
	}
}

func (o *ConsoleOracle) readLine(prompt string) (string, error) {
	fmt.Fprint(o.out, prompt)
	line, err := o.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
