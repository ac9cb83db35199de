package category

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/banklens-dev/banklens/internal/model"
)

// ModelOracle resolves categorization misses by asking a Gemini model.
// An unrecognized category key in the response is substituted with the
// catch-all category and logged, never surfaced as an error.
type ModelOracle struct {
	ctx    context.Context
	client *genai.Client
	model  string
}

// NewModelOracle creates a model-backed oracle. Credentials come from
// the environment (GEMINI_API_KEY).
func NewModelOracle(ctx context.Context, modelName string) (*ModelOracle, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &ModelOracle{ctx: ctx, client: client, model: modelName}, nil
}

// Resolve asks the model for a category key and persists a rule keyed
// by the transaction's own description.
func (o *ModelOracle) Resolve(txn model.Transaction, candidates []model.Category) (Decision, error) {
	prompt := categoryPrompt(candidates) + "\n" + RenderTransaction(txn)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := o.client.Models.GenerateContent(o.ctx, o.model, contents, nil)
	if err != nil {
		return Decision{}, fmt.Errorf("generate content: %w", err)
	}

	key := strings.ToUpper(strings.TrimSpace(resp.Text()))
	cat, err := model.ParseCategory(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: model returned invalid category %q, using %s\n", key, model.MiscellaneousOther)
		cat = model.MiscellaneousOther
	}
	return Decision{Category: cat, Pattern: txn.Description}, nil
}

// RetryPattern returns the description itself, which always matches its
// own token set.
func (o *ModelOracle) RetryPattern(txn model.Transaction) (string, error) {
	return txn.Description, nil
}

func categoryPrompt(candidates []model.Category) string {
	var b strings.Builder
	b.WriteString("You are a smart assistant that help user to categorize his transaction to one of these categories below.\n")
	b.WriteString("Output should the key of the category only.\n")
	for _, cat := range candidates {
		b.WriteString(string(cat))
		b.WriteString(": ")
		b.WriteString(cat.Label())
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTransaction writes the transaction as a short natural-language
// sentence for the model.
func RenderTransaction(txn model.Transaction) string {
	if txn.ExpenseAmount.IsPositive() {
		return "paid for " + txn.Description + " " + txn.ExpenseAmount.String() + " euros"
	}
	return "received " + txn.IncomeAmount.String() + " euros from " + txn.Description
}
