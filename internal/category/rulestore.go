// Package category assigns spending categories to transactions via a
// pattern rule store, with interactive and model-backed fallbacks for
// descriptions no rule matches.
package category

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/banklens-dev/banklens/internal/model"
)

// RuleStore merges the built-in keyword table with a user rule file and
// answers case-insensitive token-subset lookups. The store owns the
// merged mapping; the built-in table is never mutated.
//
// Lookup precedence is the rule insertion order: built-ins in
// declaration order, then user rules in file order. A user rule whose
// pattern equals a built-in pattern overrides the category but keeps
// the built-in position. This is the deterministic replacement for the
// original's map-iteration order.
type RuleStore struct {
	path string

	order   []string                  // patterns in precedence order
	rules   map[string]model.Category // pattern → category
	tokens  map[string][]string       // pattern → uppercased tokens
	ignored map[string]struct{}       // transaction signatures left uncategorized forever
}

// storedRules is the on-disk JSON shape of the user rule file.
type storedRules struct {
	CategoryMap                   map[string]string `json:"category_map"`
	IgnoredTransactionsSignatures []string          `json:"ignored_transactions_signatures"`
}

// LoadRuleStore builds a store from the built-in table overlaid by the
// user rule file at path. An absent file yields an empty overlay.
func LoadRuleStore(path string) (*RuleStore, error) {
	s := &RuleStore{
		path:    path,
		rules:   make(map[string]model.Category),
		tokens:  make(map[string][]string),
		ignored: make(map[string]struct{}),
	}
	for _, r := range builtinRules {
		s.put(r.Pattern, r.Category)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var stored storedRules
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}

	// File order of category_map is preserved for precedence.
	userOrder, err := objectKeyOrder(data, "category_map")
	if err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	for _, pattern := range userOrder {
		cat, err := model.ParseCategory(stored.CategoryMap[pattern])
		if err != nil {
			return nil, fmt.Errorf("rule file %s, pattern %q: %w", path, pattern, err)
		}
		s.put(pattern, cat)
	}

	for _, sig := range stored.IgnoredTransactionsSignatures {
		s.ignored[sig] = struct{}{}
	}
	return s, nil
}

// put inserts or overrides a rule, keeping first-insertion precedence.
func (s *RuleStore) put(pattern string, cat model.Category) {
	if _, exists := s.rules[pattern]; !exists {
		s.order = append(s.order, pattern)
	}
	s.rules[pattern] = cat
	s.tokens[pattern] = strings.Fields(strings.ToUpper(pattern))
}

// AddRule registers a pattern → category rule.
func (s *RuleStore) AddRule(pattern string, cat model.Category) {
	s.put(pattern, cat)
}

// RemoveRule drops a pattern. Used to back out a candidate rule that
// failed to match the transaction it was written for.
func (s *RuleStore) RemoveRule(pattern string) {
	if _, exists := s.rules[pattern]; !exists {
		return
	}
	delete(s.rules, pattern)
	delete(s.tokens, pattern)
	for i, p := range s.order {
		if p == pattern {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Ignore records a transaction signature as permanently uncategorized.
func (s *RuleStore) Ignore(signature string) {
	s.ignored[signature] = struct{}{}
}

// IsIgnored reports whether the signature is in the permanent ignore set.
func (s *RuleStore) IsIgnored(signature string) bool {
	_, ok := s.ignored[signature]
	return ok
}

// Lookup resolves a transaction's category. Ignored transactions are
// treated as already resolved and keep their current category. A rule
// matches when every token of its pattern appears in the description's
// whitespace token set, case-insensitively and order-independently.
func (s *RuleStore) Lookup(txn model.Transaction) (model.Category, bool) {
	if s.IsIgnored(txn.Signature()) {
		return txn.Category, true
	}

	descTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToUpper(txn.Description)) {
		descTokens[tok] = struct{}{}
	}

	for _, pattern := range s.order {
		if matchesAll(s.tokens[pattern], descTokens) {
			return s.rules[pattern], true
		}
	}
	return "", false
}

func matchesAll(patternTokens []string, descTokens map[string]struct{}) bool {
	if len(patternTokens) == 0 {
		return false
	}
	for _, tok := range patternTokens {
		if _, ok := descTokens[tok]; !ok {
			return false
		}
	}
	return true
}

// Save rewrites the user rule file with the full merged rule map and
// the ignore set. Patterns are written in sorted order so the file is
// deterministic; precedence on reload follows the file order.
func (s *RuleStore) Save() error {
	stored := storedRules{
		CategoryMap:                   make(map[string]string, len(s.rules)),
		IgnoredTransactionsSignatures: make([]string, 0, len(s.ignored)),
	}
	for pattern, cat := range s.rules {
		stored.CategoryMap[pattern] = string(cat)
	}
	for sig := range s.ignored {
		stored.IgnoredTransactionsSignatures = append(stored.IgnoredTransactionsSignatures, sig)
	}
	sort.Strings(stored.IgnoredTransactionsSignatures)

	data, err := json.MarshalIndent(stored, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling rule file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating rule dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing rule file: %w", err)
	}
	return nil
}

// objectKeyOrder returns the keys of the named top-level JSON object in
// the order they appear in data. encoding/json maps drop ordering, and
// rule precedence depends on it.
func objectKeyOrder(data []byte, field string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	// Enter the top-level object.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != field {
			// Skip this value entirely.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		// Walk the object's keys.
		if _, err := dec.Token(); err != nil { // consume '{'
			return nil, err
		}
		var keys []string
		for dec.More() {
			kTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			k, _ := kTok.(string)
			keys = append(keys, k)
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
		return keys, nil
	}
	return nil, nil
}
