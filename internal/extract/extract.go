// Package extract turns raw bank statement documents into validated
// Statements. Each bank format gets one Extractor; all of them share a
// single row-classification algorithm driven by a per-bank table layout.
package extract

import (
	"fmt"
	"strings"

	"github.com/banklens-dev/banklens/internal/model"
)

// Extractor parses one bank's statement documents.
type Extractor interface {
	// Bank returns the bank nomination stamped on every transaction.
	Bank() string
	// Extract parses the document into a Statement. It does not validate.
	Extract(docPath string) (*model.Statement, error)
}

// UnsupportedDocumentError is returned when no extractor recognizes a
// document or its content.
type UnsupportedDocumentError struct {
	Document string
	Reason   string
}

func (e *UnsupportedDocumentError) Error() string {
	return fmt.Sprintf("unsupported document %s: %s", e.Document, e.Reason)
}

// ExtractAndValidate runs an extractor and gates the result through
// reconciliation. A statement that fails its balance invariants is an
// extractor bug or an unhandled layout variant, never a usable result.
func ExtractAndValidate(ex Extractor, docPath string) (*model.Statement, error) {
	st, err := ex.Extract(docPath)
	if err != nil {
		return nil, err
	}
	if err := Validate(st); err != nil {
		return nil, err
	}
	return st, nil
}

// Registry holds extractors keyed by bank name.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor. Panics on duplicate bank name.
func (r *Registry) Register(ex Extractor) {
	key := strings.ToLower(ex.Bank())
	if _, ok := r.extractors[key]; ok {
		panic("duplicate extractor for bank: " + key)
	}
	r.extractors[key] = ex
}

// Get returns the extractor for a bank, or nil.
func (r *Registry) Get(bank string) Extractor {
	return r.extractors[strings.ToLower(bank)]
}

// Banks returns the registered bank names.
func (r *Registry) Banks() []string {
	banks := make([]string, 0, len(r.extractors))
	for k := range r.extractors {
		banks = append(banks, k)
	}
	return banks
}

// DefaultRegistry returns a registry with all built-in extractors, using
// src to read tabular PDF content.
func DefaultRegistry(src TableSource) *Registry {
	r := NewRegistry()
	r.Register(NewBNPExtractor(src))
	r.Register(NewHelloBankExtractor(src))
	r.Register(NewSGExtractor(src))
	r.Register(NewRevolutExtractor())
	return r
}
