// Package runlog records per-document scan outcomes so batch failures
// remain visible after a collect-and-continue run.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Outcome classifies what happened to one document during a scan.
type Outcome string

const (
	OutcomeExtracted   Outcome = "extracted"
	OutcomeCached      Outcome = "cached"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeFailed      Outcome = "failed"
	OutcomeUnsupported Outcome = "unsupported"
)

// Entry is one row in the scan log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Bank      string
	Document  string
	Outcome   Outcome
	Detail    string
}

// Header is the CSV header for scan-log.csv.
const Header = "timestamp,run_id,bank,document,outcome,detail"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/scan-log.csv"
	colTimestamp = 0
	colRunID     = 1
	colBank      = 2
	colDocument  = 3
	colOutcome   = 4
	colDetail    = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colBank] = e.Bank
	row[colDocument] = e.Document
	row[colOutcome] = string(e.Outcome)
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Bank:      record[colBank],
		Document:  record[colDocument],
		Outcome:   Outcome(record[colOutcome]),
		Detail:    record[colDetail],
	}, nil
}

// Append writes entries to <dataRoot>/logs/scan-log.csv, creating the
// file and header if needed.
func Append(dataRoot string, entries []Entry) error {
	dir := filepath.Join(dataRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening scan log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dataRoot>/logs/scan-log.csv.
// Returns nil if the file does not exist.
func Read(dataRoot string) ([]Entry, error) {
	path := filepath.Join(dataRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening scan log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading scan log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
