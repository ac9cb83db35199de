package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries(runID string) []Entry {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Entry{
		{Timestamp: ts, RunID: runID, Bank: "BNP", Document: "releve-01.pdf", Outcome: OutcomeExtracted},
		{Timestamp: ts, RunID: runID, Bank: "BNP", Document: "releve-02.pdf", Outcome: OutcomeSkipped, Detail: "reconciliation failed: total expense declared 99.99 but computed 50"},
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	dataRoot := t.TempDir()
	require.NoError(t, Append(dataRoot, sampleEntries("run-1")))

	data, err := os.ReadFile(filepath.Join(dataRoot, "logs", "scan-log.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Contains(t, lines[1], "extracted")
}

func TestAppendAccumulatesAcrossRuns(t *testing.T) {
	dataRoot := t.TempDir()
	require.NoError(t, Append(dataRoot, sampleEntries("run-1")))
	require.NoError(t, Append(dataRoot, sampleEntries("run-2")))

	entries, err := Read(dataRoot)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, "run-2", entries[2].RunID)
	assert.Equal(t, OutcomeSkipped, entries[3].Outcome)
	assert.True(t, entries[0].Timestamp.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestReadMissingLogIsEmpty(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestEntryRoundTripKeepsDetail(t *testing.T) {
	e := sampleEntries("run-1")[1]
	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e.Detail, got.Detail)
	assert.Equal(t, e.Outcome, got.Outcome)
}
