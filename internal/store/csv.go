// Package store loads the journal entry collection from persistent storage
// and exposes it as a read-only snapshot, plus an HTTP client for fetching
// the same collection from a running API instance.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/journal"
)

// Store holds the entry snapshot for one process run. It is populated once
// at load time and never mutated afterwards; filtering and aggregation
// always work on copies of the view, not in place.
type Store struct {
	entries []journal.Entry
}

// New wraps an already-loaded collection. Used by tests and by callers that
// source entries elsewhere (e.g. over HTTP).
func New(entries []journal.Entry) *Store {
	return &Store{entries: entries}
}

// NewFromCSV loads entries from a CSV file with columns
// date,day_of_week,time_of_day,text. A missing file yields an empty store
// (served as zero entries), not an error; a malformed file does error, so
// "no data loaded" stays distinguishable from "loaded but empty".
func NewFromCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Store{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open entries file '%s': %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return &Store{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read entries header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	dateIdx, ok := col["date"]
	if !ok {
		return nil, fmt.Errorf("entries file '%s' has no date column", path)
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var entries []journal.Entry
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read entries row %d: %w", line, err)
		}
		date, err := time.Parse(journal.DateFormat, strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("invalid date on row %d: %w", line, err)
		}
		day := field(record, "day_of_week")
		if day == "" {
			// Day of week is derived from the date at ingestion.
			day = date.Weekday().String()
		}
		entries = append(entries, journal.Entry{
			Date:      date,
			DayOfWeek: day,
			TimeOfDay: field(record, "time_of_day"),
			Text:      field(record, "text"),
		})
	}

	return &Store{entries: entries}, nil
}

// Entries returns the loaded snapshot. Callers must treat it as read-only.
func (s *Store) Entries() []journal.Entry {
	return s.entries
}

func (s *Store) Len() int {
	return len(s.entries)
}
