package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/journal"
)

// fetchTimeout bounds the entry fetch; report generation calls use the
// longer LLM timeout instead.
const fetchTimeout = 10 * time.Second

type entryRecord struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	TimeOfDay string `json:"time_of_day"`
	Text      string `json:"text"`
}

// FetchEntries retrieves the full entry collection from a running journal
// API. Any connection failure, non-200 status, or malformed body returns an
// error; callers must keep that distinct from a successful empty collection.
func FetchEntries(ctx context.Context, baseURL string) ([]journal.Entry, error) {
	url := strings.TrimRight(baseURL, "/") + "/entries"

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entries endpoint returned status %d", resp.StatusCode)
	}

	var records []entryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}

	entries := make([]journal.Entry, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse(journal.DateFormat, rec.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid entry date '%s': %w", rec.Date, err)
		}
		entries = append(entries, journal.Entry{
			Date:      date,
			DayOfWeek: rec.DayOfWeek,
			TimeOfDay: rec.TimeOfDay,
			Text:      rec.Text,
		})
	}
	return entries, nil
}
