package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/journal"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/report"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mkEntry(t *testing.T, date, day, tod, text string) journal.Entry {
	t.Helper()
	d, err := time.Parse(journal.DateFormat, date)
	require.NoError(t, err)
	return journal.Entry{Date: d, DayOfWeek: day, TimeOfDay: tod, Text: text}
}

func newTestServer(t *testing.T, entries []journal.Entry, summarizer report.Summarizer) (*Server, *gin.Engine) {
	t.Helper()
	dir := t.TempDir()
	s := &Server{
		Store:      store.New(entries),
		Builder:    report.NewBuilder(summarizer, dir, "test-model"),
		ReportsDir: dir,
	}
	return s, s.SetupRouter()
}

func sampleEntries(t *testing.T) []journal.Entry {
	return []journal.Entry{
		mkEntry(t, "2024-01-05", "Friday", "morning", "felt OCD today"),
		mkEntry(t, "2024-01-10", "Wednesday", "evening", "productive day at work"),
		mkEntry(t, "2024-02-01", "Thursday", "afternoon", "calm and happy"),
	}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, r := newTestServer(t, nil, nil)
	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetEntriesEmptyStore(t *testing.T) {
	_, r := newTestServer(t, nil, nil)
	w := doJSON(r, http.MethodGet, "/entries", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetEntries(t *testing.T) {
	_, r := newTestServer(t, sampleEntries(t), nil)
	w := doJSON(r, http.MethodGet, "/entries", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var records []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "2024-01-05", records[0]["date"])
	assert.Equal(t, "Friday", records[0]["day_of_week"])
}

func TestFilterEntriesEndpoint(t *testing.T) {
	_, r := newTestServer(t, sampleEntries(t), nil)
	w := doJSON(r, http.MethodPost, "/entries/filter", FilterRequest{Days: []string{"Friday"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int `json:"count"`
		Entries []struct {
			Text string `json:"text"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "felt OCD today", resp.Entries[0].Text)
}

func TestFilterEntriesBadDate(t *testing.T) {
	_, r := newTestServer(t, sampleEntries(t), nil)
	w := doJSON(r, http.MethodPost, "/entries/filter", FilterRequest{DateFrom: "05/01/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateReportMissingRange(t *testing.T) {
	_, r := newTestServer(t, sampleEntries(t), nil)
	w := doJSON(r, http.MethodPost, "/reports", GenerateReportRequest{DateFrom: "2024-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "analysis date range")
}

func TestGenerateReportEmptyStore(t *testing.T) {
	_, r := newTestServer(t, nil, nil)
	w := doJSON(r, http.MethodPost, "/reports", GenerateReportRequest{DateFrom: "2024-01-01", DateTo: "2024-12-31"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No journal entries available")
}

func TestGenerateReportEmptyWindow(t *testing.T) {
	_, r := newTestServer(t, sampleEntries(t), nil)
	w := doJSON(r, http.MethodPost, "/reports", GenerateReportRequest{DateFrom: "2030-01-01", DateTo: "2030-12-31"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "selected date range")
}

func TestGenerateReportAndFetchRoundTrip(t *testing.T) {
	mock := &report.MockSummarizer{Response: "Quiet but steady weeks."}
	_, r := newTestServer(t, sampleEntries(t), mock)

	w := doJSON(r, http.MethodPost, "/reports", GenerateReportRequest{
		DateFrom:     "2024-01-01",
		DateTo:       "2024-12-31",
		TrendPhrases: "happy, OCD",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Filename string `json:"filename"`
		Path     string `json:"path"`
		URL      string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/reports/"+resp.Filename, resp.URL)

	written, err := os.ReadFile(resp.Path)
	require.NoError(t, err)

	// Fetching the report back by filename returns byte-identical content.
	fetch := doJSON(r, http.MethodGet, "/reports/"+resp.Filename, nil)
	require.Equal(t, http.StatusOK, fetch.Code)
	assert.Equal(t, written, fetch.Body.Bytes())
	assert.Contains(t, fetch.Header().Get("Content-Type"), "text/html")
}

func TestGetReportMissingFile(t *testing.T) {
	_, r := newTestServer(t, sampleEntries(t), nil)
	w := doJSON(r, http.MethodGet, "/reports/journal_report_20240101_000000.html", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReportRejectsTraversal(t *testing.T) {
	s, r := newTestServer(t, sampleEntries(t), nil)

	// A file outside the reports directory must stay unreachable.
	outside := filepath.Join(filepath.Dir(s.ReportsDir), "secret.html")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	for _, path := range []string{
		"/reports/../secret.html",
		"/reports/..%2Fsecret.html",
		"/reports/subdir/../../secret.html",
	} {
		w := doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
		assert.NotContains(t, w.Body.String(), "secret")
	}
}
