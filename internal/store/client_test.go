package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entries", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2024-01-05","day_of_week":"Friday","time_of_day":"morning","text":"felt OCD today"}]`))
	}))
	defer ts.Close()

	entries, err := FetchEntries(context.Background(), ts.URL)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Friday", entries[0].DayOfWeek)
	assert.Equal(t, "felt OCD today", entries[0].Text)
}

func TestFetchEntriesEmptyListIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	entries, err := FetchEntries(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchEntriesNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := FetchEntries(context.Background(), ts.URL)
	assert.Error(t, err)
}

func TestFetchEntriesMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer ts.Close()

	_, err := FetchEntries(context.Background(), ts.URL)
	assert.Error(t, err)
}

func TestFetchEntriesConnectionFailure(t *testing.T) {
	_, err := FetchEntries(context.Background(), "http://127.0.0.1:1")
	assert.Error(t, err)
}
