// Package analysis implements the grouping and aggregation behind the
// report: per-group text excerpts for model prompts, the overall sample,
// and phrase-by-month occurrence counts.
package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/journal"
)

// Character budgets chosen for model token safety.
const (
	ExcerptCharsPerGroup = 600
	OverallSampleChars   = 2500
	entrySampleChars     = 200
)

// GroupExcerpt is the budget-capped excerpt text for one group value.
type GroupExcerpt struct {
	Group    string `json:"group"`
	Excerpts string `json:"excerpts"`
}

// MonthCount is one point of a trend series.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Excerpt truncates text to at most maxChars characters, cutting at a word
// boundary when one exists inside the window.
func Excerpt(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return strings.TrimSpace(text)
	}
	cut := string(runes[:maxChars])
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}

// buildGroupedExcerpts accumulates entry texts per group, in collection
// order, until the per-group budget is met or exceeded. Groups appear in the
// order they are first encountered.
func buildGroupedExcerpts(entries []journal.Entry, key func(journal.Entry) string, budget int) []GroupExcerpt {
	var order []string
	texts := map[string][]string{}
	for _, e := range entries {
		k := key(e)
		if _, seen := texts[k]; !seen {
			order = append(order, k)
		}
		texts[k] = append(texts[k], e.Text)
	}

	result := make([]GroupExcerpt, 0, len(order))
	for _, k := range order {
		var parts []string
		total := 0
		for _, t := range texts[k] {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			take := budget - total
			if take <= 0 {
				break
			}
			if n := len([]rune(t)); n < take {
				take = n
			}
			chunk := Excerpt(t, take)
			parts = append(parts, chunk)
			total += len([]rune(chunk))
			if total >= budget {
				break
			}
		}
		result = append(result, GroupExcerpt{Group: k, Excerpts: strings.Join(parts, " ")})
	}
	return result
}

// ExcerptsByMonth groups by YYYY-MM month label, first-seen order.
func ExcerptsByMonth(entries []journal.Entry) []GroupExcerpt {
	return buildGroupedExcerpts(entries, journal.Entry.Month, ExcerptCharsPerGroup)
}

// ExcerptsByDay groups by day of week in canonical weekday order. Entries
// whose day does not resolve to a known weekday are dropped.
func ExcerptsByDay(entries []journal.Entry) []GroupExcerpt {
	var ordered []journal.Entry
	for _, day := range journal.DayOrder {
		for _, e := range entries {
			if e.DayOfWeek == day {
				ordered = append(ordered, e)
			}
		}
	}
	return buildGroupedExcerpts(ordered, func(e journal.Entry) string { return e.DayOfWeek }, ExcerptCharsPerGroup)
}

// ExcerptsByTime groups by time-of-day bucket, first-seen order.
func ExcerptsByTime(entries []journal.Entry) []GroupExcerpt {
	return buildGroupedExcerpts(entries, func(e journal.Entry) string { return e.TimeOfDay }, ExcerptCharsPerGroup)
}

// OverallSample concatenates truncated per-entry excerpts across the whole
// collection, in collection order, until the global budget is reached. Feeds
// the overall activity and emotion prompts.
func OverallSample(entries []journal.Entry) string {
	var parts []string
	total := 0
	for _, e := range entries {
		t := strings.TrimSpace(e.Text)
		if t == "" {
			continue
		}
		chunk := Excerpt(t, entrySampleChars)
		parts = append(parts, chunk)
		total += len([]rune(chunk))
		if total >= OverallSampleChars {
			break
		}
	}
	return strings.Join(parts, " ")
}

// PhraseMatches reports whether the entry text contains every
// whitespace-separated word of the phrase as a case-insensitive substring.
// This is deliberately stricter than the display filter's OR-of-phrases.
func PhraseMatches(text, phrase string) bool {
	if text == "" || phrase == "" {
		return false
	}
	lower := strings.ToLower(text)
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

// PhraseCountsByMonth counts matching entries per month, one point per month
// that has any entries at all, months sorted chronologically ascending.
// Months where the phrase never matches keep an explicit zero count.
func PhraseCountsByMonth(entries []journal.Entry, phrase string) []MonthCount {
	counts := map[string]int{}
	for _, e := range entries {
		m := e.Month()
		if _, ok := counts[m]; !ok {
			counts[m] = 0
		}
		if PhraseMatches(e.Text, phrase) {
			counts[m]++
		}
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	series := make([]MonthCount, 0, len(months))
	for _, m := range months {
		series = append(series, MonthCount{Month: m, Count: counts[m]})
	}
	return series
}

// MonthLabels returns the distinct YYYY-MM labels present in the collection,
// sorted ascending. Used as the month axis for report tables.
func MonthLabels(entries []journal.Entry) []string {
	seen := map[string]bool{}
	var labels []string
	for _, e := range entries {
		m := e.Month()
		if !seen[m] {
			seen[m] = true
			labels = append(labels, m)
		}
	}
	sort.Strings(labels)
	return labels
}
