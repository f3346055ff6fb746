// Package report assembles the journal analysis report: a deterministic
// HTML skeleton (counts, excerpts, trend charts) augmented with best-effort
// model summaries that degrade to fixed placeholder text.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/analysis"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/journal"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/llm"
)

// Placeholder is the fixed text substituted for any AI-dependent section
// when no summarizer is configured or a summary cannot be produced.
const Placeholder = "Not available (set LLM_API_KEY for AI summaries)."

// Summarizer is the capability the builder depends on: one prompt in,
// narrative text or nothing out. *llm.Gateway satisfies it; tests inject a
// stub so no network access is needed.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) string
}

type Builder struct {
	// Summarizer may be nil: the report is then built entirely from
	// deterministic aggregates with placeholder narratives, and no
	// summarizer call is made at all.
	Summarizer Summarizer
	ReportsDir string
	Model      string

	now func() time.Time
}

func NewBuilder(summarizer Summarizer, reportsDir string, model string) *Builder {
	return &Builder{
		Summarizer: summarizer,
		ReportsDir: reportsDir,
		Model:      model,
		now:        time.Now,
	}
}

// Build assembles the report for the given analysis window and writes it to
// the reports directory under a timestamp-derived filename. The document is
// written once, fully assembled; on error no partial artifact is persisted.
// Returns the resolved path of the written file.
func (b *Builder) Build(ctx context.Context, entries []journal.Entry, trendPhrases []string, dateFrom, dateTo time.Time) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no entries in analysis window")
	}
	if err := os.MkdirAll(b.ReportsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	now := b.now()
	filename := "journal_report_" + now.Format("20060102_150405") + ".html"

	dateFromStr := dateFrom.Format(journal.DateFormat)
	dateToStr := dateTo.Format(journal.DateFormat)

	// Overall sample for the activity and emotion narratives.
	overallText := analysis.OverallSample(entries)

	activitySummary := Placeholder
	if b.Summarizer != nil && overallText != "" {
		if reply := b.Summarizer.Summarize(ctx, fmt.Sprintf(promptOverallActivity, overallText)); reply != "" {
			activitySummary = reply
		}
	}

	emotionSummary := Placeholder
	if b.Summarizer != nil && overallText != "" {
		if reply := b.Summarizer.Summarize(ctx, fmt.Sprintf(promptOverallEmotion, overallText)); reply != "" {
			emotionSummary = reply
		}
	}

	// Grouped excerpts and axis labels for the observation sections.
	byMonth := analysis.ExcerptsByMonth(entries)
	byDay := analysis.ExcerptsByDay(entries)
	byTime := analysis.ExcerptsByTime(entries)
	monthLabels := analysis.MonthLabels(entries)

	obsActivity := Placeholder
	obsEmotion := Placeholder
	if b.Summarizer != nil && len(byMonth)+len(byDay)+len(byTime) > 0 {
		payloadJSON, _ := json.Marshal(map[string][]analysis.GroupExcerpt{
			"by_month":       byMonth,
			"by_day_of_week": byDay,
			"by_time_of_day": byTime,
		})
		monthsJSON, _ := json.Marshal(monthLabels)
		daysJSON, _ := json.Marshal(journal.DayOrder)
		timesJSON, _ := json.Marshal(journal.TimeOrder)
		instruction := fmt.Sprintf(jsonInstruction, monthsJSON, daysJSON, timesJSON)

		obsActivity = b.observationSection(ctx, fmt.Sprintf(promptObservationsActivity, payloadJSON, instruction), monthLabels)
		obsEmotion = b.observationSection(ctx, fmt.Sprintf(promptObservationsEmotion, payloadJSON, instruction), monthLabels)
	}

	// Per-phrase trend charts and summaries.
	type trendSection struct {
		phrase  string
		chart   string
		summary string
	}
	var trends []trendSection
	for i, phrase := range trendPhrases {
		series := analysis.PhraseCountsByMonth(entries, phrase)
		chart := barChartHTML(fmt.Sprintf("trend-chart-%d", i), series, fmt.Sprintf("Occurrences of %q by month", phrase))
		summary := Placeholder
		if b.Summarizer != nil && len(series) > 0 {
			countsJSON, _ := json.Marshal(series)
			if reply := b.Summarizer.Summarize(ctx, fmt.Sprintf(promptTrend, phrase, countsJSON)); reply != "" {
				summary = reply
			}
		}
		trends = append(trends, trendSection{phrase: phrase, chart: chart, summary: summary})
	}

	// Assemble the body: purpose, overall activity, overall emotion,
	// observations by group, trends by phrase, appendix.
	var parts []string
	parts = append(parts, "<h1>Journal Analysis Report</h1>")
	parts = append(parts, fmt.Sprintf("<p><em>Generated: %s (local time)</em></p>", now.Format("2006-01-02 15:04")))
	parts = append(parts, "<p><strong>Purpose of this report</strong></p>")
	parts = append(parts, fmt.Sprintf(
		"<p>This report summarizes journal entries from %s to %s (%d entries). "+
			"It provides AI-generated summaries of <strong>life activity</strong> (what was documented, trends, changes) and "+
			"<strong>emotion</strong>; observations by month, day of week, and time of day; and trends for user-specified phrases "+
			"with occurrence counts by month. Conclusions are based on journal excerpts and optional AI summaries.</p>",
		dateFromStr, dateToStr, len(entries)))
	parts = append(parts, sectionRule)

	parts = append(parts, "<h2>Overall activity</h2>")
	parts = append(parts, "<p>"+html.EscapeString(activitySummary)+"</p>")
	parts = append(parts, sectionRule)
	parts = append(parts, "<h2>Overall emotion</h2>")
	parts = append(parts, "<p>"+html.EscapeString(emotionSummary)+"</p>")
	parts = append(parts, sectionRule)

	parts = append(parts, "<h2>Observations by month, day of week, and time of day</h2>")
	parts = append(parts, "<h3>Activity</h3>")
	parts = append(parts, asBlock(obsActivity))
	parts = append(parts, "<h3>Emotion</h3>")
	parts = append(parts, asBlock(obsEmotion))
	parts = append(parts, sectionRule)

	if len(trends) > 0 {
		parts = append(parts, "<h2>Trends by phrase</h2>")
		for _, sec := range trends {
			parts = append(parts, fmt.Sprintf("<h3>&quot;%s&quot;</h3>", html.EscapeString(sec.phrase)))
			parts = append(parts, sec.chart)
			parts = append(parts, "<p>"+html.EscapeString(sec.summary)+"</p>")
		}
		parts = append(parts, sectionRule)
	}

	parts = append(parts, `<div class="appendix">`)
	parts = append(parts, "<h2>How conclusions were drawn</h2>")
	parts = append(parts, fmt.Sprintf(
		"<p>Conclusions are based on journal entry excerpts (truncated for length) and on summaries "+
			"generated by the configured model (%s) when an API key is set. "+
			"The analysis used %d entries from %s to %s. "+
			"&quot;Activity&quot; refers to life activity (what was documented, trends, changes), not how often entries were written. "+
			"Trend-by-phrase charts show occurrence counts per month; AI summaries use only aggregated or excerpted content.</p>",
		html.EscapeString(b.Model), len(entries), dateFromStr, dateToStr))
	parts = append(parts, "</div>")

	doc := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Journal Analysis Report</title>
  %s
  <style>
%s
  </style>
</head>
<body>
%s
</body>
</html>`, plotlyCDN, reportCSS, strings.Join(parts, "\n"))

	outPath := filepath.Join(b.ReportsDir, filename)
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	abs, err := filepath.Abs(outPath)
	if err != nil {
		return outPath, nil
	}
	return abs, nil
}

// observationSection requests one observations-by-group summary and renders
// it: parsed JSON as tables, otherwise the raw reply as a bullet list.
func (b *Builder) observationSection(ctx context.Context, prompt string, monthLabels []string) string {
	reply := b.Summarizer.Summarize(ctx, prompt)
	if reply == "" {
		return Placeholder
	}
	if parsed, ok := llm.ExtractJSON[observations](reply); ok {
		return observationTables(parsed, monthLabels, journal.DayOrder, journal.TimeOrder)
	}
	return rawToBulletList(reply)
}

// asBlock passes through fragments that are already HTML and wraps plain
// text (the placeholder) in a paragraph.
func asBlock(fragment string) string {
	if strings.HasPrefix(strings.TrimSpace(fragment), "<") {
		return fragment
	}
	return "<p>" + html.EscapeString(fragment) + "</p>"
}
