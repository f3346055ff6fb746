package report

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/analysis"
)

// reportCSS is the fixed inline stylesheet for generated reports.
const reportCSS = `
    body { font-family: Arial, sans-serif; max-width: 980px; margin: 40px auto; padding: 20px; background-color: #FEECEA; color: #333; }
    h1 { color: #DD4633; border-bottom: 3px solid #DD4633; padding-bottom: 10px; }
    h2 { color: #DD4633; margin-top: 28px; border-bottom: 2px solid #DD4633; padding-bottom: 5px; }
    h3 { color: #DD4633; margin-top: 20px; }
    hr { border: 2px solid #DD4633; margin: 30px 0; }
    table { border-collapse: collapse; width: 100%; margin: 15px 0; background-color: white; }
    th, td { border: 1px solid #ddd; padding: 8px 12px; }
    th { background-color: #DD4633; color: white; text-align: left; font-weight: bold; }
    tr:nth-child(even) { background-color: #f9f9f9; }
    .chart { background-color: white; margin: 15px 0; }
    small { font-size: 0.85em; color: #666; display: block; margin-top: 10px; }
    .appendix { color: #555; font-size: 0.9em; }
    .appendix table { font-size: 0.9em; }
    .appendix h2, .appendix h3 { color: #555; border-bottom-color: #999; }
`

const plotlyCDN = `<script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>`

const sectionRule = `<hr style="border: 2px solid #DD4633; margin: 30px 0;" />`

const chartColor = "#DD4633"

// barChartHTML renders one Plotly bar chart fragment for a trend series.
// The plotly library itself is loaded once from the CDN in the document
// head. An empty series renders a "No data" placeholder chart.
func barChartHTML(divID string, series []analysis.MonthCount, title string) string {
	titleJSON, _ := json.Marshal(title)

	if len(series) == 0 {
		return fmt.Sprintf(`<div id=%q class="chart"></div>
<script>Plotly.newPlot(%q, [], {title: %s, xaxis: {visible: false}, yaxis: {visible: false}, annotations: [{text: "No data", showarrow: false}]}, {displayModeBar: false});</script>`,
			divID, divID, titleJSON)
	}

	months := make([]string, 0, len(series))
	counts := make([]int, 0, len(series))
	for _, p := range series {
		months = append(months, p.Month)
		counts = append(counts, p.Count)
	}
	xJSON, _ := json.Marshal(months)
	yJSON, _ := json.Marshal(counts)

	return fmt.Sprintf(`<div id=%q class="chart"></div>
<script>Plotly.newPlot(%q, [{type: "bar", x: %s, y: %s, marker: {color: %q}}], {title: %s, margin: {t: 40, b: 60, l: 60, r: 40}, xaxis: {tickangle: -45}}, {displayModeBar: false});</script>`,
		divID, divID, xJSON, yJSON, chartColor, titleJSON)
}

// observation is one group note in a parsed observations reply. A reply row
// carries exactly one of the three group keys depending on the array it sits
// in; the others stay empty.
type observation struct {
	Month       string `json:"month"`
	Day         string `json:"day"`
	Time        string `json:"time"`
	Observation string `json:"observation"`
}

// observations is the strict-JSON shape requested from the model for the
// observations-by-group sections.
type observations struct {
	ByMonth     []observation `json:"by_month"`
	ByDayOfWeek []observation `json:"by_day_of_week"`
	ByTimeOfDay []observation `json:"by_time_of_day"`
}

func observationTable(nameCol string, labels []string, rows []observation, label func(observation) string) string {
	lookup := map[string]string{}
	for _, r := range rows {
		lookup[strings.TrimSpace(label(r))] = r.Observation
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<table><thead><tr><th>%s</th><th>Observation</th></tr></thead><tbody>\n", nameCol)
	for _, l := range labels {
		obs := lookup[l]
		if obs == "" {
			obs = "—"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>\n", html.EscapeString(l), html.EscapeString(obs))
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// observationTables renders one parsed observations reply as three tables
// (by month, by day, by time). Labels the model omitted show as "—".
func observationTables(parsed observations, monthLabels, dayOrder, timeOrder []string) string {
	return "<h4>By month</h4>" + observationTable("Month", monthLabels, parsed.ByMonth, func(o observation) string { return o.Month }) +
		"<h4>By day of week</h4>" + observationTable("Day", dayOrder, parsed.ByDayOfWeek, func(o observation) string { return o.Day }) +
		"<h4>By time of day</h4>" + observationTable("Time", timeOrder, parsed.ByTimeOfDay, func(o observation) string { return o.Time })
}

// rawToBulletList renders a free-form reply as a bullet list, one bullet per
// non-empty line. Fallback for replies that carry no parseable JSON.
func rawToBulletList(raw string) string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, "<li>"+html.EscapeString(line)+"</li>")
	}
	if len(items) == 0 {
		if raw == "" {
			return "<p>—</p>"
		}
		return "<p>" + html.EscapeString(raw) + "</p>"
	}
	return "<ul>" + strings.Join(items, "") + "</ul>"
}
