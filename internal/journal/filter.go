package journal

import (
	"regexp"
	"strings"
	"time"
)

// Criteria narrows an entry collection. A nil date bound, an empty day or
// time set, and a blank keyword string each mean "no constraint on that
// dimension". All set constraints are combined with AND.
type Criteria struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Days     []string
	Times    []string
	// Keywords is a comma-separated phrase list; each phrase matches
	// case-insensitively as a substring, with * matching any run of
	// characters. An entry passes if any phrase matches (OR).
	Keywords string
}

// Filter returns the entries matching the criteria, preserving the relative
// order of the input collection. A nil or empty collection yields an empty
// collection, never an error.
func Filter(entries []Entry, c Criteria) []Entry {
	out := []Entry{}
	if len(entries) == 0 {
		return out
	}
	days := toSet(c.Days)
	times := toSet(c.Times)
	keywords := keywordPattern(c.Keywords)
	for _, e := range entries {
		if c.DateFrom != nil && e.Date.Before(*c.DateFrom) {
			continue
		}
		if c.DateTo != nil && e.Date.After(*c.DateTo) {
			continue
		}
		if len(days) > 0 && !days[e.DayOfWeek] {
			continue
		}
		if len(times) > 0 && !times[e.TimeOfDay] {
			continue
		}
		if keywords != nil && !keywords.MatchString(e.Text) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterDateOnly filters by date range only, ignoring day, time, and
// keywords. Used for the report's analysis window, which is decoupled from
// the interactive display filter.
func FilterDateOnly(entries []Entry, dateFrom, dateTo *time.Time) []Entry {
	return Filter(entries, Criteria{DateFrom: dateFrom, DateTo: dateTo})
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// keywordPattern builds one case-insensitive OR regexp over the trimmed
// comma-separated phrases. Each phrase is escaped literally except that *
// becomes .* (wildcard). Returns nil when no phrases remain (no constraint).
func keywordPattern(keywords string) *regexp.Regexp {
	var parts []string
	for _, p := range strings.Split(keywords, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		wild := strings.ReplaceAll(regexp.QuoteMeta(p), `\*`, `.*`)
		parts = append(parts, "(?:"+wild+")")
	}
	if len(parts) == 0 {
		return nil
	}
	re, err := regexp.Compile("(?i)" + strings.Join(parts, "|"))
	if err != nil {
		return nil
	}
	return re
}
