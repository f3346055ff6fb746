package report

// Prompt templates for the AI-augmented report sections. Summaries are
// best-effort: every consumer of a reply falls back to placeholder text or a
// raw-text rendering when the summarizer returns nothing usable.

const promptOverallActivity = "You are summarizing LIFE ACTIVITY from journal entries: what types of things were documented " +
	"(e.g. work, exercise, social, routines), noteworthy observations, trends, and changes over the period. " +
	"Do NOT discuss how often or when the person wrote. Use ONLY the following journal excerpts.\n\n" +
	"JOURNAL EXCERPTS:\n%s\n\n" +
	"Write 3-5 sentences on overall life activity. Be concise and data-driven; do not invent details."

const promptOverallEmotion = "You are summarizing emotional or mood-related trends from journal entries. Use ONLY the following excerpts.\n\n" +
	"JOURNAL EXCERPTS:\n%s\n\n" +
	"Write 3-5 sentences on overall emotion or mood. Be concise and data-driven; do not invent details."

// jsonInstruction enumerates every expected group label so the model cannot
// silently omit groups. Placeholders: months, days, times as JSON arrays.
const jsonInstruction = `Respond with ONLY a JSON object (no other text) with three arrays: "by_month", "by_day_of_week", "by_time_of_day". ` +
	`Each array has objects with a key (e.g. "month", "day", "time") and "observation" (1-2 sentences). ` +
	"Include one object per group. Months to include: %s. Days: %s. Times: %s."

const promptObservationsActivity = "Based on the following journal excerpts grouped by month, day of week, and time of day, " +
	"write 1-2 sentences PER GROUP describing emerging trends in LIFE ACTIVITY " +
	"(what kinds of things were documented, notable patterns or changes). Do NOT discuss how often they wrote.\n\n" +
	"DATA (JSON): %s\n\n%s"

const promptObservationsEmotion = "Based on the following journal excerpts grouped by month, day of week, and time of day, " +
	"write 1-2 sentences PER GROUP describing emotional or mood-related trends.\n\n" +
	"DATA (JSON): %s\n\n%s"

const promptTrend = "You are summarizing a trend from journal data. Use ONLY the given counts.\n" +
	"Phrase: \"%s\". Monthly occurrence counts: %s\n" +
	"Write 1-2 sentences summarizing this trend. Be concise and data-driven."
