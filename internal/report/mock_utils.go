package report

import (
	"context"
)

// MockSummarizer records prompts and returns a canned reply. Stands in for
// the llm gateway so builder tests run without network access.
type MockSummarizer struct {
	Response string
	Calls    int
	Prompts  []string
}

func (m *MockSummarizer) Summarize(ctx context.Context, prompt string) string {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	return m.Response
}
