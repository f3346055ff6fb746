package llm

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	response string
	err      error
	calls    int
}

func (m *mockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestGatewayWithoutClient(t *testing.T) {
	g := NewGateway(nil, time.Second)
	assert.Equal(t, "", g.Summarize(context.Background(), "prompt"))

	var nilGateway *Gateway
	assert.Equal(t, "", nilGateway.Summarize(context.Background(), "prompt"))
}

func TestGatewayAbsorbsErrors(t *testing.T) {
	mock := &mockClient{err: fmt.Errorf("connection refused")}
	g := NewGateway(mock, time.Second)
	assert.Equal(t, "", g.Summarize(context.Background(), "prompt"))
	assert.Equal(t, 1, mock.calls)
}

func TestGatewayTrimsReply(t *testing.T) {
	g := NewGateway(&mockClient{response: "  a fine summary \n"}, time.Second)
	assert.Equal(t, "a fine summary", g.Summarize(context.Background(), "prompt"))
}

type summaryPayload struct {
	Summary string `json:"summary"`
}

func TestExtractJSONFencedBlock(t *testing.T) {
	reply := "Here is the result:\n```json\n{\"summary\": \"calm month\"}\n```\nHope that helps."
	out, ok := ExtractJSON[summaryPayload](reply)
	require.True(t, ok)
	assert.Equal(t, "calm month", out.Summary)
}

func TestExtractJSONUntaggedFence(t *testing.T) {
	reply := "```\n{\"summary\": \"busy month\"}\n```"
	out, ok := ExtractJSON[summaryPayload](reply)
	require.True(t, ok)
	assert.Equal(t, "busy month", out.Summary)
}

func TestExtractJSONBraceSpan(t *testing.T) {
	reply := `Sure! {"summary": "mixed month"} Let me know if you need more.`
	out, ok := ExtractJSON[summaryPayload](reply)
	require.True(t, ok)
	assert.Equal(t, "mixed month", out.Summary)
}

func TestExtractJSONWholeReply(t *testing.T) {
	out, ok := ExtractJSON[summaryPayload](`{"summary": "plain"}`)
	require.True(t, ok)
	assert.Equal(t, "plain", out.Summary)
}

func TestExtractJSONFailure(t *testing.T) {
	_, ok := ExtractJSON[summaryPayload]("no structured content here")
	assert.False(t, ok)

	_, ok = ExtractJSON[summaryPayload]("```json\nnot json\n```")
	assert.False(t, ok)
}
