package llm

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Gateway wraps a Client and fails soft: a missing client (no credential
// configured) or any generation error yields an empty reply instead of an
// error. Callers treat an empty reply as "no summary available".
type Gateway struct {
	client  Client
	timeout time.Duration
}

func NewGateway(client Client, timeout time.Duration) *Gateway {
	return &Gateway{client: client, timeout: timeout}
}

// Summarize sends one prompt and returns the trimmed reply, or "" when no
// client is configured, the call fails, or the reply is empty. No network
// call is made in the unconfigured case.
func (g *Gateway) Summarize(ctx context.Context, prompt string) string {
	if g == nil || g.client == nil {
		return ""
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	reply, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(reply)
}

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
var braceSpan = regexp.MustCompile(`\{[\s\S]*\}`)

// ExtractJSON pulls a JSON object of type T out of a free-form model reply.
// It tries, in order: a fenced code block (tagged json or untagged), the
// first top-level {...} span, and the whole reply. The first candidate that
// unmarshals wins; when all fail the caller must fall back to treating the
// reply as plain text.
func ExtractJSON[T any](reply string) (T, bool) {
	var zero T
	reply = strings.TrimSpace(reply)

	var candidates []string
	if m := fencedBlock.FindStringSubmatch(reply); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if m := braceSpan.FindString(reply); m != "" {
		candidates = append(candidates, m)
	}
	candidates = append(candidates, reply)

	for _, c := range candidates {
		var result T
		if err := json.Unmarshal([]byte(c), &result); err == nil {
			return result, true
		}
	}
	return zero, false
}
