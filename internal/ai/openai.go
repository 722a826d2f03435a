package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	altai "github.com/sashabaranov/go-openai"

	"devhome/internal/model"
	"devhome/internal/util"
	"devhome/internal/util/logx"
)

var ErrDisabled = errors.New("ai: openai disabled")

// Client explains static-analysis defects through a chat completion.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
	cache   *Cache
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout}
}

// WithCache makes ExplainDefect consult and fill cache.
func (c *Client) WithCache(cache *Cache) *Client {
	if c != nil {
		c.cache = cache
	}
	return c
}

func (c *Client) Enabled() bool { return c != nil && c.apiKey != "" }

// ExplainDefect returns a short plain-text explanation and suggested fix.
// snippet is the source around the defect line, possibly empty.
func (c *Client) ExplainDefect(ctx context.Context, d model.Defect, snippet string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if text, ok := c.cache.Get(d, snippet); ok {
		return text, nil
	}
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	prompt := BuildDefectPrompt(d, snippet)
	logx.Debugf("ai: explaining %s:%d (%d prompt bytes)", d.File, d.Line, len(prompt))
	out, err := c.complete(ctx2, prompt)
	if err != nil {
		return "", fmt.Errorf("ai: explain defect: %w", err)
	}
	out = strings.TrimSpace(out)
	if err := c.cache.Put(d, snippet, out); err != nil {
		logx.Warnf("ai: cache write failed: %v", err)
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	cfg := altai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cli := altai.NewClientWithConfig(cfg)
	resp, err := cli.CreateChatCompletion(ctx, altai.ChatCompletionRequest{
		Model: c.model,
		Messages: []altai.ChatCompletionMessage{
			{Role: altai.ChatMessageRoleSystem, Content: "You review embedded C/C++ firmware. Explain static analysis findings in at most 6 short lines of plain text and end with one concrete fix. No code fences."},
			{Role: altai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildDefectPrompt renders the defect and a redacted, bounded snippet.
func BuildDefectPrompt(d model.Defect, snippet string) string {
	const maxLines = 40
	var b strings.Builder
	fmt.Fprintf(&b, "Tool: %s\nSeverity: %s\n", d.Tool, d.Severity)
	if d.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", d.Category)
	}
	if d.ID != "" {
		fmt.Fprintf(&b, "Check: %s\n", d.ID)
	}
	if d.CWE > 0 {
		fmt.Fprintf(&b, "CWE: %d\n", d.CWE)
	}
	fmt.Fprintf(&b, "Location: %s:%d\n", d.File, d.Line)
	fmt.Fprintf(&b, "Message: %s\n", util.RedactPII(d.Message))
	if snippet = strings.TrimRight(snippet, "\n"); snippet != "" {
		lines := strings.Split(snippet, "\n")
		if len(lines) > maxLines {
			lines = lines[:maxLines]
		}
		b.WriteString("Source:\n")
		for _, l := range lines {
			b.WriteString(util.RedactPII(l))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
