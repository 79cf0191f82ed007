package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
)

const (
	candidateTemperature = 0.3
	finalTemperature     = 0.2
)

func (c *Client) ExtractCandidates(ctx context.Context, transcript string) ([]domain.RawCandidate, error) {
	content, err := c.complete(ctx, candidatePrompt, transcript, candidateTemperature)
	if err != nil {
		return nil, fmt.Errorf("extract candidates: %w", err)
	}
	entries, err := decodeRoot(content, "candidates")
	if err != nil {
		return nil, err
	}
	out := make([]domain.RawCandidate, 0, len(entries))
	for i, e := range entries {
		var rc domain.RawCandidate
		if err := json.Unmarshal(e, &rc); err != nil {
			logger.Warn.Printf("skipping candidate %d: %v", i, err)
			continue
		}
		out = append(out, rc)
	}
	return out, nil
}

func (c *Client) SelectFinal(ctx context.Context, candidates string, minCount, maxCount int) ([]domain.RawHighlight, error) {
	content, err := c.complete(ctx, finalPrompt(minCount, maxCount), candidates, finalTemperature)
	if err != nil {
		return nil, fmt.Errorf("select final highlights: %w", err)
	}
	entries, err := decodeRoot(content, "highlights")
	if err != nil {
		return nil, err
	}
	// The selection is taken whole; one broken entry rejects it.
	out := make([]domain.RawHighlight, len(entries))
	for i, e := range entries {
		if err := json.Unmarshal(e, &out[i]); err != nil {
			return nil, fmt.Errorf("%w: highlights[%d]: %v", domain.ErrMalformedPayload, i, err)
		}
	}
	return out, nil
}

// complete runs one chat completion and returns the first choice's text.
func (c *Client) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	payload := map[string]any{
		"model":       c.chatModel,
		"temperature": temperature,
		"stream":      false,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	body, err := c.send(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/openai/v1/chat/completions", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return "", err
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("%w: decode completion: %v", domain.ErrMalformedPayload, err)
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", domain.ErrMalformedPayload)
	}
	return messageContentToString(raw.Choices[0].Message.Content)
}

// decodeRoot pulls the JSON object out of content and returns the entries of
// the array under rootKey, still undecoded.
func decodeRoot(content, rootKey string) ([]json.RawMessage, error) {
	clean, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	v, ok := obj[rootKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing root key %q", domain.ErrMalformedPayload, rootKey)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(v, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedPayload, rootKey, err)
	}
	return entries, nil
}

func messageContentToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return "", fmt.Errorf("%w: empty content", domain.ErrMalformedPayload)
		}
		return x, nil
	case []any:
		// Some providers return an array of {type,text} parts.
		var b strings.Builder
		for _, it := range x {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := m["text"].(string); ok {
				b.WriteString(t)
			}
		}
		s := b.String()
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("%w: empty content", domain.ErrMalformedPayload)
		}
		return s, nil
	default:
		return "", fmt.Errorf("%w: unexpected content type %T", domain.ErrMalformedPayload, v)
	}
}

var errNoJSONObject = errors.New("no json object in content")

func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedPayload, errNoJSONObject)
	}
	return t[start : end+1], nil
}
