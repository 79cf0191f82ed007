package groq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/clipperhq/clipper/internal/domain"
)

const (
	defaultBaseURL      = "https://api.groq.com"
	defaultChatModel    = "llama-3.3-70b-versatile"
	defaultWhisperModel = "whisper-large-v3-turbo"

	requestTimeout = 2 * time.Minute
	maxErrorBody   = 400
)

type Options struct {
	APIKey       string
	BaseURL      string
	ChatModel    string
	WhisperModel string
	// RequestsPerMinute caps outgoing calls across both endpoints. Zero disables the cap.
	RequestsPerMinute int
	HTTPClient        *http.Client
}

// Client talks to the OpenAI-compatible Groq API. It implements both
// port.SpeechToText and port.Reasoner.
type Client struct {
	key          string
	baseURL      string
	chatModel    string
	whisperModel string
	http         *http.Client
	limiter      *rate.Limiter
}

func New(opts Options) *Client {
	c := &Client{
		key:          opts.APIKey,
		baseURL:      normalizeBaseURL(opts.BaseURL),
		chatModel:    opts.ChatModel,
		whisperModel: opts.WhisperModel,
		http:         opts.HTTPClient,
		limiter:      rate.NewLimiter(rate.Inf, 1),
	}
	if c.chatModel == "" {
		c.chatModel = defaultChatModel
	}
	if c.whisperModel == "" {
		c.whisperModel = defaultWhisperModel
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 5 * time.Minute}
	}
	if opts.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return c
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// send waits for the limiter, performs one request built by newReq and
// returns the response body of a 2xx reply.
func (c *Client) send(ctx context.Context, newReq func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := newReq(reqCtx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: groq timeout after %s", domain.ErrTransient, requestTimeout)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrTransient, redactSecrets(err.Error(), c.key))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read groq response: %v", domain.ErrTransient, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, statusError(resp.StatusCode, truncate(redactSecrets(string(body), c.key), maxErrorBody))
}

func statusError(status int, body string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: groq status %d: %s", domain.ErrRateLimited, status, body)
	case status >= 500:
		return fmt.Errorf("%w: groq status %d: %s", domain.ErrTransient, status, body)
	default:
		return fmt.Errorf("groq status %d: %s", status, body)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
