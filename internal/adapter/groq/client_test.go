package groq

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperhq/clipper/internal/domain"
)

const testKey = "gsk-test-secret"

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Options{APIKey: testKey, BaseURL: srv.URL + "/"})
}

func chatReply(w http.ResponseWriter, content any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	})
}

func writeChunk(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "chunk_000.mp3")
	require.NoError(t, os.WriteFile(p, []byte("ID3fake"), 0o644))
	return p
}

func TestTranscribe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, defaultWhisperModel, r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "chunk_000.mp3", hdr.Filename)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "ID3fake", string(data))

		_, _ = w.Write([]byte(`{"text":"  hello there  "}`))
	})

	text, err := c.Transcribe(t.Context(), writeChunk(t))
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestTranscribe_EmptyText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":""}`))
	})

	_, err := c.Transcribe(t.Context(), writeChunk(t))
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestTranscribe_MissingFile(t *testing.T) {
	c := New(Options{APIKey: testKey})
	_, err := c.Transcribe(t.Context(), filepath.Join(t.TempDir(), "nope.mp3"))
	assert.Error(t, err)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
		{"server error", http.StatusBadGateway, domain.ErrTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"slow down"}`))
			})
			_, err := c.Transcribe(t.Context(), writeChunk(t))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("client error is neither", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"bad key ` + testKey + `"}`))
		})
		_, err := c.ExtractCandidates(t.Context(), "[0 - 120] hi")
		require.Error(t, err)
		assert.False(t, domain.IsRetryableCall(err))
		assert.NotContains(t, err.Error(), testKey)
		assert.Contains(t, err.Error(), "status 401")
	})
}

func TestExtractCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		var req struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultChatModel, req.Model)
		assert.Equal(t, candidateTemperature, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "[0 - 120] hello", req.Messages[1].Content)

		chatReply(w, "```json\n{\"candidates\":[{\"startTime\":10,\"endTime\":40,\"title\":\"t\",\"reason\":\"r\",\"strength\":0.7}]}\n```")
	})

	got, err := c.ExtractCandidates(t.Context(), "[0 - 120] hello")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].StartTime)
	assert.Equal(t, "t", got[0].Title)
	assert.Equal(t, 0.7, got[0].Strength)
}

func TestExtractCandidates_SkipsBrokenEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, `{"candidates":[1,"x",{"startTime":10,"endTime":40,"title":"t","reason":"r","strength":0.7},[2]]}`)
	})

	got, err := c.ExtractCandidates(t.Context(), "[0 - 120] hello")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 40.0, got[0].EndTime)
}

func TestSelectFinal_RejectsBrokenEntry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, `{"highlights":[{"startTime":1,"endTime":30,"title":"a","reason":"b"},7]}`)
	})

	_, err := c.SelectFinal(t.Context(), "[1-30] a (0.9) b", 1, 4)
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestSelectFinal_PromptCarriesBounds(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(b), "between 2 and 4 highlights")
		chatReply(w, []any{
			map[string]any{"type": "text", "text": `Here you go: {"highlights":[`},
			map[string]any{"type": "text", "text": `{"startTime":1,"endTime":30,"title":"a","reason":"b"}]}`},
		})
	})

	got, err := c.SelectFinal(t.Context(), "[1-30] a (0.9) b", 2, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 30.0, got[0].EndTime)
}

func TestReasoner_MalformedPayload(t *testing.T) {
	tests := []struct {
		name    string
		content any
	}{
		{"no json", "I could not find anything"},
		{"missing root key", `{"clips":[]}`},
		{"wrong shape", `{"candidates":{"a":1}}`},
		{"empty content", "   "},
		{"unexpected type", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				chatReply(w, tt.content)
			})
			_, err := c.ExtractCandidates(t.Context(), "x")
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}

	t.Run("no choices", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})
		_, err := c.SelectFinal(t.Context(), "x", 3, 5)
		assert.ErrorIs(t, err, domain.ErrMalformedPayload)
	})
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"raw", `{"candidates":[]}`, false},
		{"fenced", "```json\n{\"candidates\":[]}\n```", false},
		{"preface", "sure! {\"candidates\":[]} thanks", false},
		{"empty", "   ", true},
		{"nojson", "hello", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrMalformedPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, `{"candidates":[]}`, got)
		})
	}
}

func TestRedactSecrets(t *testing.T) {
	in := `status 401; Authorization: Bearer ` + testKey + `; api_key=` + testKey
	got := redactSecrets(in, testKey)

	assert.NotContains(t, got, testKey)
	assert.Contains(t, got, "Authorization: [REDACTED]")
	assert.Contains(t, got, "api_key=[REDACTED]")
}

func TestNew_Defaults(t *testing.T) {
	c := New(Options{BaseURL: "  https://example.test/// ", RequestsPerMinute: 30})
	assert.Equal(t, "https://example.test", c.baseURL)
	assert.Equal(t, defaultChatModel, c.chatModel)
	assert.InDelta(t, 0.5, float64(c.limiter.Limit()), 1e-9)

	c = New(Options{})
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.True(t, strings.HasPrefix(c.baseURL, "https://"))
}
