// Package gemini implements the domain.Generator port against the Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/navdisha/career-advisor/internal/adapter/observability"
	"github.com/navdisha/career-advisor/internal/config"
	"github.com/navdisha/career-advisor/internal/domain"
	obsctx "github.com/navdisha/career-advisor/internal/observability"
	"github.com/navdisha/career-advisor/pkg/jsonx"
)

const provider = "gemini"

// Client calls the Gemini generateContent endpoint and enforces a
// structured-JSON contract on its replies. Each GenerateJSON call makes
// exactly one attempt under an explicit deadline; recovery from failure is
// the caller's fallback branch, not a retry here.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a Gemini client. The HTTP client carries the configured
// timeout so a hung upstream can never block a request indefinitely.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.GeminiTimeout},
	}
}

// generateContent request/response wire shapes (the subset we use).
type genaiRequest struct {
	Contents []genaiContent `json:"contents"`
	Config   genaiConfig    `json:"generationConfig"`
}

type genaiContent struct {
	Role  string      `json:"role"`
	Parts []genaiPart `json:"parts"`
}

type genaiPart struct {
	Text string `json:"text"`
}

type genaiConfig struct {
	Temperature float64 `json:"temperature"`
}

type genaiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []genaiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateJSON sends the system/user prompt pair to Gemini and parses the
// first JSON object found in the reply. Every failure mode (transport, non-2xx,
// empty candidates, unparseable text) wraps domain.ErrGenerationFailed;
// deadline expiry additionally wraps domain.ErrUpstreamTimeout so callers can
// tell the two apart while funnelling both into the same fallback path.
func (c *Client) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error) {
	lg := obsctx.LoggerFromContext(ctx)
	if c.cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY missing", domain.ErrInvalidArgument)
	}

	prompt := systemPrompt + "\n\n" + userPrompt + "\n\nRespond with valid JSON only."
	body, _ := json.Marshal(genaiRequest{
		Contents: []genaiContent{{Role: "user", Parts: []genaiPart{{Text: prompt}}}},
		Config:   genaiConfig{Temperature: 0.2},
	})

	ctx, cancel := context.WithTimeout(ctx, c.cfg.GeminiTimeout)
	defer cancel()

	endpoint := strings.TrimSuffix(c.cfg.GeminiBaseURL, "/") + "/v1beta/models/" + c.cfg.GeminiModel + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.GeminiAPIKey)

	lg.Debug("calling gemini", slog.String("provider", provider), slog.String("model", c.cfg.GeminiModel), slog.Int("prompt_len", len(prompt)))
	start := time.Now()
	resp, err := c.hc.Do(req)
	observability.AIRequestsTotal.WithLabelValues(provider, "generate").Inc()
	observability.AIRequestDuration.WithLabelValues(provider, "generate").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			lg.Warn("gemini call timed out", slog.String("provider", provider), slog.Duration("timeout", c.cfg.GeminiTimeout))
			return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, domain.ErrUpstreamTimeout)
		}
		lg.Error("gemini transport error", slog.String("provider", provider), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		lg.Error("gemini read body failed", slog.String("provider", provider), slog.Any("error", err))
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrGenerationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(respBody)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		lg.Warn("gemini non-2xx", slog.String("provider", provider), slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.GeminiModel), slog.String("body", snippet))
		return nil, fmt.Errorf("%w: status %d", domain.ErrGenerationFailed, resp.StatusCode)
	}

	var out genaiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		lg.Error("gemini decode error", slog.String("provider", provider), slog.Any("error", err))
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrGenerationFailed, err)
	}
	text := candidateText(out)
	if text == "" {
		lg.Warn("gemini returned no candidate text", slog.String("provider", provider))
		return nil, fmt.Errorf("%w: empty candidates", domain.ErrGenerationFailed)
	}

	raw, found := jsonx.ExtractObject(text)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		lg.Warn("gemini reply is not a JSON object",
			slog.String("provider", provider),
			slog.Bool("object_found", found),
			slog.Int("text_len", len(text)),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrGenerationFailed, domain.ErrSchemaInvalid, err)
	}
	lg.Debug("gemini call successful", slog.String("provider", provider), slog.Int("keys", len(parsed)))
	return parsed, nil
}

func candidateText(r genaiResponse) string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
