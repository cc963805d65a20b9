// Package judge talks to the remote execution judge and classifies its verdicts.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/metrics"
)

const (
	submissionsPath = "/submissions?base64_encoded=false&wait=true"

	// maxAttempts is the first try plus exactly one retry.
	maxAttempts = 2

	maxResponseBytes = 8 << 20 // 8 MB
	maxErrorBytes    = 4 << 10 // 4 KB kept from non-2xx bodies

	defaultTimeout = 30 * time.Second
)

// languageIDs maps languages to the judge's public numeric identifiers.
var languageIDs = map[domain.Language]int{
	domain.LangPython: 71,
	domain.LangJava:   62,
	domain.LangC:      50,
	domain.LangCpp:    54,
}

// LanguageID returns the judge identifier for lang.
func LanguageID(lang domain.Language) (int, bool) {
	id, ok := languageIDs[lang]
	return id, ok
}

// Config holds the judge endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	APIHost string
}

// Client submits programs to the judge.
type Client struct {
	baseURL string
	apiKey  string
	apiHost string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a judge client. A nil httpClient gets a plain client with a 30s timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		http:    httpClient,
		logger:  logger,
	}
}

// Submit sends sourceCode to the judge and decodes its result. A failed attempt (transport
// error or non-2xx status) is retried once with the identical request; if that fails too the
// error wraps domain.ErrServerBusy. A 2xx response with an undecodable body is not retried and
// wraps domain.ErrMalformedResponse. Both also match domain.ErrSubmissionFailed. When ctx
// ends mid-attempt the context error is returned as is, without a retry.
func (c *Client) Submit(ctx context.Context, sourceCode string, lang domain.Language) (*domain.ExecutionResult, error) {
	languageID, ok := languageIDs[lang]
	if !ok {
		return nil, fmt.Errorf("%w: no judge language id for %q", domain.ErrUnsupportedLanguage, lang)
	}

	body, err := json.Marshal(domain.ExecutionRequest{
		SourceCode: sourceCode,
		LanguageID: languageID,
	})
	if err != nil {
		return nil, fmt.Errorf("judge: marshal request: %w", err)
	}

	start := time.Now()
	defer func() {
		metrics.JudgeDuration.WithLabelValues(string(lang)).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		payload, err := c.post(ctx, body)
		if err != nil {
			if ctx.Err() != nil {
				// The caller gave up; the judge is not at fault and a retry cannot succeed.
				return nil, fmt.Errorf("judge: %w", ctx.Err())
			}
			lastErr = err
			metrics.JudgeAttempts.WithLabelValues(string(lang), "failed").Inc()
			c.logger.Warn("Judge attempt failed",
				zap.Int("attempt", attempt),
				zap.String("language", string(lang)),
				zap.Error(err),
			)
			continue
		}
		metrics.JudgeAttempts.WithLabelValues(string(lang), "ok").Inc()

		var result domain.ExecutionResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("%w: %w: %v", domain.ErrSubmissionFailed, domain.ErrMalformedResponse, err)
		}

		c.logger.Debug("Judge responded",
			zap.Int("attempt", attempt),
			zap.String("language", string(lang)),
			zap.Int("status_id", result.Status.ID),
			zap.String("status", result.Status.Description),
		)
		return &result, nil
	}

	return nil, fmt.Errorf("%w: %w", domain.ErrServerBusy, lastErr)
}

// post performs one HTTP attempt and returns the body of a 2xx response.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submissionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrSubmissionFailed, resp.StatusCode, strings.TrimSpace(string(text)))
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrSubmissionFailed, err)
	}
	return payload, nil
}
