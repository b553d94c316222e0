// Package ai provides HTTP adapters for the supported text-generation
// backends. A provider posts one fully rendered prompt and returns the raw
// textual reply; command extraction happens upstream.
package ai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

type httpProvider struct {
	name       string
	model      domain.ModelDefinition
	httpClient *http.Client
	secrets    ports.SecretStore
	adapter    providerAdapter
}

type providerAdapter struct {
	buildRequest  func(domain.ModelDefinition, string) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(*http.Request, domain.ModelDefinition, string) error
	endpoint      func(domain.ModelDefinition) string
}

func newHTTPProvider(name string, model domain.ModelDefinition, client *http.Client, secrets ports.SecretStore, adapter providerAdapter) ports.Provider {
	return &httpProvider{
		name:       name,
		model:      model,
		httpClient: client,
		secrets:    secrets,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

// Generate performs one single-shot backend exchange. The caller's context
// carries the deadline; an abandoned call is cancelled through it.
func (p *httpProvider) Generate(ctx context.Context, prompt string) (string, error) {
	requestBody, err := p.adapter.buildRequest(p.model, prompt)
	if err != nil {
		return "", domain.NewAPIError("build backend request", err)
	}

	endpoint := p.model.Endpoint
	if endpoint == "" && p.adapter.endpoint != nil {
		endpoint = p.adapter.endpoint(p.model)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", domain.NewAPIError("build backend request", err)
	}
	httpReq.Header.Set("content-type", "application/json")

	apiKey, err := p.apiKey()
	if err != nil {
		return "", err
	}
	if err := p.adapter.setHeaders(httpReq, p.model, apiKey); err != nil {
		return "", err
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			// Deadline and cancellation are surfaced as context errors so
			// the orchestrator can map them.
			return "", ctx.Err()
		}
		return "", domain.NewAPIError(fmt.Sprintf("%s request failed", p.name), err)
	}
	defer resp.Body.Close()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", domain.NewAPIError(fmt.Sprintf("%s response read failed", p.name), err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", domain.NewRateLimitError(fmt.Errorf("%s: %s", p.name, resp.Status))
	}
	if resp.StatusCode >= 400 {
		body := responseBody.String()
		if looksLikeRateLimit(body) {
			return "", domain.NewRateLimitError(fmt.Errorf("%s: %s", p.name, resp.Status))
		}
		return "", domain.NewAPIError(fmt.Sprintf("%s: %s", p.name, resp.Status), nil).
			WithDetails(trimBody(body))
	}

	content, err := p.adapter.parseResponse(responseBody.Bytes())
	if err != nil {
		return "", domain.NewAPIError(fmt.Sprintf("%s response malformed", p.name), err)
	}
	return content, nil
}

func (p *httpProvider) apiKey() (string, error) {
	if p.model.AuthEnvVar != "" {
		if value := os.Getenv(p.model.AuthEnvVar); value != "" {
			return value, nil
		}
	}
	if p.secrets != nil && p.model.SecretName != "" {
		key, err := p.secrets.Get(p.model.SecretName)
		if err != nil {
			return "", err
		}
		if key != "" {
			return key, nil
		}
	}
	return "", nil
}

// looksLikeRateLimit applies the quota/throttling text heuristic to backend
// error bodies that are not a clean 429.
func looksLikeRateLimit(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "quota") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "rate_limit") ||
		strings.Contains(lower, "resource_exhausted")
}

func trimBody(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > 200 {
		return body[:200] + "..."
	}
	return body
}

func missingKeyError(name, envVar string) error {
	msg := fmt.Sprintf("missing API key for %s", name)
	err := domain.NewSecretStoreError(msg, nil)
	if envVar != "" {
		err = err.WithSuggestion(fmt.Sprintf("Or export %s", envVar))
	}
	return err
}
