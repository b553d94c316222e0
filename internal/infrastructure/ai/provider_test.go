package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/termgenie/termgenie/internal/domain"
)

type mapSecrets map[string]string

func (m mapSecrets) Get(name string) (string, error) { return m[name], nil }
func (m mapSecrets) Set(name, value string) error    { m[name] = value; return nil }

func geminiReply(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`
}

func testModel(endpoint string) domain.ModelDefinition {
	return domain.ModelDefinition{
		Name:       "gemini-test",
		Endpoint:   endpoint,
		SecretName: "gemini",
		ModelID:    "gemini-2.5-flash",
	}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) (domain.ModelDefinition, func(domain.ModelDefinition) (string, error)) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	factory := NewFactory(mapSecrets{"gemini": "test-key"})
	model := testModel(server.URL)
	return model, func(m domain.ModelDefinition) (string, error) {
		provider, err := factory.ForModel(m)
		if err != nil {
			return "", err
		}
		return provider.Generate(context.Background(), "list files")
	}
}

func TestGenerateReturnsBackendText(t *testing.T) {
	var sawKey string
	model, generate := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		sawKey = r.Header.Get("x-goog-api-key")
		w.Write([]byte(geminiReply("ls -lh")))
	})

	reply, err := generate(model)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if reply != "ls -lh" {
		t.Fatalf("reply = %q", reply)
	}
	if sawKey != "test-key" {
		t.Fatalf("api key header = %q", sawKey)
	}
}

func TestGenerateMapsTooManyRequests(t *testing.T) {
	model, generate := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := generate(model)
	if !domain.IsKind(err, domain.ErrRateLimit) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestGenerateDetectsQuotaExhaustionBody(t *testing.T) {
	model, generate := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"RESOURCE_EXHAUSTED"}}`, http.StatusForbidden)
	})

	_, err := generate(model)
	if !domain.IsKind(err, domain.ErrRateLimit) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestGenerateMapsServerError(t *testing.T) {
	model, generate := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal failure", http.StatusInternalServerError)
	})

	_, err := generate(model)
	if !domain.IsKind(err, domain.ErrAPI) {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestGenerateMissingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the backend without a key")
	}))
	t.Cleanup(server.Close)

	factory := NewFactory(mapSecrets{})
	model := testModel(server.URL)
	provider, err := factory.ForModel(model)
	if err != nil {
		t.Fatalf("ForModel error: %v", err)
	}

	_, err = provider.Generate(context.Background(), "list files")
	if !domain.IsKind(err, domain.ErrSecretStore) {
		t.Fatalf("expected secret store error, got %v", err)
	}
}

func TestGeneratePrefersEnvironmentKey(t *testing.T) {
	var sawKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawKey = r.Header.Get("x-goog-api-key")
		w.Write([]byte(geminiReply("pwd")))
	}))
	t.Cleanup(server.Close)

	t.Setenv("GEMINI_API_KEY", "env-key")

	factory := NewFactory(mapSecrets{"gemini": "stored-key"})
	model := testModel(server.URL)
	model.AuthEnvVar = "GEMINI_API_KEY"
	provider, err := factory.ForModel(model)
	if err != nil {
		t.Fatalf("ForModel error: %v", err)
	}

	if _, err := provider.Generate(context.Background(), "print working directory"); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if sawKey != "env-key" {
		t.Fatalf("api key header = %q, want env-key", sawKey)
	}
}

func TestGenerateHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	factory := NewFactory(mapSecrets{"gemini": "test-key"})
	provider, err := factory.ForModel(testModel(server.URL))
	if err != nil {
		t.Fatalf("ForModel error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = provider.Generate(ctx, "list files")
	if err != context.DeadlineExceeded {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestOllamaGenerateNeedsNoKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("authorization"); auth != "" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"df -h"}}]}`))
	}))
	t.Cleanup(server.Close)

	factory := NewFactory(mapSecrets{})
	provider, err := factory.ForModel(domain.ModelDefinition{
		Name:     "ollama-codellama",
		Endpoint: server.URL,
	})
	if err != nil {
		t.Fatalf("ForModel error: %v", err)
	}
	if provider.Name() != "ollama" {
		t.Fatalf("provider name = %q", provider.Name())
	}

	reply, err := provider.Generate(context.Background(), "show disk usage")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if reply != "df -h" {
		t.Fatalf("reply = %q", reply)
	}
}

func TestInferProviderKind(t *testing.T) {
	cases := []struct {
		endpoint string
		name     string
		want     domain.ProviderKind
	}{
		{"https://api.anthropic.com/v1/messages", "claude", domain.ProviderKindAnthropic},
		{"", "claude-sonnet", domain.ProviderKindAnthropic},
		{"https://api.openai.com/v1/chat/completions", "gpt-4o", domain.ProviderKindOpenAI},
		{"", "gpt-4o-mini", domain.ProviderKindOpenAI},
		{"https://generativelanguage.googleapis.com/v1beta", "gemini-flash", domain.ProviderKindGemini},
		{"http://localhost:11434/v1/chat/completions", "local-llama", domain.ProviderKindOllama},
		{"", "ollama-codellama", domain.ProviderKindOllama},
		{"http://127.0.0.1:8080/generate", "local-test", domain.ProviderKindUnknown},
	}
	for _, tc := range cases {
		if got := inferProviderKind(tc.endpoint, tc.name); got != tc.want {
			t.Errorf("inferProviderKind(%q, %q) = %s, want %s", tc.endpoint, tc.name, got, tc.want)
		}
	}
}
