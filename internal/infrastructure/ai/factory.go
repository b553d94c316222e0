package ai

import (
	"net/http"
	"strings"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// Factory builds providers from model definitions, sharing one HTTP client.
type Factory struct {
	httpClient *http.Client
	secrets    ports.SecretStore
}

// NewFactory creates a provider factory backed by the given secret store.
func NewFactory(secrets ports.SecretStore) *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
		secrets:    secrets,
	}
}

// ForModel implements ports.ProviderFactory.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	switch inferProviderKind(model.Endpoint, model.Name) {
	case domain.ProviderKindAnthropic:
		return newHTTPProvider("anthropic", model, f.httpClient, f.secrets, anthropicAdapter()), nil
	case domain.ProviderKindOpenAI:
		return newHTTPProvider("openai", model, f.httpClient, f.secrets, openaiAdapter()), nil
	case domain.ProviderKindOllama:
		return newHTTPProvider("ollama", model, f.httpClient, f.secrets, ollamaAdapter()), nil
	default:
		// Gemini is the reference backend; unrecognized endpoints get the
		// Gemini adapter only when nothing else claims them.
		return newHTTPProvider("gemini", model, f.httpClient, f.secrets, geminiAdapter()), nil
	}
}

func inferProviderKind(endpoint, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)
	switch {
	case strings.Contains(endpoint, "anthropic.com"), strings.Contains(nameLower, "claude"):
		return domain.ProviderKindAnthropic
	case strings.Contains(endpoint, "openai.com"), strings.Contains(nameLower, "gpt"):
		return domain.ProviderKindOpenAI
	case strings.Contains(endpoint, "googleapis.com"), strings.Contains(nameLower, "gemini"):
		return domain.ProviderKindGemini
	case strings.Contains(endpoint, ":11434"), strings.Contains(nameLower, "ollama"):
		return domain.ProviderKindOllama
	default:
		return domain.ProviderKindUnknown
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
