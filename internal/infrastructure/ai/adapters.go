package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/termgenie/termgenie/internal/domain"
)

func geminiAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildGeminiRequest,
		parseResponse: parseGeminiResponse,
		setHeaders:    setGeminiHeaders,
		endpoint:      geminiEndpoint,
	}
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func openaiAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOpenAIHeaders,
	}
}

// ollamaAdapter speaks the OpenAI-compatible chat endpoint a local Ollama
// daemon exposes. No API key is required.
func ollamaAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildOllamaRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOllamaHeaders,
		endpoint:      ollamaEndpoint,
	}
}

func buildGeminiRequest(model domain.ModelDefinition, prompt string) ([]byte, error) {
	request := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}
	if model.MaxTokens > 0 {
		request["generationConfig"] = map[string]interface{}{
			"maxOutputTokens": model.MaxTokens,
		}
	}
	return json.Marshal(request)
}

func parseGeminiResponse(body []byte) (string, error) {
	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	var parts []string
	for _, part := range response.Candidates[0].Content.Parts {
		parts = append(parts, part.Text)
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}

func setGeminiHeaders(req *http.Request, model domain.ModelDefinition, apiKey string) error {
	if apiKey == "" {
		return missingKeyError("gemini", model.AuthEnvVar)
	}
	req.Header.Set("x-goog-api-key", apiKey)
	return nil
}

func geminiEndpoint(model domain.ModelDefinition) string {
	id := model.ModelID
	if id == "" {
		id = "gemini-2.5-flash"
	}
	return fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", id)
}

func buildAnthropicRequest(model domain.ModelDefinition, prompt string) ([]byte, error) {
	request := map[string]interface{}{
		"model":      defaultString(model.ModelID, "claude-3-5-sonnet-20240620"),
		"max_tokens": defaultInt(model.MaxTokens, domain.DefaultMaxTokens),
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]string{
					{"type": "text", "text": prompt},
				},
			},
		},
	}
	return json.Marshal(request)
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Content) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Content[0].Text), nil
}

func setAnthropicHeaders(req *http.Request, model domain.ModelDefinition, apiKey string) error {
	if apiKey == "" {
		return missingKeyError("anthropic", model.AuthEnvVar)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	return nil
}

func buildChatCompletionRequest(model domain.ModelDefinition, prompt string) ([]byte, error) {
	request := map[string]interface{}{
		"model": model.ModelID,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	if model.MaxTokens > 0 {
		request["max_tokens"] = model.MaxTokens
	}
	return json.Marshal(request)
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func setOpenAIHeaders(req *http.Request, model domain.ModelDefinition, apiKey string) error {
	if apiKey == "" {
		return missingKeyError("openai", model.AuthEnvVar)
	}
	req.Header.Set("authorization", "Bearer "+apiKey)
	return nil
}

func buildOllamaRequest(model domain.ModelDefinition, prompt string) ([]byte, error) {
	model.ModelID = defaultString(model.ModelID, "codellama:7b")
	return buildChatCompletionRequest(model, prompt)
}

func setOllamaHeaders(*http.Request, domain.ModelDefinition, string) error {
	return nil
}

func ollamaEndpoint(domain.ModelDefinition) string {
	return "http://localhost:11434/v1/chat/completions"
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
