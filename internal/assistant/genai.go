package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mekongworks/sitekit/internal/locale"
	"github.com/mekongworks/sitekit/internal/runtimeconfig"
)

const defaultModel = "gemini-2.0-flash"

// systemPrompt frames the model as the site's assistant. The answer language
// follows the visitor's locale.
const systemPrompt = "You are the assistant on a software company's website. " +
	"Answer briefly and concretely about the company's services, use cases, " +
	"blog content and careers. If you do not know, say so and point the " +
	"visitor to the contact page. Answer in %s."

var localeLanguage = map[locale.Locale]string{
	locale.English:    "English",
	locale.Vietnamese: "Vietnamese",
	locale.Japanese:   "Japanese",
}

// GenAIProvider answers through the Gemini API.
type GenAIProvider struct {
	client *genai.Client
	model  string
}

// NewGenAIProvider creates a provider from the assistant configuration.
func NewGenAIProvider(ctx context.Context, cfg runtimeconfig.AssistantConfig) (*GenAIProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("assistant: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: create client: %w", err)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return &GenAIProvider{client: client, model: model}, nil
}

// Reply sends the visitor message to the model and returns its text answer.
func (p *GenAIProvider) Reply(ctx context.Context, message string, target locale.Locale) (string, error) {
	language := localeLanguage[target]
	if language == "" {
		language = localeLanguage[locale.Default]
	}

	contents := []*genai.Content{
		genai.NewContentFromText(message, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(fmt.Sprintf(systemPrompt, language), genai.RoleUser),
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("assistant: generate: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("assistant: model returned no text")
	}
	return text, nil
}

// IsQuotaExhausted recognizes provider quota and rate-limit failures, which
// get a canned answer instead of an error.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
