package suggest

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider generates suggestions through the Google generative
// language API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates the provider, falling back to the GEMINI_API_KEY
// environment variable. With no key at all it returns (nil, nil): the
// suggestion service then runs disabled while classification keeps working.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		log.Warn("Gemini API key not provided. Suggestion generation will be disabled.")
		return nil, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	log.Infof("Gemini suggestion provider initialized with model %s", modelName)
	return &GeminiProvider{client: client, model: modelName}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m := p.client.GenerativeModel(p.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return firstCandidateText(resp), nil
}

// firstCandidateText extracts the generated reply from the first candidate.
// A response without the expected structure yields "".
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text)
		}
	}
	return ""
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
