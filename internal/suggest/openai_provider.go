package suggest

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAIProvider is the alternative suggestion backend, selected with
// suggestion.provider: openai.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider falls back to the OPENAI_API_KEY environment variable
// and returns nil when no key is configured.
func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		log.Warn("OpenAI API key not provided. Suggestion generation will be disabled.")
		return nil
	}
	if modelName == "" {
		modelName = defaultOpenAIModel
	}
	log.Infof("OpenAI suggestion provider initialized with model %s", modelName)
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: modelName}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
