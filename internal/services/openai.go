package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
)

const openAITimeout = 120 * time.Second

// OpenAIService implements LLMService using the OpenAI chat completions
// API. This is the default production provider.
type OpenAIService struct {
	client    *openai.Client
	modelName string
	logger    *slog.Logger
}

// Ensure OpenAIService implements LLMService
var _ LLMService = (*OpenAIService)(nil)

// NewOpenAIService creates an OpenAI-backed LLM service.
func NewOpenAIService(apiKey string, modelName string, logger *slog.Logger) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{
		Timeout: openAITimeout,
	}

	return &OpenAIService{
		client:    openai.NewClientWithConfig(cfg),
		modelName: modelName,
		logger:    logger,
	}
}

func (s *OpenAIService) Chat(ctx context.Context, messages []chat.Message) (*chat.Response, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages cannot be empty")
	}

	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.modelName,
		Messages: converted,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	s.logger.Debug("OpenAI chat completion",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return &chat.Response{
		Message: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}, nil
}
