package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	openaiinfra "github.com/vportan/bacbot/internal/infrastructure/openai"
	"github.com/vportan/bacbot/internal/services/session"
)

// ErrUnavailable covers every failure mode of the completion API: timeout,
// transport error, non-success status and empty responses. The caller reports
// a generic "try again later" and does not retry.
var ErrUnavailable = errors.New("completion service unavailable")

const (
	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

// Service submits a prompt to the completion API with a bounded timeout.
type Service struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewService(openAIService *openaiinfra.Service, model string, timeout time.Duration) (*Service, error) {
	if openAIService == nil {
		return nil, fmt.Errorf("OpenAI service is required")
	}

	return &Service{
		client:  openAIService.GetClient(),
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete submits the message sequence and returns the generated answer.
func (s *Service) Complete(ctx context.Context, turns []session.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, turn := range turns {
		messages[i] = openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to get chat completion")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		log.Error().Msg("Completion response contained no choices")
		return "", ErrUnavailable
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
