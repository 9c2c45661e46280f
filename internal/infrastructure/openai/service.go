package openai

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/vportan/bacbot/internal/config"
)

// Service holds the OpenAI completion client.
type Service struct {
	mu     sync.RWMutex
	client *openai.Client
}

func NewService() *Service {
	log.Info().Msg("Initialising OpenAI service")
	key := config.GetOpenAIKey()

	cfg := openai.DefaultConfig(key)
	if baseURL := config.GetOpenAIBaseURL(); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Service{
		mu:     sync.RWMutex{},
		client: openai.NewClientWithConfig(cfg),
	}
}

func (s *Service) GetClient() *openai.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}
