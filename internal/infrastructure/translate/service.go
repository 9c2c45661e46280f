package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/config"
)

// Service translates text to a target language via the translation HTTP API.
type Service struct {
	mu       sync.RWMutex
	client   *http.Client
	endpoint string
	apiKey   string
}

type translateRequest struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// NewService returns nil when no endpoint is configured; the /translate
// command is then answered with a failure reply.
func NewService() *Service {
	endpoint := config.GetTranslateEndpoint()

	if endpoint == "" {
		log.Warn().Msg("Translation service not configured - TRANSLATE_ENDPOINT missing")
		return nil
	}

	return &Service{
		mu:       sync.RWMutex{},
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
		apiKey:   config.GetTranslateAPIKey(),
	}
}

// Translate returns text translated into the target language code.
func (s *Service) Translate(ctx context.Context, text, target string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := translateRequest{
		Text:   text,
		Source: "auto",
		Target: target,
		APIKey: s.apiKey,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/translate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translation API returned status %d: %s", resp.StatusCode, string(body))
	}

	var translated translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&translated); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return translated.TranslatedText, nil
}
