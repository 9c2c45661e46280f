package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/config"
)

// Service extracts text from photo messages via the OCR HTTP API.
type Service struct {
	mu       sync.RWMutex
	client   *http.Client
	apiKey   string
	endpoint string
}

type parseResponse struct {
	ParsedResults []parsedResult `json:"ParsedResults"`
	IsErrored     bool           `json:"IsErroredOnProcessing"`
	ErrorMessage  any            `json:"ErrorMessage"`
}

type parsedResult struct {
	ParsedText string `json:"ParsedText"`
}

// NewService returns nil when no API key is configured; photo messages are
// then answered with a failure reply instead of being recognised.
func NewService() *Service {
	apiKey := config.GetOCRAPIKey()

	if apiKey == "" {
		log.Warn().Msg("OCR service not configured - OCR_API_KEY missing")
		return nil
	}

	return &Service{
		mu:       sync.RWMutex{},
		client:   &http.Client{Timeout: 30 * time.Second},
		apiKey:   apiKey,
		endpoint: config.GetOCREndpoint(),
	}
}

// Recognize submits image bytes with a language hint and returns the
// extracted plain text.
func (s *Service) Recognize(ctx context.Context, image []byte, languageHint string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form := url.Values{}
	form.Set("base64Image", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(image))
	form.Set("language", languageHint)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if parsed.IsErrored {
		return "", fmt.Errorf("OCR processing failed: %v", parsed.ErrorMessage)
	}

	var out strings.Builder
	for _, result := range parsed.ParsedResults {
		out.WriteString(result.ParsedText)
	}

	return strings.TrimSpace(out.String()), nil
}
