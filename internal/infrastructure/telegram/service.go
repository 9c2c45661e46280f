package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Service wraps the Telegram client. Inbound updates are long-polled and
// dispatched to the handler set with OnUpdate; outbound replies go through
// SendMessage.
type Service struct {
	mu       sync.RWMutex
	bot      *bot.Bot
	client   *http.Client
	onUpdate bot.HandlerFunc
}

func NewService(token string) (*Service, error) {
	s := &Service{
		client: &http.Client{Timeout: 60 * time.Second},
	}

	b, err := bot.New(token, bot.WithDefaultHandler(s.dispatch))
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram client: %w", err)
	}
	s.bot = b

	return s, nil
}

// OnUpdate sets the handler for updates that no registered command matched.
func (s *Service) OnUpdate(handler bot.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = handler
}

// RegisterCommand routes messages starting with the given command to handler.
func (s *Service) RegisterCommand(command string, handler bot.HandlerFunc) {
	s.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypePrefix, handler)
}

// Start long-polls for updates until the context is cancelled.
func (s *Service) Start(ctx context.Context) {
	log.Info().Msg("Starting Telegram long polling")
	s.bot.Start(ctx)
}

func (s *Service) dispatch(ctx context.Context, b *bot.Bot, update *models.Update) {
	s.mu.RLock()
	handler := s.onUpdate
	s.mu.RUnlock()

	if handler != nil {
		handler(ctx, b, update)
	}
}

// SendMessage sends text to a chat with an optional reply keyboard.
func (s *Service) SendMessage(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Error().
			Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to send Telegram message")
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// DownloadFile fetches the raw bytes of an uploaded file, such as a photo.
func (s *Service) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := s.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.bot.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
