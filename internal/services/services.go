package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/config"
	"github.com/vportan/bacbot/internal/infrastructure/ocr"
	"github.com/vportan/bacbot/internal/infrastructure/openai"
	"github.com/vportan/bacbot/internal/infrastructure/redis"
	"github.com/vportan/bacbot/internal/infrastructure/translate"
	"github.com/vportan/bacbot/internal/services/chat"
	"github.com/vportan/bacbot/internal/services/entitlement"
	"github.com/vportan/bacbot/internal/services/session"
	"github.com/vportan/bacbot/internal/storage/snapshot"
)

type Services struct {
	redisService       *redis.Service
	openAIService      *openai.Service
	ocrService         *ocr.Service
	translateService   *translate.Service
	chatService        *chat.Service
	sessionService     *session.Service
	entitlementService *entitlement.Service
}

// InitializeServices initializes all required services
func InitializeServices() (*Services, error) {
	log.Info().Msg("Initializing core services")

	// Optional Redis snapshot backend
	redisService := redis.NewService()

	dataDir := config.GetDataDir()
	langStore := snapshot.ForConcern(redisService, "bacbot:languages", dataDir, "languages.json")
	histStore := snapshot.ForConcern(redisService, "bacbot:histories", dataDir, "histories.json")
	proStore := snapshot.ForConcern(redisService, "bacbot:pro_users", dataDir, "pro_users.json")

	entitlementService := entitlement.NewService(proStore)
	log.Info().Msg("Initializing entitlement service")

	sessionService := session.NewService(
		langStore,
		histStore,
		config.GetMaxTurns(),
		config.ClearHistoryOnLanguageChange(),
	)
	log.Info().Msg("Initializing session service")

	// OpenAI service (required); a missing key is fatal inside config
	openAIService := openai.NewService()

	chatService, err := chat.NewService(openAIService, config.GetOpenAIModel(), config.GetCompletionTimeout())
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize chat service - required for message processing")
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}
	log.Info().Msg("Initializing chat service")

	// Optional collaborators
	ocrService := ocr.NewService()
	translateService := translate.NewService()

	log.Info().Msg("All services initialized successfully")

	return &Services{
		redisService:       redisService,
		openAIService:      openAIService,
		ocrService:         ocrService,
		translateService:   translateService,
		chatService:        chatService,
		sessionService:     sessionService,
		entitlementService: entitlementService,
	}, nil
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Service {
	return s.chatService
}

// GetSessionService returns the session service
func (s *Services) GetSessionService() *session.Service {
	return s.sessionService
}

// GetEntitlementService returns the entitlement service
func (s *Services) GetEntitlementService() *entitlement.Service {
	return s.entitlementService
}

// GetOCRService returns the OCR service, which may be nil when unconfigured
func (s *Services) GetOCRService() *ocr.Service {
	return s.ocrService
}

// GetTranslateService returns the translation service, which may be nil when unconfigured
func (s *Services) GetTranslateService() *translate.Service {
	return s.translateService
}

// Close releases held connections
func (s *Services) Close() {
	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
}
