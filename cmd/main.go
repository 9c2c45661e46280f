package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/api"
	"github.com/vportan/bacbot/internal/bot"
	"github.com/vportan/bacbot/internal/config"
	"github.com/vportan/bacbot/internal/infrastructure/telegram"
	"github.com/vportan/bacbot/internal/services"
)

func main() {
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcs, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer svcs.Close()

	telegramService, err := telegram.NewService(config.GetTelegramToken())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram service")
	}

	deps := bot.Deps{
		Sender:           telegramService,
		Sessions:         svcs.GetSessionService(),
		Entitlements:     svcs.GetEntitlementService(),
		Completer:        svcs.GetChatService(),
		AdminUserID:      config.GetAdminUserID(),
		FreeMessageLimit: config.GetFreeMessageLimit(),
	}
	// Concrete nil services must not become non-nil interfaces.
	if ocrService := svcs.GetOCRService(); ocrService != nil {
		deps.Recognizer = ocrService
	}
	if translateService := svcs.GetTranslateService(); translateService != nil {
		deps.Translator = translateService
	}

	handler := bot.NewHandler(deps)
	telegramService.OnUpdate(handler.HandleUpdate)
	telegramService.RegisterCommand("/start", handler.HandleStart)
	telegramService.RegisterCommand("/new", handler.HandleNewConversation)
	telegramService.RegisterCommand("/language", handler.HandleLanguageReset)
	telegramService.RegisterCommand("/trial", handler.HandleTrial)
	telegramService.RegisterCommand("/pro", handler.HandleProStatus)
	telegramService.RegisterCommand("/grant", handler.HandleGrant)
	telegramService.RegisterCommand("/revoke", handler.HandleRevoke)
	telegramService.RegisterCommand("/translate", handler.HandleTranslate)

	startAdminServer(ctx, svcs)

	log.Info().Msg("Bot started")
	telegramService.Start(ctx)
	log.Info().Msg("Bot stopped")
}

func setupLogging() {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetEnvOrDefault("LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func startAdminServer(ctx context.Context, svcs *services.Services) {
	if len(config.GetAdminJWTSecret()) == 0 {
		log.Warn().Msg("ADMIN_JWT_SECRET not set - admin API disabled")
		return
	}

	srv := &http.Server{
		Addr:    config.GetAdminListenAddr(),
		Handler: api.NewRouter(svcs.GetEntitlementService()),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Admin API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Admin API server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Admin API shutdown failed")
		}
	}()
}
