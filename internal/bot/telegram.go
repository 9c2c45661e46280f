package bot

import (
	"context"
	"strings"

	tg "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Telegram-facing adapters. Each one unwraps the update and hands the typed
// values to the corresponding flow; a short trace id ties the log lines of
// one update together.

func unwrap(update *models.Update) (*models.Message, bool) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return nil, false
	}
	return update.Message, true
}

func traced(m *models.Message) {
	log.Debug().
		Str("trace_id", uuid.New().String()[:8]).
		Int64("user_id", m.From.ID).
		Int64("chat_id", m.Chat.ID).
		Msg("Handling update")
}

// commandArgs splits "/cmd a b" into its arguments.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// HandleUpdate handles every update no registered command matched: photos,
// language-button presses and free text.
func (h *Handler) HandleUpdate(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)

	switch {
	case len(m.Photo) > 0:
		// Telegram orders photo sizes ascending; take the largest.
		fileID := m.Photo[len(m.Photo)-1].FileID
		h.photo(ctx, userKey(m.From.ID), m.Chat.ID, fileID)
	case m.Text != "":
		h.freeText(ctx, userKey(m.From.ID), m.Chat.ID, m.Text)
	}
}

func (h *Handler) HandleStart(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.start(ctx, m.Chat.ID)
}

func (h *Handler) HandleNewConversation(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.newConversation(ctx, userKey(m.From.ID), m.Chat.ID)
}

func (h *Handler) HandleLanguageReset(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.languageReset(ctx, userKey(m.From.ID), m.Chat.ID)
}

func (h *Handler) HandleTrial(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.trial(ctx, userKey(m.From.ID), m.Chat.ID)
}

func (h *Handler) HandleProStatus(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.proStatus(ctx, userKey(m.From.ID), m.Chat.ID)
}

func (h *Handler) HandleGrant(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.grant(ctx, m.From.ID, m.Chat.ID, commandArgs(m.Text))
}

func (h *Handler) HandleRevoke(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.revoke(ctx, m.From.ID, m.Chat.ID, commandArgs(m.Text))
}

func (h *Handler) HandleTranslate(ctx context.Context, _ *tg.Bot, update *models.Update) {
	m, ok := unwrap(update)
	if !ok {
		return
	}
	traced(m)
	h.translateCmd(ctx, userKey(m.From.ID), m.Chat.ID, strings.TrimPrefix(m.Text, "/translate"))
}
