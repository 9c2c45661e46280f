package bot

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/services/entitlement"
	"github.com/vportan/bacbot/internal/services/session"
)

// Sender delivers outbound replies and fetches uploaded files.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// Completer generates an answer for a prompt.
type Completer interface {
	Complete(ctx context.Context, turns []session.Turn) (string, error)
}

// Recognizer extracts text from image bytes.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, languageHint string) (string, error)
}

// Translator translates text into a target language code.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Deps collects everything the handler needs. Recognizer and Translator may
// be nil when the corresponding service is not configured.
type Deps struct {
	Sender           Sender
	Sessions         *session.Service
	Entitlements     *entitlement.Service
	Completer        Completer
	Recognizer       Recognizer
	Translator       Translator
	AdminUserID      int64
	FreeMessageLimit int
}

// Handler processes inbound Telegram updates one at a time per update
// goroutine. There is no per-user locking: two in-flight messages from the
// same user race last-write-wins on the session state.
type Handler struct {
	sender       Sender
	sessions     *session.Service
	entitlements *entitlement.Service
	completer    Completer
	recognizer   Recognizer
	translator   Translator
	adminUserID  int64
	freeLimit    int
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		sender:       deps.Sender,
		sessions:     deps.Sessions,
		entitlements: deps.Entitlements,
		completer:    deps.Completer,
		recognizer:   deps.Recognizer,
		translator:   deps.Translator,
		adminUserID:  deps.AdminUserID,
		freeLimit:    deps.FreeMessageLimit,
	}
}

func userKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (h *Handler) send(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) {
	if err := h.sender.SendMessage(ctx, chatID, text, markup); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver reply")
	}
}

// start answers /start with the language keyboard.
func (h *Handler) start(ctx context.Context, chatID int64) {
	h.send(ctx, chatID, session.ChooseLanguagePrompt, languageKeyboard())
}

// chooseLanguage records the selection and greets the user in it.
func (h *Handler) chooseLanguage(ctx context.Context, userID string, chatID int64, lang session.Language) {
	if err := h.sessions.SetLanguage(userID, lang); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to store language selection")
		h.send(ctx, chatID, errorText(lang), nil)
		return
	}
	h.send(ctx, chatID, lang.Greeting(), nil)
}

// freeText is the main relay flow for an inbound text message.
func (h *Handler) freeText(ctx context.Context, userID string, chatID int64, text string) {
	if lang, ok := session.ParseLanguage(text); ok {
		h.chooseLanguage(ctx, userID, chatID, lang)
		return
	}

	lang := h.sessions.ResolveLanguage(userID)
	if lang == session.LanguageUnset {
		// Intercepted before any history mutation.
		h.send(ctx, chatID, session.ChooseLanguagePrompt, languageKeyboard())
		return
	}

	h.relay(ctx, userID, chatID, lang, text)
}

// relay applies the length gate, records the user turn and forwards the
// prompt to the completion API.
func (h *Handler) relay(ctx context.Context, userID string, chatID int64, lang session.Language, text string) {
	if !h.entitlements.IsEntitled(userID) && utf8.RuneCountInString(text) > h.freeLimit {
		// Rejected before the turn is appended and before any API call.
		h.send(ctx, chatID, upgradeText(lang), nil)
		return
	}

	prompt, err := h.sessions.RecordUserTurn(userID, text, lang.SystemPrompt())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to record user turn")
		h.send(ctx, chatID, errorText(lang), nil)
		return
	}

	answer, err := h.completer.Complete(ctx, prompt)
	if err != nil {
		// The user turn already recorded is not rolled back.
		log.Warn().Err(err).Str("user_id", userID).Msg("Completion failed")
		h.send(ctx, chatID, unavailableText(lang), nil)
		return
	}

	if err := h.sessions.RecordAssistantReply(userID, answer); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to record assistant reply")
	}
	h.send(ctx, chatID, answer, nil)
}

// photo downloads the image, extracts its text and relays it like a typed
// question.
func (h *Handler) photo(ctx context.Context, userID string, chatID int64, fileID string) {
	lang := h.sessions.ResolveLanguage(userID)
	if lang == session.LanguageUnset {
		h.send(ctx, chatID, session.ChooseLanguagePrompt, languageKeyboard())
		return
	}

	if h.recognizer == nil {
		h.send(ctx, chatID, photoFailedText(lang), nil)
		return
	}

	image, err := h.sender.DownloadFile(ctx, fileID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to download photo")
		h.send(ctx, chatID, photoFailedText(lang), nil)
		return
	}

	text, err := h.recognizer.Recognize(ctx, image, lang.OCRHint())
	if err != nil || text == "" {
		log.Warn().Err(err).Str("user_id", userID).Msg("OCR produced no text")
		h.send(ctx, chatID, photoFailedText(lang), nil)
		return
	}

	h.relay(ctx, userID, chatID, lang, text)
}

// newConversation empties the history, keeping the language selection.
func (h *Handler) newConversation(ctx context.Context, userID string, chatID int64) {
	lang := h.sessions.ResolveLanguage(userID)
	if err := h.sessions.StartNewConversation(userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to clear history")
		h.send(ctx, chatID, errorText(lang), nil)
		return
	}
	h.send(ctx, chatID, newConversationText(lang), nil)
}

// languageReset returns the user to the choose-a-language state and clears
// the history.
func (h *Handler) languageReset(ctx context.Context, userID string, chatID int64) {
	if err := h.sessions.ClearLanguage(userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to reset language")
		h.send(ctx, chatID, errorText(session.LanguageUnset), nil)
		return
	}
	h.send(ctx, chatID, session.ChooseLanguagePrompt, languageKeyboard())
}

// trial starts the fixed trial grant. Whether the user already used a trial
// is not tracked anywhere.
func (h *Handler) trial(ctx context.Context, userID string, chatID int64) {
	lang := h.sessions.ResolveLanguage(userID)
	if err := h.entitlements.StartTrial(userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to start trial")
		h.send(ctx, chatID, errorText(lang), nil)
		return
	}
	h.send(ctx, chatID, trialStartedText(lang), nil)
}

// proStatus reports the user's grant expiry.
func (h *Handler) proStatus(ctx context.Context, userID string, chatID int64) {
	lang := h.sessions.ResolveLanguage(userID)
	until, ok := h.entitlements.ProUntil(userID)
	active := ok && h.entitlements.IsEntitled(userID)
	h.send(ctx, chatID, proStatusText(lang, until, active), nil)
}

// grant handles the admin-only "/grant <user_id> [days]" command.
func (h *Handler) grant(ctx context.Context, fromID, chatID int64, args []string) {
	if h.adminUserID == 0 || fromID != h.adminUserID {
		return
	}
	if len(args) < 1 {
		h.send(ctx, chatID, "Usage: /grant <user_id> [days]", nil)
		return
	}

	duration := entitlement.DefaultGrantDuration
	if len(args) > 1 {
		days, err := strconv.Atoi(args[1])
		if err != nil || days <= 0 {
			h.send(ctx, chatID, "Usage: /grant <user_id> [days]", nil)
			return
		}
		duration = time.Duration(days) * 24 * time.Hour
	}

	if err := h.entitlements.Grant(args[0], duration); err != nil {
		log.Error().Err(err).Str("target", args[0]).Msg("Failed to grant entitlement")
		h.send(ctx, chatID, "Grant failed.", nil)
		return
	}
	h.send(ctx, chatID, "PRO granted to "+args[0]+".", nil)
}

// revoke handles the admin-only "/revoke <user_id>" command.
func (h *Handler) revoke(ctx context.Context, fromID, chatID int64, args []string) {
	if h.adminUserID == 0 || fromID != h.adminUserID {
		return
	}
	if len(args) < 1 {
		h.send(ctx, chatID, "Usage: /revoke <user_id>", nil)
		return
	}

	if err := h.entitlements.Revoke(args[0]); err != nil {
		log.Error().Err(err).Str("target", args[0]).Msg("Failed to revoke entitlement")
		h.send(ctx, chatID, "Revoke failed.", nil)
		return
	}
	h.send(ctx, chatID, "PRO revoked for "+args[0]+".", nil)
}

// translateCmd translates the command argument into the user's language.
func (h *Handler) translateCmd(ctx context.Context, userID string, chatID int64, text string) {
	lang := h.sessions.ResolveLanguage(userID)
	if lang == session.LanguageUnset {
		h.send(ctx, chatID, session.ChooseLanguagePrompt, languageKeyboard())
		return
	}

	if strings.TrimSpace(text) == "" {
		h.send(ctx, chatID, translateUsageText(lang), nil)
		return
	}

	if h.translator == nil {
		h.send(ctx, chatID, translateFailedText(lang), nil)
		return
	}

	translated, err := h.translator.Translate(ctx, strings.TrimSpace(text), string(lang))
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Translation failed")
		h.send(ctx, chatID, translateFailedText(lang), nil)
		return
	}
	h.send(ctx, chatID, translated, nil)
}
