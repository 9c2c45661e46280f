package bot

import (
	"fmt"
	"time"

	"github.com/vportan/bacbot/internal/services/session"
)

// Reply texts keyed by the user's selected language. Users who have not
// picked a language yet get the Russian text, matching the original bot's
// default.

func fallback(lang session.Language) session.Language {
	if lang == session.LanguageUnset {
		return session.LanguageRussian
	}
	return lang
}

func upgradeText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "Mesajul e prea lung pentru contul gratuit (max 250 caractere). Activează PRO cu /trial."
	case session.LanguageEnglish:
		return "Your message is too long for the free tier (max 250 characters). Unlock PRO with /trial."
	default:
		return "Сообщение слишком длинное для бесплатного тарифа (максимум 250 символов). Подключи PRO через /trial."
	}
}

func unavailableText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "⚠️ Serviciul nu răspunde. Încearcă din nou mai târziu."
	case session.LanguageEnglish:
		return "⚠️ The service is not responding. Please try again later."
	default:
		return "⚠️ Сервис не отвечает. Попробуй ещё раз позже."
	}
}

func errorText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "⚠️ Eroare. Încearcă din nou."
	case session.LanguageEnglish:
		return "⚠️ Error. Please try again."
	default:
		return "⚠️ Ошибка. Попробуй ещё раз."
	}
}

func newConversationText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "Am început o conversație nouă. Trimite întrebarea ta."
	case session.LanguageEnglish:
		return "Started a new conversation. Send your question."
	default:
		return "Начали новый разговор. Отправь свой вопрос."
	}
}

func trialStartedText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "Perioada de probă PRO de 3 zile este activată!"
	case session.LanguageEnglish:
		return "Your 3-day PRO trial is now active!"
	default:
		return "Пробный период PRO на 3 дня активирован!"
	}
}

func proStatusText(lang session.Language, until time.Time, active bool) string {
	if !active {
		switch fallback(lang) {
		case session.LanguageRomanian:
			return "Nu ai un abonament PRO activ. Încearcă /trial."
		case session.LanguageEnglish:
			return "You have no active PRO subscription. Try /trial."
		default:
			return "У тебя нет активной подписки PRO. Попробуй /trial."
		}
	}

	date := until.Format("02.01.2006")
	switch fallback(lang) {
	case session.LanguageRomanian:
		return fmt.Sprintf("Abonamentul PRO este activ până la %s.", date)
	case session.LanguageEnglish:
		return fmt.Sprintf("Your PRO subscription is active until %s.", date)
	default:
		return fmt.Sprintf("Подписка PRO активна до %s.", date)
	}
}

func photoFailedText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "Nu am putut citi textul din imagine. Trimite întrebarea ca text."
	case session.LanguageEnglish:
		return "I could not read the text in the image. Send your question as text."
	default:
		return "Не удалось прочитать текст на картинке. Отправь вопрос текстом."
	}
}

func translateUsageText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "Folosește: /translate <text>"
	case session.LanguageEnglish:
		return "Usage: /translate <text>"
	default:
		return "Используй: /translate <текст>"
	}
}

func translateFailedText(lang session.Language) string {
	switch fallback(lang) {
	case session.LanguageRomanian:
		return "Traducerea nu este disponibilă acum."
	case session.LanguageEnglish:
		return "Translation is not available right now."
	default:
		return "Перевод сейчас недоступен."
	}
}
