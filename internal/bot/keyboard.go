package bot

import (
	"github.com/go-telegram/bot/models"

	"github.com/vportan/bacbot/internal/services/session"
)

// languageKeyboard builds the fixed reply keyboard with one button per
// supported language.
func languageKeyboard() *models.ReplyKeyboardMarkup {
	row := make([]models.KeyboardButton, 0, len(session.Languages()))
	for _, lang := range session.Languages() {
		row = append(row, models.KeyboardButton{Text: lang.Label()})
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:       [][]models.KeyboardButton{row},
		ResizeKeyboard: true,
	}
}
