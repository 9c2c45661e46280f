package session

// Language is one of the closed set of locales the bot can tutor in.
// LanguageUnset means the user has not picked one yet.
type Language string

const (
	LanguageUnset    Language = ""
	LanguageRomanian Language = "ro"
	LanguageRussian  Language = "ru"
	LanguageEnglish  Language = "en"
)

// Languages lists the supported locales in keyboard order.
func Languages() []Language {
	return []Language{LanguageRomanian, LanguageRussian, LanguageEnglish}
}

// Label returns the keyboard button text for the language.
func (l Language) Label() string {
	switch l {
	case LanguageRomanian:
		return "🇷🇴 Română"
	case LanguageRussian:
		return "🇷🇺 Русский"
	case LanguageEnglish:
		return "🇬🇧 English"
	}
	return ""
}

// ParseLanguage maps a keyboard button label back to its language.
func ParseLanguage(label string) (Language, bool) {
	for _, l := range Languages() {
		if l.Label() == label {
			return l, true
		}
	}
	return LanguageUnset, false
}

// SystemPrompt returns the tutor persona submitted as the system message.
func (l Language) SystemPrompt() string {
	switch l {
	case LanguageRomanian:
		return "Ești un profesor din Moldova care explică materia elevilor din clasele 5–12, inclusiv pentru examenele EN și BAC."
	case LanguageRussian:
		return "Ты учитель из Молдовы, объясняющий школьные темы ученикам 5–12 классов, готовишь к EN и BAC."
	case LanguageEnglish:
		return "You are a Moldovan teacher explaining school material to students (grades 5–12) and preparing for national exams."
	}
	return ""
}

// Greeting returns the message sent after the language is selected.
func (l Language) Greeting() string {
	switch l {
	case LanguageRomanian:
		return "Salut! Trimite-mi o întrebare legată de temă sau BAC."
	case LanguageRussian:
		return "Привет! Отправь мне вопрос по домашке или экзамену."
	case LanguageEnglish:
		return "Hi! Ask me anything related to school or exams."
	}
	return ""
}

// OCRHint returns the language code passed to the OCR service.
func (l Language) OCRHint() string {
	switch l {
	case LanguageRomanian:
		return "ron"
	case LanguageRussian:
		return "rus"
	case LanguageEnglish:
		return "eng"
	}
	return "eng"
}

// ChooseLanguagePrompt is sent, with the language keyboard, to any user who
// has not selected a language yet.
const ChooseLanguagePrompt = "Alege limba / Выбери язык / Choose language:"
