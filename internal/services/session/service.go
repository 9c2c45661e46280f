package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/storage/snapshot"
)

// Turn is one role-tagged message in a conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Service tracks, per user, the selected language and a bounded rolling
// history of conversation turns. Both record sets are snapshotted whole after
// every mutation.
//
// The mutexes guard only the map access itself. A handler that reads history,
// awaits the completion API and then writes the reply back holds no lock in
// between, so two in-flight events for the same user race last-write-wins.
type Service struct {
	mu        sync.RWMutex
	languages map[string]Language
	histories map[string][]Turn

	langStore snapshot.Store
	histStore snapshot.Store

	maxTurns      int
	clearOnChange bool
}

// NewService loads both record sets from their stores. Snapshot load failures
// are logged and the affected record set starts empty.
func NewService(langStore, histStore snapshot.Store, maxTurns int, clearOnLanguageChange bool) *Service {
	s := &Service{
		languages:     make(map[string]Language),
		histories:     make(map[string][]Turn),
		langStore:     langStore,
		histStore:     histStore,
		maxTurns:      maxTurns,
		clearOnChange: clearOnLanguageChange,
	}

	if err := langStore.Load(&s.languages); err != nil {
		log.Warn().Err(err).Msg("Failed to load language snapshot - starting empty")
	}
	if err := histStore.Load(&s.histories); err != nil {
		log.Warn().Err(err).Msg("Failed to load history snapshot - starting empty")
	}

	return s
}

// ResolveLanguage returns the user's selected language, or LanguageUnset if
// none has been chosen yet.
func (s *Service) ResolveLanguage(userID string) Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.languages[userID]
}

// SetLanguage records the selection. History is only cleared when the service
// was configured to start a new conversation on language change.
func (s *Service) SetLanguage(userID string, lang Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.languages[userID] = lang
	if err := s.langStore.Save(s.languages); err != nil {
		return fmt.Errorf("failed to persist language selection: %w", err)
	}

	if s.clearOnChange {
		delete(s.histories, userID)
		if err := s.histStore.Save(s.histories); err != nil {
			return fmt.Errorf("failed to persist history: %w", err)
		}
	}
	return nil
}

// ClearLanguage forgets the selection, returning the user to the
// choose-a-language state, and empties the history.
func (s *Service) ClearLanguage(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.languages, userID)
	if err := s.langStore.Save(s.languages); err != nil {
		return fmt.Errorf("failed to persist language selection: %w", err)
	}

	delete(s.histories, userID)
	if err := s.histStore.Save(s.histories); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// StartNewConversation empties the user's history. The language selection is
// preserved.
func (s *Service) StartNewConversation(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.histories, userID)
	if err := s.histStore.Save(s.histories); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// RecordUserTurn appends the user's message to history, trims it to the
// bound, and returns the full prompt (system message followed by history) to
// submit to the completion API. The user turn stays recorded even if the
// completion call fails afterwards.
func (s *Service) RecordUserTurn(userID, text, systemPrompt string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.histories[userID], Turn{Role: RoleUser, Content: text})
	history = s.trim(history)
	s.histories[userID] = history

	if err := s.histStore.Save(s.histories); err != nil {
		return nil, fmt.Errorf("failed to persist history: %w", err)
	}

	prompt := make([]Turn, 0, len(history)+1)
	prompt = append(prompt, Turn{Role: RoleSystem, Content: systemPrompt})
	prompt = append(prompt, history...)
	return prompt, nil
}

// RecordAssistantReply appends the model's answer to history and re-trims.
// It must only be called after a successful completion; skipping it on
// failure leaves a dangling user turn, which the next prompt simply includes.
func (s *Service) RecordAssistantReply(userID, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.histories[userID], Turn{Role: RoleAssistant, Content: answer})
	s.histories[userID] = s.trim(history)

	if err := s.histStore.Save(s.histories); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// HistoryLen returns the number of turns currently held for the user.
func (s *Service) HistoryLen(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.histories[userID])
}

// trim drops the oldest entries one at a time until the bound holds. Because
// single turns are appended and trimming removes from the front, user and
// assistant turns can fall out of pair alignment after a trim; that lossy
// behaviour is intentional.
func (s *Service) trim(history []Turn) []Turn {
	for len(history) > 2*s.maxTurns {
		history = history[1:]
	}
	return history
}
