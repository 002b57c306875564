package storage

import (
	"sync"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// Preferences are the quiz options a chat has chosen.
type Preferences struct {
	Count     int
	NoRepeat  bool
	RangeFrom int
	RangeTo   int

	// Wizard selections made through the inline keyboards.
	Sheet  string
	Lesson string
	Mode   entities.Mode

	// ActiveSession is the quiz the chat is currently answering.
	ActiveSession string
}

// PreferenceStorage keeps Preferences per chat ID.
type PreferenceStorage struct {
	mu           sync.RWMutex
	prefs        map[int64]Preferences
	defaultCount int
}

// NewPreferenceStorage creates a new PreferenceStorage. Chats that never set a
// count get defaultCount.
func NewPreferenceStorage(defaultCount int) *PreferenceStorage {
	return &PreferenceStorage{
		prefs:        make(map[int64]Preferences),
		defaultCount: defaultCount,
	}
}

// Get returns the preferences of a chat.
func (s *PreferenceStorage) Get(chatID int64) Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[chatID]
	if !ok {
		return Preferences{Count: s.defaultCount}
	}
	return p
}

// Update applies fn to the chat's preferences and stores the result.
func (s *PreferenceStorage) Update(chatID int64, fn func(*Preferences)) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prefs[chatID]
	if !ok {
		p = Preferences{Count: s.defaultCount}
	}
	fn(&p)
	s.prefs[chatID] = p

	return p
}
