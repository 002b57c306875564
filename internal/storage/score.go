package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
)

// ScoreStorage is an in-memory score ledger keeping the last record per user name.
type ScoreStorage struct {
	mu      sync.RWMutex
	records map[string]entities.ScoreRecord
}

// NewScoreStorage creates an empty ScoreStorage.
func NewScoreStorage() *ScoreStorage {
	return &ScoreStorage{records: make(map[string]entities.ScoreRecord)}
}

// Save overwrites the record stored for rec.UserName.
func (s *ScoreStorage) Save(_ context.Context, rec *entities.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserName] = *rec
	return nil
}

// Get returns the last record of userName.
func (s *ScoreStorage) Get(_ context.Context, userName string) (*entities.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userName]
	if !ok {
		return nil, repository.ErrScoreNotFound
	}
	return &rec, nil
}
