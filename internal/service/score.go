package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
)

// ErrScoreNotFound is returned when a user has no recorded score.
var ErrScoreNotFound = repository.ErrScoreNotFound

// ScoreService reads and writes the score ledger.
type ScoreService struct {
	ledger ScoreLedger
}

// NewScoreService creates a new ScoreService.
func NewScoreService(ledger ScoreLedger) *ScoreService {
	return &ScoreService{ledger: ledger}
}

// LastScore returns the last completed result of userName.
func (s *ScoreService) LastScore(ctx context.Context, userName string) (*entities.ScoreRecord, error) {
	rec, err := s.ledger.Get(ctx, entities.NormalizeUserName(userName))
	if err != nil {
		return nil, fmt.Errorf("get last score: %w", err)
	}
	return rec, nil
}

// Save overwrites the user's record with rec.
func (s *ScoreService) Save(ctx context.Context, rec *entities.ScoreRecord) error {
	out := *rec
	out.UserName = entities.NormalizeUserName(rec.UserName)

	if err := s.ledger.Save(ctx, &out); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}
