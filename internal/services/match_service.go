package services

import (
	"errors"

	"tennis_backend/internal/models"
	"tennis_backend/internal/rating"
	"tennis_backend/internal/repositories"
	"tennis_backend/internal/services/dto"
	"tennis_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type MatchService interface {
	RecordMatch(reporterID string, req *dto.RecordMatchRequest) (*dto.MatchResultResponse, error)
	ListMatches(userID string, limit int) ([]*dto.MatchHistoryItem, error)
}

type MatchServiceImpl struct {
	db      *gorm.DB
	users   repositories.UserRepository
	matches repositories.MatchRepository
}

func NewMatchService(db *gorm.DB, users repositories.UserRepository, matches repositories.MatchRepository) MatchService {
	return &MatchServiceImpl{db: db, users: users, matches: matches}
}

// RecordMatch фиксирует результат матча и пересчитывает Elo обоих игроков
// в одной транзакции: либо обновляются оба плюс строка истории, либо ничего.
// Репортер обязан быть одним из участников.
func (s *MatchServiceImpl) RecordMatch(reporterID string, req *dto.RecordMatchRequest) (*dto.MatchResultResponse, error) {
	if req.WinnerID == req.LoserID {
		return nil, apperrors.NewBadRequestError("Winner and loser must be different players")
	}
	if reporterID != req.WinnerID && reporterID != req.LoserID {
		return nil, apperrors.NewForbiddenError("Only a participant can report the match")
	}

	winner, err := s.users.FindByID(req.WinnerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFoundOrBlocked
		}
		return nil, apperrors.InternalError(err)
	}
	loser, err := s.users.FindByID(req.LoserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFoundOrBlocked
		}
		return nil, apperrors.InternalError(err)
	}

	winnerDelta, loserDelta := rating.MatchDeltas(
		winner.EloRating, loser.EloRating,
		winner.MatchesPlayedForElo, loser.MatchesPlayedForElo,
	)

	winnerOutcome := repositories.MatchOutcome{
		EloRating:           winner.EloRating + winnerDelta,
		MatchesPlayedForElo: winner.MatchesPlayedForElo + 1,
		EloProvisional:      rating.IsProvisional(winner.MatchesPlayedForElo + 1),
		Won:                 true,
		CurrentStreak:       rating.NextStreak(winner.CurrentStreak, true),
	}
	loserOutcome := repositories.MatchOutcome{
		EloRating:           loser.EloRating + loserDelta,
		MatchesPlayedForElo: loser.MatchesPlayedForElo + 1,
		EloProvisional:      rating.IsProvisional(loser.MatchesPlayedForElo + 1),
		Won:                 false,
		CurrentStreak:       rating.NextStreak(loser.CurrentStreak, false),
	}

	result := &models.MatchResult{
		WinnerID:       winner.ID,
		LoserID:        loser.ID,
		Score:          req.Score,
		WinnerEloDelta: winnerDelta,
		LoserEloDelta:  loserDelta,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.ApplyMatchOutcome(tx, winner.ID, winnerOutcome); err != nil {
			return err
		}
		if err := s.users.ApplyMatchOutcome(tx, loser.ID, loserOutcome); err != nil {
			return err
		}
		return s.matches.Create(tx, result)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MatchResultResponse{
		MatchID:        result.ID,
		WinnerID:       winner.ID,
		LoserID:        loser.ID,
		Score:          req.Score,
		WinnerEloDelta: winnerDelta,
		LoserEloDelta:  loserDelta,
		WinnerElo:      winnerOutcome.EloRating,
		LoserElo:       loserOutcome.EloRating,
	}, nil
}

// ListMatches возвращает недавние матчи игрока, от новых к старым
func (s *MatchServiceImpl) ListMatches(userID string, limit int) ([]*dto.MatchHistoryItem, error) {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	results, err := s.matches.ListByUser(userID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.MatchHistoryItem, 0, len(results))
	for i := range results {
		m := &results[i]
		items = append(items, &dto.MatchHistoryItem{
			MatchID:        m.ID,
			WinnerID:       m.WinnerID,
			LoserID:        m.LoserID,
			Score:          m.Score,
			WinnerEloDelta: m.WinnerEloDelta,
			LoserEloDelta:  m.LoserEloDelta,
			PlayedAt:       m.CreatedAt,
		})
	}
	return items, nil
}
