package repositories

import (
	"tennis_backend/internal/models"

	"gorm.io/gorm"
)

type MatchRepository interface {
	Create(tx *gorm.DB, result *models.MatchResult) error
	ListByUser(userID string, limit int) ([]models.MatchResult, error)
}

type MatchRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &MatchRepositoryImpl{db: db}
}

func (r *MatchRepositoryImpl) Create(tx *gorm.DB, result *models.MatchResult) error {
	return tx.Create(result).Error
}

func (r *MatchRepositoryImpl) ListByUser(userID string, limit int) ([]models.MatchResult, error) {
	var results []models.MatchResult
	err := r.db.Where("winner_id = ? OR loser_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
