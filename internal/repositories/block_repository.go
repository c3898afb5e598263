package repositories

import (
	"errors"

	"tennis_backend/internal/models"

	"gorm.io/gorm"
)

type BlockRepository interface {
	Block(blockerID, blockedID string) error
	Unblock(blockerID, blockedID string) error
	IsBlockedEitherWay(userA, userB string) (bool, error)
	ListBlocked(blockerID string) ([]models.User, error)
}

type BlockRepositoryImpl struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &BlockRepositoryImpl{db: db}
}

// Block идемпотентен: повторная блокировка той же пары - no-op
func (r *BlockRepositoryImpl) Block(blockerID, blockedID string) error {
	var existing models.BlockedUser
	err := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(&models.BlockedUser{
		BlockerID: blockerID,
		BlockedID: blockedID,
	}).Error
}

// Unblock идемпотентен: снятие несуществующей блокировки - no-op
func (r *BlockRepositoryImpl) Unblock(blockerID, blockedID string) error {
	return r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.BlockedUser{}).Error
}

// IsBlockedEitherWay проверяет ребро блокировки в любом направлении
func (r *BlockRepositoryImpl) IsBlockedEitherWay(userA, userB string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlockedUser{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

// ListBlocked возвращает пользователей, заблокированных данным игроком,
// в порядке от недавних блокировок к старым
func (r *BlockRepositoryImpl) ListBlocked(blockerID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN blocked_users bu ON bu.blocked_id = users.id").
		Where("bu.blocker_id = ?", blockerID).
		Order("bu.created_at DESC").
		Find(&users).Error
	return users, err
}
