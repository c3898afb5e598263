package services

import (
	"errors"

	"tennis_backend/internal/models"
	"tennis_backend/internal/repositories"
	"tennis_backend/internal/services/dto"
	"tennis_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(targetID, viewerID string) (*dto.ProfileView, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.SelfView, error)

	BlockUser(blockerID, blockedID string) error
	UnblockUser(blockerID, blockedID string) error
	ListBlocked(blockerID string) ([]*dto.BlockedUserItem, error)
}

type UserServiceImpl struct {
	users  repositories.UserRepository
	blocks repositories.BlockRepository
}

func NewUserService(users repositories.UserRepository, blocks repositories.BlockRepository) UserService {
	return &UserServiceImpl{users: users, blocks: blocks}
}

// GetProfile возвращает проекцию профиля для зрителя. Несуществующий,
// неактивный, приватный и заблокированный (в любую сторону) профиль
// дают один и тот же 404, чтобы не раскрывать причину отказа.
func (s *UserServiceImpl) GetProfile(targetID, viewerID string) (*dto.ProfileView, error) {
	target, err := s.users.FindByID(targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFoundOrBlocked
		}
		return nil, apperrors.InternalError(err)
	}

	if viewerID != target.ID {
		blocked, err := s.blocks.IsBlockedEitherWay(viewerID, targetID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if blocked {
			return nil, apperrors.ErrNotFoundOrBlocked
		}
		if target.ProfileVisibility == models.VisibilityPrivate {
			return nil, apperrors.ErrNotFoundOrBlocked
		}
	}

	return dto.NewProfileView(target, viewerID), nil
}

// UpdateProfile применяет частичное обновление по allow-list и после
// записи поднимает флаг полноты профиля, если предикат выполнился.
func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.SelfView, error) {
	if req.NTRPInitial != nil && (*req.NTRPInitial < 1.0 || *req.NTRPInitial > 7.0) {
		return nil, apperrors.ErrNTRPOutOfRange
	}

	user, err := s.users.UpdateProfileFields(userID, req.Fields())
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoFields):
			return nil, apperrors.ErrNoValidFields
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, apperrors.ErrAccountInactive
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if !user.ProfileComplete && user.IsProfileComplete() {
		if err := s.users.SetProfileComplete(userID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.ProfileComplete = true
	}

	return dto.NewSelfView(user), nil
}

// BlockUser добавляет направленную блокировку. Чужой аккаунт должен
// существовать и быть активным; блокировка самого себя запрещена.
func (s *UserServiceImpl) BlockUser(blockerID, blockedID string) error {
	if blockerID == blockedID {
		return apperrors.ErrCannotBlockSelf
	}

	if _, err := s.users.FindByID(blockedID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFoundOrBlocked
		}
		return apperrors.InternalError(err)
	}

	if err := s.blocks.Block(blockerID, blockedID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// UnblockUser снимает блокировку; отсутствие блокировки - не ошибка
func (s *UserServiceImpl) UnblockUser(blockerID, blockedID string) error {
	if err := s.blocks.Unblock(blockerID, blockedID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) ListBlocked(blockerID string) ([]*dto.BlockedUserItem, error) {
	users, err := s.blocks.ListBlocked(blockerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.BlockedUserItem, 0, len(users))
	for i := range users {
		items = append(items, &dto.BlockedUserItem{
			ID:              users[i].ID,
			FirstName:       users[i].FirstName,
			LastName:        users[i].LastName,
			ProfilePhotoURL: users[i].ProfilePhotoURL,
		})
	}
	return items, nil
}
