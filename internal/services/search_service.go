package services

import (
	"errors"

	"tennis_backend/internal/models"
	"tennis_backend/internal/repositories"
	"tennis_backend/internal/services/dto"
	"tennis_backend/pkg/apperrors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

type SearchService interface {
	SearchPlayers(viewerID string, req *dto.SearchPlayersRequest) (*dto.SearchPlayersResponse, error)
}

type SearchServiceImpl struct {
	users repositories.UserRepository
}

func NewSearchService(users repositories.UserRepository) SearchService {
	return &SearchServiceImpl{users: users}
}

// SearchPlayers выполняет поиск партнеров от лица зрителя. Зритель обязан
// быть активным; сам он, его блокировки и непубличные профили из выдачи
// исключаются на уровне запроса.
func (s *SearchServiceImpl) SearchPlayers(viewerID string, req *dto.SearchPlayersRequest) (*dto.SearchPlayersResponse, error) {
	viewer, err := s.users.FindByID(viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrAccountInactive
		}
		return nil, apperrors.InternalError(err)
	}
	if !viewer.ProfileComplete {
		return nil, apperrors.ErrProfileIncomplete
	}

	if req.MinRating != nil && req.MaxRating != nil && *req.MinRating > *req.MaxRating {
		return nil, apperrors.NewBadRequestError("minRating cannot exceed maxRating")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	criteria := repositories.PlayerSearchCriteria{
		ViewerID:        viewerID,
		MinRating:       req.MinRating,
		MaxRating:       req.MaxRating,
		PreferredFormat: models.MatchFormat(req.PreferredFormat),
		Gender:          models.Gender(req.Gender),
		AvailableNow:    req.AvailableNow,
		Page:            page,
		PageSize:        pageSize,
	}

	users, total, err := s.users.SearchPlayers(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	players := make([]*dto.PlayerSearchItem, 0, len(users))
	for i := range users {
		players = append(players, dto.NewPlayerSearchItem(&users[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.SearchPlayersResponse{
		Players: players,
		Pagination: dto.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			PageSize:    pageSize,
		},
	}, nil
}
