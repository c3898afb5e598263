package dto

// SearchPlayersRequest - query-параметры GET /users/search.
// Пустое значение фильтра означает "не фильтровать".
type SearchPlayersRequest struct {
	MinRating       *int   `form:"minRating" validate:"omitempty,min=0"`
	MaxRating       *int   `form:"maxRating" validate:"omitempty,min=0"`
	PreferredFormat string `form:"preferredFormat" validate:"omitempty,is-match-format"`
	Gender          string `form:"gender" validate:"omitempty,is-gender"`
	AvailableNow    bool   `form:"availableNow"`
	Page            int    `form:"page"`
	PageSize        int    `form:"pageSize"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
}

type SearchPlayersResponse struct {
	Players    []*PlayerSearchItem `json:"players"`
	Pagination Pagination          `json:"pagination"`
}
