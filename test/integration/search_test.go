package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"tennis_backend/internal/models"
	"tennis_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchResponse struct {
	Players []struct {
		ID         string  `json:"id"`
		LastName   string  `json:"lastName"`
		EloRating  int     `json:"eloRating"`
		NTRPRating float64 `json:"ntrpRating"`
	} `json:"players"`
	Pagination struct {
		CurrentPage int   `json:"currentPage"`
		TotalPages  int   `json:"totalPages"`
		TotalCount  int64 `json:"totalCount"`
		PageSize    int   `json:"pageSize"`
	} `json:"pagination"`
}

func doSearch(t *testing.T, ts *helpers.TestServer, token, query string) searchResponse {
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/users/search"+query, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Поиск должен работать. Ответ: "+bodyStr)

	var parsed searchResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &parsed))
	return parsed
}

func containsPlayer(resp searchResponse, id string) bool {
	for _, p := range resp.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// TestSearch_ExcludesSelfAndHidden - зритель, приватные и незаполненные
// профили не попадают в выдачу
func TestSearch_ExcludesSelfAndHidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	// Диапазон рейтинга свой, чтобы выдача не разрасталась от соседних тестов
	viewerToken, viewer := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2740})
	_, visible := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2750})
	_, private := helpers.CreateAndLoginPlayer(t, ts, &models.User{
		EloRating:         2730,
		ProfileVisibility: models.VisibilityPrivate,
	})
	_, incomplete := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2710})
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", incomplete.ID).
		Updates(map[string]interface{}{"playing_hand": "", "profile_complete": false}).Error)

	resp := doSearch(t, ts, viewerToken, "?minRating=2700&maxRating=2759&pageSize=50")

	assert.True(t, containsPlayer(resp, visible.ID), "Публичный полный профиль должен быть в выдаче")
	assert.False(t, containsPlayer(resp, viewer.ID), "Сам зритель исключается")
	assert.False(t, containsPlayer(resp, private.ID), "Приватный профиль исключается")
	assert.False(t, containsPlayer(resp, incomplete.ID), "Неполный профиль исключается")
}

// TestSearch_RatingFilter
func TestSearch_RatingFilter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	viewerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, strong := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2650})
	_, weak := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 900})

	resp := doSearch(t, ts, viewerToken, "?minRating=2600&maxRating=2699&pageSize=50")

	assert.True(t, containsPlayer(resp, strong.ID))
	assert.False(t, containsPlayer(resp, weak.ID))
	for _, p := range resp.Players {
		assert.GreaterOrEqual(t, p.EloRating, 2600)
	}
}

// TestSearch_FormatFilterMatchesBoth - фильтр по формату пропускает 'both'
func TestSearch_FormatFilterMatchesBoth(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	viewerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, singles := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2510, PreferredFormat: models.FormatSingles})
	_, doubles := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2520, PreferredFormat: models.FormatDoubles})
	_, both := helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2530, PreferredFormat: models.FormatBoth})

	resp := doSearch(t, ts, viewerToken, "?preferredFormat=singles&minRating=2500&maxRating=2559&pageSize=50")

	assert.True(t, containsPlayer(resp, singles.ID))
	assert.True(t, containsPlayer(resp, both.ID), "'both' матчится с любым фильтром формата")
	assert.False(t, containsPlayer(resp, doubles.ID))
}

// TestSearch_OrderedByEloDesc
func TestSearch_OrderedByEloDesc(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	viewerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)
	// Диапазон рейтинга, не пересекающийся с другими тестами, чтобы
	// параллельные вставки не попадали в эту выдачу
	for _, elo := range []int{2810, 2850, 2830} {
		helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: elo})
	}

	resp := doSearch(t, ts, viewerToken, "?minRating=2800&maxRating=2859&pageSize=50")
	require.Equal(t, 3, len(resp.Players))

	for i := 1; i < len(resp.Players); i++ {
		assert.GreaterOrEqual(t, resp.Players[i-1].EloRating, resp.Players[i].EloRating,
			"Выдача отсортирована по Elo по убыванию")
	}
}

// TestSearch_Pagination - страницы не пересекаются, totalCount согласован
func TestSearch_Pagination(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	viewerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)
	// Собственный диапазон рейтинга, см. TestSearch_OrderedByEloDesc
	for i := 0; i < 5; i++ {
		helpers.CreateAndLoginPlayer(t, ts, &models.User{EloRating: 2910 + i})
	}
	band := "&minRating=2900&maxRating=2959"

	page1 := doSearch(t, ts, viewerToken, "?page=1&pageSize=2"+band)
	page2 := doSearch(t, ts, viewerToken, "?page=2&pageSize=2"+band)

	assert.Equal(t, 1, page1.Pagination.CurrentPage)
	assert.Equal(t, 2, page1.Pagination.PageSize)
	assert.Equal(t, int64(5), page1.Pagination.TotalCount)
	assert.Equal(t, page1.Pagination.TotalCount, page2.Pagination.TotalCount)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	assert.Len(t, page1.Players, 2)
	assert.Len(t, page2.Players, 2)

	for _, p1 := range page1.Players {
		assert.False(t, containsPlayer(page2, p1.ID), "Страницы не должны пересекаться")
	}
}

// TestSearch_RequiresCompleteProfile - незаполненный зритель не ищет
func TestSearch_RequiresCompleteProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.RegisterPlayer(t, ts, helpers.UniqueEmail("incomplete_viewer"), helpers.UniquePhone())

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/users/search", token, nil)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "complete your profile")
}

// TestSearch_InvalidRatingRange
func TestSearch_InvalidRatingRange(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	viewerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodGet,
		fmt.Sprintf("/api/v1/users/search?minRating=%d&maxRating=%d", 1800, 1200), viewerToken, nil)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "minRating cannot exceed maxRating")
}
