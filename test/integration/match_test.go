package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"tennis_backend/internal/models"
	"tennis_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordMatch_UpdatesBothPlayers - результат матча двигает Elo обоих
// игроков зеркально и обновляет статистику
func TestRecordMatch_UpdatesBothPlayers(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	winnerToken, winner := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, loser := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/matches", winnerToken,
		map[string]interface{}{
			"winnerId": winner.ID,
			"loserId":  loser.ID,
			"score":    "6-4 6-2",
		})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var result struct {
		WinnerEloDelta int `json:"winnerEloDelta"`
		LoserEloDelta  int `json:"loserEloDelta"`
		WinnerElo      int `json:"winnerElo"`
		LoserElo       int `json:"loserElo"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))

	assert.Positive(t, result.WinnerEloDelta, "Победитель набирает очки")
	assert.Negative(t, result.LoserEloDelta, "Проигравший теряет очки")
	assert.Equal(t, 1200+result.WinnerEloDelta, result.WinnerElo)
	assert.Equal(t, 1200+result.LoserEloDelta, result.LoserElo)

	// Статистика в БД обновлена у обоих
	var storedWinner, storedLoser models.User
	require.NoError(t, ts.DB.First(&storedWinner, "id = ?", winner.ID).Error)
	require.NoError(t, ts.DB.First(&storedLoser, "id = ?", loser.ID).Error)

	assert.Equal(t, 1, storedWinner.TotalMatches)
	assert.Equal(t, 1, storedWinner.Wins)
	assert.Equal(t, 1, storedWinner.CurrentStreak)
	assert.Equal(t, 1, storedLoser.TotalMatches)
	assert.Equal(t, 1, storedLoser.Losses)
	assert.Equal(t, -1, storedLoser.CurrentStreak)
}

// TestMatchHistory - записанный матч появляется в истории обоих участников,
// limit ограничивает выдачу
func TestMatchHistory(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	winnerToken, winner := helpers.CreateAndLoginPlayer(t, ts, nil)
	loserToken, loser := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/matches", winnerToken,
		map[string]interface{}{
			"winnerId": winner.ID,
			"loserId":  loser.ID,
			"score":    "7-5 6-3",
		})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var recorded struct {
		MatchID string `json:"matchId"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &recorded))
	require.NotEmpty(t, recorded.MatchID)

	for _, token := range []string{winnerToken, loserToken} {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/matches", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, bodyStr, recorded.MatchID, "Матч виден в истории участника")
		assert.Contains(t, bodyStr, "7-5 6-3")
	}

	// limit=0 интерпретируется как значение по умолчанию, не как пустая выдача
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/matches?limit=0", winnerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, recorded.MatchID)
}

// TestRecordMatch_OnlyParticipantReports
func TestRecordMatch_OnlyParticipantReports(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, winner := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, loser := helpers.CreateAndLoginPlayer(t, ts, nil)
	outsiderToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/matches", outsiderToken,
		map[string]interface{}{
			"winnerId": winner.ID,
			"loserId":  loser.ID,
		})

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "participant")
}

// TestRecordMatch_SamePlayer
func TestRecordMatch_SamePlayer(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/matches", token,
		map[string]interface{}{
			"winnerId": user.ID,
			"loserId":  user.ID,
		})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "different players")
}

// TestRecordMatch_RequiresCompleteProfile - неполный профиль не
// пропускается гейтом маршрута
func TestRecordMatch_RequiresCompleteProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.RegisterPlayer(t, ts, helpers.UniqueEmail("incomplete_reporter"), helpers.UniquePhone())
	_, opponent := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/matches", token,
		map[string]interface{}{
			"winnerId": opponent.ID,
			"loserId":  opponent.ID,
		})

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "complete your profile")
}
