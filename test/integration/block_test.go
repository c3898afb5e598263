package integration_test

import (
	"net/http"
	"testing"

	"tennis_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBlock_HidesProfileBothWays - блокировка симметрично скрывает профили
func TestBlock_HidesProfileBothWays(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	blockerToken, blocker := helpers.CreateAndLoginPlayer(t, ts, nil)
	blockedToken, blocked := helpers.CreateAndLoginPlayer(t, ts, nil)

	// До блокировки профили видны друг другу
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/users/"+blocked.ID, blockerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/users/"+blocked.ID+"/block", blockerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Блокирующий не видит заблокированного
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/users/"+blocked.ID, blockerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "User not found")

	// И наоборот, заблокированный не видит блокирующего
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/"+blocker.ID, blockedToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestBlock_ExcludesFromSearchBothWays
func TestBlock_ExcludesFromSearchBothWays(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	blockerToken, blocker := helpers.CreateAndLoginPlayer(t, ts, nil)
	blockedToken, blocked := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/users/"+blocked.ID+"/block", blockerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	fromBlocker := doSearch(t, ts, blockerToken, "?pageSize=50")
	assert.False(t, containsPlayer(fromBlocker, blocked.ID), "Заблокированный исключен из поиска")

	fromBlocked := doSearch(t, ts, blockedToken, "?pageSize=50")
	assert.False(t, containsPlayer(fromBlocked, blocker.ID), "Блокирующий исключен из поиска заблокированного")
}

// TestBlock_Unblock_RoundTrip - после снятия блокировки профиль снова виден
func TestBlock_Unblock_RoundTrip(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	blockerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, blocked := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/users/"+blocked.ID+"/block", blockerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/users/"+blocked.ID+"/block", blockerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/"+blocked.ID, blockerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "После разблокировки профиль снова доступен")
}

// TestBlock_Idempotent - повторная блокировка не ошибка
func TestBlock_Idempotent(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	blockerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, blocked := helpers.CreateAndLoginPlayer(t, ts, nil)

	for i := 0; i < 2; i++ {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/users/"+blocked.ID+"/block", blockerToken, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	// Снятие несуществующей блокировки тоже no-op
	res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/users/"+blocked.ID+"/block", blockerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/users/"+blocked.ID+"/block", blockerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// TestBlock_Self
func TestBlock_Self(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/users/"+user.ID+"/block", token, nil)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Cannot block yourself")
}

// TestBlock_ListBlocked
func TestBlock_ListBlocked(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	blockerToken, _ := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, first := helpers.CreateAndLoginPlayer(t, ts, nil)
	_, second := helpers.CreateAndLoginPlayer(t, ts, nil)

	for _, id := range []string{first.ID, second.ID} {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/users/"+id+"/block", blockerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/users/blocked", blockerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, first.ID)
	assert.Contains(t, bodyStr, second.ID)
}
