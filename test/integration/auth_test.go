package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"tennis_backend/internal/models"
	"tennis_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthFlow - регистрация, затем логин по email и по телефону
func TestAuthFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("authflow")
	phone := helpers.UniquePhone()

	token, response := helpers.RegisterPlayer(t, ts, email, phone)
	assert.NotEmpty(t, token)

	user, ok := response["user"].(map[string]interface{})
	require.True(t, ok, "Ответ регистрации должен содержать user")
	assert.Equal(t, email, user["email"])
	assert.Equal(t, phone, user["phone"])

	// Логин по email
	emailToken := helpers.LoginUser(t, ts, email, "super_password123")
	assert.NotEmpty(t, emailToken)

	// Логин по телефону, тот же аккаунт
	phoneToken := helpers.LoginUser(t, ts, phone, "super_password123")
	assert.NotEmpty(t, phoneToken)
}

// TestRegister_PhoneNormalization - локальный формат 0XXYYYYYYY приводится
// к каноничному +994XXYYYYYYY
func TestRegister_PhoneNormalization(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	canonical := helpers.UniquePhone() // +99450XXXXXXX
	local := "0" + canonical[4:]       // 050XXXXXXX

	_, response := helpers.RegisterPlayer(t, ts, helpers.UniqueEmail("norm"), local)

	user := response["user"].(map[string]interface{})
	assert.Equal(t, canonical, user["phone"], "Телефон должен храниться в каноничной форме")
}

// TestRegister_DuplicateEmail - повторная регистрация на тот же email
func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("dup")
	helpers.RegisterPlayer(t, ts, email, helpers.UniquePhone())

	body := map[string]interface{}{
		"email":       email,
		"phone":       helpers.UniquePhone(),
		"password":    "super_password123",
		"firstName":   "Rashad",
		"lastName":    "Aliyev",
		"ntrpInitial": 4.0,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Email already registered")
}

// TestRegister_DuplicatePhone - тот же номер в разных формах записи
func TestRegister_DuplicatePhone(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	canonical := helpers.UniquePhone()
	helpers.RegisterPlayer(t, ts, helpers.UniqueEmail("dupphone"), canonical)

	body := map[string]interface{}{
		"email":       helpers.UniqueEmail("dupphone2"),
		"phone":       "0" + canonical[4:], // локальная форма того же номера
		"password":    "super_password123",
		"firstName":   "Nigar",
		"lastName":    "Huseynova",
		"ntrpInitial": 2.5,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Phone number already registered")
}

// TestRegister_DuplicateEmailSuspended - email занят и приостановленным
// аккаунтом: уникальность действует среди всех не-удаленных
func TestRegister_DuplicateEmailSuspended(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("suspdup")
	helpers.RegisterPlayer(t, ts, email, helpers.UniquePhone())
	require.NoError(t, ts.DB.Model(&models.User{}).Where("email = ?", email).
		Update("account_status", models.AccountStatusSuspended).Error)

	body := map[string]interface{}{
		"email":       email,
		"phone":       helpers.UniquePhone(),
		"password":    "super_password123",
		"firstName":   "Kamran",
		"lastName":    "Ismayilov",
		"ntrpInitial": 3.0,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Email already registered")
}

// TestRegister_InvalidPhone - не азербайджанский мобильный отклоняется
func TestRegister_InvalidPhone(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	body := map[string]interface{}{
		"email":       helpers.UniqueEmail("badphone"),
		"phone":       "+79161234567",
		"password":    "super_password123",
		"firstName":   "Test",
		"lastName":    "Player",
		"ntrpInitial": 3.0,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid phone number format")
}

// TestRegister_NTRPOutOfRange
func TestRegister_NTRPOutOfRange(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	body := map[string]interface{}{
		"email":       helpers.UniqueEmail("badntrp"),
		"phone":       helpers.UniquePhone(),
		"password":    "super_password123",
		"firstName":   "Test",
		"lastName":    "Player",
		"ntrpInitial": 8.5,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "NTRP rating must be between 1.0 and 7.0")
}

// TestLogin_WrongPassword - единый ответ для неверного пароля
func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("wrongpass")
	helpers.RegisterPlayer(t, ts, email, helpers.UniquePhone())

	body := map[string]interface{}{
		"emailOrPhone": email,
		"password":     "not_the_password",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid credentials")
}

// TestLogin_UnknownAccount - тот же ответ, что и при неверном пароле
func TestLogin_UnknownAccount(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	body := map[string]interface{}{
		"emailOrPhone": helpers.UniqueEmail("ghost"),
		"password":     "whatever123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid credentials")
}

// TestRefreshToken_Rotation - старый refresh-токен умирает после обмена
func TestRefreshToken_Rotation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, response := helpers.RegisterPlayer(t, ts, helpers.UniqueEmail("refresh"), helpers.UniquePhone())
	oldRefresh := response["refreshToken"].(string)

	body := map[string]interface{}{"refreshToken": oldRefresh}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", body)
	require.Equal(t, http.StatusOK, res.StatusCode, "Обмен должен пройти. Ответ: "+bodyStr)

	var refreshed struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, oldRefresh, refreshed.RefreshToken)

	// Повторный обмен старым токеном отклоняется
	res2, bodyStr2 := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", body)
	assert.Equal(t, http.StatusUnauthorized, res2.StatusCode)
	assert.Contains(t, bodyStr2, "Invalid or expired token")
}

// TestMe - собственный профиль содержит приватные поля
func TestMe(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("me")
	token, _ := helpers.RegisterPlayer(t, ts, email, helpers.UniquePhone())

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", token, nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, email)
	assert.Contains(t, bodyStr, "profileComplete")
	assert.NotContains(t, bodyStr, "passwordHash")
}

// TestLogout - после логаута refresh-токен недействителен, а last_active
// отмечает момент выхода
func TestLogout(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("logout")
	token, response := helpers.RegisterPlayer(t, ts, email, helpers.UniquePhone())
	refresh := response["refreshToken"].(string)

	// Отодвигаем last_active в прошлое, чтобы увидеть обновление
	past := time.Now().Add(-time.Hour)
	require.NoError(t, ts.DB.Model(&models.User{}).Where("email = ?", email).
		Update("last_active", past).Error)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", token,
		map[string]interface{}{"refreshToken": refresh})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var stored models.User
	require.NoError(t, ts.DB.First(&stored, "email = ?", email).Error)
	assert.True(t, stored.LastActive.After(past.Add(time.Minute)),
		"Логаут должен обновлять last_active")

	res2, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]interface{}{"refreshToken": refresh})
	assert.Equal(t, http.StatusUnauthorized, res2.StatusCode)
}

// TestProtectedRoute_NoToken
func TestProtectedRoute_NoToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestHealth
func TestHealth(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "ok")
	t.Logf("HEALTH: %s", bodyStr)
}
