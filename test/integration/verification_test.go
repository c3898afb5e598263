package integration_test

import (
	"net/http"
	"testing"
	"time"

	"tennis_backend/internal/models"
	"tennis_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setPendingPhoneCode переводит пользователя в состояние "ждет код"
func setPendingPhoneCode(t *testing.T, ts *helpers.TestServer, userID, code string) {
	expires := time.Now().Add(10 * time.Minute)
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"phone_verified":             false,
			"phone_verification_code":    code,
			"phone_verification_expires": expires,
			"profile_complete":           false,
		}).Error)
}

// TestVerifyPhone_Flow - неверный код отклоняется, верный подтверждает
// телефон и доводит профиль до полного
func TestVerifyPhone_Flow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginPlayer(t, ts, nil)
	setPendingPhoneCode(t, ts, user.ID, "123456")

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/verify-phone", token,
		map[string]interface{}{"code": "654321"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired verification code")

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/verify-phone", token,
		map[string]interface{}{"code": "123456"})
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var stored models.User
	require.NoError(t, ts.DB.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.PhoneVerified)
	assert.Empty(t, stored.PhoneVerificationCode, "Код очищается после подтверждения")
	assert.True(t, stored.ProfileComplete, "Профиль снова полный после подтверждения")
}

// TestVerifyPhone_ExpiredCode
func TestVerifyPhone_ExpiredCode(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginPlayer(t, ts, nil)
	setPendingPhoneCode(t, ts, user.ID, "123456")

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("phone_verification_expires", expired).Error)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/verify-phone", token,
		map[string]interface{}{"code": "123456"})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired verification code")
}

// TestVerifyPhone_AlreadyVerified
func TestVerifyPhone_AlreadyVerified(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/verify-phone", token,
		map[string]interface{}{"code": "123456"})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "already verified")
}

// TestResendPhoneCode_AlreadyVerified
func TestResendPhoneCode_AlreadyVerified(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginPlayer(t, ts, nil)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/resend-phone-code", token, nil)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "already verified")
}

// TestVerifyEmail_InvalidToken
func TestVerifyEmail_InvalidToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, bodyStr := ts.SendRequest(t, http.MethodGet,
		"/api/v1/auth/verify-email?token=not-a-real-token", "", nil)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired token")
}
