package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"tennis_backend/internal/models"
	"tennis_backend/internal/rating"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Счетчик засеян временем, чтобы повторные прогоны против одной БД не
// сталкивались по уникальным телефонам и email
var phoneCounter = time.Now().UnixNano() % 10000000

// UniquePhone выдает валидный азербайджанский мобильный, уникальный в
// рамках процесса тестов
func UniquePhone() string {
	n := atomic.AddInt64(&phoneCounter, 1)
	return fmt.Sprintf("+99450%07d", n%10000000)
}

func UniqueEmail(prefix string) string {
	n := atomic.AddInt64(&phoneCounter, 1)
	return fmt.Sprintf("%s_%d@test.az", prefix, n)
}

// CreateUser создает пользователя напрямую в БД, хешируя сырой пароль.
// По умолчанию аккаунт активный, подтвержденный и с полным профилем.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	if user.PasswordHash == "" {
		user.PasswordHash = "password123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	require.NoError(t, err, "Не удалось хешировать пароль")
	user.PasswordHash = string(hashed)

	if user.Email == "" {
		user.Email = UniqueEmail("player")
	}
	if user.Phone == "" {
		user.Phone = UniquePhone()
	}
	if user.FirstName == "" {
		user.FirstName = "Test"
	}
	if user.LastName == "" {
		user.LastName = "Player"
	}
	if user.NTRPInitial == 0 {
		user.NTRPInitial = 3.5
	}
	if user.EloRating == 0 {
		user.EloRating = rating.DefaultEloRating
	}
	if user.PlayingHand == "" {
		user.PlayingHand = models.HandRight
	}
	if user.AccountStatus == "" {
		user.AccountStatus = models.AccountStatusActive
	}
	if user.ProfileVisibility == "" {
		user.ProfileVisibility = models.VisibilityPublic
	}
	user.EmailVerified = true
	user.PhoneVerified = true
	user.ProfileComplete = user.IsProfileComplete()

	require.NoError(t, db.Create(user).Error, "Не удалось создать тестового пользователя")
}

// RegisterPlayer регистрирует игрока через API и возвращает access-токен
// вместе с телом ответа.
func RegisterPlayer(t *testing.T, ts *TestServer, email, phone string) (string, map[string]interface{}) {
	body := map[string]interface{}{
		"email":       email,
		"phone":       phone,
		"password":    "super_password123",
		"firstName":   "Aysel",
		"lastName":    "Mammadova",
		"ntrpInitial": 3.5,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Регистрация должна быть успешной. Ответ: "+bodyStr)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	token, _ := response["accessToken"].(string)
	require.NotEmpty(t, token, "Токен не должен быть пустым")

	return token, response
}

// LoginUser логинит пользователя через API с сырым паролем
func LoginUser(t *testing.T, ts *TestServer, emailOrPhone, password string) string {
	body := map[string]interface{}{
		"emailOrPhone": emailOrPhone,
		"password":     password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var response struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	require.NotEmpty(t, response.AccessToken)

	return response.AccessToken
}

// CreateAndLoginPlayer создает полного игрока в БД и логинит его через API
func CreateAndLoginPlayer(t *testing.T, ts *TestServer, user *models.User) (string, *models.User) {
	password := "password123"
	if user == nil {
		user = &models.User{}
	}
	user.PasswordHash = password
	CreateUser(t, ts.DB, user)

	token := LoginUser(t, ts, user.Email, password)
	return token, user
}
