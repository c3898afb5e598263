package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"tennis_backend/internal/auth"
	"tennis_backend/internal/config"
	"tennis_backend/internal/email"
	"tennis_backend/internal/logger"
	"tennis_backend/internal/models"
	"tennis_backend/internal/phone"
	"tennis_backend/internal/rating"
	"tennis_backend/internal/repositories"
	"tennis_backend/internal/services/dto"
	"tennis_backend/internal/sms"
	"tennis_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	phoneCodeTTL    = 10 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(refreshToken string) (*dto.AuthResponse, error)
	Logout(userID, refreshToken string) error
	Me(userID string) (*dto.SelfView, error)

	VerifyPhone(userID, code string) error
	ResendPhoneCode(userID string) error
	VerifyEmail(token string) error
}

type AuthServiceImpl struct {
	users         repositories.UserRepository
	refreshTokens repositories.RefreshTokenRepository
	smsProvider   sms.Provider
	emailProvider email.Provider
	cfg           *config.Config
}

func NewAuthService(
	users repositories.UserRepository,
	refreshTokens repositories.RefreshTokenRepository,
	smsProvider sms.Provider,
	emailProvider email.Provider,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		users:         users,
		refreshTokens: refreshTokens,
		smsProvider:   smsProvider,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

// Register создает аккаунт. Телефон валидируется как азербайджанский
// мобильный и нормализуется до +994... еще до обращения к БД, поэтому
// уникальность телефона проверяется по каноничной форме.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !phone.IsValid(req.Phone) {
		return nil, apperrors.ErrInvalidPhone
	}
	normalizedPhone := phone.Normalize(req.Phone)

	if req.NTRPInitial < 1.0 || req.NTRPInitial > 7.0 {
		return nil, apperrors.ErrNTRPOutOfRange
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	preferredLanguage := req.PreferredLanguage
	if preferredLanguage == "" {
		preferredLanguage = "az"
	}
	gender := models.GenderUnspecified
	if req.Gender != "" {
		gender = models.Gender(req.Gender)
	}

	user := &models.User{
		Email:                  req.Email,
		Phone:                  normalizedPhone,
		PasswordHash:           passwordHash,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		BirthYear:              req.BirthYear,
		Gender:                 gender,
		NTRPInitial:            req.NTRPInitial,
		EloRating:              rating.DefaultEloRating,
		EloProvisional:         true,
		PreferredLanguage:      preferredLanguage,
		EmailVerificationToken: uuid.NewString(),
		AccountStatus:          models.AccountStatusActive,
		LastActive:             time.Now(),
	}

	// Когда подтверждение выключено конфигом (dev и ранний запуск),
	// аккаунт рождается подтвержденным и SMS/email не отправляются.
	if !s.cfg.Verification.Required {
		user.EmailVerified = true
		user.PhoneVerified = true
		user.EmailVerificationToken = ""
	}

	if err := s.users.Create(user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, apperrors.ErrEmailTaken
		case errors.Is(err, repositories.ErrPhoneTaken):
			return nil, apperrors.ErrPhoneTaken
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if s.cfg.Verification.Required {
		if err := s.issuePhoneCode(user); err != nil {
			// Аккаунт уже создан, код можно перезапросить позже
			logger.Error("Failed to send phone verification code", "user_id", user.ID, "error", err)
		}
		s.sendVerificationEmailAsync(user)
	} else if user.IsProfileComplete() {
		if err := s.users.SetProfileComplete(user.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.ProfileComplete = true
	}

	return s.issueTokens(user)
}

// Login принимает email либо телефон в одном поле. Ошибка одинаковая для
// несуществующего аккаунта и неверного пароля.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user *models.User
	var err error

	if phone.IsValid(req.EmailOrPhone) {
		user, err = s.users.FindByPhone(phone.Normalize(req.EmailOrPhone))
	} else {
		user, err = s.users.FindByEmail(req.EmailOrPhone)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastActive(user.ID); err != nil {
		logger.Warn("Failed to update last active", "user_id", user.ID, "error", err)
	}
	user.LastActive = time.Now()

	return s.issueTokens(user)
}

// RefreshToken ротирует refresh-токен: старый удаляется, выпускается пара
// новых. Украденный старый токен после ротации бесполезен.
func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.refreshTokens.FindByToken(refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokens.DeleteByToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(stored.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrAccountInactive
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.refreshTokens.DeleteByToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

// Logout отзывает refresh-токен (или все сессии, если токен не прислан)
// и отмечает момент выхода как последнюю активность.
func (s *AuthServiceImpl) Logout(userID, refreshToken string) error {
	if err := s.users.UpdateLastActive(userID); err != nil {
		logger.Warn("Failed to update last active", "user_id", userID, "error", err)
	}

	if refreshToken != "" {
		return s.refreshTokens.DeleteByToken(refreshToken)
	}
	return s.refreshTokens.DeleteByUserID(userID)
}

func (s *AuthServiceImpl) Me(userID string) (*dto.SelfView, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrAccountInactive
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSelfView(user), nil
}

// VerifyPhone сверяет SMS-код и помечает телефон подтвержденным
func (s *AuthServiceImpl) VerifyPhone(userID, code string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrAccountInactive
		}
		return apperrors.InternalError(err)
	}

	if user.PhoneVerified {
		return apperrors.ErrAlreadyVerified
	}
	if user.PhoneVerificationCode == "" || user.PhoneVerificationCode != code {
		return apperrors.ErrVerificationCodeInvalid
	}
	if user.PhoneVerificationExpires == nil || time.Now().After(*user.PhoneVerificationExpires) {
		return apperrors.ErrVerificationCodeInvalid
	}

	if err := s.users.MarkPhoneVerified(userID); err != nil {
		return apperrors.InternalError(err)
	}

	return s.reconcileProfileComplete(userID)
}

// ResendPhoneCode выпускает и отправляет новый код взамен предыдущего
func (s *AuthServiceImpl) ResendPhoneCode(userID string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrAccountInactive
		}
		return apperrors.InternalError(err)
	}

	if user.PhoneVerified {
		return apperrors.ErrAlreadyVerified
	}

	if err := s.issuePhoneCode(user); err != nil {
		return apperrors.ErrSMSDeliveryFailed
	}
	return nil
}

// VerifyEmail подтверждает email по одноразовому токену из письма
func (s *AuthServiceImpl) VerifyEmail(token string) error {
	user, err := s.users.FindByEmailVerificationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if err := s.users.MarkEmailVerified(user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	return s.reconcileProfileComplete(user.ID)
}

// reconcileProfileComplete перечитывает пользователя и поднимает флаг
// полноты, если предикат выполнился. Единственное место записи флага.
func (s *AuthServiceImpl) reconcileProfileComplete(userID string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !user.ProfileComplete && user.IsProfileComplete() {
		if err := s.users.SetProfileComplete(userID); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *AuthServiceImpl) issuePhoneCode(user *models.User) error {
	code, err := generateVerificationCode()
	if err != nil {
		return err
	}

	if err := s.users.SetPhoneVerificationCode(user.ID, code, time.Now().Add(phoneCodeTTL)); err != nil {
		return err
	}

	return s.smsProvider.SendVerificationCode(user.Phone, code)
}

func (s *AuthServiceImpl) sendVerificationEmailAsync(user *models.User) {
	go func(to, firstName, token string) {
		if err := s.emailProvider.SendVerificationEmail(to, firstName, token); err != nil {
			logger.Error("Failed to send verification email", "email", to, "error", err)
		}
	}(user.Email, user.FirstName, user.EmailVerificationToken)
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokens.Create(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         dto.NewSelfView(user),
	}, nil
}

// generateVerificationCode выдает криптослучайный 6-значный код
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
