package repositories

import (
	"errors"
	"strings"
	"time"

	"tennis_backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrPhoneTaken   = errors.New("phone already registered")
	ErrNoFields     = errors.New("no valid fields to update")
)

// profileAllowedFields - allow-list колонок, которые клиент может менять
// через обновление профиля. Идентичность, пароль и рейтинговая статистика
// сюда не входят принципиально; неизвестные ключи молча игнорируются.
var profileAllowedFields = map[string]bool{
	"first_name":          true,
	"last_name":           true,
	"birth_year":          true,
	"gender":              true,
	"profile_photo_url":   true,
	"bio":                 true,
	"playing_hand":        true,
	"years_playing":       true,
	"preferred_format":    true,
	"preferred_surface":   true,
	"player_type":         true,
	"favorite_pro_player": true,
	"ntrp_initial":        true,
	"weekly_availability": true,
	"preferred_times":     true,
	"availability_status": true,
	"profile_visibility":  true,
	"hide_phone":          true,
	"hide_last_name":      true,
	"preferred_language":  true,
}

// PlayerSearchCriteria - типизированные фильтры поиска игроков.
// Складываются в один параметризованный запрос цепочкой Where,
// без ручной сборки SQL-строк.
type PlayerSearchCriteria struct {
	ViewerID        string
	MinRating       *int
	MaxRating       *int
	PreferredFormat models.MatchFormat
	Gender          models.Gender
	AvailableNow    bool
	Page            int
	PageSize        int
}

// MatchOutcome - итог матча для одного игрока, применяется одним UPDATE.
type MatchOutcome struct {
	EloRating           int
	MatchesPlayedForElo int
	EloProvisional      bool
	Won                 bool
	CurrentStreak       int
}

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)

	UpdateProfileFields(userID string, fields map[string]interface{}) (*models.User, error)
	UpdateStatus(userID string, status models.AccountStatus) error
	UpdateLastActive(userID string) error

	SetPhoneVerificationCode(userID, code string, expires time.Time) error
	MarkPhoneVerified(userID string) error
	MarkEmailVerified(userID string) error
	FindByEmailVerificationToken(token string) (*models.User, error)
	SetProfileComplete(userID string) error

	ApplyMatchOutcome(tx *gorm.DB, userID string, outcome MatchOutcome) error
	CleanExpiredVerificationCodes() (int64, error)

	SearchPlayers(criteria PlayerSearchCriteria) ([]models.User, int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create создает пользователя, предварительно проверяя уникальность email и
// телефона среди не-удаленных аккаунтов (та же область действия, что у
// partial unique индексов). Email хранится в нижнем регистре.
func (r *UserRepositoryImpl) Create(user *models.User) error {
	user.Email = strings.ToLower(user.Email)

	var existing models.User
	err := r.db.Where("email = ? AND account_status != ?", user.Email, models.AccountStatusDeleted).
		First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	err = r.db.Where("phone = ? AND account_status != ?", user.Phone, models.AccountStatusDeleted).
		First(&existing).Error
	if err == nil {
		return ErrPhoneTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return translateUniqueViolation(r.db.Create(user).Error)
}

// translateUniqueViolation превращает нарушение partial unique индекса в
// доменную ошибку: гонка двух одновременных регистраций проскакивает
// предварительную проверку и ловится уже индексом.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	// 23505 - unique_violation
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "idx_users_email_active":
			return ErrEmailTaken
		case "idx_users_phone_active":
			return ErrPhoneTaken
		}
	}
	return err
}

// FindByID возвращает только активный аккаунт
func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ? AND account_status = ?", id, models.AccountStatusActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ? AND account_status = ?",
		strings.ToLower(email), models.AccountStatusActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "phone = ? AND account_status = ?",
		phone, models.AccountStatusActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfileFields применяет частичное обновление профиля.
// Ключи вне allow-list отбрасываются; если после фильтрации не осталось
// ни одного поля - ErrNoFields.
func (r *UserRepositoryImpl) UpdateProfileFields(userID string, fields map[string]interface{}) (*models.User, error) {
	updates := make(map[string]interface{})
	for key, value := range fields {
		if profileAllowedFields[key] {
			updates[key] = value
		}
	}

	if len(updates) == 0 {
		return nil, ErrNoFields
	}
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.User{}).
		Where("id = ? AND account_status = ?", userID, models.AccountStatusActive).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return r.FindByID(userID)
}

func (r *UserRepositoryImpl) UpdateStatus(userID string, status models.AccountStatus) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"account_status": status,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateLastActive(userID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_active", time.Now()).Error
}

func (r *UserRepositoryImpl) SetPhoneVerificationCode(userID, code string, expires time.Time) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"phone_verification_code":    code,
		"phone_verification_expires": expires,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// MarkPhoneVerified выставляет флаг и чистит код
func (r *UserRepositoryImpl) MarkPhoneVerified(userID string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"phone_verified":             true,
		"phone_verification_code":    "",
		"phone_verification_expires": nil,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) MarkEmailVerified(userID string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email_verified":           true,
		"email_verification_token": "",
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByEmailVerificationToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email_verification_token = ? AND email_verification_token != ''", token).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetProfileComplete - переход только false -> true; обратного
// автоматического перехода нет.
func (r *UserRepositoryImpl) SetProfileComplete(userID string) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND profile_complete = ?", userID, false).
		Update("profile_complete", true).Error
}

// ApplyMatchOutcome применяет итог матча одному игроку одним UPDATE
// внутри переданной транзакции.
func (r *UserRepositoryImpl) ApplyMatchOutcome(tx *gorm.DB, userID string, outcome MatchOutcome) error {
	updates := map[string]interface{}{
		"elo_rating":             outcome.EloRating,
		"matches_played_for_elo": outcome.MatchesPlayedForElo,
		"elo_provisional":        outcome.EloProvisional,
		"total_matches":          gorm.Expr("total_matches + 1"),
		"current_streak":         outcome.CurrentStreak,
		"updated_at":             time.Now(),
	}
	if outcome.Won {
		updates["wins"] = gorm.Expr("wins + 1")
	} else {
		updates["losses"] = gorm.Expr("losses + 1")
	}

	result := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CleanExpiredVerificationCodes чистит протухшие SMS-коды (фоновый воркер)
func (r *UserRepositoryImpl) CleanExpiredVerificationCodes() (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("phone_verification_code != '' AND phone_verification_expires < ?", time.Now()).
		Updates(map[string]interface{}{
			"phone_verification_code":    "",
			"phone_verification_expires": nil,
		})
	return result.RowsAffected, result.Error
}

// SearchPlayers выполняет приватный поиск игроков: исключает самого
// зрителя, заблокированных в обе стороны, неактивные, непубличные и
// незаполненные профили. Count считается по тому же предикату до
// limit/offset, поэтому пагинация детерминированная.
func (r *UserRepositoryImpl) SearchPlayers(criteria PlayerSearchCriteria) ([]models.User, int64, error) {
	blockedByViewer := r.db.Model(&models.BlockedUser{}).
		Select("blocked_id").Where("blocker_id = ?", criteria.ViewerID)
	blockedViewer := r.db.Model(&models.BlockedUser{}).
		Select("blocker_id").Where("blocked_id = ?", criteria.ViewerID)

	query := r.db.Model(&models.User{}).
		Where("account_status = ?", models.AccountStatusActive).
		Where("profile_complete = ?", true).
		Where("profile_visibility = ?", models.VisibilityPublic).
		Where("id != ?", criteria.ViewerID).
		Where("id NOT IN (?)", blockedByViewer).
		Where("id NOT IN (?)", blockedViewer)

	if criteria.MinRating != nil {
		query = query.Where("elo_rating >= ?", *criteria.MinRating)
	}
	if criteria.MaxRating != nil {
		query = query.Where("elo_rating <= ?", *criteria.MaxRating)
	}
	if criteria.PreferredFormat != "" {
		query = query.Where("(preferred_format = ? OR preferred_format = ?)",
			criteria.PreferredFormat, models.FormatBoth)
	}
	if criteria.Gender != "" {
		query = query.Where("gender = ?", criteria.Gender)
	}
	if criteria.AvailableNow {
		query = query.Where("availability_status = ?", models.AvailabilityAvailableNow)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var users []models.User
	// id как вторичный ключ сортировки держит пагинацию стабильной при
	// равных рейтингах
	err := query.Order("elo_rating DESC, id ASC").
		Limit(limit).Offset(offset).Find(&users).Error

	return users, total, err
}
