package dto

import (
	"time"

	"tennis_backend/internal/models"
	"tennis_backend/internal/rating"
)

// SelfView - полное представление собственного профиля (GET /auth/me).
// Хеш пароля и верификационные секреты не покидают модель.
type SelfView struct {
	ID                  string                    `json:"id"`
	Email               string                    `json:"email"`
	Phone               string                    `json:"phone"`
	FirstName           string                    `json:"firstName"`
	LastName            string                    `json:"lastName"`
	BirthYear           int                       `json:"birthYear,omitempty"`
	Gender              models.Gender             `json:"gender"`
	ProfilePhotoURL     string                    `json:"profilePhotoUrl,omitempty"`
	Bio                 string                    `json:"bio,omitempty"`
	NTRPInitial         float64                   `json:"ntrpInitial"`
	EloRating           int                       `json:"eloRating"`
	EloProvisional      bool                      `json:"eloProvisional"`
	MatchesPlayedForElo int                       `json:"matchesPlayedForElo"`
	PlayingHand         models.PlayingHand        `json:"playingHand,omitempty"`
	YearsPlaying        int                       `json:"yearsPlaying,omitempty"`
	PreferredFormat     models.MatchFormat        `json:"preferredFormat"`
	PreferredSurface    string                    `json:"preferredSurface,omitempty"`
	PlayerType          string                    `json:"playerType,omitempty"`
	FavoriteProPlayer   string                    `json:"favoriteProPlayer,omitempty"`
	EmailVerified       bool                      `json:"emailVerified"`
	PhoneVerified       bool                      `json:"phoneVerified"`
	ProfileComplete     bool                      `json:"profileComplete"`
	AvailabilityStatus  models.AvailabilityStatus `json:"availabilityStatus"`
	WeeklyAvailability  string                    `json:"weeklyAvailability,omitempty"`
	PreferredTimes      string                    `json:"preferredTimes,omitempty"`
	ProfileVisibility   models.ProfileVisibility  `json:"profileVisibility"`
	HidePhone           bool                      `json:"hidePhone"`
	HideLastName        bool                      `json:"hideLastName"`
	Stats               PlayerStats               `json:"stats"`
	ReliabilityRating   float64                   `json:"reliabilityRating"`
	PreferredLanguage   string                    `json:"preferredLanguage"`
	CreatedAt           time.Time                 `json:"createdAt"`
	LastActive          time.Time                 `json:"lastActive"`
}

// ProfileView - приватность-аккуратная проекция чужого профиля.
type ProfileView struct {
	ID                string                    `json:"id"`
	FirstName         string                    `json:"firstName"`
	LastName          string                    `json:"lastName"`
	BirthYear         int                       `json:"birthYear,omitempty"`
	Gender            models.Gender             `json:"gender"`
	ProfilePhotoURL   string                    `json:"profilePhotoUrl,omitempty"`
	Bio               string                    `json:"bio,omitempty"`
	EloRating         int                       `json:"eloRating"`
	NTRPRating        float64                   `json:"ntrpRating"`
	EloProvisional    bool                      `json:"eloProvisional"`
	PlayingHand       models.PlayingHand        `json:"playingHand,omitempty"`
	YearsPlaying      int                       `json:"yearsPlaying,omitempty"`
	PreferredFormat   models.MatchFormat        `json:"preferredFormat"`
	PreferredSurface  string                    `json:"preferredSurface,omitempty"`
	FavoriteProPlayer string                    `json:"favoriteProPlayer,omitempty"`
	Stats             PlayerStats               `json:"stats"`
	ReliabilityRating float64                   `json:"reliabilityRating"`
	AvailabilityStatus models.AvailabilityStatus `json:"availabilityStatus"`
	Phone             string                    `json:"phone,omitempty"`
	MemberSince       time.Time                 `json:"memberSince"`
}

// PlayerStats - агрегаты, производные считаются при проекции и не хранятся
type PlayerStats struct {
	TotalMatches  int     `json:"totalMatches"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
	CurrentStreak int     `json:"currentStreak"`
}

// PlayerSearchItem - строка результата поиска
type PlayerSearchItem struct {
	ID                 string                    `json:"id"`
	FirstName          string                    `json:"firstName"`
	LastName           string                    `json:"lastName"`
	ProfilePhotoURL    string                    `json:"profilePhotoUrl,omitempty"`
	EloRating          int                       `json:"eloRating"`
	NTRPRating         float64                   `json:"ntrpRating"`
	EloProvisional     bool                      `json:"eloProvisional"`
	PreferredFormat    models.MatchFormat        `json:"preferredFormat"`
	Stats              PlayerStats               `json:"stats"`
	ReliabilityRating  float64                   `json:"reliabilityRating"`
	AvailabilityStatus models.AvailabilityStatus `json:"availabilityStatus"`
}

// UpdateProfileRequest - allow-list изменяемых полей. Отсутствующие ключи
// не трогаются (указатели); неизвестные ключи JSON игнорируются биндингом.
type UpdateProfileRequest struct {
	FirstName          *string  `json:"firstName"`
	LastName           *string  `json:"lastName"`
	BirthYear          *int     `json:"birthYear" validate:"omitempty,min=1920,max=2020"`
	Gender             *string  `json:"gender" validate:"omitempty,is-gender"`
	ProfilePhotoURL    *string  `json:"profilePhotoUrl"`
	Bio                *string  `json:"bio"`
	PlayingHand        *string  `json:"playingHand" validate:"omitempty,is-playing-hand"`
	YearsPlaying       *int     `json:"yearsPlaying" validate:"omitempty,min=0,max=90"`
	PreferredFormat    *string  `json:"preferredFormat" validate:"omitempty,is-match-format"`
	PreferredSurface   *string  `json:"preferredSurface"`
	PlayerType         *string  `json:"playerType"`
	FavoriteProPlayer  *string  `json:"favoriteProPlayer"`
	NTRPInitial        *float64 `json:"ntrpInitial"`
	WeeklyAvailability *string  `json:"weeklyAvailability"`
	PreferredTimes     *string  `json:"preferredTimes"`
	AvailabilityStatus *string  `json:"availabilityStatus" validate:"omitempty,is-availability"`
	ProfileVisibility  *string  `json:"profileVisibility" validate:"omitempty,is-visibility"`
	HidePhone          *bool    `json:"hidePhone"`
	HideLastName       *bool    `json:"hideLastName"`
	PreferredLanguage  *string  `json:"preferredLanguage"`
}

// Fields разворачивает запрос в карту колонка -> значение для частичного
// UPDATE. Nil-указатели (ключ не прислан) пропускаются.
func (r *UpdateProfileRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})

	setStr := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	setInt := func(col string, v *int) {
		if v != nil {
			fields[col] = *v
		}
	}
	setBool := func(col string, v *bool) {
		if v != nil {
			fields[col] = *v
		}
	}

	setStr("first_name", r.FirstName)
	setStr("last_name", r.LastName)
	setInt("birth_year", r.BirthYear)
	setStr("gender", r.Gender)
	setStr("profile_photo_url", r.ProfilePhotoURL)
	setStr("bio", r.Bio)
	setStr("playing_hand", r.PlayingHand)
	setInt("years_playing", r.YearsPlaying)
	setStr("preferred_format", r.PreferredFormat)
	setStr("preferred_surface", r.PreferredSurface)
	setStr("player_type", r.PlayerType)
	setStr("favorite_pro_player", r.FavoriteProPlayer)
	if r.NTRPInitial != nil {
		fields["ntrp_initial"] = *r.NTRPInitial
	}
	setStr("weekly_availability", r.WeeklyAvailability)
	setStr("preferred_times", r.PreferredTimes)
	setStr("availability_status", r.AvailabilityStatus)
	setStr("profile_visibility", r.ProfileVisibility)
	setBool("hide_phone", r.HidePhone)
	setBool("hide_last_name", r.HideLastName)
	setStr("preferred_language", r.PreferredLanguage)

	return fields
}

// BlockedUserItem - элемент списка заблокированных
type BlockedUserItem struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
}

// NewSelfView строит полное представление собственного аккаунта
func NewSelfView(u *models.User) *SelfView {
	return &SelfView{
		ID:                  u.ID,
		Email:               u.Email,
		Phone:               u.Phone,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		BirthYear:           u.BirthYear,
		Gender:              u.Gender,
		ProfilePhotoURL:     u.ProfilePhotoURL,
		Bio:                 u.Bio,
		NTRPInitial:         u.NTRPInitial,
		EloRating:           u.EloRating,
		EloProvisional:      u.EloProvisional,
		MatchesPlayedForElo: u.MatchesPlayedForElo,
		PlayingHand:         u.PlayingHand,
		YearsPlaying:        u.YearsPlaying,
		PreferredFormat:     u.PreferredFormat,
		PreferredSurface:    u.PreferredSurface,
		PlayerType:          u.PlayerType,
		FavoriteProPlayer:   u.FavoriteProPlayer,
		EmailVerified:       u.EmailVerified,
		PhoneVerified:       u.PhoneVerified,
		ProfileComplete:     u.ProfileComplete,
		AvailabilityStatus:  u.AvailabilityStatus,
		WeeklyAvailability:  u.WeeklyAvailability,
		PreferredTimes:      u.PreferredTimes,
		ProfileVisibility:   u.ProfileVisibility,
		HidePhone:           u.HidePhone,
		HideLastName:        u.HideLastName,
		Stats:               NewPlayerStats(u),
		ReliabilityRating:   u.ReliabilityRating,
		PreferredLanguage:   u.PreferredLanguage,
		CreatedAt:           u.CreatedAt,
		LastActive:          u.LastActive,
	}
}

// NewPlayerStats считает производные агрегаты в момент проекции
func NewPlayerStats(u *models.User) PlayerStats {
	return PlayerStats{
		TotalMatches:  u.TotalMatches,
		Wins:          u.Wins,
		Losses:        u.Losses,
		WinPercentage: rating.WinPercentage(u.Wins, u.TotalMatches),
		CurrentStreak: u.CurrentStreak,
	}
}

// NewProfileView строит проекцию профиля для зрителя с редактированием
// полей на чтении: фамилия до инициала при HideLastName, телефон опущен
// при HidePhone. Для самого владельца ничего не скрывается. Запись в
// хранилище никогда не мутируется.
func NewProfileView(u *models.User, viewerID string) *ProfileView {
	isSelf := viewerID == u.ID

	lastName := u.LastName
	if u.HideLastName && !isSelf {
		lastName = RedactLastName(u.LastName)
	}

	phone := u.Phone
	if u.HidePhone && !isSelf {
		phone = ""
	}

	return &ProfileView{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           lastName,
		BirthYear:          u.BirthYear,
		Gender:             u.Gender,
		ProfilePhotoURL:    u.ProfilePhotoURL,
		Bio:                u.Bio,
		EloRating:          u.EloRating,
		NTRPRating:         rating.EloToNTRP(u.EloRating),
		EloProvisional:     u.EloProvisional,
		PlayingHand:        u.PlayingHand,
		YearsPlaying:       u.YearsPlaying,
		PreferredFormat:    u.PreferredFormat,
		PreferredSurface:   u.PreferredSurface,
		FavoriteProPlayer:  u.FavoriteProPlayer,
		Stats:              NewPlayerStats(u),
		ReliabilityRating:  u.ReliabilityRating,
		AvailabilityStatus: u.AvailabilityStatus,
		Phone:              phone,
		MemberSince:        u.CreatedAt,
	}
}

// NewPlayerSearchItem - проекция строки поиска (фамилия редактируется
// всегда по флагу, зритель заведомо не владелец)
func NewPlayerSearchItem(u *models.User) *PlayerSearchItem {
	lastName := u.LastName
	if u.HideLastName {
		lastName = RedactLastName(u.LastName)
	}

	return &PlayerSearchItem{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           lastName,
		ProfilePhotoURL:    u.ProfilePhotoURL,
		EloRating:          u.EloRating,
		NTRPRating:         rating.EloToNTRP(u.EloRating),
		EloProvisional:     u.EloProvisional,
		PreferredFormat:    u.PreferredFormat,
		Stats:              NewPlayerStats(u),
		ReliabilityRating:  u.ReliabilityRating,
		AvailabilityStatus: u.AvailabilityStatus,
	}
}

// RedactLastName сокращает фамилию до первого символа с точкой
func RedactLastName(lastName string) string {
	runes := []rune(lastName)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[0]) + "."
}
