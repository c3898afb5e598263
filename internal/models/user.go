package models

import "time"

type User struct {
	BaseModel

	// Идентичность. Email и телефон уникальны среди не-удаленных аккаунтов
	// (partial unique index, см. database/migrate.go).
	Email        string `gorm:"not null;index" json:"email"`
	Phone        string `gorm:"not null;index" json:"phone"`
	PasswordHash string `gorm:"not null" json:"-"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	BirthYear int    `json:"birthYear,omitempty"`
	Gender    Gender `gorm:"type:varchar(20);default:'unspecified'" json:"gender"`

	// Две шкалы уровня: самооценка NTRP (1.0-7.0, задается при регистрации)
	// и серверный Elo-рейтинг. Elo никогда не перезаписывает NTRPInitial.
	NTRPInitial        float64 `gorm:"not null" json:"ntrpInitial"`
	EloRating          int     `gorm:"not null" json:"eloRating"`
	EloProvisional     bool    `gorm:"default:true" json:"eloProvisional"`
	MatchesPlayedForElo int    `gorm:"default:0" json:"matchesPlayedForElo"`

	EmailVerified bool `gorm:"default:false" json:"emailVerified"`
	PhoneVerified bool `gorm:"default:false" json:"phoneVerified"`

	EmailVerificationToken   string     `json:"-"`
	PhoneVerificationCode    string     `json:"-"`
	PhoneVerificationExpires *time.Time `json:"-"`

	ProfilePhotoURL   string      `json:"profilePhotoUrl,omitempty"`
	Bio               string      `gorm:"type:text" json:"bio,omitempty"`
	PlayingHand       PlayingHand `gorm:"type:varchar(10)" json:"playingHand,omitempty"`
	YearsPlaying      int         `json:"yearsPlaying,omitempty"`
	PreferredFormat   MatchFormat `gorm:"type:varchar(10);default:'both'" json:"preferredFormat"`
	PreferredSurface  string      `json:"preferredSurface,omitempty"`
	PlayerType        string      `json:"playerType,omitempty"`
	FavoriteProPlayer string      `json:"favoriteProPlayer,omitempty"`
	PreferredLanguage string      `gorm:"default:'az'" json:"preferredLanguage"`

	AvailabilityStatus AvailabilityStatus `gorm:"type:varchar(20);default:'unavailable'" json:"availabilityStatus"`
	WeeklyAvailability string             `gorm:"type:text" json:"weeklyAvailability,omitempty"`
	PreferredTimes     string             `json:"preferredTimes,omitempty"`

	ProfileVisibility ProfileVisibility `gorm:"type:varchar(10);default:'public'" json:"profileVisibility"`
	HidePhone         bool              `gorm:"default:false" json:"hidePhone"`
	HideLastName      bool              `gorm:"default:false" json:"hideLastName"`

	TotalMatches      int     `gorm:"default:0" json:"totalMatches"`
	Wins              int     `gorm:"default:0" json:"wins"`
	Losses            int     `gorm:"default:0" json:"losses"`
	CurrentStreak     int     `gorm:"default:0" json:"currentStreak"`
	ReliabilityRating float64 `gorm:"default:100" json:"reliabilityRating"`

	AccountStatus   AccountStatus `gorm:"type:varchar(20);default:'active';index" json:"accountStatus"`
	ProfileComplete bool          `gorm:"default:false" json:"profileComplete"`

	LastActive time.Time `gorm:"default:now()" json:"lastActive"`
}

// IsProfileComplete - чистый предикат полноты профиля поверх уже загруженной
// записи. Флаг ProfileComplete в БД поднимает только сервисный слой после
// обновления профиля или подтверждения контактов, клиент его выставить не может.
func (u *User) IsProfileComplete() bool {
	return u.FirstName != "" &&
		u.LastName != "" &&
		u.PhoneVerified &&
		u.EmailVerified &&
		u.NTRPInitial > 0 &&
		u.PlayingHand != ""
}

// BlockedUser - направленное ребро blocker -> blocked, уникальное на пару.
// Эффект симметричный: скрывает обоих друг от друга независимо от направления.
type BlockedUser struct {
	BaseModel
	BlockerID string `gorm:"type:uuid;not null;uniqueIndex:idx_blocker_blocked" json:"blockerId"`
	BlockedID string `gorm:"type:uuid;not null;uniqueIndex:idx_blocker_blocked" json:"blockedId"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
}

// MatchResult - сыгранный матч двух игроков; хранит дельты Elo для истории.
type MatchResult struct {
	BaseModel
	WinnerID       string `gorm:"type:uuid;not null;index" json:"winnerId"`
	LoserID        string `gorm:"type:uuid;not null;index" json:"loserId"`
	Score          string `json:"score,omitempty"`
	WinnerEloDelta int    `json:"winnerEloDelta"`
	LoserEloDelta  int    `json:"loserEloDelta"`
}
