package dto

type RegisterRequest struct {
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone" validate:"required"`
	Password          string  `json:"password" validate:"required,min=8"`
	FirstName         string  `json:"firstName" validate:"required"`
	LastName          string  `json:"lastName" validate:"required"`
	BirthYear         int     `json:"birthYear" validate:"omitempty,min=1920,max=2020"`
	Gender            string  `json:"gender" validate:"omitempty,is-gender"`
	NTRPInitial       float64 `json:"ntrpInitial" validate:"required"`
	PreferredLanguage string  `json:"preferredLanguage"`
}

type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// AuthResponse - токены + приватное представление своего профиля
type AuthResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         *SelfView `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type VerifyPhoneRequest struct {
	Code string `json:"code" validate:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}
