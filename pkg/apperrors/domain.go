package apperrors

import (
	"net/http"
)

/*
Предопределенные доменные ошибки платформы.
Клиентские сообщения осознанно не раскрывают лишнего:
 - InvalidCredentials одинакова для "нет такого юзера" и "неверный пароль";
 - NotFoundOrBlocked одинакова для "профиля нет" и "профиль заблокирован".
*/

// ErrInvalidCredentials - неверный email/телефон или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

// ErrInvalidToken - невалидный или просроченный токен (access, refresh, verify).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrAccountInactive - аккаунт приостановлен или удален.
var ErrAccountInactive = New(
	CodeAccountInactive,
	"auth",
	"Account is suspended or deleted",
	http.StatusUnauthorized,
)

// ErrPhoneNotVerified - операция требует подтвержденного телефона.
var ErrPhoneNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your phone number first",
	http.StatusForbidden,
)

// ErrProfileIncomplete - операция требует полного профиля.
var ErrProfileIncomplete = New(
	CodeForbidden,
	"profile",
	"Please complete your profile first",
	http.StatusForbidden,
)

// ErrNotFoundOrBlocked - профиль не найден ЛИБО заблокирован; ответ один,
// чтобы не раскрывать факт блокировки.
var ErrNotFoundOrBlocked = New(
	CodeNotFound,
	"profile",
	"User not found",
	http.StatusNotFound,
)

// ErrEmailTaken - email уже зарегистрирован среди активных аккаунтов.
var ErrEmailTaken = New(
	CodeDuplicateIdentity,
	"registration",
	"Email already registered",
	http.StatusBadRequest,
)

// ErrPhoneTaken - телефон уже зарегистрирован среди активных аккаунтов.
var ErrPhoneTaken = New(
	CodeDuplicateIdentity,
	"registration",
	"Phone number already registered",
	http.StatusBadRequest,
)

// ErrInvalidPhone - номер не похож на азербайджанский мобильный.
var ErrInvalidPhone = New(
	CodeValidationFailed,
	"validation",
	"Invalid phone number format for Azerbaijan",
	http.StatusBadRequest,
)

// ErrNTRPOutOfRange - самооценка уровня вне допустимой шкалы.
var ErrNTRPOutOfRange = New(
	CodeValidationFailed,
	"validation",
	"NTRP rating must be between 1.0 and 7.0",
	http.StatusBadRequest,
)

// ErrNoValidFields - после фильтрации allow-list не осталось полей для обновления.
var ErrNoValidFields = New(
	CodeNoValidFields,
	"profile",
	"No valid fields to update",
	http.StatusBadRequest,
)

// ErrCannotBlockSelf - попытка заблокировать самого себя.
var ErrCannotBlockSelf = New(
	CodeInvalidOperation,
	"block",
	"Cannot block yourself",
	http.StatusBadRequest,
)

// ErrAlreadyVerified - телефон уже подтвержден, повторный код не нужен.
var ErrAlreadyVerified = New(
	CodeInvalidOperation,
	"verification",
	"Phone number already verified",
	http.StatusBadRequest,
)

// ErrVerificationCodeInvalid - код не совпал или истек.
var ErrVerificationCodeInvalid = New(
	CodeValidationFailed,
	"verification",
	"Invalid or expired verification code",
	http.StatusBadRequest,
)

// ErrSMSDeliveryFailed - шлюз SMS недоступен; состояние в БД не откатывается.
var ErrSMSDeliveryFailed = New(
	CodeExternalServiceError,
	"sms",
	"Failed to send verification code",
	http.StatusInternalServerError,
)
