package validator

import (
	"log"

	"tennis_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации.
// Пустые значения пропускаются, их обрабатывает 'required'.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-gender", validateGender)
	mustRegister("is-playing-hand", validatePlayingHand)
	mustRegister("is-match-format", validateMatchFormat)
	mustRegister("is-availability", validateAvailability)
	mustRegister("is-visibility", validateVisibility)
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Gender(value) {
	case models.GenderMale, models.GenderFemale, models.GenderOther, models.GenderUnspecified:
		return true
	default:
		return false
	}
}

func validatePlayingHand(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PlayingHand(value) {
	case models.HandRight, models.HandLeft:
		return true
	default:
		return false
	}
}

func validateMatchFormat(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.MatchFormat(value) {
	case models.FormatSingles, models.FormatDoubles, models.FormatBoth:
		return true
	default:
		return false
	}
}

func validateAvailability(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AvailabilityStatus(value) {
	case models.AvailabilityAvailableNow, models.AvailabilityThisWeek, models.AvailabilityUnavailable:
		return true
	default:
		return false
	}
}

func validateVisibility(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ProfileVisibility(value) {
	case models.VisibilityPublic, models.VisibilityPrivate:
		return true
	default:
		return false
	}
}
