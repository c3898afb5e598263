package phone

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	valid := []string{
		"0501234567",
		"+994501234567",
		"994501234567",
		"501234567",
		"055 123 45 67",
		"0771234567",
		"0991234567",
	}
	for _, p := range valid {
		assert.True(t, IsValid(p), "должен быть валидным: %s", p)
	}

	invalid := []string{
		"",
		"12345",
		"0401234567",       // неизвестный код оператора
		"050123456",        // слишком короткий
		"05012345678",      // слишком длинный
		"+7 900 123 45 67", // не Азербайджан
		"not-a-phone",
	}
	for _, p := range invalid {
		assert.False(t, IsValid(p), "должен быть невалидным: %s", p)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"0501234567":      "+994501234567",
		"501234567":       "+994501234567",
		"994501234567":    "+994501234567",
		"+994501234567":   "+994501234567",
		"055 123 45 67":   "+994551234567",
		"(077) 123-45-67": "+994771234567",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	pattern := regexp.MustCompile(`^\+994\d+$`)
	for _, p := range []string{"0501234567", "0991112233", "+994551234567"} {
		once := Normalize(p)
		assert.Equal(t, once, Normalize(once))
		assert.Regexp(t, pattern, once)
	}
}
