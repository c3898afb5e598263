// Package phone - валидация и нормализация азербайджанских мобильных номеров.
// Каноническая форма: +994XXXXXXXXX.
package phone

import (
	"regexp"
	"strings"
)

const CountryPrefix = "994"

// azMobileRegex принимает номер с опциональным префиксом (+994 / 994 / 0)
// и кодом мобильного оператора.
var azMobileRegex = regexp.MustCompile(`^(\+994|994|0)?(50|51|55|70|77|99)\d{7}$`)

var nonDigitRegex = regexp.MustCompile(`\D`)

// IsValid проверяет, что номер соответствует формату мобильного номера
// Азербайджана. Пробелы игнорируются.
func IsValid(raw string) bool {
	return azMobileRegex.MatchString(strings.ReplaceAll(raw, " ", ""))
}

// Normalize приводит номер к канонической форме +994XXXXXXXXX.
// Идемпотентна: Normalize(Normalize(p)) == Normalize(p).
func Normalize(raw string) string {
	cleaned := nonDigitRegex.ReplaceAllString(raw, "")

	// Локальный номер без кода страны - 9 цифр; только более длинная
	// форма может уже нести префикс 994 (оператор 99 тоже начинается
	// с девяток, по одному префиксу не различить)
	if len(cleaned) == 9+len(CountryPrefix) && strings.HasPrefix(cleaned, CountryPrefix) {
		return "+" + cleaned
	}

	// Убираем транковый "0" перед кодом оператора
	cleaned = strings.TrimPrefix(cleaned, "0")
	return "+" + CountryPrefix + cleaned
}
