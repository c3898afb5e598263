// Package rating - рейтинговый движок: серверный Elo-рейтинг и его
// конвертация в шкалу NTRP для отображения.
package rating

import "math"

const (
	// DefaultEloRating - стартовый рейтинг нового игрока.
	DefaultEloRating = 1200

	// ProvisionalMatchThreshold - количество рейтинговых матчей, после
	// которого рейтинг перестает считаться предварительным.
	ProvisionalMatchThreshold = 10
)

// Шкала K: чем больше сыграно рейтинговых матчей, тем медленнее двигается
// рейтинг. Пока рейтинг предварительный - двигаем агрессивно.
const (
	kProvisional  = 40
	kEstablishing = 32
	kStable       = 24

	establishedMatches = 30
)

// ntrpBreakpoints - монотонная кусочно-линейная шкала Elo -> NTRP.
// Значения между опорными точками интерполируются линейно.
var ntrpBreakpoints = []struct {
	Elo  int
	NTRP float64
}{
	{800, 1.0},
	{1000, 2.0},
	{1150, 2.5},
	{1300, 3.0},
	{1450, 3.5},
	{1600, 4.0},
	{1750, 4.5},
	{1900, 5.0},
	{2050, 5.5},
	{2200, 6.0},
	{2400, 7.0},
}

// EloToNTRP конвертирует Elo-рейтинг в эквивалент шкалы NTRP (1.0-7.0).
// Используется только для отображения и никогда не перезаписывает
// самооценку игрока.
func EloToNTRP(elo int) float64 {
	if elo <= ntrpBreakpoints[0].Elo {
		return ntrpBreakpoints[0].NTRP
	}
	last := ntrpBreakpoints[len(ntrpBreakpoints)-1]
	if elo >= last.Elo {
		return last.NTRP
	}

	for i := 1; i < len(ntrpBreakpoints); i++ {
		hi := ntrpBreakpoints[i]
		if elo > hi.Elo {
			continue
		}
		lo := ntrpBreakpoints[i-1]
		frac := float64(elo-lo.Elo) / float64(hi.Elo-lo.Elo)
		ntrp := lo.NTRP + frac*(hi.NTRP-lo.NTRP)
		// Округляем до одного знака, как шкала NTRP
		return math.Round(ntrp*10) / 10
	}
	return last.NTRP
}

// IsProvisional сообщает, считается ли рейтинг предварительным при данном
// количестве сыгранных рейтинговых матчей.
func IsProvisional(ratedMatches int) bool {
	return ratedMatches < ProvisionalMatchThreshold
}

// KFactor возвращает коэффициент K для игрока с данным числом рейтинговых
// матчей.
func KFactor(ratedMatches int) int {
	switch {
	case ratedMatches < ProvisionalMatchThreshold:
		return kProvisional
	case ratedMatches < establishedMatches:
		return kEstablishing
	default:
		return kStable
	}
}

// ExpectedScore - стандартное Elo-ожидание победы игрока A над игроком B.
func ExpectedScore(ratingA, ratingB int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(ratingB-ratingA)/400.0))
}

// MatchDeltas считает изменения рейтинга победителя и проигравшего.
// K берется индивидуально по числу сыгранных матчей каждого игрока.
func MatchDeltas(winnerElo, loserElo, winnerMatches, loserMatches int) (winnerDelta, loserDelta int) {
	expectedWinner := ExpectedScore(winnerElo, loserElo)
	expectedLoser := ExpectedScore(loserElo, winnerElo)

	winnerDelta = int(math.Round(float64(KFactor(winnerMatches)) * (1.0 - expectedWinner)))
	loserDelta = int(math.Round(float64(KFactor(loserMatches)) * (0.0 - expectedLoser)))
	return winnerDelta, loserDelta
}

// NextStreak - следующая серия после результата матча: положительная серия
// побед растет, отрицательная серия поражений растет, при смене знака
// серия начинается заново с +1/-1.
func NextStreak(current int, won bool) int {
	if won {
		if current > 0 {
			return current + 1
		}
		return 1
	}
	if current < 0 {
		return current - 1
	}
	return -1
}

// WinPercentage - процент побед с округлением до одного знака; 0 при
// отсутствии матчей.
func WinPercentage(wins, totalMatches int) float64 {
	if totalMatches == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(totalMatches)*1000) / 10
}
