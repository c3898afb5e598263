package dto

import "time"

// RecordMatchRequest - результат матча для пересчета рейтингов
type RecordMatchRequest struct {
	WinnerID string `json:"winnerId" validate:"required,uuid"`
	LoserID  string `json:"loserId" validate:"required,uuid"`
	Score    string `json:"score" validate:"omitempty,max=64"`
}

// MatchHistoryItem - строка истории матчей игрока
type MatchHistoryItem struct {
	MatchID        string    `json:"matchId"`
	WinnerID       string    `json:"winnerId"`
	LoserID        string    `json:"loserId"`
	Score          string    `json:"score,omitempty"`
	WinnerEloDelta int       `json:"winnerEloDelta"`
	LoserEloDelta  int       `json:"loserEloDelta"`
	PlayedAt       time.Time `json:"playedAt"`
}

type MatchResultResponse struct {
	MatchID        string `json:"matchId"`
	WinnerID       string `json:"winnerId"`
	LoserID        string `json:"loserId"`
	Score          string `json:"score,omitempty"`
	WinnerEloDelta int    `json:"winnerEloDelta"`
	LoserEloDelta  int    `json:"loserEloDelta"`
	WinnerElo      int    `json:"winnerElo"`
	LoserElo       int    `json:"loserElo"`
}
