package entity

import "time"

// HistoryLimit caps the per-user recent-game log; older records are
// evicted newest-first-kept.
const HistoryLimit = 10

type GameRecord struct {
	Date   time.Time `json:"date"`
	Result Result    `json:"result"`
}

// UserStats holds the aggregate counters and bounded history for one
// user. TotalGames always equals Wins+Losses+Draws.
type UserStats struct {
	Wins       int          `json:"wins"`
	Losses     int          `json:"losses"`
	Draws      int          `json:"draws"`
	TotalGames int          `json:"total_games"`
	History    []GameRecord `json:"history"`
}

// Record - applies one finished game: bumps the matching counter and
// prepends a history record, truncating to HistoryLimit.
func (that *UserStats) Record(result Result, now time.Time) {
	that.TotalGames++

	switch result {
	case ResultWin:
		that.Wins++
	case ResultLoss:
		that.Losses++
	case ResultDraw:
		that.Draws++
	}

	that.History = append([]GameRecord{{Date: now, Result: result}}, that.History...)
	if len(that.History) > HistoryLimit {
		that.History = that.History[:HistoryLimit]
	}
}

// WinRate - wins as a percentage of all games, 0 for a fresh user.
func (that *UserStats) WinRate() float64 {
	if that.TotalGames == 0 {
		return 0
	}

	return float64(that.Wins) / float64(that.TotalGames) * 100
}

// Clone - a defensive copy handed to callers so the store's own record
// cannot be mutated from outside.
func (that *UserStats) Clone() *UserStats {
	snapshot := *that
	snapshot.History = append([]GameRecord(nil), that.History...)

	return &snapshot
}
