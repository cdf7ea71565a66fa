package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bet é o formato de uma aposta registrada, como o produtor externo envia.
type Bet struct {
	ID              string          `json:"id"`
	MatchID         string          `json:"matchId"`
	GameDateTime    time.Time       `json:"gameDateTime"`
	League          string          `json:"league"`
	Team1           string          `json:"team1"`
	Team2           string          `json:"team2"`
	Team1ModelOdds  decimal.Decimal `json:"team1ModelOdds"`
	Team1BookieOdds decimal.Decimal `json:"team1BookieOdds"`
	Team2ModelOdds  decimal.Decimal `json:"team2ModelOdds"`
	Team2BookieOdds decimal.Decimal `json:"team2BookieOdds"`
	BetOn           string          `json:"betOn"`
	LockedOdds      decimal.Decimal `json:"lockedOdds"`
	Stake           decimal.Decimal `json:"stake"`
}

// Result é uma aposta já liquidada (ledger de resultados).
type Result struct {
	ID          string          `json:"id"`
	BetDateTime time.Time       `json:"betDateTime"`
	League      string          `json:"league"`
	Team1       string          `json:"team1"`
	Team2       string          `json:"team2"`
	BetOn       string          `json:"betOn"`
	LockedOdds  decimal.Decimal `json:"lockedOdds"`
	Stake       decimal.Decimal `json:"stake"`
	Result      string          `json:"result"` // "WON" | "LOST"
	ProfitLoss  decimal.Decimal `json:"profitLoss"`
}
