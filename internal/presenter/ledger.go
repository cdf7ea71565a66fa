package presenter

import "github.com/radieske/bet-board/internal/board"

// LedgerRow é uma linha do ledger de resultados, já formatada.
type LedgerRow struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	League     string        `json:"league"`
	Matchup    string        `json:"matchup"`
	BetOn      string        `json:"betOn"`
	LockedOdds string        `json:"lockedOdds"`
	Stake      string        `json:"stake"`
	Result     board.Outcome `json:"result"`
	ResultTone Tone          `json:"resultTone"`
	ProfitLoss string        `json:"profitLoss"`
	Tone       Tone          `json:"tone"`
}

// LedgerRows repassa os resultados na ordem recebida, sem agrupar.
func LedgerRows(results []*board.Result) []LedgerRow {
	out := make([]LedgerRow, 0, len(results))
	for _, r := range results {
		date, clock := SplitDateTime(r.BetDateTime)
		out = append(out, LedgerRow{
			ID:         r.ID,
			Date:       date,
			Time:       clock,
			League:     r.League,
			Matchup:    r.Team1 + " vs " + r.Team2,
			BetOn:      r.BetOn,
			LockedOdds: Odds(r.LockedOdds),
			Stake:      Money(r.Stake),
			Result:     r.Result,
			ResultTone: outcomeTone(r.Result),
			ProfitLoss: ProfitLoss(r.ProfitLoss),
			Tone:       ToneOf(r.ProfitLoss),
		})
	}
	return out
}
