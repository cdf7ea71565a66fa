package board

import (
	"time"

	"github.com/shopspring/decimal"
)

var kickoff = time.Date(2025, 3, 14, 19, 30, 0, 0, time.UTC)

func match(team1, team2 string) Match {
	return Match{
		GameDateTime:    kickoff,
		League:          "LCK",
		Team1:           team1,
		Team2:           team2,
		Team1ModelOdds:  decimal.RequireFromString("1.72"),
		Team1BookieOdds: decimal.RequireFromString("1.80"),
		Team2ModelOdds:  decimal.RequireFromString("2.10"),
		Team2BookieOdds: decimal.RequireFromString("2.05"),
	}
}

func bet(id, matchID, stake string) BetRecord {
	return BetRecord{
		ID:         id,
		MatchID:    matchID,
		Match:      match("T1", "Gen.G"),
		BetOn:      "T1",
		LockedOdds: decimal.RequireFromString("1.80"),
		Stake:      decimal.RequireFromString(stake),
	}
}

func ids(members []*BetRecord) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}
