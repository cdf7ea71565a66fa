package board

import (
	"time"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

// FromEvent converte o snapshot recebido do produtor para o modelo do board.
func FromEvent(ev events.SnapshotReplaced, loadedAt time.Time) *Snapshot {
	snap := &Snapshot{
		Version:  ev.Version,
		Bets:     make([]BetRecord, 0, len(ev.Bets)),
		Results:  make([]Result, 0, len(ev.Results)),
		LoadedAt: loadedAt,
	}
	for _, b := range ev.Bets {
		snap.Bets = append(snap.Bets, BetRecord{
			ID:      b.ID,
			MatchID: b.MatchID,
			Match: Match{
				GameDateTime:    b.GameDateTime,
				League:          b.League,
				Team1:           b.Team1,
				Team2:           b.Team2,
				Team1ModelOdds:  b.Team1ModelOdds,
				Team1BookieOdds: b.Team1BookieOdds,
				Team2ModelOdds:  b.Team2ModelOdds,
				Team2BookieOdds: b.Team2BookieOdds,
			},
			BetOn:      b.BetOn,
			LockedOdds: b.LockedOdds,
			Stake:      b.Stake,
		})
	}
	for _, r := range ev.Results {
		snap.Results = append(snap.Results, Result{
			ID:          r.ID,
			BetDateTime: r.BetDateTime,
			League:      r.League,
			Team1:       r.Team1,
			Team2:       r.Team2,
			BetOn:       r.BetOn,
			LockedOdds:  r.LockedOdds,
			Stake:       r.Stake,
			Result:      Outcome(r.Result),
			ProfitLoss:  r.ProfitLoss,
		})
	}
	return snap
}
