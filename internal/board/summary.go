package board

import "github.com/shopspring/decimal"

// Summarize calcula o resumo de um grupo.
// TotalStake é a soma exata dos stakes. betOn/lockedOdds só aparecem quando há um único membro.
func Summarize(g Group) GroupSummary {
	total := decimal.Zero
	for _, m := range g.Members {
		total = total.Add(m.Stake)
	}

	s := GroupSummary{
		MatchID:     g.MatchID,
		Match:       g.Match,
		TotalStake:  total,
		MemberCount: len(g.Members),
	}
	if len(g.Members) == 1 {
		only := g.Members[0]
		s.Single = &SingleBet{BetID: only.ID, BetOn: only.BetOn, LockedOdds: only.LockedOdds}
	}
	return s
}
