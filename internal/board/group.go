package board

// GroupByMatch particiona o snapshot por matchId.
// Os grupos saem na ordem da primeira ocorrência do matchId e cada grupo mantém
// a ordem relativa de entrada dos seus membros. Registros inválidos ou com id
// repetido ficam fora e são listados no Report.
func GroupByMatch(records []BetRecord) ([]Group, Report) {
	valid, rep := ValidateBets(records)

	index := make(map[string]int, len(valid))
	groups := make([]Group, 0, len(valid))

	for _, rec := range valid {
		i, ok := index[rec.MatchID]
		if !ok {
			index[rec.MatchID] = len(groups)
			groups = append(groups, Group{
				MatchID: rec.MatchID,
				Match:   rec.Match,
				Members: []*BetRecord{rec},
			})
			continue
		}

		g := &groups[i]
		if !g.Match.Equal(rec.Match) {
			rep.Conflicts = append(rep.Conflicts, MatchConflict{MatchID: rec.MatchID, BetID: rec.ID})
		}
		g.Members = append(g.Members, rec)
	}
	return groups, rep
}
