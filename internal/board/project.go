package board

// Project monta a sequência de linhas de exibição.
// Cada grupo gera uma linha de resumo (depth 0). Grupos com mais de um membro e
// expandidos são seguidos imediatamente pelas linhas dos membros (depth 1), na ordem
// armazenada no grupo. Grupos de um membro geram sempre uma única linha.
// exp nil equivale a tudo recolhido.
func Project(groups []Group, exp Expansion) []DisplayRow {
	rows := make([]DisplayRow, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		sum := Summarize(*g)
		multi := sum.MemberCount > 1
		open := multi && exp != nil && exp.IsExpanded(g.MatchID)

		rows = append(rows, DisplayRow{
			Kind:       RowGroupSummary,
			MatchID:    g.MatchID,
			Depth:      0,
			Expandable: multi,
			Expanded:   open,
			Summary:    &sum,
		})
		if !open {
			continue
		}
		for _, m := range g.Members {
			rows = append(rows, DisplayRow{
				Kind:    RowMember,
				MatchID: g.MatchID,
				Depth:   1,
				Record:  m,
			})
		}
	}
	return rows
}
