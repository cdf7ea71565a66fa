package presenter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-board/internal/board"
)

// Scope define em quais linhas um campo aparece.
type Scope string

const (
	// ScopeSummary: só na linha de resumo do grupo.
	ScopeSummary Scope = "summary"
	// ScopeDetail: campos por aposta; resumo de grupo com um membro e linhas de membro.
	ScopeDetail Scope = "detail"
	// ScopeAll: todas as linhas.
	ScopeAll Scope = "all"
)

func (s Scope) includes(r board.DisplayRow) bool {
	switch s {
	case ScopeSummary:
		return r.Kind == board.RowGroupSummary && r.Summary != nil
	case ScopeDetail:
		if r.Kind == board.RowMember {
			return r.Record != nil
		}
		return r.Summary != nil && r.Summary.Single != nil
	case ScopeAll:
		return r.Summary != nil || r.Record != nil
	}
	return false
}

// Field descreve uma coluna da tabela agrupada.
type Field struct {
	Key    string `json:"key"`
	Header string `json:"header"`
	Scope  Scope  `json:"scope"`

	render func(board.DisplayRow) (Cell, bool)
}

// Cell é o valor já formatado de um campo em uma linha.
type Cell struct {
	Key       string `json:"key"`
	Present   bool   `json:"present"`
	Text      string `json:"text,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Badge     string `json:"badge,omitempty"`
}

// Fields é a lista fixa de colunas, na ordem de exibição.
var Fields = []Field{
	{Key: "toggle", Header: "", Scope: ScopeSummary, render: func(r board.DisplayRow) (Cell, bool) {
		if !r.Expandable {
			return Cell{}, false
		}
		if r.Expanded {
			return Cell{Text: "▼"}, true
		}
		return Cell{Text: "▶"}, true
	}},
	{Key: "gameDateTime", Header: "DATE & TIME", Scope: ScopeSummary, render: func(r board.DisplayRow) (Cell, bool) {
		date, clock := SplitDateTime(r.Summary.GameDateTime)
		return Cell{Text: date, Secondary: clock}, true
	}},
	{Key: "league", Header: "LEAGUE", Scope: ScopeSummary, render: summaryText(func(s *board.GroupSummary) string { return s.League })},
	{Key: "team1", Header: "TEAM 1", Scope: ScopeSummary, render: summaryText(func(s *board.GroupSummary) string { return s.Team1 })},
	{Key: "team1ModelOdds", Header: "M1", Scope: ScopeSummary, render: summaryOdds(func(s *board.GroupSummary) decimal.Decimal { return s.Team1ModelOdds })},
	{Key: "team1BookieOdds", Header: "B1", Scope: ScopeSummary, render: summaryOdds(func(s *board.GroupSummary) decimal.Decimal { return s.Team1BookieOdds })},
	{Key: "vs", Header: "", Scope: ScopeSummary, render: func(board.DisplayRow) (Cell, bool) {
		return Cell{Text: "VS"}, true
	}},
	{Key: "team2BookieOdds", Header: "B2", Scope: ScopeSummary, render: summaryOdds(func(s *board.GroupSummary) decimal.Decimal { return s.Team2BookieOdds })},
	{Key: "team2ModelOdds", Header: "M2", Scope: ScopeSummary, render: summaryOdds(func(s *board.GroupSummary) decimal.Decimal { return s.Team2ModelOdds })},
	{Key: "team2", Header: "TEAM 2", Scope: ScopeSummary, render: func(r board.DisplayRow) (Cell, bool) {
		c := Cell{Text: r.Summary.Team2}
		if r.Summary.MemberCount > 1 {
			c.Badge = fmt.Sprintf("%d BETS", r.Summary.MemberCount)
		}
		return c, true
	}},
	{Key: "betOn", Header: "BET ON", Scope: ScopeDetail, render: func(r board.DisplayRow) (Cell, bool) {
		betOn, _ := detail(r)
		return Cell{Text: betOn}, true
	}},
	{Key: "lockedOdds", Header: "LOCKED ODDS", Scope: ScopeDetail, render: func(r board.DisplayRow) (Cell, bool) {
		_, odds := detail(r)
		return Cell{Text: Odds(odds)}, true
	}},
	{Key: "stake", Header: "STAKE", Scope: ScopeAll, render: func(r board.DisplayRow) (Cell, bool) {
		if r.Record != nil {
			return Cell{Text: Money(r.Record.Stake)}, true
		}
		return Cell{Text: Stake(*r.Summary)}, true
	}},
}

func summaryText(get func(*board.GroupSummary) string) func(board.DisplayRow) (Cell, bool) {
	return func(r board.DisplayRow) (Cell, bool) {
		return Cell{Text: get(r.Summary)}, true
	}
}

func summaryOdds(get func(*board.GroupSummary) decimal.Decimal) func(board.DisplayRow) (Cell, bool) {
	return func(r board.DisplayRow) (Cell, bool) {
		return Cell{Text: Odds(get(r.Summary))}, true
	}
}

// detail lê betOn/lockedOdds de uma linha de membro ou de um resumo com membro único.
func detail(r board.DisplayRow) (string, decimal.Decimal) {
	if r.Record != nil {
		return r.Record.BetOn, r.Record.LockedOdds
	}
	return r.Summary.Single.BetOn, r.Summary.Single.LockedOdds
}

// Cells projeta uma linha em uma célula por campo, na ordem de Fields.
// Campos fora do escopo da linha saem com Present=false.
func Cells(r board.DisplayRow) []Cell {
	out := make([]Cell, 0, len(Fields))
	for _, f := range Fields {
		c := Cell{Key: f.Key}
		if f.Scope.includes(r) {
			if rendered, ok := f.render(r); ok {
				c = rendered
				c.Key = f.Key
				c.Present = true
			}
		}
		out = append(out, c)
	}
	return out
}

// Lookup retorna a célula de uma chave.
func Lookup(cells []Cell, key string) (Cell, bool) {
	for _, c := range cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}
