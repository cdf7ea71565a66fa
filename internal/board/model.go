package board

import (
	"time"

	"github.com/shopspring/decimal"
)

// Match reúne os campos de nível de partida, iguais para todas as apostas do mesmo matchId.
type Match struct {
	GameDateTime    time.Time       `json:"gameDateTime"`
	League          string          `json:"league"`
	Team1           string          `json:"team1"`
	Team2           string          `json:"team2"`
	Team1ModelOdds  decimal.Decimal `json:"team1ModelOdds"`
	Team1BookieOdds decimal.Decimal `json:"team1BookieOdds"`
	Team2ModelOdds  decimal.Decimal `json:"team2ModelOdds"`
	Team2BookieOdds decimal.Decimal `json:"team2BookieOdds"`
}

// Equal compara valores numéricos das odds, não a representação.
func (m Match) Equal(o Match) bool {
	return m.GameDateTime.Equal(o.GameDateTime) &&
		m.League == o.League &&
		m.Team1 == o.Team1 &&
		m.Team2 == o.Team2 &&
		m.Team1ModelOdds.Equal(o.Team1ModelOdds) &&
		m.Team1BookieOdds.Equal(o.Team1BookieOdds) &&
		m.Team2ModelOdds.Equal(o.Team2ModelOdds) &&
		m.Team2BookieOdds.Equal(o.Team2BookieOdds)
}

// BetRecord é uma aposta registrada
type BetRecord struct {
	ID      string `json:"id" validate:"required"`
	MatchID string `json:"matchId" validate:"required"`
	Match
	BetOn      string          `json:"betOn"`
	LockedOdds decimal.Decimal `json:"lockedOdds" validate:"dpos"`
	Stake      decimal.Decimal `json:"stake" validate:"dpos"`
}

type Outcome string

const (
	OutcomeWon  Outcome = "WON"
	OutcomeLost Outcome = "LOST"
)

// Result é uma linha do ledger de apostas liquidadas. Não passa pelo agrupamento.
type Result struct {
	ID          string          `json:"id" validate:"required"`
	BetDateTime time.Time       `json:"betDateTime"`
	League      string          `json:"league"`
	Team1       string          `json:"team1"`
	Team2       string          `json:"team2"`
	BetOn       string          `json:"betOn"`
	LockedOdds  decimal.Decimal `json:"lockedOdds" validate:"dpos"`
	Stake       decimal.Decimal `json:"stake" validate:"dpos"`
	Result      Outcome         `json:"result" validate:"oneof=WON LOST"`
	ProfitLoss  decimal.Decimal `json:"profitLoss"`
}

// Group agrupa todas as apostas de uma partida.
// Members aponta para os registros do snapshot, na ordem de entrada; nunca é vazio.
type Group struct {
	MatchID string
	Match   Match
	Members []*BetRecord
}

func (g Group) MemberCount() int { return len(g.Members) }

// SingleBet expõe betOn/lockedOdds no resumo quando o grupo tem uma só aposta.
type SingleBet struct {
	BetID      string          `json:"betId"`
	BetOn      string          `json:"betOn"`
	LockedOdds decimal.Decimal `json:"lockedOdds"`
}

// GroupSummary é o resumo agregado de um grupo.
// Single é nil sempre que MemberCount > 1: betOn e lockedOdds variam por aposta
// e não podem ser colapsados em um único valor.
type GroupSummary struct {
	MatchID string `json:"matchId"`
	Match
	TotalStake  decimal.Decimal `json:"totalStake"`
	MemberCount int             `json:"memberCount"`
	Single      *SingleBet      `json:"single,omitempty"`
}

// IsTotal indica se o stake deve ser apresentado com o qualificador "total".
func (s GroupSummary) IsTotal() bool { return s.MemberCount > 1 }

type RowKind string

const (
	RowGroupSummary RowKind = "group_summary"
	RowMember       RowKind = "member"
)

// DisplayRow é a unidade de saída consumida pela camada de renderização.
// Linhas de resumo carregam Summary; linhas de membro carregam Record.
type DisplayRow struct {
	Kind       RowKind       `json:"kind"`
	MatchID    string        `json:"matchId"`
	Depth      int           `json:"depth"`
	Expandable bool          `json:"expandable"`
	Expanded   bool          `json:"expanded"`
	Summary    *GroupSummary `json:"summary,omitempty"`
	Record     *BetRecord    `json:"record,omitempty"`
}
