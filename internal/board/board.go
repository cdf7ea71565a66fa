package board

import "sync"

// Grouping é o resultado memoizado do agrupamento de um snapshot.
type Grouping struct {
	Version int64
	Groups  []Group
	Report  Report

	Results       []*Result
	ResultsReport Report

	index map[string]int
}

// Has indica se existe grupo com esse matchId no snapshot agrupado.
func (g *Grouping) Has(matchID string) bool {
	_, ok := g.index[matchID]
	return ok
}

// Projection é o que a camada de apresentação recebe.
type Projection struct {
	Version int64
	Rows    []DisplayRow
	Report  Report
}

// Board liga RecordStore -> agrupamento -> projeção.
// O agrupamento é recalculado por inteiro quando o snapshot muda e reaproveitado
// enquanto o RecordStore devolver o mesmo snapshot.
type Board struct {
	store *RecordStore
	order GroupOrder

	mu   sync.Mutex
	src  *Snapshot
	memo *Grouping
}

func New(store *RecordStore, order GroupOrder) *Board {
	return &Board{store: store, order: order}
}

// Grouping retorna o agrupamento do snapshot atual.
func (b *Board) Grouping() *Grouping {
	snap := b.store.Current()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.memo != nil && b.src == snap {
		return b.memo
	}

	groups, rep := GroupByMatch(snap.Bets)
	groups = b.order.Apply(groups)
	results, rrep := ValidateResults(snap.Results)

	idx := make(map[string]int, len(groups))
	for i, g := range groups {
		idx[g.MatchID] = i
	}

	b.src = snap
	b.memo = &Grouping{
		Version:       snap.Version,
		Groups:        groups,
		Report:        rep,
		Results:       results,
		ResultsReport: rrep,
		index:         idx,
	}
	return b.memo
}

// Rows projeta o snapshot atual com o estado de expansão informado.
func (b *Board) Rows(exp Expansion) Projection {
	g := b.Grouping()
	return Projection{
		Version: g.Version,
		Rows:    Project(g.Groups, exp),
		Report:  g.Report,
	}
}

// HasGroup indica se o matchId existe no snapshot atual.
func (b *Board) HasGroup(matchID string) bool {
	return b.Grouping().Has(matchID)
}

// Ledger retorna os resultados válidos, na ordem de entrada, sem agrupamento.
func (b *Board) Ledger() ([]*Result, Report) {
	g := b.Grouping()
	return g.Results, g.ResultsReport
}
