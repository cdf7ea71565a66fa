package dto

import (
	"github.com/radieske/bet-board/internal/board"
	"github.com/radieske/bet-board/internal/presenter"
)

// SessionResponse é devolvido ao abrir uma sessão de visualização
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// Row é uma linha projetada com as células já formatadas
type Row struct {
	board.DisplayRow
	Cells []presenter.Cell `json:"cells"`
}

// Report resume o que foi descartado ou sinalizado no snapshot
type Report struct {
	InvalidCount   int                   `json:"invalidCount"`
	InvalidIDs     []string              `json:"invalidIds"`
	DuplicateCount int                   `json:"duplicateCount"`
	DuplicateIDs   []string              `json:"duplicateIds"`
	Conflicts      []board.MatchConflict `json:"conflicts"`
}

func NewReport(r board.Report) Report {
	conflicts := r.Conflicts
	if conflicts == nil {
		conflicts = []board.MatchConflict{}
	}
	return Report{
		InvalidCount:   len(r.Invalid),
		InvalidIDs:     r.InvalidIDs(),
		DuplicateCount: len(r.Duplicates),
		DuplicateIDs:   r.DuplicateIDs(),
		Conflicts:      conflicts,
	}
}

// RowsResponse é a tabela agrupada vista por uma sessão
type RowsResponse struct {
	SessionID string `json:"sessionId"`
	Version   int64  `json:"version"`
	Rows      []Row  `json:"rows"`
	Report    Report `json:"report"`
}

// NewRowsResponse formata a projeção para o cliente
func NewRowsResponse(sessionID string, p board.Projection) RowsResponse {
	rows := make([]Row, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, Row{DisplayRow: r, Cells: presenter.Cells(r)})
	}
	return RowsResponse{
		SessionID: sessionID,
		Version:   p.Version,
		Rows:      rows,
		Report:    NewReport(p.Report),
	}
}

// ExpansionResponse informa o estado de um grupo na sessão
type ExpansionResponse struct {
	MatchID  string `json:"matchId"`
	Expanded bool   `json:"expanded"`
}

// LedgerResponse é o ledger de resultados formatado
type LedgerResponse struct {
	Version int64                 `json:"version"`
	Rows    []presenter.LedgerRow `json:"rows"`
	Report  Report                `json:"report"`
}
