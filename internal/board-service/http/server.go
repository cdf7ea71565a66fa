package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/internal/board"
	"github.com/radieske/bet-board/internal/board-service/dto"
	"github.com/radieske/bet-board/internal/board-service/session"
	"github.com/radieske/bet-board/internal/presenter"
)

// Sessions é o registro de estados de expansão por sessão
type Sessions interface {
	Create() string
	Toggle(id, matchID string) (bool, error)
	IsExpanded(id, matchID string) (bool, error)
	State(id string) (*board.ExpansionState, error)
}

// API expõe a tabela agrupada, o ledger de resultados e o canal WebSocket
type API struct {
	Log      *zap.Logger
	Board    *board.Board
	Sessions Sessions
	WS       http.Handler // hub de avisos de snapshot

	OnToggle func() // métricas
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/sessions", a.createSession)
	r.Get("/v1/sessions/{id}/rows", a.rows)
	r.Post("/v1/sessions/{id}/groups/{matchId}/toggle", a.toggle)
	r.Get("/v1/sessions/{id}/groups/{matchId}", a.expansion)
	r.Get("/v1/fields", a.fields)
	r.Get("/v1/results", a.results)
	if a.WS != nil {
		r.Handle("/v1/ws", a.WS)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSessionErr traduz erros do registro de sessões
func writeSessionErr(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	id := a.Sessions.Create()
	writeJSON(w, http.StatusCreated, dto.SessionResponse{SessionID: id})
}

// rows projeta o snapshot atual com o estado de expansão da sessão
func (a *API) rows(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, err := a.Sessions.State(id)
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRowsResponse(id, a.Board.Rows(st)))
}

// toggle inverte um grupo e devolve as linhas já reprojetadas.
// matchId fora do snapshot atual não altera nada.
func (a *API) toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	matchID := chi.URLParam(r, "matchId")

	if a.Board.HasGroup(matchID) {
		expanded, err := a.Sessions.Toggle(id, matchID)
		if err != nil {
			writeSessionErr(w, err)
			return
		}
		if a.OnToggle != nil {
			a.OnToggle()
		}
		a.Log.Debug("group toggled",
			zap.String("session", id),
			zap.String("match_id", matchID),
			zap.Bool("expanded", expanded),
		)
	} else {
		a.Log.Debug("toggle ignored: unknown match", zap.String("session", id), zap.String("match_id", matchID))
	}

	a.rows(w, r)
}

func (a *API) expansion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	matchID := chi.URLParam(r, "matchId")
	expanded, err := a.Sessions.IsExpanded(id, matchID)
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ExpansionResponse{MatchID: matchID, Expanded: expanded})
}

// fields lista as colunas da tabela agrupada, na ordem de exibição
func (a *API) fields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presenter.Fields)
}

// results retorna o ledger de resultados, sem agrupamento
func (a *API) results(w http.ResponseWriter, r *http.Request) {
	g := a.Board.Grouping()
	writeJSON(w, http.StatusOK, dto.LedgerResponse{
		Version: g.Version,
		Rows:    presenter.LedgerRows(g.Results),
		Report:  dto.NewReport(g.ResultsReport),
	})
}
