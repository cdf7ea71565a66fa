package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/internal/board"
	"github.com/radieske/bet-board/internal/board-service/dto"
	"github.com/radieske/bet-board/internal/board-service/session"
	"github.com/radieske/bet-board/internal/presenter"
)

func bet(id, matchID, betOn, stake string) board.BetRecord {
	return board.BetRecord{
		ID:      id,
		MatchID: matchID,
		Match: board.Match{
			GameDateTime:    time.Date(2025, 3, 14, 19, 30, 0, 0, time.UTC),
			League:          "LCK",
			Team1:           "T1",
			Team2:           "Gen.G",
			Team1ModelOdds:  decimal.RequireFromString("1.72"),
			Team1BookieOdds: decimal.RequireFromString("1.80"),
			Team2ModelOdds:  decimal.RequireFromString("2.10"),
			Team2BookieOdds: decimal.RequireFromString("2.05"),
		},
		BetOn:      betOn,
		LockedOdds: decimal.RequireFromString("1.80"),
		Stake:      decimal.RequireFromString(stake),
	}
}

func newTestAPI(t *testing.T) (*API, *int) {
	t.Helper()
	store := board.NewRecordStore()
	store.Replace(&board.Snapshot{
		Version: 3,
		Bets: []board.BetRecord{
			bet("b1", "M1", "T1", "10"),
			bet("b2", "M2", "T1", "15"),
			bet("b3", "M2", "Gen.G", "20"),
		},
		Results: []board.Result{{
			ID:          "r1",
			BetDateTime: time.Date(2025, 3, 1, 14, 5, 0, 0, time.UTC),
			League:      "LEC",
			Team1:       "G2",
			Team2:       "FNC",
			BetOn:       "G2",
			LockedOdds:  decimal.RequireFromString("2.25"),
			Stake:       decimal.NewFromInt(10),
			Result:      board.OutcomeWon,
			ProfitLoss:  decimal.RequireFromString("12.50"),
		}},
	})
	toggles := 0
	api := &API{
		Log:      zap.NewNop(),
		Board:    board.New(store, board.OrderInput),
		Sessions: session.NewRegistry(time.Hour),
		OnToggle: func() { toggles++ },
	}
	return api, &toggles
}

func do(t *testing.T, h http.Handler, method, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return rec.Code
}

func openSession(t *testing.T, h http.Handler) string {
	t.Helper()
	var s dto.SessionResponse
	if code := do(t, h, http.MethodPost, "/v1/sessions", &s); code != http.StatusCreated {
		t.Fatalf("create session: status %d", code)
	}
	if s.SessionID == "" {
		t.Fatal("empty session id")
	}
	return s.SessionID
}

func TestAPI_RowsCollapsedByDefault(t *testing.T) {
	api, _ := newTestAPI(t)
	h := api.Router()
	id := openSession(t, h)

	var resp dto.RowsResponse
	if code := do(t, h, http.MethodGet, "/v1/sessions/"+id+"/rows", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.Version != 3 || len(resp.Rows) != 2 {
		t.Fatalf("expected version 3 with 2 rows, got %d / %d", resp.Version, len(resp.Rows))
	}
	m2 := resp.Rows[1]
	if m2.MatchID != "M2" || !m2.Expandable || m2.Expanded {
		t.Fatalf("unexpected M2 row %+v", m2.DisplayRow)
	}
	stake, ok := presenter.Lookup(m2.Cells, "stake")
	if !ok || stake.Text != "$35.00 total" {
		t.Errorf("expected '$35.00 total', got %+v", stake)
	}
	if betOn, _ := presenter.Lookup(m2.Cells, "betOn"); betOn.Present {
		t.Errorf("betOn must be absent on multi-bet summary, got %+v", betOn)
	}
}

func TestAPI_ToggleExpandsAndCollapses(t *testing.T) {
	api, toggles := newTestAPI(t)
	h := api.Router()
	id := openSession(t, h)

	var resp dto.RowsResponse
	do(t, h, http.MethodPost, "/v1/sessions/"+id+"/groups/M2/toggle", &resp)
	if len(resp.Rows) != 4 {
		t.Fatalf("expected 4 rows after expanding M2, got %d", len(resp.Rows))
	}
	if resp.Rows[2].Kind != board.RowMember || resp.Rows[2].Record.ID != "b2" || resp.Rows[3].Record.ID != "b3" {
		t.Errorf("member rows out of order")
	}

	var exp dto.ExpansionResponse
	do(t, h, http.MethodGet, "/v1/sessions/"+id+"/groups/M2", &exp)
	if !exp.Expanded {
		t.Error("expected M2 expanded")
	}

	resp = dto.RowsResponse{}
	do(t, h, http.MethodPost, "/v1/sessions/"+id+"/groups/M2/toggle", &resp)
	if len(resp.Rows) != 2 {
		t.Errorf("expected 2 rows after collapsing, got %d", len(resp.Rows))
	}
	if *toggles != 2 {
		t.Errorf("expected 2 toggles counted, got %d", *toggles)
	}
}

func TestAPI_ToggleUnknownMatchIsNoop(t *testing.T) {
	api, toggles := newTestAPI(t)
	h := api.Router()
	id := openSession(t, h)

	var resp dto.RowsResponse
	if code := do(t, h, http.MethodPost, "/v1/sessions/"+id+"/groups/NOPE/toggle", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(resp.Rows) != 2 || *toggles != 0 {
		t.Errorf("expected unchanged rows and no toggle, got %d rows / %d toggles", len(resp.Rows), *toggles)
	}

	var exp dto.ExpansionResponse
	do(t, h, http.MethodGet, "/v1/sessions/"+id+"/groups/NOPE", &exp)
	if exp.Expanded {
		t.Error("unknown match must stay collapsed")
	}
}

func TestAPI_SessionsAreIndependent(t *testing.T) {
	api, _ := newTestAPI(t)
	h := api.Router()
	a := openSession(t, h)
	b := openSession(t, h)

	do(t, h, http.MethodPost, "/v1/sessions/"+a+"/groups/M2/toggle", nil)

	var resp dto.RowsResponse
	do(t, h, http.MethodGet, "/v1/sessions/"+b+"/rows", &resp)
	if len(resp.Rows) != 2 {
		t.Errorf("session b must stay collapsed, got %d rows", len(resp.Rows))
	}
}

func TestAPI_UnknownSession(t *testing.T) {
	api, _ := newTestAPI(t)
	h := api.Router()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/sessions/missing/rows"},
		{http.MethodPost, "/v1/sessions/missing/groups/M2/toggle"},
		{http.MethodGet, "/v1/sessions/missing/groups/M2"},
	} {
		if code := do(t, h, tc.method, tc.path, nil); code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, code)
		}
	}
}

func TestAPI_FieldsAndResults(t *testing.T) {
	api, _ := newTestAPI(t)
	h := api.Router()

	var fields []presenter.Field
	do(t, h, http.MethodGet, "/v1/fields", &fields)
	if len(fields) != len(presenter.Fields) || fields[0].Key != "toggle" {
		t.Errorf("unexpected fields %+v", fields)
	}

	var ledger dto.LedgerResponse
	do(t, h, http.MethodGet, "/v1/results", &ledger)
	if len(ledger.Rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(ledger.Rows))
	}
	row := ledger.Rows[0]
	if row.Matchup != "G2 vs FNC" || row.ProfitLoss != "+$12.50" || row.Tone != presenter.TonePositive {
		t.Errorf("unexpected ledger row %+v", row)
	}
}
