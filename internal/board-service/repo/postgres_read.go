package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

// BootstrapVersion é a versão do snapshot montado a partir do Postgres.
// Qualquer snapshot vindo do Kafka (versão em unix ms) é mais novo.
const BootstrapVersion = 1

// ReadRepo lê apostas e resultados já materializados pelo produtor externo
type ReadRepo struct {
	DB *sql.DB
}

func NewReadRepo(db *sql.DB) *ReadRepo { return &ReadRepo{DB: db} }

// ListBets retorna as apostas na ordem em que foram registradas; essa ordem define a ordem dos grupos
func (r *ReadRepo) ListBets(ctx context.Context) ([]events.Bet, error) {
	const q = `
		SELECT id, match_id, game_date_time, league, team1, team2,
		       team1_model_odds, team1_bookie_odds, team2_model_odds, team2_bookie_odds,
		       bet_on, locked_odds, stake
		FROM bets
		ORDER BY placed_at, id;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []events.Bet
	for rows.Next() {
		var b events.Bet
		if err := rows.Scan(
			&b.ID, &b.MatchID, &b.GameDateTime, &b.League, &b.Team1, &b.Team2,
			&b.Team1ModelOdds, &b.Team1BookieOdds, &b.Team2ModelOdds, &b.Team2BookieOdds,
			&b.BetOn, &b.LockedOdds, &b.Stake,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListResults retorna o ledger de apostas liquidadas, mais recentes primeiro
func (r *ReadRepo) ListResults(ctx context.Context) ([]events.Result, error) {
	const q = `
		SELECT id, bet_date_time, league, team1, team2, bet_on, locked_odds, stake, result, profit_loss
		FROM bet_results
		ORDER BY bet_date_time DESC, id;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []events.Result
	for rows.Next() {
		var res events.Result
		if err := rows.Scan(
			&res.ID, &res.BetDateTime, &res.League, &res.Team1, &res.Team2,
			&res.BetOn, &res.LockedOdds, &res.Stake, &res.Result, &res.ProfitLoss,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Snapshot monta um snapshot completo para o boot do serviço
func (r *ReadRepo) Snapshot(ctx context.Context) (events.SnapshotReplaced, error) {
	bets, err := r.ListBets(ctx)
	if err != nil {
		return events.SnapshotReplaced{}, fmt.Errorf("list bets: %w", err)
	}
	results, err := r.ListResults(ctx)
	if err != nil {
		return events.SnapshotReplaced{}, fmt.Errorf("list results: %w", err)
	}
	return events.SnapshotReplaced{
		Version: BootstrapVersion,
		Source:  "postgres",
		Bets:    bets,
		Results: results,
	}, nil
}
