package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-board/internal/board"
	"github.com/radieske/bet-board/pkg/contracts/events"
)

// Source é a origem de boot quando o Redis não tem snapshot (Postgres)
type Source interface {
	Snapshot(ctx context.Context) (events.SnapshotReplaced, error)
}

type Cache interface {
	Get(ctx context.Context) (events.SnapshotReplaced, bool, error)
	// Set só grava quando a versão é mais nova que a do cache; false quando recusou
	Set(ctx context.Context, snap events.SnapshotReplaced) (bool, error)
}

// Notifier repassa o aviso de snapshot novo para as views abertas (WebSocket)
type Notifier interface {
	Broadcast(n events.SnapshotNotice)
}

// Loader aplica snapshots no RecordStore: no boot e a cada aviso recebido via Pub/Sub
type Loader struct {
	Log    *zap.Logger
	Store  *board.RecordStore
	Board  *board.Board
	Cache  Cache
	Source Source
	Hub    Notifier

	OnApplied func(rep board.Report) // métricas
	OnError   func(stage string)     // métricas por fase

	Now func() time.Time
}

// Bootstrap carrega o snapshot inicial: Redis primeiro, Postgres como fallback.
// Se o snapshot veio do Postgres, aquece o cache para as próximas instâncias.
func (l *Loader) Bootstrap(ctx context.Context) error {
	snap, ok, err := l.Cache.Get(ctx)
	if err != nil {
		l.Log.Warn("snapshot cache read failed", zap.Error(err))
		l.fail("cache_read")
	}
	if ok {
		l.apply(snap)
		return nil
	}

	if l.Source == nil {
		return errors.New("no snapshot in cache and no source configured")
	}
	snap, err = l.Source.Snapshot(ctx)
	if err != nil {
		l.fail("source")
		return fmt.Errorf("load snapshot from source: %w", err)
	}
	stored, err := l.Cache.Set(ctx, snap)
	if err != nil {
		// não impede o boot; só as outras instâncias perdem o atalho
		l.Log.Warn("snapshot cache warmup failed", zap.Error(err))
		l.fail("cache_write")
	}
	l.apply(snap)

	// o consumer gravou um snapshot mais novo entre o Get e o Set: converge para ele
	if err == nil && !stored {
		l.reload(ctx)
	}
	return nil
}

// reload aplica o snapshot do cache; o RecordStore ignora versões que não sejam mais novas
func (l *Loader) reload(ctx context.Context) {
	snap, ok, err := l.Cache.Get(ctx)
	if err != nil {
		l.Log.Warn("snapshot cache read failed", zap.Error(err))
		l.fail("cache_read")
		return
	}
	if ok {
		l.apply(snap)
	}
}

// HandleNotice recarrega o snapshot do Redis quando outra instância (ou esta) consumiu um novo
func (l *Loader) HandleNotice(ctx context.Context, n events.SnapshotNotice) {
	if n.Version <= l.Store.Current().Version {
		l.Log.Debug("snapshot notice ignored", zap.Int64("version", n.Version))
		return
	}
	snap, ok, err := l.Cache.Get(ctx)
	if err != nil {
		l.Log.Warn("snapshot cache read failed", zap.Error(err))
		l.fail("cache_read")
		return
	}
	if !ok || snap.Version < n.Version {
		l.Log.Warn("snapshot missing from cache", zap.Int64("version", n.Version))
		l.fail("cache_miss")
		return
	}
	l.apply(snap)
}

func (l *Loader) apply(ev events.SnapshotReplaced) bool {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	if !l.Store.Replace(board.FromEvent(ev, now())) {
		l.Log.Debug("stale snapshot ignored", zap.Int64("version", ev.Version))
		return false
	}

	g := l.Board.Grouping()
	logReport(l.Log, g.Report, "bet")
	logReport(l.Log, g.ResultsReport, "result")
	l.Log.Info("snapshot applied",
		zap.Int64("version", ev.Version),
		zap.String("source", ev.Source),
		zap.Int("bets", len(ev.Bets)),
		zap.Int("groups", len(g.Groups)),
		zap.Int("results", len(g.Results)),
	)
	if l.OnApplied != nil {
		l.OnApplied(g.Report)
	}
	if l.Hub != nil {
		l.Hub.Broadcast(events.SnapshotNotice{Version: ev.Version, Bets: len(ev.Bets), Results: len(ev.Results)})
	}
	return true
}

func (l *Loader) fail(stage string) {
	if l.OnError != nil {
		l.OnError(stage)
	}
}

// logReport registra os descartes de um snapshot em uma entrada só e cada conflito de partida à parte
func logReport(log *zap.Logger, rep board.Report, kind string) {
	if err := rep.Err(); err != nil {
		log.Warn(kind+" records rejected",
			zap.Int("invalid", len(rep.Invalid)),
			zap.Int("duplicates", len(rep.Duplicates)),
			zap.Strings("invalid_ids", rep.InvalidIDs()),
			zap.Strings("duplicate_ids", rep.DuplicateIDs()),
			zap.Error(err),
		)
	}
	for _, c := range rep.Conflicts {
		log.Warn("match fields conflict", zap.String("match_id", c.MatchID), zap.String("bet_id", c.BetID))
	}
}
