package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/radieske/bet-board/internal/board"
	"github.com/radieske/bet-board/pkg/contracts/events"
)

// fakeCache reproduz a gravação condicional do Redis: só aceita versões mais novas
type fakeCache struct {
	snap    events.SnapshotReplaced
	has     bool
	getErr  error
	setErr  error
	setSnap *events.SnapshotReplaced
}

func (f *fakeCache) Get(context.Context) (events.SnapshotReplaced, bool, error) {
	return f.snap, f.has, f.getErr
}

func (f *fakeCache) Set(_ context.Context, s events.SnapshotReplaced) (bool, error) {
	f.setSnap = &s
	if f.setErr != nil {
		return false, f.setErr
	}
	if f.has && s.Version <= f.snap.Version {
		return false, nil
	}
	f.snap, f.has = s, true
	return true, nil
}

type fakeSource struct {
	snap   events.SnapshotReplaced
	err    error
	during func() // executa enquanto o Postgres "responde"
}

func (f *fakeSource) Snapshot(context.Context) (events.SnapshotReplaced, error) {
	if f.during != nil {
		f.during()
	}
	return f.snap, f.err
}

type fakeHub struct{ notices []events.SnapshotNotice }

func (f *fakeHub) Broadcast(n events.SnapshotNotice) { f.notices = append(f.notices, n) }

func snapshotEvent(version int64, betIDs ...string) events.SnapshotReplaced {
	ev := events.SnapshotReplaced{Version: version, Source: "test"}
	for _, id := range betIDs {
		ev.Bets = append(ev.Bets, events.Bet{
			ID: id, MatchID: "M1", BetOn: "T1",
			LockedOdds: decimal.RequireFromString("1.9"), Stake: decimal.NewFromInt(10),
		})
	}
	return ev
}

func newLoader(c Cache, s Source) (*Loader, *fakeHub) {
	store := board.NewRecordStore()
	hub := &fakeHub{}
	return &Loader{
		Log:    zap.NewNop(),
		Store:  store,
		Board:  board.New(store, board.OrderInput),
		Cache:  c,
		Source: s,
		Hub:    hub,
		Now:    func() time.Time { return time.Unix(0, 0) },
	}, hub
}

func TestBootstrap_PrefersCache(t *testing.T) {
	c := &fakeCache{snap: snapshotEvent(10, "B1"), has: true}
	src := &fakeSource{err: errors.New("must not be called")}
	l, hub := newLoader(c, src)

	if err := l.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := l.Store.Current().Version; v != 10 {
		t.Errorf("expected version 10, got %d", v)
	}
	if c.setSnap != nil {
		t.Error("cache hit must not rewrite cache")
	}
	if len(hub.notices) != 1 {
		t.Errorf("expected one broadcast, got %d", len(hub.notices))
	}
}

func TestBootstrap_FallsBackToSourceAndWarmsCache(t *testing.T) {
	c := &fakeCache{}
	src := &fakeSource{snap: snapshotEvent(1, "B1", "B2")}
	l, _ := newLoader(c, src)

	var reported int
	l.OnApplied = func(board.Report) { reported++ }

	if err := l.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.setSnap == nil || c.setSnap.Version != 1 {
		t.Error("expected cache warmup with source snapshot")
	}
	if got := len(l.Store.Current().Bets); got != 2 {
		t.Errorf("expected 2 bets applied, got %d", got)
	}
	if reported != 1 {
		t.Errorf("expected OnApplied once, got %d", reported)
	}
}

func TestBootstrap_SourceError(t *testing.T) {
	l, _ := newLoader(&fakeCache{}, &fakeSource{err: errors.New("pg down")})

	var stages []string
	l.OnError = func(s string) { stages = append(stages, s) }

	if err := l.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(stages) != 1 || stages[0] != "source" {
		t.Errorf("expected source error stage, got %v", stages)
	}
}

func TestHandleNotice_AppliesNewer(t *testing.T) {
	c := &fakeCache{snap: snapshotEvent(5, "B1"), has: true}
	l, hub := newLoader(c, nil)

	l.HandleNotice(context.Background(), events.SnapshotNotice{Version: 5})
	if l.Store.Current().Version != 5 {
		t.Fatalf("expected version 5 applied")
	}

	// aviso repetido não reaplica
	l.HandleNotice(context.Background(), events.SnapshotNotice{Version: 5})
	if len(hub.notices) != 1 {
		t.Errorf("expected a single broadcast, got %d", len(hub.notices))
	}
}

func TestHandleNotice_CacheBehind(t *testing.T) {
	c := &fakeCache{snap: snapshotEvent(3, "B1"), has: true}
	l, hub := newLoader(c, nil)

	var stages []string
	l.OnError = func(s string) { stages = append(stages, s) }

	l.HandleNotice(context.Background(), events.SnapshotNotice{Version: 9})

	if l.Store.Current().Version != 0 {
		t.Error("older cached snapshot must not be applied for a newer notice")
	}
	if len(hub.notices) != 0 || len(stages) != 1 || stages[0] != "cache_miss" {
		t.Errorf("unexpected side effects: notices=%d stages=%v", len(hub.notices), stages)
	}
}

func TestBootstrap_ConvergesWhenNewerSnapshotCachedMeanwhile(t *testing.T) {
	c := &fakeCache{}
	published := snapshotEvent(1741980000000, "B1", "B2")
	src := &fakeSource{
		snap: snapshotEvent(1, "B1"),
		// o consumer de outra instância grava o snapshot do Kafka entre o Get vazio e o Set
		during: func() { _, _ = c.Set(context.Background(), published) },
	}
	l, _ := newLoader(c, src)

	if err := l.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := l.Store.Current().Version; v != published.Version {
		t.Errorf("expected version %d, got %d", published.Version, v)
	}
	if got := len(l.Store.Current().Bets); got != 2 {
		t.Errorf("expected 2 bets, got %d", got)
	}
	if c.snap.Version != published.Version {
		t.Errorf("postgres snapshot must not replace a newer cached one, cache has %d", c.snap.Version)
	}
}

func TestBootstrap_InstancesConverge(t *testing.T) {
	c := &fakeCache{}
	published := snapshotEvent(1741980000000, "B1", "B2")
	if stored, err := c.Set(context.Background(), published); err != nil || !stored {
		t.Fatalf("seed cache: stored=%v err=%v", stored, err)
	}

	a, _ := newLoader(c, &fakeSource{snap: snapshotEvent(1, "B1")})
	if err := a.Bootstrap(context.Background()); err != nil {
		t.Fatalf("a: %v", err)
	}

	// instância que sobe depois: o cache ainda tem o snapshot publicado
	b, _ := newLoader(c, &fakeSource{err: errors.New("must not be called")})
	if err := b.Bootstrap(context.Background()); err != nil {
		t.Fatalf("b: %v", err)
	}

	if a.Store.Current().Version != b.Store.Current().Version {
		t.Errorf("instances diverged: a=%d b=%d", a.Store.Current().Version, b.Store.Current().Version)
	}

	// um warmup atrasado com a versão do Postgres é recusado
	if stored, _ := c.Set(context.Background(), snapshotEvent(1, "B1")); stored {
		t.Error("older snapshot must not overwrite the cache")
	}
}

func TestApply_LogsRejectedRecordsOnce(t *testing.T) {
	ev := snapshotEvent(7, "B1", "B1", "B2")
	ev.Bets[2].MatchID = ""

	core, logs := observer.New(zapcore.WarnLevel)
	l, _ := newLoader(&fakeCache{snap: ev, has: true}, nil)
	l.Log = zap.New(core)

	if err := l.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("bet records rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected a single rejection entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["invalid"] != int64(1) || fields["duplicates"] != int64(1) {
		t.Errorf("unexpected counts %v / %v", fields["invalid"], fields["duplicates"])
	}
	if fields["error"] == nil {
		t.Error("expected joined error in the entry")
	}
	if logs.FilterMessage("result records rejected").Len() != 0 {
		t.Error("clean results must not be logged")
	}
}
