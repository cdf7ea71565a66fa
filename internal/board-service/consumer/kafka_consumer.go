package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

// SnapshotCache grava só snapshots mais novos que o guardado
type SnapshotCache interface {
	Set(ctx context.Context, snap events.SnapshotReplaced) (bool, error)
}

type NoticePublisher interface {
	Publish(ctx context.Context, n events.SnapshotNotice) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Processor consome snapshots do Kafka, grava no Redis e avisa as instâncias via Pub/Sub
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log       *zap.Logger
	Reader    *kafka.Reader
	Cache     SnapshotCache
	Publisher NoticePublisher
	DLQ       MessageWriter // opcional: recebe mensagens que não decodificam

	OnConsumed  func()       // métricas (counter++)
	OnCached    func()       // métricas
	OnPublished func()       // métricas
	OnError     func(string) // métricas por fase
}

// Run inicia o loop principal de consumo das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if err := p.Handle(ctx, m); err != nil {
			p.Log.Warn("snapshot message dropped", zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

// Handle processa uma mensagem: decode -> cache -> aviso
func (p *Processor) Handle(ctx context.Context, m kafka.Message) error {
	if p.OnConsumed != nil {
		p.OnConsumed()
	}

	snap, err := Decode(m.Value)
	if err != nil {
		p.fail("decode")
		if p.DLQ != nil {
			if derr := p.DLQ.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value}); derr != nil {
				p.Log.Error("dlq write failed", zap.Error(derr))
			}
		}
		return err
	}

	// sem cache as outras instâncias não conseguem carregar o snapshot, então não avisa
	stored, err := p.Cache.Set(ctx, snap)
	if err != nil {
		p.fail("cache")
		return fmt.Errorf("cache snapshot: %w", err)
	}
	if !stored {
		// reentrega ou snapshot atrasado: o cache já tem versão igual ou maior
		p.Log.Debug("stale snapshot skipped", zap.Int64("version", snap.Version))
		return nil
	}
	if p.OnCached != nil {
		p.OnCached()
	}

	n := events.SnapshotNotice{Version: snap.Version, Bets: len(snap.Bets), Results: len(snap.Results)}
	if err := p.Publisher.Publish(ctx, n); err != nil {
		p.fail("publish")
		return fmt.Errorf("publish notice: %w", err)
	}
	if p.OnPublished != nil {
		p.OnPublished()
	}

	p.Log.Info("snapshot received",
		zap.Int64("version", snap.Version),
		zap.String("source", snap.Source),
		zap.Int("bets", len(snap.Bets)),
		zap.Int("results", len(snap.Results)),
	)
	return nil
}

var ErrMissingVersion = errors.New("snapshot without version")

// Decode valida o envelope do snapshot. Registros inválidos dentro dele são tratados pelo board.
func Decode(b []byte) (events.SnapshotReplaced, error) {
	var snap events.SnapshotReplaced
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version <= 0 {
		return snap, ErrMissingVersion
	}
	return snap, nil
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
