package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher encapsula o writer Kafka e o logger.
type KafkaPublisher struct {
	writer MessageWriter
	log    *zap.Logger
	now    func() time.Time
}

// NewKafkaPublisher cria um publisher para o tópico de snapshots.
// Em local/dev garante a existência do tópico antes de criar o writer.
func NewKafkaPublisher(brokers []string, topic, env string, log *zap.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not provided")
	}

	if env == "local" || env == "dev" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ensureTopic(ctx, brokers[0], topic, log); err != nil {
			return nil, err
		}
	}

	// snapshots inteiros podem passar de 1MB, por isso o BatchBytes maior
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		BatchBytes:             50e6,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &KafkaPublisher{writer: writer, log: log, now: time.Now}, nil
}

// ensureTopic cria o tópico pelo controller do cluster (single-broker: 1 partição, RF 1).
func ensureTopic(ctx context.Context, broker, topic string, log *zap.Logger) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return fmt.Errorf("connect to kafka: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("get kafka controller: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", controller.Host, controller.Port)
	cconn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer cconn.Close()

	cfg := kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}
	if err := cconn.CreateTopics(cfg); err != nil && !strings.Contains(err.Error(), "already exists") {
		log.Warn("failed to create kafka topic", zap.String("topic", topic), zap.Error(err))
	} else if err == nil {
		log.Info("kafka topic created", zap.String("topic", topic))
	}
	return nil
}

// Stamp preenche versão (unix ms quando zero) e timestamp de envio.
func Stamp(snap events.SnapshotReplaced, now time.Time) events.SnapshotReplaced {
	if snap.Version == 0 {
		snap.Version = now.UnixMilli()
	}
	if snap.Source == "" {
		snap.Source = "snapshot-publisher"
	}
	snap.TsUnixMs = now.UnixMilli()
	return snap
}

// Publish envia o snapshot inteiro como uma mensagem.
// A chave é o source, então snapshots do mesmo produtor caem na mesma partição e mantêm a ordem.
func (p *KafkaPublisher) Publish(ctx context.Context, snap events.SnapshotReplaced) (events.SnapshotReplaced, error) {
	now := p.now()
	snap = Stamp(snap, now)

	value, err := json.Marshal(snap)
	if err != nil {
		return snap, fmt.Errorf("marshal snapshot: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(snap.Source),
		Value: value,
		Time:  now,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish snapshot", zap.Int64("version", snap.Version), zap.Error(err))
		return snap, err
	}

	p.log.Info("published snapshot",
		zap.Int64("version", snap.Version),
		zap.Int("bets", len(snap.Bets)),
		zap.Int("results", len(snap.Results)),
	)
	return snap, nil
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
