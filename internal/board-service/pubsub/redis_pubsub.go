package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

// RedisBroadcaster publica avisos de snapshot aplicado para todas as instâncias
type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, n events.SnapshotNotice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return b.r.Publish(ctx, b.channel, payload).Err()
}

// StartSubscriber escuta o canal em uma goroutine e entrega cada aviso para handle.
// Mensagens inválidas são logadas e descartadas.
func StartSubscriber(ctx context.Context, r *redis.Client, channel string, log *zap.Logger, handle func(context.Context, events.SnapshotNotice)) {
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				n, err := DecodeNotice([]byte(msg.Payload))
				if err != nil {
					log.Warn("invalid snapshot notice", zap.Error(err))
					continue
				}
				handle(ctx, n)
			}
		}
	}()
}

func DecodeNotice(b []byte) (events.SnapshotNotice, error) {
	var n events.SnapshotNotice
	err := json.Unmarshal(b, &n)
	return n, err
}
