package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

const (
	keyCurrent = "board:snapshot:current"
	keyVersion = "board:snapshot:version"
)

// setIfNewer grava snapshot e versão juntos, só quando a versão recebida é maior que a guardada.
// KEYS[1]=snapshot KEYS[2]=versão ARGV[1]=versão ARGV[2]=payload
var setIfNewer = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[2]) or '0')
if tonumber(ARGV[1]) <= cur then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2])
redis.call('SET', KEYS[2], ARGV[1])
return 1
`)

// SnapshotCache guarda o último snapshot aplicado, compartilhado entre as instâncias do board.
// Sem TTL: é a fonte de verdade para instâncias que sobem depois do último envio.
type SnapshotCache struct {
	R *redis.Client
}

func New(r *redis.Client) *SnapshotCache { return &SnapshotCache{R: r} }

// Get retorna false quando não há snapshot em cache
func (c *SnapshotCache) Get(ctx context.Context) (events.SnapshotReplaced, bool, error) {
	var snap events.SnapshotReplaced
	b, err := c.R.Get(ctx, keyCurrent).Bytes()
	if err == redis.Nil {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, err
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, false, err
	}
	return snap, true, nil
}

// Set grava o snapshot se ele for mais novo que o guardado.
// Retorna false (sem erro) quando já existe versão igual ou maior.
func (c *SnapshotCache) Set(ctx context.Context, snap events.SnapshotReplaced) (bool, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return false, err
	}
	n, err := setIfNewer.Run(ctx, c.R, []string{keyCurrent, keyVersion}, snap.Version, b).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
