package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

// Load lê um snapshot completo de um arquivo JSON.
// O conteúdo vai como está; a validação por registro acontece no board-service.
func Load(path string) (events.SnapshotReplaced, error) {
	var snap events.SnapshotReplaced
	b, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("read fixture: %w", err)
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return snap, nil
}
