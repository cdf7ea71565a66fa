package events

// Evento publicado no tópico "bet_snapshots".
// Sempre carrega o snapshot inteiro; não existe atualização parcial.
type SnapshotReplaced struct {
	Version  int64    `json:"version"`
	Source   string   `json:"source"` // ex: "snapshot-publisher"
	Bets     []Bet    `json:"bets"`
	Results  []Result `json:"results"`
	TsUnixMs int64    `json:"tsUnixMs"`
}

// SnapshotNotice é o aviso enviado via Redis Pub/Sub e WebSocket depois que um snapshot foi aplicado.
type SnapshotNotice struct {
	Version int64 `json:"version"`
	Bets    int   `json:"bets"`
	Results int   `json:"results"`
}
