package ws

import "github.com/radieske/bet-board/pkg/contracts/events"

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: ping (o resto é ignorado)
type ClientMsg struct {
	Type string `json:"type"`
}

// ServerMsg é o que o hub envia: "snapshot" quando um snapshot novo foi aplicado, "pong" em resposta a ping
type ServerMsg struct {
	Type     string                 `json:"type"`
	Snapshot *events.SnapshotNotice `json:"snapshot,omitempty"`
}
