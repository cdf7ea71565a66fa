package board

import (
	"sync/atomic"
	"time"
)

// Snapshot é o conjunto imutável de registros em uso. Nunca é alterado depois de publicado no RecordStore.
type Snapshot struct {
	Version  int64
	Bets     []BetRecord
	Results  []Result
	LoadedAt time.Time
}

var emptySnapshot = &Snapshot{}

// RecordStore mantém o snapshot corrente. Leitores sempre enxergam um snapshot completo.
type RecordStore struct {
	cur atomic.Pointer[Snapshot]
}

func NewRecordStore() *RecordStore {
	s := &RecordStore{}
	s.cur.Store(emptySnapshot)
	return s
}

// Current retorna o snapshot atual (versão 0 e vazio antes da primeira carga).
func (s *RecordStore) Current() *Snapshot {
	if snap := s.cur.Load(); snap != nil {
		return snap
	}
	return emptySnapshot
}

// Replace instala snap se a versão for mais nova que a atual.
// Retorna false para snapshots antigos ou repetidos, que são ignorados.
func (s *RecordStore) Replace(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	for {
		old := s.cur.Load()
		if old != nil && snap.Version <= old.Version {
			return false
		}
		if s.cur.CompareAndSwap(old, snap) {
			return true
		}
	}
}
