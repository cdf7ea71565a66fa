package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/bet-board/internal/board"
)

var ErrNotFound = errors.New("session not found")

type entry struct {
	state *board.ExpansionState
	seen  time.Time
}

// Registry guarda o estado de expansão de cada view aberta.
// O ExpansionState em si não é concorrente; o mutex do registry serializa os toggles.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry

	now      func() time.Time
	OnChange func(active int) // métricas (gauge)
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create abre uma sessão nova com todos os grupos recolhidos
func (r *Registry) Create() string {
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &entry{state: board.NewExpansionState(), seen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	r.changed(n)
	return id
}

// Toggle inverte a expansão de um grupo na sessão e retorna o novo valor
func (r *Registry) Toggle(id, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.touch(id)
	if !ok {
		return false, ErrNotFound
	}
	return e.state.Toggle(matchID), nil
}

func (r *Registry) IsExpanded(id, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.touch(id)
	if !ok {
		return false, ErrNotFound
	}
	return e.state.IsExpanded(matchID), nil
}

// State devolve uma cópia do estado, para projetar fora do lock
func (r *Registry) State(id string) (*board.ExpansionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.touch(id)
	if !ok {
		return nil, ErrNotFound
	}
	return e.state.Clone(), nil
}

// Sweep remove sessões paradas há mais que o TTL e retorna quantas saíram
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	removed := 0
	for id, e := range r.sessions {
		if now.Sub(e.seen) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		r.changed(n)
	}
	return removed
}

// Run executa Sweep periodicamente até o contexto ser cancelado
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r.Sweep(now)
		}
	}
}

// touch precisa ser chamado com o lock
func (r *Registry) touch(id string) (*entry, bool) {
	e, ok := r.sessions[id]
	if ok {
		e.seen = r.now()
	}
	return e, ok
}

func (r *Registry) changed(active int) {
	if r.OnChange != nil {
		r.OnChange(active)
	}
}
