package board

// Expansion é o que o projetor precisa saber sobre o estado de expansão.
type Expansion interface {
	IsExpanded(matchID string) bool
}

// ExpansionState guarda quais grupos estão expandidos.
// Ausente no mapa = recolhido, então só ocupa memória para grupos que o usuário abriu.
// O zero value está pronto para uso. Não é seguro para uso concorrente.
type ExpansionState struct {
	expanded map[string]struct{}
}

func NewExpansionState() *ExpansionState {
	return &ExpansionState{expanded: make(map[string]struct{})}
}

// Toggle inverte o estado de um matchId e retorna o novo valor.
// Aceita matchIds desconhecidos ou de grupos com um membro; a projeção ignora esses casos.
func (s *ExpansionState) Toggle(matchID string) bool {
	if s.expanded == nil {
		s.expanded = make(map[string]struct{})
	}
	if _, ok := s.expanded[matchID]; ok {
		delete(s.expanded, matchID)
		return false
	}
	s.expanded[matchID] = struct{}{}
	return true
}

func (s *ExpansionState) IsExpanded(matchID string) bool {
	if s == nil {
		return false
	}
	_, ok := s.expanded[matchID]
	return ok
}

// size retorna quantos grupos estão expandidos.
func (s *ExpansionState) size() int {
	if s == nil {
		return 0
	}
	return len(s.expanded)
}

// Clone devolve uma cópia independente.
func (s *ExpansionState) Clone() *ExpansionState {
	c := NewExpansionState()
	if s == nil {
		return c
	}
	for k := range s.expanded {
		c.expanded[k] = struct{}{}
	}
	return c
}
