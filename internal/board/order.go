package board

import (
	"fmt"
	"sort"
	"strings"
)

// GroupOrder define a ordem canônica dos grupos.
type GroupOrder string

const (
	// OrderInput mantém a ordem de primeira ocorrência (padrão).
	OrderInput GroupOrder = "input"
	// OrderGameTime ordena por gameDateTime crescente; empates mantêm a ordem de entrada.
	OrderGameTime GroupOrder = "game_time"
)

func ParseGroupOrder(s string) (GroupOrder, error) {
	switch GroupOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderInput:
		return OrderInput, nil
	case OrderGameTime:
		return OrderGameTime, nil
	default:
		return OrderInput, fmt.Errorf("unknown group order %q", s)
	}
}

// Apply devolve os grupos na ordem pedida, sem alterar o slice recebido.
func (o GroupOrder) Apply(groups []Group) []Group {
	if o != OrderGameTime {
		return groups
	}
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.GameDateTime.Before(out[j].Match.GameDateTime)
	})
	return out
}
