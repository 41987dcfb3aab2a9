package game

import (
	"fmt"
	"strings"
)

// DrawModKind says how a draw modifier combines with the base draw count.
type DrawModKind int

const (
	DrawAdd DrawModKind = iota
	DrawSubtract
	DrawSet
)

func (k DrawModKind) String() string {
	switch k {
	case DrawSubtract:
		return "subtract"
	case DrawSet:
		return "set"
	default:
		return "add"
	}
}

func ParseDrawModKind(name string) (DrawModKind, error) {
	switch strings.ToLower(name) {
	case "", "add":
		return DrawAdd, nil
	case "subtract", "sub":
		return DrawSubtract, nil
	case "set":
		return DrawSet, nil
	}
	return 0, fmt.Errorf("unknown draw modifier kind %q", name)
}

// DrawModifier adjusts a combatant's draw count for a number of turns.
type DrawModifier struct {
	Kind      DrawModKind
	Value     int
	Source    string
	Remaining int
}

// ResolveDrawCount applies draw modifiers to a base draw count in fixed
// order: the latest set entry replaces the base, then all add entries are
// summed in, then all subtract entries are taken away. The result is never
// negative.
func ResolveDrawCount(base int, mods []DrawModifier) int {
	n := base
	for i := len(mods) - 1; i >= 0; i-- {
		if mods[i].Kind == DrawSet {
			n = mods[i].Value
			break
		}
	}
	for _, m := range mods {
		if m.Kind == DrawAdd {
			n += m.Value
		}
	}
	for _, m := range mods {
		if m.Kind == DrawSubtract {
			n -= m.Value
		}
	}
	return max(n, 0)
}

// TickDrawModifiers decrements every modifier's remaining duration and drops
// the ones that ran out.
func TickDrawModifiers(mods []DrawModifier) []DrawModifier {
	kept := mods[:0]
	for _, m := range mods {
		m.Remaining--
		if m.Remaining > 0 {
			kept = append(kept, m)
		}
	}
	return kept
}
