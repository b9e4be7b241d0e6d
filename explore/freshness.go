package explore

import "fmt"

type freshnessKind uint8

const (
	kindUnknown freshnessKind = iota
	kindSeen
	kindUnreachable
)

// Freshness is what the agent knows about one cell: never observed, walled
// off, or last observed at some tick.
type Freshness struct {
	kind freshnessKind
	tick int
}

// Unknown is the freshness of a cell that has never been observed.
func Unknown() Freshness { return Freshness{kind: kindUnknown} }

// Unreachable is the freshness of a wall cell. It never changes.
func Unreachable() Freshness { return Freshness{kind: kindUnreachable} }

// SeenAt is the freshness of a cell last observed at tick.
func SeenAt(tick int) Freshness { return Freshness{kind: kindSeen, tick: tick} }

func (f Freshness) IsUnknown() bool     { return f.kind == kindUnknown }
func (f Freshness) IsUnreachable() bool { return f.kind == kindUnreachable }

// LastSeen returns the tick the cell was last observed, if it ever was.
func (f Freshness) LastSeen() (int, bool) {
	return f.tick, f.kind == kindSeen
}

// StalerThan orders reachable cells for exploration: never-seen cells are the
// stalest, then older observations. Unreachable cells are never staler.
func (f Freshness) StalerThan(o Freshness) bool {
	switch {
	case f.kind == kindUnreachable:
		return false
	case o.kind == kindUnreachable:
		return true
	case f.kind == kindUnknown:
		return o.kind != kindUnknown
	case o.kind == kindUnknown:
		return false
	default:
		return f.tick < o.tick
	}
}

func (f Freshness) String() string {
	switch f.kind {
	case kindUnknown:
		return "unknown"
	case kindUnreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("seen@%d", f.tick)
	}
}
