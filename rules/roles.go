package rules

import (
	"math"

	"github.com/richoux/microPhantom/model"
)

// positioned is any unit-like value with a map cell.
type positioned interface {
	Pos() model.Point
}

// nearest returns the item closest to from by Manhattan distance; ties go to
// the first in list order.
func nearest[T positioned](from model.Point, items []T) (T, int, bool) {
	var (
		best  T
		bestD = math.MaxInt
		found bool
	)
	for _, it := range items {
		if d := model.Manhattan(from, it.Pos()); d < bestD {
			best, bestD, found = it, d, true
		}
	}
	return best, bestD, found
}

// farthestFrom returns the candidate whose closest item is the farthest away
// (Euclidean). With no items the first candidate wins.
func farthestFrom[T positioned](candidates, items []T) (T, bool) {
	var (
		best  T
		bestD = -1.0
		found bool
	)
	for _, c := range candidates {
		d := math.MaxFloat64
		for _, it := range items {
			d = min(d, model.Euclidean(c.Pos(), it.Pos()))
		}
		if d > bestD {
			best, bestD, found = c, d, true
		}
	}
	return best, found
}

// roleOf resolves a unit's role through the ruleset.
func (e RuleEnv) roleOf(u model.Unit) model.Role {
	return e.State.Types.RoleOf(u.Type)
}

func (e RuleEnv) typeOf(u model.Unit) model.UnitType {
	ut, _ := e.State.Types.Lookup(u.Type)
	return ut
}

// isEnemy reports whether u belongs to the opponent.
func (e RuleEnv) isEnemy(u model.Unit) bool {
	return u.Player >= 0 && u.Player != e.State.Self
}

// isThreat reports whether u is an enemy able to attack.
func (e RuleEnv) isThreat(u model.Unit) bool {
	return e.isEnemy(u) && e.typeOf(u).CanAttack
}
