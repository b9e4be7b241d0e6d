package rules

import (
	"context"

	"github.com/richoux/microPhantom/model"
)

// Retreat directions, in tie-break order.
const (
	dirUp = iota
	dirRight
	dirDown
	dirLeft
)

var steps = [4]model.Point{
	dirUp:    {X: 0, Y: -1},
	dirRight: {X: 1, Y: 0},
	dirDown:  {X: 0, Y: 1},
	dirLeft:  {X: -1, Y: 0},
}

// ActionArmyMicro gives every idle combat unit one order: kite, attack or explore.
func ActionArmyMicro(_ context.Context, env RuleEnv) error {
	for _, u := range env.IdleArmy() {
		env.micro(u)
	}
	return nil
}

func (e RuleEnv) micro(u model.Unit) {
	enemy, d, ok := nearest(u.Pos(), e.View.Enemies)
	if !ok {
		e.explore(u)
		return
	}

	if e.roleOf(u) == model.RoleRanged && d <= 2 && e.roleOf(enemy) != model.RoleRanged {
		if dir, ok := e.retreat(u.Pos()); ok {
			to := u.Pos().Add(steps[dir].X, steps[dir].Y)
			e.Orders.Move(u, to)
			e.logger().Debug("kite", "unit", u.ID, "from", enemy.ID, "x", to.X, "y", to.Y)
			return
		}
		e.attack(u, enemy)
		return
	}

	// Stick to the previous target while it is no farther than the nearest enemy.
	if cell, ok := e.State.AttackTargets[u.ID]; ok && model.Manhattan(u.Pos(), cell) <= d {
		if target, ok := e.View.UnitAt(cell); ok && e.isEnemy(target) {
			e.attack(u, target)
			return
		}
	}
	e.attack(u, enemy)
}

func (e RuleEnv) attack(u, target model.Unit) {
	if e.Orders.Attack(u, target) {
		e.State.AttackTargets[u.ID] = target.Pos()
	}
}

func (e RuleEnv) explore(u model.Unit) {
	if e.State.Heat == nil {
		return
	}
	sight := e.typeOf(u).SightRadius
	if to, ok := e.State.Heat.FrontierCandidate(u.Pos(), sight, e.State.Home, e.Tick()); ok {
		e.Orders.Move(u, to)
		e.logger().Debug("explore", "unit", u.ID, "x", to.X, "y", to.Y)
	}
}

// danger counts the attack-capable enemies around p for each direction. A
// diagonal threat weighs on both of its directions; threats one or two cells
// away along a direction add one to it, however many there are.
func (e RuleEnv) danger(p model.Point) [4]int {
	var out [4]int
	threat := func(dx, dy int) bool {
		u, ok := e.View.UnitAt(p.Add(dx, dy))
		return ok && e.isThreat(u)
	}
	diagonals := []struct {
		dx, dy int
		a, b   int
	}{
		{-1, -1, dirUp, dirLeft},
		{1, -1, dirUp, dirRight},
		{1, 1, dirDown, dirRight},
		{-1, 1, dirDown, dirLeft},
	}
	for _, c := range diagonals {
		if threat(c.dx, c.dy) {
			out[c.a]++
			out[c.b]++
		}
	}
	for dir, s := range steps {
		if threat(s.X, s.Y) || threat(2*s.X, 2*s.Y) {
			out[dir]++
		}
	}
	return out
}

// retreat picks the least dangerous free neighbouring cell of p. It reports
// false when there is no danger at all or no cell to step into.
func (e RuleEnv) retreat(p model.Point) (int, bool) {
	d := e.danger(p)
	if d[dirUp]+d[dirRight]+d[dirDown]+d[dirLeft] == 0 {
		return 0, false
	}
	best, found := 0, false
	for dir, s := range steps {
		if !e.passable(p.Add(s.X, s.Y)) {
			continue
		}
		if !found || d[dir] < d[best] {
			best, found = dir, true
		}
	}
	return best, found
}

// passable reports whether a unit can step into p this tick.
func (e RuleEnv) passable(p model.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= e.State.Width || p.Y >= e.State.Height {
		return false
	}
	if e.State.Terrain != nil && e.State.Terrain.IsWall(p.X, p.Y) {
		return false
	}
	return !e.View.Occupied(p)
}
