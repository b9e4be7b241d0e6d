package production

import (
	"context"
	"math/rand/v2"

	"github.com/richoux/microPhantom/model"
	"github.com/richoux/microPhantom/world"
)

// RandomPolicy draws a uniformly random combat type for every idle barracks.
// A heavy drawn while unaffordable stays pending, and barracks save up for
// it before drawing again.
type RandomPolicy struct {
	rng          *rand.Rand
	heavyPending bool
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandomPolicy) Decide(_ context.Context, obs Observation) Decision {
	t := obs.State.Types
	heavy := t.ByRole(model.RoleHeavy)
	budget := obs.View.Resources - obs.Reserved

	var q world.Quota
	for range obs.View.IdleBarracks {
		if p.heavyPending {
			if budget >= heavy.Cost {
				q.Heavy++
				budget -= heavy.Cost
				p.heavyPending = false
			}
			continue
		}
		if budget < t.Cheapest().Cost {
			continue
		}

		switch p.rng.IntN(3) {
		case 0:
			if budget >= heavy.Cost {
				q.Heavy++
				budget -= heavy.Cost
			} else {
				p.heavyPending = true
			}
		case 1:
			if c := t.ByRole(model.RoleRanged).Cost; budget >= c {
				q.Ranged++
				budget -= c
			}
		default:
			if c := t.ByRole(model.RoleLight).Cost; budget >= c {
				q.Light++
				budget -= c
			}
		}
	}
	return Decision{Quota: q}
}

// HeavyPending reports whether a heavy is being saved up for.
func (p *RandomPolicy) HeavyPending() bool { return p.heavyPending }
