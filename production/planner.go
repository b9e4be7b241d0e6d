// Package production decides how many combat units of each type the
// barracks should train, either by asking the external solver or by
// drawing at random.
package production

import (
	"context"

	"github.com/richoux/microPhantom/model"
	"github.com/richoux/microPhantom/solver"
	"github.com/richoux/microPhantom/world"
)

// Observation is the planner's snapshot of one tick.
type Observation struct {
	State *world.State
	View  *world.View
	// Reserved is what earlier decisions of this tick already committed.
	Reserved int
}

// Decision is the outcome of one planning step. NoTraining pauses the
// barracks for the rest of the tick.
type Decision struct {
	Quota      world.Quota
	NoTraining bool
}

// Policy decides production quotas. Implementations never fail: a policy
// that cannot decide returns NoTraining.
type Policy interface {
	Decide(ctx context.Context, obs Observation) Decision
}

// ModeFor favours aggression when the opponent has lost at least two
// cheapest units' worth more than we have, and caution in the mirror case.
func ModeFor(myLoss, enemyLoss, cheapestCost int) solver.Mode {
	switch {
	case myLoss+2*cheapestCost <= enemyLoss:
		return solver.ModeAggressive
	case myLoss >= enemyLoss+2*cheapestCost:
		return solver.ModeCautious
	default:
		return solver.ModeNeutral
	}
}

// BuildRequest fills the solver request from the observation.
func BuildRequest(obs Observation, samples int) solver.Request {
	s, v, t := obs.State, obs.View, obs.State.Types
	worker := t.ByRole(model.RoleWorker)

	cw := s.Counter(model.RoleWorker)
	ch := s.Counter(model.RoleHeavy)
	cl := s.Counter(model.RoleLight)
	cr := s.Counter(model.RoleRanged)

	return solver.Request{
		Tick:                v.Tick,
		IdleBarracks:        len(v.IdleBarracks),
		MinResourceDistance: s.MinPatchDistance,
		MaxResourceDistance: s.MaxPatchDistance,
		NoInitialBase:       !s.HasInitialBase,
		NoInitialBarracks:   !s.HasInitialBarracks,
		Resources:           v.Resources,
		InitialResources:    s.InitialResources,
		EnemyCostLoss:       s.EnemyCostLoss,

		WorkerMoveTime:    worker.MoveTime,
		WorkerHarvestTime: worker.HarvestTime,
		WorkerReturnTime:  worker.ReturnTime,
		HarvestAmount:     worker.HarvestAmount,

		BaseCost:     t.ByRole(model.RoleBase).Cost,
		BarracksCost: t.ByRole(model.RoleBarracks).Cost,
		WorkerCost:   worker.Cost,
		HeavyCost:    t.ByRole(model.RoleHeavy).Cost,
		LightCost:    t.ByRole(model.RoleLight).Cost,
		RangedCost:   t.ByRole(model.RoleRanged).Cost,

		MyHeavy:  len(v.Heavy),
		MyLight:  len(v.Light),
		MyRanged: len(v.Ranged),

		// The opponent is assumed to start like us.
		InitialEnemyWorkers: max(s.InitialWorkers, 0),

		EnemyWorkers: cw.Current,
		EnemyHeavy:   ch.Current,
		EnemyLight:   cl.Current,
		EnemyRanged:  cr.Current,

		EnemyWorkersTotal: cw.Cumulative,
		EnemyHeavyTotal:   ch.Cumulative,
		EnemyLightTotal:   cl.Cumulative,
		EnemyRangedTotal:  cr.Cumulative,

		Mode:    ModeFor(s.MyCostLoss, s.EnemyCostLoss, t.Cheapest().Cost),
		Samples: samples,
	}
}

// Pick chooses what an idle barracks trains from the remaining quota: the
// type with the highest quota, if budget covers its cost. Nothing is picked
// when the quota is exhausted or the chosen type is unaffordable, so the
// barracks saves up rather than training something else.
func Pick(q world.Quota, types *model.UnitTypeTable, budget int) (model.UnitType, bool) {
	role, ok := q.Next()
	if !ok {
		return model.UnitType{}, false
	}
	ut := types.ByRole(role)
	if budget < ut.Cost {
		return model.UnitType{}, false
	}
	return ut, true
}
