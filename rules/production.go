package rules

import (
	"context"

	"github.com/richoux/microPhantom/production"
	"github.com/richoux/microPhantom/world"
)

// ActionPlanProduction asks the production policy for a fresh quota. It runs
// once per tick with at least one idle barracks, before any barracks trains.
func ActionPlanProduction(ctx context.Context, env RuleEnv) error {
	if env.Planner == nil {
		env.State.Quota = world.Quota{}
		env.State.NoTraining = true
		return nil
	}
	d := env.Planner.Decide(ctx, production.Observation{
		State:    env.State,
		View:     env.View,
		Reserved: env.Budget.Reserved(),
	})
	env.State.Quota = d.Quota
	env.State.NoTraining = d.NoTraining
	return nil
}

// ActionRushFastest trains the fastest combat type from every idle barracks
// while the budget allows it. It only runs early on small maps.
func ActionRushFastest(_ context.Context, env RuleEnv) error {
	ut := env.State.Types.FastestToTrain()
	for _, b := range env.IdleBarracks() {
		if !env.Budget.Reserve(ut.Cost) {
			break
		}
		env.Orders.Train(b, ut)
		env.logger().Debug("rush", "barracks", b.ID, "type", ut.Name)
	}
	return nil
}

// ActionTrainFromQuota drains the quota, idle barracks in unit order. It
// stops at the first unaffordable pick so the barracks save up for it.
func ActionTrainFromQuota(_ context.Context, env RuleEnv) error {
	for _, b := range env.IdleBarracks() {
		ut, ok := production.Pick(env.State.Quota, env.State.Types, env.Budget.Available())
		if !ok {
			break
		}
		env.Budget.Reserve(ut.Cost)
		env.Orders.Train(b, ut)
		env.State.Quota.Take(ut.Role)
		env.logger().Debug("train", "barracks", b.ID, "type", ut.Name, "quota", env.State.Quota)
	}
	return nil
}
