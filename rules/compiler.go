package rules

import "fmt"

// CompilePlan generates the tick's rule set from p. Conditions are built via
// fmt.Sprintf with interpolated values; the compiler never generates invalid
// expr. Actions re-check affordability against the shared budget, so a
// condition only decides whether a rule is worth running.
func CompilePlan(p Params) []*Rule {
	p.Validate()
	var rules []*Rule

	// --- Economy ---

	rules = append(rules, &Rule{
		Name:     "train-worker",
		Priority: 1000,
		Category: "bases",
		ConditionSrc: fmt.Sprintf(
			`IdleBaseCount() > 0 && Available() >= Cost("worker") && (WorkerCount() == 0 || (WorkerCount() < NearPatchCount() && WorkerCount() < %d))`,
			p.WorkerCap),
		Action: ActionTrainWorkers,
	})

	rules = append(rules, &Rule{
		Name:         "build-base",
		Priority:     900,
		Category:     "workers",
		ConditionSrc: `BaseCount() == 0 && WorkerCount() > 0 && Resources() >= Cost("base")`,
		Action:       ActionBuildBase,
	})

	rules = append(rules, &Rule{
		Name:     "build-barracks",
		Priority: 800,
		Category: "workers",
		ConditionSrc: fmt.Sprintf(
			`FreeWorkerCount() > 0 && Available() >= Cost("barracks") && (BarracksCount() == 0 || (Available() >= Cost("barracks") + MostExpensiveCost() && Surface() > %d && NearPatchCount() > 0))`,
			p.SmallMapSurface),
		Action: ActionBuildBarracks,
	})

	rules = append(rules, &Rule{
		Name:         "harvest",
		Priority:     700,
		Category:     "workers",
		ConditionSrc: `FreeWorkerCount() > 0`,
		Action:       ActionHarvest,
	})

	// --- Production ---

	rules = append(rules, &Rule{
		Name:         "plan-production",
		Priority:     600,
		Category:     "planning",
		ConditionSrc: `IdleBarracksCount() > 0`,
		Action:       ActionPlanProduction,
	})

	rules = append(rules, &Rule{
		Name:      "rush-fastest",
		Priority:  500,
		Category:  "barracks",
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(
			`IdleBarracksCount() > 0 && Surface() <= %d && Tick() <= %d && ArmyCount() <= %d && Available() >= FastestCost()`,
			p.SmallMapSurface, p.RushTickLimit, p.RushArmyLimit),
		Action: ActionRushFastest,
	})

	rules = append(rules, &Rule{
		Name:         "train-from-quota",
		Priority:     490,
		Category:     "barracks",
		Exclusive:    true,
		ConditionSrc: `IdleBarracksCount() > 0 && !NoTraining() && QuotaLeft() > 0`,
		Action:       ActionTrainFromQuota,
	})

	// --- Combat ---

	rules = append(rules, &Rule{
		Name:         "army-micro",
		Priority:     100,
		Category:     "army",
		ConditionSrc: `IdleArmyCount() > 0`,
		Action:       ActionArmyMicro,
	})

	return rules
}

// DefaultPlan is CompilePlan(DefaultParams()).
func DefaultPlan() []*Rule { return CompilePlan(DefaultParams()) }
