package rules

import (
	"log/slog"

	"github.com/richoux/microPhantom/model"
	"github.com/richoux/microPhantom/production"
	"github.com/richoux/microPhantom/world"
)

// RuleEnv is the expr evaluation environment for one tick. Its methods are
// callable from rule conditions; actions use the same methods plus the
// exported fields.
type RuleEnv struct {
	State   *world.State
	View    *world.View
	Game    *model.GameState
	Params  Params
	Planner production.Policy
	Orders  *Orders
	Budget  *Budget

	log *slog.Logger
}

// NewRuleEnv assembles the environment for one tick with a fresh budget and
// orders buffer.
func NewRuleEnv(s *world.State, v *world.View, gs *model.GameState, p Params, planner production.Policy, log *slog.Logger) RuleEnv {
	return RuleEnv{
		State:   s,
		View:    v,
		Game:    gs,
		Params:  p,
		Planner: planner,
		Orders:  NewOrders(),
		Budget:  NewBudget(v.Resources),
		log:     log,
	}
}

func (e RuleEnv) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return slog.Default()
}

func (e RuleEnv) Tick() int      { return e.View.Tick }
func (e RuleEnv) Resources() int { return e.View.Resources }
func (e RuleEnv) Reserved() int  { return e.Budget.Reserved() }

// Available is the stockpile minus what this tick already committed.
func (e RuleEnv) Available() int { return e.Budget.Available() }

func (e RuleEnv) Surface() int { return e.State.Width * e.State.Height }
func (e RuleEnv) Fog() bool    { return e.Game != nil && e.Game.Fog }

func (e RuleEnv) BaseCount() int      { return len(e.View.Bases) }
func (e RuleEnv) BarracksCount() int  { return len(e.View.Barracks) }
func (e RuleEnv) WorkerCount() int    { return len(e.View.Workers) }
func (e RuleEnv) ArmyCount() int      { return len(e.View.Army) }
func (e RuleEnv) NearPatchCount() int { return len(e.View.NearPatches) }

// Cost returns the cost of the type playing role ("worker", "heavy", ...).
func (e RuleEnv) Cost(role string) int {
	return e.State.Types.ByRole(model.Role(role)).Cost
}

func (e RuleEnv) MostExpensiveCost() int { return e.State.Types.MostExpensive().Cost }
func (e RuleEnv) FastestCost() int       { return e.State.Types.FastestToTrain().Cost }

// NoTraining is true when the last production decision paused the barracks.
func (e RuleEnv) NoTraining() bool { return e.State.NoTraining }

// QuotaLeft is the number of combat units the current quota still asks for.
func (e RuleEnv) QuotaLeft() int { return e.State.Quota.Total() }

// IdleBases are our bases with nothing in progress and no order this tick.
func (e RuleEnv) IdleBases() []model.Unit { return e.unordered(e.View.Bases, true) }

func (e RuleEnv) IdleBaseCount() int { return len(e.IdleBases()) }

// IdleBarracks are the idle barracks not yet given an order this tick.
func (e RuleEnv) IdleBarracks() []model.Unit { return e.unordered(e.View.IdleBarracks, false) }

func (e RuleEnv) IdleBarracksCount() int { return len(e.IdleBarracks()) }

// FreeWorkers are idle workers without an order this tick.
func (e RuleEnv) FreeWorkers() []model.Unit { return e.unordered(e.View.Workers, true) }

func (e RuleEnv) FreeWorkerCount() int { return len(e.FreeWorkers()) }

// IdleArmy are the idle combat units without an order this tick.
func (e RuleEnv) IdleArmy() []model.Unit { return e.unordered(e.View.Army, true) }

func (e RuleEnv) IdleArmyCount() int { return len(e.IdleArmy()) }

func (e RuleEnv) unordered(units []model.Unit, idleOnly bool) []model.Unit {
	var out []model.Unit
	for _, u := range units {
		if idleOnly && !u.Idle() {
			continue
		}
		if e.Orders != nil && e.Orders.Has(u.ID) {
			continue
		}
		out = append(out, u)
	}
	return out
}
