package rules

import (
	"context"

	"github.com/richoux/microPhantom/model"
)

// ActionTrainWorkers trains one worker from every idle base while the budget
// allows it.
func ActionTrainWorkers(_ context.Context, env RuleEnv) error {
	worker := env.State.Types.ByRole(model.RoleWorker)
	for _, b := range env.IdleBases() {
		if !env.Budget.Reserve(worker.Cost) {
			break
		}
		env.Orders.Train(b, worker)
		env.logger().Debug("train worker", "base", b.ID, "reserved", env.Budget.Reserved())
	}
	return nil
}

// ActionBuildBase sends a worker to rebuild a base near itself. Any worker
// will do when none is idle: without a base nothing else matters.
func ActionBuildBase(_ context.Context, env RuleEnv) error {
	w, ok := firstOf(env.FreeWorkers())
	if !ok {
		w, ok = firstOf(env.View.Workers)
	}
	if !ok || env.Orders.Has(w.ID) {
		return nil
	}
	base := env.State.Types.ByRole(model.RoleBase)
	site, ok := model.SpiralSearch(w.Pos(), env.State.Width, env.State.Height, env.buildable)
	if !ok {
		env.logger().Debug("no room for a base", "worker", w.ID)
		return nil
	}
	if !env.Budget.Reserve(base.Cost) {
		return nil
	}
	env.Orders.Build(w, base, site)
	env.logger().Debug("build base", "worker", w.ID, "x", site.X, "y", site.Y)
	return nil
}

// ActionBuildBarracks sends the idle worker farthest from the existing
// barracks to build a new one. On small maps it builds where it stands.
func ActionBuildBarracks(_ context.Context, env RuleEnv) error {
	w, ok := farthestFrom(env.FreeWorkers(), env.View.Barracks)
	if !ok {
		return nil
	}
	barracks := env.State.Types.ByRole(model.RoleBarracks)
	if !env.Budget.CanAfford(barracks.Cost) {
		return nil
	}

	site := w.Pos()
	if env.Surface() > env.Params.SmallMapSurface {
		site, ok = model.SpiralSearch(w.Pos(), env.State.Width, env.State.Height, env.buildable)
		if !ok {
			env.logger().Debug("no room for barracks", "worker", w.ID)
			return nil
		}
	}
	env.Budget.Reserve(barracks.Cost)
	env.Orders.Build(w, barracks, site)
	env.logger().Debug("build barracks", "worker", w.ID, "x", site.X, "y", site.Y)
	return nil
}

// ActionHarvest keeps every remaining idle worker busy: harvest the nearest
// patch close to a base, else any known patch, else go looking for one.
func ActionHarvest(_ context.Context, env RuleEnv) error {
	for _, w := range env.FreeWorkers() {
		env.harvestOrSearch(w)
	}
	return nil
}

func (e RuleEnv) harvestOrSearch(w model.Unit) {
	patch, _, ok := nearest(w.Pos(), e.View.NearPatches)
	if !ok {
		patch, _, ok = nearest(w.Pos(), e.View.Patches)
	}
	if !ok {
		e.searchResources(w)
		return
	}

	base, _, ok := nearest(w.Pos(), e.View.Bases)
	if !ok {
		return
	}
	// Harvest orders on a patch out of sight are rejected by the host, so an
	// empty-handed worker first walks there.
	if e.Fog() && w.Resources == 0 && !e.Game.Observable(patch.X, patch.Y) {
		e.Orders.Move(w, patch.Pos())
		return
	}
	e.Orders.Harvest(w, patch, base)
}

func (e RuleEnv) searchResources(w model.Unit) {
	if e.State.Heat == nil {
		return
	}
	sight := e.typeOf(w).SightRadius
	if target, ok := e.State.Heat.SearchTarget(w.Pos(), sight, e.State.Home, e.Tick()); ok {
		e.Orders.Move(w, target)
		e.logger().Debug("search resources", "worker", w.ID, "x", target.X, "y", target.Y)
	}
}

// buildable reports whether a building may cover p: no wall, no building or
// patch, no site planned this tick. Mobile units step aside.
func (e RuleEnv) buildable(p model.Point) bool {
	if e.State.Terrain != nil && e.State.Terrain.IsWall(p.X, p.Y) {
		return false
	}
	if e.Orders.Planned(p) {
		return false
	}
	if u, ok := e.View.UnitAt(p); ok {
		return e.typeOf(u).CanMove
	}
	return true
}

func firstOf(units []model.Unit) (model.Unit, bool) {
	if len(units) == 0 {
		return model.Unit{}, false
	}
	return units[0], true
}
