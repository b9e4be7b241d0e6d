package rules

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/richoux/microPhantom/ipc"
	"github.com/richoux/microPhantom/model"
	"github.com/richoux/microPhantom/production"
	"github.com/richoux/microPhantom/world"
)

func TestTrainWorker(t *testing.T) {
	nearPatches := []model.Unit{patch(20, 0, 0), patch(21, 1, 0), patch(22, 2, 0), patch(23, 3, 0), patch(24, 4, 0)}
	tests := []struct {
		name      string
		resources int
		units     []model.Unit
		want      bool
	}{
		{"no workers", 1, []model.Unit{unit(1, me, "Base", 2, 2)}, true},
		{"no workers and broke", 0, []model.Unit{unit(1, me, "Base", 2, 2)}, false},
		{"fewer workers than patches", 1, append([]model.Unit{
			unit(1, me, "Base", 2, 2), unit(2, me, "Worker", 5, 5),
		}, nearPatches...), true},
		{"as many workers as patches", 1, []model.Unit{
			unit(1, me, "Base", 2, 2), unit(2, me, "Worker", 5, 5), patch(20, 0, 0),
		}, false},
		{"cap reached", 10, append([]model.Unit{
			unit(1, me, "Base", 2, 2),
			unit(2, me, "Worker", 5, 5), unit(3, me, "Worker", 6, 5),
			unit(4, me, "Worker", 5, 6), unit(5, me, "Worker", 6, 6),
		}, nearPatches...), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, _ := runTick(t, game(8, 8, tc.resources, tc.units...), nil)
			in, ok := intentFor(env, 1)
			got := ok && in.Type == ipc.TypeTrain && in.Command.(ipc.TrainCommand).UnitType == "Worker"
			if got != tc.want {
				t.Errorf("base trained worker = %v, want %v (intent %+v)", got, tc.want, in)
			}
		})
	}
}

func TestSiblingBasesShareBudget(t *testing.T) {
	env, _ := runTick(t, game(16, 16, 1, unit(1, me, "Base", 2, 2), unit(2, me, "Base", 10, 10)), nil)
	if env.Orders.Len() != 1 {
		t.Fatalf("intents = %+v, want exactly one worker", env.Orders.Intents())
	}
	if env.Budget.Reserved() != 1 {
		t.Errorf("reserved = %d, want 1", env.Budget.Reserved())
	}
}

func TestBuildBase(t *testing.T) {
	tests := []struct {
		name  string
		units []model.Unit
		want  model.Point
	}{
		{"in place", []model.Unit{unit(2, me, "Worker", 4, 4)}, model.Point{X: 4, Y: 4}},
		{"around a patch", []model.Unit{unit(2, me, "Worker", 4, 4), patch(20, 4, 5)}, model.Point{X: 3, Y: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, _ := runTick(t, game(8, 8, 10, tc.units...), nil)
			in, ok := intentFor(env, 2)
			if !ok || in.Type != ipc.TypeBuild {
				t.Fatalf("worker intent = %+v, want build", in)
			}
			cmd := in.Command.(ipc.BuildCommand)
			if cmd.UnitType != "Base" || (model.Point{X: cmd.X, Y: cmd.Y}) != tc.want {
				t.Errorf("build = %+v, want Base at %v", cmd, tc.want)
			}
			if env.Budget.Reserved() != 10 {
				t.Errorf("reserved = %d, want 10", env.Budget.Reserved())
			}
		})
	}
}

func TestBuildBaseTakesBusyWorker(t *testing.T) {
	w := unit(2, me, "Worker", 4, 4)
	w.Action = &model.UnitAction{Type: "move", X: 6, Y: 6}
	env, _ := runTick(t, game(8, 8, 10, w), nil)
	if in, ok := intentFor(env, 2); !ok || in.Type != ipc.TypeBuild {
		t.Errorf("busy worker intent = %+v, want build", in)
	}
}

func TestBuildBarracksInPlaceOnSmallMap(t *testing.T) {
	env, _ := runTick(t, game(8, 8, 5, unit(1, me, "Base", 2, 2), unit(2, me, "Worker", 5, 5)), nil)
	in, ok := intentFor(env, 2)
	if !ok || in.Type != ipc.TypeBuild {
		t.Fatalf("worker intent = %+v, want build", in)
	}
	if cmd := in.Command.(ipc.BuildCommand); cmd.UnitType != "Barracks" || cmd.X != 5 || cmd.Y != 5 {
		t.Errorf("build = %+v, want Barracks at (5,5)", cmd)
	}
}

func TestSecondBarracksOnLargeMap(t *testing.T) {
	gs := game(16, 16, 7,
		unit(1, me, "Base", 2, 2),
		unit(2, me, "Worker", 3, 3),
		unit(3, me, "Worker", 12, 12),
		unit(4, me, "Barracks", 8, 9),
		patch(20, 0, 5),
	)
	env, _ := runTick(t, gs, nil)

	in, ok := intentFor(env, 2)
	if !ok || in.Type != ipc.TypeBuild {
		t.Fatalf("farthest worker intent = %+v, want build", in)
	}
	if cmd := in.Command.(ipc.BuildCommand); cmd.X != 4 || cmd.Y != 3 {
		t.Errorf("barracks site = (%d,%d), want (4,3)", cmd.X, cmd.Y)
	}
	if in, ok := intentFor(env, 3); !ok || in.Type != ipc.TypeHarvest {
		t.Errorf("other worker intent = %+v, want harvest", in)
	}
}

func TestSecondBarracksNeedsSpareResources(t *testing.T) {
	gs := game(16, 16, 6,
		unit(1, me, "Base", 2, 2),
		unit(2, me, "Worker", 3, 3),
		unit(4, me, "Barracks", 8, 9),
		patch(20, 0, 5),
	)
	env, fired := runTick(t, gs, nil)
	for _, name := range fired {
		if name == "build-barracks" {
			t.Fatal("second barracks without a spare most-expensive unit's cost")
		}
	}
	if in, _ := intentFor(env, 2); in.Type != ipc.TypeHarvest {
		t.Errorf("worker intent = %+v, want harvest", in)
	}
}

func TestHarvest(t *testing.T) {
	tests := []struct {
		name      string
		units     []model.Unit
		wantPatch int // 0 means no intent
	}{
		{"near patch first", []model.Unit{
			unit(1, me, "Base", 2, 2), unit(2, me, "Worker", 14, 13), patch(20, 0, 0), patch(21, 15, 15),
		}, 20},
		{"any known patch", []model.Unit{
			unit(1, me, "Base", 2, 2), unit(2, me, "Worker", 5, 5), patch(21, 15, 15),
		}, 21},
		{"no base to return to", []model.Unit{
			unit(2, me, "Worker", 5, 5), patch(21, 15, 15),
		}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, _ := runTick(t, game(16, 16, 0, tc.units...), nil)
			in, ok := intentFor(env, 2)
			if tc.wantPatch == 0 {
				if ok {
					t.Errorf("worker intent = %+v, want none", in)
				}
				return
			}
			if !ok || in.Type != ipc.TypeHarvest {
				t.Fatalf("worker intent = %+v, want harvest", in)
			}
			if cmd := in.Command.(ipc.HarvestCommand); cmd.ResourceID != tc.wantPatch || cmd.BaseID != 1 {
				t.Errorf("harvest = %+v, want patch %d to base 1", cmd, tc.wantPatch)
			}
		})
	}
}

// Under fog a worker with empty hands walks to a remembered patch it cannot
// see; one carrying resources is sent to harvest directly.
func TestHarvestRememberedPatchUnderFog(t *testing.T) {
	tests := []struct {
		name  string
		cargo int
		want  string
	}{
		{"empty handed", 0, ipc.TypeMove},
		{"carrying", 1, ipc.TypeHarvest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := world.NewState(me, types)
			first := game(8, 8, 0, unit(1, me, "Base", 2, 2), unit(2, me, "Worker", 6, 6), patch(20, 0, 0))
			first.Fog = true
			first.Visible = make([]bool, 64)
			for i := range first.Visible {
				first.Visible[i] = true
			}
			runTickWith(t, s, first, nil)

			w := unit(2, me, "Worker", 6, 6)
			w.Resources = tc.cargo
			second := game(8, 8, 0, unit(1, me, "Base", 2, 2), w)
			second.Tick = 2
			second.Fog = true
			second.Visible = make([]bool, 64)
			for y := 4; y < 8; y++ {
				for x := 4; x < 8; x++ {
					second.Visible[y*8+x] = true
				}
			}
			env, _ := runTickWith(t, s, second, nil)

			in, ok := intentFor(env, 2)
			if !ok || in.Type != tc.want {
				t.Errorf("worker intent = %+v, want %s", in, tc.want)
			}
		})
	}
}

// Whatever the mix of buildings, workers and quota, the intents of one tick
// never commit more than the stockpile.
func TestReservationNeverExceedsStockpile(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		resources := rapid.IntRange(0, 30).Draw(t, "resources")
		bases := rapid.IntRange(0, 3).Draw(t, "bases")
		barracks := rapid.IntRange(0, 4).Draw(t, "barracks")
		workers := rapid.IntRange(0, 4).Draw(t, "workers")
		side := rapid.SampledFrom([]int{8, 16}).Draw(t, "side")
		q := world.Quota{
			Heavy:  rapid.IntRange(0, 3).Draw(t, "heavy"),
			Light:  rapid.IntRange(0, 3).Draw(t, "light"),
			Ranged: rapid.IntRange(0, 3).Draw(t, "ranged"),
		}

		var units []model.Unit
		id := 1
		for i := range bases {
			units = append(units, unit(id, me, "Base", 1+2*i, 1))
			id++
		}
		for i := range barracks {
			units = append(units, unit(id, me, "Barracks", 1+i, 4))
			id++
		}
		for i := range workers {
			units = append(units, unit(id, me, "Worker", i, side-1))
			id++
		}
		units = append(units, patch(id, 0, 2), patch(id+1, side-1, 0))

		gs := game(side, side, resources, units...)
		gs.Tick = rapid.IntRange(1, 1000).Draw(t, "tick")

		s := world.NewState(me, types)
		eng, err := NewEngine(DefaultPlan(), nil)
		if err != nil {
			t.Fatal(err)
		}
		v := s.Observe(gs)
		env := NewRuleEnv(s, v, gs, DefaultParams(), &fixedPolicy{d: production.Decision{Quota: q}}, nil)
		eng.Evaluate(context.Background(), env)

		committed := 0
		for _, in := range env.Orders.Intents() {
			switch cmd := in.Command.(type) {
			case ipc.TrainCommand:
				committed += types.Cost(cmd.UnitType)
			case ipc.BuildCommand:
				committed += types.Cost(cmd.UnitType)
			}
		}
		if committed > resources {
			t.Fatalf("committed %d with %d resources: %+v", committed, resources, env.Orders.Intents())
		}
		if committed != env.Budget.Reserved() {
			t.Fatalf("committed %d but reserved %d", committed, env.Budget.Reserved())
		}
	})
}
