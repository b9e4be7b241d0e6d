package rules

import (
	"strings"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.WorkerCap != 4 || p.SmallMapSurface != 144 || p.RushTickLimit != 400 || p.RushArmyLimit != 2 {
		t.Errorf("DefaultParams() = %+v", p)
	}
	th := p.Thresholds()
	if th.EarlyReveal != 12 || th.LateReveal != 1 || th.PhaseTick != 2000 {
		t.Errorf("Thresholds() = %+v", th)
	}
}

func TestValidate(t *testing.T) {
	p := Params{WorkerCap: 0, RushArmyLimit: -3, EarlyFogReveal: 5, LateFogReveal: 9, FogPhaseTick: -1}
	p.Validate()

	checks := []struct {
		name      string
		got, want int
	}{
		{"worker cap", p.WorkerCap, 1},
		{"rush army", p.RushArmyLimit, 0},
		{"late reveal", p.LateFogReveal, 5},
		{"phase tick", p.FogPhaseTick, 0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestCompilePlanInterpolates(t *testing.T) {
	p := DefaultParams()
	p.WorkerCap = 7
	p.SmallMapSurface = 100
	for _, r := range CompilePlan(p) {
		switch r.Name {
		case "train-worker":
			if !strings.Contains(r.ConditionSrc, "< 7") {
				t.Errorf("train-worker ignores the worker cap: %s", r.ConditionSrc)
			}
		case "rush-fastest", "build-barracks":
			if !strings.Contains(r.ConditionSrc, "100") {
				t.Errorf("%s ignores the small map surface: %s", r.Name, r.ConditionSrc)
			}
		}
	}
}
