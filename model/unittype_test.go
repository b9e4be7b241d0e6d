package model

import "testing"

func TestDefaultTableRoles(t *testing.T) {
	table := MustDefaultTable()

	tests := []struct {
		name string
		want Role
	}{
		{"Base", RoleBase},
		{"barracks", RoleBarracks},
		{"WORKER", RoleWorker},
		{"Ranged", RoleRanged},
		{"Resource", RoleResource},
		{"Tank", ""},
	}
	for _, tc := range tests {
		if got := table.RoleOf(tc.name); got != tc.want {
			t.Errorf("RoleOf(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
	if table.Cost("Base") != 10 {
		t.Errorf("Cost(Base) = %d, want 10", table.Cost("Base"))
	}
}

func TestUnitTypeTableExtremes(t *testing.T) {
	tests := []struct {
		name                 string
		heavy, light, ranged UnitType
		wantExpensive        Role
		wantCheapest         Role
		wantFastest          Role
	}{
		{
			name:          "all equal prefers heavy for expensive and light otherwise",
			heavy:         UnitType{Cost: 2, ProduceTime: 100},
			light:         UnitType{Cost: 2, ProduceTime: 100},
			ranged:        UnitType{Cost: 2, ProduceTime: 100},
			wantExpensive: RoleHeavy,
			wantCheapest:  RoleLight,
			wantFastest:   RoleLight,
		},
		{
			name:          "distinct values",
			heavy:         UnitType{Cost: 3, ProduceTime: 120},
			light:         UnitType{Cost: 2, ProduceTime: 80},
			ranged:        UnitType{Cost: 1, ProduceTime: 100},
			wantExpensive: RoleHeavy,
			wantCheapest:  RoleRanged,
			wantFastest:   RoleLight,
		},
		{
			name:          "ranged and light tie above heavy",
			heavy:         UnitType{Cost: 1, ProduceTime: 50},
			light:         UnitType{Cost: 4, ProduceTime: 90},
			ranged:        UnitType{Cost: 4, ProduceTime: 50},
			wantExpensive: RoleRanged,
			wantCheapest:  RoleHeavy,
			wantFastest:   RoleRanged,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			types := DefaultUnitTypes()
			for i := range types {
				switch types[i].Role {
				case RoleHeavy:
					types[i].Cost, types[i].ProduceTime = tc.heavy.Cost, tc.heavy.ProduceTime
				case RoleLight:
					types[i].Cost, types[i].ProduceTime = tc.light.Cost, tc.light.ProduceTime
				case RoleRanged:
					types[i].Cost, types[i].ProduceTime = tc.ranged.Cost, tc.ranged.ProduceTime
				}
			}
			table, err := NewUnitTypeTable(types)
			if err != nil {
				t.Fatalf("NewUnitTypeTable: %v", err)
			}
			if got := table.MostExpensive().Role; got != tc.wantExpensive {
				t.Errorf("MostExpensive = %s, want %s", got, tc.wantExpensive)
			}
			if got := table.Cheapest().Role; got != tc.wantCheapest {
				t.Errorf("Cheapest = %s, want %s", got, tc.wantCheapest)
			}
			if got := table.FastestToTrain().Role; got != tc.wantFastest {
				t.Errorf("FastestToTrain = %s, want %s", got, tc.wantFastest)
			}
		})
	}
}

func TestNewUnitTypeTableRejectsBadRulesets(t *testing.T) {
	types := DefaultUnitTypes()
	if _, err := NewUnitTypeTable(types[1:]); err == nil {
		t.Error("expected error when the resource role is missing")
	}

	dup := append(DefaultUnitTypes(), UnitType{Name: "base"})
	if _, err := NewUnitTypeTable(dup); err == nil {
		t.Error("expected error for duplicate type name")
	}

	twoWorkers := append(DefaultUnitTypes(), UnitType{Name: "Peon", Role: RoleWorker})
	if _, err := NewUnitTypeTable(twoWorkers); err == nil {
		t.Error("expected error when two types play the worker role")
	}
}
