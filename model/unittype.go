package model

import (
	"fmt"
	"strings"
)

// Role is the part a unit type plays in the agent's decisions.
type Role string

const (
	RoleBase     Role = "base"
	RoleBarracks Role = "barracks"
	RoleWorker   Role = "worker"
	RoleLight    Role = "light"
	RoleHeavy    Role = "heavy"
	RoleRanged   Role = "ranged"
	RoleResource Role = "resource"
)

// UnitType holds the fixed ruleset stats of one unit type.
type UnitType struct {
	Name          string `yaml:"name" json:"name"`
	Role          Role   `yaml:"role" json:"role"`
	Cost          int    `yaml:"cost" json:"cost"`
	HP            int    `yaml:"hp" json:"hp"`
	ProduceTime   int    `yaml:"produce_time" json:"produceTime"`
	MoveTime      int    `yaml:"move_time" json:"moveTime"`
	HarvestTime   int    `yaml:"harvest_time" json:"harvestTime"`
	ReturnTime    int    `yaml:"return_time" json:"returnTime"`
	HarvestAmount int    `yaml:"harvest_amount" json:"harvestAmount"`
	SightRadius   int    `yaml:"sight_radius" json:"sightRadius"`
	AttackRange   int    `yaml:"attack_range" json:"attackRange"`
	CanMove       bool   `yaml:"can_move" json:"canMove"`
	CanAttack     bool   `yaml:"can_attack" json:"canAttack"`
	CanHarvest    bool   `yaml:"can_harvest" json:"canHarvest"`
	IsResource    bool   `yaml:"is_resource" json:"isResource"`
	IsStockpile   bool   `yaml:"is_stockpile" json:"isStockpile"`
}

// UnitTypeTable resolves unit type names and roles for one ruleset. It is
// loaded once and never mutated afterwards.
type UnitTypeTable struct {
	byName map[string]UnitType
	byRole map[Role]UnitType

	mostExpensive UnitType
	cheapest      UnitType
	fastest       UnitType
}

// requiredRoles must each be played by exactly one type.
var requiredRoles = []Role{RoleBase, RoleBarracks, RoleWorker, RoleLight, RoleHeavy, RoleRanged, RoleResource}

// NewUnitTypeTable indexes types by name and role and precomputes the combat
// type extremes used by the economy and production policies.
func NewUnitTypeTable(types []UnitType) (*UnitTypeTable, error) {
	t := &UnitTypeTable{
		byName: make(map[string]UnitType, len(types)),
		byRole: make(map[Role]UnitType, len(types)),
	}
	for _, ut := range types {
		key := strings.ToLower(ut.Name)
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("duplicate unit type %q", ut.Name)
		}
		t.byName[key] = ut
		if ut.Role == "" {
			continue
		}
		if prev, dup := t.byRole[ut.Role]; dup {
			return nil, fmt.Errorf("role %q played by both %q and %q", ut.Role, prev.Name, ut.Name)
		}
		t.byRole[ut.Role] = ut
	}
	for _, r := range requiredRoles {
		if _, ok := t.byRole[r]; !ok {
			return nil, fmt.Errorf("no unit type for role %q", r)
		}
	}

	heavy, light, ranged := t.byRole[RoleHeavy], t.byRole[RoleLight], t.byRole[RoleRanged]

	// Tie order: most expensive prefers heavy, then ranged; cheapest and
	// fastest prefer light, then ranged.
	t.mostExpensive = heavy
	for _, ut := range []UnitType{ranged, light} {
		if ut.Cost > t.mostExpensive.Cost {
			t.mostExpensive = ut
		}
	}
	t.cheapest = light
	for _, ut := range []UnitType{ranged, heavy} {
		if ut.Cost < t.cheapest.Cost {
			t.cheapest = ut
		}
	}
	t.fastest = light
	for _, ut := range []UnitType{ranged, heavy} {
		if ut.ProduceTime < t.fastest.ProduceTime {
			t.fastest = ut
		}
	}
	return t, nil
}

// Lookup returns the type with the given name (case-insensitive).
func (t *UnitTypeTable) Lookup(name string) (UnitType, bool) {
	ut, ok := t.byName[strings.ToLower(name)]
	return ut, ok
}

// ByRole returns the type playing role r. Every required role is present.
func (t *UnitTypeTable) ByRole(r Role) UnitType { return t.byRole[r] }

// RoleOf returns the role of the named type, or "" for unknown types.
func (t *UnitTypeTable) RoleOf(name string) Role {
	return t.byName[strings.ToLower(name)].Role
}

// Cost returns the cost of the named type, or 0 for unknown types.
func (t *UnitTypeTable) Cost(name string) int {
	return t.byName[strings.ToLower(name)].Cost
}

func (t *UnitTypeTable) MostExpensive() UnitType  { return t.mostExpensive }
func (t *UnitTypeTable) Cheapest() UnitType       { return t.cheapest }
func (t *UnitTypeTable) FastestToTrain() UnitType { return t.fastest }

// DefaultUnitTypes is the standard microRTS ruleset.
func DefaultUnitTypes() []UnitType {
	return []UnitType{
		{Name: "Resource", Role: RoleResource, IsResource: true},
		{Name: "Base", Role: RoleBase, Cost: 10, HP: 10, ProduceTime: 250, SightRadius: 5, IsStockpile: true},
		{Name: "Barracks", Role: RoleBarracks, Cost: 5, HP: 4, ProduceTime: 200, SightRadius: 3},
		{Name: "Worker", Role: RoleWorker, Cost: 1, HP: 1, ProduceTime: 50, MoveTime: 10, HarvestTime: 20,
			ReturnTime: 10, HarvestAmount: 1, SightRadius: 3, AttackRange: 1, CanMove: true, CanAttack: true, CanHarvest: true},
		{Name: "Light", Role: RoleLight, Cost: 2, HP: 4, ProduceTime: 80, MoveTime: 8, SightRadius: 2,
			AttackRange: 1, CanMove: true, CanAttack: true},
		{Name: "Heavy", Role: RoleHeavy, Cost: 2, HP: 4, ProduceTime: 120, MoveTime: 12, SightRadius: 2,
			AttackRange: 1, CanMove: true, CanAttack: true},
		{Name: "Ranged", Role: RoleRanged, Cost: 2, HP: 1, ProduceTime: 100, MoveTime: 10, SightRadius: 3,
			AttackRange: 3, CanMove: true, CanAttack: true},
	}
}

// MustDefaultTable builds the table for DefaultUnitTypes.
func MustDefaultTable() *UnitTypeTable {
	t, err := NewUnitTypeTable(DefaultUnitTypes())
	if err != nil {
		panic(err)
	}
	return t
}
