package ipc

// Command type constants. These must stay in sync with the host's action translator.
const (
	TypeMove    = "move"
	TypeAttack  = "attack"
	TypeHarvest = "harvest"
	TypeTrain   = "train"
	TypeBuild   = "build"
)

type MoveCommand struct {
	UnitID int `json:"unit_id"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// AttackCommand targets a unit; X and Y are its cell when the order was given.
type AttackCommand struct {
	UnitID   int `json:"unit_id"`
	TargetID int `json:"target_id"`
	X        int `json:"x"`
	Y        int `json:"y"`
}

type HarvestCommand struct {
	UnitID     int `json:"unit_id"`
	ResourceID int `json:"resource_id"`
	BaseID     int `json:"base_id"`
}

type TrainCommand struct {
	UnitID   int    `json:"unit_id"`
	UnitType string `json:"unit_type"`
}

type BuildCommand struct {
	UnitID   int    `json:"unit_id"`
	UnitType string `json:"unit_type"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}
