package rules

import (
	"errors"
	"fmt"

	"github.com/richoux/microPhantom/ipc"
	"github.com/richoux/microPhantom/model"
)

// Sender delivers one command to the host. *ipc.Connection satisfies it.
type Sender interface {
	Send(msgType string, data any) error
}

// Intent is one order decided during a tick, ready to be sent to the host.
type Intent struct {
	Type    string // one of the ipc command types
	Command any    // the matching ipc command payload
	UnitID  int
}

// Orders collects the intents of one tick. The first intent recorded for a
// unit wins; later ones are dropped.
type Orders struct {
	intents []Intent
	units   map[int]bool
	sites   map[model.Point]bool
}

func NewOrders() *Orders {
	return &Orders{units: make(map[int]bool), sites: make(map[model.Point]bool)}
}

// Has reports whether unitID already received an intent this tick.
func (o *Orders) Has(unitID int) bool { return o.units[unitID] }

// Len is the number of recorded intents.
func (o *Orders) Len() int { return len(o.intents) }

// Intents returns the recorded intents in decision order.
func (o *Orders) Intents() []Intent { return o.intents }

// Planned reports whether p lies in the 3x3 footprint of a building ordered this tick.
func (o *Orders) Planned(p model.Point) bool { return o.sites[p] }

func (o *Orders) add(unitID int, msgType string, cmd any) bool {
	if o.units[unitID] {
		return false
	}
	o.units[unitID] = true
	o.intents = append(o.intents, Intent{Type: msgType, Command: cmd, UnitID: unitID})
	return true
}

func (o *Orders) Move(u model.Unit, to model.Point) bool {
	return o.add(u.ID, ipc.TypeMove, ipc.MoveCommand{UnitID: u.ID, X: to.X, Y: to.Y})
}

func (o *Orders) Attack(u, target model.Unit) bool {
	return o.add(u.ID, ipc.TypeAttack, ipc.AttackCommand{UnitID: u.ID, TargetID: target.ID, X: target.X, Y: target.Y})
}

func (o *Orders) Harvest(u, patch, base model.Unit) bool {
	return o.add(u.ID, ipc.TypeHarvest, ipc.HarvestCommand{UnitID: u.ID, ResourceID: patch.ID, BaseID: base.ID})
}

func (o *Orders) Train(building model.Unit, ut model.UnitType) bool {
	return o.add(building.ID, ipc.TypeTrain, ipc.TrainCommand{UnitID: building.ID, UnitType: ut.Name})
}

func (o *Orders) Build(worker model.Unit, ut model.UnitType, at model.Point) bool {
	if !o.add(worker.ID, ipc.TypeBuild, ipc.BuildCommand{UnitID: worker.ID, UnitType: ut.Name, X: at.X, Y: at.Y}) {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			o.sites[at.Add(dx, dy)] = true
		}
	}
	return true
}

// Flush sends every intent in order. A failed send does not stop the
// others; all failures are returned together.
func (o *Orders) Flush(s Sender) error {
	var errs []error
	for _, in := range o.intents {
		if err := s.Send(in.Type, in.Command); err != nil {
			errs = append(errs, fmt.Errorf("send %s for unit %d: %w", in.Type, in.UnitID, err))
		}
	}
	return errors.Join(errs...)
}
