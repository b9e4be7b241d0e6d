package agent

import (
	"fmt"

	"github.com/richoux/microPhantom/world"
)

// EventKind identifies a turning point of the game worth a log line.
type EventKind string

const (
	EventBuildingLost      EventKind = "building_lost"
	EventArmyDevastated    EventKind = "army_devastated"
	EventEnemyBaseSighted  EventKind = "enemy_base_sighted"
	EventFirstContact      EventKind = "first_contact"
	EventEconomyCrisis     EventKind = "economy_crisis"
	EventProductionPaused  EventKind = "production_paused"
	EventProductionResumed EventKind = "production_resumed"
)

// Event is a significant change detected by diffing consecutive ticks.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

// armyFloor is the smallest army whose collapse is worth reporting.
const armyFloor = 4

// snapshot captures the diffable facts of one tick.
type snapshot struct {
	buildingIDs map[int]string // id -> type for our bases and barracks
	army        int
	workers     int
	enemyBases  int
	enemiesSeen bool
	noTraining  bool
}

func takeSnapshot(s *world.State, v *world.View) snapshot {
	snap := snapshot{
		buildingIDs: make(map[int]string, len(v.Bases)+len(v.Barracks)),
		army:        len(v.Army),
		workers:     len(v.Workers),
		enemyBases:  len(v.EnemyBases),
		enemiesSeen: len(v.Enemies) > 0,
		noTraining:  s.NoTraining,
	}
	for _, b := range v.Bases {
		snap.buildingIDs[b.ID] = b.Type
	}
	for _, b := range v.Barracks {
		snap.buildingIDs[b.ID] = b.Type
	}
	return snap
}

// detectEvents compares cur against the previous tick. It returns nil on
// the first tick.
func detectEvents(tick int, cur snapshot, prev *snapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	for id, typ := range prev.buildingIDs {
		if _, ok := cur.buildingIDs[id]; !ok {
			events = append(events, Event{
				Kind:   EventBuildingLost,
				Tick:   tick,
				Detail: fmt.Sprintf("lost %s (id %d)", typ, id),
			})
			break // one event per tick is enough
		}
	}

	if prev.army >= armyFloor && cur.army < prev.army {
		if lost := prev.army - cur.army; 2*lost > prev.army {
			events = append(events, Event{
				Kind:   EventArmyDevastated,
				Tick:   tick,
				Detail: fmt.Sprintf("army %d -> %d", prev.army, cur.army),
			})
		}
	}

	if prev.enemyBases == 0 && cur.enemyBases > 0 {
		events = append(events, Event{Kind: EventEnemyBaseSighted, Tick: tick, Detail: "enemy base in sight"})
	}

	if !prev.enemiesSeen && cur.enemiesSeen {
		events = append(events, Event{Kind: EventFirstContact, Tick: tick, Detail: "enemies in sight"})
	}

	if prev.workers > 0 && cur.workers == 0 {
		events = append(events, Event{Kind: EventEconomyCrisis, Tick: tick, Detail: "all workers lost"})
	}

	switch {
	case !prev.noTraining && cur.noTraining:
		events = append(events, Event{Kind: EventProductionPaused, Tick: tick, Detail: "no production quota"})
	case prev.noTraining && !cur.noTraining:
		events = append(events, Event{Kind: EventProductionResumed, Tick: tick, Detail: "production quota restored"})
	}
	return events
}
