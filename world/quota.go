package world

import "github.com/richoux/microPhantom/model"

// Quota is the number of units of each combat type still to be trained
// before the next production decision.
type Quota struct {
	Heavy  int
	Light  int
	Ranged int
}

// Next returns the combat role with the highest remaining quota. Ties go to
// light, then ranged, then heavy. It reports false once nothing is left.
func (q Quota) Next() (model.Role, bool) {
	switch {
	case q.Light <= 0 && q.Ranged <= 0 && q.Heavy <= 0:
		return "", false
	case q.Light >= q.Ranged && q.Light >= q.Heavy:
		return model.RoleLight, true
	case q.Ranged >= q.Heavy:
		return model.RoleRanged, true
	default:
		return model.RoleHeavy, true
	}
}

// Take decrements the quota of role r.
func (q *Quota) Take(r model.Role) {
	switch r {
	case model.RoleLight:
		q.Light--
	case model.RoleRanged:
		q.Ranged--
	case model.RoleHeavy:
		q.Heavy--
	}
}

func (q Quota) Total() int { return q.Heavy + q.Light + q.Ranged }
