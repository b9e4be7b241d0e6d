package rules

import "github.com/richoux/microPhantom/model"

// pruneAttackTargets forgets the remembered target of every army unit that
// is no longer on the field.
func pruneAttackTargets(env RuleEnv) {
	if len(env.State.AttackTargets) == 0 {
		return
	}
	alive := unitIDSet(env.View.Army)
	for id := range env.State.AttackTargets {
		if !alive[id] {
			delete(env.State.AttackTargets, id)
		}
	}
}

func unitIDSet(units []model.Unit) map[int]bool {
	s := make(map[int]bool, len(units))
	for _, u := range units {
		s[u.ID] = true
	}
	return s
}
