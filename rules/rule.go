package rules

import (
	"context"

	"github.com/expr-lang/expr/vm"
)

// ActionFunc records intents for the current tick when a rule's condition is true.
type ActionFunc func(ctx context.Context, env RuleEnv) error

// Rule is a condition -> action pair. The engine evaluates rules by priority
// and uses Category + Exclusive so that two rules never drive the same
// buildings in one tick.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
