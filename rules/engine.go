package rules

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Engine runs compiled rules against one tick of the world each time it is
// evaluated. Rules fire in priority order; exclusive rules block lower-priority
// rules in the same category.
type Engine struct {
	rules []*Rule
	log   *slog.Logger
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule, log *slog.Logger) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{rules: compiled, log: log}, nil
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Evaluate runs every rule once against env and returns the names of the
// rules that fired. Condition and action errors are logged and skipped so a
// single bad rule never stalls the agent.
func (e *Engine) Evaluate(ctx context.Context, env RuleEnv) []string {
	if env.log == nil {
		env.log = e.log
	}
	if env.Budget == nil {
		env.Budget = NewBudget(env.View.Resources)
	}
	if env.Orders == nil {
		env.Orders = NewOrders()
	}
	pruneAttackTargets(env)

	fired := make(map[string]bool) // category -> exclusive rule already fired
	var names []string
	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}
		if ctx.Err() != nil {
			e.log.Warn("tick abandoned", "tick", env.View.Tick, "error", ctx.Err())
			break
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			e.log.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}

		names = append(names, r.Name)
		e.log.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category)

		if err := r.Action(ctx, env); err != nil {
			e.log.Error("rule action error", "rule", r.Name, "error", err)
		}
		if r.Exclusive {
			fired[r.Category] = true
		}
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
