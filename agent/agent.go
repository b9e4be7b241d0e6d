// Package agent runs the per-session decision loop: it turns the host's
// hello and game state messages into rule engine ticks and sends back the
// resulting intents.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/richoux/microPhantom/ipc"
	"github.com/richoux/microPhantom/model"
	"github.com/richoux/microPhantom/production"
	"github.com/richoux/microPhantom/rules"
	"github.com/richoux/microPhantom/world"
)

// ErrNoHello is returned for game states received before the handshake.
var ErrNoHello = errors.New("game state before hello")

// Options configure an agent. Zero values fall back to defaults.
type Options struct {
	Params    rules.Params
	Policy    production.Policy
	UnitTypes *model.UnitTypeTable
	// TickBudget bounds a whole tick, solver round trip included.
	TickBudget time.Duration
	Logger     *slog.Logger
	// Session identifies the connection in logs; a fresh one is drawn when zero.
	Session uuid.UUID
}

// Agent owns the decision-making for a single player session.
type Agent struct {
	Session uuid.UUID

	out    rules.Sender
	engine *rules.Engine
	params rules.Params
	policy production.Policy
	types  *model.UnitTypeTable
	budget time.Duration
	log    *slog.Logger
	state  *world.State
	prev   *snapshot
}

func New(out rules.Sender, opts Options) (*Agent, error) {
	session := opts.Session
	if session == uuid.Nil {
		session = uuid.New()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("session", session.String())

	params := opts.Params
	if params == (rules.Params{}) {
		params = rules.DefaultParams()
	}
	params.Validate()

	engine, err := rules.NewEngine(rules.CompilePlan(params), log)
	if err != nil {
		return nil, fmt.Errorf("compile rule plan: %w", err)
	}
	types := opts.UnitTypes
	if types == nil {
		types = model.MustDefaultTable()
	}
	return &Agent{
		Session: session,
		out:     out,
		engine:  engine,
		params:  params,
		policy:  opts.Policy,
		types:   types,
		budget:  opts.TickBudget,
		log:     log,
	}, nil
}

// State is the belief state of the current game, nil before the handshake.
func (a *Agent) State() *world.State { return a.state }

// HandleHello starts a new game: it resets the belief state for the
// announced player, map and ruleset.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	types := a.types
	if len(hello.UnitTypes) > 0 {
		t, err := model.NewUnitTypeTable(hello.UnitTypes)
		if err != nil {
			return nil, fmt.Errorf("hello unit types: %w", err)
		}
		types = t
	}

	s := world.NewState(hello.Player, types)
	s.Width, s.Height = hello.MapWidth, hello.MapHeight
	s.Thresholds = a.params.Thresholds()
	if hello.Terrain != nil {
		s.Terrain = hello.Terrain.ToGrid()
	}
	a.state = s
	a.prev = nil

	walls := 0
	if s.Terrain != nil {
		walls = s.Terrain.WallCount()
	}
	a.log.Info("player identified",
		"player", hello.Player, "width", hello.MapWidth, "height", hello.MapHeight,
		"walls", walls, "customTypes", len(hello.UnitTypes) > 0)

	return ack()
}

// HandleGameState runs one decision tick and sends its intents before the
// ack. A tick never fails towards the host: at worst it sends no intents.
func (a *Agent) HandleGameState(env ipc.Envelope) (*ipc.Envelope, error) {
	if a.state == nil {
		return nil, ErrNoHello
	}
	var gs model.GameState
	if err := json.Unmarshal(env.Data, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal game state: %w", err)
	}
	if gs.Player != a.state.Self {
		a.log.Warn("game state for another player", "player", gs.Player, "self", a.state.Self)
	}

	ctx := context.Background()
	if a.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.budget)
		defer cancel()
	}

	start := time.Now()
	orders, view := a.Tick(ctx, &gs)
	if err := orders.Flush(a.out); err != nil {
		a.log.Error("failed to send intents", "tick", gs.Tick, "error", err)
	}

	a.log.Debug("tick",
		"tick", gs.Tick,
		"resources", gs.Resources,
		"workers", len(view.Workers),
		"army", len(view.Army),
		"enemies", len(view.Enemies),
		"intents", orders.Len(),
		"elapsed", time.Since(start),
	)
	return ack()
}

// Tick folds gs into the belief state and evaluates the rule plan.
func (a *Agent) Tick(ctx context.Context, gs *model.GameState) (*rules.Orders, *world.View) {
	v := a.state.Observe(gs)
	env := rules.NewRuleEnv(a.state, v, gs, a.params, a.policy, a.log)
	fired := a.engine.Evaluate(ctx, env)
	if len(fired) > 0 {
		a.log.Debug("rules fired", "tick", gs.Tick, "rules", fired)
	}

	cur := takeSnapshot(a.state, v)
	for _, e := range detectEvents(gs.Tick, cur, a.prev) {
		a.log.Info("game event", "kind", e.Kind, "tick", e.Tick, "detail", e.Detail)
	}
	a.prev = &cur
	return env.Orders, v
}

func ack() (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
