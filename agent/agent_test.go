package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/richoux/microPhantom/ipc"
	"github.com/richoux/microPhantom/model"
	"github.com/richoux/microPhantom/production"
	"github.com/richoux/microPhantom/solver"
)

type recorder struct {
	types []string
	data  []any
}

func (r *recorder) Send(msgType string, data any) error {
	r.types = append(r.types, msgType)
	r.data = append(r.data, data)
	return nil
}

func envelope(t *testing.T, msgType string, data any) ipc.Envelope {
	t.Helper()
	env, err := ipc.NewEnvelope(msgType, data)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func newAgent(t *testing.T, out *recorder) *Agent {
	t.Helper()
	a, err := New(out, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestGameStateBeforeHello(t *testing.T) {
	a := newAgent(t, &recorder{})
	_, err := a.HandleGameState(envelope(t, ipc.TypeGameState, model.GameState{}))
	if !errors.Is(err, ErrNoHello) {
		t.Errorf("err = %v, want ErrNoHello", err)
	}
}

func TestHelloSetsUpState(t *testing.T) {
	a := newAgent(t, &recorder{})
	resp, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{
		Player: 1, MapWidth: 8, MapHeight: 6,
		Terrain: &ipc.TerrainData{Cols: 8, Rows: 6, Grid: []int{0, 1}},
	}))
	if err != nil {
		t.Fatalf("HandleHello: %v", err)
	}
	if resp == nil || resp.Type != ipc.TypeAck {
		t.Fatalf("response = %+v, want ack", resp)
	}
	s := a.State()
	if s.Self != 1 || s.Width != 8 || s.Height != 6 {
		t.Errorf("state self %d, %dx%d", s.Self, s.Width, s.Height)
	}
	if s.Terrain == nil || !s.Terrain.IsWall(1, 0) {
		t.Error("terrain not installed")
	}
}

func TestHelloUnitTypes(t *testing.T) {
	out := &recorder{}
	a := newAgent(t, out)

	custom := model.DefaultUnitTypes()
	for i := range custom {
		if custom[i].Role == model.RoleWorker {
			custom[i].Cost = 3
		}
	}
	if _, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{MapWidth: 8, MapHeight: 8, UnitTypes: custom})); err != nil {
		t.Fatalf("HandleHello: %v", err)
	}
	gs := model.GameState{Tick: 1, Resources: 2, MapWidth: 8, MapHeight: 8,
		Units: []model.Unit{{ID: 1, Type: "Base", X: 1, Y: 1, HP: 10}}}
	if _, err := a.HandleGameState(envelope(t, ipc.TypeGameState, gs)); err != nil {
		t.Fatalf("HandleGameState: %v", err)
	}
	if len(out.types) != 0 {
		t.Errorf("sent %v with a worker costing 3 and 2 resources", out.types)
	}
}

func TestHelloRejectsBadUnitTypes(t *testing.T) {
	a := newAgent(t, &recorder{})
	_, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{
		UnitTypes: []model.UnitType{{Name: "Worker", Role: model.RoleWorker}},
	}))
	if err == nil {
		t.Error("expected an error for an incomplete ruleset")
	}
}

// A whole session over a socket: hello, one tick, intents then ack.
func TestSessionOverConnection(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	conn := ipc.NewConnection(server, nil, nil)
	a, err := New(conn, Options{TickBudget: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	conn.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	go conn.ReadLoop()

	client.SetDeadline(time.Now().Add(5 * time.Second))

	if err := ipc.WriteEnvelope(client, envelope(t, ipc.TypeHello, ipc.HelloMessage{MapWidth: 8, MapHeight: 8})); err != nil {
		t.Fatal(err)
	}
	if resp, err := ipc.ReadEnvelope(client); err != nil || resp.Type != ipc.TypeAck {
		t.Fatalf("hello reply = %+v, %v", resp, err)
	}

	gs := model.GameState{Tick: 1, Resources: 5, MapWidth: 8, MapHeight: 8,
		Units: []model.Unit{{ID: 1, Type: "Base", X: 1, Y: 1, HP: 10}}}
	if err := ipc.WriteEnvelope(client, envelope(t, ipc.TypeGameState, gs)); err != nil {
		t.Fatal(err)
	}

	var got []ipc.Envelope
	for {
		env, err := ipc.ReadEnvelope(client)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if env.Type == ipc.TypeAck {
			break
		}
		got = append(got, env)
	}
	if len(got) != 1 || got[0].Type != ipc.TypeTrain {
		t.Fatalf("intents = %+v, want one train", got)
	}
	var cmd ipc.TrainCommand
	if err := json.Unmarshal(got[0].Data, &cmd); err != nil {
		t.Fatal(err)
	}
	if cmd.UnitID != 1 || cmd.UnitType != "Worker" {
		t.Errorf("train = %+v, want a worker from base 1", cmd)
	}
}

type stalledSolver struct{}

func (stalledSolver) Solve(ctx context.Context, _ solver.Request) (solver.Response, error) {
	<-ctx.Done()
	return solver.Response{}, fmt.Errorf("%w: %w", solver.ErrTimeout, ctx.Err())
}

// A solver that never answers costs the tick its production only: the army
// still gets its orders within the tick budget.
func TestStalledSolverKeepsArmyOrders(t *testing.T) {
	out := &recorder{}
	a, err := New(out, Options{
		Policy:     production.NewSolverPolicy(stalledSolver{}, 100*time.Millisecond, 0, nil),
		TickBudget: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{MapWidth: 8, MapHeight: 8})); err != nil {
		t.Fatal(err)
	}

	gs := model.GameState{Tick: 500, Resources: 10, MapWidth: 8, MapHeight: 8,
		Units: []model.Unit{
			{ID: 1, Type: "Barracks", X: 1, Y: 1, HP: 4},
			{ID: 2, Type: "Light", X: 2, Y: 5, HP: 4},
			{ID: 10, Player: 1, Type: "Light", X: 6, Y: 5, HP: 4},
		}}
	if _, err := a.HandleGameState(envelope(t, ipc.TypeGameState, gs)); err != nil {
		t.Fatalf("HandleGameState: %v", err)
	}

	if !a.State().NoTraining {
		t.Error("stalled solver should pause training")
	}
	var attack *ipc.AttackCommand
	for i, typ := range out.types {
		switch typ {
		case ipc.TypeTrain:
			t.Errorf("trained %+v without a quota", out.data[i])
		case ipc.TypeAttack:
			cmd := out.data[i].(ipc.AttackCommand)
			attack = &cmd
		}
	}
	if attack == nil || attack.UnitID != 2 || attack.TargetID != 10 {
		t.Errorf("intents %v %+v, want light 2 attacking 10", out.types, out.data)
	}
}
