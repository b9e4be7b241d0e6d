// Package solver is the wire contract with the external production solver:
// a fixed-layout request describing the economy and what has been seen of
// the enemy, answered by three unit quotas.
package solver

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ProtocolVersion is sent as field 1 of every request.
const ProtocolVersion = 1

// MaxMessage bounds both request and response payloads.
const MaxMessage = 1024

// Mode biases the solver towards aggression or caution.
type Mode int

const (
	ModeNeutral    Mode = 0
	ModeAggressive Mode = 1
	ModeCautious   Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModeAggressive:
		return "aggressive"
	case ModeCautious:
		return "cautious"
	default:
		return "neutral"
	}
}

// Request is the production problem handed to the solver. Fields are encoded
// in declaration order as fields 2 onwards.
type Request struct {
	Tick                int
	IdleBarracks        int
	MinResourceDistance int // -1 when unknown
	MaxResourceDistance int // -1 when unknown
	NoInitialBase       bool
	NoInitialBarracks   bool
	Resources           int
	InitialResources    int
	EnemyCostLoss       int

	WorkerMoveTime    int
	WorkerHarvestTime int
	WorkerReturnTime  int
	HarvestAmount     int

	BaseCost     int
	BarracksCost int
	WorkerCost   int
	HeavyCost    int
	LightCost    int
	RangedCost   int

	MyHeavy  int
	MyLight  int
	MyRanged int

	InitialEnemyWorkers int

	EnemyWorkers int
	EnemyHeavy   int
	EnemyLight   int
	EnemyRanged  int

	EnemyWorkersTotal int
	EnemyHeavyTotal   int
	EnemyLightTotal   int
	EnemyRangedTotal  int

	Mode    Mode
	Samples int
}

// Response carries the quotas, fields 1 to 3.
type Response struct {
	Heavy  int
	Light  int
	Ranged int
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *Request) values() []int {
	return []int{
		r.Tick, r.IdleBarracks, r.MinResourceDistance, r.MaxResourceDistance,
		boolInt(r.NoInitialBase), boolInt(r.NoInitialBarracks),
		r.Resources, r.InitialResources, r.EnemyCostLoss,
		r.WorkerMoveTime, r.WorkerHarvestTime, r.WorkerReturnTime, r.HarvestAmount,
		r.BaseCost, r.BarracksCost, r.WorkerCost, r.HeavyCost, r.LightCost, r.RangedCost,
		r.MyHeavy, r.MyLight, r.MyRanged,
		r.InitialEnemyWorkers,
		r.EnemyWorkers, r.EnemyHeavy, r.EnemyLight, r.EnemyRanged,
		r.EnemyWorkersTotal, r.EnemyHeavyTotal, r.EnemyLightTotal, r.EnemyRangedTotal,
		int(r.Mode), r.Samples,
	}
}

func (r *Request) targets() []*int {
	var noBase, noBarracks, mode int
	t := []*int{
		&r.Tick, &r.IdleBarracks, &r.MinResourceDistance, &r.MaxResourceDistance,
		&noBase, &noBarracks,
		&r.Resources, &r.InitialResources, &r.EnemyCostLoss,
		&r.WorkerMoveTime, &r.WorkerHarvestTime, &r.WorkerReturnTime, &r.HarvestAmount,
		&r.BaseCost, &r.BarracksCost, &r.WorkerCost, &r.HeavyCost, &r.LightCost, &r.RangedCost,
		&r.MyHeavy, &r.MyLight, &r.MyRanged,
		&r.InitialEnemyWorkers,
		&r.EnemyWorkers, &r.EnemyHeavy, &r.EnemyLight, &r.EnemyRanged,
		&r.EnemyWorkersTotal, &r.EnemyHeavyTotal, &r.EnemyLightTotal, &r.EnemyRangedTotal,
		&mode, &r.Samples,
	}
	return t
}

// requestFields is the number of fields after the version.
var requestFields = len((&Request{}).values())

// MarshalRequest encodes r as zigzag varints, version first.
func MarshalRequest(r Request) ([]byte, error) {
	b := protowire.AppendTag(nil, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, ProtocolVersion)
	for i, v := range r.values() {
		b = protowire.AppendTag(b, protowire.Number(i+2), protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
	}
	if len(b) > MaxMessage {
		return nil, fmt.Errorf("%w: request is %d bytes", ErrMalformed, len(b))
	}
	return b, nil
}

// UnmarshalRequest decodes a request. Every field must be present and the
// version must match.
func UnmarshalRequest(b []byte) (Request, error) {
	if len(b) > MaxMessage {
		return Request{}, fmt.Errorf("%w: request is %d bytes", ErrMalformed, len(b))
	}
	vals, err := consumeVarints(b, 1+requestFields, true)
	if err != nil {
		return Request{}, err
	}
	if vals[0] != ProtocolVersion {
		return Request{}, fmt.Errorf("%w: protocol version %d", ErrMalformed, vals[0])
	}

	var r Request
	t := r.targets()
	for i, p := range t {
		*p = int(vals[i+1])
	}
	r.NoInitialBase = *t[4] != 0
	r.NoInitialBarracks = *t[5] != 0
	r.Mode = Mode(*t[len(t)-2])
	return r, nil
}

// MarshalResponse encodes the three quotas as plain varints.
func MarshalResponse(r Response) ([]byte, error) {
	var b []byte
	for i, v := range []int{r.Heavy, r.Light, r.Ranged} {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative quota %d", ErrMalformed, v)
		}
		b = protowire.AppendTag(b, protowire.Number(i+1), protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(v))
	}
	return b, nil
}

// UnmarshalResponse decodes the three quotas. Missing fields, non-varint
// fields and values that do not fit a non-negative int32 are malformed.
func UnmarshalResponse(b []byte) (Response, error) {
	if len(b) > MaxMessage {
		return Response{}, fmt.Errorf("%w: response is %d bytes", ErrMalformed, len(b))
	}
	vals, err := consumeVarints(b, 3, false)
	if err != nil {
		return Response{}, err
	}
	for _, v := range vals {
		if v < 0 || v > math.MaxInt32 {
			return Response{}, fmt.Errorf("%w: quota %d out of range", ErrMalformed, v)
		}
	}
	return Response{Heavy: int(vals[0]), Light: int(vals[1]), Ranged: int(vals[2])}, nil
}

// consumeVarints reads fields 1..n, all varints. Unknown higher fields are
// skipped so the solver can append data without breaking older agents.
func consumeVarints(b []byte, n int, zigzag bool) ([]int64, error) {
	vals := make([]int64, n)
	seen := make([]bool, n)
	for len(b) > 0 {
		num, typ, tl := protowire.ConsumeTag(b)
		if tl < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(tl))
		}
		b = b[tl:]

		if int(num) > n {
			vl := protowire.ConsumeFieldValue(num, typ, b)
			if vl < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(vl))
			}
			b = b[vl:]
			continue
		}
		if typ != protowire.VarintType {
			return nil, fmt.Errorf("%w: field %d has wire type %d", ErrMalformed, num, typ)
		}
		v, vl := protowire.ConsumeVarint(b)
		if vl < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(vl))
		}
		b = b[vl:]

		if zigzag && num > 1 {
			vals[num-1] = protowire.DecodeZigZag(v)
		} else {
			vals[num-1] = int64(v)
		}
		seen[num-1] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: missing field %d", ErrMalformed, i+1)
		}
	}
	return vals, nil
}
