package production

import (
	"context"
	"log/slog"
	"time"

	"github.com/richoux/microPhantom/solver"
	"github.com/richoux/microPhantom/world"
)

// DefaultSamples is how many enemy compositions the solver samples.
const DefaultSamples = 50

// tickShare is the fraction (1/tickShare) of the remaining tick budget held
// back from the solver for the rules that run after planning.
const tickShare = 4

// SolverPolicy asks the external solver for quotas.
type SolverPolicy struct {
	client  solver.Client
	timeout time.Duration
	samples int
	log     *slog.Logger
}

func NewSolverPolicy(client solver.Client, timeout time.Duration, samples int, log *slog.Logger) *SolverPolicy {
	if samples <= 0 {
		samples = DefaultSamples
	}
	if log == nil {
		log = slog.Default()
	}
	return &SolverPolicy{client: client, timeout: timeout, samples: samples, log: log}
}

// Decide makes one bounded round trip. Any failure pauses production for
// this tick; the next idle barracks triggers a fresh attempt.
func (p *SolverPolicy) Decide(ctx context.Context, obs Observation) Decision {
	req := BuildRequest(obs, p.samples)
	ctx, cancel := p.solveContext(ctx)
	defer cancel()

	start := time.Now()
	resp, err := p.client.Solve(ctx, req)
	if err != nil {
		p.log.Warn("production solver failed, no training this tick",
			"tick", req.Tick, "mode", req.Mode, "elapsed", time.Since(start), "error", err)
		return Decision{NoTraining: true}
	}

	p.log.Debug("production quota",
		"tick", req.Tick, "mode", req.Mode, "heavy", resp.Heavy, "light", resp.Light,
		"ranged", resp.Ranged, "elapsed", time.Since(start))
	return Decision{Quota: world.Quota{Heavy: resp.Heavy, Light: resp.Light, Ranged: resp.Ranged}}
}

// solveContext bounds the round trip by the configured timeout and, when the
// tick itself has a deadline, ends it early enough for the rest of the tick.
func (p *SolverPolicy) solveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout, bounded := p.timeout, p.timeout > 0
	if dl, ok := ctx.Deadline(); ok {
		remaining := time.Until(dl)
		if limit := remaining - remaining/tickShare; !bounded || limit < timeout {
			timeout, bounded = limit, true
		}
	}
	if !bounded {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
