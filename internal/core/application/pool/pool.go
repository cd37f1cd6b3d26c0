package pool

import (
	"context"
	"fmt"
	"math"
	"sync"

	"dispatchsim/internal/pkg/actor"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/rng"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MaxBatch caps how many members a single injection or fluctuation may add.
// Larger requests are rejected with ErrInvalidChurnCount before anything is
// spawned.
const MaxBatch = 1000

// SpawnFunc starts one pool member with default state, including any
// registration it needs, and returns its handle.
type SpawnFunc func(ctx context.Context, name string) (*actor.PID, error)

// LeaveFunc asks a member to leave. Leaving is cooperative: the member may
// keep running until it is able to stop.
type LeaveFunc func(pid *actor.PID) error

// Config configures an ActorPool.
type Config struct {
	// Role prefixes member names, e.g. "courier" gives "courier-1".
	Role   string
	Spawn  SpawnFunc
	Leave  LeaveFunc
	Rand   *rng.Source
	Logger *zap.Logger
}

// Fluctuation is the outcome of one SimulateFluctuation call.
type Fluctuation struct {
	Joined []*actor.PID
	Left   []*actor.PID
	Size   int
}

// ActorPool is a population of actors of one role that grows and shrinks
// under churn.
//
// Structural changes are serialized by a mutex, so a scheduled fluctuation
// never interleaves with a manual injection. Readers work on snapshots.
type ActorPool struct {
	cfg    Config
	logger *zap.Logger
	seq    *atomic.Uint64

	mu      sync.Mutex
	members []*actor.PID
	// departing members were relieved but have not stopped yet
	departing []*actor.PID
}

// New validates cfg and returns an empty pool.
//
// Parameters:
//   - cfg: Spawn, Leave and Rand are required. Role defaults to "actor" and
//     Logger to a no-op logger.
//
// Returns:
//   - *ActorPool: the pool, with no members yet
//   - error: errs.ErrValueIsRequired when a required field is missing
func New(cfg Config) (*ActorPool, error) {
	if cfg.Spawn == nil {
		return nil, errs.NewValueIsRequiredError("spawn")
	}
	if cfg.Leave == nil {
		return nil, errs.NewValueIsRequiredError("leave")
	}
	if cfg.Rand == nil {
		return nil, errs.NewValueIsRequiredError("rand")
	}
	if cfg.Role == "" {
		cfg.Role = "actor"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &ActorPool{
		cfg:    cfg,
		logger: cfg.Logger.With(zap.String("component", "pool"), zap.String("role", cfg.Role)),
		seq:    atomic.NewUint64(0),
	}, nil
}

// Size returns the number of members.
func (p *ActorPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.members)
}

// Members returns a snapshot of the members in pool order.
func (p *ActorPool) Members() []*actor.PID {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*actor.PID, len(p.members))
	copy(out, p.members)
	return out
}

// ForEach applies fn to a snapshot of the members. Churn during the iteration
// does not affect which handles fn sees.
func (p *ActorPool) ForEach(fn func(pid *actor.PID)) {
	for _, pid := range p.Members() {
		fn(pid)
	}
}

// ForEachLive is ForEach over the members plus relieved actors that are still
// finishing their work.
func (p *ActorPool) ForEachLive(fn func(pid *actor.PID)) {
	p.mu.Lock()
	p.pruneDeparted()
	live := make([]*actor.PID, 0, len(p.members)+len(p.departing))
	live = append(live, p.members...)
	live = append(live, p.departing...)
	p.mu.Unlock()

	for _, pid := range live {
		fn(pid)
	}
}

// InjectDefaults spawns n new members and appends them. On a spawn failure the
// members spawned by this call are stopped and the pool is left unchanged.
func (p *ActorPool) InjectDefaults(ctx context.Context, n int) ([]*actor.PID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.injectLocked(ctx, n)
}

// RelieveLeaving removes n members chosen uniformly at random without
// replacement and asks each of them to leave. It fails with
// ErrInvalidChurnCount when n is negative or exceeds the pool size, leaving the
// pool unchanged.
func (p *ActorPool) RelieveLeaving(n int) ([]*actor.PID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.relieveLocked(n)
}

// SimulateFluctuation applies floor(joinRate*ticks) joins and then
// floor(leaveRate*ticks) leaves, the leaves drawn from the population after
// the joins. The leave count is checked before anything changes.
func (p *ActorPool) SimulateFluctuation(ctx context.Context, joinRate, leaveRate float64, ticks uint64) (Fluctuation, error) {
	if err := ValidateRate("joinRate", joinRate); err != nil {
		return Fluctuation{}, err
	}
	if err := ValidateRate("leaveRate", leaveRate); err != nil {
		return Fluctuation{}, err
	}

	joins := churnCount(joinRate, ticks)
	leaves := churnCount(leaveRate, ticks)

	p.mu.Lock()
	defer p.mu.Unlock()

	if joins > MaxBatch {
		return Fluctuation{}, newInvalidChurnCountError("fluctuation", joins, MaxBatch)
	}
	if leaves > len(p.members)+joins {
		return Fluctuation{}, newInvalidChurnCountError("fluctuation", leaves, len(p.members)+joins)
	}

	joined, err := p.injectLocked(ctx, joins)
	if err != nil {
		return Fluctuation{}, err
	}
	left, err := p.relieveLocked(leaves)
	if err != nil {
		return Fluctuation{Joined: joined, Size: len(p.members)}, err
	}

	p.logger.Info("population fluctuated",
		zap.Uint64("ticks", ticks),
		zap.Int("joined", len(joined)),
		zap.Int("left", len(left)),
		zap.Int("size", len(p.members)))

	return Fluctuation{Joined: joined, Left: left, Size: len(p.members)}, nil
}

// StopAll stops every member and every departing actor and empties the pool.
func (p *ActorPool) StopAll(ctx context.Context) error {
	p.mu.Lock()
	all := make([]*actor.PID, 0, len(p.members)+len(p.departing))
	all = append(all, p.members...)
	all = append(all, p.departing...)
	p.members = nil
	p.departing = nil
	p.mu.Unlock()

	var err error
	for _, pid := range all {
		err = multierr.Append(err, pid.Stop(ctx))
	}
	return err
}

func (p *ActorPool) injectLocked(ctx context.Context, n int) ([]*actor.PID, error) {
	if n < 0 || n > MaxBatch {
		return nil, newInvalidChurnCountError("inject", n, MaxBatch)
	}

	spawned := make([]*actor.PID, 0, n)
	for range n {
		name := fmt.Sprintf("%s-%d", p.cfg.Role, p.seq.Inc())
		pid, err := p.cfg.Spawn(ctx, name)
		if err != nil {
			var stopErr error
			for _, s := range spawned {
				stopErr = multierr.Append(stopErr, s.Stop(ctx))
			}
			return nil, multierr.Combine(fmt.Errorf("spawn %s: %w", name, err), stopErr)
		}
		spawned = append(spawned, pid)
	}

	p.members = append(p.members, spawned...)
	if n > 0 {
		p.logger.Debug("members injected", zap.Int("count", n), zap.Int("size", len(p.members)))
	}
	return spawned, nil
}

func (p *ActorPool) relieveLocked(n int) ([]*actor.PID, error) {
	if n < 0 || n > len(p.members) {
		return nil, newInvalidChurnCountError("relieve", n, len(p.members))
	}
	if n == 0 {
		return nil, nil
	}

	chosen := mapset.NewThreadUnsafeSet[int](p.cfg.Rand.Sample(len(p.members), n)...)

	survivors := make([]*actor.PID, 0, len(p.members)-n)
	leaving := make([]*actor.PID, 0, n)
	for i, pid := range p.members {
		if chosen.Contains(i) {
			leaving = append(leaving, pid)
			continue
		}
		survivors = append(survivors, pid)
	}
	p.members = survivors

	for _, pid := range leaving {
		if err := p.cfg.Leave(pid); err != nil {
			p.logger.Debug("leave request not delivered", zap.String("member", pid.Name()), zap.Error(err))
		}
	}
	p.departing = append(p.departing, leaving...)
	p.pruneDeparted()

	p.logger.Debug("members relieved", zap.Int("count", n), zap.Int("size", len(p.members)))
	return leaving, nil
}

func (p *ActorPool) pruneDeparted() {
	kept := p.departing[:0]
	for _, pid := range p.departing {
		if pid.IsRunning() {
			kept = append(kept, pid)
		}
	}
	clear(p.departing[len(kept):])
	p.departing = kept
}

// ValidateRate rejects churn rates that are negative, NaN or infinite.
func ValidateRate(name string, rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return errs.NewValueIsOutOfRangeError(name, rate, 0, "+Inf")
	}
	return nil
}

// churnCount floors rate*ticks. The epsilon keeps products such as
// 0.29*100 from flooring one short. Products beyond MaxInt are clamped so the
// conversion cannot wrap; such counts are rejected by the batch checks.
func churnCount(rate float64, ticks uint64) int {
	f := math.Floor(rate*float64(ticks) + 1e-9)
	if f >= math.MaxInt {
		return math.MaxInt
	}
	return int(f)
}
