// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultIterationCap is the default maximum number of iterations a region
// may run within a single convergence loop.
//
const DefaultIterationCap = 100

// Region names, as reported in ConvergenceError and metrics.
//
const (
	RegionSettle = "Settle"
	RegionActive = "Active"
	RegionNBA    = "NBA"
)

// SettleFirst is the index of the Settle trigger bit that is set only on the
// first iteration of the Settle loop.
//
const SettleFirst = 0

// Config configures a Model.
//
type Config struct {
	// Instance name. Defaults to the DesignSpec name.
	Name string
	// Maximum number of iterations per region and per convergence loop.
	// Defaults to DefaultIterationCap if <= 0.
	IterationCap int
	// Initial value policy for all signals.
	Reset Reset
	// Seed for ResetRandom.
	Seed uint64
	// Logger for kernel diagnostics. If nil, nothing is logged.
	Logger *zerolog.Logger
	// Metrics collector. May be nil.
	Metrics *Metrics
}

// DefaultConfig returns the default model configuration.
//
func DefaultConfig() Config {
	return Config{IterationCap: DefaultIterationCap}
}

// A DesignSpec describes a design: its signals, sensitivities, region
// evaluators and processes. Mount is called once by New with a Socket bound
// to the new Model.
//
type DesignSpec struct {
	Name  string
	Mount MountFn
}

// A MountFn declares a design's signals, triggers and evaluators on socket s.
//
type MountFn func(s *Socket) error

// Model is a simulation instance: it owns the signal state block, trigger
// vectors, delay scheduler and processes of one design.
//
// A Model is not safe for concurrent use. All calls must come from a single
// goroutine.
//
type Model struct {
	name    string
	cap     int
	log     zerolog.Logger
	metrics *Metrics

	state *State
	time  uint64

	stlScan  *scanner
	actScan  *scanner
	stl      region
	act      region
	nba      region
	stlFirst bool
	delayBit int

	sched   DelayScheduler
	procs   []*Proc
	statics []Evaluator
	finals  []Evaluator

	didInit   bool
	finished  bool
	finalized bool
	err       error
}

// New constructs a model for the given design, allocating its state block,
// shadows and trigger vectors and registering its initial processes. Signals
// are initialized according to cfg.Reset.
//
// Started processes run on their own goroutines. Callers must call Final or
// Close once done with the model, otherwise the goroutines of suspended
// processes are leaked. A fatal error from Eval closes the model.
//
func New(spec *DesignSpec, cfg Config) (*Model, error) {
	if spec == nil || spec.Mount == nil {
		return nil, errors.New("nil design spec or mount function")
	}
	name := cfg.Name
	if name == "" {
		name = spec.Name
	}
	if name == "" {
		name = "TOP"
	}
	if cfg.IterationCap <= 0 {
		cfg.IterationCap = DefaultIterationCap
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("model", name).Logger()
	}

	m := &Model{
		name:     name,
		cap:      cfg.IterationCap,
		log:      log,
		metrics:  cfg.Metrics,
		state:    newState(),
		stlScan:  newScanner(false),
		actScan:  newScanner(true),
		stl:      region{name: RegionSettle},
		act:      region{name: RegionActive},
		nba:      region{name: RegionNBA},
		delayBit: -1,
	}
	m.stlScan.addFlag("settle first iteration", func() bool { return m.stlFirst })

	if err := spec.Mount(&Socket{m: m}); err != nil {
		return nil, errors.Wrap(err, "failed to mount design "+spec.Name)
	}

	m.stl.triggers = NewTriggerVec(m.stlScan.len())
	m.act.triggers = NewTriggerVec(m.actScan.len())
	m.nba.triggers = NewTriggerVec(m.actScan.len())

	newResetter(cfg.Reset, name, cfg.Seed).reset(m.state)

	m.log.Debug().
		Int("signals", m.state.Len()).
		Int("act_triggers", m.actScan.len()).
		Int("processes", len(m.procs)).
		Str("reset", cfg.Reset.String()).
		Msg("model constructed")
	return m, nil
}

// Name returns the instance name.
//
func (m *Model) Name() string { return m.name }

// State returns the signal state block. Drivers may change input signals
// between calls to Eval.
//
func (m *Model) State() *State { return m.state }

// Time returns the current simulated time.
//
func (m *Model) Time() uint64 { return m.time }

// SetTime advances simulated time to t. It returns ErrTimeBackwards if t is
// before the current time and ErrEventSkipped if t is past the next time slot
// returned by NextTimeSlot.
//
func (m *Model) SetTime(t uint64) error {
	if t < m.time {
		return errors.Wrapf(ErrTimeBackwards, "from %d to %d", m.time, t)
	}
	if next, err := m.sched.NextTimeSlot(); err == nil && t > next {
		return errors.Wrapf(ErrEventSkipped, "from %d to %d, next event at %d", m.time, t, next)
	}
	m.time = t
	return nil
}

// Finished returns true once a process has requested the end of the run.
//
func (m *Model) Finished() bool { return m.finished }

// EventsPending returns true if any process is waiting in the delay
// scheduler.
//
func (m *Model) EventsPending() bool { return !m.sched.Empty() }

// NextTimeSlot returns the earliest wake time in the delay scheduler. It
// returns ErrNoEvents if no event is pending.
//
func (m *Model) NextTimeSlot() (uint64, error) {
	return m.sched.NextTimeSlot()
}

// Eval evaluates the model at the current simulated time until all regions
// converge.
//
// The first call also performs static initialization, runs initial processes
// up to their first suspension point and runs the Settle loop.
//
// Errors returned by Eval other than ErrFinalized are fatal (see IsFatal):
// the model is stopped and any subsequent call returns the same error.
//
func (m *Model) Eval() error {
	if m.err != nil {
		return m.err
	}
	if m.finalized {
		return ErrFinalized
	}
	if !m.didInit {
		m.didInit = true
		m.log.Debug().Msg("initial")
		for _, f := range m.statics {
			f(m.state)
		}
		m.stlScan.latch(m.state)
		m.actScan.latch(m.state)
		for _, p := range m.procs {
			if err := p.start(); err != nil {
				return m.fail(err)
			}
		}
		if err := m.settle(); err != nil {
			return m.fail(err)
		}
	}
	if err := m.eval(); err != nil {
		return m.fail(err)
	}
	m.metrics.stepEvaluated(m.sched.Len())
	return nil
}

// settle runs the Settle region until no trigger is set.
//
func (m *Model) settle() error {
	m.stlFirst = true
	defer func() { m.stlFirst = false }()
	n := 0
	for {
		m.stlScan.scan(m.state, m.stl.triggers)
		if !m.stl.triggers.Any() {
			break
		}
		if n >= m.cap {
			return m.diverged(&m.stl, m.stlScan)
		}
		n++
		m.stl.dispatch(m.state)
		m.stlFirst = false
	}
	m.metrics.loopDone(RegionSettle, n)
	return nil
}

// eval runs the Active region to convergence, then the NBA region, and
// repeats until the NBA region has nothing left to do.
//
func (m *Model) eval() error {
	nn := 0
	for {
		n := 0
		for {
			m.actScan.scan(m.state, m.act.triggers)
			if !m.act.triggers.Any() {
				break
			}
			if n >= m.cap {
				return m.diverged(&m.act, m.actScan)
			}
			n++
			m.nba.triggers.Or(m.act.triggers)
			if m.delayBit >= 0 && m.act.triggers.Test(m.delayBit) {
				if err := m.sched.Resume(m.time); err != nil {
					return err
				}
			}
			m.act.dispatch(m.state)
		}
		m.metrics.loopDone(RegionActive, n)

		if !m.nba.triggers.Any() {
			break
		}
		if nn >= m.cap {
			return m.diverged(&m.nba, m.actScan)
		}
		nn++
		m.nba.dispatch(m.state)
		m.nba.triggers.Clear()
	}
	m.metrics.loopDone(RegionNBA, nn)
	return nil
}

func (m *Model) diverged(r *region, sc *scanner) error {
	err := &ConvergenceError{
		Region:   r.name,
		Cap:      m.cap,
		Time:     m.time,
		Triggers: sc.describe(r.triggers),
	}
	m.metrics.diverged(r.name)
	m.log.Error().
		Str("region", r.name).
		Uint64("time", m.time).
		Strs("triggers", err.Triggers).
		Msg(r.name + " region did not converge")
	return err
}

// fail records a fatal error and stops all processes.
//
func (m *Model) fail(err error) error {
	m.err = err
	m.Close()
	return err
}

// Final runs the design's final hooks and stops all processes. The model
// cannot be evaluated afterwards. Calling Final more than once returns
// ErrFinalized.
//
func (m *Model) Final() error {
	if m.finalized {
		return ErrFinalized
	}
	m.finalized = true
	for _, f := range m.finals {
		f(m.state)
	}
	m.Close()
	m.log.Debug().Uint64("time", m.time).Msg("final")
	return nil
}

// Close terminates all suspended processes and empties the delay scheduler
// without running final hooks. The model cannot be evaluated afterwards.
//
func (m *Model) Close() {
	m.finalized = true
	m.sched.drain()
	for _, p := range m.procs {
		p.kill()
	}
}
