// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"runtime"

	"github.com/rs/zerolog"
)

// A ProcessFn is the body of a suspendable process. It runs sequential code
// against the model's State and may suspend itself with p.Delay.
//
// For example, a free running clock:
//
//	func(p *vsim.Proc) {
//		st := p.State()
//		st.Set(clk, 0)
//		for {
//			p.Delay(5)
//			st.Toggle(clk)
//		}
//	}
//
type ProcessFn func(p *Proc)

// Proc is a suspendable process. Each process body runs on its own goroutine
// but control is handed over explicitly: the kernel blocks while a process
// runs and a process blocks while suspended. At most one of them executes at
// any time.
//
type Proc struct {
	m    *Model
	name string
	fn   ProcessFn
	log  zerolog.Logger

	resumeC chan struct{}
	yieldC  chan struct{}
	started bool
	done    bool
	err     error
}

func newProc(m *Model, name string, fn ProcessFn) *Proc {
	return &Proc{
		m:       m,
		name:    name,
		fn:      fn,
		log:     m.log.With().Str("process", name).Logger(),
		resumeC: make(chan struct{}),
		yieldC:  make(chan struct{}),
	}
}

func (p *Proc) run() {
	defer func() {
		if r := recover(); r != nil {
			p.err = &ProcessError{Process: p.name, Value: r}
		}
		p.done = true
		p.yieldC <- struct{}{}
	}()
	if _, ok := <-p.resumeC; !ok {
		return
	}
	p.fn(p)
}

// start runs the process until its first suspension point.
//
func (p *Proc) start() error {
	p.started = true
	p.log.Debug().Msg("start")
	go p.run()
	return p.resume()
}

// resume hands control to the process and waits until it suspends or
// terminates.
//
func (p *Proc) resume() error {
	p.resumeC <- struct{}{}
	<-p.yieldC
	p.m.metrics.processResumed()
	if p.err != nil {
		return p.err
	}
	if p.done {
		p.log.Debug().Uint64("time", p.m.time).Msg("done")
	}
	return nil
}

// kill terminates a suspended process.
//
func (p *Proc) kill() {
	if !p.started || p.done {
		return
	}
	close(p.resumeC)
	<-p.yieldC
}

// Delay suspends the process for the given number of ticks. The process
// resumes within the Active region of the time step at Time() + ticks.
//
// If the model is finalized while the process is suspended, Delay does not
// return and the process goroutine exits.
//
func (p *Proc) Delay(ticks uint64) {
	p.log.Trace().Uint64("time", p.m.time).Uint64("ticks", ticks).Msg("delay")
	p.m.sched.Delay(p.m.time, ticks, ResumerFunc(p.resume))
	p.yieldC <- struct{}{}
	if _, ok := <-p.resumeC; !ok {
		runtime.Goexit()
	}
}

// Finish requests the end of the simulation run. The process keeps running
// until it returns or suspends, and the current time step still converges.
//
func (p *Proc) Finish() {
	p.log.Info().Uint64("time", p.m.time).Msg("finish requested")
	p.m.finished = true
}

// State returns the signal state block of the model running p.
//
func (p *Proc) State() *State { return p.m.state }

// Time returns the current simulated time.
//
func (p *Proc) Time() uint64 { return p.m.time }

// Name returns the process name.
//
func (p *Proc) Name() string { return p.name }

// Logger returns a logger tagged with the process name. Processes should use
// it for diagnostic output.
//
func (p *Proc) Logger() *zerolog.Logger { return &p.log }

// Done returns true once the process body has returned.
//
func (p *Proc) Done() bool { return p.done }
