// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrFinalized is returned by Eval once Final has been called.
	ErrFinalized = errors.New("model finalized")

	// ErrTimeBackwards is returned by SetTime when asked to move time
	// backwards.
	ErrTimeBackwards = errors.New("simulated time cannot decrease")

	// ErrEventSkipped is returned by SetTime when asked to move time past
	// the next scheduled event.
	ErrEventSkipped = errors.New("simulated time cannot skip a pending event")
)

// A ConvergenceError reports that an evaluation region kept producing
// triggers for more than the configured number of iterations. It is fatal:
// the model cannot be evaluated any further.
//
type ConvergenceError struct {
	Region   string   // Settle, Active or NBA
	Cap      int      // iteration cap in effect
	Time     uint64   // simulated time
	Triggers []string // triggers still set on the last iteration
}

func (e *ConvergenceError) Error() string {
	var b strings.Builder
	b.WriteString(e.Region)
	b.WriteString(" region did not converge after ")
	b.WriteString(strconv.Itoa(e.Cap))
	b.WriteString(" iterations at time ")
	b.WriteString(strconv.FormatUint(e.Time, 10))
	if len(e.Triggers) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Triggers, ", "))
	}
	return b.String()
}

// A ProcessError reports a panic in the body of a suspendable process.
//
type ProcessError struct {
	Process string
	Value   interface{}
}

func (e *ProcessError) Error() string {
	return "process " + e.Process + " panicked: " + fmt.Sprint(e.Value)
}

// IsFatal returns true if err leaves a model in a state where it cannot be
// evaluated any more.
//
func IsFatal(err error) bool {
	switch errors.Cause(err).(type) {
	case *ConvergenceError, *ProcessError:
		return true
	}
	return false
}
