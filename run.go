// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"context"

	"github.com/pkg/errors"
)

// Run drives m until a process calls Finish, no more events are pending, the
// next event would be past until (0 means no limit) or ctx is canceled.
// Final is called before returning, unless the model failed.
//
// Run returns nil on normal termination. If ctx is canceled, it returns
// ctx.Err().
//
func Run(ctx context.Context, m *Model, until uint64) (err error) {
	defer func() {
		if err != nil && IsFatal(err) {
			return
		}
		if ferr := m.Final(); err == nil && ferr != nil && ferr != ErrFinalized {
			err = ferr
		}
	}()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Eval(); err != nil {
			return err
		}
		if m.Finished() || !m.EventsPending() {
			return nil
		}
		t, err := m.NextTimeSlot()
		if err != nil {
			return err
		}
		if until > 0 && t > until {
			return nil
		}
		if err := m.SetTime(t); err != nil {
			return errors.Wrap(err, "advancing time")
		}
	}
}
