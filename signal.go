// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"encoding/binary"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spaolacci/murmur3"
)

// MaxWidth is the widest signal supported by the State block.
//
const MaxWidth = 64

// A Signal identifies a signal in a State block. Its value should be obtained
// in a MountFn by a call to one of the Socket methods.
//
type Signal int

// Reset is the policy used to give signals their initial value when a Model
// is constructed.
//
type Reset int

// Reset policies.
//
const (
	ResetZero   Reset = iota // all signals start at 0
	ResetOnes                // all signals start with every bit set
	ResetRandom              // pseudo-random values, scoped to the instance name and seed
)

var resetNames = [...]string{"zero", "ones", "random"}

func (r Reset) String() string {
	if r < 0 || int(r) >= len(resetNames) {
		return "Reset(" + strconv.Itoa(int(r)) + ")"
	}
	return resetNames[r]
}

// ParseReset returns the Reset policy with the given name.
//
func ParseReset(name string) (Reset, error) {
	for i, n := range resetNames {
		if n == name {
			return Reset(i), nil
		}
	}
	return 0, errors.Errorf("unknown reset policy %q", name)
}

// State is the signal state block of a simulation instance. It holds the
// current value of every signal and is only mutated by region evaluators and
// resumed processes.
//
type State struct {
	v     []uint64
	mask  []uint64
	names []string
	idx   map[string]Signal
}

func newState() *State {
	return &State{idx: make(map[string]Signal)}
}

func widthMask(w int) uint64 {
	if w >= MaxWidth {
		return ^uint64(0)
	}
	return 1<<uint(w) - 1
}

// alloc allocates a new signal and returns its handle.
//
func (s *State) alloc(name string, width int) (Signal, error) {
	if width < 1 || width > MaxWidth {
		return 0, errors.Errorf("signal %s: invalid width %d", name, width)
	}
	if _, ok := s.idx[name]; ok {
		return 0, errors.New("signal " + name + " already declared")
	}
	n := Signal(len(s.v))
	s.v = append(s.v, 0)
	s.mask = append(s.mask, widthMask(width))
	s.names = append(s.names, name)
	s.idx[name] = n
	return n, nil
}

// Get returns the value of signal n.
//
func (s *State) Get(n Signal) uint64 {
	return s.v[n]
}

// Set sets the value of signal n. Bits beyond the signal width are discarded.
//
func (s *State) Set(n Signal, v uint64) {
	s.v[n] = v & s.mask[n]
}

// Bool returns true if signal n is non-zero.
//
func (s *State) Bool(n Signal) bool {
	return s.v[n] != 0
}

// SetBool sets signal n to 1 if b is true, 0 otherwise.
//
func (s *State) SetBool(n Signal, b bool) {
	if b {
		s.v[n] = 1
	} else {
		s.v[n] = 0
	}
}

// Toggle inverts every bit of signal n.
//
func (s *State) Toggle(n Signal) {
	s.v[n] = ^s.v[n] & s.mask[n]
}

// Width returns the width in bits of signal n.
//
func (s *State) Width(n Signal) int {
	w := 0
	for m := s.mask[n]; m != 0; m >>= 1 {
		w++
	}
	return w
}

// Name returns the name of signal n.
//
func (s *State) Name(n Signal) string {
	return s.names[n]
}

// Lookup returns the signal with the given name.
//
func (s *State) Lookup(name string) (Signal, bool) {
	n, ok := s.idx[name]
	return n, ok
}

// Len returns the number of signals in the State block.
//
func (s *State) Len() int { return len(s.v) }

// Snapshot returns a copy of all signal values, indexed by Signal.
//
func (s *State) Snapshot() []uint64 {
	out := make([]uint64, len(s.v))
	copy(out, s.v)
	return out
}

// resetter computes initial values for a given policy. Random values are
// derived from a hash of the instance name so that two instances with the
// same name and seed start from identical states.
//
type resetter struct {
	policy Reset
	scope  uint64
}

func newResetter(policy Reset, instance string, seed uint64) resetter {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	h := murmur3.New64()
	h.Write([]byte(instance))
	h.Write(b[:])
	return resetter{policy: policy, scope: h.Sum64()}
}

// value returns the initial value for the named slot with the given mask.
//
func (r resetter) value(name string, mask uint64) uint64 {
	switch r.policy {
	case ResetOnes:
		return mask
	case ResetRandom:
		h := murmur3.Sum64WithSeed([]byte(name), uint32(r.scope^r.scope>>32))
		return (h ^ r.scope) & mask
	}
	return 0
}

func (r resetter) reset(s *State) {
	for i, name := range s.names {
		s.v[i] = r.value(name, s.mask[i])
	}
}
