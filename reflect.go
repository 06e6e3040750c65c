// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var signalType = reflect.TypeOf(Signal(0))

// Bind declares the signals described by the tagged Signal fields of the
// struct pointed to by ptr and stores their handles in those fields.
//
// The field tag has the form `vsim:"name,width"`. By default, the signal name
// is the field name in lowercase and the width is 1. If a signal with the same
// name already exists in the model, it is reused provided the widths match;
// this allows several sub-designs to share a clock or reset signal.
//
//	var c struct {
//		Clk   vsim.Signal `vsim:"clk"`
//		Count vsim.Signal `vsim:"count,2"`
//	}
//	if err := vsim.Bind(s, &c); err != nil {
//		return err
//	}
//
func Bind(s *Socket, ptr interface{}) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errors.Errorf("Bind: expected non-nil pointer to struct, got %T", ptr)
	}
	e := v.Elem()
	typ := e.Type()
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("vsim")
		if !ok || tag == "-" {
			continue
		}
		if f.Type != signalType {
			return errors.Errorf("unsupported type %q for field %q in %q", f.Type, f.Name, typ.Name())
		}
		name := strings.ToLower(f.Name)
		width := 1
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			return errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name())
		}
		if tv[0] != "" {
			name = tv[0]
		}
		if len(tv) == 2 && tv[1] != "" {
			w, err := strconv.Atoi(tv[1])
			if err != nil {
				return errors.Wrapf(err, "invalid width in tag %q for field %q in %q", tag, f.Name, typ.Name())
			}
			width = w
		}
		sig, err := bindSignal(s, name, width)
		if err != nil {
			return errors.Wrapf(err, "field %q in %q", f.Name, typ.Name())
		}
		e.Field(i).Set(reflect.ValueOf(sig))
	}
	return nil
}

func bindSignal(s *Socket, name string, width int) (Signal, error) {
	st := s.m.state
	if n, ok := s.Lookup(name); ok {
		if w := st.Width(n); w != width {
			return 0, errors.Errorf("signal %s already declared with width %d, not %d", name, w, width)
		}
		return n, nil
	}
	return s.Wire(name, width)
}
