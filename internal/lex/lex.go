// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex provides a minimal state-function based lexer.
//
// A lexer is driven by StateFn values. Each state consumes input with Next,
// Backup and AcceptWhile and emits tokens with Emit. A state returning nil
// resets the lexer to its initial state, starting a new token at the
// current input position.
//
package lex

import (
	"fmt"
	"io"
)

// EOF is both the rune returned by Next at end of input and the token type of
// the end of input item.
//
const EOF = -1

// Type is a token type.
//
type Type int

// Pos is a rune offset in the input.
//
type Pos int

// Item is a token emitted by a lexer.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

func (i Item) String() string {
	if i.Type == EOF {
		return "end of input"
	}
	switch v := i.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case rune:
		return fmt.Sprintf("%q", v)
	}
	return fmt.Sprint(i.Value)
}

// StateFn is a lexer state function.
//
type StateFn func(l *Lexer) StateFn

// Interface is implemented by lexers.
//
type Interface interface {
	// Lex returns the next token.
	Lex() Item
}

// Lexer is a state-function lexer reading from an io.RuneReader.
//
type Lexer struct {
	in    io.RuneReader
	init  StateFn
	state StateFn
	q     []Item

	start Pos // start of current token
	off   Pos // offset of the next rune
	cur   rune
	prev  rune
	back  []rune
}

// New returns a new lexer reading from in and starting in state init.
//
func New(in io.RuneReader, init StateFn) *Lexer {
	return &Lexer{in: in, init: init, cur: EOF, prev: EOF}
}

// Lex implements Interface.
//
func (l *Lexer) Lex() Item {
	for len(l.q) == 0 {
		if l.state == nil {
			l.state = l.init
			l.start = l.off
		}
		l.state = l.state(l)
	}
	i := l.q[0]
	l.q = l.q[1:]
	return i
}

// Next returns the next rune in the input or EOF.
//
func (l *Lexer) Next() rune {
	var r rune
	if n := len(l.back); n > 0 {
		r = l.back[n-1]
		l.back = l.back[:n-1]
	} else {
		var err error
		if r, _, err = l.in.ReadRune(); err != nil {
			r = EOF
		}
	}
	l.prev, l.cur = l.cur, r
	l.off++
	return r
}

// Current returns the last rune returned by Next.
//
func (l *Lexer) Current() rune { return l.cur }

// Backup pushes back the last rune returned by Next. Only one rune may be
// pushed back between calls to Next.
//
func (l *Lexer) Backup() {
	l.back = append(l.back, l.cur)
	l.cur = l.prev
	l.off--
}

// AcceptWhile consumes runes for which f returns true.
//
func (l *Lexer) AcceptWhile(f func(rune) bool) {
	r := l.Next()
	for r != EOF && f(r) {
		r = l.Next()
	}
	l.Backup()
}

// Emit emits a token of type t with value v starting at the beginning of the
// current token. The next token starts after the last rune consumed.
//
func (l *Lexer) Emit(t Type, v interface{}) {
	l.q = append(l.q, Item{Type: t, Pos: l.start, Value: v})
	l.start = l.off
}
