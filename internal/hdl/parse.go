// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses the small textual notations used to declare signals and
// sensitivity lists.
//
package hdl

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/stremme1/vsim/internal/lex"
)

// Token types.
//
const (
	EOF lex.Type = lex.EOF
	Raw lex.Type = iota
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
)

// Edge keywords in sensitivity lists.
//
const (
	Posedge = "posedge"
	Negedge = "negedge"
)

// Lexer returns a new lexer for signal declarations and sensitivity lists.
//
func Lexer(input string) lex.Interface {
	return lex.New(strings.NewReader(input), lexInit)
}

var punct = map[rune]lex.Type{
	'[': BracketOpen,
	']': BracketClose,
	',': Comma,
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	if t, ok := punct[r]; ok {
		l.Emit(t, string(r))
		return nil
	}
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
		return nil
	case unicode.IsLetter(r) || r == '_':
		l.Emit(Ident, word(l, isIdentRune))
		return nil
	case isDigit(r):
		// out of range values become 0, an invalid width
		n, _ := strconv.Atoi(word(l, isDigit))
		l.Emit(Int, n)
		return nil
	}
	l.Emit(Raw, r)
	return lexEOF
}

// word returns the current rune followed by all subsequent runes accepted by
// f.
//
func word(l *lex.Lexer, f func(rune) bool) string {
	var b strings.Builder
	b.WriteRune(l.Current())
	for r := l.Next(); r != lex.EOF && f(r); r = l.Next() {
		b.WriteRune(r)
	}
	l.Backup()
	return b.String()
}

// lexEOF emits EOF forever.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return lexEOF
}

// Decl is a signal declaration: name or name[width].
//
type Decl struct {
	Name  string
	Width int
	Pos   lex.Pos
}

// Sense is a sensitivity list item: [posedge|negedge] name.
// Edge is empty for plain value change sensitivity.
//
type Sense struct {
	Edge string
	Name string
	Pos  lex.Pos
}

// ParseDecls parses a comma separated list of signal declarations. Signals
// without an explicit width are one bit wide.
//
//	ParseDecls("clk, rst_n, row_idx[4]")
//
func ParseDecls(in string) ([]Decl, error) {
	var out []Decl
	l := Lexer(in)
	i := l.Lex()
	if i.Type == EOF {
		return nil, nil
	}
	for {
		if i.Type != Ident {
			return nil, parseError(in, i.Pos, "expected signal name")
		}
		d := Decl{Name: i.Value.(string), Width: 1, Pos: i.Pos}
		i = l.Lex()
		if i.Type == BracketOpen {
			i = l.Lex()
			if i.Type != Int {
				return nil, parseError(in, i.Pos, "integer value expected after '['")
			}
			d.Width = i.Value.(int)
			i = l.Lex()
			if i.Type != BracketClose {
				return nil, parseError(in, i.Pos, "closing ']' expected after width")
			}
			i = l.Lex()
		}
		out = append(out, d)
		switch i.Type {
		case EOF:
			return out, nil
		case Comma:
			i = l.Lex()
		default:
			return nil, parseError(in, i.Pos, "unexpected "+i.String())
		}
	}
}

// ParseSenses parses a comma separated sensitivity list.
//
//	ParseSenses("posedge clk, negedge rst_n, key")
//
func ParseSenses(in string) ([]Sense, error) {
	var out []Sense
	l := Lexer(in)
	i := l.Lex()
	if i.Type == EOF {
		return nil, nil
	}
	for {
		if i.Type != Ident {
			return nil, parseError(in, i.Pos, "expected signal name or edge")
		}
		s := Sense{Name: i.Value.(string), Pos: i.Pos}
		if s.Name == Posedge || s.Name == Negedge {
			s.Edge = s.Name
			i = l.Lex()
			if i.Type != Ident {
				return nil, parseError(in, i.Pos, "expected signal name after "+s.Edge)
			}
			s.Name = i.Value.(string)
		}
		out = append(out, s)
		i = l.Lex()
		switch i.Type {
		case EOF:
			return out, nil
		case Comma:
			i = l.Lex()
		default:
			return nil, parseError(in, i.Pos, "unexpected "+i.String())
		}
	}
}

func parseError(in string, pos lex.Pos, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
