// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lex_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stremme1/vsim/internal/lex"
)

const (
	word lex.Type = iota
	punct
)

func lexWords(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		l.Emit(lex.EOF, nil)
		return lexWords
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case unicode.IsLetter(r):
		var b strings.Builder
		for unicode.IsLetter(r) {
			b.WriteRune(r)
			r = l.Next()
		}
		l.Backup()
		l.Emit(word, b.String())
	default:
		l.Emit(punct, r)
	}
	return nil
}

func TestLexer(t *testing.T) {
	type tok struct {
		t   lex.Type
		pos lex.Pos
		v   interface{}
	}
	data := []struct {
		in  string
		out []tok
	}{
		{"", []tok{{lex.EOF, 0, nil}}},
		{"ab", []tok{{word, 0, "ab"}, {lex.EOF, 2, nil}}},
		{"  foo, bar ", []tok{{word, 2, "foo"}, {punct, 5, ','}, {word, 7, "bar"}, {lex.EOF, 11, nil}}},
		{"x,y", []tok{{word, 0, "x"}, {punct, 1, ','}, {word, 2, "y"}, {lex.EOF, 3, nil}}},
	}
	for _, d := range data {
		l := lex.New(strings.NewReader(d.in), lexWords)
		var got []tok
		for range d.out {
			it := l.Lex()
			got = append(got, tok{it.Type, it.Pos, it.Value})
		}
		assert.Equal(t, d.out, got, d.in)
		// EOF is sticky
		assert.Equal(t, lex.Type(lex.EOF), l.Lex().Type, d.in)
	}
}
