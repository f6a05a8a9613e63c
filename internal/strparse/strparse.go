// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package strparse provides facilities for parsing the lines of the tree
// debug formats.
package strparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Parser splits a line into tokens and offers typed accessors over them.
//
// Tokens are separated by whitespace; in addition user-specified separators
// are always separate tokens. For example, when passed the separator `:` the
// string `3: leaf 0.5` results in tokens `3`, `:`, `leaf`, `0.5`. A token
// starting with a double quote extends to the matching closing quote and may
// contain whitespace and separators: `split "net income" < 5` results in
// tokens `split`, `"net income"`, `<`, `5`.
//
// All Parser methods throw panics instead of returning errors. The code that
// uses a Parser can recover them and convert them to errors.
type Parser struct {
	original  string
	tokens    []token
	lastToken token
}

type token struct {
	tok    string
	offset int
}

// MakeParser constructs a new Parser that converts any instance of the runes
// contained in [separators] into separate tokens, and consumes the provided
// input string. It panics if a quoted token is not terminated.
func MakeParser(separators string, input string) Parser {
	p := Parser{original: input}
	for off := 0; off < len(input); {
		rest := input[off:]
		r, size := utf8.DecodeRuneInString(rest)
		switch {
		case unicode.IsSpace(r):
			off += size
		case rest[0] == '"':
			q, err := strconv.QuotedPrefix(rest)
			if err != nil {
				p.lastToken = token{tok: rest, offset: off}
				p.Errf("unterminated quoted string")
			}
			p.tokens = append(p.tokens, token{tok: q, offset: off})
			off += len(q)
		case strings.IndexByte(separators, rest[0]) >= 0:
			p.tokens = append(p.tokens, token{tok: rest[:1], offset: off})
			off++
		default:
			end := strings.IndexFunc(rest, func(r rune) bool {
				return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
			})
			if end == -1 {
				end = len(rest)
			} else if end == 0 {
				end = size
			}
			p.tokens = append(p.tokens, token{tok: rest[:end], offset: off})
			off += end
		}
	}
	return p
}

// Done returns true if there are no more tokens.
func (p *Parser) Done() bool {
	return len(p.tokens) == 0
}

// Offset returns the offset of the next token.
func (p *Parser) Offset() int {
	if p.Done() {
		return len(p.original)
	}
	return p.tokens[0].offset
}

// Peek returns the next token, without consuming the token. Returns "" if there
// are no more tokens.
func (p *Parser) Peek() string {
	if p.Done() {
		p.lastToken = token{}
		return ""
	}
	p.lastToken = p.tokens[0]
	return p.tokens[0].tok
}

// Next returns the next token, or "" if there are no more tokens.
func (p *Parser) Next() string {
	res := p.Peek()
	if res != "" {
		p.tokens = p.tokens[1:]
	}
	return res
}

// Expect consumes the next tokens, verifying that they exactly match the
// arguments.
func (p *Parser) Expect(tokens ...string) {
	for _, tok := range tokens {
		if res := p.Next(); res != tok {
			p.Errf("expected %q, got %q", tok, res)
		}
	}
}

// ExpectDone panics if any tokens remain.
func (p *Parser) ExpectDone() {
	if !p.Done() {
		p.Errf("unexpected trailing input %q", p.Remaining())
	}
}

// Int parses the next token as an integer.
func (p *Parser) Int() int {
	x, err := strconv.Atoi(p.Next())
	if err != nil {
		p.Errf("cannot parse number: %v", err)
	}
	return x
}

// Float parses the next token as a float64. The SAS missing value "." is
// not accepted.
func (p *Parser) Float() float64 {
	x, err := strconv.ParseFloat(p.Next(), 64)
	if err != nil {
		p.Errf("cannot parse number: %v", err)
	}
	return x
}

// IsQuoted returns true if the next token is a quoted string.
func (p *Parser) IsQuoted() bool {
	return strings.HasPrefix(p.Peek(), `"`)
}

// Name parses the next token as a name: either a bare token or a quoted
// string, which is unquoted.
func (p *Parser) Name() string {
	if !p.IsQuoted() {
		name := p.Next()
		if name == "" {
			p.Errf("expected name")
		}
		return name
	}
	tok := p.Next()
	s, err := strconv.Unquote(tok)
	if err != nil {
		p.Errf("cannot unquote %s: %v", tok, err)
	}
	return s
}

// TryKeyValue consumes the next token if it has the form key=value, returning
// the key and the value.
func (p *Parser) TryKeyValue() (key, value string, ok bool) {
	tok := p.Peek()
	i := strings.IndexByte(tok, '=')
	if i <= 0 || tok[0] == '"' {
		return "", "", false
	}
	p.Next()
	return tok[:i], tok[i+1:], true
}

// Remaining returns all the remaining tokens, separated by spaces.
func (p *Parser) Remaining() string {
	var buf strings.Builder
	for _, tok := range p.tokens {
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(tok.tok)
	}
	p.tokens = nil
	return buf.String()
}

// Errf panics with an error which includes the original string and the last
// token.
func (p *Parser) Errf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(errors.Errorf("error parsing %q at token %q: %s", p.original, p.lastToken.tok, msg))
}

// Recover converts a panic raised by a Parser into an error stored in *err.
// It must be called directly by a deferred function:
//
//	defer strparse.Recover(&err)
func Recover(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = e
	}
}
