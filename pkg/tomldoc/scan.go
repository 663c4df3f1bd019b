package tomldoc

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Key is a dotted key path with quoting removed, e.g. `a."b.c"` is
// Key{"a", "b.c"}.
type Key []string

// String joins the key segments with dots. Segments are not re-quoted.
func (k Key) String() string {
	return strings.Join(k, ".")
}

type exprKind int

const (
	exprBlank exprKind = iota
	exprComment
	exprKeyValue
	exprTable
	exprArrayTable
)

// expr is one logical line of a document. A key/value whose value spans
// several lines (multi-line strings, arrays) is still a single expr. text is
// the exact source, including the terminating newline.
type expr struct {
	kind exprKind
	key  Key
	text []byte
}

func (e *expr) isTrivia() bool {
	return e.kind == exprBlank || e.kind == exprComment
}

func (e *expr) isHeader() bool {
	return e.kind == exprTable || e.kind == exprArrayTable
}

// SyntaxError reports input the scanner could not split into expressions.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("toml: line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// scanner splits a document into expressions. It only understands enough of
// the grammar to find where each expression ends and what its key is; values
// are skipped, never decoded.
type scanner struct {
	src []byte
	pos int
}

func (s *scanner) errorf(format string, args ...any) error {
	line, col := 1, 1
	for _, c := range s.src[:min(s.pos, len(s.src))] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) hasPrefix(p string) bool {
	return !s.eof() && bytes.HasPrefix(s.src[s.pos:], []byte(p))
}

func (s *scanner) skipSpace() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// skipComment stops at the newline without consuming it.
func (s *scanner) skipComment() {
	for !s.eof() && s.src[s.pos] != '\n' {
		s.pos++
	}
}

// skipTrivia skips whitespace, newlines and comments between array and
// inline table elements.
func (s *scanner) skipTrivia() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		case '#':
			s.skipComment()
		default:
			return
		}
	}
}

// endLine consumes trailing whitespace, an optional comment and the newline.
func (s *scanner) endLine() error {
	s.skipSpace()
	if s.peek() == '#' {
		s.skipComment()
	}
	switch {
	case s.eof():
		return nil
	case s.src[s.pos] == '\n':
		s.pos++
		return nil
	case s.hasPrefix("\r\n"):
		s.pos += 2
		return nil
	}
	return s.errorf("unexpected %q after expression", s.src[s.pos])
}

func (s *scanner) next() (expr, error) {
	start := s.pos
	s.skipSpace()

	var e expr
	var err error
	switch {
	case s.eof():
		e.kind = exprBlank
	case s.peek() == '\n' || s.hasPrefix("\r\n"):
		e.kind = exprBlank
		err = s.endLine()
	case s.peek() == '#':
		e.kind = exprComment
		err = s.endLine()
	case s.peek() == '[':
		err = s.scanHeader(&e)
	default:
		err = s.scanKeyValue(&e)
	}
	if err != nil {
		return expr{}, err
	}
	e.text = bytes.Clone(s.src[start:s.pos])
	return e, nil
}

func (s *scanner) scanHeader(e *expr) error {
	s.pos++
	e.kind = exprTable
	if s.peek() == '[' {
		s.pos++
		e.kind = exprArrayTable
	}
	key, err := s.scanKey()
	if err != nil {
		return err
	}
	s.skipSpace()
	if s.peek() != ']' {
		return s.errorf("expected ']' to close table header")
	}
	s.pos++
	if e.kind == exprArrayTable {
		if s.peek() != ']' {
			return s.errorf("expected ']]' to close array table header")
		}
		s.pos++
	}
	e.key = key
	return s.endLine()
}

func (s *scanner) scanKeyValue(e *expr) error {
	key, err := s.scanKey()
	if err != nil {
		return err
	}
	s.skipSpace()
	if s.peek() != '=' {
		return s.errorf("expected '=' after key %q", key.String())
	}
	s.pos++
	s.skipSpace()
	if err := s.scanValue(); err != nil {
		return err
	}
	e.kind = exprKeyValue
	e.key = key
	return s.endLine()
}

func (s *scanner) scanKey() (Key, error) {
	var key Key
	for {
		s.skipSpace()
		part, err := s.scanSimpleKey()
		if err != nil {
			return nil, err
		}
		key = append(key, part)
		s.skipSpace()
		if s.peek() != '.' {
			return key, nil
		}
		s.pos++
	}
}

func (s *scanner) scanSimpleKey() (string, error) {
	start := s.pos
	switch c := s.peek(); {
	case c == '"':
		if err := s.scanBasicString(); err != nil {
			return "", err
		}
		raw := string(s.src[start:s.pos])
		if v, err := strconv.Unquote(raw); err == nil {
			return v, nil
		}
		return raw[1 : len(raw)-1], nil
	case c == '\'':
		if err := s.scanLiteralString(); err != nil {
			return "", err
		}
		return string(s.src[start+1 : s.pos-1]), nil
	case isBareKeyChar(c):
		for !s.eof() && isBareKeyChar(s.src[s.pos]) {
			s.pos++
		}
		return string(s.src[start:s.pos]), nil
	}
	if s.eof() {
		return "", s.errorf("expected key")
	}
	return "", s.errorf("invalid character %q in key", s.peek())
}

func (s *scanner) scanValue() error {
	switch {
	case s.hasPrefix(`"""`):
		s.pos += 3
		return s.scanMultiline('"')
	case s.hasPrefix("'''"):
		s.pos += 3
		return s.scanMultiline('\'')
	case s.peek() == '"':
		return s.scanBasicString()
	case s.peek() == '\'':
		return s.scanLiteralString()
	case s.peek() == '[':
		return s.scanArray()
	case s.peek() == '{':
		return s.scanInlineTable()
	}
	return s.scanScalar()
}

func (s *scanner) scanBasicString() error {
	s.pos++
	for !s.eof() {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
		case '"':
			s.pos++
			return nil
		case '\n':
			return s.errorf("unterminated string")
		default:
			s.pos++
		}
	}
	return s.errorf("unterminated string")
}

func (s *scanner) scanLiteralString() error {
	s.pos++
	for !s.eof() {
		switch s.src[s.pos] {
		case '\'':
			s.pos++
			return nil
		case '\n':
			return s.errorf("unterminated literal string")
		default:
			s.pos++
		}
	}
	return s.errorf("unterminated literal string")
}

// scanMultiline expects the opening delimiter to be consumed already. Up to
// two quotes directly before the closing delimiter belong to the content.
func (s *scanner) scanMultiline(quote byte) error {
	closing := strings.Repeat(string(quote), 3)
	for !s.eof() {
		switch {
		case quote == '"' && s.src[s.pos] == '\\':
			s.pos += 2
		case s.hasPrefix(closing):
			s.pos += 3
			for i := 0; i < 2 && s.peek() == quote; i++ {
				s.pos++
			}
			return nil
		default:
			s.pos++
		}
	}
	return s.errorf("unterminated multi-line string")
}

func (s *scanner) scanArray() error {
	s.pos++
	for {
		s.skipTrivia()
		switch {
		case s.eof():
			return s.errorf("unterminated array")
		case s.peek() == ']':
			s.pos++
			return nil
		case s.peek() == ',':
			s.pos++
		default:
			if err := s.scanValue(); err != nil {
				return err
			}
		}
	}
}

func (s *scanner) scanInlineTable() error {
	s.pos++
	for {
		s.skipTrivia()
		switch {
		case s.eof():
			return s.errorf("unterminated inline table")
		case s.peek() == '}':
			s.pos++
			return nil
		case s.peek() == ',':
			s.pos++
		default:
			key, err := s.scanKey()
			if err != nil {
				return err
			}
			s.skipSpace()
			if s.peek() != '=' {
				return s.errorf("expected '=' after key %q", key.String())
			}
			s.pos++
			s.skipSpace()
			if err := s.scanValue(); err != nil {
				return err
			}
		}
	}
}

// scanScalar skips numbers, booleans and date-times.
func (s *scanner) scanScalar() error {
	start := s.pos
	for !s.eof() && !isScalarEnd(s.src[s.pos]) {
		s.pos++
	}
	// A space may separate the date and time of a date-time.
	if isDate(s.src[start:s.pos]) && s.peek() == ' ' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]) {
		s.pos++
		for !s.eof() && !isScalarEnd(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos == start {
		if s.eof() {
			return s.errorf("expected value")
		}
		return s.errorf("unexpected %q, expected value", s.src[s.pos])
	}
	return nil
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_' || c == '-'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isScalarEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', ']', '}', '#':
		return true
	}
	return false
}

// isDate reports whether b has the shape YYYY-MM-DD.
func isDate(b []byte) bool {
	if len(b) != 10 || b[4] != '-' || b[7] != '-' {
		return false
	}
	for i, c := range b {
		if i != 4 && i != 7 && !isDigit(c) {
			return false
		}
	}
	return true
}
