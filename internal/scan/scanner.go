// Package scan provides a generic, pausable state-machine scanner over a
// source file. It knows nothing about any particular grammar: states are
// supplied by the caller as continuations, and token kinds pass through
// as opaque values. Malformed input is reported as ordinary items, never
// as an aborted scan.
package scan

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"quill/internal/source"
	"quill/internal/token"
)

// EOFRune is returned by Next and Peek once input is exhausted.
const EOFRune rune = -1

// StateFn is one scanning state. It consumes input, emits items, and
// returns the next state; nil is the terminal marker.
type StateFn func(*Scanner) StateFn

// Item is one emitted lexical unit.
type Item struct {
	Kind token.Kind
	Span source.Span
	Text string
	// Msg is non-empty for diagnostic items.
	Msg string
}

// Mark is a saved scanner position for multi-rune rewinds.
type Mark int

// Scanner drives a StateFn machine over a file's content. The machine is
// suspended between NextItem calls; Run drains it eagerly.
type Scanner struct {
	file  *source.File
	input string
	start int
	pos   int
	prevW int
	state StateFn
	queue []Item

	// Depth tracks delimiter nesting for states that need to know
	// whether they are inside an argument list.
	Depth int
}

// New returns a Scanner positioned at the start of file, with initial as
// the first state.
func New(file *source.File, initial StateFn) *Scanner {
	return &Scanner{
		file:  file,
		input: string(file.Content),
		state: initial,
	}
}

// File returns the file being scanned.
func (s *Scanner) File() *source.File { return s.file }

// EOF reports whether the read position is at end of input.
func (s *Scanner) EOF() bool { return s.pos >= len(s.input) }

// Next consumes and returns the next rune, or EOFRune.
func (s *Scanner) Next() rune {
	if s.EOF() {
		s.prevW = 0
		return EOFRune
	}
	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += w
	s.prevW = w
	return r
}

// Peek returns the next rune without consuming it.
func (s *Scanner) Peek() rune {
	if s.EOF() {
		return EOFRune
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r
}

// Backup steps back over the rune most recently read by Next. Only one
// step of backup is supported between reads.
func (s *Scanner) Backup() {
	s.pos -= s.prevW
	s.prevW = 0
}

// Forward advances the read position by n bytes without decoding.
func (s *Scanner) Forward(n int) {
	s.pos += n
	if s.pos > len(s.input) {
		s.pos = len(s.input)
	}
	s.prevW = 0
}

// Pos saves the current read position.
func (s *Scanner) Pos() Mark { return Mark(s.pos) }

// Rewind restores a position previously saved with Pos. It must not cross
// an Emit boundary.
func (s *Scanner) Rewind(m Mark) {
	s.pos = int(m)
	s.prevW = 0
}

// Accept consumes the next rune if it appears in set.
func (s *Scanner) Accept(set string) bool {
	if strings.ContainsRune(set, s.Peek()) && !s.EOF() {
		s.Next()
		return true
	}
	return false
}

// AcceptRun consumes a maximal run of runes from set, returning the count.
func (s *Scanner) AcceptRun(set string) int {
	n := 0
	for !s.EOF() && strings.ContainsRune(set, s.Peek()) {
		s.Next()
		n++
	}
	return n
}

// AcceptFunc consumes the next rune if pred holds.
func (s *Scanner) AcceptFunc(pred func(rune) bool) bool {
	if !s.EOF() && pred(s.Peek()) {
		s.Next()
		return true
	}
	return false
}

// AcceptRunFunc consumes a maximal run of runes satisfying pred.
func (s *Scanner) AcceptRunFunc(pred func(rune) bool) int {
	n := 0
	for !s.EOF() && pred(s.Peek()) {
		s.Next()
		n++
	}
	return n
}

// HasPrefix reports whether the unread input starts with p.
func (s *Scanner) HasPrefix(p string) bool {
	return strings.HasPrefix(s.input[s.pos:], p)
}

// Rest returns the unread input. Read-only lookahead.
func (s *Scanner) Rest() string {
	return s.input[s.pos:]
}

// Pending returns the buffered span [start, pos).
func (s *Scanner) Pending() string {
	return s.input[s.start:s.pos]
}

// PendingLen returns the length of the buffered span in bytes.
func (s *Scanner) PendingLen() int {
	return s.pos - s.start
}

// Ignore discards the buffered span, for skippable whitespace.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.prevW = 0
}

// Emit flushes the buffered span as an item of the given kind and
// advances start past it.
func (s *Scanner) Emit(kind token.Kind) {
	s.queue = append(s.queue, Item{
		Kind: kind,
		Span: s.span(),
		Text: s.input[s.start:s.pos],
	})
	s.start = s.pos
	s.prevW = 0
}

// Errorf flushes the buffered span as a diagnostic item. Scanning is not
// aborted: the caller's state decides what to do next.
func (s *Scanner) Errorf(kind token.Kind, format string, args ...any) {
	s.queue = append(s.queue, Item{
		Kind: kind,
		Span: s.span(),
		Text: s.input[s.start:s.pos],
		Msg:  fmt.Sprintf(format, args...),
	})
	s.start = s.pos
	s.prevW = 0
}

func (s *Scanner) span() source.Span {
	return source.Span{
		File:  s.file.ID,
		Start: uint32(s.start),
		End:   uint32(s.pos),
	}
}

// NextItem drives the state machine until one item is available and
// returns it. Once states are exhausted it returns EOF items forever.
func (s *Scanner) NextItem() Item {
	for len(s.queue) == 0 {
		if s.state == nil {
			return Item{
				Kind: token.EOF,
				Span: source.Span{File: s.file.ID, Start: uint32(s.pos), End: uint32(s.pos)},
			}
		}
		s.state = s.state(s)
	}
	it := s.queue[0]
	s.queue = s.queue[1:]
	return it
}

// Run drains the machine eagerly, returning all items up to but not
// including EOF.
func (s *Scanner) Run() []Item {
	var items []Item
	for {
		it := s.NextItem()
		if it.Kind == token.EOF {
			return items
		}
		items = append(items, it)
	}
}
