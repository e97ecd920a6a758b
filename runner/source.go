package runner

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/silver-ag/finity/automaton"
)

// Source produces input symbols on demand. The runner asks for a
// symbol only when the machine is about to consume one, so interactive
// sources block exactly when the machine is waiting for input. An
// exhausted source returns the end-of-input symbol forever rather than
// an error: end of input is an ordinary symbol the machine may consume.
type Source interface {
	ReadSymbol() (automaton.Symbol, error)
}

// BufferSource replays a fixed symbol sequence, then reports end of
// input forever.
type BufferSource struct {
	pending []automaton.Symbol
}

// NewBufferSource creates a source over a fixed sequence of symbols.
func NewBufferSource(symbols ...automaton.Symbol) *BufferSource {
	return &BufferSource{pending: symbols}
}

// ReadSymbol pops the next buffered symbol.
func (s *BufferSource) ReadSymbol() (automaton.Symbol, error) {
	if len(s.pending) == 0 {
		return automaton.EOF, nil
	}
	sym := s.pending[0]
	s.pending = s.pending[1:]
	return sym, nil
}

// IntLineSource reads one integer symbol per line, the shape compiled
// input instructions expect. Blank lines are skipped. Once the
// underlying reader runs out it reports end of input forever.
type IntLineSource struct {
	scanner *bufio.Scanner
	domain  int
	done    bool
}

// NewIntLineSource creates a line-oriented integer source. When domain
// is positive, values outside 0..domain-1 are rejected.
func NewIntLineSource(r io.Reader, domain int) *IntLineSource {
	return &IntLineSource{scanner: bufio.NewScanner(r), domain: domain}
}

// ReadSymbol reads the next non-blank line as an integer symbol.
func (s *IntLineSource) ReadSymbol() (automaton.Symbol, error) {
	if s.done {
		return automaton.EOF, nil
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return automaton.Symbol{}, fmt.Errorf("%w: %q", ErrBadInput, line)
		}
		if s.domain > 0 && (n < 0 || n >= s.domain) {
			return automaton.Symbol{}, fmt.Errorf("%w: %d is outside 0..%d", ErrBadInput, n, s.domain-1)
		}
		return automaton.Int(n), nil
	}
	if err := s.scanner.Err(); err != nil {
		return automaton.Symbol{}, fmt.Errorf("runner: reading input: %w", err)
	}
	s.done = true
	return automaton.EOF, nil
}
