package automaton

import (
	"strconv"
	"strings"
)

// SymbolKind identifies the shape of a Symbol.
type SymbolKind uint8

const (
	// SymbolChar is a concrete text unit (a character or short string).
	SymbolChar SymbolKind = iota
	// SymbolInt is a bounded integer drawn from a program's input domain.
	SymbolInt
	// SymbolEOF is the distinguished end-of-input marker.
	SymbolEOF
)

// Symbol is one unit of automaton input or output. Symbols compare
// structurally and are usable as map keys.
type Symbol struct {
	Kind SymbolKind
	Text string // payload for SymbolChar
	Num  int    // payload for SymbolInt
}

// EOF is the end-of-input marker. It is substituted for a read whenever
// no more input is available.
var EOF = Symbol{Kind: SymbolEOF}

// Char returns a text symbol.
func Char(text string) Symbol {
	return Symbol{Kind: SymbolChar, Text: text}
}

// Int returns a bounded-integer symbol.
func Int(n int) Symbol {
	return Symbol{Kind: SymbolInt, Num: n}
}

// IsEOF reports whether s is the end-of-input marker.
func (s Symbol) IsEOF() bool {
	return s.Kind == SymbolEOF
}

// String renders text symbols as their text, integer symbols in decimal,
// and the end marker as "<eof>".
func (s Symbol) String() string {
	switch s.Kind {
	case SymbolInt:
		return strconv.Itoa(s.Num)
	case SymbolEOF:
		return "<eof>"
	default:
		return s.Text
	}
}

// OutputString concatenates the rendered symbols of an output sequence.
func OutputString(out []Symbol) string {
	var b strings.Builder
	for _, s := range out {
		b.WriteString(s.String())
	}
	return b.String()
}

// compareSymbols orders symbols by kind, then payload. It fixes the
// iteration order wherever row keys must be visited deterministically.
func compareSymbols(a, b Symbol) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	switch a.Kind {
	case SymbolInt:
		return a.Num - b.Num
	case SymbolEOF:
		return 0
	default:
		return strings.Compare(a.Text, b.Text)
	}
}

// equalOutput reports whether two output sequences are identical.
func equalOutput(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
