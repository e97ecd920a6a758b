package compiler

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// Environment is a snapshot of program variables, mapping each bound name
// to a bounded integer. A variable bound to zero and an unbound variable
// are different environments: compiled states are keyed by the full
// snapshot.
type Environment map[string]int

// Copy creates a deep copy of the environment.
func (e Environment) Copy() Environment {
	result := make(Environment, len(e))
	for k, v := range e {
		result[k] = v
	}
	return result
}

// With returns a copy of the environment with one binding replaced.
func (e Environment) With(name string, value int) Environment {
	result := e.Copy()
	result[name] = value
	return result
}

// Equals checks if two environments bind the same names to the same
// values.
func (e Environment) Equals(other Environment) bool {
	if len(e) != len(other) {
		return false
	}
	for k, v := range e {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Hash returns a deterministic content hash of the environment.
func (e Environment) Hash() string {
	keys := e.SortedKeys()
	h := sha256.New()
	buf := make([]byte, 8)
	for _, k := range keys {
		h.Write([]byte(k))
		binary.BigEndian.PutUint64(buf, uint64(e[k]))
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// String renders the bindings as sorted "name=value" pairs.
func (e Environment) String() string {
	keys := e.SortedKeys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, e[k]))
	}
	return strings.Join(parts, " ")
}

// SortedKeys returns the bound variable names in sorted order.
func (e Environment) SortedKeys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
