// Package hooks implements the per-AST-node override registry of spec §4.1.
//
// The registry is the interpreter's sole extension point: it is consulted
// only for *ast.TypeAlias nodes, keyed by node pointer identity, and is
// populated once per node at schema-construction time. There is
// deliberately no unregister operation, matching the teacher's own
// module-level-state-with-explicit-register pattern (see DESIGN.md).
package hooks

import (
	"sync"

	"github.com/shapekit/shapekit/ast"
)

// Handler replaces the interpreter's default TypeAlias expansion. It
// receives the already-compiled parsers for the alias's type parameters,
// in declaration order.
type Handler func(typeParameters ...ast.Parser) ast.Parser

var (
	mu       sync.RWMutex
	registry = map[*ast.TypeAlias]Handler{}
)

// Register installs handler for node. Registering the same node twice
// panics: the registry is set-once-per-node, not a last-writer-wins map.
func Register(node *ast.TypeAlias, handler Handler) {
	if node == nil {
		panic("hooks: node must not be nil")
	}
	if handler == nil {
		panic("hooks: handler must not be nil")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[node]; exists {
		panic("hooks: node already has a registered hook")
	}
	registry[node] = handler
}

// Lookup returns the handler registered for node, if any. Safe for
// concurrent use with Register from multiple goroutines, though in
// practice registration happens during single-threaded schema
// construction and lookups happen during (also read-only) compilation.
func Lookup(node *ast.TypeAlias) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[node]
	return h, ok
}
