// Package memo provides the fix-point box the interpreter uses to compile
// recursive (Lazy) schemas without looping forever (spec §3.3, §4.4,
// design note "Recursive schemas").
package memo

import "github.com/shapekit/shapekit/ast"

type box struct {
	real ast.Parser
}

func (b *box) ref() ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		return b.real(input, opts)
	}
}

// Table tracks one box per Lazy node encountered during a single Compile
// call. It is not safe for concurrent use across goroutines compiling the
// same Table; each top-level Compile call owns its own Table, matching the
// "single-writer by synchronous compilation order" guarantee of spec §5.
type Table struct {
	boxes map[*ast.Lazy]*box
}

func NewTable() *Table { return &Table{boxes: map[*ast.Lazy]*box{}} }

// Resolve returns a stable Parser reference for node. The first call for a
// given node allocates a box and immediately hands out a reference to it
// before calling build, so that build can recurse back into Resolve(node,
// ...) — via a nested Lazy thunk evaluation that reaches the same node —
// and receive the same deferred reference instead of recursing forever.
// Once build returns, the box is filled in exactly once and every
// reference, old or new, reads the real parser from then on.
func (t *Table) Resolve(node *ast.Lazy, build func() ast.Parser) ast.Parser {
	if b, ok := t.boxes[node]; ok {
		return b.ref()
	}
	b := &box{}
	t.boxes[node] = b
	real := build()
	b.real = real
	return b.ref()
}
