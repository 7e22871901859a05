package codec

import (
	"github.com/shapekit/shapekit/ast"
)

// Identity returns an ast.Transform whose From and To are both from. It
// exercises the Transform/guard interaction of spec.md §4.4 (guard
// descends only into To) without changing shape: decode and encode both
// pass the value through unchanged.
func Identity(from ast.Node) *ast.Transform {
	pass := func(value any, opts ast.ParseOptions) ast.ParseResult { return ast.Success(value) }
	return ast.NewTransform(from, from, pass, pass)
}
