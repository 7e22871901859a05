package codec

import (
	"time"

	"github.com/shapekit/shapekit/ast"
)

// timeKeyword is a diagnostic-only node standing in for "time.Time" on
// the To side of RFC3339's Transform, the same role ast.UnknownArray/
// ast.UnknownRecord play for Tuple/TypeLiteral: it exists so a rejected
// value can name the shape it failed to become, without being part of
// the constructible node-kind surface.
type timeKeyword struct{}

func (timeKeyword) Tag() ast.Tag { return ast.TagUnknownRecordKeyword }

var timeNode ast.Node = timeKeyword{}

// RFC3339 returns an ast.Transform between RFC3339 strings and
// time.Time, using only the standard library's time package since no
// pack dependency parses RFC3339 timestamps any better than it does.
func RFC3339() *ast.Transform {
	decode := func(value any, opts ast.ParseOptions) ast.ParseResult {
		s, ok := value.(string)
		if !ok {
			return ast.Failure([]ast.ParseError{ast.TransformError(ast.String, timeNode, value)})
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return ast.Failure([]ast.ParseError{ast.TransformError(ast.String, timeNode, value)})
		}
		return ast.Success(t)
	}
	encode := func(value any, opts ast.ParseOptions) ast.ParseResult {
		t, ok := value.(time.Time)
		if !ok {
			return ast.Failure([]ast.ParseError{ast.TransformError(timeNode, ast.String, value)})
		}
		return ast.Success(t.UTC().Format(time.RFC3339Nano))
	}
	return ast.NewTransform(ast.String, timeNode, decode, encode)
}
