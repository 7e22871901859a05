package shapekit

import (
	"fmt"
	"sync"

	"github.com/shapekit/shapekit/ast"
	"github.com/shapekit/shapekit/internal/interp"
	"github.com/shapekit/shapekit/render"
)

// cache memoizes Compile per (node, direction) pair so repeated Decode/
// Guard/Encode calls against the same ast.Node reuse one compiled Parser
// (spec §5: compiled parsers are referentially transparent and safe to
// share). Keyed by node identity, not node value, since ast.Node values
// are built once and referenced by pointer throughout a program.
type cacheKey struct {
	node ast.Node
	dir  interp.Direction
}

var (
	cacheMu sync.RWMutex
	cache   = map[cacheKey]ast.Parser{}
)

func compiled(node ast.Node, dir interp.Direction) ast.Parser {
	key := cacheKey{node: node, dir: dir}
	cacheMu.RLock()
	p, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		return p
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if p, ok := cache[key]; ok {
		return p
	}
	p = interp.Compile(node, dir)
	cache[key] = p
	return p
}

// Decode parses input against node in decoder direction.
func Decode(node ast.Node, input any, opts ...ast.ParseOptions) ast.ParseResult {
	return compiled(node, interp.DirDecoder)(input, option(opts))
}

// Guard reports whether input belongs to the shape described by node.
func Guard(node ast.Node, input any, opts ...ast.ParseOptions) bool {
	return compiled(node, interp.DirGuard)(input, option(opts)).Accepted()
}

// Encode parses value against node in encoder direction, running any
// Transform nodes' Encode leg.
func Encode(node ast.Node, value any, opts ...ast.ParseOptions) ast.ParseResult {
	return compiled(node, interp.DirEncoder)(value, option(opts))
}

// DecodeOrThrow parses input and panics with a rendered error summary on
// failure.
func DecodeOrThrow(node ast.Node, input any, opts ...ast.ParseOptions) any {
	res := Decode(node, input, opts...)
	if res.IsFailure() {
		panic(throwError(res.Errors))
	}
	return res.Value
}

// Asserts panics with a rendered error summary if input does not belong
// to the shape described by node.
func Asserts(node ast.Node, input any, opts ...ast.ParseOptions) {
	res := compiled(node, interp.DirGuard)(input, option(opts))
	if !res.Accepted() {
		panic(throwError(res.Errors))
	}
}

// EncodeOrThrow parses value in encoder direction and panics with a
// rendered error summary on failure.
func EncodeOrThrow(node ast.Node, value any, opts ...ast.ParseOptions) any {
	res := Encode(node, value, opts...)
	if res.IsFailure() {
		panic(throwError(res.Errors))
	}
	return res.Value
}

func option(opts []ast.ParseOptions) ast.ParseOptions {
	if len(opts) == 0 {
		return ast.ParseOptions{}
	}
	return opts[0]
}

// ThrownError is the error type panicked by the OrThrow/Asserts
// operations. Its message is the pretty multi-line tree spec.md §4.6/§7
// requires; Errors retains the original diagnostics for callers that
// recover the panic and want to pattern-match on them.
type ThrownError struct {
	Errors []ast.ParseError
}

func (e *ThrownError) Error() string { return render.RenderTree(e.Errors) }

func throwError(errs []ast.ParseError) error {
	if len(errs) == 0 {
		return fmt.Errorf("shapekit: rejected with no diagnostics")
	}
	return &ThrownError{Errors: errs}
}
