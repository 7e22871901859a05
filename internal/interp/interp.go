// Package interp is the hard part: it compiles an ast.Node plus a
// Direction into an ast.Parser (spec §4.4). It is internal because, like
// the teacher's internal/engine, it is mechanism the public API wraps
// rather than a surface consumers are meant to call directly.
package interp

import (
	"math"
	"math/big"
	"reflect"
	"regexp"
	"sort"

	"github.com/shapekit/shapekit/ast"
	"github.com/shapekit/shapekit/hooks"
	"github.com/shapekit/shapekit/internal/memo"
)

// Direction selects which leg of a Transform node runs (spec §4.2). It
// affects only Transform; every other node behaves identically in all
// three directions.
type Direction int

const (
	DirDecoder Direction = iota
	DirGuard
	DirEncoder
)

type compiler struct {
	dir  Direction
	memo *memo.Table
}

// Compile walks node and returns the parser function for direction dir.
// Each call builds its own Lazy memo table, so the result is safe to
// retain and reuse across any number of later Parser invocations (spec
// §3.3); callers that compile the same (node, dir) pair repeatedly should
// cache the returned Parser themselves (the root package does this).
func Compile(node ast.Node, dir Direction) ast.Parser {
	c := &compiler{dir: dir, memo: memo.NewTable()}
	return c.compile(node)
}

func (c *compiler) compile(node ast.Node) ast.Parser {
	switch n := node.(type) {
	case *ast.TypeAlias:
		return c.compileTypeAlias(n)
	case *ast.Literal:
		return c.compileLiteral(n)
	case *ast.UniqueSymbol:
		return c.compileUniqueSymbol(n)
	case *ast.UndefinedKeyword:
		return c.compileSingleton(n, func(v any) bool { return v == nil })
	case *ast.VoidKeyword:
		return c.compileSingleton(n, func(v any) bool { return v == nil })
	case *ast.NeverKeyword:
		return c.compileNever(n)
	case *ast.UnknownKeyword:
		return c.compileAlwaysOK()
	case *ast.AnyKeyword:
		return c.compileAlwaysOK()
	case *ast.StringKeyword:
		return c.compileSingleton(n, func(v any) bool { _, ok := v.(string); return ok })
	case *ast.NumberKeyword:
		return c.compileSingleton(n, isNumeric)
	case *ast.BooleanKeyword:
		return c.compileSingleton(n, func(v any) bool { _, ok := v.(bool); return ok })
	case *ast.BigIntKeyword:
		return c.compileBigInt(n)
	case *ast.SymbolKeyword:
		return c.compileSingleton(n, func(v any) bool { _, ok := v.(*ast.Symbol); return ok })
	case *ast.ObjectKeyword:
		return c.compileSingleton(n, isObjectLike)
	case *ast.Tuple:
		return c.compileTuple(n)
	case *ast.TypeLiteral:
		return c.compileTypeLiteral(n)
	case *ast.Union:
		return c.compileUnion(n)
	case *ast.Lazy:
		return c.compileLazy(n)
	case *ast.Enums:
		return c.compileEnums(n)
	case *ast.Refinement:
		return c.compileRefinement(n)
	case *ast.TemplateLiteral:
		return c.compileTemplateLiteral(n)
	case *ast.Transform:
		return c.compileTransform(n)
	default:
		panic("interp: unhandled ast node kind " + node.Tag().String())
	}
}

// ---- singletons / primitives ----

func (c *compiler) compileSingleton(node ast.Node, accept func(any) bool) ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		if accept(input) {
			return ast.Success(input)
		}
		return ast.Failure([]ast.ParseError{ast.TypeError(node, input)})
	}
}

func (c *compiler) compileAlwaysOK() ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult { return ast.Success(input) }
}

func (c *compiler) compileNever(node ast.Node) ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		return ast.Failure([]ast.ParseError{ast.TypeError(node, input)})
	}
}

func (c *compiler) compileLiteral(n *ast.Literal) ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		if literalEquals(n.Value, input) {
			return ast.Success(input)
		}
		return ast.Failure([]ast.ParseError{ast.EqualError(n.Value, input)})
	}
}

func (c *compiler) compileUniqueSymbol(n *ast.UniqueSymbol) ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		if s, ok := input.(*ast.Symbol); ok && s == n.Symbol {
			return ast.Success(input)
		}
		return ast.Failure([]ast.ParseError{ast.EqualError(n.Symbol, input)})
	}
}

func (c *compiler) compileBigInt(node ast.Node) ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		switch v := input.(type) {
		case *big.Int:
			return ast.Success(v)
		case string:
			bi := new(big.Int)
			if _, ok := bi.SetString(v, 10); !ok {
				return ast.Failure([]ast.ParseError{ast.TransformError(ast.String, node, input)})
			}
			return ast.Success(bi)
		case bool:
			if v {
				return ast.Success(big.NewInt(1))
			}
			return ast.Success(big.NewInt(0))
		case float64:
			if v != math.Trunc(v) {
				return ast.Failure([]ast.ParseError{ast.TransformError(ast.Number, node, input)})
			}
			return ast.Success(big.NewInt(int64(v)))
		case float32:
			if float64(v) != math.Trunc(float64(v)) {
				return ast.Failure([]ast.ParseError{ast.TransformError(ast.Number, node, input)})
			}
			return ast.Success(big.NewInt(int64(v)))
		case int8, int16:
			return ast.Success(big.NewInt(reflect.ValueOf(v).Int()))
		case uint, uint8, uint16, uint32, uint64:
			return ast.Success(new(big.Int).SetUint64(reflect.ValueOf(v).Uint()))
		case int:
			return ast.Success(big.NewInt(int64(v)))
		case int32:
			return ast.Success(big.NewInt(int64(v)))
		case int64:
			return ast.Success(big.NewInt(v))
		default:
			return ast.Failure([]ast.ParseError{ast.TypeError(node, input)})
		}
	}
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isObjectLike(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	case reflect.Pointer:
		return !rv.IsNil()
	default:
		return false
	}
}

func literalEquals(expected, actual any) bool {
	if eb, ok := expected.(*big.Int); ok {
		ab, ok2 := actual.(*big.Int)
		return ok2 && eb.Cmp(ab) == 0
	}
	switch actual.(type) {
	case []any, map[string]any:
		return false
	}
	return expected == actual
}

// ---- TypeAlias ----

func (c *compiler) compileTypeAlias(n *ast.TypeAlias) ast.Parser {
	if h, ok := hooks.Lookup(n); ok {
		children := make([]ast.Parser, len(n.TypeParameters))
		for i, tp := range n.TypeParameters {
			children[i] = c.compile(tp)
		}
		return h(children...)
	}
	return c.compile(n.Type)
}

// ---- Lazy ----

func (c *compiler) compileLazy(n *ast.Lazy) ast.Parser {
	return c.memo.Resolve(n, func() ast.Parser {
		return c.compile(n.F())
	})
}

// ---- Enums ----

func (c *compiler) compileEnums(n *ast.Enums) ast.Parser {
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		for _, m := range n.Members {
			if literalEquals(m.Value, input) {
				return ast.Success(input)
			}
		}
		return ast.Failure([]ast.ParseError{ast.TypeError(n, input)})
	}
}

// ---- Refinement ----

func (c *compiler) compileRefinement(n *ast.Refinement) ast.Parser {
	from := c.compile(n.From)
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		res := from(input, opts)
		if res.IsFailure() {
			return res
		}
		out := n.Decode(res.Value, opts)
		return mergeWarnings(res, out)
	}
}

// ---- TemplateLiteral ----

func (c *compiler) compileTemplateLiteral(n *ast.TemplateLiteral) ast.Parser {
	re := regexp.MustCompile(n.Pattern())
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		s, ok := input.(string)
		if !ok {
			return ast.Failure([]ast.ParseError{ast.TypeError(ast.String, input)})
		}
		if !re.MatchString(s) {
			return ast.Failure([]ast.ParseError{ast.TypeError(n, input)})
		}
		return ast.Success(s)
	}
}

// ---- Transform ----

func (c *compiler) compileTransform(n *ast.Transform) ast.Parser {
	switch c.dir {
	case DirGuard:
		return c.compile(n.To)
	case DirEncoder:
		from := c.compile(n.From)
		return func(input any, opts ast.ParseOptions) ast.ParseResult {
			enc := n.Encode(input, opts)
			if !enc.Accepted() {
				return enc
			}
			res := from(enc.Value, opts)
			return mergeWarnings(enc, res)
		}
	default:
		from := c.compile(n.From)
		return func(input any, opts ast.ParseOptions) ast.ParseResult {
			res := from(input, opts)
			if res.IsFailure() {
				return res
			}
			dec := n.Decode(res.Value, opts)
			return mergeWarnings(res, dec)
		}
	}
}

// mergeWarnings combines a leading step's warnings with a following step's
// result, preserving order (leading warnings first).
func mergeWarnings(lead, next ast.ParseResult) ast.ParseResult {
	if !lead.IsWarning() {
		return next
	}
	switch next.Kind {
	case ast.KindSuccess:
		return ast.Warning(lead.Errors, next.Value)
	case ast.KindWarning:
		errs := make([]ast.ParseError, 0, len(lead.Errors)+len(next.Errors))
		errs = append(errs, lead.Errors...)
		errs = append(errs, next.Errors...)
		return ast.Warning(errs, next.Value)
	default: // Failure
		return next
	}
}

// ---- Union ----

func (c *compiler) compileUnion(n *ast.Union) ast.Parser {
	parsers := make([]ast.Parser, len(n.Types))
	for i, t := range n.Types {
		parsers[i] = c.compile(t)
	}
	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		// Branch selection must not let an otherwise-matching branch lose
		// to unexpected-key/index diagnostics alone: a branch that would
		// only fail because of extras is still the best candidate, just
		// with those extras downgraded to warnings. So branches are
		// evaluated with IsUnexpectedAllowed forced on, and the winning
		// branch's result (warnings included) is returned as-is.
		branchOpts := opts
		branchOpts.IsUnexpectedAllowed = true

		var candidate ast.ParseResult
		haveCandidate := false
		bestUnexpected := 0
		var members []ast.ParseError
		for _, p := range parsers {
			res := p(input, branchOpts)
			switch res.Kind {
			case ast.KindSuccess:
				return res
			case ast.KindWarning:
				count := countUnexpected(res.Errors)
				if !haveCandidate || count < bestUnexpected {
					candidate = res
					bestUnexpected = count
					haveCandidate = true
				}
			case ast.KindFailure:
				members = append(members, ast.MemberError(res.Errors))
			}
		}
		if haveCandidate {
			return candidate
		}
		if len(members) > 0 {
			return ast.Failure(members)
		}
		return ast.Failure([]ast.ParseError{ast.TypeError(n, input)})
	}
}

func countUnexpected(errs []ast.ParseError) int {
	n := 0
	for _, e := range errs {
		switch e.Kind {
		case ast.ErrUnexpected:
			n++
		case ast.ErrIndex, ast.ErrKey, ast.ErrMember:
			n += countUnexpected(e.Children)
		}
	}
	return n
}

// ---- accumulator: shared Tuple/TypeLiteral error bookkeeping ----

// accumulator implements spec §4.3's propagation policy: without
// AllErrors, the first fatal error stops the walk but keeps any warnings
// collected so far; with AllErrors, every position is visited and all
// diagnostics (warnings and wrapped fatal errors alike) are combined into
// one result.
type accumulator struct {
	opts   ast.ParseOptions
	diags  []ast.ParseError
	failed bool
}

// addFatal records a fatal, already-wrapped error. It returns true when
// the caller should stop processing further positions immediately.
func (a *accumulator) addFatal(e ast.ParseError) bool {
	a.diags = append(a.diags, e)
	a.failed = true
	return !a.opts.AllErrors
}

func (a *accumulator) addWarning(e ast.ParseError) {
	a.diags = append(a.diags, e)
}

func (a *accumulator) finish(value any) ast.ParseResult {
	if a.failed {
		return ast.Failure(a.diags)
	}
	if len(a.diags) > 0 {
		return ast.Warning(a.diags, value)
	}
	return ast.Success(value)
}

// ---- Tuple ----

func (c *compiler) compileTuple(n *ast.Tuple) ast.Parser {
	elemParsers := make([]ast.Parser, len(n.Elements))
	for i, e := range n.Elements {
		elemParsers[i] = c.compile(e.Type)
	}
	var restHead ast.Parser
	var restTail []ast.Parser
	if n.Rest != nil {
		restHead = c.compile(n.Rest[0])
		restTail = make([]ast.Parser, len(n.Rest)-1)
		for i, t := range n.Rest[1:] {
			restTail[i] = c.compile(t)
		}
	}
	numFixed := len(n.Elements)

	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		arr, ok := input.([]any)
		if !ok {
			return ast.Failure([]ast.ParseError{ast.TypeError(ast.UnknownArray, input)})
		}
		acc := &accumulator{opts: opts}
		out := make([]any, 0, len(arr))

		for i := 0; i < numFixed; i++ {
			el := n.Elements[i]
			if i >= len(arr) {
				if el.IsOptional {
					continue
				}
				if acc.addFatal(ast.IndexError(i, []ast.ParseError{ast.MissingError()})) {
					return acc.finish(out)
				}
				continue
			}
			res := elemParsers[i](arr[i], opts)
			if !recordIndexed(acc, &out, i, res) {
				return acc.finish(out)
			}
		}

		pos := numFixed
		if n.Rest != nil {
			tailLen := len(restTail)
			restEnd := len(arr) - tailLen
			if restEnd < pos {
				restEnd = pos
			}
			for ; pos < restEnd; pos++ {
				res := restHead(arr[pos], opts)
				if !recordIndexed(acc, &out, pos, res) {
					return acc.finish(out)
				}
			}
			for i, tp := range restTail {
				idx := restEnd + i
				if idx >= len(arr) {
					if acc.addFatal(ast.IndexError(idx, []ast.ParseError{ast.MissingError()})) {
						return acc.finish(out)
					}
					continue
				}
				res := tp(arr[idx], opts)
				if !recordIndexed(acc, &out, idx, res) {
					return acc.finish(out)
				}
			}
			pos = restEnd + tailLen
		} else if len(arr) > numFixed {
			for i := numFixed; i < len(arr); i++ {
				e := ast.UnexpectedError(arr[i])
				if opts.IsUnexpectedAllowed {
					acc.addWarning(ast.IndexError(i, []ast.ParseError{e}))
					out = append(out, arr[i])
				} else if acc.addFatal(ast.IndexError(i, []ast.ParseError{e})) {
					return acc.finish(out)
				}
			}
		}
		return acc.finish(out)
	}
}

func recordIndexed(acc *accumulator, out *[]any, i int, res ast.ParseResult) bool {
	switch {
	case res.IsFailure():
		return !acc.addFatal(ast.IndexError(i, res.Errors))
	case res.IsWarning():
		acc.addWarning(ast.IndexError(i, res.Errors))
		*out = append(*out, res.Value)
		return true
	default:
		*out = append(*out, res.Value)
		return true
	}
}

// ---- TypeLiteral ----

func (c *compiler) compileTypeLiteral(n *ast.TypeLiteral) ast.Parser {
	propParsers := make([]ast.Parser, len(n.PropertySignatures))
	for i, p := range n.PropertySignatures {
		propParsers[i] = c.compile(p.Type)
	}
	type indexCompiled struct {
		param ast.Parser
		value ast.Parser
	}
	idxs := make([]indexCompiled, len(n.IndexSignatures))
	for i, is := range n.IndexSignatures {
		idxs[i] = indexCompiled{param: c.compile(is.Parameter), value: c.compile(is.Type)}
	}
	fixedKeys := make(map[string]struct{}, len(n.PropertySignatures))
	for _, p := range n.PropertySignatures {
		if !p.Name.IsSymbol {
			fixedKeys[p.Name.Str] = struct{}{}
		}
	}

	return func(input any, opts ast.ParseOptions) ast.ParseResult {
		m, ok := input.(map[string]any)
		if !ok {
			return ast.Failure([]ast.ParseError{ast.TypeError(ast.UnknownRecord, input)})
		}
		acc := &accumulator{opts: opts}
		out := make(map[string]any, len(m))

		for i, p := range n.PropertySignatures {
			if p.Name.IsSymbol {
				// Raw input (map[string]any) cannot carry symbol keys; a
				// symbol-keyed property signature can never be satisfied.
				if !p.IsOptional {
					if acc.addFatal(ast.KeyError(p.Name, []ast.ParseError{ast.MissingError()})) {
						return acc.finish(out)
					}
				}
				continue
			}
			v, present := m[p.Name.Str]
			if !present {
				if p.IsOptional {
					continue
				}
				if acc.addFatal(ast.KeyError(p.Name, []ast.ParseError{ast.MissingError()})) {
					return acc.finish(out)
				}
				continue
			}
			res := propParsers[i](v, opts)
			if !recordKeyed(acc, out, p.Name.Str, p.Name, res) {
				return acc.finish(out)
			}
		}

		keys := make([]string, 0, len(m))
		for k := range m {
			if _, fixed := fixedKeys[k]; fixed {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := m[k]
			matched := false
			for _, ix := range idxs {
				kres := ix.param(k, opts)
				if !kres.Accepted() {
					continue
				}
				matched = true
				vres := ix.value(v, opts)
				if !recordKeyed(acc, out, k, ast.StringKey(k), vres) {
					return acc.finish(out)
				}
				break
			}
			if matched {
				continue
			}
			e := ast.UnexpectedError(v)
			if opts.IsUnexpectedAllowed {
				acc.addWarning(ast.KeyError(ast.StringKey(k), []ast.ParseError{e}))
				out[k] = v
			} else if acc.addFatal(ast.KeyError(ast.StringKey(k), []ast.ParseError{e})) {
				return acc.finish(out)
			}
		}
		return acc.finish(out)
	}
}

func recordKeyed(acc *accumulator, out map[string]any, outKey string, name ast.PropertyKey, res ast.ParseResult) bool {
	switch {
	case res.IsFailure():
		return !acc.addFatal(ast.KeyError(name, res.Errors))
	case res.IsWarning():
		acc.addWarning(ast.KeyError(name, res.Errors))
		out[outKey] = res.Value
		return true
	default:
		out[outKey] = res.Value
		return true
	}
}
