package interp

import (
	"math/big"
	"testing"

	"github.com/shapekit/shapekit/ast"
	"github.com/shapekit/shapekit/hooks"
)

func TestPrimitives_DecoderDirection(t *testing.T) {
	cases := []struct {
		name  string
		node  ast.Node
		input any
		ok    bool
	}{
		{"string-ok", ast.String, "hi", true},
		{"string-bad", ast.String, 1, false},
		{"number-ok", ast.Number, 3.5, true},
		{"number-bad", ast.Number, "3.5", false},
		{"bool-ok", ast.Boolean, true, true},
		{"object-map", ast.Object, map[string]any{"a": 1}, true},
		{"object-bad", ast.Object, 1, false},
		{"unknown-anything", ast.Unknown, 42, true},
		{"never-always-fails", ast.Never, 42, false},
		{"undefined-nil", ast.Undefined, nil, true},
		{"undefined-nonnil", ast.Undefined, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Compile(c.node, DirDecoder)
			res := p(c.input, ast.ParseOptions{})
			if res.Accepted() != c.ok {
				t.Fatalf("input %#v: accepted=%v want=%v (%#v)", c.input, res.Accepted(), c.ok, res)
			}
		})
	}
}

func TestLiteral(t *testing.T) {
	p := Compile(ast.NewLiteral("x"), DirDecoder)
	if !p("x", ast.ParseOptions{}).IsSuccess() {
		t.Fatalf("expected literal match success")
	}
	if !p("y", ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected literal mismatch failure")
	}
}

func TestBigInt_Coercion(t *testing.T) {
	p := Compile(ast.BigInt, DirDecoder)

	// Right-kind-but-unparsable input: Transform error, not Type.
	res := p("not-a-number", ast.ParseOptions{})
	if !res.IsFailure() || res.Errors[0].Kind != ast.ErrTransform {
		t.Fatalf("expected Transform error for bad numeric string, got %#v", res)
	}

	// Wrong-kind input: Type error.
	res = p(map[string]any{}, ast.ParseOptions{})
	if !res.IsFailure() || res.Errors[0].Kind != ast.ErrType {
		t.Fatalf("expected Type error for wrong-kind input, got %#v", res)
	}

	// Non-integral float: Transform error.
	res = p(1.5, ast.ParseOptions{})
	if !res.IsFailure() || res.Errors[0].Kind != ast.ErrTransform {
		t.Fatalf("expected Transform error for non-integral float, got %#v", res)
	}

	// Integral float, string, bool, and *big.Int all coerce successfully.
	for _, in := range []any{4.0, "7", true, big.NewInt(9)} {
		res = p(in, ast.ParseOptions{})
		if !res.IsSuccess() {
			t.Fatalf("expected success for %#v, got %#v", in, res)
		}
		if _, ok := res.Value.(*big.Int); !ok {
			t.Fatalf("expected *big.Int value, got %T", res.Value)
		}
	}
}

func TestTuple_FixedAndOptional(t *testing.T) {
	tuple := ast.NewTuple([]ast.TupleElement{
		{Type: ast.String},
		{Type: ast.Number, IsOptional: true},
	}, nil, false)
	p := Compile(tuple, DirDecoder)

	res := p([]any{"a", 1.0}, ast.ParseOptions{})
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %#v", res)
	}
	res = p([]any{"a"}, ast.ParseOptions{})
	if !res.IsSuccess() {
		t.Fatalf("expected success with optional element absent, got %#v", res)
	}
	res = p([]any{}, ast.ParseOptions{})
	if !res.IsFailure() {
		t.Fatalf("expected failure for missing required element, got %#v", res)
	}
	if res.Errors[0].Kind != ast.ErrIndex {
		t.Fatalf("expected IndexError wrapping, got %#v", res.Errors[0])
	}
}

func TestTuple_UnexpectedTrailing(t *testing.T) {
	tuple := ast.NewTuple([]ast.TupleElement{{Type: ast.String}}, nil, false)
	p := Compile(tuple, DirDecoder)

	res := p([]any{"a", "extra"}, ast.ParseOptions{})
	if !res.IsFailure() {
		t.Fatalf("expected fatal unexpected by default, got %#v", res)
	}

	res = p([]any{"a", "extra"}, ast.ParseOptions{IsUnexpectedAllowed: true})
	if !res.IsWarning() {
		t.Fatalf("expected warning when unexpected allowed, got %#v", res)
	}
}

func TestTuple_Rest(t *testing.T) {
	tuple := ast.NewTuple(
		[]ast.TupleElement{{Type: ast.String}},
		[]ast.AST{ast.Number, ast.Boolean},
		false,
	)
	p := Compile(tuple, DirDecoder)

	res := p([]any{"a", 1.0, 2.0, true}, ast.ParseOptions{})
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %#v", res)
	}
	out, ok := res.Value.([]any)
	if !ok || len(out) != 4 {
		t.Fatalf("unexpected output: %#v", res.Value)
	}
}

func TestTuple_AllErrorsCollectsEveryFailure(t *testing.T) {
	tuple := ast.NewTuple([]ast.TupleElement{
		{Type: ast.String}, {Type: ast.String},
	}, nil, false)
	p := Compile(tuple, DirDecoder)

	res := p([]any{1, 2}, ast.ParseOptions{AllErrors: true})
	if !res.IsFailure() || len(res.Errors) != 2 {
		t.Fatalf("expected two collected failures, got %#v", res)
	}

	res = p([]any{1, 2}, ast.ParseOptions{AllErrors: false})
	if !res.IsFailure() || len(res.Errors) != 1 {
		t.Fatalf("expected fail-fast after first error, got %#v", res)
	}
}

func TestTypeLiteral_RequiredOptionalAndIndexSignature(t *testing.T) {
	tl := ast.NewTypeLiteral(
		[]ast.PropertySignature{
			{Name: ast.StringKey("name"), Type: ast.String},
			{Name: ast.StringKey("nick"), Type: ast.String, IsOptional: true},
		},
		[]ast.IndexSignature{{Parameter: ast.String, Type: ast.Number}},
	)
	p := Compile(tl, DirDecoder)

	res := p(map[string]any{"name": "ada", "score": 9.0}, ast.ParseOptions{})
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %#v", res)
	}
	out := res.Value.(map[string]any)
	if out["name"] != "ada" || out["score"] != 9.0 {
		t.Fatalf("unexpected output: %#v", out)
	}

	res = p(map[string]any{}, ast.ParseOptions{})
	if !res.IsFailure() || res.Errors[0].Kind != ast.ErrKey {
		t.Fatalf("expected KeyError for missing required prop, got %#v", res)
	}
}

func TestTypeLiteral_UnexpectedKey(t *testing.T) {
	tl := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("name"), Type: ast.String},
	}, nil)
	p := Compile(tl, DirDecoder)

	res := p(map[string]any{"name": "a", "extra": 1}, ast.ParseOptions{})
	if !res.IsFailure() {
		t.Fatalf("expected fatal unexpected key, got %#v", res)
	}

	res = p(map[string]any{"name": "a", "extra": 1}, ast.ParseOptions{IsUnexpectedAllowed: true})
	if !res.IsWarning() {
		t.Fatalf("expected warning, got %#v", res)
	}
}

func TestUnion_SuccessShortCircuits(t *testing.T) {
	u := ast.NewUnion(ast.String, ast.Number)
	p := Compile(u, DirDecoder)
	res := p("x", ast.ParseOptions{})
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %#v", res)
	}
}

func TestUnion_PicksFewestUnexpected(t *testing.T) {
	strict := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("a"), Type: ast.String},
		{Name: ast.StringKey("b"), Type: ast.String},
	}, nil)
	loose := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("a"), Type: ast.String},
	}, nil)
	u := ast.NewUnion(strict, loose)
	p := Compile(u, DirDecoder)

	// The first input matches `strict` exactly (zero unexpected keys), so
	// it wins outright over `loose`, where "b" would be unexpected. The
	// second input lacks "b", so `strict` fails and `loose` ("c" is
	// unexpected there) is returned as the warning candidate.
	opts := ast.ParseOptions{IsUnexpectedAllowed: true, AllErrors: true}
	res := p(map[string]any{"a": "x", "b": "y"}, opts)
	if !res.IsSuccess() {
		t.Fatalf("expected the strict branch (no unexpected) to succeed outright, got %#v", res)
	}

	res = p(map[string]any{"a": "x", "c": "z"}, opts)
	if !res.IsWarning() {
		t.Fatalf("expected a warning candidate, got %#v", res)
	}
}

func TestUnion_StrictBranchToleratesExtraKeyDuringSelection(t *testing.T) {
	a := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("kind"), Type: ast.NewLiteral("a")},
		{Name: ast.StringKey("x"), Type: ast.Number},
	}, nil)
	b := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("kind"), Type: ast.NewLiteral("b")},
		{Name: ast.StringKey("y"), Type: ast.Number},
	}, nil)
	u := ast.NewUnion(a, b)
	p := Compile(u, DirDecoder)

	opts := ast.ParseOptions{IsUnexpectedAllowed: false, AllErrors: true}
	res := p(map[string]any{"kind": "b", "y": 3.0, "extra": 1.0}, opts)
	if !res.IsWarning() {
		t.Fatalf("expected a warning for the otherwise-matching branch, got %#v", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != ast.ErrKey || res.Errors[0].Key.String() != "extra" {
		t.Fatalf("expected a single Key(\"extra\", ...) warning, got %#v", res.Errors)
	}
	got := res.Value.(map[string]any)
	if got["kind"] != "b" || got["y"] != 3.0 {
		t.Fatalf("unexpected decoded value: %#v", got)
	}
}

func TestUnion_AllBranchesFail(t *testing.T) {
	u := ast.NewUnion(ast.String, ast.Number)
	p := Compile(u, DirDecoder)
	res := p(true, ast.ParseOptions{})
	if !res.IsFailure() {
		t.Fatalf("expected failure, got %#v", res)
	}
	if res.Errors[0].Kind != ast.ErrMember {
		t.Fatalf("expected MemberError wrapping, got %#v", res.Errors[0])
	}
}

func TestLazy_RecursiveSchema(t *testing.T) {
	var nodeNode *ast.Lazy
	nodeNode = ast.NewLazy("Node", func() ast.AST {
		return ast.NewTypeLiteral([]ast.PropertySignature{
			{Name: ast.StringKey("value"), Type: ast.Number},
			{Name: ast.StringKey("next"), Type: nodeNode, IsOptional: true},
		}, nil)
	})

	p := Compile(nodeNode, DirDecoder)
	res := p(map[string]any{
		"value": 1.0,
		"next": map[string]any{
			"value": 2.0,
		},
	}, ast.ParseOptions{})
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %#v", res)
	}
}

func TestEnums(t *testing.T) {
	e := ast.NewEnums(
		ast.EnumMember{Name: "Red", Value: "red"},
		ast.EnumMember{Name: "Blue", Value: "blue"},
	)
	p := Compile(e, DirDecoder)
	if !p("red", ast.ParseOptions{}).IsSuccess() {
		t.Fatalf("expected match")
	}
	if !p("green", ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected no match")
	}
}

func TestRefinement(t *testing.T) {
	positive := ast.NewRefinement(ast.Number, func(value any, opts ast.ParseOptions) ast.ParseResult {
		if value.(float64) <= 0 {
			return ast.Failure([]ast.ParseError{ast.TransformError(ast.Number, ast.Number, value)})
		}
		return ast.Success(value)
	})
	p := Compile(positive, DirDecoder)
	if !p(5.0, ast.ParseOptions{}).IsSuccess() {
		t.Fatalf("expected success")
	}
	if !p(-5.0, ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected failure")
	}
	if !p("nope", ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected shape failure to short-circuit before refinement runs")
	}
}

func TestTemplateLiteral(t *testing.T) {
	tl := ast.NewTemplateLiteral(
		ast.TemplateSpan{Literal: "id-", Placeholder: ast.Number},
	)
	p := Compile(tl, DirDecoder)
	if !p("id-42", ast.ParseOptions{}).IsSuccess() {
		t.Fatalf("expected match")
	}
	if !p("id-x", ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected no match")
	}
	if !p(42, ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected Type failure for non-string input")
	}
}

func TestTransform_DecoderEncoderGuard(t *testing.T) {
	tr := ast.NewTransform(ast.String, ast.Number,
		func(value any, opts ast.ParseOptions) ast.ParseResult {
			var n float64
			for _, r := range value.(string) {
				n = n*10 + float64(r-'0')
			}
			return ast.Success(n)
		},
		func(value any, opts ast.ParseOptions) ast.ParseResult {
			return ast.Success("encoded")
		},
	)

	dec := Compile(tr, DirDecoder)
	res := dec("42", ast.ParseOptions{})
	if !res.IsSuccess() || res.Value != 42.0 {
		t.Fatalf("unexpected decode result: %#v", res)
	}

	enc := Compile(tr, DirEncoder)
	res = enc(42.0, ast.ParseOptions{})
	if !res.IsSuccess() || res.Value != "encoded" {
		t.Fatalf("unexpected encode result: %#v", res)
	}

	guard := Compile(tr, DirGuard)
	if !guard(42.0, ast.ParseOptions{}).IsSuccess() {
		t.Fatalf("expected guard to descend into To and accept a number")
	}
	if !guard("42", ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected guard to reject a string, since it descends into To only")
	}
}

func TestTypeAlias_HookOverride(t *testing.T) {
	node := ast.NewTypeAlias("Overridden", ast.String)
	hooks.Register(node, func(typeParameters ...ast.Parser) ast.Parser {
		return func(input any, opts ast.ParseOptions) ast.ParseResult {
			return ast.Success("always-this")
		}
	})

	p := Compile(node, DirDecoder)
	res := p("anything", ast.ParseOptions{})
	if !res.IsSuccess() || res.Value != "always-this" {
		t.Fatalf("expected hook override to run, got %#v", res)
	}
}

func TestTypeAlias_NoHookDelegatesToBody(t *testing.T) {
	node := ast.NewTypeAlias("Plain", ast.String)
	p := Compile(node, DirDecoder)
	if !p("x", ast.ParseOptions{}).IsSuccess() {
		t.Fatalf("expected delegation to String")
	}
	if !p(1, ast.ParseOptions{}).IsFailure() {
		t.Fatalf("expected delegation to reject non-string")
	}
}
