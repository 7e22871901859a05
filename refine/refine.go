// Package refine builds ast.Refinement nodes for the constraints a
// schema author commonly wants past a plain shape check: range and
// length bounds, pattern matching. It is a narrowed stand-in for the
// teacher's rules package, which composes whole-struct conditional
// rules via reflection over struct paths; that machinery sits one layer
// above the AST interpreter and is not reproduced here. Only the
// "build an ast.Refinement.Decode function" concern survives, scoped to
// single already-decoded values.
package refine

import (
	"regexp"

	"github.com/shapekit/shapekit/ast"
)

// Positive rejects numbers that are not strictly greater than zero. Its
// From is ast.Number, so the shape check runs before the predicate;
// *big.Int values are not accepted.
func Positive() *ast.Refinement {
	return ast.NewRefinement(ast.Number, func(value any, opts ast.ParseOptions) ast.ParseResult {
		f, ok := asFloat(value)
		if !ok || f <= 0 {
			return ast.Failure([]ast.ParseError{ast.TransformError(ast.Number, ast.Number, value)})
		}
		return ast.Success(value)
	})
}

// MinLength rejects strings shorter than n runes.
func MinLength(n int) *ast.Refinement {
	return ast.NewRefinement(ast.String, func(value any, opts ast.ParseOptions) ast.ParseResult {
		s, ok := value.(string)
		if !ok || len([]rune(s)) < n {
			return ast.Failure([]ast.ParseError{ast.TransformError(ast.String, ast.String, value)})
		}
		return ast.Success(value)
	})
}

// MaxLength rejects strings longer than n runes.
func MaxLength(n int) *ast.Refinement {
	return ast.NewRefinement(ast.String, func(value any, opts ast.ParseOptions) ast.ParseResult {
		s, ok := value.(string)
		if !ok || len([]rune(s)) > n {
			return ast.Failure([]ast.ParseError{ast.TransformError(ast.String, ast.String, value)})
		}
		return ast.Success(value)
	})
}

// Pattern rejects strings that do not match re.
func Pattern(re *regexp.Regexp) *ast.Refinement {
	return ast.NewRefinement(ast.String, func(value any, opts ast.ParseOptions) ast.ParseResult {
		s, ok := value.(string)
		if !ok || !re.MatchString(s) {
			return ast.Failure([]ast.ParseError{ast.TransformError(ast.String, ast.String, value)})
		}
		return ast.Success(value)
	})
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
