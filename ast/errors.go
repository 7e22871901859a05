package ast

import "fmt"

// ErrorKind discriminates the ParseError variants of spec §3.2.
type ErrorKind int

const (
	ErrType       ErrorKind = iota // value failed a primitive/shape check
	ErrMissing                     // required element/key absent
	ErrUnexpected                  // extra element/key not permitted
	ErrEqual                       // literal/symbol mismatch
	ErrTransform                   // transform step rejected
	ErrIndex                       // nested errors at array index
	ErrKey                         // nested errors at object key
	ErrMember                      // nested errors from one union branch
)

// ParseError is one diagnostic entry. Which fields are meaningful depends
// on Kind; see the constructors below, which are the only supported way to
// build a well-formed value.
type ParseError struct {
	Kind ErrorKind

	// ErrType / ErrEqual / ErrTransform (From side)
	AST AST
	// ErrTransform only
	To AST
	// ErrType / ErrUnexpected / ErrTransform / ErrEqual
	Actual any
	// ErrEqual only
	Expected any

	// ErrIndex only
	Index int
	// ErrKey only
	Key PropertyKey

	// ErrIndex / ErrKey / ErrMember: the wrapped child errors. Always
	// non-empty for a well-formed ParseError of these kinds.
	Children []ParseError
}

func TypeError(node AST, actual any) ParseError {
	return ParseError{Kind: ErrType, AST: node, Actual: actual}
}

func MissingError() ParseError { return ParseError{Kind: ErrMissing} }

func UnexpectedError(actual any) ParseError {
	return ParseError{Kind: ErrUnexpected, Actual: actual}
}

func EqualError(expected, actual any) ParseError {
	return ParseError{Kind: ErrEqual, Expected: expected, Actual: actual}
}

func TransformError(from, to AST, actual any) ParseError {
	return ParseError{Kind: ErrTransform, AST: from, To: to, Actual: actual}
}

func IndexError(i int, errs []ParseError) ParseError {
	return ParseError{Kind: ErrIndex, Index: i, Children: errs}
}

func KeyError(k PropertyKey, errs []ParseError) ParseError {
	return ParseError{Kind: ErrKey, Key: k, Children: errs}
}

func MemberError(errs []ParseError) ParseError {
	return ParseError{Kind: ErrMember, Children: errs}
}

// Error renders a short, single-line summary. It is not the pretty
// multi-line tree the throwing operations produce (see package render);
// it exists so ParseError satisfies the error interface on its own.
func (e ParseError) Error() string {
	switch e.Kind {
	case ErrType:
		return fmt.Sprintf("invalid type: expected %s, got %#v", tagOf(e.AST), e.Actual)
	case ErrMissing:
		return "missing required value"
	case ErrUnexpected:
		return fmt.Sprintf("unexpected value %#v", e.Actual)
	case ErrEqual:
		return fmt.Sprintf("expected %#v, got %#v", e.Expected, e.Actual)
	case ErrTransform:
		return fmt.Sprintf("transform %s -> %s rejected %#v", tagOf(e.AST), tagOf(e.To), e.Actual)
	case ErrIndex:
		return fmt.Sprintf("at index %d: %s", e.Index, joinChildren(e.Children))
	case ErrKey:
		return fmt.Sprintf("at key %q: %s", e.Key.String(), joinChildren(e.Children))
	case ErrMember:
		return fmt.Sprintf("no union member matched: %s", joinChildren(e.Children))
	default:
		return "parse error"
	}
}

func tagOf(n AST) string {
	if n == nil {
		return "<nil>"
	}
	return n.Tag().String()
}

func joinChildren(errs []ParseError) string {
	if len(errs) == 0 {
		return ""
	}
	out := errs[0].Error()
	for _, e := range errs[1:] {
		out += "; " + e.Error()
	}
	return out
}
