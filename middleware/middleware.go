// Package middleware holds the request-scoped helpers shared by the
// echo and gin adapters: a typed context key for the decoded value and
// the JSON error payload shape both adapters return on a 400.
package middleware

import (
	"context"

	"github.com/shapekit/shapekit/ast"
)

type ctxKeyDecoded struct{}

// ContextWithDecoded attaches a decoded value to ctx.
func ContextWithDecoded(ctx context.Context, value any) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, value)
}

// DecodedFromContext retrieves the value ContextWithDecoded attached.
func DecodedFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyDecoded{})
	return v, v != nil
}

// ErrorPayload shapes a rejected decode's diagnostics for a JSON
// response body.
func ErrorPayload(errs []ast.ParseError) map[string]any {
	return map[string]any{"errors": errs}
}
