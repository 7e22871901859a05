// Package render turns a diagnostic tree into the pretty multi-line
// summary the throwing operations (DecodeOrThrow, Asserts, EncodeOrThrow)
// embed in the error they panic with. It is deliberately the smallest
// renderer that satisfies spec.md §4.6/§7 — no color, no configurable
// tree styles, grounded on the teacher's one-line Issues.Error() rather
// than a pretty-printer design of its own.
package render

import (
	"fmt"
	"strings"

	"github.com/shapekit/shapekit/ast"
	"github.com/shapekit/shapekit/i18n"
)

// RenderTree renders errs as an indented, newline-separated tree: one
// line per leaf error, nested under its Index/Key/Member wrapper lines.
func RenderTree(errs []ast.ParseError) string {
	var b strings.Builder
	for i, e := range errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeNode(&b, e, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, e ast.ParseError, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e.Kind {
	case ast.ErrIndex:
		fmt.Fprintf(b, "%sindex %d:\n", indent, e.Index)
		writeChildren(b, e.Children, depth+1)
	case ast.ErrKey:
		fmt.Fprintf(b, "%skey %q:\n", indent, e.Key.String())
		writeChildren(b, e.Children, depth+1)
	case ast.ErrMember:
		fmt.Fprintf(b, "%sno union member matched:\n", indent)
		writeChildren(b, e.Children, depth+1)
	default:
		fmt.Fprintf(b, "%s%s", indent, leafMessage(e))
	}
}

func writeChildren(b *strings.Builder, children []ast.ParseError, depth int) {
	for i, c := range children {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeNode(b, c, depth)
	}
}

// leafMessage renders a leaf diagnostic using the current i18n.Translator
// for its kind label, with the kind-specific detail appended in the
// translator's language-neutral Go-value form.
func leafMessage(e ast.ParseError) string {
	label := i18n.T(e.Kind)
	switch e.Kind {
	case ast.ErrType:
		return fmt.Sprintf("%s: expected %s, got %#v", label, tagName(e.AST), e.Actual)
	case ast.ErrUnexpected:
		return fmt.Sprintf("%s: %#v", label, e.Actual)
	case ast.ErrEqual:
		return fmt.Sprintf("%s: expected %#v, got %#v", label, e.Expected, e.Actual)
	case ast.ErrTransform:
		return fmt.Sprintf("%s: %#v", label, e.Actual)
	default: // ErrMissing
		return label
	}
}

func tagName(n ast.AST) string {
	if n == nil {
		return "<nil>"
	}
	return n.Tag().String()
}
