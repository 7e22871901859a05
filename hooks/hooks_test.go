package hooks

import (
	"testing"

	"github.com/shapekit/shapekit/ast"
)

func TestRegisterAndLookup(t *testing.T) {
	node := ast.NewTypeAlias("Custom", ast.String)
	called := false
	Register(node, func(typeParameters ...ast.Parser) ast.Parser {
		called = true
		return func(input any, opts ast.ParseOptions) ast.ParseResult { return ast.Success(input) }
	})

	h, ok := Lookup(node)
	if !ok {
		t.Fatalf("expected hook to be registered")
	}
	h()
	if !called {
		t.Fatalf("expected handler to run")
	}
}

func TestLookup_MissingReturnsFalse(t *testing.T) {
	node := ast.NewTypeAlias("Other", ast.String)
	if _, ok := Lookup(node); ok {
		t.Fatalf("expected no hook registered")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	node := ast.NewTypeAlias("Dup", ast.String)
	Register(node, func(typeParameters ...ast.Parser) ast.Parser { return nil })

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	Register(node, func(typeParameters ...ast.Parser) ast.Parser { return nil })
}

func TestRegister_NilArgsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil node")
		}
	}()
	Register(nil, func(typeParameters ...ast.Parser) ast.Parser { return nil })
}
