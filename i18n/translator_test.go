package i18n

import (
	"testing"

	"github.com/shapekit/shapekit/ast"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	if msg := T(ast.ErrType); msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T(ast.ErrType); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	SetLanguage("en")
}
