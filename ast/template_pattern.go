package ast

import (
	"fmt"
	"regexp"
)

// Pattern renders the TemplateLiteral's spans into an anchored regular
// expression source string. Placeholder nodes contribute a sub-pattern:
// StringKeyword contributes ".*", NumberKeyword contributes a decimal
// number pattern, and Literal contributes its escaped literal text. The
// interpreter compiles the returned string; this function itself never
// touches regexp.Compile so that constructing a TemplateLiteral stays pure
// and allocation-free beyond the string itself.
func (t *TemplateLiteral) Pattern() string {
	out := "^"
	for _, span := range t.Spans {
		out += regexp.QuoteMeta(span.Literal)
		out += placeholderPattern(span.Placeholder)
	}
	out += "$"
	return out
}

func placeholderPattern(n AST) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *StringKeyword:
		return ".*"
	case *NumberKeyword:
		return `[+-]?\d+(?:\.\d+)?`
	case *BooleanKeyword:
		return `(?:true|false)`
	case *Literal:
		return regexp.QuoteMeta(literalToString(v.Value))
	case *Union:
		out := "(?:"
		for i, m := range v.Types {
			if i > 0 {
				out += "|"
			}
			out += placeholderPattern(m)
		}
		return out + ")"
	default:
		return ".*"
	}
}

func literalToString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}
