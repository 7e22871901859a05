// Package i18n localizes ast.ParseError messages. It keys its dictionary
// on ast.ErrorKind instead of the teacher's string issue codes, since
// that is the error taxonomy this repository's diagnostic model uses
// (spec.md §3.2, §7).
package i18n

import "github.com/shapekit/shapekit/ast"

// Translator retrieves a localized message for a ParseError kind.
type Translator interface {
	Message(kind ast.ErrorKind) string
}

type dictTranslator struct{ lang string }

func (t dictTranslator) Message(kind ast.ErrorKind) string {
	switch t.lang {
	case "ja":
		switch kind {
		case ast.ErrType:
			return "型が不正です"
		case ast.ErrMissing:
			return "必須プロパティが不足しています"
		case ast.ErrUnexpected:
			return "未知の値です"
		case ast.ErrEqual:
			return "値が一致しません"
		case ast.ErrTransform:
			return "変換に失敗しました"
		case ast.ErrIndex:
			return "配列の要素が不正です"
		case ast.ErrKey:
			return "オブジェクトのキーが不正です"
		case ast.ErrMember:
			return "どのユニオン候補にも一致しませんでした"
		}
	default: // "en"
		switch kind {
		case ast.ErrType:
			return "invalid type"
		case ast.ErrMissing:
			return "required value missing"
		case ast.ErrUnexpected:
			return "unexpected value"
		case ast.ErrEqual:
			return "value does not match"
		case ast.ErrTransform:
			return "transform rejected the value"
		case ast.ErrIndex:
			return "invalid array element"
		case ast.ErrKey:
			return "invalid object key"
		case ast.ErrMember:
			return "no union member matched"
		}
	}
	return "parse error"
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a localized message for kind using the current Translator.
func T(kind ast.ErrorKind) string { return currentTranslator.Message(kind) }
