package ast

// This file is the "AST node constructor API" of spec §6: plain
// constructors for the node kinds of §3.1. It intentionally stops short of
// the convenience combinators (branded types, string formats, and similar
// sugar) that spec §1 scopes out as external collaborators.

// Keyword singletons. These nodes carry no data, so a single shared
// instance per kind is safe; the hook registry never consults them (only
// TypeAlias is hookable).
var (
	Undefined Node = &UndefinedKeyword{}
	Void      Node = &VoidKeyword{}
	Never     Node = &NeverKeyword{}
	Unknown   Node = &UnknownKeyword{}
	Any       Node = &AnyKeyword{}
	String    Node = &StringKeyword{}
	Number    Node = &NumberKeyword{}
	Boolean   Node = &BooleanKeyword{}
	BigInt    Node = &BigIntKeyword{}
	SymbolK   Node = &SymbolKeyword{}
	Object    Node = &ObjectKeyword{}
)

// NewLiteral builds a Literal node. value must be a string, bool, a
// float64/int64 number, nil, or *big.Int.
func NewLiteral(value any) *Literal { return &Literal{Value: value} }

// NewUniqueSymbol builds a UniqueSymbol node bound to sym.
func NewUniqueSymbol(sym *Symbol) *UniqueSymbol { return &UniqueSymbol{Symbol: sym} }

// NewTypeAlias builds a named wrapper node. identifier is used only for
// debugging; hook lookup is by node pointer identity, not by identifier.
func NewTypeAlias(identifier string, typ AST, typeParameters ...AST) *TypeAlias {
	return &TypeAlias{Identifier: identifier, Type: typ, TypeParameters: typeParameters}
}

// NewTuple builds a Tuple node. rest, if non-empty, must describe the
// variadic middle element in rest[0] followed by the fixed post-rest tail
// in rest[1:]; passing an empty-but-non-nil slice panics, matching the
// "Rest, when present, is non-empty" invariant of spec §3.1.
func NewTuple(elements []TupleElement, rest []AST, isReadonly bool) *Tuple {
	if rest != nil && len(rest) == 0 {
		panic("ast: Tuple.Rest must be non-empty when present")
	}
	return &Tuple{Elements: elements, Rest: rest, IsReadonly: isReadonly}
}

// NewTypeLiteral builds a TypeLiteral node. Property-signature names must
// be unique; duplicates panic.
func NewTypeLiteral(props []PropertySignature, idx []IndexSignature) *TypeLiteral {
	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		k := p.Name.String()
		if p.Name.IsSymbol {
			k = "sym:" + k
		} else {
			k = "str:" + k
		}
		if _, dup := seen[k]; dup {
			panic("ast: duplicate property-signature name " + p.Name.String())
		}
		seen[k] = struct{}{}
	}
	return &TypeLiteral{PropertySignatures: props, IndexSignatures: idx}
}

// NewUnion builds a Union node. It requires at least two alternatives.
func NewUnion(types ...AST) *Union {
	if len(types) < 2 {
		panic("ast: Union requires at least two member types")
	}
	return &Union{Types: types}
}

// NewLazy builds a thunked recursive reference.
func NewLazy(identifier string, f func() AST) *Lazy {
	if f == nil {
		panic("ast: Lazy requires a non-nil thunk")
	}
	return &Lazy{Identifier: identifier, F: f}
}

// NewEnums builds an Enums node.
func NewEnums(members ...EnumMember) *Enums {
	if len(members) == 0 {
		panic("ast: Enums requires at least one member")
	}
	return &Enums{Members: members}
}

// NewRefinement builds a Refinement node narrowing from.
func NewRefinement(from AST, decode RefinementDecode) *Refinement {
	if decode == nil {
		panic("ast: Refinement requires a non-nil decode function")
	}
	return &Refinement{From: from, Decode: decode}
}

// NewTemplateLiteral builds a TemplateLiteral node from its spans.
func NewTemplateLiteral(spans ...TemplateSpan) *TemplateLiteral {
	if len(spans) == 0 {
		panic("ast: TemplateLiteral requires at least one span")
	}
	return &TemplateLiteral{Spans: spans}
}

// NewTransform builds a bidirectional Transform node.
func NewTransform(from, to AST, decode, encode TransformFunc) *Transform {
	if decode == nil || encode == nil {
		panic("ast: Transform requires non-nil decode and encode functions")
	}
	return &Transform{From: from, To: to, Decode: decode, Encode: encode}
}
