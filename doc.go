// Package shapekit provides the six public operations of the structural
// decode/guard/encode engine: Decode, Guard, Encode and their throwing
// counterparts DecodeOrThrow, Asserts, EncodeOrThrow.
//
// Everything a caller needs to describe a shape lives in package ast
// (node constructors) and package hooks (the TypeAlias override
// registry). This package only compiles an ast.Node against a chosen
// Direction, caches the result, and runs it.
//
// Typical usage:
//
//	node := ast.NewTypeLiteral([]ast.PropertySignature{
//		{Name: ast.StringKey("name"), Type: ast.String},
//	}, nil)
//	res := shapekit.Decode(node, map[string]any{"name": "ada"})
package shapekit
