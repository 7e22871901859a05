package ast

// Node is a tagged AST node. Every concrete node type is immutable once
// constructed; implementations use pointer receivers so that a *TypeAlias
// value's identity (its pointer) can serve as a hook-registry key.
type Node interface {
	Tag() Tag
}

// AST is an alias kept for readability at call sites that talk about "the
// AST" rather than "a Node".
type AST = Node

// Annotations is a free-form per-node metadata bag, queryable by kind. No
// package in this repository reads it (the hook registry is keyed by node
// pointer, not by annotation); the map is exported so other subsystems can
// stash their own keys without needing a new node field.
type Annotations map[string]any

// Symbol is a unique, comparable-by-identity token standing in for the
// source language's symbol primitive. Two *Symbol values are equal only if
// they are the same pointer.
type Symbol struct {
	Name string
}
