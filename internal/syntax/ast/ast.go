// Package ast defines an abstract syntax tree for the Lox grammar.
//
// Nodes are deliberately pointers: the resolver keys its binding distance
// table on node identity, two syntactically identical variable references
// at different source positions must resolve independently.
package ast

import (
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// Node is the interface for ast nodes.
type Node interface {
	// Start returns the first token associated with the node.
	Start() token.Token

	// End returns the last token associated with the node.
	End() token.Token
}

// Expression is an expression node.
//
// The set of expressions is closed, every implementation lives in this
// package so that passes over the tree (resolver, interpreter) can type
// switch exhaustively.
type Expression interface {
	Node
	expressionNode() // Prevents accidental misuse as another node type
}

// Statement is a statement node.
//
// Like [Expression], the set of statements is closed.
type Statement interface {
	Node
	statementNode() // Prevents accidental misuse as another node type
}
