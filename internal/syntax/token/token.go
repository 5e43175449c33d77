// Package token provides the set of lexical tokens for Lox source code.
package token

import (
	"fmt"
	"slices"
)

// Kind is the kind of a token.
type Kind int

//go:generate stringer -type Kind -linecomment
const (
	EOF        Kind = iota // EOF
	Error                  // Error
	LeftParen              // LeftParen
	RightParen             // RightParen
	LeftBrace              // LeftBrace
	RightBrace             // RightBrace
	Comma                  // Comma
	Dot                    // Dot
	Minus                  // Minus
	Plus                   // Plus
	Semicolon              // Semicolon
	Slash                  // Slash
	Star                   // Star
	Bang                   // Bang
	BangEq                 // BangEq
	Eq                     // Eq
	EqEq                   // EqEq
	Greater                // Greater
	GreaterEq              // GreaterEq
	Less                   // Less
	LessEq                 // LessEq
	Ident                  // Ident
	String                 // String
	Number                 // Number
	And                    // And
	Break                  // Break
	Class                  // Class
	Else                   // Else
	False                  // False
	For                    // For
	Fun                    // Fun
	If                     // If
	Nil                    // Nil
	Or                     // Or
	Print                  // Print
	Return                 // Return
	This                   // This
	True                   // True
	Var                    // Var
	While                  // While
)

// Token is a lexical token in a Lox source file.
type Token struct {
	Kind  Kind // The kind of token this is
	Start int  // Byte offset from the start of the file to the start of this token
	End   int  // Byte offset from the start of the file to the end of this token
}

// String implements [fmt.Stringer] for a [Token].
func (t Token) String() string {
	return fmt.Sprintf("<Token::%s start=%d, end=%d>", t.Kind, t.Start, t.End)
}

// Is reports whether the token is any of the provided [Kind]s.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// Keyword reports whether a string refers to a keyword, returning it's [Kind]
// and true if it is. Otherwise [Ident] and false are returned.
func Keyword(text string) (kind Kind, ok bool) {
	switch text {
	case "and":
		return And, true
	case "break":
		return Break, true
	case "class":
		return Class, true
	case "else":
		return Else, true
	case "false":
		return False, true
	case "for":
		return For, true
	case "fun":
		return Fun, true
	case "if":
		return If, true
	case "nil":
		return Nil, true
	case "or":
		return Or, true
	case "print":
		return Print, true
	case "return":
		return Return, true
	case "this":
		return This, true
	case "true":
		return True, true
	case "var":
		return Var, true
	case "while":
		return While, true
	default:
		return Ident, false
	}
}
