package token_test

import (
	"testing"

	"go.followtheprocess.codes/lox/internal/syntax/token"
	"go.followtheprocess.codes/test"
)

func TestTokenString(t *testing.T) {
	tok := token.Token{Kind: token.Number, Start: 4, End: 7}

	test.Equal(t, tok.String(), "<Token::Number start=4, end=7>")
}

func TestIs(t *testing.T) {
	tok := token.Token{Kind: token.LeftParen, Start: 0, End: 1}

	test.True(t, tok.Is(token.LeftParen))
	test.True(t, tok.Is(token.RightParen, token.LeftParen))
	test.False(t, tok.Is(token.RightParen))
	test.False(t, tok.Is())
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		name string     // Name of the test case
		text string     // Text to classify
		want token.Kind // Expected kind
		ok   bool       // Whether it should be recognised as a keyword
	}{
		{name: "and", text: "and", want: token.And, ok: true},
		{name: "break", text: "break", want: token.Break, ok: true},
		{name: "class", text: "class", want: token.Class, ok: true},
		{name: "else", text: "else", want: token.Else, ok: true},
		{name: "false", text: "false", want: token.False, ok: true},
		{name: "for", text: "for", want: token.For, ok: true},
		{name: "fun", text: "fun", want: token.Fun, ok: true},
		{name: "if", text: "if", want: token.If, ok: true},
		{name: "nil", text: "nil", want: token.Nil, ok: true},
		{name: "or", text: "or", want: token.Or, ok: true},
		{name: "print", text: "print", want: token.Print, ok: true},
		{name: "return", text: "return", want: token.Return, ok: true},
		{name: "this", text: "this", want: token.This, ok: true},
		{name: "true", text: "true", want: token.True, ok: true},
		{name: "var", text: "var", want: token.Var, ok: true},
		{name: "while", text: "while", want: token.While, ok: true},
		{name: "not a keyword", text: "orchid", want: token.Ident, ok: false},
		{name: "prefix of a keyword", text: "cla", want: token.Ident, ok: false},
		{name: "wrong case", text: "Var", want: token.Ident, ok: false},
		{name: "empty", text: "", want: token.Ident, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := token.Keyword(tt.text)

			test.Equal(t, kind, tt.want)
			test.Equal(t, ok, tt.ok)
		})
	}
}
