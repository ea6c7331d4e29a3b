package lexer

import (
	"testing"

	"github.com/cooklang/cooklang/token"
)

func TestNextToken(t *testing.T) {
	input := `a=@b~{}#c{}()/5`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.WORD, "a"},
		{token.SECTION, "="},
		{token.INGREDIENT, "@"},
		{token.WORD, "b"},
		{token.TIMER, "~"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.COOKWARE, "#"},
		{token.WORD, "c"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.SLASH, "/"},
		{token.INT, "5"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("token[%d]: expected type %q, got %q (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("token[%d]: expected literal %q, got %q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestMetadataMarker(t *testing.T) {
	l := New(">> key: value")
	tok := l.NextToken()
	if tok.Type != token.METADATA || tok.Literal != ">>" {
		t.Fatalf("expected METADATA \">>\", got %q %q", tok.Type, tok.Literal)
	}
}

func TestForceTextMarker(t *testing.T) {
	l := New("> a note")
	tok := l.NextToken()
	if tok.Type != token.FORCE_TEXT || tok.Literal != ">" {
		t.Fatalf("expected FORCE_TEXT \">\", got %q %q", tok.Type, tok.Literal)
	}
}

func TestYAMLFrontmatter(t *testing.T) {
	input := `---
title: A recipe
tags:
  - recipe
---
Cook the @shrimp{1}`

	l := New(input)
	tok := l.NextToken()
	if tok.Type != token.YAML_FRONTMATTER {
		t.Fatalf("expected YAML_FRONTMATTER, got %q", tok.Type)
	}
	expected := "title: A recipe\ntags:\n  - recipe\n"
	if tok.Literal != expected {
		t.Fatalf("expected YAML content %q, got %q", expected, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type == token.NEWLINE {
		tok = l.NextToken()
	}
	if tok.Type != token.WORD || tok.Literal != "Cook" {
		t.Fatalf("expected WORD 'Cook', got %q %q", tok.Type, tok.Literal)
	}
}

func TestDashesNotYAMLFrontmatter(t *testing.T) {
	input := `Cook for 5-7 minutes --- this is not frontmatter`

	l := New(input)
	tok := l.NextToken()
	if tok.Type != token.WORD || tok.Literal != "Cook" {
		t.Fatalf("expected WORD 'Cook', got %q %q", tok.Type, tok.Literal)
	}
	for tok.Type != token.HIDDEN && tok.Type != token.EOF {
		tok = l.NextToken()
	}
	if tok.Type != token.HIDDEN {
		t.Fatalf("expected HIDDEN token for dash mid-document, got %q", tok.Type)
	}
}

func TestLineComment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType token.Type
		wantLit  string
	}{
		{"simple comment", "-- a comment", token.LINE_COMMENT, "a comment"},
		{"comment at line start", "Mix flour\n-- note to self", token.LINE_COMMENT, "note to self"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			var tok token.Token
			for {
				tok = l.NextToken()
				if tok.Type == tt.wantType || tok.Type == token.EOF {
					break
				}
			}
			if tok.Type != tt.wantType {
				t.Fatalf("expected %q, got %q", tt.wantType, tok.Type)
			}
			if tok.Literal != tt.wantLit {
				t.Fatalf("expected literal %q, got %q", tt.wantLit, tok.Literal)
			}
		})
	}
}

func TestBlockComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple block comment", "[- this is a comment -]", "this is a comment"},
		{"empty block comment", "[-  -]", ""},
		{"dashes inside", "[- comment -- with dashes -]", "comment -- with dashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			tok := l.NextToken()
			if tok.Type != token.BLOCK_COMMENT {
				t.Fatalf("expected BLOCK_COMMENT, got %q", tok.Type)
			}
			if tok.Literal != tt.want {
				t.Fatalf("expected literal %q, got %q", tt.want, tok.Literal)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	l := New(`\@not an ingredient`)
	tok := l.NextToken()
	if tok.Type != token.BACKSLASH {
		t.Fatalf("expected BACKSLASH, got %q", tok.Type)
	}
	if tok.Literal != `\@` {
		t.Fatalf("expected literal %q, got %q", `\@`, tok.Literal)
	}
}

func TestNewlineVariants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Type
	}{
		{"Unix LF", "a\nb", []token.Type{token.WORD, token.NEWLINE, token.WORD, token.EOF}},
		{"Windows CRLF", "a\r\nb", []token.Type{token.WORD, token.WHITESPACE, token.NEWLINE, token.WORD, token.EOF}},
		{"Double Unix LF", "a\n\nb", []token.Type{token.WORD, token.NEWLINE, token.NEWLINE, token.WORD, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, want := range tt.expected {
				tok := l.NextToken()
				if tok.Type != want {
					t.Errorf("token[%d]: expected %s, got %s (literal %q)", i, want, tok.Type, tok.Literal)
				}
			}
		})
	}
}

func TestSpansAreByteAccurate(t *testing.T) {
	input := "mix @flour{200%g}"
	l := New(input)

	var tok token.Token
	for {
		tok = l.NextToken()
		if tok.Type == token.INGREDIENT {
			break
		}
		if tok.Type == token.EOF {
			t.Fatal("ran out of tokens before finding INGREDIENT")
		}
	}
	if got := input[tok.Span.Start:tok.Span.End]; got != "@" {
		t.Fatalf("ingredient span sliced to %q, want \"@\"", got)
	}

	tok = l.NextToken() // "flour"
	if got := input[tok.Span.Start:tok.Span.End]; got != "flour" {
		t.Fatalf("word span sliced to %q, want \"flour\"", got)
	}
}

func TestPeekAndPutBack(t *testing.T) {
	l := New("@a#b")
	first := l.PeekToken()
	if first.Type != token.INGREDIENT {
		t.Fatalf("PeekToken type = %q, want INGREDIENT", first.Type)
	}
	second := l.NextToken()
	if second.Type != token.INGREDIENT {
		t.Fatalf("NextToken after peek type = %q, want INGREDIENT (peek must not advance)", second.Type)
	}

	next := l.NextToken() // "a"
	l.PutBackToken(next)
	again := l.NextToken()
	if again.Literal != next.Literal || again.Type != next.Type {
		t.Fatalf("PutBackToken did not replay token: got %+v, want %+v", again, next)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	l := New("@café{1%tasse}")
	tok := l.NextToken()
	if tok.Type != token.INGREDIENT {
		t.Fatalf("expected INGREDIENT, got %q", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.WORD || tok.Literal != "café" {
		t.Fatalf("expected WORD 'café', got %q %q", tok.Type, tok.Literal)
	}
}
