package token

import (
	"testing"

	"github.com/cooklang/cooklang/span"
)

func TestLookupSigil(t *testing.T) {
	tests := []struct {
		name   string
		input  rune
		want   Type
		wantOk bool
	}{
		{"ingredient sigil", '@', INGREDIENT, true},
		{"cookware sigil", '#', COOKWARE, true},
		{"timer sigil", '~', TIMER, true},
		{"ref modifier", '&', REF, true},
		{"hidden modifier", '-', HIDDEN, true},
		{"unrecognized rune", 'x', "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupSigil(tt.input)
			if ok != tt.wantOk {
				t.Errorf("LookupSigil(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("LookupSigil(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTypesAreUnique(t *testing.T) {
	types := []Type{
		ILLEGAL, EOF, NEWLINE, WHITESPACE, PREAMBLE, YAML_FRONTMATTER,
		LINE_COMMENT, BLOCK_COMMENT, WORD, INT, METADATA, FORCE_TEXT,
		SECTION, INGREDIENT, COOKWARE, TIMER, REF, NEW, OPT, HIDDEN,
		AUTO_SCALE, PIPE, PERCENT, COLON, LBRACE, RBRACE, LPAREN, RPAREN,
		SLASH, DOT, BACKSLASH,
	}
	seen := make(map[Type]bool)
	for _, ty := range types {
		if ty == "" {
			t.Errorf("found empty token type")
		}
		if seen[ty] {
			t.Errorf("duplicate token type: %v", ty)
		}
		seen[ty] = true
	}
}

func TestToken(t *testing.T) {
	tok := Token{Type: INGREDIENT, Literal: "@", Span: span.New(0, 1)}
	if tok.Type != INGREDIENT {
		t.Errorf("Token.Type = %v, want %v", tok.Type, INGREDIENT)
	}
	if tok.Literal != "@" {
		t.Errorf("Token.Literal = %v, want %v", tok.Literal, "@")
	}
	if tok.Span.Len() != 1 {
		t.Errorf("Token.Span.Len() = %d, want 1", tok.Span.Len())
	}
}
