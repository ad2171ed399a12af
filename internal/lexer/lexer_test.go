package lexer

import (
	"testing"

	"github.com/cwbudde/minilang/internal/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextTokenOperatorsAndKeywords(t *testing.T) {
	src := `let x = 1 + 2 * 3 ~ 2; if x >= 0 && x != 0 { return x; } else { break; }`
	toks := collect(t, src)

	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT,
		token.STAR, token.INT, token.TILDE, token.INT, token.SEMI,
		token.IF, token.IDENT, token.GE, token.INT, token.AND, token.IDENT, token.NEQ, token.INT,
		token.LBRACE, token.RETURN, token.IDENT, token.SEMI, token.RBRACE,
		token.ELSE, token.LBRACE, token.BREAK, token.SEMI, token.RBRACE,
		token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src  string
		typ  token.Type
		lit  string
	}{
		{"123", token.INT, "123"},
		{"0x1F", token.INT, "0x1F"},
		{"0o17", token.INT, "0o17"},
		{"0b1010", token.INT, "0b1010"},
		{"1.5", token.FLOAT, "1.5"},
		{"1.5e10", token.FLOAT, "1.5e10"},
		{"1e-3", token.FLOAT, "1e-3"},
		{"2", token.INT, "2"},
	}
	for _, c := range cases {
		toks := collect(t, c.src)
		if toks[0].Type != c.typ || toks[0].Literal != c.lit {
			t.Errorf("%q: got (%s,%q), want (%s,%q)", c.src, toks[0].Type, toks[0].Literal, c.typ, c.lit)
		}
	}
}

func TestStringAndCharEscapes(t *testing.T) {
	toks := collect(t, `"a\nb\x41" 'c' '\t'`)
	if toks[0].Type != token.STRING || toks[0].Literal != "a\nbA" {
		t.Errorf("got %q", toks[0].Literal)
	}
	if toks[1].Type != token.CHAR || toks[1].Literal != "c" {
		t.Errorf("got %q", toks[1].Literal)
	}
	if toks[2].Type != token.CHAR || toks[2].Literal != "\t" {
		t.Errorf("got %q", toks[2].Literal)
	}
}

func TestLineCommentsSkipped(t *testing.T) {
	toks := collect(t, "1 // comment\n2")
	if len(toks) != 3 || toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Fatalf("got %+v", toks)
	}
}

func TestPositionsTrackLinesAndColumns(t *testing.T) {
	toks := collect(t, "x\ny")
	if toks[0].Pos.Line != 1 {
		t.Errorf("x line = %d, want 1", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("y line = %d, want 2", toks[1].Pos.Line)
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := collect(t, "@")
	if toks[0].Type != token.ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", toks[0].Type)
	}
}
