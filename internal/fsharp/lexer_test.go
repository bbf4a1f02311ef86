package fsharp

import (
	"slices"
	"strings"
	"testing"

	"github.com/donaldgifford/fsfmt/internal/syntax"
)

func meaningfulTypes(toks []Token) []syntax.NodeType {
	var out []syntax.NodeType
	for _, t := range toks {
		if !t.Type.IsTrivia() {
			out = append(out, t.Type)
		}
	}
	return out
}

func TestLexTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []syntax.NodeType
	}{
		{
			name:  "binding",
			input: `let x = "a" // trailing`,
			want:  []syntax.NodeType{syntax.TypeLet, syntax.TypeIdentifier, syntax.TypeEquals, syntax.TypeString},
		},
		{
			name:  "operator section",
			input: "(*)",
			want:  []syntax.NodeType{syntax.TypeLParen, syntax.TypeSymbolicOp, syntax.TypeRParen},
		},
		{
			name:  "nested block comment",
			input: "(* a (* b *) c *) x",
			want:  []syntax.NodeType{syntax.TypeIdentifier},
		},
		{
			name:  "char and type variable",
			input: "'a' 'T '\\n'",
			want:  []syntax.NodeType{syntax.TypeChar, syntax.TypeIdentifier, syntax.TypeChar},
		},
		{
			name:  "bang keywords",
			input: "let! use! do! return! yield! match!",
			want: []syntax.NodeType{
				syntax.TypeLetBang, syntax.TypeUseBang, syntax.TypeDoBang,
				syntax.TypeReturn, syntax.TypeYield, syntax.TypeMatch,
			},
		},
		{
			name:  "range",
			input: "[1..10]",
			want: []syntax.NodeType{
				syntax.TypeLBrack, syntax.TypeNumber, syntax.TypeSymbolicOp, syntax.TypeNumber, syntax.TypeRBrack,
			},
		},
		{
			name:  "array brackets",
			input: "[|x|]",
			want:  []syntax.NodeType{syntax.TypeLBrackBar, syntax.TypeIdentifier, syntax.TypeBarRBrack},
		},
		{
			name:  "attribute",
			input: "[<Literal>]",
			want:  []syntax.NodeType{syntax.TypeLBrackLess, syntax.TypeIdentifier, syntax.TypeGreaterRBrack},
		},
		{
			name:  "arrows and pipes",
			input: "a |> f -> b <- c",
			want: []syntax.NodeType{
				syntax.TypeIdentifier, syntax.TypeSymbolicOp, syntax.TypeIdentifier, syntax.TypeArrow,
				syntax.TypeIdentifier, syntax.TypeLArrow, syntax.TypeIdentifier,
			},
		},
		{
			name:  "verbatim and triple quoted strings",
			input: `@"a\b" """x "y" z""" $"{a}"`,
			want:  []syntax.NodeType{syntax.TypeString, syntax.TypeString, syntax.TypeString},
		},
		{
			name:  "directive",
			input: "#if DEBUG\nx\n#endif",
			want:  []syntax.NodeType{syntax.TypeIdentifier},
		},
		{
			name:  "numbers",
			input: "1uy 2.5f 0x1F 1e10",
			want:  []syntax.NodeType{syntax.TypeNumber, syntax.TypeNumber, syntax.TypeNumber, syntax.TypeNumber},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex: %v", err)
			}
			if got := meaningfulTypes(toks); !slices.Equal(got, tt.want) {
				t.Errorf("types:\n got %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1e10", "1e10"},
		{"1.5e3", "1.5e3"},
		{"2E+4", "2E+4"},
		{"3e-2f", "3e-2f"},
		{"1uy", "1uy"},
		{"2.5f", "2.5f"},
		{"0x1Fu", "0x1Fu"},
		{"0b1010", "0b1010"},
		{"1_000L", "1_000L"},
		{"1..2", "1"},
		{"1e", "1e"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex: %v", err)
			}
			if toks[0].Type != syntax.TypeNumber || toks[0].Text != tt.want {
				t.Errorf("first token = %v %q, want NUMBER %q", toks[0].Type, toks[0].Text, tt.want)
			}
		})
	}
}

func TestLexLossless(t *testing.T) {
	input := "let f x =\r\n    x + 1 (* note *)\n\t// done\n"
	toks, err := Lex(input)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Text)
	}
	if b.String() != input {
		t.Errorf("concatenated tokens = %q, want %q", b.String(), input)
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := Lex("let x =\n  é + y")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	var plus Token
	for _, tok := range toks {
		if tok.Text == "+" {
			plus = tok
		}
	}
	if plus.Pos.Line != 2 || plus.Pos.Column != 5 {
		t.Errorf("'+' at %s, want 2:5", plus.Pos)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unterminated string", `let s = "abc`, "unterminated string literal"},
		{"unterminated comment", "(* never closed", "unterminated block comment"},
		{"unterminated identifier", "``abc", "unterminated identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
