package fsharp

import (
	"errors"
	"strings"
	"testing"

	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// shape renders the composite nodes of a tree as TYPE:ROLE(children).
func shape(n *syntax.Node) string {
	var b strings.Builder
	writeShape(&b, n)
	return b.String()
}

func writeShape(b *strings.Builder, n *syntax.Node) {
	b.WriteString(n.Type.String())
	if n.Role != syntax.RoleNone {
		b.WriteString(":" + n.Role.String())
	}
	var kids []*syntax.Node
	for _, c := range n.Children {
		if !c.IsLeaf() {
			kids = append(kids, c)
		}
	}
	if len(kids) == 0 {
		return
	}
	b.WriteString("(")
	for i, c := range kids {
		if i > 0 {
			b.WriteString(" ")
		}
		writeShape(b, c)
	}
	b.WriteString(")")
}

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "// only a comment\n"} {
		root, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		if root.Type != syntax.TypeFile {
			t.Errorf("root type = %s, want FILE", root.Type)
		}
		if root.String() != src {
			t.Errorf("round trip = %q, want %q", root.String(), src)
		}
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "value binding",
			input: "let x = 1\n",
			want:  "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT LITERAL_EXPR:CHAMELEON_EXPR)))",
		},
		{
			name:  "binary expression",
			input: "let x = a + b\n",
			want: "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT BINARY_APP_EXPR:CHAMELEON_EXPR(" +
				"REFERENCE_EXPR:LEFT_EXPR REFERENCE_EXPR:OP_REF_EXPR REFERENCE_EXPR:RIGHT_EXPR))))",
		},
		{
			name:  "union",
			input: "type U = | A | B of int\n",
			want: "FILE(F_SHARP_TYPE_DECLARATION:MODULE_MEMBER(UNION_REPRESENTATION:TYPE_REPR(" +
				"UNION_CASE_DECLARATION UNION_CASE_DECLARATION(UNION_CASE_FIELD_DECLARATION_LIST(" +
				"UNION_CASE_FIELD_DECLARATION(TYPE_REFERENCE))))))",
		},
		{
			name:  "match",
			input: "match x with\n| A -> 1\n| _ -> 2\n",
			want: "FILE(DO_STATEMENT:MODULE_MEMBER(MATCH_EXPR:CHAMELEON_EXPR(REFERENCE_EXPR:EXPR " +
				"MATCH_CLAUSE:MATCH_CLAUSE(NAMED_PAT:PATTERN LITERAL_EXPR:EXPR) " +
				"MATCH_CLAUSE:MATCH_CLAUSE(WILD_PAT:PATTERN LITERAL_EXPR:EXPR))))",
		},
		{
			name:  "if then else",
			input: "let f x =\n    if x then\n        1\n    else\n        2\n",
			want: "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(LONG_IDENT_PAT(NAMED_PAT) " +
				"IF_THEN_ELSE_EXPR:CHAMELEON_EXPR(REFERENCE_EXPR:CONDITION_EXPR LITERAL_EXPR:THEN_EXPR " +
				"LITERAL_EXPR:ELSE_CLAUSE))))",
		},
		{
			name:  "local let and sequence",
			input: "let f () =\n    let y = 1\n    printfn \"a\"\n    y\n",
			want: "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(LONG_IDENT_PAT(UNIT_PAT) " +
				"LET_OR_USE_EXPR:CHAMELEON_EXPR(LOCAL_BINDING(NAMED_PAT LITERAL_EXPR:EXPR) " +
				"SEQUENTIAL_EXPR:EXPR(PREFIX_APP_EXPR(REFERENCE_EXPR:FUNC_EXPR LITERAL_EXPR:ARG_EXPR) " +
				"REFERENCE_EXPR)))))",
		},
		{
			name:  "record type",
			input: "type R = { A: int; B: string }\n",
			want: "FILE(F_SHARP_TYPE_DECLARATION:MODULE_MEMBER(RECORD_REPRESENTATION:TYPE_REPR(" +
				"RECORD_FIELD_DECLARATION_LIST(RECORD_FIELD_DECLARATION(TYPE_REFERENCE) " +
				"RECORD_FIELD_DECLARATION(TYPE_REFERENCE)))))",
		},
		{
			name:  "class with primary constructor",
			input: "type C(x: int) =\n    member this.X = x\n",
			want: "FILE(F_SHARP_TYPE_DECLARATION:MODULE_MEMBER(PRIMARY_CONSTRUCTOR_DECLARATION(" +
				"TYPED_PAT(NAMED_PAT TYPE_REFERENCE)) TYPE_MEMBER_DECLARATION_LIST:MEMBER_LIST(" +
				"MEMBER_DECLARATION(LONG_IDENT_PAT REFERENCE_EXPR:CHAMELEON_EXPR))))",
		},
		{
			name:  "enum",
			input: "type E =\n    | A = 1\n    | B = 2\n",
			want: "FILE(F_SHARP_TYPE_DECLARATION:MODULE_MEMBER(ENUM_REPRESENTATION:TYPE_REPR(" +
				"ENUM_CASE_DECLARATION(LITERAL_EXPR:EXPR) ENUM_CASE_DECLARATION(LITERAL_EXPR:EXPR))))",
		},
		{
			name:  "pipeline on following lines",
			input: "let y =\n    xs\n    |> List.map f\n",
			want: "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT BINARY_APP_EXPR:CHAMELEON_EXPR(" +
				"REFERENCE_EXPR:LEFT_EXPR REFERENCE_EXPR:OP_REF_EXPR PREFIX_APP_EXPR:RIGHT_EXPR(" +
				"REFERENCE_EXPR:FUNC_EXPR REFERENCE_EXPR:ARG_EXPR)))))",
		},
		{
			name:  "unit expression",
			input: "let u = ( )\n",
			want:  "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT UNIT_EXPR:CHAMELEON_EXPR)))",
		},
		{
			name:  "record construction",
			input: "let r = { A = 1; B = 2 }\n",
			want: "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT RECORD_EXPR:CHAMELEON_EXPR(" +
				"RECORD_FIELD_BINDING_LIST(RECORD_FIELD_BINDING(LONG_IDENTIFIER LITERAL_EXPR:EXPR) " +
				"RECORD_FIELD_BINDING(LONG_IDENTIFIER LITERAL_EXPR:EXPR))))))",
		},
		{
			name:  "record copy",
			input: "let r2 = { r with A = 3 }\n",
			want: "FILE(LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT RECORD_EXPR:CHAMELEON_EXPR(" +
				"REFERENCE_EXPR:COPY_INFO RECORD_FIELD_BINDING_LIST(RECORD_FIELD_BINDING(LONG_IDENTIFIER " +
				"LITERAL_EXPR:EXPR))))))",
		},
		{
			name:  "nested module",
			input: "module M =\n    let x = 1\n    let y = 2\n",
			want: "FILE(NESTED_MODULE_DECLARATION:MODULE_MEMBER(" +
				"LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT LITERAL_EXPR:CHAMELEON_EXPR)) " +
				"LET_MODULE_DECL:MODULE_MEMBER(TOP_BINDING(NAMED_PAT LITERAL_EXPR:CHAMELEON_EXPR))))",
		},
		{
			name:  "module abbreviation",
			input: "module L = List\n",
			want:  "FILE(MODULE_ABBREVIATION_DECLARATION:MODULE_MEMBER(TYPE_REFERENCE:TYPE_REFERENCE(LONG_IDENTIFIER)))",
		},
		{
			name:  "named module",
			input: "module App.Main\n\nopen System\n",
			want:  "FILE(NAMED_MODULE_DECLARATION(LONG_IDENTIFIER:IDENTIFIER OPEN_STATEMENT:MODULE_MEMBER(LONG_IDENTIFIER)))",
		},
		{
			name:  "try with",
			input: "try f () with _ -> ()\n",
			want: "FILE(DO_STATEMENT:MODULE_MEMBER(TRY_WITH_EXPR:CHAMELEON_EXPR(" +
				"PREFIX_APP_EXPR:TRY_EXPR(REFERENCE_EXPR:FUNC_EXPR UNIT_EXPR:ARG_EXPR) " +
				"MATCH_CLAUSE:MATCH_CLAUSE(WILD_PAT:PATTERN UNIT_EXPR:EXPR))))",
		},
		{
			name:  "lambda argument",
			input: "xs |> List.iter (fun x -> printfn \"%d\" x)\n",
			want: "FILE(DO_STATEMENT:MODULE_MEMBER(BINARY_APP_EXPR:CHAMELEON_EXPR(REFERENCE_EXPR:LEFT_EXPR " +
				"REFERENCE_EXPR:OP_REF_EXPR PREFIX_APP_EXPR:RIGHT_EXPR(REFERENCE_EXPR:FUNC_EXPR " +
				"PAREN_EXPR:ARG_EXPR(LAMBDA_EXPR:EXPR(NAMED_PAT PREFIX_APP_EXPR:EXPR(" +
				"PREFIX_APP_EXPR:FUNC_EXPR(REFERENCE_EXPR:FUNC_EXPR LITERAL_EXPR:ARG_EXPR) " +
				"REFERENCE_EXPR:ARG_EXPR)))))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := shape(root); got != tt.want {
				t.Errorf("shape:\n got %s\nwant %s", got, tt.want)
			}
		})
	}
}

// roundTrip holds sources exercising most of the grammar; each must parse
// and print back unchanged.
var roundTrip = []string{
	"namespace Acme.Tools\n\nopen System\nopen System.IO\n\nmodule Strings =\n    let trim (s: string) = s.Trim()\n",
	"[<AutoOpen>]\nmodule Helpers =\n    [<Literal>]\n    let Answer = 42\n",
	"let rec even n = if n = 0 then true else odd (n - 1)\nand odd n = if n = 0 then false else even (n - 1)\n",
	"type Shape =\n    | Circle of radius: float\n    | Rect of w: float * h: float\n    member this.Area =\n        match this with\n        | Circle r -> 3.14 * r * r\n        | Rect (w, h) -> w * h\n",
	"type private Color =\n    private\n    | Red\n    | Green\n",
	"type Point = { X: float\n               Y: float }\n",
	"type IShape =\n    abstract Area: float\n    abstract Scale: float -> IShape\n",
	"type Counter() =\n    let mutable count = 0\n    member _.Increment() = count <- count + 1\n    member _.Count = count\n",
	"type Account(owner: string) =\n    new() = Account(\"nobody\")\n    member val Balance = 0m with get, set\n    interface System.IDisposable with\n        member this.Dispose() = ()\n",
	"type Stack<'T> =\n    class\n        val Items: 'T list\n    end\n",
	"exception NotFound of string\n",
	"let result =\n    async {\n        let! x = fetch ()\n        return x + 1\n    }\n",
	"let squares = [ for i in 1..10 -> i * i ]\nlet arr = [| 1; 2; 3 |]\n",
	"let classify x =\n    match x with\n    | n when n < 0 -> \"negative\"\n    | 0 -> \"zero\"\n    | _ -> \"positive\"\n",
	"let f = function\n    | Some x -> x\n    | None -> 0\n",
	"let safe f =\n    try\n        f ()\n    with\n    | :? System.IO.IOException as e -> printfn \"%s\" e.Message\n    | _ -> ()\n",
	"let cleanup () =\n    try work () finally printfn \"done\"\n",
	"let loop () =\n    for i = 0 to 10 do\n        printfn \"%d\" i\n    while running () do\n        step ()\n",
	"let total =\n    orders\n    |> List.filter (fun o -> o.Paid)\n    |> List.sumBy (fun o -> o.Amount)\n",
	"let x = a\n        + b\n",
	"let grade score =\n    if score > 90 then \"A\"\n    elif score > 80 then \"B\"\n    else \"C\"\n",
	"let p = { Name = \"a\"\n          Age = 3 }\nlet q = { p with Age = 4 }\n",
	"let t = (1, \"two\", 3.0)\nlet (a, b, c) = t\n",
	"let v: int = 3 // comment\n(* block *)\nlet w = v :: [ 1; 2 ]\n",
	"let ignore' _ = ()\nlet id = fun x -> x\nlet l = lazy (compute ())\n",
	"let m = Map.empty<string, int>\nlet d = new System.Text.StringBuilder()\n",
	"do printfn \"side effect\"\nprintfn \"%d\" (List.length [1; 2])\n",
	"#if DEBUG\nlet debug = true\n#endif\n",
	"let add = (+)\nlet mul = (*)\n",
	"let mutable count = 0\ncount <- count + 1\n",
	"let s =\n    seq {\n        yield 1\n        yield! [ 2; 3 ]\n    }\n",
	"type T =\n    int\n",
	"type U = | A\n         | B\n",
}

func TestParseRoundTrip(t *testing.T) {
	for _, src := range roundTrip {
		root, err := Parse(src)
		if err != nil {
			t.Errorf("Parse(%q): %v", src, err)
			continue
		}
		if got := root.String(); got != src {
			t.Errorf("round trip:\n got %q\nwant %q", got, src)
		}
	}
}

func TestParseTrivia(t *testing.T) {
	root, err := Parse("let x = 1 // one\n\n// two\nlet y = 2\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Comments between declarations belong to the enclosing node, never to
	// the start of the following declaration.
	for _, decl := range syntax.Find(root, syntax.TypeLetModuleDecl) {
		if first := decl.FirstChild(); first.IsTrivia() {
			t.Errorf("declaration %q starts with trivia %q", decl.String(), first.Text)
		}
		if last := decl.LastChild(); last.IsTrivia() {
			t.Errorf("declaration %q ends with trivia %q", decl.String(), last.Text)
		}
	}
}

func TestParseRelaxedBodies(t *testing.T) {
	tests := []struct {
		name  string
		input string
		body  syntax.NodeType
	}{
		{"lambda", "let f = fun x ->\n    x\n", syntax.TypeLambdaExpr},
		{"lambda argument", "List.map (fun x ->\n    x + 1) xs\n", syntax.TypeLambdaExpr},
		{"sequence", "let s = seq {\n    yield 1\n}\n", syntax.TypeComputationExpr},
		{"async", "let a = async {\n    let! x = f ()\n    return x\n}\n", syntax.TypeComputationExpr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if root.String() != tt.input {
				t.Errorf("round trip = %q", root.String())
			}
			if len(syntax.Find(root, tt.body)) != 1 {
				t.Errorf("no %s in %s", tt.body, shape(root))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing body", "let x =", "1:8: expected expression, found end of input"},
		{"missing equals", "let x 1", "expected '='"},
		{"unclosed paren", "let x = (1 + 2", "expected ')'"},
		{"offside body", "let x =\n1\n", "expected expression"},
		{"lambda body left of its line", "let f =\n    fun x ->\n    x\n", "expected expression"},
		{"lexer error", "let s = \"abc", "unterminated string literal"},
		{"bad member", "type C() =\n    member\n", "expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			var list ErrorList
			if !errors.As(err, &list) {
				t.Fatalf("error %T is not an ErrorList", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}
