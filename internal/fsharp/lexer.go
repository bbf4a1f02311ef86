package fsharp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/coregex"

	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// Token is a lexed F# token. Trivia (whitespace, line breaks, comments)
// is returned as tokens too so the tree can be rebuilt losslessly.
type Token struct {
	Type syntax.NodeType
	Text string
	Pos  Position
}

// Numeric literals are matched piecewise: a suffix pattern run over the
// whole literal would take the exponent marker of 1e10 as a suffix.
var (
	radixPattern    = mustCompile(`^0(?:[xX][0-9a-fA-F_]+|[oO][0-7_]+|[bB][01_]+)`)
	digitsPattern   = mustCompile(`^[0-9][0-9_]*`)
	fractionPattern = mustCompile(`^\.[0-9][0-9_]*`)
	exponentPattern = mustCompile(`^[eE][+-]?[0-9]+`)
	suffixPattern   = mustCompile(`^[a-zA-Z]{1,2}`)
)

// numberLen returns the length of the numeric literal at the start of s,
// including an optional type suffix (1uy, 2.0f, 3L, 0x1Fu).
func numberLen(s string) int {
	n := 0
	if loc := radixPattern.FindStringIndex(s); loc != nil {
		n = loc[1]
	} else {
		loc := digitsPattern.FindStringIndex(s)
		if loc == nil {
			return 0
		}
		n = loc[1]
		if loc := fractionPattern.FindStringIndex(s[n:]); loc != nil {
			n += loc[1]
		}
		if loc := exponentPattern.FindStringIndex(s[n:]); loc != nil {
			n += loc[1]
		}
	}
	if loc := suffixPattern.FindStringIndex(s[n:]); loc != nil {
		n += loc[1]
	}
	return n
}

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

var keywords = map[string]syntax.NodeType{
	"abstract":  syntax.TypeAbstract,
	"and":       syntax.TypeAnd,
	"as":        syntax.TypeAs,
	"assert":    syntax.TypeAssert,
	"class":     syntax.TypeClass,
	"default":   syntax.TypeDefault,
	"do":        syntax.TypeDo,
	"done":      syntax.TypeDone,
	"downto":    syntax.TypeDownto,
	"elif":      syntax.TypeElif,
	"else":      syntax.TypeElse,
	"end":       syntax.TypeEnd,
	"exception": syntax.TypeException,
	"false":     syntax.TypeFalse,
	"finally":   syntax.TypeFinally,
	"for":       syntax.TypeFor,
	"fun":       syntax.TypeFun,
	"function":  syntax.TypeFunction,
	"if":        syntax.TypeIf,
	"in":        syntax.TypeIn,
	"inherit":   syntax.TypeInherit,
	"inline":    syntax.TypeInline,
	"interface": syntax.TypeInterface,
	"internal":  syntax.TypeInternal,
	"lazy":      syntax.TypeLazy,
	"let":       syntax.TypeLet,
	"match":     syntax.TypeMatch,
	"member":    syntax.TypeMember,
	"module":    syntax.TypeModule,
	"mutable":   syntax.TypeMutable,
	"namespace": syntax.TypeNamespace,
	"new":       syntax.TypeNew,
	"null":      syntax.TypeNull,
	"of":        syntax.TypeOf,
	"open":      syntax.TypeOpen,
	"override":  syntax.TypeOverride,
	"private":   syntax.TypePrivate,
	"public":    syntax.TypePublic,
	"rec":       syntax.TypeRec,
	"return":    syntax.TypeReturn,
	"static":    syntax.TypeStatic,
	"struct":    syntax.TypeStruct,
	"then":      syntax.TypeThen,
	"to":        syntax.TypeTo,
	"true":      syntax.TypeTrue,
	"try":       syntax.TypeTry,
	"type":      syntax.TypeType,
	"use":       syntax.TypeUse,
	"val":       syntax.TypeVal,
	"when":      syntax.TypeWhen,
	"while":     syntax.TypeWhile,
	"with":      syntax.TypeWith,
	"yield":     syntax.TypeYield,
}

// Keywords that take a '!' suffix inside computation expressions.
var bangKeywords = map[string]syntax.NodeType{
	"let":    syntax.TypeLetBang,
	"do":     syntax.TypeDoBang,
	"use":    syntax.TypeUseBang,
	"return": syntax.TypeReturn,
	"yield":  syntax.TypeYield,
	"match":  syntax.TypeMatch,
}

const opChars = "!%&*+-./<=>@^|~?:$"

// Lex splits src into tokens. Concatenating the token texts reproduces
// src exactly.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	for l.off < len(src) {
		if err := l.scan(); err != nil {
			return l.toks, err
		}
	}
	return l.toks, nil
}

type lexer struct {
	src  string
	off  int
	line int
	col  int
	toks []Token

	lineHasToken bool
}

func (l *lexer) pos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.off}
}

func (l *lexer) emit(t syntax.NodeType, n int) {
	text := l.src[l.off : l.off+n]
	l.toks = append(l.toks, Token{Type: t, Text: text, Pos: l.pos()})
	for _, r := range text {
		if r == '\n' {
			l.line++
			l.col = 1
			l.lineHasToken = false
			continue
		}
		l.col++
	}
	l.off += n
	if t != syntax.TypeWhitespace && t != syntax.TypeNewLine {
		l.lineHasToken = true
	}
}

func (l *lexer) peek(i int) byte {
	if l.off+i < len(l.src) {
		return l.src[l.off+i]
	}
	return 0
}

func (l *lexer) scan() error {
	rest := l.src[l.off:]
	c := rest[0]

	switch {
	case c == '\r' && l.peek(1) == '\n':
		l.emit(syntax.TypeNewLine, 2)
		return nil
	case c == '\n':
		l.emit(syntax.TypeNewLine, 1)
		return nil
	case c == ' ' || c == '\t' || c == '\r':
		n := 0
		for n < len(rest) && (rest[n] == ' ' || rest[n] == '\t' || (rest[n] == '\r' && !strings.HasPrefix(rest[n:], "\r\n"))) {
			n++
		}
		l.emit(syntax.TypeWhitespace, n)
		return nil
	case c == '#' && !l.lineHasToken:
		// Preprocessor and compiler directives are kept verbatim.
		l.emit(syntax.TypeLineComment, lineLen(rest))
		return nil
	case strings.HasPrefix(rest, "//"):
		l.emit(syntax.TypeLineComment, lineLen(rest))
		return nil
	case strings.HasPrefix(rest, "(*)"):
		l.emit(syntax.TypeLParen, 1)
		l.emit(syntax.TypeSymbolicOp, 1)
		l.emit(syntax.TypeRParen, 1)
		return nil
	case strings.HasPrefix(rest, "(*"):
		return l.blockComment()
	case c == '"' || strings.HasPrefix(rest, `@"`) || strings.HasPrefix(rest, `$"`) || strings.HasPrefix(rest, `$@"`):
		return l.str()
	case c == '\'':
		if n := charLen(rest); n > 0 {
			l.emit(syntax.TypeChar, n)
			return nil
		}
		l.emit(syntax.TypeIdentifier, 1+identLen(rest[1:]))
		return nil
	case c == '`' && strings.HasPrefix(rest, "``"):
		end := strings.Index(rest[2:], "``")
		if end < 0 {
			return errorf(l.pos(), "unterminated identifier")
		}
		l.emit(syntax.TypeIdentifier, end+4)
		return nil
	case c >= '0' && c <= '9':
		l.emit(syntax.TypeNumber, max(numberLen(rest[:lineLen(rest)]), 1))
		return nil
	}

	r, _ := utf8.DecodeRuneInString(rest)
	if r == '_' || unicode.IsLetter(r) {
		n := identLen(rest)
		word := rest[:n]
		if word == "_" {
			l.emit(syntax.TypeUnderscore, 1)
			return nil
		}
		if t, ok := bangKeywords[word]; ok && n < len(rest) && rest[n] == '!' {
			l.emit(t, n+1)
			return nil
		}
		if t, ok := keywords[word]; ok {
			l.emit(t, n)
			return nil
		}
		l.emit(syntax.TypeIdentifier, n)
		return nil
	}

	if t, n := punct(rest); n > 0 {
		l.emit(t, n)
		return nil
	}

	if strings.IndexByte(opChars, c) >= 0 {
		n := 0
		for n < len(rest) && strings.IndexByte(opChars, rest[n]) >= 0 {
			// Stop before a closing array or attribute bracket.
			if strings.HasPrefix(rest[n:], "|]") || strings.HasPrefix(rest[n:], ">]") {
				if n > 0 {
					break
				}
			}
			n++
		}
		l.emit(classifyOp(rest[:n]), n)
		return nil
	}

	return errorf(l.pos(), "unexpected character %q", r)
}

func (l *lexer) blockComment() error {
	rest := l.src[l.off:]
	depth := 0
	for i := 0; i < len(rest); i++ {
		switch {
		case strings.HasPrefix(rest[i:], "(*"):
			depth++
			i++
		case strings.HasPrefix(rest[i:], "*)"):
			depth--
			i++
			if depth == 0 {
				l.emit(syntax.TypeBlockComment, i+1)
				return nil
			}
		}
	}
	return errorf(l.pos(), "unterminated block comment")
}

func (l *lexer) str() error {
	rest := l.src[l.off:]
	start := strings.IndexByte(rest, '"')
	prefix := rest[:start]
	verbatim := strings.Contains(prefix, "@")

	if strings.HasPrefix(rest[start:], `"""`) {
		end := strings.Index(rest[start+3:], `"""`)
		if end < 0 {
			return errorf(l.pos(), "unterminated string literal")
		}
		l.emit(syntax.TypeString, l.suffixed(start+3+end+3))
		return nil
	}

	for i := start + 1; i < len(rest); i++ {
		switch rest[i] {
		case '\\':
			if !verbatim {
				i++
			}
		case '"':
			if verbatim && i+1 < len(rest) && rest[i+1] == '"' {
				i++
				continue
			}
			l.emit(syntax.TypeString, l.suffixed(i+1))
			return nil
		}
	}
	return errorf(l.pos(), "unterminated string literal")
}

// suffixed extends a string literal of length n over a byte-array 'B'
// suffix.
func (l *lexer) suffixed(n int) int {
	if l.peek(n) == 'B' {
		return n + 1
	}
	return n
}

func punct(s string) (syntax.NodeType, int) {
	switch {
	case strings.HasPrefix(s, "[|"):
		return syntax.TypeLBrackBar, 2
	case strings.HasPrefix(s, "|]"):
		return syntax.TypeBarRBrack, 2
	case strings.HasPrefix(s, "[<"):
		return syntax.TypeLBrackLess, 2
	case strings.HasPrefix(s, ">]"):
		return syntax.TypeGreaterRBrack, 2
	}
	switch s[0] {
	case '(':
		return syntax.TypeLParen, 1
	case ')':
		return syntax.TypeRParen, 1
	case '{':
		return syntax.TypeLBrace, 1
	case '}':
		return syntax.TypeRBrace, 1
	case '[':
		return syntax.TypeLBrack, 1
	case ']':
		return syntax.TypeRBrack, 1
	case ',':
		return syntax.TypeComma, 1
	case ';':
		if strings.HasPrefix(s, ";;") {
			return syntax.TypeSymbolicOp, 2
		}
		return syntax.TypeSemicolon, 1
	case '.':
		if strings.HasPrefix(s, "..") {
			return syntax.TypeSymbolicOp, 2
		}
		return syntax.TypeDot, 1
	}
	return syntax.TypeInvalid, 0
}

func classifyOp(op string) syntax.NodeType {
	switch op {
	case "=":
		return syntax.TypeEquals
	case ":":
		return syntax.TypeColon
	case "|":
		return syntax.TypeBar
	case "*":
		return syntax.TypeStar
	case "->":
		return syntax.TypeArrow
	case "<-":
		return syntax.TypeLArrow
	default:
		return syntax.TypeSymbolicOp
	}
}

func lineLen(s string) int {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return i
	}
	return len(s)
}

func identLen(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r != '_' && r != '\'' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		n += size
	}
	return n
}

// charLen returns the length of a character literal at the start of s,
// or 0 when the quote starts a type variable such as 'T.
func charLen(s string) int {
	if len(s) >= 4 && s[1] == '\\' {
		if i := strings.IndexByte(s[3:], '\''); i >= 0 {
			return i + 4
		}
		return 0
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	if size > 0 && 1+size < len(s) && s[1+size] == '\'' {
		return size + 2
	}
	return 0
}
