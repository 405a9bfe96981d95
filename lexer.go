package queryparser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// tokenLexer is the token grammar for §4.2's literal recognizers. Rules
// are tried in order and the first match at the current position wins,
// so more specific patterns are listed before the catch-all Word rule —
// the same ordering discipline filterexpression.go and
// pgraph/internal/dsl/grammar.go use (String before the generic
// punctuation/operator rule, Float before Int).
//
// Structural punctuation (parens, colon, &, |, comparison operators) is
// always its own token even when glued to adjacent text with no
// whitespace (e.g. "SU(2)", "date>2013"); the grammar engine, not the
// lexer, decides whether a given "(" opens a group or is data inside a
// SimpleValue, and whether adjacent tokens glue back together with or
// without an inserted space. That contextual decision is exactly the
// ambiguity spec.md calls out as the hard part of this grammar; pushing
// it into the lexer via lookahead assertions isn't possible with RE2
// regexps anyway.
var tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Regex", Pattern: `/(\\.|[^/\\])*/`},
	{Name: "DoubleQuoted", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "SingleQuoted", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Colon", Pattern: `:`},
	{Name: "GreaterEqual", Pattern: `>=`},
	{Name: "LessEqual", Pattern: `<=`},
	{Name: "Greater", Pattern: `>`},
	{Name: "Less", Pattern: `<`},
	{Name: "Equal", Pattern: `=`},
	{Name: "Amp", Pattern: `&`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Word", Pattern: `[^\s():&|<>=]+`},
})

// tokenKind names, used throughout grammar.go instead of raw lexer.TokenType
// ints for readability.
const (
	kindWhitespace   = "Whitespace"
	kindRegex        = "Regex"
	kindDoubleQuoted = "DoubleQuoted"
	kindSingleQuoted = "SingleQuoted"
	kindLParen       = "LParen"
	kindRParen       = "RParen"
	kindColon        = "Colon"
	kindGreaterEqual = "GreaterEqual"
	kindLessEqual    = "LessEqual"
	kindGreater      = "Greater"
	kindLess         = "Less"
	kindEqual        = "Equal"
	kindAmp          = "Amp"
	kindPipe         = "Pipe"
	kindWord         = "Word"
)

// symbolName maps a lexer.TokenType back to the rule name above. Built
// once from the lexer's symbol table, the same indirection
// participle-based grammars get for free from struct tags.
var symbolName = func() map[lexer.TokenType]string {
	m := map[lexer.TokenType]string{}
	for name, t := range tokenLexer.Symbols() {
		m[t] = name
	}
	return m
}()

// posToken is a lexed token plus a resolved kind name and a flag for
// whether whitespace preceded it in the original input (consumed
// separately below since Whitespace tokens themselves are elided from
// the buffer handed to the grammar engine).
type posToken struct {
	lexer.Token
	Kind         string
	PrecededByWS bool
}

// lexAll tokenizes input fully up front, eliding Whitespace tokens but
// recording, for each surviving token, whether whitespace immediately
// preceded it. The grammar engine needs that one bit to implement the
// adjacency rule in §4.5 (glue with an inserted space vs. glue with
// none) without re-scanning raw text.
func lexAll(input string) ([]posToken, error) {
	lex, err := tokenLexer.LexString("", input)
	if err != nil {
		return nil, err
	}
	var out []posToken
	precededByWS := false
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			out = append(out, posToken{Token: tok, Kind: "EOF", PrecededByWS: precededByWS})
			break
		}
		name := symbolName[tok.Type]
		if name == kindWhitespace {
			precededByWS = true
			continue
		}
		out = append(out, posToken{Token: tok, Kind: name, PrecededByWS: precededByWS})
		precededByWS = false
	}
	return out, nil
}
