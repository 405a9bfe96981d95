// Package queryparser parses INSPIRE-HEP literature search query
// strings — the legacy SPIRES keyword-prefix dialect and the
// colon-delimited Invenio dialect, freely mixed — into an AST for a
// downstream query-DSL generator. Lexing, grammar, keyword resolution,
// and normalization are generalized from filterexpression.go's
// participle-lexer-plus-hand-rolled-grammar shape (see lexer.go,
// grammar.go, keywords.go, state.go, normalize.go, ast.go, visitor.go).
package queryparser

// Parse tokenizes and parses input, returning the normalized AST. It
// never fails on malformed input: unparseable trailing content is
// captured as a MalformedQueryWords leaf rather than surfacing as an
// error. err is non-nil only for a lexer failure (see lexer.go — the
// token grammar accepts effectively any input via the catch-all Word
// rule, so this should not occur in practice for Go string input).
func Parse(input string) (*Query, error) {
	_, tree, err := ParseWithRemainder(input)
	return tree, err
}

// ParseWithRemainder is Parse, additionally reporting the raw
// whitespace-joined text of the MalformedQueryWords tail, if any, so a
// caller can decide whether to surface it to the end user. remainder
// is "" when the whole input parsed cleanly.
func ParseWithRemainder(input string) (remainder string, tree *Query, err error) {
	tokens, err := lexAll(input)
	if err != nil {
		return "", nil, err
	}

	s := newParseState(tokens, defaultDictionary)
	tree = parseQuery(s)

	if n := len(tree.Items); n > 0 {
		if m := tree.Items[n-1].Malformed; m != nil {
			remainder = joinWords(m.Words)
		}
	}

	if err := Normalize(tree); err != nil {
		return remainder, tree, err
	}
	return remainder, tree, nil
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
