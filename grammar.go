package queryparser

import (
	"strings"
)

// This file is the Grammar Engine (§4.3), the Malformed Tail handler
// (§4.6), and the Nested Keyword Query rules (§4.4) from spec.md. It is
// a hand-written recursive-descent parser over a pre-lexed token
// buffer (see lexer.go), generalized from filterexpression.go's
// ordered-alternative production chain (Expression → Sequence → Factor
// → Term) to this grammar's two-dialect, stateful shape — which
// participle's declarative struct-tag grammars can't express directly,
// since the SimpleValueBooleanQuery backtrack predicate (§4.5) is
// semantic (does the right-hand fragment look like a keyword clause?)
// rather than purely grammatical.

// ---- connective / sentinel word recognition ---------------------------

func isAndWord(v string) bool { return v == "and" || v == "AND" }
func isOrWord(v string) bool  { return v == "or" || v == "OR" }
func isNotWord(v string) bool { return v == "not" || v == "NOT" }

// isReservedWord reports whether v is one of the exact connective/
// negation spellings that can never be absorbed into a SimpleValue.
func isReservedWord(v string) bool {
	return isAndWord(v) || isOrWord(v) || isNotWord(v)
}

// tryConsumeConnective recognizes an explicit top-level And/Or: the
// words "and"/"AND"/"or"/"OR", the symbols "&"/"|", and the lone "+"
// token (spec.md §8: "X + -Y ... the + is treated as AND").
func (s *parseState) tryConsumeConnective() (Connective, bool) {
	tok := s.peek()
	switch tok.Kind {
	case kindAmp:
		s.advance()
		return And, true
	case kindPipe:
		s.advance()
		return Or, true
	case kindWord:
		if isAndWord(tok.Value) {
			s.advance()
			return And, true
		}
		if isOrWord(tok.Value) {
			s.advance()
			return Or, true
		}
		if tok.Value == "+" {
			s.advance()
			return And, true
		}
	}
	return 0, false
}

// tryConsumeNotTrigger recognizes "not"/"NOT", a lone "-", or a "-"
// glued to the front of a longer word (e.g. "-title", "-ac"). In the
// glued case the leading "-" is stripped from the buffered token in
// place and the position is NOT advanced, so the remainder is parsed
// fresh as the negated Expression by the caller.
func (s *parseState) tryConsumeNotTrigger() bool {
	tok := s.peek()
	if tok.Kind != kindWord {
		return false
	}
	switch {
	case isNotWord(tok.Value):
		s.advance()
		return true
	case tok.Value == "-":
		s.advance()
		return true
	case len(tok.Value) > 1 && tok.Value[0] == '-':
		s.tokens[s.pos].Value = tok.Value[1:]
		s.tokens[s.pos].Pos.Offset++
		s.tokens[s.pos].Pos.Column++
		return true
	}
	return false
}

// tryConsumeFindPrefix consumes a case-insensitive "find"/"fin"/"f"
// token. Per spec.md §4.3 it is only meaningful at the very start of a
// Statement and never appears in the AST.
func (s *parseState) tryConsumeFindPrefix() bool {
	tok := s.peek()
	if tok.Kind != kindWord {
		return false
	}
	switch strings.ToLower(tok.Value) {
	case "find", "fin", "f":
		s.advance()
		return true
	}
	return false
}

// canStartExpression reports whether the current token could begin a
// fresh Expression, used to decide whether implicit conjunction should
// even be attempted.
func (s *parseState) canStartExpression() bool {
	tok := s.peek()
	switch tok.Kind {
	case "EOF", kindRParen:
		return false
	case kindWord:
		return !isAndWord(tok.Value) && !isOrWord(tok.Value)
	default:
		return true
	}
}

// looksLikeKeywordLaunch reports whether word, taken in isolation, would
// open a keyword or nested-relation clause — the plausibility test at
// the heart of the §4.5 backtrack heuristic and the plain-adjacency
// alias-stop rule in glueRawValue.
func (d *dictionary) looksLikeKeywordLaunch(word string) bool {
	return d.isAlias(word) || d.isNestable(word)
}

// ---- top level ----------------------------------------------------------

// parseQuery implements QUERY := EMPTY | ITEM (SEP? ITEM)*.
func parseQuery(s *parseState) *Query {
	q := &Query{}
	if s.atEOF() {
		q.Items = append(q.Items, QueryItem{Empty: &EmptyQuery{}})
		return q
	}

	for !s.atEOF() {
		snap := s.save()
		stmt := parseStatement(s)
		if stmt != nil {
			q.Items = append(q.Items, QueryItem{Statement: stmt})
			continue
		}
		s.restore(snap)
		// Malformed tail (§4.6): whatever remains cannot be parsed as a
		// Statement. Tokenize it on whitespace (i.e. take each
		// remaining buffered token's text verbatim) and wrap it as a
		// single MalformedQueryWords leaf; previously parsed
		// Statements are retained.
		var words []string
		for !s.atEOF() {
			words = append(words, s.advance().Value)
		}
		q.Items = append(q.Items, QueryItem{Malformed: &MalformedQueryWords{Words: words}})
	}
	return q
}

// parseStatement implements STATEMENT := EXPR ( CONN STATEMENT )?, with
// CONN including the implicit-AND case, and the optional leading
// "find"/"fin"/"f" prefix.
func parseStatement(s *parseState) *Statement {
	snap := s.save()
	hadPrefix := s.tryConsumeFindPrefix()

	expr := parseExpression(s)
	if expr == nil {
		if hadPrefix {
			s.restore(snap)
			expr = parseExpression(s)
		}
		if expr == nil {
			return nil
		}
	}

	preConnSnap := s.save()
	if conn, ok := s.tryConsumeConnective(); ok {
		right := parseStatement(s)
		if right != nil {
			return &Statement{Boolean: &BooleanQuery{Left: expr, Connective: conn, Right: right}}
		}
		// The right-hand side failed to parse at all: back off all the
		// way past the connective itself and surface just the left
		// Expression, leaving the connective word and everything after
		// it for the malformed-tail handler (spec.md §4.6's
		// "title γ-radiation and and" case — both "and"s must remain
		// unconsumed for that handler to collect them together).
		s.restore(preConnSnap)
		return &Statement{Expression: expr}
	}

	if s.canStartExpression() {
		snap2 := s.save()
		right := parseStatement(s)
		if right != nil {
			return &Statement{Boolean: &BooleanQuery{Left: expr, Connective: And, Right: right}}
		}
		s.restore(snap2)
	}

	return &Statement{Expression: expr}
}

// parseExpression implements EXPR := NOT_EXPR | GROUP | SIMPLE.
func parseExpression(s *parseState) *Expression {
	if s.tryConsumeNotTrigger() {
		inner := parseExpression(s)
		if inner == nil {
			return nil
		}
		return &Expression{Not: &NotQuery{Expression: inner}}
	}

	if s.peek().Kind == kindLParen {
		snap := s.save()
		s.advance()
		stmt := parseStatement(s)
		if stmt != nil && s.peek().Kind == kindRParen {
			s.advance()
			return &Expression{Parenthesized: &ParenthesizedQuery{Statement: stmt}}
		}
		s.restore(snap)
	}

	simple := parseSimpleQuery(s)
	if simple == nil {
		return nil
	}
	return &Expression{Simple: simple}
}

// ---- SIMPLE: keyword queries, nested queries, and bare values ---------

// parseSimpleQuery implements SIMPLE := SPIRES_KW | INVENIO_KW |
// NESTED_KW | VALUE. Once a word is recognized as a known alias or is
// followed by ":", the production commits: if no legal value follows,
// the whole SIMPLE fails rather than falling back to treating the
// keyword word as bare text (spec.md §4.6's "title and foo" case).
func parseSimpleQuery(s *parseState) *SimpleQuery {
	tok := s.peek()
	if tok.Kind == kindWord && !isReservedWord(tok.Value) {
		word := tok.Value

		if s.dict.isNestable(word) {
			if sq := s.tryParseNested(word); sq != nil {
				return sq
			}
			// Falls through: a nestable name with no parseable body
			// behaves like any other unrecognized word (§3 invariant).
		}

		if s.peekAt(1).Kind == kindColon {
			snap := s.save()
			s.advance() // word
			s.advance() // colon
			kw := s.resolveKeyword(word)
			val := s.parseValueOrGroup(dialectInvenio)
			if val != nil {
				return &SimpleQuery{Invenio: &InvenioKeywordQuery{Keyword: kw, Value: val}}
			}
			s.restore(snap)
			return nil
		}

		if s.dict.isAlias(word) {
			snap := s.save()
			s.advance()
			kw := s.resolveKeyword(word)
			val := s.parseValueOrGroup(dialectSpires)
			if val != nil {
				return &SimpleQuery{Spires: &SpiresKeywordQuery{Keyword: kw, Value: val}}
			}
			s.restore(snap)
			return nil
		}
	}

	val := s.parseValue(dialectNone)
	if val == nil {
		return nil
	}
	return &SimpleQuery{Value: val}
}

// tryParseNested implements NESTED_KW := NESTABLE (":" | whitespace)
// EXPR (§4.4). word has already been confirmed nestable by the caller.
func (s *parseState) tryParseNested(word string) *SimpleQuery {
	snap := s.save()
	s.advance() // relation word
	if s.peek().Kind == kindColon {
		s.advance()
	}
	inner := parseExpression(s)
	if inner == nil {
		s.restore(snap)
		return nil
	}
	return &SimpleQuery{Nested: &NestedKeywordQuery{Relation: strings.ToLower(word), Inner: inner}}
}

// resolveKeyword resolves raw against the dictionary, applying the
// "ac" author-count/exact-author disambiguation (§4.1) using the first
// token of the upcoming value as the deciding hint. Must be called
// after the keyword word (and any colon) has been consumed but before
// the value is parsed. When the value will open with a comparison
// operator ("ac < 50", "ac after 2000") the hint looks past it to the
// operand itself, since the operator token alone never parses as an
// integer.
func (s *parseState) resolveKeyword(raw string) InspireKeyword {
	hint := s.peek().Value
	switch s.peek().Kind {
	case kindGreater, kindGreaterEqual, kindLess, kindLessEqual, kindEqual:
		hint = s.peekAt(1).Value
	case kindWord:
		if v := s.peek().Value; v == "after" || v == "before" {
			hint = s.peekAt(1).Value
		}
	}
	if canonical, ok := s.dict.resolveAC(raw, hint); ok {
		return InspireKeyword{Raw: raw, Known: true, Canonical: canonical}
	}
	if canonical, ok := s.dict.lookup(raw); ok {
		return InspireKeyword{Raw: raw, Known: true, Canonical: canonical}
	}
	return InspireKeyword{Raw: raw, Known: false}
}

// ---- VALUE ---------------------------------------------------------------

// parseValueOrGroup implements VALUE_OR_GROUP: either a Value, or a
// parenthesized grouping immediately after a keyword. Per spec.md
// §4.3 ("Parenthesized keyword query values"), that grouping is
// flattened to raw text (optionally split on AND/OR into a
// SimpleValueBooleanQuery of literal chunks) rather than being parsed
// through the full Statement grammar — "author:(title ellis)" yields
// the literal SimpleValue "title ellis", not a nested keyword query.
func (s *parseState) parseValueOrGroup(dlct dialect) *Value {
	if s.peek().Kind == kindLParen {
		snap := s.save()
		s.advance()
		val := s.parseValueWithBoolean(dlct)
		if val != nil && s.peek().Kind == kindRParen {
			s.advance()
			return val
		}
		s.restore(snap)
		return nil
	}
	return s.parseValue(dlct)
}

// parseValue implements VALUE := RANGE | CMP_OP VALUE_TOKEN | COMPLEX |
// SIMPLE_VALUE_BOOL, in that priority order.
func (s *parseState) parseValue(dlct dialect) *Value {
	if rng := s.tryParseRange(); rng != nil {
		return &Value{Range: rng}
	}
	if v := s.tryParseComparison(); v != nil {
		return v
	}
	if cv := s.tryParseComplexValue(); cv != nil {
		return &Value{Complex: cv}
	}
	return s.parseValueWithBoolean(dlct)
}

// tryParseComplexValue consumes a single-quoted, double-quoted, or
// regex-slashed literal verbatim, delimiters included (§4.2).
func (s *parseState) tryParseComplexValue() *ComplexValue {
	tok := s.peek()
	switch tok.Kind {
	case kindSingleQuoted, kindDoubleQuoted, kindRegex:
		s.advance()
		return &ComplexValue{Pos: tok.Pos, Text: tok.Value}
	}
	return nil
}

// tryParseRange implements RANGE := TOKEN "->" TOKEN (§4.3). The lexer
// never produces a single "->" token (">" is always split off on its
// own so that glued comparisons like "date>2013" tokenize correctly),
// so a range surfaces as three adjacent, whitespace-free tokens: a word
// ending in "-", a bare ">", and a following word.
func (s *parseState) tryParseRange() *RangeOp {
	t0 := s.peek()
	if t0.Kind != kindWord || !strings.HasSuffix(t0.Value, "-") || len(t0.Value) < 2 {
		return nil
	}
	t1 := s.peekAt(1)
	if t1.Kind != kindGreater || t1.PrecededByWS {
		return nil
	}
	t2 := s.peekAt(2)
	if t2.Kind != kindWord || t2.PrecededByWS {
		return nil
	}
	s.advance()
	s.advance()
	s.advance()
	from := strings.TrimSuffix(t0.Value, "-")
	return &RangeOp{
		Pos:  t0.Pos,
		From: SimpleRangeValue{Pos: t0.Pos, Text: from},
		To:   SimpleRangeValue{Pos: t2.Pos, Text: t2.Value},
	}
}

// tryParseComparison implements CMP_OP VALUE_TOKEN: the symbol forms
// >, >=, <, <=, and the word forms "after" (>), "before" (<). Bare "="
// is recognized but consumed as a no-op (spec.md's "date = 1987" seed
// scenario expects plain Value(SimpleValue('1987')), not an operator
// wrapper — a representational simplification from the Python original).
// The operand is a plain glued SimpleValue (no nested
// boolean — untested by the corpus and not needed: a comparison's
// right-hand side is always a single date/number-ish phrase).
func (s *parseState) tryParseComparison() *Value {
	tok := s.peek()
	if tok.Kind == kindEqual {
		s.advance()
		return nil
	}

	var field string
	switch tok.Kind {
	case kindGreaterEqual:
		field = "ge"
	case kindLessEqual:
		field = "le"
	case kindGreater:
		field = "gt"
	case kindLess:
		field = "lt"
	case kindWord:
		switch tok.Value {
		case "after":
			field = "gt"
		case "before":
			field = "lt"
		default:
			return nil
		}
	default:
		return nil
	}

	snap := s.save()
	s.advance()
	operand := s.glueRawValue(dialectNone)
	if operand == nil {
		s.restore(snap)
		return nil
	}
	cmp := &ComparisonOp{Pos: tok.Pos, Operand: *operand}
	v := &Value{}
	switch field {
	case "gt":
		v.GreaterThan = cmp
	case "ge":
		v.GreaterEqual = cmp
	case "lt":
		v.LessThan = cmp
	case "le":
		v.LessEqual = cmp
	}
	return v
}

// parseValueWithBoolean implements SIMPLE_VALUE_BOOL := SIMPLE_VALUE
// ( AND SIMPLE_VALUE )* via the bounded backtrack heuristic of §4.5:
// after gluing a SimpleValue, a following "and"/"or" is first tried as
// a value-internal connective; it is accepted unless the fragment it
// would introduce looks like it opens a fresh keyword clause, in which
// case the connective is left untouched for the Statement-level grammar
// to consume instead. Applies inside SPIRES keyword values and bare
// (unqualified) values; Invenio keyword values never treat "and"/"or"
// as value-internal (spec.md's "author:ellis and Ti:boson" scenario).
func (s *parseState) parseValueWithBoolean(dlct dialect) *Value {
	left := s.glueRawValue(dlct)
	if left == nil {
		return nil
	}

	if dlct != dialectInvenio {
		if v := s.tryValueInternalBoolean(dlct, left); v != nil {
			return v
		}
	}

	return wrapPostfixPlus(left)
}

func (s *parseState) tryValueInternalBoolean(dlct dialect, left *SimpleValue) *Value {
	tok := s.peek()
	if tok.Kind != kindWord || !(isAndWord(tok.Value) || isOrWord(tok.Value)) {
		return nil
	}
	nextTok := s.peekAt(1)
	if nextTok.Kind == kindWord && s.dict.looksLikeKeywordLaunch(nextTok.Value) {
		return nil
	}
	// A "-" glued to a keyword alias ("-author") opens a negated keyword
	// clause, not a value fragment.
	if nextTok.Kind == kindWord && len(nextTok.Value) > 1 && nextTok.Value[0] == '-' &&
		s.dict.looksLikeKeywordLaunch(nextTok.Value[1:]) {
		return nil
	}

	snap := s.save()
	conn := And
	if isOrWord(tok.Value) {
		conn = Or
	}
	s.advance()

	rightVal := s.parseValueWithBoolean(dlct)
	if rightVal == nil {
		s.restore(snap)
		return nil
	}

	b := &SimpleValueBooleanQuery{Pos: left.Pos, Left: left, Connective: conn}
	switch {
	case rightVal.SimpleValueBool != nil:
		b.RightNest = rightVal.SimpleValueBool
	case rightVal.Simple != nil:
		b.Right = rightVal.Simple
	default:
		// Right ended in a postfix "+" and became a GreaterEqualOp instead
		// of a plain SimpleValue — not a legal SimpleValueBooleanQuery
		// operand, so back off and leave the connective for the Statement
		// level.
		s.restore(snap)
		return nil
	}
	return &Value{SimpleValueBool: b}
}

// wrapPostfixPlus implements the postfix "+" rule (§4.2, §8): a
// trailing "+" glued directly onto the last word of an otherwise plain
// SimpleValue denotes "on or after" and becomes a GreaterEqualOp. It
// only fires for a genuine suffix (len > 1); a lone "+" token is always
// consumed earlier as an AND connective and never reaches here.
func wrapPostfixPlus(v *SimpleValue) *Value {
	if strings.HasSuffix(v.Text, "+") && len(v.Text) > 1 {
		return &Value{GreaterEqual: &ComparisonOp{
			Pos:     v.Pos,
			Operand: SimpleValue{Pos: v.Pos, Text: strings.TrimSuffix(v.Text, "+")},
		}}
	}
	return &Value{Simple: v}
}

// glueRawValue implements the adjacency rule (§4.2, §4.5): a maximal
// run of tokens is concatenated into one SimpleValue, inserting a
// single space wherever whitespace separated the original tokens and
// nothing where it didn't. "(" and ")" are themselves always separate
// tokens (see lexer.go) but are glued back in as literal characters
// whenever they appear as a *balanced* pair within the run — so
// "SU(2)", "C-12(vec-p,vec-n)N-12 (g.s.,1+)", and
// "Si-28(p(pol.),n(pol.))" survive as one SimpleValue's worth of text
// even though "(" is otherwise structural.
//
// The run stops at: a reserved connective/negation word, a lone "+", an
// unbalanced ")" (one that doesn't close a "(" seen during this same
// run), the end of input, any other non-Word/paren token
// (quote/regex/operator) outside a paren run, or — the
// plain-adjacency keyword-boundary rule — a word immediately followed
// by ":" (a fresh Invenio-style launch). A standalone "-" gets the same
// lookahead treatment: "yesterday - 2" glues straight through (the word
// after "-" isn't a keyword), but "yesterday - 2 - ac 100" stops right
// before the second "-" (the word after it, "ac", is a keyword alias —
// it is meant to negate a fresh clause, not extend this value).
//
// In Invenio-dialect values, a word that merely looks like a keyword
// alias never stops the run on its own (spec.md's
// "author:ellis j title:'boson'" case glues "j" into the author value);
// in Spires/bare values it does, unless a comma has already appeared
// earlier in this same run (an author-list-style continuation,
// spec.md's "parke, s j" and "ellis, j" cases). None of this
// alias/comma bookkeeping applies while inside a balanced paren run
// (depth > 0): "e(+)e(-)" glues its inner "+" and "-" unconditionally,
// and an operator token inside the run is glued as literal text too
// (the "=" in "Si28(6−,T=1)").
func (s *parseState) glueRawValue(dlct dialect) *SimpleValue {
	first := s.peek()
	if first.Kind != kindWord || isReservedWord(first.Value) || first.Value == "+" {
		return nil
	}

	var sb strings.Builder
	startPos := first.Pos
	parenDepth := 0
	sawComma := false
	isFirst := true

loop:
	for {
		cur := s.peek()

		switch cur.Kind {
		case kindWord:
			if !isFirst && parenDepth == 0 {
				if isReservedWord(cur.Value) || cur.Value == "+" {
					break loop
				}
				if s.peekAt(1).Kind == kindColon {
					break loop
				}
				if cur.Value == "-" {
					nxt := s.peekAt(1)
					if nxt.Kind == kindWord {
						if s.peekAt(2).Kind == kindColon {
							break loop
						}
						if dlct != dialectInvenio && !sawComma && s.dict.looksLikeKeywordLaunch(nxt.Value) {
							break loop
						}
					}
				} else if dlct != dialectInvenio && !sawComma && s.dict.looksLikeKeywordLaunch(cur.Value) {
					break loop
				}
			}
			if strings.Contains(cur.Value, ",") {
				sawComma = true
			}
		case kindLParen:
			parenDepth++
		case kindRParen:
			if parenDepth == 0 {
				break loop
			}
			parenDepth--
		default:
			if parenDepth == 0 || cur.Kind == "EOF" {
				break loop
			}
		}

		if !isFirst && cur.PrecededByWS {
			sb.WriteByte(' ')
		}
		sb.WriteString(cur.Value)
		s.advance()
		isFirst = false
	}

	if sb.Len() == 0 {
		return nil
	}
	return &SimpleValue{Pos: startPos, Text: sb.String()}
}
