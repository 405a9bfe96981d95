package queryparser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Query is the root of every parse tree. It is either a single EmptyQuery
// item, or one or more items each of which is a Statement or a
// MalformedQueryWords tail.
//
// Example: `author:ellis and title:boson` produces one Statement item.
type Query struct {
	Pos lexer.Position

	Items []QueryItem
}

// QueryItem is an EmptyQuery, a Statement, or a MalformedQueryWords leaf.
type QueryItem struct {
	Pos lexer.Position

	Empty     *EmptyQuery
	Statement *Statement
	Malformed *MalformedQueryWords
}

// EmptyQuery marks that the input was empty or whitespace-only.
type EmptyQuery struct {
	Pos lexer.Position
}

// MalformedQueryWords wraps the whitespace-tokenized remainder of an
// input the grammar could not interpret. It is never an error: it is the
// parser's degrade-gracefully leaf, consumed verbatim by the downstream
// layer as a best-effort free-text fallback.
type MalformedQueryWords struct {
	Pos lexer.Position

	Words []string
}

// Statement is a single clause: either a bare Expression or a
// BooleanQuery chain (right-nested in the tree; see BooleanQuery).
type Statement struct {
	Pos lexer.Position

	Expression *Expression
	Boolean    *BooleanQuery
}

// BooleanQuery composes a left Expression with a following Statement via a
// Connective. `a AND b AND c` nests as
// BooleanQuery(a, And, Statement(BooleanQuery(b, And, Statement(c)))) —
// right-nested in the tree, left-to-right in reading order.
type BooleanQuery struct {
	Pos lexer.Position

	Left       *Expression
	Connective Connective
	Right      *Statement
}

// Connective tags And/Or; the zero value is invalid.
type Connective int

const (
	_ Connective = iota
	And
	Or
)

func (c Connective) String() string {
	switch c {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return "?"
	}
}

// Expression is a unit of boolean combination: a SimpleQuery, a negation,
// or a parenthesized grouping.
type Expression struct {
	Pos lexer.Position

	Simple        *SimpleQuery
	Not           *NotQuery
	Parenthesized *ParenthesizedQuery
}

// NotQuery is logical negation, spelled `not`/`NOT` or a leading `-`.
type NotQuery struct {
	Pos lexer.Position

	Expression *Expression
}

// ParenthesizedQuery is an explicit `( ... )` grouping around a Statement.
type ParenthesizedQuery struct {
	Pos lexer.Position

	Statement *Statement
}

// SimpleQuery is an atomic clause: a keyword query (either dialect), a
// nested meta-relation query, or a bare Value with no keyword.
type SimpleQuery struct {
	Pos lexer.Position

	Invenio *InvenioKeywordQuery
	Spires  *SpiresKeywordQuery
	Nested  *NestedKeywordQuery
	Value   *Value
}

// InspireKeyword is a canonical keyword id after normalization (§4.7), or
// the raw string of an unrecognized colon-prefixed key.
type InspireKeyword struct {
	// Raw is exactly as written in the input.
	Raw string
	// Known is true once Raw has been resolved against the dictionary;
	// Canonical holds the canonical id in that case. Normalize sets both.
	Known     bool
	Canonical string
}

// Resolved returns the keyword's canonical id if known, else its raw text.
func (k InspireKeyword) Resolved() string {
	if k.Known {
		return k.Canonical
	}
	return k.Raw
}

// InvenioKeywordQuery is the colon-delimited dialect: `author:ellis`.
type InvenioKeywordQuery struct {
	Pos lexer.Position

	Keyword InspireKeyword
	Value   *Value
}

// SpiresKeywordQuery is the legacy whitespace dialect: `author ellis`.
type SpiresKeywordQuery struct {
	Pos lexer.Position

	Keyword InspireKeyword
	Value   *Value
}

// NestedKeywordQuery is a meta-relation wrapping an inner Expression, e.g.
// `citedby:author:witten` or `refersto author witten`. Relation is always
// one of the dictionary's nestable names.
type NestedKeywordQuery struct {
	Pos lexer.Position

	Relation string
	Inner    *Expression
}

// Value is the right-hand side of a keyword, or a bare unqualified term.
type Value struct {
	Pos lexer.Position

	Simple          *SimpleValue
	Complex         *ComplexValue
	SimpleValueBool *SimpleValueBooleanQuery
	Range           *RangeOp
	GreaterThan     *ComparisonOp
	GreaterEqual    *ComparisonOp
	LessThan        *ComparisonOp
	LessEqual       *ComparisonOp
}

// SimpleValue is raw, unquoted value text: a run of one or more tokens
// glued together per the adjacency rule in §4.5.
type SimpleValue struct {
	Pos lexer.Position

	Text string
}

// ComplexValue is a quoted or regex-delimited literal; Text preserves the
// opening/closing delimiter characters verbatim.
type ComplexValue struct {
	Pos lexer.Position

	Text string
}

// SimpleValueBooleanQuery is a boolean combination living inside a Value,
// e.g. `author ellis, j and smith`. Right is either a SimpleValue or
// another (right-nested) SimpleValueBooleanQuery.
type SimpleValueBooleanQuery struct {
	Pos lexer.Position

	Left       *SimpleValue
	Connective Connective
	Right      *SimpleValue
	RightNest  *SimpleValueBooleanQuery
}

// RangeOp is an inclusive range `a->b`.
type RangeOp struct {
	Pos lexer.Position

	From SimpleRangeValue
	To   SimpleRangeValue
}

// SimpleRangeValue is one endpoint of a RangeOp.
type SimpleRangeValue struct {
	Pos lexer.Position

	Text string
}

// ComparisonOp wraps a single operand for >, >=, <, <=. Which comparison
// it represents is determined by which Value field (GreaterThan, ...)
// holds it — there is no separate Kind tag, matching the AST's oneof
// style elsewhere.
type ComparisonOp struct {
	Pos lexer.Position

	Operand SimpleValue
}
