package queryparser

// Normalize implements the Keyword Normalization Pass (§4.7): it walks
// the tree with the Visitor and rewrites every InvenioKeywordQuery and
// SpiresKeywordQuery keyword in place to its canonical form, via
// InspireKeyword.Known/Canonical. Unknown colon-prefixed keys are left
// untouched (Known stays false), and NestedKeywordQuery.Relation is a
// plain string rather than an InspireKeyword, so it is never rewritten.
//
// Grounded on filterexpression.go's visitor.go pattern, generalized
// from a read-only inspection pass to a mutating one, the way
// pgraph/internal/query runs a dedicated AST-to-engine convert walk after
// parsing. The grammar engine already resolves keywords inline
// (resolveKeyword in grammar.go), so on a tree from Parse this pass only
// touches keywords not yet marked Known.
type normalizer struct {
	BaseVisitor
	dict *dictionary
}

var _ Visitor = (*normalizer)(nil)

// Normalize rewrites every keyword in tree to its canonical spelling
// using the default dictionary. It is idempotent: a keyword already
// marked Known is left as-is.
func Normalize(tree *Query) error {
	n := &normalizer{dict: defaultDictionary}
	return Walk(tree, n)
}

func (n *normalizer) VisitInvenioKeywordQuery(q *InvenioKeywordQuery) error {
	n.canonicalize(&q.Keyword)
	return nil
}

func (n *normalizer) VisitSpiresKeywordQuery(q *SpiresKeywordQuery) error {
	n.canonicalize(&q.Keyword)
	return nil
}

func (n *normalizer) canonicalize(k *InspireKeyword) {
	if k.Known {
		return
	}
	if canonical, ok := n.dict.lookup(k.Raw); ok {
		k.Known = true
		k.Canonical = canonical
	}
}
