package queryparser_test

import (
	"errors"
	"testing"

	qp "github.com/inspirehep/queryparser"
)

// countingVisitor tallies every keyword and value node visited, to check
// that Walk reaches the Invenio, Spires and Nested keyword queries and
// the values of a tree joined by a boolean combination.
type countingVisitor struct {
	qp.BaseVisitor
	invenio, spires, nested, value, simpleValue int
}

func (c *countingVisitor) VisitInvenioKeywordQuery(*qp.InvenioKeywordQuery) error {
	c.invenio++
	return nil
}
func (c *countingVisitor) VisitSpiresKeywordQuery(*qp.SpiresKeywordQuery) error {
	c.spires++
	return nil
}
func (c *countingVisitor) VisitNestedKeywordQuery(*qp.NestedKeywordQuery) error {
	c.nested++
	return nil
}
func (c *countingVisitor) VisitValue(*qp.Value) error {
	c.value++
	return nil
}
func (c *countingVisitor) VisitSimpleValue(*qp.SimpleValue) error {
	c.simpleValue++
	return nil
}

func TestWalkVisitsKeywordAndValueNodes(t *testing.T) {
	tree, err := qp.Parse("author:ellis and citedby author witten")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	c := &countingVisitor{}
	if err := qp.Walk(tree, c); err != nil {
		t.Fatalf("Walk() failed: %v", err)
	}

	if c.invenio != 1 {
		t.Errorf("invenio visits = %d, want 1", c.invenio)
	}
	if c.spires != 1 {
		t.Errorf("spires visits = %d, want 1 (the nested clause's author witten)", c.spires)
	}
	if c.nested != 1 {
		t.Errorf("nested visits = %d, want 1", c.nested)
	}
	if c.value != 2 {
		t.Errorf("value visits = %d, want 2", c.value)
	}
	if c.simpleValue != 2 {
		t.Errorf("simpleValue visits = %d, want 2", c.simpleValue)
	}
}

var errStop = errors.New("stop")

type erroringVisitor struct {
	qp.BaseVisitor
}

func (erroringVisitor) VisitSimpleValue(*qp.SimpleValue) error {
	return errStop
}

func TestWalkPropagatesError(t *testing.T) {
	tree, err := qp.Parse("author ellis")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if err := qp.Walk(tree, erroringVisitor{}); !errors.Is(err, errStop) {
		t.Errorf("Walk() error = %v, want %v", err, errStop)
	}
}

func TestNormalizeLeavesUnknownKeywordRaw(t *testing.T) {
	tree, err := qp.Parse("weirdkeyword:foo")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	sq := tree.Items[0].Statement.Expression.Simple
	if sq.Invenio == nil {
		t.Fatalf("expected an InvenioKeywordQuery, got %#v", sq)
	}
	if sq.Invenio.Keyword.Known {
		t.Errorf("Keyword.Known = true for an unrecognized key, want false")
	}
	if sq.Invenio.Keyword.Resolved() != "weirdkeyword" {
		t.Errorf("Keyword.Resolved() = %q, want the raw spelling", sq.Invenio.Keyword.Resolved())
	}
}
