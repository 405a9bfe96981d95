package queryparser

// Visitor provides an interface for visiting a parsed Query AST.
// Methods are called post-order (children before parent), each able to
// return an error to indicate a construction failure or a semantic
// error, which immediately halts the walk and surfaces that error to
// the caller of Walk. A nil return continues to the next node.
//
// Generalized from filterexpression.go's FilterVisitor/Accept pair:
// same shape (a no-op embeddable base Visitor, a free Walk function,
// Accept methods on every node), widened to this grammar's larger node
// set.
type Visitor interface {
	VisitQuery(ast *Query) error
	VisitQueryItem(ast *QueryItem) error
	VisitEmptyQuery(ast *EmptyQuery) error
	VisitMalformedQueryWords(ast *MalformedQueryWords) error
	VisitStatement(ast *Statement) error
	VisitBooleanQuery(ast *BooleanQuery) error
	VisitExpression(ast *Expression) error
	VisitNotQuery(ast *NotQuery) error
	VisitParenthesizedQuery(ast *ParenthesizedQuery) error
	VisitSimpleQuery(ast *SimpleQuery) error
	VisitInvenioKeywordQuery(ast *InvenioKeywordQuery) error
	VisitSpiresKeywordQuery(ast *SpiresKeywordQuery) error
	VisitNestedKeywordQuery(ast *NestedKeywordQuery) error
	VisitValue(ast *Value) error
	VisitSimpleValue(ast *SimpleValue) error
	VisitComplexValue(ast *ComplexValue) error
	VisitSimpleValueBooleanQuery(ast *SimpleValueBooleanQuery) error
	VisitRangeOp(ast *RangeOp) error
	VisitComparisonOp(ast *ComparisonOp) error
}

// BaseVisitor satisfies Visitor with no-op methods. Embed it into your
// own visitor so you only need to implement the methods you require.
type BaseVisitor struct{}

func (BaseVisitor) VisitQuery(*Query) error                                     { return nil }
func (BaseVisitor) VisitQueryItem(*QueryItem) error                             { return nil }
func (BaseVisitor) VisitEmptyQuery(*EmptyQuery) error                           { return nil }
func (BaseVisitor) VisitMalformedQueryWords(*MalformedQueryWords) error         { return nil }
func (BaseVisitor) VisitStatement(*Statement) error                             { return nil }
func (BaseVisitor) VisitBooleanQuery(*BooleanQuery) error                       { return nil }
func (BaseVisitor) VisitExpression(*Expression) error                           { return nil }
func (BaseVisitor) VisitNotQuery(*NotQuery) error                               { return nil }
func (BaseVisitor) VisitParenthesizedQuery(*ParenthesizedQuery) error           { return nil }
func (BaseVisitor) VisitSimpleQuery(*SimpleQuery) error                         { return nil }
func (BaseVisitor) VisitInvenioKeywordQuery(*InvenioKeywordQuery) error         { return nil }
func (BaseVisitor) VisitSpiresKeywordQuery(*SpiresKeywordQuery) error           { return nil }
func (BaseVisitor) VisitNestedKeywordQuery(*NestedKeywordQuery) error           { return nil }
func (BaseVisitor) VisitValue(*Value) error                                    { return nil }
func (BaseVisitor) VisitSimpleValue(*SimpleValue) error                        { return nil }
func (BaseVisitor) VisitComplexValue(*ComplexValue) error                      { return nil }
func (BaseVisitor) VisitSimpleValueBooleanQuery(*SimpleValueBooleanQuery) error { return nil }
func (BaseVisitor) VisitRangeOp(*RangeOp) error                                { return nil }
func (BaseVisitor) VisitComparisonOp(*ComparisonOp) error                      { return nil }

// Walk visits ast (and every descendant) with visitor, post-order.
func Walk(ast *Query, visitor Visitor) error {
	return ast.Accept(visitor)
}

func (ast *Query) Accept(visitor Visitor) error {
	for i := range ast.Items {
		if err := ast.Items[i].Accept(visitor); err != nil {
			return err
		}
	}
	return visitor.VisitQuery(ast)
}

func (ast *QueryItem) Accept(visitor Visitor) error {
	if ast.Empty != nil {
		if err := ast.Empty.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Statement != nil {
		if err := ast.Statement.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Malformed != nil {
		if err := ast.Malformed.Accept(visitor); err != nil {
			return err
		}
	}
	return visitor.VisitQueryItem(ast)
}

func (ast *EmptyQuery) Accept(visitor Visitor) error {
	return visitor.VisitEmptyQuery(ast)
}

func (ast *MalformedQueryWords) Accept(visitor Visitor) error {
	return visitor.VisitMalformedQueryWords(ast)
}

func (ast *Statement) Accept(visitor Visitor) error {
	if ast.Expression != nil {
		if err := ast.Expression.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Boolean != nil {
		if err := ast.Boolean.Accept(visitor); err != nil {
			return err
		}
	}
	return visitor.VisitStatement(ast)
}

func (ast *BooleanQuery) Accept(visitor Visitor) error {
	if err := ast.Left.Accept(visitor); err != nil {
		return err
	}
	if err := ast.Right.Accept(visitor); err != nil {
		return err
	}
	return visitor.VisitBooleanQuery(ast)
}

func (ast *Expression) Accept(visitor Visitor) error {
	if ast.Simple != nil {
		if err := ast.Simple.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Not != nil {
		if err := ast.Not.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Parenthesized != nil {
		if err := ast.Parenthesized.Accept(visitor); err != nil {
			return err
		}
	}
	return visitor.VisitExpression(ast)
}

func (ast *NotQuery) Accept(visitor Visitor) error {
	if err := ast.Expression.Accept(visitor); err != nil {
		return err
	}
	return visitor.VisitNotQuery(ast)
}

func (ast *ParenthesizedQuery) Accept(visitor Visitor) error {
	if err := ast.Statement.Accept(visitor); err != nil {
		return err
	}
	return visitor.VisitParenthesizedQuery(ast)
}

func (ast *SimpleQuery) Accept(visitor Visitor) error {
	if ast.Invenio != nil {
		if err := ast.Invenio.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Spires != nil {
		if err := ast.Spires.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Nested != nil {
		if err := ast.Nested.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Value != nil {
		if err := ast.Value.Accept(visitor); err != nil {
			return err
		}
	}
	return visitor.VisitSimpleQuery(ast)
}

func (ast *InvenioKeywordQuery) Accept(visitor Visitor) error {
	if err := ast.Value.Accept(visitor); err != nil {
		return err
	}
	return visitor.VisitInvenioKeywordQuery(ast)
}

func (ast *SpiresKeywordQuery) Accept(visitor Visitor) error {
	if err := ast.Value.Accept(visitor); err != nil {
		return err
	}
	return visitor.VisitSpiresKeywordQuery(ast)
}

func (ast *NestedKeywordQuery) Accept(visitor Visitor) error {
	if err := ast.Inner.Accept(visitor); err != nil {
		return err
	}
	return visitor.VisitNestedKeywordQuery(ast)
}

func (ast *Value) Accept(visitor Visitor) error {
	if ast.Simple != nil {
		if err := ast.Simple.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Complex != nil {
		if err := ast.Complex.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.SimpleValueBool != nil {
		if err := ast.SimpleValueBool.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.Range != nil {
		if err := ast.Range.Accept(visitor); err != nil {
			return err
		}
	}
	for _, cmp := range []*ComparisonOp{ast.GreaterThan, ast.GreaterEqual, ast.LessThan, ast.LessEqual} {
		if cmp != nil {
			if err := cmp.Accept(visitor); err != nil {
				return err
			}
		}
	}
	return visitor.VisitValue(ast)
}

func (ast *SimpleValue) Accept(visitor Visitor) error {
	return visitor.VisitSimpleValue(ast)
}

func (ast *ComplexValue) Accept(visitor Visitor) error {
	return visitor.VisitComplexValue(ast)
}

func (ast *SimpleValueBooleanQuery) Accept(visitor Visitor) error {
	if err := ast.Left.Accept(visitor); err != nil {
		return err
	}
	if ast.Right != nil {
		if err := ast.Right.Accept(visitor); err != nil {
			return err
		}
	}
	if ast.RightNest != nil {
		if err := ast.RightNest.Accept(visitor); err != nil {
			return err
		}
	}
	return visitor.VisitSimpleValueBooleanQuery(ast)
}

func (ast *RangeOp) Accept(visitor Visitor) error {
	return visitor.VisitRangeOp(ast)
}

func (ast *ComparisonOp) Accept(visitor Visitor) error {
	return visitor.VisitComparisonOp(ast)
}
