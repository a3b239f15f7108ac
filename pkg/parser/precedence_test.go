package parser

import "testing"

func mustParseSelect(t *testing.T, sql string) *SelectStatement {
	t.Helper()
	p := New(sql)
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", sql, err)
	}
	sel, ok := stmt.(*SelectStatement)
	if !ok {
		t.Fatalf("expected *SelectStatement, got %T", stmt)
	}
	return sel
}

func asBinary(t *testing.T, expr Expression) *BinaryExpression {
	t.Helper()
	b, ok := expr.(*BinaryExpression)
	if !ok {
		t.Fatalf("expected *BinaryExpression, got %T (%s)", expr, expr.String())
	}
	return b
}

func asUnary(t *testing.T, expr Expression) *UnaryExpression {
	t.Helper()
	u, ok := expr.(*UnaryExpression)
	if !ok {
		t.Fatalf("expected *UnaryExpression, got %T (%s)", expr, expr.String())
	}
	return u
}

func asColumn(t *testing.T, expr Expression) *ColumnReference {
	t.Helper()
	c, ok := expr.(*ColumnReference)
	if !ok {
		t.Fatalf("expected *ColumnReference, got %T (%s)", expr, expr.String())
	}
	return c
}

func asLiteral(t *testing.T, expr Expression) *Literal {
	t.Helper()
	l, ok := expr.(*Literal)
	if !ok {
		t.Fatalf("expected *Literal, got %T (%s)", expr, expr.String())
	}
	return l
}

// TestProductBindsTighterThanSum: "1 + 2 * 3" must parse as Add(1, Mul(2,3)),
// never Mul(Add(1,2), 3).
func TestProductBindsTighterThanSum(t *testing.T) {
	sel := mustParseSelect(t, "SELECT 1 + 2 * 3;")
	add := asBinary(t, sel.Columns[0])
	if add.Operator != "+" {
		t.Fatalf("expected top-level '+', got %q", add.Operator)
	}
	left := asLiteral(t, add.Left)
	if left.Value.(int64) != 1 {
		t.Fatalf("expected left operand 1, got %v", left.Value)
	}
	mul := asBinary(t, add.Right)
	if mul.Operator != "*" {
		t.Fatalf("expected nested '*', got %q", mul.Operator)
	}
	if asLiteral(t, mul.Left).Value.(int64) != 2 || asLiteral(t, mul.Right).Value.(int64) != 3 {
		t.Fatalf("expected 2 * 3 nested under the sum, got %s", mul.String())
	}
}

// TestAndBindsTighterThanOr: "a OR b AND c" must group AND before OR.
func TestAndBindsTighterThanOr(t *testing.T) {
	sel := mustParseSelect(t, "SELECT a OR b AND c FROM t;")
	or := asBinary(t, sel.Columns[0])
	if or.Operator != "OR" {
		t.Fatalf("expected top-level OR, got %q", or.Operator)
	}
	if asColumn(t, or.Left).Column != "a" {
		t.Fatalf("expected left operand column 'a', got %s", or.Left.String())
	}
	and := asBinary(t, or.Right)
	if and.Operator != "AND" {
		t.Fatalf("expected nested AND, got %q", and.Operator)
	}
	if asColumn(t, and.Left).Column != "b" || asColumn(t, and.Right).Column != "c" {
		t.Fatalf("expected b AND c nested under the OR, got %s", and.String())
	}
}

// TestComparisonBindsTighterThanNot: "NOT a = b" must parse as Not(Eq(a,b)),
// not Eq(Not(a), b).
func TestComparisonBindsTighterThanNot(t *testing.T) {
	sel := mustParseSelect(t, "SELECT * FROM t WHERE NOT a = b;")
	not := asUnary(t, sel.Where)
	if not.Operator != "NOT" {
		t.Fatalf("expected top-level NOT, got %q", not.Operator)
	}
	eq := asBinary(t, not.Operand)
	if eq.Operator != "=" {
		t.Fatalf("expected NOT's operand to be an '=' comparison, got %s", eq.String())
	}
	if asColumn(t, eq.Left).Column != "a" || asColumn(t, eq.Right).Column != "b" {
		t.Fatalf("expected a = b under the NOT, got %s", eq.String())
	}
}

// TestNotBindsTighterThanAnd: "NOT a AND b" must parse as And(Not(a), b).
func TestNotBindsTighterThanAnd(t *testing.T) {
	sel := mustParseSelect(t, "SELECT NOT a AND b FROM t;")
	and := asBinary(t, sel.Columns[0])
	if and.Operator != "AND" {
		t.Fatalf("expected top-level AND, got %q", and.Operator)
	}
	not := asUnary(t, and.Left)
	if not.Operator != "NOT" || asColumn(t, not.Operand).Column != "a" {
		t.Fatalf("expected NOT(a) on the left of AND, got %s", and.Left.String())
	}
	if asColumn(t, and.Right).Column != "b" {
		t.Fatalf("expected bare b on the right of AND, got %s", and.Right.String())
	}
}

// TestUnaryMinusLiteral: "SELECT -1;" must parse, producing a UnaryExpression
// wrapping the literal rather than failing outright.
func TestUnaryMinusLiteral(t *testing.T) {
	sel := mustParseSelect(t, "SELECT -1;")
	neg := asUnary(t, sel.Columns[0])
	if neg.Operator != "-" {
		t.Fatalf("expected '-' operator, got %q", neg.Operator)
	}
	if asLiteral(t, neg.Operand).Value.(int64) != 1 {
		t.Fatalf("expected operand 1, got %v", neg.Operand)
	}
}

// TestUnaryMinusBindsTighterThanSum: "-1 + 2" must parse as Add(Negate(1), 2).
func TestUnaryMinusBindsTighterThanSum(t *testing.T) {
	sel := mustParseSelect(t, "SELECT -1 + 2;")
	add := asBinary(t, sel.Columns[0])
	if add.Operator != "+" {
		t.Fatalf("expected top-level '+', got %q", add.Operator)
	}
	neg := asUnary(t, add.Left)
	if neg.Operator != "-" || asLiteral(t, neg.Operand).Value.(int64) != 1 {
		t.Fatalf("expected -1 on the left of +, got %s", add.Left.String())
	}
}

// TestUnaryPlusAssertion covers the prefix '+' parselet.
func TestUnaryPlusAssertion(t *testing.T) {
	sel := mustParseSelect(t, "SELECT +1;")
	assertExpr := asUnary(t, sel.Columns[0])
	if assertExpr.Operator != "+" {
		t.Fatalf("expected '+' operator, got %q", assertExpr.Operator)
	}
}

// TestUnaryBangBitwiseNot covers the prefix '!' parselet (bitwise NOT, as
// opposed to the NOT keyword used for boolean negation).
func TestUnaryBangBitwiseNot(t *testing.T) {
	sel := mustParseSelect(t, "SELECT !1;")
	bnot := asUnary(t, sel.Columns[0])
	if bnot.Operator != "!" {
		t.Fatalf("expected '!' operator, got %q", bnot.Operator)
	}
}

// TestBareNotWithoutExists confirms NOT no longer requires EXISTS to follow
// it; a plain boolean expression is enough.
func TestBareNotWithoutExists(t *testing.T) {
	sel := mustParseSelect(t, "SELECT * FROM t WHERE NOT active;")
	not := asUnary(t, sel.Where)
	if not.Operator != "NOT" {
		t.Fatalf("expected NOT operator, got %q", not.Operator)
	}
	if asColumn(t, not.Operand).Column != "active" {
		t.Fatalf("expected operand 'active', got %s", not.Operand.String())
	}
}

// TestGroupedExpressionOverridesPrecedence: parentheses must still be able to
// force SUM to happen before PRODUCT.
func TestGroupedExpressionOverridesPrecedence(t *testing.T) {
	sel := mustParseSelect(t, "SELECT (1 + 2) * 3;")
	mul := asBinary(t, sel.Columns[0])
	if mul.Operator != "*" {
		t.Fatalf("expected top-level '*', got %q", mul.Operator)
	}
	add := asBinary(t, mul.Left)
	if add.Operator != "+" {
		t.Fatalf("expected grouped '+' on the left of '*', got %s", mul.Left.String())
	}
}
