package planner

import "fmt"

// Operator is the keyword-free counterpart of the AST's string operators;
// the planner resolves case variants such as "AND"/"and" down to one tag
// per operation before anything downstream has to care about spelling.
type Operator int

const (
	And Operator = iota
	Or
	Eq
	NotEq
	Gt
	GtEq
	Lt
	LtEq
	Plus
	Minus
	Multiply
	Divide
	Modulo
	Like
)

func (op Operator) String() string {
	switch op {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Eq:
		return "="
	case NotEq:
		return "!="
	case Gt:
		return ">"
	case GtEq:
		return ">="
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	case Like:
		return "LIKE"
	default:
		return "?"
	}
}

// UnaryOp tags the single-argument expression shapes the AST can produce
// outside of a plain binary operation: NOT, unary minus, IS NULL, a bare
// assertion, and bitwise complement.
type UnaryOp int

const (
	Not UnaryOp = iota
	Negate
	IsNull
	Assert
	BitwiseNot
)

func (op UnaryOp) String() string {
	switch op {
	case Not:
		return "NOT"
	case Negate:
		return "-"
	case IsNull:
		return "IS NULL"
	case Assert:
		return "ASSERT"
	case BitwiseNot:
		return "~"
	default:
		return "?"
	}
}

// AggKind is the closed set of aggregate functions this planner recognizes.
type AggKind int

const (
	Min AggKind = iota
	Max
	Count
	Sum
)

func (k AggKind) String() string {
	switch k {
	case Min:
		return "MIN"
	case Max:
		return "MAX"
	case Count:
		return "COUNT"
	case Sum:
		return "SUM"
	default:
		return "?"
	}
}

// ValueKind distinguishes the resolved literal kinds a Literal can carry.
// All is the planner's representation of a bare `*` argument, e.g. COUNT(*).
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString
	ValueAll
)

// Value is a resolved literal. Only one of Bool/Int/Float/Str is meaningful,
// selected by Kind.
type Value struct {
	Kind ValueKind
	Bool bool
	Int  int64
	Flt  float64
	Str  string
}

func (v Value) String() string {
	switch v.Kind {
	case ValueNull:
		return "NULL"
	case ValueBool:
		return fmt.Sprintf("%v", v.Bool)
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueFloat:
		return fmt.Sprintf("%g", v.Flt)
	case ValueString:
		return v.Str
	case ValueAll:
		return "*"
	default:
		return "?"
	}
}

// Expr is the planner's resolved expression IR: every identifier has been
// bound to a concrete (table, column) pair and every operator reduced to
// its keyword-free tag. Unlike the AST, an Expr tree carries no source
// position — planning errors are reported against names, not offsets.
type Expr interface {
	exprNode()
	String() string
}

// ColumnExpr is a resolved reference to one column of one bound table.
type ColumnExpr struct {
	ColumnIndex int
	TableName   string
	ColumnName  string
}

func (ColumnExpr) exprNode() {}
func (c ColumnExpr) String() string {
	return fmt.Sprintf("%s.%s", c.TableName, c.ColumnName)
}

// Literal wraps a resolved constant value.
type Literal struct {
	Value Value
}

func (Literal) exprNode() {}
func (l Literal) String() string { return l.Value.String() }

// BinaryExpr is a resolved binary operation.
type BinaryExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
}

func (BinaryExpr) exprNode() {}
func (b BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryExpr is a resolved single-argument operation.
type UnaryExpr struct {
	Op    UnaryOp
	Inner Expr
}

func (UnaryExpr) exprNode() {}
func (u UnaryExpr) String() string { return fmt.Sprintf("%s(%s)", u.Op, u.Inner) }

// AggExpr is a resolved aggregate function call.
type AggExpr struct {
	Kind AggKind
	Args []Expr
}

func (AggExpr) exprNode() {}
func (a AggExpr) String() string { return fmt.Sprintf("%s(%v)", a.Kind, a.Args) }

// Alias names the result of an inner expression, as in `expr AS alias`.
type Alias struct {
	Inner Expr
	Name  string
}

func (Alias) exprNode() {}
func (a Alias) String() string { return fmt.Sprintf("%s AS %s", a.Inner, a.Name) }
