package planner

import (
	"strings"

	qerrors "github.com/chahine-labs/relquery/pkg/errors"
	"github.com/chahine-labs/relquery/pkg/parser"
)

// planExpression translates one AST Expression into a resolved Expr,
// binding every column reference against the context built by planFrom.
func (pl *Planner) planExpression(expr parser.Expression) (Expr, error) {
	switch e := expr.(type) {
	case *parser.ColumnReference:
		return pl.planColumnReference(e)
	case *parser.Literal:
		return Literal{Value: literalValue(e.Value)}, nil
	case *parser.StarExpression:
		return Literal{Value: Value{Kind: ValueAll}}, nil
	case *parser.FunctionCall:
		return pl.planFunctionCall(e)
	case *parser.BinaryExpression:
		return pl.planBinaryExpression(e)
	case *parser.UnaryExpression:
		return pl.planUnaryExpression(e)
	case *parser.AliasedExpression:
		inner, err := pl.planExpression(e.Expression)
		if err != nil {
			return nil, err
		}
		return Alias{Inner: inner, Name: e.Alias}, nil
	default:
		return nil, qerrors.NewPlanError("%s is not supported by the planner", expr.Type())
	}
}

func (pl *Planner) planColumnReference(e *parser.ColumnReference) (Expr, error) {
	if e.Table != "" {
		info, ok := pl.context.infoByName(e.Table)
		if !ok {
			return nil, qerrors.NewPlanError("%s is not exist", e.Table)
		}
		idx, col, ok := info.ColumnByName(e.Column)
		if !ok {
			return nil, qerrors.NewPlanError("%s is not exist in %s", e.Column, e.Table)
		}
		return ColumnExpr{ColumnIndex: idx, TableName: e.Table, ColumnName: col.Name}, nil
	}

	tableNames, ok := pl.context.tableNamesByColumnName(e.Column)
	if !ok || len(tableNames) == 0 {
		return nil, qerrors.NewPlanError("%s is not exist", e.Column)
	}
	if len(tableNames) > 1 {
		return nil, qerrors.NewPlanError("%s is ambiguous, could refer to any of %v", e.Column, tableNames)
	}

	info, ok := pl.context.infoByName(tableNames[0])
	if !ok {
		return nil, qerrors.NewInternalError("%v must exist in table_map", tableNames)
	}
	idx, col, ok := info.ColumnByName(e.Column)
	if !ok {
		return nil, qerrors.NewInternalError("%s must exist in %s's schema", e.Column, tableNames[0])
	}
	return ColumnExpr{ColumnIndex: idx, TableName: tableNames[0], ColumnName: col.Name}, nil
}

func literalValue(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Value{Kind: ValueNull}
	case bool:
		return Value{Kind: ValueBool, Bool: val}
	case int64:
		return Value{Kind: ValueInt, Int: val}
	case float64:
		return Value{Kind: ValueFloat, Flt: val}
	case string:
		return Value{Kind: ValueString, Str: val}
	default:
		return Value{Kind: ValueNull}
	}
}

func (pl *Planner) planFunctionCall(e *parser.FunctionCall) (Expr, error) {
	kind, ok := supportedAggNames[strings.ToUpper(e.Name)]
	if !ok {
		names := make([]string, 0, len(supportedAggNames))
		for n := range supportedAggNames {
			names = append(names, n)
		}
		return nil, qerrors.NewPlanError("%s unknown function name, only support %v", e.Name, names)
	}

	args := make([]Expr, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		arg, err := pl.planExpression(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return AggExpr{Kind: kind, Args: args}, nil
}

var binaryOperators = map[string]Operator{
	"AND": And, "OR": Or,
	"=": Eq, "==": Eq,
	"!=": NotEq, "<>": NotEq,
	">": Gt, ">=": GtEq,
	"<": Lt, "<=": LtEq,
	"+": Plus, "-": Minus,
	"*": Multiply, "/": Divide, "%": Modulo,
	"LIKE": Like,
}

// planBinaryExpression maps a parsed binary operator onto its keyword-free
// Operator tag. `x IS NULL` is parsed by this teacher's grammar as a binary
// expression with operator IS and a NULL right-hand literal; the source
// planner models IS NULL as its own single-argument shape, so this
// recognizes that pattern and emits UnaryExpr{IsNull} instead of a
// BinaryExpr with no Eq/NotEq/etc. counterpart.
func (pl *Planner) planBinaryExpression(e *parser.BinaryExpression) (Expr, error) {
	op := strings.ToUpper(e.Operator)

	if op == "IS" {
		if lit, ok := e.Right.(*parser.Literal); ok && lit.Value == nil {
			inner, err := pl.planExpression(e.Left)
			if err != nil {
				return nil, err
			}
			return UnaryExpr{Op: IsNull, Inner: inner}, nil
		}
	}

	tag, ok := binaryOperators[op]
	if !ok {
		return nil, qerrors.NewPlanError("%s is not a supported operator", e.Operator)
	}

	left, err := pl.planExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := pl.planExpression(e.Right)
	if err != nil {
		return nil, err
	}
	return BinaryExpr{Left: left, Op: tag, Right: right}, nil
}

func (pl *Planner) planUnaryExpression(e *parser.UnaryExpression) (Expr, error) {
	inner, err := pl.planExpression(e.Operand)
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(e.Operator) {
	case "NOT":
		return UnaryExpr{Op: Not, Inner: inner}, nil
	case "-":
		return UnaryExpr{Op: Negate, Inner: inner}, nil
	case "+":
		return UnaryExpr{Op: Assert, Inner: inner}, nil
	case "!":
		return UnaryExpr{Op: BitwiseNot, Inner: inner}, nil
	default:
		return nil, qerrors.NewPlanError("%s is not a supported unary operator", e.Operator)
	}
}
