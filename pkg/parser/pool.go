package parser

import "sync"

// Object pools for the AST node kinds the parser allocates most often.
// Parsing a large statement churns through many short-lived
// SelectStatement/JoinClause/BinaryExpression/ColumnReference/UnaryExpression
// values; pooling them keeps that churn off the GC.

var selectStatementPool = sync.Pool{
	New: func() interface{} { return &SelectStatement{} },
}

func GetSelectStatement() *SelectStatement {
	return selectStatementPool.Get().(*SelectStatement)
}

func PutSelectStatement(s *SelectStatement) {
	if s == nil {
		return
	}
	*s = SelectStatement{}
	selectStatementPool.Put(s)
}

var joinClausePool = sync.Pool{
	New: func() interface{} { return &JoinClause{} },
}

func GetJoinClause() *JoinClause {
	return joinClausePool.Get().(*JoinClause)
}

func PutJoinClause(j *JoinClause) {
	if j == nil {
		return
	}
	*j = JoinClause{}
	joinClausePool.Put(j)
}

var binaryExpressionPool = sync.Pool{
	New: func() interface{} { return &BinaryExpression{} },
}

func GetBinaryExpression() *BinaryExpression {
	return binaryExpressionPool.Get().(*BinaryExpression)
}

func PutBinaryExpression(b *BinaryExpression) {
	if b == nil {
		return
	}
	*b = BinaryExpression{}
	binaryExpressionPool.Put(b)
}

var columnReferencePool = sync.Pool{
	New: func() interface{} { return &ColumnReference{} },
}

func GetColumnReference() *ColumnReference {
	return columnReferencePool.Get().(*ColumnReference)
}

func PutColumnReference(c *ColumnReference) {
	if c == nil {
		return
	}
	*c = ColumnReference{}
	columnReferencePool.Put(c)
}

var unaryExpressionPool = sync.Pool{
	New: func() interface{} { return &UnaryExpression{} },
}

func GetUnaryExpression() *UnaryExpression {
	return unaryExpressionPool.Get().(*UnaryExpression)
}

func PutUnaryExpression(u *UnaryExpression) {
	if u == nil {
		return
	}
	*u = UnaryExpression{}
	unaryExpressionPool.Put(u)
}
