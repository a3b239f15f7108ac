package parser

import (
	"fmt"
	"strconv"

	"github.com/chahine-labs/relquery/pkg/lexer"
)

// parseBeginTransaction parses BEGIN or START TRANSACTION statements
// Syntax:
//   - BEGIN [WORK | TRANSACTION] [AS OF SYSTEM TIME <int>] [READ ONLY]
//   - START TRANSACTION [AS OF SYSTEM TIME <int>] [READ ONLY]
//
// AS OF SYSTEM TIME is accepted without a preceding READ ONLY; the grammar
// does not require the two to appear together.
func (p *Parser) parseBeginTransaction() (Statement, error) {
	stmt := &BeginTransactionStatement{}

	if p.curTokenIs(lexer.BEGIN) {
		stmt.UseStart = false
		p.nextToken()

		// Optional WORK or TRANSACTION keyword
		if p.curTokenIs(lexer.WORK) || p.curTokenIs(lexer.TRANSACTION) {
			p.nextToken()
		}
	} else if p.curTokenIs(lexer.START) {
		stmt.UseStart = true
		p.nextToken()

		if !p.curTokenIs(lexer.TRANSACTION) {
			return nil, fmt.Errorf("expected TRANSACTION after START, got %s", p.curToken.Literal)
		}
		p.nextToken()
	} else {
		return nil, fmt.Errorf("expected BEGIN or START for transaction, got %s", p.curToken.Literal)
	}

	if p.curTokenIs(lexer.AS) {
		p.nextToken()
		if !p.curTokenIs(lexer.OF) {
			return nil, fmt.Errorf("expected OF after AS, got %s", p.curToken.Literal)
		}
		p.nextToken()
		if !p.curTokenIs(lexer.SYSTEM) {
			return nil, fmt.Errorf("expected SYSTEM after AS OF, got %s", p.curToken.Literal)
		}
		p.nextToken()
		if !p.curTokenIs(lexer.TIME) {
			return nil, fmt.Errorf("expected TIME after AS OF SYSTEM, got %s", p.curToken.Literal)
		}
		p.nextToken()
		if !p.curTokenIs(lexer.NUMBER) {
			return nil, fmt.Errorf("expected integer version after AS OF SYSTEM TIME, got %s", p.curToken.Literal)
		}
		version, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid AS OF SYSTEM TIME version: %v", err)
		}
		stmt.AsOfSystemTime = &version
		p.nextToken()
	}

	if p.curTokenIs(lexer.READ) {
		p.nextToken()
		if p.curTokenIs(lexer.ONLY) {
			stmt.ReadOnly = true
			p.nextToken()
		} else if p.curTokenIs(lexer.IDENT) && p.curToken.Literal == "WRITE" {
			p.nextToken()
		} else {
			return nil, fmt.Errorf("expected ONLY or WRITE after READ, got %s", p.curToken.Literal)
		}
	}

	return stmt, nil
}

// parseCommit parses COMMIT statements
// Syntax:
//   - COMMIT [WORK]
func (p *Parser) parseCommit() (Statement, error) {
	stmt := &CommitStatement{}
	p.nextToken() // consume COMMIT

	// Optional WORK keyword
	if p.curTokenIs(lexer.WORK) {
		stmt.Work = true
		p.nextToken()
	}

	return stmt, nil
}

// parseRollback parses ROLLBACK statements
// Syntax:
//   - ROLLBACK [WORK]
//   - ROLLBACK TO SAVEPOINT name
func (p *Parser) parseRollback() (Statement, error) {
	stmt := &RollbackStatement{}
	p.nextToken() // consume ROLLBACK

	// Check for TO SAVEPOINT
	if p.curTokenIs(lexer.IDENT) && p.curToken.Literal == "TO" {
		p.nextToken() // consume TO

		if !p.curTokenIs(lexer.SAVEPOINT) {
			return nil, fmt.Errorf("expected SAVEPOINT after TO, got %s", p.curToken.Literal)
		}
		p.nextToken() // consume SAVEPOINT

		if !p.curTokenIs(lexer.IDENT) {
			return nil, fmt.Errorf("expected savepoint name, got %s", p.curToken.Literal)
		}
		stmt.ToSavepoint = p.curToken.Literal
		p.nextToken()
	} else if p.curTokenIs(lexer.WORK) {
		// Optional WORK keyword
		stmt.Work = true
		p.nextToken()
	}

	return stmt, nil
}

// parseSavepoint parses SAVEPOINT statements
// Syntax:
//   - SAVEPOINT name
func (p *Parser) parseSavepoint() (Statement, error) {
	stmt := &SavepointStatement{}
	p.nextToken() // consume SAVEPOINT

	if !p.curTokenIs(lexer.IDENT) {
		return nil, fmt.Errorf("expected savepoint name, got %s", p.curToken.Literal)
	}

	stmt.Name = p.curToken.Literal
	p.nextToken()

	return stmt, nil
}

// parseSet parses session/isolation-level SET statements
// Syntax:
//   - SET [SESSION | GLOBAL] ISOLATION LEVEL <level...>
//   - SET <name> = <expr>
//
// The planner does not plan SET statements; Planner.Plan returns a Plan
// error for them.
func (p *Parser) parseSet() (Statement, error) {
	stmt := &SetStatement{}
	p.nextToken() // consume SET

	if p.curTokenIs(lexer.SESSION) || p.curTokenIs(lexer.GLOBAL) {
		stmt.Scope = p.curToken.Literal
		p.nextToken()
	}

	if p.curTokenIs(lexer.ISOLATION) {
		p.nextToken()
		if !p.curTokenIs(lexer.LEVEL) {
			return nil, fmt.Errorf("expected LEVEL after ISOLATION, got %s", p.curToken.Literal)
		}
		p.nextToken()

		var words []string
		for p.curTokenIs(lexer.IDENT) || p.curTokenIs(lexer.READ) {
			words = append(words, p.curToken.Literal)
			p.nextToken()
		}
		stmt.Name = "ISOLATION LEVEL"
		stmt.Value = &Literal{Value: joinWords(words)}
		return stmt, nil
	}

	if !p.curTokenIs(lexer.IDENT) {
		return nil, fmt.Errorf("expected setting name after SET, got %s", p.curToken.Literal)
	}
	stmt.Name = p.curToken.Literal
	p.nextToken()

	if !p.curTokenIs(lexer.ASSIGN) {
		return nil, fmt.Errorf("expected '=' in SET statement, got %s", p.curToken.Literal)
	}
	p.nextToken()

	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SET value: %v", err)
	}
	stmt.Value = value

	return stmt, nil
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

// parseReleaseSavepoint parses RELEASE SAVEPOINT statements
// Syntax:
//   - RELEASE SAVEPOINT name
func (p *Parser) parseReleaseSavepoint() (Statement, error) {
	stmt := &ReleaseSavepointStatement{}
	p.nextToken() // consume RELEASE

	if !p.curTokenIs(lexer.SAVEPOINT) {
		return nil, fmt.Errorf("expected SAVEPOINT after RELEASE, got %s", p.curToken.Literal)
	}
	p.nextToken() // consume SAVEPOINT

	if !p.curTokenIs(lexer.IDENT) {
		return nil, fmt.Errorf("expected savepoint name, got %s", p.curToken.Literal)
	}

	stmt.Name = p.curToken.Literal
	p.nextToken()

	return stmt, nil
}
