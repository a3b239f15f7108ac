package parser

import (
	"context"
	"testing"

	"github.com/chahine-labs/relquery/pkg/dialect"
)

func parseWithDialect(t *testing.T, sql, dialectName string) (Statement, error) {
	t.Helper()
	p := NewWithDialect(context.Background(), sql, dialect.GetDialect(dialectName))
	return p.ParseStatement()
}

func TestCreateTableAcrossDialects(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		dialect string
	}{
		{"simple columns", `CREATE TABLE users (id INT, name VARCHAR(100))`, "mysql"},
		{"if not exists", `CREATE TABLE IF NOT EXISTS products (id INT, name VARCHAR(255))`, "postgresql"},
		{"primary key", `CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(100))`, "mysql"},
		{"not null", `CREATE TABLE users (id INT NOT NULL, email VARCHAR(100) NOT NULL)`, "postgresql"},
		{"mysql auto_increment", `CREATE TABLE users (id INT AUTO_INCREMENT PRIMARY KEY)`, "mysql"},
		{"sqlite autoincrement", `CREATE TABLE users (id INTEGER AUTOINCREMENT PRIMARY KEY)`, "sqlite"},
		{"sqlserver identity", `CREATE TABLE users (id INT IDENTITY PRIMARY KEY)`, "sqlserver"},
		{"default value", `CREATE TABLE users (id INT, status VARCHAR(20) DEFAULT 'active')`, "mysql"},
		{"unique constraint", `CREATE TABLE users (id INT, email VARCHAR(100) UNIQUE)`, "postgresql"},
		{"inline foreign key", `CREATE TABLE orders (id INT, user_id INT REFERENCES users(id))`, "postgresql"},
		{"table-level primary key", `CREATE TABLE users (id INT, email VARCHAR(100), PRIMARY KEY (id))`, "mysql"},
		{"composite primary key", `CREATE TABLE user_roles (user_id INT, role_id INT, PRIMARY KEY (user_id, role_id))`, "postgresql"},
		{"named constraint", `CREATE TABLE orders (id INT, user_id INT, CONSTRAINT fk_user FOREIGN KEY (user_id) REFERENCES users(id))`, "postgresql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := parseWithDialect(t, tt.sql, tt.dialect)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := stmt.(*CreateTableStatement); !ok {
				t.Fatalf("expected *CreateTableStatement, got %T", stmt)
			}
		})
	}
}

func TestDropAndAlterTable(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		dialect string
	}{
		{"drop table", `DROP TABLE users`, "mysql"},
		{"drop cascade", `DROP TABLE users CASCADE`, "postgresql"},
		{"alter add column", `ALTER TABLE users ADD COLUMN age INT`, "mysql"},
		{"mysql change column", `ALTER TABLE users CHANGE COLUMN old_name new_name VARCHAR(100)`, "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseWithDialect(t, tt.sql, tt.dialect); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestInsertStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"single row", `INSERT INTO users (id, name) VALUES (1, 'alice')`},
		{"multi row", `INSERT INTO users (id, name) VALUES (1, 'alice'), (2, 'bob')`},
		{"no column list", `INSERT INTO users VALUES (1, 'alice')`},
		{"insert select", `INSERT INTO users_copy SELECT * FROM users`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.sql)
			stmt, err := p.ParseStatement()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := stmt.(*InsertStatement); !ok {
				t.Fatalf("expected *InsertStatement, got %T", stmt)
			}
		})
	}
}

func TestUpdateAndDeleteStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"update with where", `UPDATE users SET name = 'alice', active = TRUE WHERE id = 1`},
		{"update order limit", `UPDATE users SET name = 'x' ORDER BY id LIMIT 1`},
		{"delete with where", `DELETE FROM users WHERE id = 1`},
		{"delete all", `DELETE FROM users`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.sql)
			if _, err := p.ParseStatement(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBooleanLiterals(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"TRUE in WHERE", `SELECT * FROM users WHERE active = TRUE`},
		{"FALSE in WHERE", `SELECT * FROM users WHERE active = FALSE`},
		{"bare TRUE column list", `SELECT TRUE FROM users`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.sql)
			if _, err := p.ParseStatement(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOuterJoinOnOptional(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{"inner join requires on", `SELECT * FROM a JOIN b`, true},
		{"inner join with on", `SELECT * FROM a JOIN b ON a.id = b.id`, false},
		{"left join without on", `SELECT * FROM a LEFT JOIN b`, false},
		{"right join without on", `SELECT * FROM a RIGHT JOIN b`, false},
		{"full join without on", `SELECT * FROM a FULL JOIN b`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.sql)
			_, err := p.ParseStatement()
			if tt.wantErr && err == nil {
				t.Fatal("expected an error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTransactionStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"begin", `BEGIN TRANSACTION`},
		{"commit", `COMMIT`},
		{"rollback", `ROLLBACK`},
		{"savepoint", `SAVEPOINT sp1`},
		{"release savepoint", `RELEASE SAVEPOINT sp1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.sql)
			if _, err := p.ParseStatement(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestExplainStatement(t *testing.T) {
	p := New(`EXPLAIN SELECT * FROM users WHERE id = 1`)
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt.Type() != "ExplainStatement" {
		t.Fatalf("expected ExplainStatement, got %s", stmt.Type())
	}
}
