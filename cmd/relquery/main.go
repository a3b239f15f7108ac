package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chahine-labs/relquery/internal/config"
	"github.com/chahine-labs/relquery/pkg/catalog"
	"github.com/chahine-labs/relquery/pkg/catalogfile"
	"github.com/chahine-labs/relquery/pkg/dialect"
	"github.com/chahine-labs/relquery/pkg/explainfmt"
	"github.com/chahine-labs/relquery/pkg/logger"
	"github.com/chahine-labs/relquery/pkg/parser"
	"github.com/chahine-labs/relquery/pkg/plan"
	"github.com/chahine-labs/relquery/pkg/planner"
	"github.com/chahine-labs/relquery/pkg/planstats"
	"github.com/chahine-labs/relquery/pkg/schema"

	"github.com/rs/zerolog"
)

const banner = `
 ██████╗ ███████╗██╗      ██████╗ ██╗   ██╗███████╗██████╗ ██╗   ██╗
 ██╔══██╗██╔════╝██║     ██╔═══██╗██║   ██║██╔════╝██╔══██╗╚██╗ ██╔╝
 ██████╔╝█████╗  ██║     ██║   ██║██║   ██║█████╗  ██████╔╝ ╚████╔╝
 ██╔══██╗██╔══╝  ██║     ██║▄▄ ██║██║   ██║██╔══╝  ██╔══██╗  ╚██╔╝
 ██║  ██║███████╗███████╗╚██████╔╝╚██████╔╝███████╗██║  ██║   ██║
 ╚═╝  ╚═╝╚══════╝╚══════╝ ╚══▀▀═╝  ╚═════╝ ╚══════╝╚═╝  ╚═╝   ╚═╝

 relquery — scan, parse, and plan a SQL statement against a catalog
`

func main() {
	var (
		queryText  = flag.String("sql", "", "SQL query string")
		queryFile  = flag.String("query", "", "file containing the SQL query")
		configFile = flag.String("config", "", "configuration file path")
		logLevel   = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
		catalogFl  = flag.String("catalog", "", "catalog file (JSON or YAML table schema)")
		explain    = flag.Bool("explain", false, "print the logical plan instead of just validating it")
		jsonOutput = flag.Bool("json", false, "emit machine-readable JSON instead of text")
		showHelp   = flag.Bool("help", false, "show help")
	)
	flag.Parse()

	if *showHelp {
		fmt.Print(banner)
		showUsage()
		return
	}

	log := logger.New(*logLevel, "console")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Warn().Err(err).Msg("could not load config, using defaults")
		cfg = config.DefaultConfig()
	}

	sql, err := readQuery(*queryText, *queryFile)
	if err != nil {
		log.Error().Err(err).Msg("could not read query")
		os.Exit(1)
	}

	cat, sch, err := loadCatalog(*catalogFl)
	if err != nil {
		log.Error().Err(err).Msg("could not load catalog")
		os.Exit(1)
	}

	if err := run(sql, cfg, cat, sch, *explain, *jsonOutput, log); err != nil {
		log.Error().Err(err).Msg("query processing failed")
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("relquery - SQL scanner / parser / logical planner")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  relquery -sql \"SELECT * FROM t\"        Parse and plan a query string")
	fmt.Println("  relquery -query file.sql -explain      Parse a query file and print its plan")
	fmt.Println("  relquery -sql \"...\" -catalog db.yaml   Plan against a catalog file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config FILE      Configuration file path")
	fmt.Println("  -log-level LEVEL  trace|debug|info|warn|error (default: info)")
	fmt.Println("  -catalog FILE     Catalog file describing known tables (JSON or YAML)")
	fmt.Println("  -explain          Print the logical plan tree")
	fmt.Println("  -json             Emit JSON instead of text")
	fmt.Println("  -help             Show this help")
}

func readQuery(text, file string) (string, error) {
	if text != "" {
		return text, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read query file: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("no query given: pass -sql or -query")
}

// loadCatalog returns an empty catalog and a nil schema when no -catalog flag
// is given, so planning against an unknown schema fails with an ordinary
// "table is not exist" Plan error rather than a nil-pointer panic. When a
// catalog file is given, the underlying schema.Schema is also returned so run
// can pre-flight a statement through the teacher's own validator/type checker
// before the planner ever sees it.
func loadCatalog(path string) (catalog.Catalog, *schema.Schema, error) {
	if path == "" {
		return catalog.NewMemCatalog(), nil, nil
	}
	return catalogfile.Load(path)
}

func run(sql string, cfg *config.Config, cat catalog.Catalog, sch *schema.Schema, explain, jsonOutput bool, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	d := dialect.GetDialect(cfg.Parser.Dialect)
	p := parser.NewWithDialect(ctx, sql, d)
	stmt, err := p.ParseStatement()
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	log.Debug().Str("statement_type", stmt.Type()).Msg("parsed statement")

	if sch != nil {
		validator := schema.NewValidator(sch)
		if issues := validator.ValidateStatement(stmt); len(issues) > 0 {
			log.Warn().Int("count", len(issues)).Msg("schema validation found issues")
			for _, issue := range issues {
				fmt.Printf("schema warning: %s\n", issue.Error())
			}
		}
		checker := schema.NewTypeChecker(sch)
		if issues := checker.CheckStatement(stmt); len(issues) > 0 {
			log.Warn().Int("count", len(issues)).Msg("type check found issues")
			for _, issue := range issues {
				fmt.Printf("type warning: %s\n", issue.Error())
			}
		}
	}

	pl := planner.New(cat)
	node, err := pl.Plan(stmt)
	if err != nil {
		return fmt.Errorf("plan error: %w", err)
	}

	if !explain {
		if jsonOutput {
			return printJSON(map[string]any{"statement_type": stmt.Type(), "plan": node.String()})
		}
		fmt.Printf("OK: %s -> %s\n", stmt.Type(), node)
		return nil
	}

	rendered := explainfmt.Render(node)
	stats := planstats.Analyze(node)

	if jsonOutput {
		return printJSON(map[string]any{
			"plan":  rendered,
			"stats": stats,
		})
	}

	printPlanTree(rendered, 0)
	if len(stats.Issues) > 0 {
		fmt.Println("\nAdvisories:")
		for _, issue := range stats.Issues {
			fmt.Printf("  [%s] %s\n", issue.Severity, issue.Description)
		}
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printPlanTree(node *plan.PlanNode, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s- %s", indent, node.Operation)
	if node.Table != "" {
		line += fmt.Sprintf(" (%s)", node.Table)
	}
	if node.Condition != "" {
		line += fmt.Sprintf(" [%s]", node.Condition)
	}
	if len(node.OutputColumns) > 0 {
		line += fmt.Sprintf(" %v", node.OutputColumns)
	}
	fmt.Println(line)
	for _, child := range node.Children {
		printPlanTree(child, depth+1)
	}
}
