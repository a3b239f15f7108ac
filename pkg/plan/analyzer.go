package plan

import "fmt"

// PlanAnalyzer analyzes execution plans and provides optimization suggestions
type PlanAnalyzer struct {
	dialect string
}

// NewPlanAnalyzer creates a new plan analyzer
func NewPlanAnalyzer(dialect string) *PlanAnalyzer {
	return &PlanAnalyzer{
		dialect: dialect,
	}
}

// AnalyzePlan performs comprehensive analysis on an execution plan
func (pa *PlanAnalyzer) AnalyzePlan(plan *ExecutionPlan) *PlanAnalysis {
	analysis := &PlanAnalysis{
		Plan:            plan,
		Issues:          make([]*PlanIssue, 0),
		Recommendations: make([]*Recommendation, 0),
	}

	// Calculate statistics
	plan.CalculateStatistics()

	// Find bottlenecks
	bottlenecks := plan.FindBottlenecks()
	for _, bottleneck := range bottlenecks {
		analysis.Issues = append(analysis.Issues, &PlanIssue{
			Severity:    bottleneck.Severity,
			Type:        "BOTTLENECK",
			Description: bottleneck.Issue,
			Node:        bottleneck.Node,
			ImpactScore: bottleneck.ImpactScore,
		})

		analysis.Recommendations = append(analysis.Recommendations, &Recommendation{
			Type:        "OPTIMIZATION",
			Description: bottleneck.Recommendation,
			Priority:    pa.calculatePriority(bottleneck.Severity, bottleneck.ImpactScore),
		})
	}

	// Analyze plan structure
	pa.analyzeStructure(plan.RootNode, analysis)

	// Calculate overall score
	analysis.PerformanceScore = pa.calculatePerformanceScore(plan, analysis)

	return analysis
}

// analyzeStructure recursively analyzes the plan structure
func (pa *PlanAnalyzer) analyzeStructure(node *PlanNode, analysis *PlanAnalysis) {
	if node == nil {
		return
	}

	// Check for missing indexes
	if node.IsFullTableScan() && node.Rows != nil && node.Rows.Estimated > 100 {
		analysis.Issues = append(analysis.Issues, &PlanIssue{
			Severity:    "WARNING",
			Type:        "MISSING_INDEX",
			Description: fmt.Sprintf("Full table scan on '%s' with %d estimated rows", node.Table, node.Rows.Estimated),
			Node:        node,
			ImpactScore: float64(node.Rows.Estimated) / 1000.0,
		})

		analysis.Recommendations = append(analysis.Recommendations, &Recommendation{
			Type:        "INDEX",
			Description: fmt.Sprintf("Consider adding an index on table '%s' for columns used in filters or joins", node.Table),
			Priority:    "MEDIUM",
		})
	}

	// Check for inefficient joins
	if node.IsJoin() {
		pa.analyzeJoin(node, analysis)
	}

	// Check for sort operations
	if node.NodeType == NodeTypeSort || node.NodeType == NodeTypeQuickSort {
		if node.Rows != nil && node.Rows.Estimated > 10000 {
			analysis.Issues = append(analysis.Issues, &PlanIssue{
				Severity:    "INFO",
				Type:        "EXPENSIVE_SORT",
				Description: fmt.Sprintf("Sorting %d estimated rows", node.Rows.Estimated),
				Node:        node,
				ImpactScore: float64(node.Rows.Estimated) / 10000.0,
			})

			analysis.Recommendations = append(analysis.Recommendations, &Recommendation{
				Type:        "OPTIMIZATION",
				Description: "Consider adding an index to avoid sorting, or limit the result set before sorting",
				Priority:    "LOW",
			})
		}
	}

	// Recursively analyze children
	for _, child := range node.Children {
		pa.analyzeStructure(child, analysis)
	}
}

// analyzeJoin analyzes join operations
func (pa *PlanAnalyzer) analyzeJoin(node *PlanNode, analysis *PlanAnalysis) {
	if node.NodeType == NodeTypeNestedLoop {
		// Nested loop joins can be inefficient with large datasets
		if node.Rows != nil && node.Rows.Estimated > 5000 {
			analysis.Issues = append(analysis.Issues, &PlanIssue{
				Severity:    "WARNING",
				Type:        "INEFFICIENT_JOIN",
				Description: fmt.Sprintf("Nested loop join with %d estimated rows", node.Rows.Estimated),
				Node:        node,
				ImpactScore: float64(node.Rows.Estimated) / 5000.0,
			})

			analysis.Recommendations = append(analysis.Recommendations, &Recommendation{
				Type:        "JOIN_OPTIMIZATION",
				Description: "Consider using hash join or merge join for better performance with large datasets. Ensure appropriate indexes exist on join columns.",
				Priority:    "HIGH",
			})
		}
	}

	// Check for Cartesian products (joins without conditions)
	if node.Condition == "" && len(node.Children) >= 2 {
		analysis.Issues = append(analysis.Issues, &PlanIssue{
			Severity:    "CRITICAL",
			Type:        "CARTESIAN_PRODUCT",
			Description: "Join without condition detected - possible Cartesian product",
			Node:        node,
			ImpactScore: 10.0,
		})

		analysis.Recommendations = append(analysis.Recommendations, &Recommendation{
			Type:        "QUERY_REWRITE",
			Description: "Add explicit join conditions to avoid Cartesian product",
			Priority:    "CRITICAL",
		})
	}
}

// calculatePerformanceScore calculates an overall performance score (0-100)
func (pa *PlanAnalyzer) calculatePerformanceScore(plan *ExecutionPlan, analysis *PlanAnalysis) float64 {
	score := 100.0

	// Deduct points for issues
	for _, issue := range analysis.Issues {
		switch issue.Severity {
		case "CRITICAL":
			score -= 20.0
		case "WARNING":
			score -= 10.0
		case "INFO":
			score -= 5.0
		}
	}

	// Deduct points for high costs
	if plan.TotalCost > 10000 {
		score -= 10.0
	}

	// Deduct points for full table scans
	if plan.Statistics != nil {
		fullTableScanRatio := float64(plan.Statistics.FullTableScans) / float64(plan.Statistics.TotalNodes)
		score -= fullTableScanRatio * 20.0
	}

	// Ensure score doesn't go below 0
	if score < 0 {
		score = 0
	}

	return score
}

// calculatePriority calculates recommendation priority based on severity and impact
func (pa *PlanAnalyzer) calculatePriority(severity string, impact float64) string {
	if severity == "CRITICAL" || impact > 5.0 {
		return "CRITICAL"
	}
	if severity == "WARNING" || impact > 2.0 {
		return "HIGH"
	}
	if severity == "INFO" || impact > 1.0 {
		return "MEDIUM"
	}
	return "LOW"
}

// PlanAnalysis contains the results of plan analysis
type PlanAnalysis struct {
	Plan             *ExecutionPlan    `json:"plan"`
	Issues           []*PlanIssue      `json:"issues"`
	Recommendations  []*Recommendation `json:"recommendations"`
	PerformanceScore float64           `json:"performance_score"`
}

// PlanIssue represents an issue found in the execution plan
type PlanIssue struct {
	Severity    string    `json:"severity"` // CRITICAL, WARNING, INFO
	Type        string    `json:"type"`     // BOTTLENECK, MISSING_INDEX, etc.
	Description string    `json:"description"`
	Node        *PlanNode `json:"node,omitempty"`
	ImpactScore float64   `json:"impact_score"`
}

// Recommendation represents an optimization recommendation
type Recommendation struct {
	Type        string `json:"type"` // INDEX, OPTIMIZATION, QUERY_REWRITE, etc.
	Description string `json:"description"`
	Priority    string `json:"priority"` // CRITICAL, HIGH, MEDIUM, LOW
}
