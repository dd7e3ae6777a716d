package jira

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Afrawles/ticketcharts/internal/report"
	"github.com/Afrawles/ticketcharts/internal/week"
)

var (
	bareKey  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	escapeQL = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

// BuildJQL renders q as a JQL expression scoped to project.
func BuildJQL(project string, q report.Query) string {
	clauses := []string{
		"project = " + projectRef(project),
		fmt.Sprintf("created >= %s", quote(q.CreatedFrom.Format(week.Layout))),
	}
	if q.SummaryContains != "" {
		clauses = append(clauses, "summary ~ "+quote(q.SummaryContains))
	}
	return strings.Join(clauses, " AND ")
}

func projectRef(project string) string {
	if bareKey.MatchString(project) {
		return project
	}
	return quote(project)
}

func quote(s string) string {
	return `"` + escapeQL.Replace(s) + `"`
}
