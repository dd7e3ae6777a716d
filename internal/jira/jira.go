package jira

import (
	"context"
	"strings"
	"time"

	"github.com/Afrawles/ticketcharts/internal/report"
	gojira "github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/goerr/v2"
)

// JiraSource serves report queries from one Jira project.
type JiraSource struct {
	Client        *Client
	Project       string
	WorkTypeField string
}

func NewJiraSource(client *Client, project, workTypeField string) *JiraSource {
	return &JiraSource{
		Client:        client,
		Project:       project,
		WorkTypeField: workTypeField,
	}
}

var _ report.IssueSource = (*JiraSource)(nil)

func (s *JiraSource) Name() string {
	return "Jira"
}

func (s *JiraSource) HealthCheck(ctx context.Context) error {
	return s.Client.HealthCheck(ctx)
}

func (s *JiraSource) Search(ctx context.Context, q report.Query) ([]report.Issue, error) {
	fields, err := s.fieldNames(q.Fields)
	if err != nil {
		return nil, err
	}

	found, err := s.Client.SearchIssues(ctx, BuildJQL(s.Project, q), fields)
	if err != nil {
		return nil, err
	}

	issues := make([]report.Issue, 0, len(found))
	for _, i := range found {
		issues = append(issues, s.toIssue(i))
	}
	return issues, nil
}

func (s *JiraSource) fieldNames(fields []report.Field) ([]string, error) {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case report.FieldCreated, report.FieldStatus, report.FieldSummary:
			names = append(names, string(f))
		case report.FieldWorkType:
			if s.WorkTypeField == "" {
				return nil, goerr.New("work type field is not configured")
			}
			names = append(names, s.WorkTypeField)
		default:
			return nil, goerr.New("unknown issue field", goerr.V("field", f))
		}
	}
	return names, nil
}

func (s *JiraSource) toIssue(i gojira.Issue) report.Issue {
	issue := report.Issue{Key: i.Key}
	if i.Fields == nil {
		return issue
	}

	issue.Created = time.Time(i.Fields.Created)
	issue.Summary = i.Fields.Summary
	if i.Fields.Status != nil {
		issue.Status = i.Fields.Status.Name
	}
	if s.WorkTypeField != "" {
		issue.WorkType = fieldText(i.Fields.Unknowns[s.WorkTypeField])
	}
	return issue
}

// fieldText flattens a custom field value: plain strings, select options
// ({"value": ...}) and named objects ({"name": ...}).
func fieldText(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		for _, key := range []string{"value", "name"} {
			if s, ok := val[key].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
