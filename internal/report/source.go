package report

import (
	"context"
	"time"
)

// Issue is a single tracker record as fetched for one run.
type Issue struct {
	Key      string
	Created  time.Time
	Status   string
	Summary  string
	WorkType string
}

// Field names a piece of issue data a query asks the tracker for.
type Field string

const (
	FieldCreated  Field = "created"
	FieldStatus   Field = "status"
	FieldSummary  Field = "summary"
	FieldWorkType Field = "worktype"
)

// Query selects issues created on or after CreatedFrom, optionally narrowed
// to those whose summary matches SummaryContains.
type Query struct {
	CreatedFrom     time.Time
	SummaryContains string
	Fields          []Field
}

type IssueSource interface {
	Name() string
	Search(ctx context.Context, q Query) ([]Issue, error)
}
