package report

import (
	"context"
	"time"

	"github.com/Afrawles/ticketcharts/internal/week"
	"github.com/m-mizutani/goerr/v2"
)

// Jira palette
const (
	ColorDanger  = "#d04437"
	ColorSuccess = "#8cc14c"
)

type Kind int

const (
	KindResolved Kind = iota
	KindSeries
	KindWorkTypeMix
)

// Definition describes one chart: what to fetch, how to aggregate it and
// how it is drawn.
type Definition struct {
	Name     string
	Title    string
	Filename string
	Kind     Kind
	Query    Query
	Stacked  bool
	Colors   []string
}

// Definitions returns the reports produced for a window starting at start.
// The work-type mix is only included when the tracker exposes a work-type field.
func Definitions(start time.Time, withWorkTypes bool) []Definition {
	defs := []Definition{
		{
			Name:     "support",
			Title:    "Weekly Support Tickets (Resolved vs Unresolved)",
			Filename: "support.jpg",
			Kind:     KindResolved,
			Query: Query{
				CreatedFrom: start,
				Fields:      []Field{FieldCreated, FieldStatus},
			},
			Stacked: true,
			Colors:  []string{ColorDanger, ColorSuccess},
		},
		{
			Name:     "p1p2",
			Title:    "Weekly Rec Incidents",
			Filename: "p1p2.jpg",
			Kind:     KindSeries,
			Query: Query{
				CreatedFrom:     start,
				SummaryContains: "REC ISSUE",
				Fields:          []Field{FieldCreated},
			},
			Colors: []string{ColorSuccess},
		},
	}

	if withWorkTypes {
		defs = append(defs, Definition{
			Name:     "mix",
			Title:    "Weekly Work-Type Mix",
			Filename: "mix.jpg",
			Kind:     KindWorkTypeMix,
			Query: Query{
				CreatedFrom: start,
				Fields:      []Field{FieldCreated, FieldWorkType},
			},
			Stacked: true,
		})
	}

	return defs
}

// Aggregate turns fetched issues into the table this definition charts.
func (d Definition) Aggregate(issues []Issue, cal week.Calendar, from, to time.Time) Table {
	switch d.Kind {
	case KindResolved:
		return ResolvedTable(issues, cal, from, to)
	case KindWorkTypeMix:
		return WorkTypeMix(issues, cal, from, to)
	default:
		return WeeklySeries(issues, cal, from, to, "Incidents")
	}
}

type Generator struct {
	Source   IssueSource
	Calendar week.Calendar
}

func NewGenerator(source IssueSource, cal week.Calendar) *Generator {
	return &Generator{Source: source, Calendar: cal}
}

// Generate fetches the issues for def and aggregates them over [from, to].
func (g *Generator) Generate(ctx context.Context, def Definition, from, to time.Time) (Table, error) {
	issues, err := g.Source.Search(ctx, def.Query)
	if err != nil {
		return Table{}, goerr.Wrap(err, "failed to fetch issues",
			goerr.V("report", def.Name),
			goerr.V("source", g.Source.Name()),
		)
	}

	return def.Aggregate(issues, g.Calendar, from, to), nil
}
