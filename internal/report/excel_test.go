package report_test

import (
	"path/filepath"
	"testing"

	"github.com/Afrawles/ticketcharts/internal/report"
	"github.com/Afrawles/ticketcharts/internal/week"
	"github.com/m-mizutani/gt"
	"github.com/xuri/excelize/v2"
)

func TestExcelExporter(t *testing.T) {
	dir := t.TempDir()
	issues := []report.Issue{
		issue("2024-01-02", "Done"),
		issue("2024-01-02", "Open"),
		issue("2024-01-10", "Done"),
	}

	sheets := []report.Sheet{
		{
			Name:  "support",
			Title: "Weekly Support Tickets",
			Table: report.ResolvedTable(issues, week.MondayStart, day("2024-01-01"), day("2024-01-10")),
		},
		{
			Name:  "p1p2",
			Title: "Weekly Rec Incidents",
			Table: report.WeeklySeries(issues, week.MondayStart, day("2024-01-01"), day("2024-01-10"), "Incidents"),
		},
	}

	path, err := report.NewExcelExporter(dir).Export("weekly.xlsx", sheets)
	gt.NoError(t, err)
	gt.Equal(t, path, filepath.Join(dir, "weekly.xlsx"))

	f, err := excelize.OpenFile(path)
	gt.NoError(t, err)
	defer f.Close()

	gt.Equal(t, f.GetSheetList(), []string{"support", "p1p2"})

	rows, err := f.GetRows("support")
	gt.NoError(t, err)
	gt.Equal(t, rows[0], []string{"Weekly Support Tickets"})
	gt.Equal(t, rows[2], []string{"Week", "Unresolved", "Resolved", "Total"})
	gt.Equal(t, rows[3], []string{"2024-01-01", "1", "1", "2"})
	gt.Equal(t, rows[4], []string{"2024-01-08", "0", "1", "1"})
	gt.Equal(t, rows[5], []string{"Total", "1", "2", "3"})

	series, err := f.GetRows("p1p2")
	gt.NoError(t, err)
	gt.Equal(t, series[3], []string{"2024-01-01", "2", "2"})
}

func TestExcelExporterRequiresSheets(t *testing.T) {
	_, err := report.NewExcelExporter(t.TempDir()).Export("empty.xlsx", nil)
	gt.Error(t, err)
}
