package chart_test

import (
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Afrawles/ticketcharts/internal/chart"
	"github.com/Afrawles/ticketcharts/internal/report"
	"github.com/Afrawles/ticketcharts/internal/week"
	"github.com/m-mizutani/gt"
)

func supportTable() report.Table {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issues := []report.Issue{
		{Created: from.Add(26 * time.Hour), Status: "Done"},
		{Created: from.Add(30 * time.Hour), Status: "Open"},
		{Created: from.AddDate(0, 0, 9), Status: "Done"},
	}
	return report.ResolvedTable(issues, week.MondayStart, from, from.AddDate(0, 0, 20))
}

func TestRenderWritesJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.jpg")

	err := chart.NewRenderer().Render(supportTable(), chart.Options{
		Title:   "Weekly Support Tickets (Resolved vs Unresolved)",
		Path:    path,
		Colors:  []string{report.ColorDanger, report.ColorSuccess},
		Stacked: true,
	})
	gt.NoError(t, err)

	f, err := os.Open(path)
	gt.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	gt.NoError(t, err)
	gt.Equal(t, img.Bounds().Dx(), 9*chart.DPI)
	gt.Equal(t, img.Bounds().Dy(), 4*chart.DPI)
}

func TestRenderOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p1p2.jpg")
	gt.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	table := report.WeeklySeries(nil, week.MondayStart,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		"Incidents")

	gt.NoError(t, chart.NewRenderer().Render(table, chart.Options{
		Title:  "Weekly Rec Incidents",
		Path:   path,
		Colors: []string{report.ColorSuccess},
	}))

	f, err := os.Open(path)
	gt.NoError(t, err)
	defer f.Close()
	_, err = jpeg.Decode(f)
	gt.NoError(t, err)
}

func TestPlotLabelsAndLegend(t *testing.T) {
	p, err := chart.Plot(supportTable(), chart.Options{
		Title:   "support",
		Stacked: true,
		Colors:  []string{report.ColorDanger, report.ColorSuccess},
	})
	gt.NoError(t, err)

	gt.Equal(t, p.Title.Text, "support")
	gt.Equal(t, p.X.Label.Text, "")
	gt.Equal(t, p.Y.Label.Text, "Tickets")

	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	var labels []string
	for _, tk := range ticks {
		if tk.Label != "" {
			labels = append(labels, tk.Label)
		}
	}
	gt.Equal(t, labels, []string{"2024-01-01", "2024-01-08", "2024-01-15"})
	gt.True(t, p.X.Tick.Label.Rotation > 0)
}

func TestPlotErrors(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		_, err := chart.Plot(report.Table{Columns: []string{"Incidents"}}, chart.Options{Title: "empty"})
		gt.Error(t, err)
	})

	t.Run("no columns", func(t *testing.T) {
		_, err := chart.Plot(report.Table{}, chart.Options{Title: "empty"})
		gt.Error(t, err)
	})

	t.Run("bad color", func(t *testing.T) {
		_, err := chart.Plot(supportTable(), chart.Options{Colors: []string{"not-a-color"}})
		gt.Error(t, err)
	})
}

func TestPlotWithoutColorsUsesPalette(t *testing.T) {
	table := report.Table{
		Weeks:   []time.Time{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Columns: []string{"Bug", "Feature", "Chore"},
		Counts:  [][]int{{1, 2, 3}},
	}

	_, err := chart.Plot(table, chart.Options{Title: "mix", Stacked: true})
	gt.NoError(t, err)

	_, err = chart.Plot(table, chart.Options{Title: "mix side by side"})
	gt.NoError(t, err)
}
