package ticketcharts

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Afrawles/ticketcharts/internal/chart"
	"github.com/Afrawles/ticketcharts/internal/config"
	"github.com/Afrawles/ticketcharts/internal/report"
	"github.com/Afrawles/ticketcharts/internal/week"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// WindowWeeks is how many whole weeks before the current one each chart covers.
const WindowWeeks = 8

// Calendar is the week convention shared by every chart: Sunday-start weeks
// that end on Saturday.
var Calendar = week.SundayStart

type Renderer interface {
	Render(table report.Table, opts chart.Options) error
}

type Uploader interface {
	Upload(ctx context.Context, path string) error
}

type Previewer interface {
	Preview(ctx context.Context, paths []string) error
}

// Progress receives a short description of the stage being run.
type Progress interface {
	Describe(description string)
}

type Application struct {
	Config    *config.Config
	Generator *report.Generator
	Renderer  Renderer
	Uploader  Uploader
	Previewer Previewer
	Progress  Progress
	Now       func() time.Time
}

type Option func(*Application)

// WithUploader enables posting charts to chat.
func WithUploader(u Uploader) Option {
	return func(app *Application) {
		app.Uploader = u
	}
}

// WithPreviewer opens the charts locally once they are written.
func WithPreviewer(p Previewer) Option {
	return func(app *Application) {
		app.Previewer = p
	}
}

func WithProgress(p Progress) Option {
	return func(app *Application) {
		app.Progress = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(app *Application) {
		app.Now = now
	}
}

func New(cfg *config.Config, source report.IssueSource, renderer Renderer, opts ...Option) *Application {
	app := &Application{
		Config:    cfg,
		Generator: report.NewGenerator(source, Calendar),
		Renderer:  renderer,
		Now:       time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Window returns the reporting range: from the start of the week
// WindowWeeks before the one containing now, through now.
func Window(now time.Time) (from, to time.Time) {
	return Calendar.WeeksAgo(now, WindowWeeks), now
}

// Result lists the files a run produced.
type Result struct {
	Charts   []string
	Tables   []string
	Workbook string
}

// Run fetches, aggregates and renders every report, then exports, uploads
// and previews as configured. The first error aborts the run.
func (app *Application) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.From(ctx)

	from, to := Window(app.Now())
	defs := report.Definitions(from, app.Config.Jira.WorkTypeField != "")

	logger.Info("generating charts",
		"from", from.Format(week.Layout),
		"to", to.Format(week.Layout),
		"reports", len(defs),
	)

	result := &Result{}
	var sheets []report.Sheet
	outDir := app.Config.Output.Directory

	for _, def := range defs {
		app.describe("Fetching " + def.Name)
		table, err := app.Generator.Generate(ctx, def, from, to)
		if err != nil {
			return nil, err
		}
		logger.Info("report aggregated",
			"report", def.Name,
			"weeks", table.Len(),
			"issues", table.Total(),
		)

		app.describe("Rendering " + def.Name)
		path := filepath.Join(outDir, def.Filename)
		if err := app.Renderer.Render(table, chart.Options{
			Title:   def.Title,
			Path:    path,
			Colors:  def.Colors,
			Stacked: def.Stacked,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to render chart", goerr.V("report", def.Name))
		}
		result.Charts = append(result.Charts, path)
		logger.Info("chart rendered", "report", def.Name, "file", path)

		if app.Config.Output.Tables {
			csvPath, err := report.NewCSVExporter(outDir).Export(def.Name, table)
			if err != nil {
				return nil, err
			}
			result.Tables = append(result.Tables, csvPath)
		}

		sheets = append(sheets, report.Sheet{
			Name:      def.Name,
			Title:     def.Title,
			Table:     table,
			ChartPath: path,
		})
	}

	if name := app.Config.Output.Workbook; name != "" {
		app.describe("Writing workbook")
		path, err := report.NewExcelExporter(outDir).Export(name, sheets)
		if err != nil {
			return nil, err
		}
		result.Workbook = path
		logger.Info("workbook written", "file", path)
	}

	if app.Uploader != nil {
		for _, path := range result.Charts {
			app.describe("Uploading " + filepath.Base(path))
			if err := app.Uploader.Upload(ctx, path); err != nil {
				return nil, err
			}
		}
	} else {
		logger.Info("slack not configured, skipping upload")
	}

	if app.Previewer != nil {
		if err := app.Previewer.Preview(ctx, result.Charts); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (app *Application) describe(stage string) {
	if app.Progress != nil {
		app.Progress.Describe(stage)
	}
}
