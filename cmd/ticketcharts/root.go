package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Afrawles/ticketcharts/internal/chart"
	"github.com/Afrawles/ticketcharts/internal/config"
	"github.com/Afrawles/ticketcharts/internal/jira"
	"github.com/Afrawles/ticketcharts/internal/logging"
	"github.com/Afrawles/ticketcharts/internal/preview"
	"github.com/Afrawles/ticketcharts/internal/slack"
	"github.com/Afrawles/ticketcharts/internal/ticketcharts"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"
)

var show bool

var rootCmd = &cobra.Command{
	Use:   "ticketcharts",
	Short: "Render weekly support and incident charts from Jira",
	Long: `ticketcharts pulls the last nine weeks of issues from a Jira project,
buckets them by week and writes bar charts (support.jpg, p1p2.jpg and,
when WORK_TYPE_FIELD_ID is set, mix.jpg). Charts are uploaded to Slack
when SLACK_BOT_TOKEN and SLACK_CHANNEL are set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          generateCharts,
}

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&show, "show", false, "Open the charts in the desktop viewer once written")
}

func generateCharts(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	logger := logging.New(logging.ParseLogLevel(cfg.Log.Level), os.Stderr, format)
	ctx := ctxlog.With(cmd.Context(), logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}
	logger.Debug("configuration loaded", "config", cfg)

	client, err := jira.NewClient(cfg.Jira.URL, cfg.Jira.Email, cfg.Jira.APIToken)
	if err != nil {
		return err
	}
	source := jira.NewJiraSource(client, cfg.Jira.Project, cfg.Jira.WorkTypeField)

	bar := newSpinner("Generating charts")
	defer finishBar(bar)

	var opts []ticketcharts.Option
	if bar != nil {
		opts = append(opts, ticketcharts.WithProgress(bar))
	}
	if cfg.Slack.IsConfigured() {
		opts = append(opts, ticketcharts.WithUploader(slack.New(cfg.Slack.BotToken, cfg.Slack.Channel)))
	}
	if show {
		opts = append(opts, ticketcharts.WithPreviewer(preview.New()))
	}

	app := ticketcharts.New(cfg, source, chart.NewRenderer(), opts...)
	result, err := app.Run(ctx)
	if err != nil {
		logger.Error("chart generation failed", "error", err)
		return goerr.Wrap(err, "chart generation failed")
	}
	finishBar(bar)

	fmt.Printf("\nCharts saved to %s/\n", cfg.Output.Directory)
	for _, path := range result.Charts {
		fmt.Printf("  -> %s\n", path)
	}
	for _, path := range result.Tables {
		fmt.Printf("  -> %s (CSV)\n", path)
	}
	if result.Workbook != "" {
		fmt.Printf("  -> %s (Excel)\n", result.Workbook)
	}

	return nil
}
