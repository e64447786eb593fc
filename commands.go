package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Kothajagadish22/Gemini-Finance-AI/chart"
	"github.com/Kothajagadish22/Gemini-Finance-AI/core"
	"github.com/Kothajagadish22/Gemini-Finance-AI/core/validation"
	"github.com/Kothajagadish22/Gemini-Finance-AI/db"
	"github.com/Kothajagadish22/Gemini-Finance-AI/llm"
	"github.com/Kothajagadish22/Gemini-Finance-AI/logging"
	"github.com/Kothajagadish22/Gemini-Finance-AI/pdfprocessor"
	"github.com/Kothajagadish22/Gemini-Finance-AI/report"
)

var errPreflightFailed = errors.New("preflight checks failed")

// app holds the process-wide dependencies of the commands. Tests replace
// the generator and the log console.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// logConsole receives console log output. Nil means stderr.
	logConsole zapcore.WriteSyncer

	newGenerator func(ctx context.Context, cfg *core.Config) (llm.Generator, error)
	presenter    chart.Presenter

	// dotenvErr is set by loadConfig when no .env file was found.
	dotenvErr error
}

func newApp() *app {
	return &app{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		newGenerator: llm.NewGenerator,
		presenter:    chart.SystemViewer{},
	}
}

// flags are the command-line overrides shared by all commands.
type flags struct {
	configPath string
	outputDir  string
	provider   string
	noShow     bool
	csv        bool
	noHistory  bool
	limit      int
}

// execute runs the command line in args and returns the process exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return core.ExitCodeSuccess
	case errors.Is(err, context.Canceled):
		newConsole(a.stderr).Warning("Interrupted.")
		return core.ExitCodeSIGINT
	default:
		newConsole(a.stderr).Error(err)
		return core.ExitCodeError
	}
}

func (a *app) rootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "finsum [pdf]",
		Short: "Summarize a financial report PDF and chart its key figures",
		Long: `finsum extracts the text of a financial report PDF, asks a language model
for a summary, and pulls revenue growth, net profit, debt and cash flow out of
it. The summary is saved as <name>_financial_summary.txt and, when any figure
is found, a bar chart as <name>_financial_summary.png.`,
		Version:       core.GetVersionInfo(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, f, args)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config file (default $FINSUM_CONFIG)")
	pf.StringVar(&f.outputDir, "output-dir", "", "directory for the summary, chart and CSV (default $OUTPUT_DIR or .)")
	pf.StringVar(&f.provider, "provider", "", "text generation provider: gemini or openai (default $LLM_PROVIDER or gemini)")
	pf.BoolVar(&f.noHistory, "no-history", false, "do not use the run history database")

	analyze := &cobra.Command{
		Use:   "analyze [pdf]",
		Short: "Summarize a report (the default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, f, args)
		},
	}
	for _, cmd := range []*cobra.Command{root, analyze} {
		cmd.Flags().BoolVar(&f.noShow, "no-show", false, "save the chart without opening it")
		cmd.Flags().BoolVar(&f.csv, "csv", false, "also export the figures as CSV")
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd, f)
		},
	}
	history.Flags().IntVar(&f.limit, "limit", 20, "number of runs to show")

	check := &cobra.Command{
		Use:   "check [pdf]",
		Short: "Check configuration, credentials, input and output locations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, f, args)
		},
	}

	root.AddCommand(analyze, history, check)
	return root
}

// loadConfig reads .env, the config file and the environment, then applies
// the flags. The returned config is non-nil unless the file could not be
// read, even when validation fails.
func (a *app) loadConfig(cmd *cobra.Command, f *flags) (*core.Config, error) {
	a.dotenvErr = core.LoadDotEnv()

	cfg, err := core.ReadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if fl.Changed("provider") {
		cfg.Provider = strings.ToLower(f.provider)
	}
	if f.noShow {
		cfg.ShowChart = false
	}
	if f.csv {
		cfg.ExportCSV = true
	}
	if f.noHistory {
		cfg.HistoryEnabled = false
	}
	return cfg, cfg.Validate()
}

func (a *app) newLogger(cfg *core.Config) (*logging.Logger, error) {
	return logging.NewLogger(logging.Options{
		Level:       logging.LevelFor(cfg.LogLevel, cfg.DevMode),
		Development: cfg.DevMode,
		FilePath:    cfg.LogFile,
		Console:     a.logConsole,
	})
}

func (a *app) runAnalyze(cmd *cobra.Command, f *flags, args []string) error {
	ctx := cmd.Context()

	cfg, err := a.loadConfig(cmd, f)
	if err != nil {
		return err
	}
	pdfPath := cfg.PDFPath
	if len(args) > 0 {
		pdfPath = args[0]
	}

	logger, err := a.newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if a.dotenvErr != nil {
		logger.Warn("no .env file, using process environment", zap.Error(a.dotenvErr))
	}

	logger.Info("configuration loaded",
		zap.String("version", core.Version),
		zap.String("pdf", pdfPath),
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model()),
		zap.String("output_dir", cfg.OutputDir),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("retry_delay", cfg.RetryDelay),
		zap.Duration("ai_timeout", cfg.AITimeout),
		zap.Bool("history", cfg.HistoryEnabled),
	)

	gen, err := a.newGenerator(ctx, cfg)
	if err != nil {
		logger.Error("failed to create generator", zap.Error(err))
		return err
	}
	defer gen.Close()

	out := newConsole(a.stdout)
	opts := []pdfprocessor.Option{pdfprocessor.WithReporter(out)}
	if cfg.ShowChart {
		opts = append(opts, pdfprocessor.WithPresenter(a.presenter))
	}
	if cfg.HistoryEnabled {
		database, err := db.Open(cfg.HistoryDBPath)
		if err != nil {
			logger.Warn("run history unavailable", zap.String("path", cfg.HistoryDBPath), zap.Error(err))
		} else {
			defer database.Close()
			opts = append(opts, pdfprocessor.WithHistory(newHistoryRecorder(db.NewRepository(database), gen.Name())))
		}
	}

	proc := pdfprocessor.NewProcessor(
		processorConfig(cfg),
		gen,
		report.NewPersister(cfg.OutputDir),
		chart.NewRenderer(cfg.OutputDir),
		logger,
		opts...,
	)

	result, err := proc.Run(ctx, pdfPath)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	out.Done(result)

	logger.Info("run finished",
		zap.Bool("halted", result.Halted),
		zap.Int("figures", result.Fields.Present()),
		zap.Duration("elapsed", result.ProcessingTime))
	return ctx.Err()
}

// processorConfig maps the loaded settings onto the pipeline options.
func processorConfig(cfg *core.Config) pdfprocessor.ProcessorConfig {
	pc := pdfprocessor.DefaultProcessorConfig()
	pc.SummarizerConfig.MaxPromptChars = cfg.MaxPromptChars
	pc.SummarizerConfig.AttemptTimeout = cfg.AITimeout
	pc.SummarizerConfig.Retry = llm.PolicyFromConfig(cfg)
	pc.ShowChart = cfg.ShowChart
	pc.ExportCSV = cfg.ExportCSV
	return pc
}

func (a *app) runHistory(cmd *cobra.Command, f *flags) error {
	cfg, err := a.loadConfig(cmd, f)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.HistoryDBPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer database.Close()

	runs, err := db.NewRepository(database).ListRecentRuns(cmd.Context(), f.limit)
	if err != nil {
		return err
	}
	printRuns(a.stdout, runs)
	return nil
}

func (a *app) runCheck(cmd *cobra.Command, f *flags, args []string) error {
	cfg, err := a.loadConfig(cmd, f)
	if cfg == nil && err != nil {
		return err
	}

	pdfPath := cfg.PDFPath
	if len(args) > 0 {
		pdfPath = args[0]
	}

	result := validation.NewValidationSuite(cfg, pdfPath).
		WithOutput(a.stdout).
		Validate()
	if !result.Success {
		return fmt.Errorf("%w: %s", errPreflightFailed, result.FirstError())
	}
	return nil
}
