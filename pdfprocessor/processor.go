package pdfprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kothajagadish22/Gemini-Finance-AI/financial"
	"github.com/Kothajagadish22/Gemini-Finance-AI/llm"
	"github.com/Kothajagadish22/Gemini-Finance-AI/logging"
	"github.com/Kothajagadish22/Gemini-Finance-AI/report"
)

// ErrProcessorNotConfigured is returned by Run when a required step is missing.
var ErrProcessorNotConfigured = errors.New("processor not properly configured")

// Stage names passed to Reporter.Stage and used in logs.
const (
	StageExtract   = "extract"
	StageSummarize = "summarize"
	StagePersist   = "persist"
	StageChart     = "chart"
)

// SummaryWriter persists the summary and, optionally, the figures as CSV.
type SummaryWriter interface {
	WriteSummary(stem, summary string) (string, error)
	WriteFieldsCSV(stem string, fields financial.Fields) (string, error)
}

// ChartRenderer draws the figures to an image file and returns its path.
type ChartRenderer interface {
	Render(fields financial.Fields, stem string) (string, error)
}

// ChartPresenter shows a saved chart to the user.
type ChartPresenter interface {
	Present(ctx context.Context, path string) error
}

// HistoryRecorder stores a finished run.
type HistoryRecorder interface {
	Record(ctx context.Context, result *ProcessResult) error
}

// Reporter receives human-readable progress. It is not a machine contract.
type Reporter interface {
	Stage(stage, message string)
	Preview(text string)
	Summary(text string)
	Fields(fields financial.Fields)
	Output(kind, path string)
	Warning(message string)
}

// ProcessorConfig controls the optional steps.
type ProcessorConfig struct {
	ExtractorConfig  ExtractorConfig
	SummarizerConfig SummarizerConfig

	// PreviewChars is the length of the extracted-text preview.
	PreviewChars int

	// ShowChart presents the chart after it is saved.
	ShowChart bool

	// ExportCSV writes the figures as CSV next to the summary.
	ExportCSV bool
}

// DefaultProcessorConfig returns the defaults: 500-char preview, chart shown,
// no CSV.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ExtractorConfig:  DefaultExtractorConfig(),
		SummarizerConfig: DefaultSummarizerConfig(),
		PreviewChars:     500,
		ShowChart:        true,
	}
}

// ProcessingStages holds the time spent in each step.
type ProcessingStages struct {
	ExtractionTime  time.Duration
	SummarizingTime time.Duration
	PersistingTime  time.Duration
	ChartingTime    time.Duration
}

// ProcessResult is everything a run produced.
type ProcessResult struct {
	PDFPath string
	Stem    string

	// ExtractedChars is the length of the extracted text. 0 means the run halted.
	ExtractedChars int

	// Halted is true when no text could be extracted. Nothing was written.
	Halted bool

	// Summary is nil when the run halted.
	Summary *SummaryResult

	Fields financial.Fields

	SummaryPath string
	ChartPath   string
	CSVPath     string

	// ChartSkipped is true when no figure was found.
	ChartSkipped bool

	StartedAt      time.Time
	ProcessingTime time.Duration
	Stages         ProcessingStages
}

// Processor runs extract, summarize, persist, extract figures, chart,
// export and record, in that order.
type Processor struct {
	config     ProcessorConfig
	extractor  *Extractor
	summarizer *Summarizer
	fields     financial.FieldExtractor
	writer     SummaryWriter
	renderer   ChartRenderer
	presenter  ChartPresenter
	history    HistoryRecorder
	reporter   Reporter
	log        *logging.Logger
}

// Option customises a Processor.
type Option func(*Processor)

// WithFieldExtractor replaces the default pattern extractor.
func WithFieldExtractor(fe financial.FieldExtractor) Option {
	return func(p *Processor) { p.fields = fe }
}

// WithPresenter sets how charts are shown.
func WithPresenter(pr ChartPresenter) Option {
	return func(p *Processor) { p.presenter = pr }
}

// WithHistory records each run.
func WithHistory(h HistoryRecorder) Option {
	return func(p *Processor) { p.history = h }
}

// WithReporter sets the progress sink.
func WithReporter(r Reporter) Option {
	return func(p *Processor) { p.reporter = r }
}

// NewProcessor wires the steps together. The generator, writer and renderer
// are required; everything else has a default.
//
// Example:
//
//	proc := NewProcessor(DefaultProcessorConfig(), gen, report.NewPersister(dir), chart.NewRenderer(dir), logger,
//	    WithPresenter(chart.SystemViewer{}), WithReporter(console))
//	result, err := proc.Run(ctx, "financial_report.pdf")
func NewProcessor(config ProcessorConfig, generator llm.Generator, writer SummaryWriter, renderer ChartRenderer, log *logging.Logger, opts ...Option) *Processor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if config.PreviewChars <= 0 {
		config.PreviewChars = 500
	}

	p := &Processor{
		config:    config,
		extractor: NewExtractor(config.ExtractorConfig, log.Named("extractor")),
		fields:    financial.NewPatternExtractor(),
		writer:    writer,
		renderer:  renderer,
		reporter:  nopReporter{},
		log:       log,
	}
	if generator != nil {
		p.summarizer = NewSummarizer(config.SummarizerConfig, generator, log.Named("summarizer"))
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes one PDF.
//
// Extraction and generation failures degrade the run instead of failing it:
// no text halts early with Halted set, and a failed generation continues
// with FallbackSummary. Failures writing the summary, chart or CSV are
// returned. Presenting the chart and recording history only log warnings.
func (p *Processor) Run(ctx context.Context, pdfPath string) (*ProcessResult, error) {
	if p.summarizer == nil || p.writer == nil || p.renderer == nil {
		return nil, ErrProcessorNotConfigured
	}

	start := time.Now()
	result := &ProcessResult{
		PDFPath:   pdfPath,
		Stem:      report.DocumentStem(pdfPath),
		StartedAt: start,
	}
	log := p.log.With(zap.String("document", result.Stem))

	// Extract
	p.reporter.Stage(StageExtract, fmt.Sprintf("Extracting text from %s", pdfPath))
	stageStart := time.Now()
	text := p.extractor.ExtractText(pdfPath)
	result.Stages.ExtractionTime = time.Since(stageStart)
	result.ExtractedChars = len(text)
	log.Info("extraction finished", logging.StageFields(StageExtract, result.Stages.ExtractionTime)...)

	if text == "" {
		result.Halted = true
		p.reporter.Warning("No text extracted from PDF. Nothing to summarize.")
		log.Warn("no text extracted, stopping")
		return p.finish(ctx, result, start), nil
	}
	p.reporter.Preview(Preview(text, p.config.PreviewChars))

	// Summarize
	p.reporter.Stage(StageSummarize, fmt.Sprintf("Generating summary with %s", p.summarizer.generator.Name()))
	stageStart = time.Now()
	result.Summary = p.summarizer.Summarize(ctx, text)
	result.Stages.SummarizingTime = time.Since(stageStart)
	if result.Summary.Degraded {
		p.reporter.Warning(fmt.Sprintf("Summary generation failed after %d attempts.", result.Summary.Attempts))
	}
	p.reporter.Summary(result.Summary.Content)

	// Persist
	stageStart = time.Now()
	summaryPath, err := p.writer.WriteSummary(result.Stem, result.Summary.Content)
	if err != nil {
		return result, fmt.Errorf("failed to save summary: %w", err)
	}
	result.SummaryPath = summaryPath
	result.Stages.PersistingTime = time.Since(stageStart)
	p.reporter.Output("summary", summaryPath)
	log.Info("summary saved", append(logging.StageFields(StagePersist, result.Stages.PersistingTime), zap.String("path", summaryPath))...)

	// Figures
	result.Fields = p.fields.Extract(result.Summary.Content)
	p.reporter.Fields(result.Fields)
	log.Info("figures extracted",
		zap.Int("present", result.Fields.Present()),
		zap.Stringer("fields", result.Fields))

	// Chart
	if result.Fields.HasAny() {
		p.reporter.Stage(StageChart, "Rendering chart")
		stageStart = time.Now()
		chartPath, err := p.renderer.Render(result.Fields, result.Stem)
		if err != nil {
			return result, fmt.Errorf("failed to save chart: %w", err)
		}
		result.ChartPath = chartPath
		result.Stages.ChartingTime = time.Since(stageStart)
		p.reporter.Output("chart", chartPath)
		log.Info("chart saved", append(logging.StageFields(StageChart, result.Stages.ChartingTime), zap.String("path", chartPath))...)

		if p.config.ShowChart && p.presenter != nil {
			if err := p.presenter.Present(ctx, chartPath); err != nil {
				p.reporter.Warning("Could not display chart: " + err.Error())
				log.Warn("chart presentation failed", zap.String("path", chartPath), zap.Error(err))
			}
		}
	} else {
		result.ChartSkipped = true
		p.reporter.Warning("No numeric data found in the summary. Skipping chart.")
		log.Warn("no figures found, chart skipped")
	}

	// Export
	if p.config.ExportCSV {
		csvPath, err := p.writer.WriteFieldsCSV(result.Stem, result.Fields)
		if err != nil {
			return result, fmt.Errorf("failed to export figures: %w", err)
		}
		result.CSVPath = csvPath
		p.reporter.Output("csv", csvPath)
	}

	return p.finish(ctx, result, start), nil
}

// finish stamps the total time and records history. History failures are
// logged only.
func (p *Processor) finish(ctx context.Context, result *ProcessResult, start time.Time) *ProcessResult {
	result.ProcessingTime = time.Since(start)
	if p.history != nil {
		if err := p.history.Record(ctx, result); err != nil {
			p.log.Warn("failed to record run history", zap.Error(err))
		}
	}
	return result
}

type nopReporter struct{}

func (nopReporter) Stage(string, string) {}
func (nopReporter) Preview(string) {}
func (nopReporter) Summary(string) {}
func (nopReporter) Fields(financial.Fields) {}
func (nopReporter) Output(string, string) {}
func (nopReporter) Warning(string) {}
