package pdfprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kothajagadish22/Gemini-Finance-AI/financial"
	"github.com/Kothajagadish22/Gemini-Finance-AI/llm"
	"github.com/Kothajagadish22/Gemini-Finance-AI/report"
)

type fakeRenderer struct {
	calls []financial.Fields
	dir   string
	err   error
}

func (f *fakeRenderer) Render(fields financial.Fields, stem string) (string, error) {
	f.calls = append(f.calls, fields)
	if f.err != nil {
		return "", f.err
	}
	return filepath.Join(f.dir, stem+report.ChartSuffix), nil
}

type fakePresenter struct {
	paths []string
	err   error
}

func (f *fakePresenter) Present(ctx context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

type fakeHistory struct {
	results []*ProcessResult
	err     error
}

func (f *fakeHistory) Record(ctx context.Context, result *ProcessResult) error {
	f.results = append(f.results, result)
	return f.err
}

type failingWriter struct{}

func (failingWriter) WriteSummary(string, string) (string, error) {
	return "", errors.New("disk full")
}

func (failingWriter) WriteFieldsCSV(string, financial.Fields) (string, error) {
	return "", errors.New("disk full")
}

type recordingReporter struct {
	nopReporter
	warnings []string
	outputs  map[string]string
}

func (r *recordingReporter) Warning(message string) { r.warnings = append(r.warnings, message) }

func (r *recordingReporter) Output(kind, path string) {
	if r.outputs == nil {
		r.outputs = map[string]string{}
	}
	r.outputs[kind] = path
}

func staticGenerator(text string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return text, nil
	})
}

func failingGenerator() llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("service unavailable")
	})
}

func testProcessorConfig() ProcessorConfig {
	config := DefaultProcessorConfig()
	config.SummarizerConfig.Retry.Sleep = (&recordSleep{}).sleep
	return config
}

func TestDefaultProcessorConfig(t *testing.T) {
	config := DefaultProcessorConfig()
	if config.PreviewChars != 500 {
		t.Errorf("PreviewChars = %d, want 500", config.PreviewChars)
	}
	if !config.ShowChart {
		t.Error("ShowChart should default to true")
	}
	if config.ExportCSV {
		t.Error("ExportCSV should default to false")
	}
	if config.SummarizerConfig.MaxPromptChars != 8000 {
		t.Errorf("MaxPromptChars = %d", config.SummarizerConfig.MaxPromptChars)
	}
}

func TestProcessor_Run_NotConfigured(t *testing.T) {
	p := NewProcessor(testProcessorConfig(), nil, report.NewPersister(t.TempDir()), &fakeRenderer{}, nil)
	if _, err := p.Run(context.Background(), testdata("two_pages.pdf")); !errors.Is(err, ErrProcessorNotConfigured) {
		t.Errorf("Run() error = %v, want ErrProcessorNotConfigured", err)
	}
}

func TestProcessor_Run_WithFigures(t *testing.T) {
	dir := t.TempDir()
	renderer := &fakeRenderer{dir: dir}
	presenter := &fakePresenter{}
	history := &fakeHistory{}
	reporter := &recordingReporter{}

	summary := "Revenue growth: 8.2%\nNet Profit: 1,250 million\nDebt: 300 million\nInsights: steady."
	p := NewProcessor(testProcessorConfig(), staticGenerator(summary), report.NewPersister(dir), renderer, nil,
		WithPresenter(presenter), WithHistory(history), WithReporter(reporter))

	result, err := p.Run(context.Background(), testdata("two_pages.pdf"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stem != "two_pages" {
		t.Errorf("Stem = %q", result.Stem)
	}
	if result.Halted || result.Summary.Degraded {
		t.Errorf("Halted = %v Degraded = %v, want full run", result.Halted, result.Summary.Degraded)
	}

	data, err := os.ReadFile(filepath.Join(dir, "two_pages_financial_summary.txt"))
	if err != nil {
		t.Fatalf("summary file: %v", err)
	}
	if string(data) != summary {
		t.Errorf("summary file = %q, want generated text verbatim", data)
	}

	if result.Fields.Present() != 3 || *result.Fields.NetProfit != 1250 || *result.Fields.Debt != 300 {
		t.Errorf("Fields = %s", result.Fields)
	}
	if len(renderer.calls) != 1 {
		t.Fatalf("renderer called %d times, want 1", len(renderer.calls))
	}
	wantChart := filepath.Join(dir, "two_pages_financial_summary.png")
	if result.ChartPath != wantChart || result.ChartSkipped {
		t.Errorf("ChartPath = %q ChartSkipped = %v", result.ChartPath, result.ChartSkipped)
	}
	if len(presenter.paths) != 1 || presenter.paths[0] != wantChart {
		t.Errorf("presented %v, want [%s]", presenter.paths, wantChart)
	}
	if len(history.results) != 1 || history.results[0] != result {
		t.Error("history should record the result once")
	}
	if reporter.outputs["summary"] == "" || reporter.outputs["chart"] == "" {
		t.Errorf("outputs = %v", reporter.outputs)
	}
	if result.CSVPath != "" {
		t.Error("CSV should not be written by default")
	}
}

func TestProcessor_Run_HaltsWithoutText(t *testing.T) {
	dir := t.TempDir()
	renderer := &fakeRenderer{dir: dir}
	history := &fakeHistory{}
	called := false
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		called = true
		return "x", nil
	})

	p := NewProcessor(testProcessorConfig(), gen, report.NewPersister(dir), renderer, nil, WithHistory(history))
	result, err := p.Run(context.Background(), testdata("blank.pdf"))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil for empty extraction", err)
	}
	if !result.Halted {
		t.Error("Halted should be true")
	}
	if called {
		t.Error("generator must not be called without text")
	}
	if result.Summary != nil || len(renderer.calls) != 0 {
		t.Error("no summary or chart expected")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("output dir has %d files, want none", len(entries))
	}
	if len(history.results) != 1 {
		t.Error("halted runs are still recorded")
	}
}

func TestProcessor_Run_MissingFileHalts(t *testing.T) {
	p := NewProcessor(testProcessorConfig(), staticGenerator("x"), report.NewPersister(t.TempDir()), &fakeRenderer{}, nil)
	result, err := p.Run(context.Background(), testdata("missing.pdf"))
	if err != nil || !result.Halted {
		t.Errorf("Run() = (%+v, %v), want halted without error", result, err)
	}
}

func TestProcessor_Run_DegradedSummary(t *testing.T) {
	dir := t.TempDir()
	renderer := &fakeRenderer{dir: dir}
	reporter := &recordingReporter{}

	p := NewProcessor(testProcessorConfig(), failingGenerator(), report.NewPersister(dir), renderer, nil,
		WithReporter(reporter))
	result, err := p.Run(context.Background(), testdata("two_pages.pdf"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.Summary.Degraded || result.Summary.Attempts != 3 {
		t.Errorf("Degraded = %v Attempts = %d", result.Summary.Degraded, result.Summary.Attempts)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "two_pages_financial_summary.txt"))
	if string(data) != FallbackSummary {
		t.Errorf("summary file = %q, want %q", data, FallbackSummary)
	}
	if result.Fields.HasAny() {
		t.Errorf("fallback text has no figures, got %s", result.Fields)
	}
	if !result.ChartSkipped || len(renderer.calls) != 0 {
		t.Error("chart should be skipped")
	}

	var sawSkip bool
	for _, w := range reporter.warnings {
		if strings.Contains(w, "Skipping chart") {
			sawSkip = true
		}
	}
	if !sawSkip {
		t.Errorf("warnings = %v, want a chart skip notice", reporter.warnings)
	}
}

func TestProcessor_Run_WriteFailure(t *testing.T) {
	renderer := &fakeRenderer{}
	p := NewProcessor(testProcessorConfig(), staticGenerator("Debt: 300"), failingWriter{}, renderer, nil)

	_, err := p.Run(context.Background(), testdata("two_pages.pdf"))
	if err == nil || !strings.Contains(err.Error(), "failed to save summary") {
		t.Fatalf("Run() error = %v, want save failure", err)
	}
	if len(renderer.calls) != 0 {
		t.Error("nothing should run after a failed save")
	}
}

func TestProcessor_Run_RenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("permission denied")}
	p := NewProcessor(testProcessorConfig(), staticGenerator("Debt: 300"), report.NewPersister(t.TempDir()), renderer, nil)

	if _, err := p.Run(context.Background(), testdata("two_pages.pdf")); err == nil {
		t.Fatal("Run() should return the chart save error")
	}
}

func TestProcessor_Run_PresentFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	presenter := &fakePresenter{err: errors.New("no display")}
	reporter := &recordingReporter{}

	p := NewProcessor(testProcessorConfig(), staticGenerator("Cash flow: 90"), report.NewPersister(dir), &fakeRenderer{dir: dir}, nil,
		WithPresenter(presenter), WithReporter(reporter))
	result, err := p.Run(context.Background(), testdata("two_pages.pdf"))
	if err != nil {
		t.Fatalf("Run() error = %v, presenting is best effort", err)
	}
	if result.ChartPath == "" {
		t.Error("chart should still be saved")
	}
	if len(reporter.warnings) == 0 {
		t.Error("expected a warning about the display failure")
	}
}

func TestProcessor_Run_ShowChartDisabled(t *testing.T) {
	dir := t.TempDir()
	presenter := &fakePresenter{}
	config := testProcessorConfig()
	config.ShowChart = false

	p := NewProcessor(config, staticGenerator("Debt: 300"), report.NewPersister(dir), &fakeRenderer{dir: dir}, nil,
		WithPresenter(presenter))
	if _, err := p.Run(context.Background(), testdata("two_pages.pdf")); err != nil {
		t.Fatal(err)
	}
	if len(presenter.paths) != 0 {
		t.Error("presenter should not be called when ShowChart is false")
	}
}

func TestProcessor_Run_ExportCSV(t *testing.T) {
	dir := t.TempDir()
	config := testProcessorConfig()
	config.ExportCSV = true

	p := NewProcessor(config, staticGenerator("Net Profit: 1,250"), report.NewPersister(dir), &fakeRenderer{dir: dir}, nil)
	result, err := p.Run(context.Background(), testdata("two_pages.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if result.CSVPath != filepath.Join(dir, "two_pages_financial_summary.csv") {
		t.Errorf("CSVPath = %q", result.CSVPath)
	}
	data, err := os.ReadFile(result.CSVPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "two_pages,,1250,,") {
		t.Errorf("csv = %q", data)
	}
}

func TestProcessor_Run_HistoryFailureIgnored(t *testing.T) {
	dir := t.TempDir()
	history := &fakeHistory{err: errors.New("database locked")}

	p := NewProcessor(testProcessorConfig(), staticGenerator("Debt: 300"), report.NewPersister(dir), &fakeRenderer{dir: dir}, nil,
		WithHistory(history))
	if _, err := p.Run(context.Background(), testdata("two_pages.pdf")); err != nil {
		t.Errorf("Run() error = %v, history failures must not fail the run", err)
	}
	if len(history.results) != 1 {
		t.Error("history should have been attempted")
	}
}

type fixedExtractor struct{ fields financial.Fields }

func (f fixedExtractor) Extract(string) financial.Fields { return f.fields }

func TestProcessor_WithFieldExtractor(t *testing.T) {
	dir := t.TempDir()
	renderer := &fakeRenderer{dir: dir}
	fields := financial.Fields{CashFlow: financial.Float(42)}

	p := NewProcessor(testProcessorConfig(), staticGenerator("no numbers"), report.NewPersister(dir), renderer, nil,
		WithFieldExtractor(fixedExtractor{fields}))
	result, err := p.Run(context.Background(), testdata("two_pages.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Fields.CashFlow == nil || *result.Fields.CashFlow != 42 || len(renderer.calls) != 1 {
		t.Errorf("custom extractor not used: %s", result.Fields)
	}
}
