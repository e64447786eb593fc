// Package validation runs preflight checks before a summarization run.
package validation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Kothajagadish22/Gemini-Finance-AI/core"
)

// ValidationStep represents a single validation step with its status.
type ValidationStep struct {
	Name    string
	Status  StepStatus
	Message string
	Error   error
	Latency time.Duration
}

// StepStatus represents the status of a validation step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepPassed
	StepFailed
	StepWarning
	StepSkipped
)

// String returns the string representation of a step status.
func (s StepStatus) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepRunning:
		return "running"
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepWarning:
		return "warning"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// SuiteResult represents the complete result of validation suite execution.
type SuiteResult struct {
	Steps       []ValidationStep
	TotalSteps  int
	PassedSteps int
	FailedSteps int
	Warnings    int
	Duration    time.Duration
	Success     bool
}

// ValidationSuite checks configuration, credentials, the input PDF and the
// output locations. Nothing here touches the network.
type ValidationSuite struct {
	output       io.Writer
	config       *core.Config
	pdfPath      string
	envPath      string
	minFreeBytes int64
	showProgress bool
	failFast     bool
}

// NewValidationSuite creates a suite for cfg and the PDF at pdfPath.
func NewValidationSuite(cfg *core.Config, pdfPath string) *ValidationSuite {
	return &ValidationSuite{
		output:       os.Stdout,
		config:       cfg,
		pdfPath:      pdfPath,
		envPath:      ".env",
		minFreeBytes: MinFreeBytes,
		showProgress: true,
	}
}

// WithOutput sets the output writer for progress messages.
func (s *ValidationSuite) WithOutput(w io.Writer) *ValidationSuite {
	s.output = w
	return s
}

// WithShowProgress enables or disables progress output.
func (s *ValidationSuite) WithShowProgress(show bool) *ValidationSuite {
	s.showProgress = show
	return s
}

// WithFailFast stops validation on first failure if enabled.
func (s *ValidationSuite) WithFailFast(failFast bool) *ValidationSuite {
	s.failFast = failFast
	return s
}

// WithEnvPath sets a custom path for the .env file.
func (s *ValidationSuite) WithEnvPath(path string) *ValidationSuite {
	s.envPath = path
	return s
}

// WithMinFreeBytes sets the free-space threshold for the output directory.
func (s *ValidationSuite) WithMinFreeBytes(n int64) *ValidationSuite {
	s.minFreeBytes = n
	return s
}

type check struct {
	name string
	soft bool // failure is reported as a warning
	fn   func() (string, error)
	skip func() string
}

// Validate runs every check in order.
func (s *ValidationSuite) Validate() SuiteResult {
	startTime := time.Now()

	if s.showProgress {
		s.printHeader("finsum Preflight Check")
	}

	checks := []check{
		{name: "Environment File", soft: true, fn: s.checkEnvFile},
		{name: "Configuration", fn: s.checkConfig},
		{name: "API Credentials", fn: s.checkCredentials, skip: s.skipWithoutConfig},
		{name: "Input PDF", fn: s.checkInput},
		{name: "Output Directory", fn: s.checkOutputDir, skip: s.skipWithoutConfig},
		{name: "Disk Space", soft: true, fn: s.checkDiskSpace, skip: s.skipWithoutConfig},
		{name: "History Database", fn: s.checkHistory, skip: s.skipHistory},
	}

	steps := make([]ValidationStep, 0, len(checks))
	for _, c := range checks {
		if c.skip != nil {
			if reason := c.skip(); reason != "" {
				step := ValidationStep{Name: c.name, Status: StepSkipped, Message: reason}
				if s.showProgress {
					s.printStep(step)
				}
				steps = append(steps, step)
				continue
			}
		}

		step := s.runStep(c.name, c.soft, c.fn)
		steps = append(steps, step)
		if s.failFast && step.Status == StepFailed {
			break
		}
	}

	result := s.buildResult(steps, startTime)
	if s.showProgress {
		s.printSummary(result)
	}
	return result
}

func (s *ValidationSuite) checkEnvFile() (string, error) {
	if err := CheckFileExists(s.envPath); err != nil {
		return "using process environment only", err
	}
	return fmt.Sprintf("loaded %s", s.envPath), nil
}

func (s *ValidationSuite) checkConfig() (string, error) {
	if s.config == nil {
		return "", core.ErrMissingConfig("configuration")
	}
	if err := s.config.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("provider %s, model %s", s.config.Provider, s.config.Model()), nil
}

func (s *ValidationSuite) checkCredentials() (string, error) {
	key := s.config.APIKey()
	if key == "" {
		return "", core.ErrMissingAuth(s.config.Provider)
	}
	return fmt.Sprintf("%s key present (%d chars)", s.config.Provider, len(key)), nil
}

func (s *ValidationSuite) checkInput() (string, error) {
	if err := CheckPDFFile(s.pdfPath); err != nil {
		return "", err
	}
	return s.pdfPath, nil
}

func (s *ValidationSuite) checkOutputDir() (string, error) {
	if err := CheckDirWritable(s.config.OutputDir); err != nil {
		return "", err
	}
	return s.config.OutputDir, nil
}

func (s *ValidationSuite) checkDiskSpace() (string, error) {
	info, err := GetDiskSpace(s.config.OutputDir)
	if err != nil {
		return "", err
	}
	if err := CheckDiskSpace(s.config.OutputDir, s.minFreeBytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s free", info.FreeFormatted), nil
}

func (s *ValidationSuite) checkHistory() (string, error) {
	if err := CheckDirWritable(filepath.Dir(s.config.HistoryDBPath)); err != nil {
		return "", err
	}
	return s.config.HistoryDBPath, nil
}

func (s *ValidationSuite) skipWithoutConfig() string {
	if s.config == nil {
		return "Skipped due to configuration errors"
	}
	if s.config.Validate() != nil {
		return "Skipped due to configuration errors"
	}
	return ""
}

func (s *ValidationSuite) skipHistory() string {
	if reason := s.skipWithoutConfig(); reason != "" {
		return reason
	}
	if !s.config.HistoryEnabled {
		return "history disabled"
	}
	return ""
}

// runStep executes a validation step with timing and progress output.
func (s *ValidationSuite) runStep(name string, soft bool, fn func() (string, error)) ValidationStep {
	step := ValidationStep{Name: name, Status: StepRunning}

	if s.showProgress {
		s.printStepStart(name)
	}

	startTime := time.Now()
	message, err := fn()
	step.Latency = time.Since(startTime)
	step.Message = message
	step.Error = err

	switch {
	case err == nil:
		step.Status = StepPassed
	case soft:
		step.Status = StepWarning
	default:
		step.Status = StepFailed
	}

	if s.showProgress {
		s.printStep(step)
	}
	return step
}

// buildResult creates a SuiteResult from completed steps.
func (s *ValidationSuite) buildResult(steps []ValidationStep, startTime time.Time) SuiteResult {
	result := SuiteResult{
		Steps:      steps,
		TotalSteps: len(steps),
		Duration:   time.Since(startTime),
		Success:    true,
	}

	for _, step := range steps {
		switch step.Status {
		case StepPassed:
			result.PassedSteps++
		case StepFailed:
			result.FailedSteps++
			result.Success = false
		case StepWarning:
			result.Warnings++
		}
	}
	return result
}

func (s *ValidationSuite) printHeader(title string) {
	fmt.Fprintln(s.output)
	color.New(color.FgCyan, color.Bold).Fprintf(s.output, "━━━ %s ━━━\n", title)
	fmt.Fprintln(s.output)
}

// printStepStart prints the step name before execution.
func (s *ValidationSuite) printStepStart(name string) {
	fmt.Fprintf(s.output, "  ◌ %s...", name)
}

func (s *ValidationSuite) printStep(step ValidationStep) {
	var icon string
	var clr *color.Color

	switch step.Status {
	case StepPassed:
		icon = "✓"
		clr = color.New(color.FgGreen)
	case StepFailed:
		icon = "✗"
		clr = color.New(color.FgRed)
	case StepWarning:
		icon = "!"
		clr = color.New(color.FgYellow)
	case StepSkipped:
		icon = "○"
		clr = color.New(color.FgHiBlack)
	default:
		icon = "?"
		clr = color.New(color.FgWhite)
	}

	fmt.Fprintf(s.output, "\r")
	clr.Fprintf(s.output, "  %s %s", icon, step.Name)
	if step.Message != "" {
		color.New(color.FgHiBlack).Fprintf(s.output, " - %s", step.Message)
	}
	fmt.Fprintln(s.output)

	if step.Status == StepFailed && step.Error != nil {
		color.New(color.FgRed).Fprintf(s.output, "    └─ %s\n", step.Error.Error())
	}
}

func (s *ValidationSuite) printSummary(result SuiteResult) {
	fmt.Fprintln(s.output)

	if result.Success {
		successColor := color.New(color.FgGreen, color.Bold)
		successColor.Fprintf(s.output, "━━━ Preflight Passed ")
		color.New(color.FgHiBlack).Fprintf(s.output, "(%d/%d checks passed in %v)",
			result.PassedSteps, result.TotalSteps, result.Duration.Round(time.Millisecond))
		successColor.Fprintln(s.output, " ━━━")
	} else {
		failColor := color.New(color.FgRed, color.Bold)
		failColor.Fprintf(s.output, "━━━ Preflight Failed ")
		color.New(color.FgHiBlack).Fprintf(s.output, "(%d passed, %d failed)",
			result.PassedSteps, result.FailedSteps)
		failColor.Fprintln(s.output, " ━━━")
	}
	fmt.Fprintln(s.output)
}

// FirstError returns the first error from a failed step, or nil.
func (r SuiteResult) FirstError() error {
	for _, step := range r.Steps {
		if step.Status == StepFailed && step.Error != nil {
			return step.Error
		}
	}
	return nil
}

// Summary returns a one-line description of the result.
func (r SuiteResult) Summary() string {
	var sb strings.Builder
	if r.Success {
		sb.WriteString("Preflight passed: ")
	} else {
		sb.WriteString("Preflight failed: ")
	}
	fmt.Fprintf(&sb, "%d/%d checks passed", r.PassedSteps, r.TotalSteps)
	if r.FailedSteps > 0 {
		fmt.Fprintf(&sb, ", %d failed", r.FailedSteps)
	}
	if r.Warnings > 0 {
		fmt.Fprintf(&sb, ", %d warnings", r.Warnings)
	}
	fmt.Fprintf(&sb, " (took %v)", r.Duration.Round(time.Millisecond))
	return sb.String()
}
