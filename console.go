package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Kothajagadish22/Gemini-Finance-AI/core"
	"github.com/Kothajagadish22/Gemini-Finance-AI/financial"
	"github.com/Kothajagadish22/Gemini-Finance-AI/pdfprocessor"
)

// console prints run progress for a person at a terminal.
type console struct {
	out io.Writer

	heading *color.Color
	stage   *color.Color
	muted   *color.Color
	value   *color.Color
	warn    *color.Color
	fail    *color.Color
}

func newConsole(out io.Writer) *console {
	return &console{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		stage:   color.New(color.FgBlue),
		muted:   color.New(color.FgHiBlack),
		value:   color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
	}
}

func (c *console) Stage(stage, message string) {
	c.stage.Fprintf(c.out, "▶ %s\n", message)
}

func (c *console) Preview(text string) {
	c.heading.Fprintln(c.out, "\nExtracted text (preview):")
	c.muted.Fprintln(c.out, text)
	fmt.Fprintln(c.out)
}

func (c *console) Summary(text string) {
	c.heading.Fprintln(c.out, "\nAI-generated summary:")
	fmt.Fprintln(c.out, text)
	fmt.Fprintln(c.out)
}

func (c *console) Fields(fields financial.Fields) {
	c.heading.Fprintln(c.out, "Extracted figures:")
	for _, e := range fields.Entries() {
		fmt.Fprintf(c.out, "  %-22s ", e.Label+":")
		if e.Present() {
			c.value.Fprintln(c.out, financial.FormatValue(e.Value))
		} else {
			c.muted.Fprintln(c.out, financial.NotAvailable)
		}
	}
	fmt.Fprintln(c.out)
}

func (c *console) Output(kind, path string) {
	fmt.Fprintf(c.out, "✓ %s saved as ", outputLabel(kind))
	c.value.Fprintln(c.out, path)
}

func (c *console) Warning(message string) {
	c.warn.Fprintf(c.out, "! %s\n", message)
}

// Done prints the closing line of a run.
func (c *console) Done(result *pdfprocessor.ProcessResult) {
	if result == nil {
		return
	}
	elapsed := result.ProcessingTime.Round(time.Millisecond)
	if result.Halted {
		c.warn.Fprintf(c.out, "━━━ Stopped: no text in %s (%v) ━━━\n", result.PDFPath, elapsed)
		return
	}
	c.heading.Fprintf(c.out, "━━━ Done: %s (%v) ━━━\n", result.Stem, elapsed)
}

// Error prints err. Configuration errors get their fix on a second line.
func (c *console) Error(err error) {
	if cfgErr, ok := core.IsConfigError(err); ok {
		c.fail.Fprintf(c.out, "✗ %s\n", cfgErr.Message)
		if cfgErr.Action != "" {
			c.muted.Fprintf(c.out, "  └─ %s\n", cfgErr.Action)
		}
		return
	}
	c.fail.Fprintf(c.out, "✗ %s\n", err)
}

func outputLabel(kind string) string {
	switch kind {
	case "summary":
		return "Summary"
	case "chart":
		return "Chart"
	case "csv":
		return "Figures CSV"
	default:
		if kind == "" {
			return "Output"
		}
		return strings.ToUpper(kind[:1]) + kind[1:]
	}
}
