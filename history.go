package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/Kothajagadish22/Gemini-Finance-AI/db"
	"github.com/Kothajagadish22/Gemini-Finance-AI/financial"
	"github.com/Kothajagadish22/Gemini-Finance-AI/pdfprocessor"
)

// runStore is the part of db.Repository the CLI uses.
type runStore interface {
	InsertRun(ctx context.Context, record db.RunRecord) (string, error)
	ListRecentRuns(ctx context.Context, limit int) ([]db.RunRecord, error)
}

// historyRecorder stores each finished run in the history database.
type historyRecorder struct {
	store     runStore
	generator string
}

func newHistoryRecorder(store runStore, generator string) *historyRecorder {
	return &historyRecorder{store: store, generator: generator}
}

// Record implements pdfprocessor.HistoryRecorder.
func (h *historyRecorder) Record(ctx context.Context, result *pdfprocessor.ProcessResult) error {
	_, err := h.store.InsertRun(ctx, runRecord(result, h.generator))
	return err
}

// runRecord flattens a result into a history row.
func runRecord(result *pdfprocessor.ProcessResult, generator string) db.RunRecord {
	record := db.RunRecord{
		Document:      result.Stem,
		PDFPath:       result.PDFPath,
		Generator:     generator,
		Status:        runStatus(result),
		RevenueGrowth: result.Fields.RevenueGrowth,
		NetProfit:     result.Fields.NetProfit,
		Debt:          result.Fields.Debt,
		CashFlow:      result.Fields.CashFlow,
		SummaryPath:   result.SummaryPath,
		ChartPath:     result.ChartPath,
		CSVPath:       result.CSVPath,
		DurationMS:    result.ProcessingTime.Milliseconds(),
		CreatedAt:     result.StartedAt,
	}
	if result.Summary != nil {
		record.Attempts = result.Summary.Attempts
	}
	return record
}

func runStatus(result *pdfprocessor.ProcessResult) string {
	switch {
	case result.Halted:
		return db.StatusHalted
	case result.Summary != nil && result.Summary.Degraded:
		return db.StatusDegraded
	default:
		return db.StatusCompleted
	}
}

// printRuns writes one line per run, newest first.
func printRuns(w io.Writer, runs []db.RunRecord) {
	if len(runs) == 0 {
		color.New(color.FgHiBlack).Fprintln(w, "No runs recorded yet.")
		return
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(w, "%-19s  %-24s  %-9s  %10s  %10s  %10s  %10s\n",
		"When", "Document", "Status", "Growth %", "Profit", "Debt", "Cash Flow")

	for _, r := range runs {
		fmt.Fprintf(w, "%-19s  %-24s  ", r.CreatedAt.Local().Format(time.DateTime), truncate(r.Document, 24))
		statusColor(r.Status).Fprintf(w, "%-9s", r.Status)
		fmt.Fprintf(w, "  %10s  %10s  %10s  %10s\n",
			financial.FormatValue(r.RevenueGrowth),
			financial.FormatValue(r.NetProfit),
			financial.FormatValue(r.Debt),
			financial.FormatValue(r.CashFlow))
	}
}

func statusColor(status string) *color.Color {
	switch status {
	case db.StatusCompleted:
		return color.New(color.FgGreen)
	case db.StatusDegraded:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
