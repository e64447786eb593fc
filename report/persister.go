// Package report writes run outputs to disk.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/Kothajagadish22/Gemini-Finance-AI/financial"
)

// Output file suffixes appended to the document stem.
const (
	SummarySuffix = "_financial_summary.txt"
	CSVSuffix     = "_financial_summary.csv"
	ChartSuffix   = "_financial_summary.png"
)

// DocumentStem returns the base name of path without its extension.
//
// Example:
//
//	DocumentStem("reports/acme_2024.pdf") // "acme_2024"
func DocumentStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath joins dir with stem+suffix.
func OutputPath(dir, stem, suffix string) string {
	return filepath.Join(dir, stem+suffix)
}

// Persister writes summary and CSV files into one directory. Existing files
// are overwritten.
type Persister struct {
	dir string
}

// NewPersister returns a Persister for dir. An empty dir means the working
// directory.
func NewPersister(dir string) *Persister {
	if dir == "" {
		dir = "."
	}
	return &Persister{dir: dir}
}

// Dir returns the output directory.
func (p *Persister) Dir() string {
	return p.dir
}

// WriteSummary writes summary verbatim to <dir>/<stem>_financial_summary.txt
// and returns the path. Write errors are returned unchanged in meaning.
func (p *Persister) WriteSummary(stem, summary string) (string, error) {
	path := OutputPath(p.dir, stem, SummarySuffix)
	if err := p.ensureDir(); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteFieldsCSV writes one header row and one data row for fields. Absent
// figures are empty cells.
func (p *Persister) WriteFieldsCSV(stem string, fields financial.Fields) (string, error) {
	path := OutputPath(p.dir, stem, CSVSuffix)
	if err := p.ensureDir(); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeRows(f, []financial.Row{financial.NewRow(stem, fields)}); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// writeRows marshals rows to w and closes it. A failed close is reported,
// since buffered data may not have reached the disk.
func writeRows(w io.WriteCloser, rows []financial.Row) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func (p *Persister) ensureDir() error {
	if p.dir == "." {
		return nil
	}
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
