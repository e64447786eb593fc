package pdfprocessor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/Kothajagadish22/Gemini-Finance-AI/logging"
)

// ErrEmptyPath is returned when no PDF path is given.
var ErrEmptyPath = errors.New("empty PDF path provided")

// ErrNoPDFContent is returned when every page is empty or unreadable.
var ErrNoPDFContent = errors.New("no text content found in PDF")

// PageResult is the text of one page.
type PageResult struct {
	// PageNumber is 1-indexed.
	PageNumber int

	// Text is the page's plain text as decoded, untrimmed.
	Text string

	// Error is set when the page could not be decoded.
	Error error
}

// ExtractionResult is the outcome of Extract.
type ExtractionResult struct {
	// Text is every page's text plus separator, in page order, trimmed.
	Text string

	TotalPages      int
	ExtractedPages  int
	EmptyPages      int
	FailedPages     int
	EstimatedTokens int

	Pages  []PageResult
	Errors []error
}

// ExtractorConfig controls extraction.
type ExtractorConfig struct {
	// PageSeparator follows each page's text. Defaults to "\n".
	PageSeparator string

	// ContinueOnError skips pages that fail to decode instead of stopping.
	ContinueOnError bool

	// MaxPages limits extraction to the first N pages. 0 reads all pages.
	MaxPages int
}

// DefaultExtractorConfig returns a newline separator, skip-on-error, all pages.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		PageSeparator:   "\n",
		ContinueOnError: true,
	}
}

// Extractor reads the text layer of PDF files.
type Extractor struct {
	config ExtractorConfig
	log    *logging.Logger
}

// NewExtractor creates an Extractor. A nil logger discards diagnostics.
func NewExtractor(config ExtractorConfig, log *logging.Logger) *Extractor {
	if config.PageSeparator == "" {
		config.PageSeparator = "\n"
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Extractor{config: config, log: log}
}

// ExtractText returns the document's text, or "" if the document could not
// be opened or read. Failures are logged, never returned, so callers must
// read "" as "extraction failed".
//
// Example:
//
//	text := extractor.ExtractText("financial_report.pdf")
//	if text == "" {
//	    // nothing to summarize
//	}
func (e *Extractor) ExtractText(pdfPath string) string {
	result, err := e.Extract(pdfPath)
	if err != nil {
		e.log.Warn("PDF text extraction failed",
			zap.String("path", pdfPath),
			zap.Error(err))
		return ""
	}

	for _, pageErr := range result.Errors {
		e.log.Warn("skipped unreadable page", zap.String("path", pdfPath), zap.Error(pageErr))
	}
	e.log.Info("extracted PDF text",
		zap.String("path", pdfPath),
		zap.Int("pages", result.TotalPages),
		zap.Int("extracted_pages", result.ExtractedPages),
		zap.Int("chars", len(result.Text)),
		zap.Int("estimated_tokens", result.EstimatedTokens))
	return result.Text
}

// Extract reads every page and reports per-page detail. It returns an error
// for an empty path, a file that is not a readable PDF, a page failure when
// ContinueOnError is false, or a document with no text at all.
func (e *Extractor) Extract(pdfPath string) (result *ExtractionResult, err error) {
	if pdfPath == "" {
		return nil, ErrEmptyPath
	}

	// ledongthuc/pdf panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return e.extractFromReader(r)
}

func (e *Extractor) extractFromReader(r *pdf.Reader) (*ExtractionResult, error) {
	totalPages := r.NumPage()
	pagesToProcess := totalPages
	if e.config.MaxPages > 0 && e.config.MaxPages < totalPages {
		pagesToProcess = e.config.MaxPages
	}

	result := &ExtractionResult{
		TotalPages: totalPages,
		Pages:      make([]PageResult, 0, pagesToProcess),
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= pagesToProcess; pageIndex++ {
		page := e.extractPage(r, pageIndex)
		result.Pages = append(result.Pages, page)

		if page.Error != nil {
			result.FailedPages++
			result.Errors = append(result.Errors, fmt.Errorf("page %d: %w", pageIndex, page.Error))
			if !e.config.ContinueOnError {
				return result, page.Error
			}
			continue
		}

		if strings.TrimSpace(page.Text) == "" {
			result.EmptyPages++
		} else {
			result.ExtractedPages++
		}
		sb.WriteString(page.Text)
		sb.WriteString(e.config.PageSeparator)
	}

	result.Text = strings.TrimSpace(sb.String())
	result.EstimatedTokens = EstimateTokenCount(result.Text)

	if result.Text == "" {
		return result, ErrNoPDFContent
	}
	return result, nil
}

func (e *Extractor) extractPage(r *pdf.Reader, pageIndex int) PageResult {
	result := PageResult{PageNumber: pageIndex}

	p := r.Page(pageIndex)
	if p.V.IsNull() {
		return result
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		result.Error = fmt.Errorf("failed to extract text: %w", err)
		return result
	}
	result.Text = text
	return result
}
