package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusDegraded  = "degraded"
	StatusHalted    = "halted"
)

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID        string // UUID, assigned by InsertRun when empty
	Document  string // document stem
	PDFPath   string
	Generator string // provider/model, e.g. "gemini/gemini-1.5-flash"
	Status    string // StatusCompleted, StatusDegraded or StatusHalted
	Attempts  int

	// Figures are nil when absent from the summary.
	RevenueGrowth *float64
	NetProfit     *float64
	Debt          *float64
	CashFlow      *float64

	SummaryPath string
	ChartPath   string
	CSVPath     string

	DurationMS int64
	CreatedAt  time.Time
}

// Repository reads and writes run records.
type Repository struct {
	db  *Database
	now func() time.Time
}

// NewRepository creates a Repository backed by db.
func NewRepository(db *Database) *Repository {
	return &Repository{db: db, now: time.Now}
}

// InsertRun stores record and returns its ID. CreatedAt defaults to now.
func (r *Repository) InsertRun(ctx context.Context, record RunRecord) (string, error) {
	conn, err := r.conn()
	if err != nil {
		return "", err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now()
	}

	query := `
		INSERT INTO runs (
			id, document, pdf_path, generator, status, attempts,
			revenue_growth, net_profit, debt, cash_flow,
			summary_path, chart_path, csv_path, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = conn.ExecContext(ctx, query,
		record.ID,
		record.Document,
		record.PDFPath,
		record.Generator,
		record.Status,
		record.Attempts,
		nullable(record.RevenueGrowth),
		nullable(record.NetProfit),
		nullable(record.Debt),
		nullable(record.CashFlow),
		record.SummaryPath,
		record.ChartPath,
		record.CSVPath,
		record.DurationMS,
		record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return record.ID, nil
}

const selectRuns = `
	SELECT id, document, pdf_path, generator, status, attempts,
		revenue_growth, net_profit, debt, cash_flow,
		summary_path, chart_path, csv_path, duration_ms, created_at
	FROM runs`

// GetRun returns the run with the given ID.
func (r *Repository) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	conn, err := r.conn()
	if err != nil {
		return nil, err
	}

	row := conn.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id)
	record, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// ListRecentRuns returns up to limit runs, newest first.
func (r *Repository) ListRecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	conn, err := r.conn()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := conn.QueryContext(ctx, selectRuns+" ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return records, nil
}

// CountRuns returns the number of stored runs.
func (r *Repository) CountRuns(ctx context.Context) (int64, error) {
	conn, err := r.conn()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// DeleteRunsBefore removes runs created before cutoff and returns how many
// were deleted.
func (r *Repository) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	conn, err := r.conn()
	if err != nil {
		return 0, err
	}

	res, err := conn.ExecContext(ctx, "DELETE FROM runs WHERE created_at < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}
	return res.RowsAffected()
}

func (r *Repository) conn() (*sql.DB, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	conn := r.db.DB()
	if conn == nil {
		return nil, fmt.Errorf("database connection is closed")
	}
	return conn, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*RunRecord, error) {
	var (
		rec                        RunRecord
		growth, profit, debt, cash sql.NullFloat64
		createdAt                  int64
	)
	err := s.Scan(
		&rec.ID, &rec.Document, &rec.PDFPath, &rec.Generator, &rec.Status, &rec.Attempts,
		&growth, &profit, &debt, &cash,
		&rec.SummaryPath, &rec.ChartPath, &rec.CSVPath, &rec.DurationMS, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	rec.RevenueGrowth = fromNull(growth)
	rec.NetProfit = fromNull(profit)
	rec.Debt = fromNull(debt)
	rec.CashFlow = fromNull(cash)
	rec.CreatedAt = time.UnixMilli(createdAt)
	return &rec, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
