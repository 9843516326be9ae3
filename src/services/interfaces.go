package services

import (
	"context"
	"errors"

	"github.com/username/parsegbx/src/files"
	"github.com/username/parsegbx/src/models"
)

var (
	ErrParsingFailed     = errors.New("report parsing failed")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Export formats.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

// ExportResult describes one finished export.
type ExportResult struct {
	RunID    string
	Format   string
	Path     string
	Rows     int
	Inserted int // sqlite only: rows not already stored
}

// ReportService ties discovery, parsing, processing and export together.
type ReportService interface {
	Discover(dir string) (files.Groups, error)
	Parse(path string) (*models.Table, error)
	Trades(path string) ([]models.BacktestTrade, error)
	Summary(path string) (models.BacktestSummary, error)
	Export(ctx context.Context, path, format, out string) (*ExportResult, error)
}
