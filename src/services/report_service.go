package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/parsegbx/src/config"
	"github.com/username/parsegbx/src/database"
	"github.com/username/parsegbx/src/exporters"
	"github.com/username/parsegbx/src/files"
	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/models"
	"github.com/username/parsegbx/src/parsers"
	"github.com/username/parsegbx/src/processors"
	"github.com/username/parsegbx/src/security/validation"
)

const (
	// keyed by path, size and modification time so edited files are re-read
	ckParsedTable = "res_parsed_table_%s_%d_%d"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type reportServiceImpl struct {
	cfg              *config.AppConfig
	parser           parsers.Parser
	classifier       *files.Classifier
	tradeProcessor   processors.TradeMapper
	summaryProcessor processors.Summarizer
	reportCache      *cache.Cache
}

// NewReportCache creates the cache used for parsed tables.
func NewReportCache(cfg *config.AppConfig) *cache.Cache {
	ttl, cleanup := DefaultCacheExpiration, CacheCleanupInterval
	if cfg != nil {
		ttl, cleanup = cfg.CacheTTL, cfg.CacheCleanupInterval
	}
	return cache.New(ttl, cleanup)
}

func NewReportService(
	cfg *config.AppConfig,
	parser parsers.Parser,
	classifier *files.Classifier,
	reportCache *cache.Cache,
) ReportService {
	return &reportServiceImpl{
		cfg:              cfg,
		parser:           parser,
		classifier:       classifier,
		tradeProcessor:   processors.NewTradeProcessor(),
		summaryProcessor: processors.NewSummaryProcessor(),
		reportCache:      reportCache,
	}
}

func (s *reportServiceImpl) Discover(dir string) (files.Groups, error) {
	if dir == "" {
		dir = s.cfg.PayloadDir
	}
	return s.classifier.Classify(dir)
}

// Parse returns the typed table of the report at path. Results are cached;
// callers always receive their own copy.
func (s *reportServiceImpl) Parse(path string) (*models.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}
	key := fmt.Sprintf(ckParsedTable, path, info.Size(), info.ModTime().UnixNano())

	if cached, found := s.reportCache.Get(key); found {
		logger.L.Debug("Cache HIT for parsed table", "path", path)
		return cached.(*models.Table).Copy(), nil
	}
	logger.L.Debug("Cache MISS for parsed table", "path", path)

	s.checkContent(path)

	startTime := time.Now()
	table, err := s.parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}
	s.reportCache.Set(key, table.Copy(), cache.DefaultExpiration)
	logger.L.Info("Parsed report", "path", path, "rows", table.Len(), "duration", time.Since(startTime))
	return table, nil
}

// checkContent warns about files that do not look like HTML reports; the
// parser still gets to try them.
func (s *reportServiceImpl) checkContent(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := validation.ValidateReportContent(f); err != nil {
		logger.L.Warn("Report content check failed", "path", path, "error", err)
	}
}

func (s *reportServiceImpl) Trades(path string) ([]models.BacktestTrade, error) {
	table, err := s.Parse(path)
	if err != nil {
		return nil, err
	}
	return s.tradeProcessor.Process(table, Label(path))
}

func (s *reportServiceImpl) Summary(path string) (models.BacktestSummary, error) {
	trades, err := s.Trades(path)
	if err != nil {
		return models.BacktestSummary{}, err
	}
	return s.summaryProcessor.Summarize(Label(path), trades), nil
}

// Export writes the report at path in format to out. An empty out selects
// <ExportDir>/<label>.<format>, or DatabasePath for sqlite.
func (s *reportServiceImpl) Export(ctx context.Context, path, format, out string) (*ExportResult, error) {
	format = strings.ToLower(format)
	label := Label(path)
	result := &ExportResult{RunID: uuid.NewString(), Format: format, Path: out}
	log := logger.WithRun(result.RunID)

	if result.Path == "" {
		switch format {
		case FormatSQLite:
			result.Path = s.cfg.DatabasePath
		default:
			result.Path = filepath.Join(s.cfg.ExportDir, label+"."+format)
		}
	}

	switch format {
	case FormatCSV, FormatXLSX:
		table, err := s.Parse(path)
		if err != nil {
			return nil, err
		}
		result.Rows = table.Len()
		if format == FormatCSV {
			err = writeCSVFile(result.Path, table)
		} else {
			err = exporters.WriteXLSX(result.Path, table)
		}
		if err != nil {
			return nil, fmt.Errorf("error exporting %s: %w", label, err)
		}
	case FormatSQLite:
		trades, err := s.Trades(path)
		if err != nil {
			return nil, err
		}
		result.Rows = len(trades)
		store, err := database.NewTradeStore(result.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		if result.Inserted, err = store.SaveTrades(ctx, result.RunID, label, trades); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	log.Info("Export finished", "label", label, "format", format, "path", result.Path, "rows", result.Rows)
	return result, nil
}

func writeCSVFile(path string, table *models.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return exporters.WriteCSV(f, table)
}

// Label is the report label of path: its file name without extension.
func Label(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
