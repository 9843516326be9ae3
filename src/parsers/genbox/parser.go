// Package genbox extracts the closed-transactions table of a Genbox backtest
// HTML export into a typed models.Table.
//
// The pipeline runs ReadDocument, LocateTable, ListRows, SelectRows,
// SplitColumns, BuildTable and AssignTypes in that order. Loading, locating
// and building fail fast. Splitting degrades to an empty result and type
// coercion to a partially typed table; both report through the logger.
package genbox

import (
	"errors"

	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/models"
)

// Options configure a Parser. Zero values select the Genbox defaults.
type Options struct {
	Encoding string
	Binary   bool
	Dialect  Dialect
	Markers  *Markers
	Schema   *Schema
	Coercion CoercionOptions
	// StrictCoercion returns a *TypeCoercionError alongside the partially
	// typed table instead of only logging it.
	StrictCoercion bool
}

// Parser runs the extraction pipeline. It holds configuration only and is
// safe to reuse.
type Parser struct {
	load     LoadOptions
	dialect  Dialect
	markers  Markers
	schema   Schema
	coercion CoercionOptions
	strict   bool
}

// NewParser creates a new instance of the Genbox parser.
func NewParser(opts Options) *Parser {
	p := &Parser{
		load:     LoadOptions{Encoding: opts.Encoding, Binary: opts.Binary},
		dialect:  opts.Dialect,
		markers:  DefaultMarkers,
		schema:   DefaultSchema,
		coercion: opts.Coercion,
		strict:   opts.StrictCoercion,
	}
	if p.load.Encoding == "" {
		p.load.Encoding = DefaultEncoding
	}
	if p.dialect == "" {
		p.dialect = DialectDocument
	}
	if opts.Markers != nil {
		p.markers = *opts.Markers
	}
	if opts.Schema != nil {
		p.schema = *opts.Schema
	}
	return p
}

// ParseFile reads the report at path and returns its typed trade table.
func (p *Parser) ParseFile(path string) (*models.Table, error) {
	doc, err := ReadDocument(path, p.load)
	if err != nil {
		return nil, err
	}
	return p.ParseDocument(doc)
}

// ParseDocument runs every stage after loading on already decoded text.
func (p *Parser) ParseDocument(doc string) (*models.Table, error) {
	table, err := LocateTable(doc, p.dialect)
	if err != nil {
		return nil, err
	}
	if table == nil {
		logger.L.Warn("No table element in document")
	}

	rows := SelectRows(ListRows(table), p.markers)
	built, err := BuildTable(SplitColumns(rows), p.schema)
	if err != nil {
		return nil, err
	}
	if built.Len() == 0 {
		logger.L.Warn("Closed transactions section has no trades", "retained", len(rows), "error", ErrEmptySection)
	}

	typed, err := AssignTypes(built, p.schema.Types, p.schema.TimeColumns, p.coercion)
	if err != nil {
		var tce *TypeCoercionError
		if typed != nil && !p.strict && errors.As(err, &tce) {
			logger.L.Warn("Returning partially typed table", "column", tce.Column, "error", err)
			return typed, nil
		}
		return typed, err
	}

	logger.L.Debug("Parsed backtest table", "rows", typed.Len(), "columns", len(typed.Columns))
	return typed, nil
}
