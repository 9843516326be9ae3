package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/username/parsegbx/src/config"
	"github.com/username/parsegbx/src/files"
	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/parsers"
	"github.com/username/parsegbx/src/parsers/genbox"
	"github.com/username/parsegbx/src/services"
)

type options struct {
	dir, group, file string
	index            int
	encoding         string
	dialect          string
	markers          string
	strict           bool
	coerceTimes      bool
	summary          bool
	export           string
	out              string
	list             bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.L.Error("parsegbx failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if err := config.LoadConfig(); err != nil {
		return err
	}
	cfg := config.Cfg

	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}
	logger.InitLogger(cfg.LogLevel, cfg.LogFormat)

	parserOpts := genbox.Options{
		Encoding:       opts.encoding,
		Dialect:        genbox.Dialect(opts.dialect),
		Coercion:       genbox.CoercionOptions{CoerceInvalidTimes: opts.coerceTimes},
		StrictCoercion: opts.strict,
	}
	if opts.markers != "" {
		m, err := genbox.LoadMarkersFile(opts.markers)
		if err != nil {
			return err
		}
		parserOpts.Markers = &m
	}
	parser, err := parsers.GetParser("genbox", parserOpts)
	if err != nil {
		return err
	}
	classifier := files.NewClassifier(cfg.GroupNames, cfg.DefaultGroup, cfg.FileExtension)
	svc := services.NewReportService(cfg, parser, classifier, services.NewReportCache(cfg))

	if opts.list {
		return listFiles(svc, opts.dir, stdout)
	}

	path := opts.file
	if path == "" {
		groups, err := svc.Discover(opts.dir)
		if err != nil {
			return err
		}
		f, err := groups.Select(opts.group, opts.index)
		if err != nil {
			return err
		}
		path = f.Path
	}
	label := services.Label(path)

	switch {
	case opts.export != "":
		res, err := svc.Export(context.Background(), path, opts.export, opts.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported %d ops of the Backtest %s to %s\n", res.Rows, label, res.Path)
	case opts.summary:
		s, err := svc.Summary(path)
		if err != nil {
			return err
		}
		printSummary(stdout, s)
	default:
		table, err := svc.Parse(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Number of ops in the Backtest %s: %d\n", label, table.Len())
	}
	return nil
}

func parseFlags(args []string, cfg *config.AppConfig) (options, error) {
	var o options
	fs := flag.NewFlagSet("parsegbx", flag.ContinueOnError)
	fs.StringVar(&o.dir, "dir", cfg.PayloadDir, "directory holding the backtest reports")
	fs.StringVar(&o.group, "group", cfg.DefaultGroup, "report group to pick the file from")
	fs.IntVar(&o.index, "index", 0, "position of the report within its group")
	fs.StringVar(&o.file, "file", "", "report to parse, bypassing discovery")
	fs.StringVar(&o.encoding, "encoding", cfg.FileEncoding, "text encoding of the report")
	fs.StringVar(&o.dialect, "dialect", cfg.HTMLDialect, "HTML parsing mode: html or fragment")
	fs.StringVar(&o.markers, "markers", cfg.MarkersFile, "YAML marker profile")
	fs.BoolVar(&o.strict, "strict", false, "fail on the first column that cannot be converted")
	fs.BoolVar(&o.coerceTimes, "coerce-times", false, "treat unparsable timestamps as missing")
	fs.BoolVar(&o.summary, "summary", false, "print trade statistics")
	fs.StringVar(&o.export, "export", "", "export format: csv, xlsx or sqlite")
	fs.StringVar(&o.out, "out", "", "export destination")
	fs.BoolVar(&o.list, "list", false, "list the discovered reports by group")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

func listFiles(svc services.ReportService, dir string, w io.Writer) error {
	groups, err := svc.Discover(dir)
	if err != nil {
		return err
	}
	for _, name := range groups.Names() {
		fmt.Fprintf(w, "Group: %s\n", name)
		for _, f := range groups[name] {
			fmt.Fprintf(w, "  - %s\n", f.Name)
		}
	}
	return nil
}
