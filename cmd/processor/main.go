// processor runs the load → clean → aggregate pipeline once over a source
// workbook and exports the cleaned and industry-average tables as CSV.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"dtxcli/internal/dataprocessing"
	apperrors "dtxcli/internal/errors"
	"dtxcli/internal/exporter"
)

func main() {
	source := flag.String("source", "", "path to the source .xlsx workbook (required)")
	sheet := flag.String("sheet", "Sheet1", "sheet name to read")
	outDir := flag.String("out", "reports", "output directory for CSV files")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *source == "" {
		logger.Error("missing -source flag")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := dataprocessing.LoadWorkbook(*source, *sheet)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSourceNotFound):
			logger.Error("source workbook not found", slog.String("path", *source))
		case errors.Is(err, apperrors.ErrSourceUnreadable):
			logger.Error("source workbook unreadable", slog.String("error", err.Error()))
		default:
			logger.Error("load failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	records, err := dataprocessing.Clean(raw)
	if err != nil {
		var schemaErr *apperrors.SchemaError
		if errors.As(err, &schemaErr) {
			logger.Error("source schema invalid",
				slog.Any("missing_columns", schemaErr.Missing))
		} else {
			logger.Error("clean failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	averages := dataprocessing.Aggregate(records)

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteEnterprises(filepath.Join(*outDir, "enterprise_index.csv"), records); err != nil {
		logger.Error("enterprise export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := writer.WriteIndustryAverages(filepath.Join(*outDir, "industry_average.csv"), averages); err != nil {
		logger.Error("industry export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("processing complete",
		slog.Int("enterprise_rows", len(records)),
		slog.Int("industry_rows", len(averages)),
		slog.String("out_dir", *outDir))
}
