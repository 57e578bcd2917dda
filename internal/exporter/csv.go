// Package exporter writes the cleaned and aggregated tables back out as
// CSV so the dataset can round-trip into Excel and other tooling.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"dtxcli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("CSV file written",
		slog.String("path", filePath),
		slog.Int("record_count", len(options.Records)))

	return nil
}

// WriteEnterprises exports the cleaned enterprise table. Missing index
// values render as empty cells, not zeros.
func (w *CSVWriter) WriteEnterprises(filePath string, records []domain.EnterpriseRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Code,
			rec.Name,
			strconv.Itoa(rec.Year),
			formatIndex(rec.Index),
			rec.IndustryCode,
			rec.IndustryName,
		})
	}
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"企业代码", "企业名称", "年份", "数字化转型指数", "行业代码", "行业名称"},
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteIndustryAverages exports the derived industry-average table.
func (w *CSVWriter) WriteIndustryAverages(filePath string, rows []domain.IndustryAverage) error {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.IndustryCode,
			row.IndustryName,
			strconv.Itoa(row.Year),
			formatIndex(row.AvgIndex),
		})
	}
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"行业代码", "行业名称", "年份", "行业平均指数"},
		Records:   out,
		BOMPrefix: true,
	})
}

func formatIndex(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
