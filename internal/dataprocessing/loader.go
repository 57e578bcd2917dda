package dataprocessing

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "dtxcli/internal/errors"
)

// RawTable is the unvalidated tabular snapshot read from the source
// workbook: a header row plus data rows in sheet order. Cells are raw
// strings; all coercion happens in the Cleaner.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell at (row, col), tolerating short rows.
func (t *RawTable) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// LoadWorkbook reads one sheet of an Excel workbook into a RawTable.
// A path that does not resolve wraps ErrSourceNotFound; any open, read or
// missing-sheet failure wraps ErrSourceUnreadable. No shared state is
// touched on failure.
func LoadWorkbook(path, sheet string) (*RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnreadable, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", apperrors.ErrSourceUnreadable, sheet, err)
	}

	table := &RawTable{}
	if len(rows) > 0 {
		header := make([]string, len(rows[0]))
		for i, cell := range rows[0] {
			header[i] = strings.TrimSpace(cell)
		}
		table.Header = header
		table.Rows = rows[1:]
	}

	slog.Debug("workbook loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("columns", len(table.Header)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}
