package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "dtxcli/internal/errors"
)

// writeWorkbook builds a one-sheet .xlsx fixture under dir.
func writeWorkbook(t *testing.T, dir, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, "index.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "Sheet1", [][]interface{}{
		{"股票代码", "企业名称", "年份", "数字化转型综合指数", "行业代码", "行业名称"},
		{"000820", "平安银行", 2020, 0.5, "J66", "货币金融服务"},
		{"100020", "某科技", 2021, 1.2, "I65", "软件和信息技术服务"},
	})

	table, err := LoadWorkbook(path, "Sheet1")
	require.NoError(t, err)

	assert.Equal(t, fullHeader(), table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "000820", table.Cell(table.Rows[0], 0))
	assert.Equal(t, "2020", table.Cell(table.Rows[0], 2))
}

func TestLoadWorkbook_SourceNotFound(t *testing.T) {
	_, err := LoadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"), "Sheet1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrSourceUnreadable)
}

func TestLoadWorkbook_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0644))

	_, err := LoadWorkbook(path, "Sheet1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnreadable)
}

func TestLoadWorkbook_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "Sheet1", [][]interface{}{
		{"股票代码", "企业名称", "年份", "数字化转型综合指数", "行业代码", "行业名称"},
	})

	_, err := LoadWorkbook(path, "数据表")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnreadable)
}

func TestLoadWorkbook_CleanRoundTrip(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "Sheet1", [][]interface{}{
		{"股票代码", "企业名称", "年份", "数字化转型综合指数", "行业代码", "行业名称"},
		{"000820", "平安银行", 2020, 0.5, "J66", "货币金融服务"},
		{"000820", "平安银行", 2021, "n/a", "J66", "货币金融服务"},
	})

	table, err := LoadWorkbook(path, "Sheet1")
	require.NoError(t, err)

	records, err := Clean(table)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Index)
	assert.InDelta(t, 0.5, *records[0].Index, 1e-9)
	assert.Nil(t, records[1].Index)
}
