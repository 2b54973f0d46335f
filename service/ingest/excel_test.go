package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	require.NoError(t, wb.SetSheetName("Sheet1", "Sales"))
	require.NoError(t, wb.SetCellValue("Sales", "A1", "region"))
	require.NoError(t, wb.SetCellValue("Sales", "B1", "amount"))
	require.NoError(t, wb.SetCellValue("Sales", "A2", "north"))
	require.NoError(t, wb.SetCellValue("Sales", "B2", 42))

	_, err := wb.NewSheet("Costs")
	require.NoError(t, err)
	require.NoError(t, wb.SetCellValue("Costs", "A1", "item"))
	require.NoError(t, wb.SetCellValue("Costs", "A2", "hosting"))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExcelExtractor_SheetOrderAndMarkers(t *testing.T) {
	e := &ExcelExtractor{}

	text, err := e.Extract(context.Background(), buildWorkbook(t))
	require.NoError(t, err)

	first := strings.Index(text, "--- Sheet 1: Sales ---")
	second := strings.Index(text, "--- Sheet 2: Costs ---")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)

	// 行内单元格以tab分隔
	assert.Contains(t, text, "region\tamount")
	assert.Contains(t, text, "north\t42")
	assert.Contains(t, text, "hosting")
}

func TestExcelExtractor_MalformedInput(t *testing.T) {
	e := &ExcelExtractor{}

	data := append([]byte("PK\x03\x04"), []byte("not a real workbook")...)

	_, err := e.Extract(context.Background(), data)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestExcelExtractor_LegacyXls(t *testing.T) {
	e := &ExcelExtractor{}

	// 旧版xls走可打印字符扫描
	data := []byte("\xd0\xcf\x11\xe0budget numbers\x00\x00total: 99\x00")

	text, err := e.Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, text, "budget numbers")
}
