package report

import (
	_ "image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

// Sheet is one report's page in the workbook.
type Sheet struct {
	Name      string
	Title     string
	Table     Table
	ChartPath string
}

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

// Export writes every sheet into filename, overwriting an earlier workbook.
func (e *ExcelExporter) Export(filename string, sheets []Sheet) (string, error) {
	if len(sheets) == 0 {
		return "", goerr.New("no sheets to export")
	}
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create output directory", goerr.V("dir", e.OutputDir))
	}
	path := filepath.Join(e.OutputDir, filename)

	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range sheets {
		name := sanitizeSheetName(sheet.Name)
		if err := e.createReportSheet(f, name, sheet); err != nil {
			return "", goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", name))
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", goerr.Wrap(err, "failed to drop default sheet")
	}

	first := sanitizeSheetName(sheets[0].Name)
	idx, err := f.GetSheetIndex(first)
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up sheet", goerr.V("sheet", first))
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(path); err != nil {
		return "", goerr.Wrap(err, "failed to save excel file", goerr.V("file", path))
	}

	return path, nil
}

func (e *ExcelExporter) createReportSheet(f *excelize.File, sheetName string, sheet Sheet) error {
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#B4C7E7"}, Pattern: 1},
		Font:   &excelize.Font{Bold: true},
		Border: border,
	})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A1", sheet.Title); err != nil {
		return err
	}

	table := sheet.Table
	headerRow := 3
	headers := append([]string{"Week"}, table.Columns...)
	headers = append(headers, "Total")
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	labels := table.Labels()
	for i := range table.Weeks {
		values := []any{labels[i]}
		for _, n := range table.Counts[i] {
			values = append(values, n)
		}
		values = append(values, table.RowTotal(i))

		cell, err := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	totalRow := headerRow + 1 + table.Len()
	totals := []any{"Total"}
	for _, c := range table.Columns {
		sum := 0
		for _, n := range table.Column(c) {
			sum += n
		}
		totals = append(totals, sum)
	}
	totals = append(totals, table.Total())

	first, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(totals), totalRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, first, &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, first, last, totalStyle); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 14); err != nil {
		return err
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: "A4",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if sheet.ChartPath != "" {
		anchor, err := excelize.CoordinatesToCellName(len(headers)+2, headerRow)
		if err != nil {
			return err
		}
		if err := f.AddPicture(sheetName, anchor, sheet.ChartPath, &excelize.GraphicOptions{
			ScaleX: 0.35,
			ScaleY: 0.35,
		}); err != nil {
			return goerr.Wrap(err, "failed to embed chart", goerr.V("chart", sheet.ChartPath))
		}
	}

	return nil
}

func sanitizeSheetName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")
	name = strings.ReplaceAll(name, ":", "-")

	if len(name) > 31 {
		name = name[:31]
	}

	return name
}
