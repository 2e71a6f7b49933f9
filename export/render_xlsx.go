package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FormatXLSX is not part of the default export surface. DatasetRenderer
// exists for callers that want the underlying numbers rather than a
// visual artifact; register it explicitly:
//
//	registry.Register(export.FormatXLSX, export.DatasetRenderer{})
const FormatXLSX Format = "xlsx"

const maxSheetNameLen = 31

// DatasetRenderer exports the dashboard's component data as an XLSX
// workbook: one sheet per chart component plus a KPI summary sheet.
type DatasetRenderer struct{}

// Render builds the workbook artifact.
func (r DatasetRenderer) Render(ctx context.Context, req ExportRequest) (Artifact, error) {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	kpiRow := 2
	kpiSheet := file.GetSheetName(0)
	if err := file.SetSheetName(kpiSheet, "KPIs"); err != nil {
		return Artifact{}, err
	}
	kpiSheet = "KPIs"
	_ = file.SetCellValue(kpiSheet, "A1", "Title")
	_ = file.SetCellValue(kpiSheet, "B1", "Value")
	_ = file.SetCellValue(kpiSheet, "C1", "Unit")

	used := map[string]struct{}{kpiSheet: {}}
	for i, component := range req.Dashboard.Components {
		if err := ctx.Err(); err != nil {
			return Artifact{}, err
		}

		switch component.Type {
		case ComponentChart:
			if err := writeChartSheet(file, sheetName(component, i, used), component); err != nil {
				return Artifact{}, err
			}
		case ComponentKPI:
			_ = file.SetCellValue(kpiSheet, fmt.Sprintf("A%d", kpiRow), component.Title)
			_ = file.SetCellValue(kpiSheet, fmt.Sprintf("B%d", kpiRow), stringifyValue(component.Data.Value))
			_ = file.SetCellValue(kpiSheet, fmt.Sprintf("C%d", kpiRow), component.Data.Unit)
			kpiRow++
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return Artifact{}, NewError(KindRender, "workbook encoding failed", err)
	}

	return Artifact{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    deriveFilename(req.Dashboard.Title, FormatXLSX),
		Data:        buf.Bytes(),
	}, nil
}

func writeChartSheet(file *excelize.File, name string, component Component) error {
	if _, err := file.NewSheet(name); err != nil {
		return err
	}

	_ = file.SetCellValue(name, "A1", "Label")
	for d, dataset := range component.Data.Datasets {
		column, err := excelize.ColumnNumberToName(d + 2)
		if err != nil {
			return err
		}
		header := dataset.Label
		if header == "" {
			header = fmt.Sprintf("Series %d", d+1)
		}
		_ = file.SetCellValue(name, column+"1", header)

		for i, value := range dataset.Data {
			if d == 0 && i < len(dataset.Labels) {
				_ = file.SetCellValue(name, fmt.Sprintf("A%d", i+2), dataset.Labels[i])
			}
			_ = file.SetCellValue(name, fmt.Sprintf("%s%d", column, i+2), value)
		}
	}
	return nil
}

// sheetName derives a unique workbook sheet name for a chart component.
// Titles repeating across components get the component index as a suffix
// so later charts never overwrite earlier sheets.
func sheetName(component Component, index int, used map[string]struct{}) string {
	base := component.Title
	if base == "" {
		base = component.ID
	}
	// Excel rejects these characters in sheet names.
	base = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, base)

	name := truncateRunes(base, maxSheetNameLen)
	if _, dup := used[name]; dup {
		suffix := fmt.Sprintf(" %d", index+1)
		name = truncateRunes(base, maxSheetNameLen-len(suffix)) + suffix
	}
	used[name] = struct{}{}
	return name
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
