// Package xlsx renders the built-in spreadsheet dashboard with excelize.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/flanksource/docstudio/render"
)

func init() {
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:         "excel_dashboard",
			DisplayName:  "KPI Dashboard Workbook",
			Description:  "Dashboard sheet with KPI cards, growth highlighting and a revenue chart",
			Format:       "xlsx",
			Engine:       "excelize",
			ColorSchemes: []string{"business"},
			Tags:         []string{"dashboard", "kpi"},
		},
		Fn: renderDashboard,
	})
}

var dashboardSample = render.Data{
	"title":    "Sales Dashboard",
	"subtitle": "FY2026 first half",
	"kpis": []any{
		map[string]any{"label": "Revenue", "value": "$4.2M"},
		map[string]any{"label": "New Accounts", "value": "38"},
		map[string]any{"label": "Avg Deal", "value": "$110K"},
		map[string]any{"label": "Win Rate", "value": "31%"},
	},
	"months": []any{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
	"series": []any{
		map[string]any{"label": "Revenue", "values": []any{580, 610, 640, 720, 760, 840}},
		map[string]any{"label": "Costs", "values": []any{420, 430, 445, 470, 480, 510}},
	},
	"regions": []any{
		map[string]any{"name": "Kanto", "revenue": 1820, "growth": 0.14},
		map[string]any{"name": "Kansai", "revenue": 1240, "growth": 0.09},
		map[string]any{"name": "Kyushu", "revenue": 680, "growth": -0.03},
		map[string]any{"name": "Tohoku", "revenue": 460, "growth": 0.21},
	},
}

const (
	dashSheet = "Dashboard"
	dataSheet = "Data"
)

func renderDashboard(_ context.Context, job render.Job) error {
	data := render.Merge(dashboardSample, job.Data)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", dashSheet)
	if _, err := f.NewSheet(dataSheet); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 20, Color: "1E3A5F"},
	})
	if err != nil {
		return err
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11, Color: "718096"},
	})
	if err != nil {
		return err
	}
	kpiValueStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1E3A5F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	kpiLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "1E3A5F"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"EDF2F7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2C5282"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(dashSheet, "B2", data.String("title", "")); err != nil {
		return err
	}
	_ = f.SetCellStyle(dashSheet, "B2", "B2", titleStyle)
	_ = f.SetCellValue(dashSheet, "B3", data.String("subtitle", ""))
	_ = f.SetCellStyle(dashSheet, "B3", "B3", subtitleStyle)

	// KPI cards, two cells tall
	for i, kpi := range data.Maps("kpis") {
		col := mustColName(2 + i*2)
		valueCell := col + "5"
		labelCell := col + "6"
		_ = f.SetCellValue(dashSheet, valueCell, kpi.String("value", ""))
		_ = f.SetCellValue(dashSheet, labelCell, kpi.String("label", ""))
		_ = f.SetCellStyle(dashSheet, valueCell, valueCell, kpiValueStyle)
		_ = f.SetCellStyle(dashSheet, labelCell, labelCell, kpiLabelStyle)
		_ = f.SetColWidth(dashSheet, col, col, 16)
	}
	_ = f.SetRowHeight(dashSheet, 5, 30)

	// region table with growth highlighting
	tableRow := 9
	for i, h := range []string{"Region", "Revenue", "Growth"} {
		cell, _ := excelize.CoordinatesToCellName(2+i, tableRow)
		_ = f.SetCellValue(dashSheet, cell, h)
		_ = f.SetCellStyle(dashSheet, cell, cell, headerStyle)
	}
	regions := data.Maps("regions")
	for i, region := range regions {
		row := tableRow + 1 + i
		nameCell, _ := excelize.CoordinatesToCellName(2, row)
		revCell, _ := excelize.CoordinatesToCellName(3, row)
		growthCell, _ := excelize.CoordinatesToCellName(4, row)
		_ = f.SetCellValue(dashSheet, nameCell, region.String("name", ""))
		_ = f.SetCellValue(dashSheet, revCell, region.Float("revenue", 0))
		_ = f.SetCellValue(dashSheet, growthCell, region.Float("growth", 0))
		_ = f.SetCellStyle(dashSheet, growthCell, growthCell, percentStyle)
	}
	negStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	firstGrowth, _ := excelize.CoordinatesToCellName(4, tableRow+1)
	lastGrowth, _ := excelize.CoordinatesToCellName(4, tableRow+len(regions))
	if err := f.SetConditionalFormat(dashSheet, firstGrowth+":"+lastGrowth, []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: "<", Format: &negStyle, Value: "0"},
	}); err != nil {
		return fmt.Errorf("failed to set conditional format: %w", err)
	}

	// monthly series on the data sheet feed the chart
	months := data.Strings("months")
	series := data.Maps("series")
	for i, m := range months {
		cell, _ := excelize.CoordinatesToCellName(1+i, 1)
		_ = f.SetCellValue(dataSheet, cell, m)
	}
	for si, s := range series {
		labelCell, _ := excelize.CoordinatesToCellName(len(months)+2, 2+si)
		_ = f.SetCellValue(dataSheet, labelCell, s.String("label", ""))
		for vi, v := range s.Slice("values") {
			cell, _ := excelize.CoordinatesToCellName(1+vi, 2+si)
			_ = f.SetCellValue(dataSheet, cell, v)
		}
	}

	if len(months) > 0 && len(series) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(months))
		chartSeries := make([]excelize.ChartSeries, 0, len(series))
		for si := range series {
			row := 2 + si
			chartSeries = append(chartSeries, excelize.ChartSeries{
				Name:       fmt.Sprintf("%s!$%s$%d", dataSheet, mustColName(len(months)+2), row),
				Categories: fmt.Sprintf("%s!$A$1:$%s$1", dataSheet, lastCol),
				Values:     fmt.Sprintf("%s!$A$%d:$%s$%d", dataSheet, row, lastCol, row),
			})
		}
		if err := f.AddChart(dashSheet, "F9", &excelize.Chart{
			Type:   excelize.Col,
			Series: chartSeries,
			Title:  []excelize.RichTextRun{{Text: "Monthly Revenue vs Costs"}},
			Legend: excelize.ChartLegend{Position: "bottom"},
		}); err != nil {
			return fmt.Errorf("failed to add chart: %w", err)
		}
	}

	f.SetActiveSheet(0)

	if dir := filepath.Dir(job.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return f.SaveAs(job.OutputPath)
}

func mustColName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}
