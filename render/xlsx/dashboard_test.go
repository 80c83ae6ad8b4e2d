package xlsx

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/flanksource/docstudio/render"
)

func TestDashboardRegistered(t *testing.T) {
	renderer, ok := render.Builtin.Get("excel_dashboard")
	require.True(t, ok)
	assert.Equal(t, "xlsx", renderer.Meta().Format)
	assert.Equal(t, "excelize", renderer.Meta().Engine)
}

func TestRenderDashboard(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dashboard.xlsx")
	err := render.Builtin.Render(context.Background(), "excel_dashboard", render.Job{
		OutputPath: out,
		Data:       render.Data{"title": "Override Dashboard"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Dashboard", "Data"}, f.GetSheetList())

	title, err := f.GetCellValue("Dashboard", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Override Dashboard", title)

	// first KPI card from the sample data
	kpi, err := f.GetCellValue("Dashboard", "B5")
	require.NoError(t, err)
	assert.Equal(t, "$4.2M", kpi)

	// month headers land on the data sheet
	month, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Jan", month)
}

func TestRenderDashboardManyKPIs(t *testing.T) {
	kpis := make([]any, 14)
	for i := range kpis {
		kpis[i] = map[string]any{
			"label": fmt.Sprintf("Metric %d", i+1),
			"value": fmt.Sprintf("%d", (i+1)*100),
		}
	}

	out := filepath.Join(t.TempDir(), "dashboard.xlsx")
	err := render.Builtin.Render(context.Background(), "excel_dashboard", render.Job{
		OutputPath: out,
		Data:       render.Data{"kpis": kpis},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	// card 14 sits at column 2 + 13*2 = 28, past the single-letter range
	value, err := f.GetCellValue("Dashboard", "AB5")
	require.NoError(t, err)
	assert.Equal(t, "1400", value)
}

func TestRenderDashboardCustomSeries(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dashboard.xlsx")
	err := render.Builtin.Render(context.Background(), "excel_dashboard", render.Job{
		OutputPath: out,
		Data: render.Data{
			"months": []any{"Q1", "Q2"},
			"series": []any{
				map[string]any{"label": "Bookings", "values": []any{10, 20}},
			},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	q2, err := f.GetCellValue("Data", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Q2", q2)
}
