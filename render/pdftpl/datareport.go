package pdftpl

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/flanksource/docstudio/render"
	"github.com/flanksource/docstudio/render/chart"
)

// matplotlib_datareport keeps its historical name; charts are drawn as SVG,
// rasterised and embedded into the PDF.
func init() {
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:         "matplotlib_datareport",
			DisplayName:  "Data Report",
			Description:  "Chart-heavy data report with embedded bar and line charts",
			Format:       "pdf",
			Engine:       "maroto",
			ColorSchemes: []string{"business"},
			Tags:         []string{"builtin"},
		},
		Fn: renderDataReport,
	})
}

var dataReportSample = render.Data{
	"title":    "Monthly Operations Report",
	"subtitle": "March 2026",
	"labels":   []any{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"},
	"revenue":  []any{31.0, 34.5, 41.2, 38.9, 44.1, 48.6},
	"costs":    []any{22.4, 23.1, 27.0, 25.2, 26.8, 28.9},
	"uptime":   []any{99.92, 99.95, 99.89, 99.97, 99.99, 99.96},
	"summary":  "Revenue reached an all-time high in March while cost growth stayed under 8% quarter over quarter. Uptime met the 99.9% objective for the sixth consecutive month.",
}

func floatValues(items []any) []float64 {
	out := make([]float64, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			out = append(out, v)
		case int:
			out = append(out, float64(v))
		}
	}
	return out
}

func renderDataReport(ctx context.Context, job render.Job) error {
	data := render.Merge(dataReportSample, job.Data)
	labels := data.Strings("labels")

	barSVG := chart.BarSVG([]chart.Series{
		{Label: "Revenue", Values: floatValues(data.Slice("revenue")), Color: "#1e3a5f"},
		{Label: "Costs", Values: floatValues(data.Slice("costs")), Color: "#c9a227"},
	}, chart.Options{
		Width: 640, Height: 360,
		Title:      "Revenue vs Costs (¥M)",
		Labels:     labels,
		Background: "#ffffff", Axis: "#94a3b8", TitleColor: "#1e3a5f",
	})
	barPNG, err := chart.PNG(barSVG, 640, 360)
	if err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}

	lineSVG := chart.LineSVG([]chart.Series{
		{Label: "Uptime", Values: floatValues(data.Slice("uptime")), Color: "#0d9488"},
	}, chart.Options{
		Width: 640, Height: 300,
		Title:      "Service uptime (%)",
		Labels:     labels,
		Background: "#ffffff", Axis: "#94a3b8", TitleColor: "#1e3a5f",
	})
	linePNG, err := chart.PNG(lineSVG, 640, 300)
	if err != nil {
		return fmt.Errorf("failed to render line chart: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		WithBottomMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRows(
		text.NewRow(12, data.String("title", ""), props.Text{Size: 22, Style: fontstyle.Bold, Color: &navy}),
		text.NewRow(7, data.String("subtitle", ""), props.Text{Size: 12, Color: &slate}),
		row.New(3).Add(col.New(12).Add(line.New(props.Line{Color: &gold, Thickness: 0.6}))),
		row.New(4),
		row.New(80).Add(col.New(12).Add(image.NewFromBytes(barPNG, extension.Png, props.Rect{Percent: 100, Center: true}))),
		row.New(4),
		row.New(65).Add(col.New(12).Add(image.NewFromBytes(linePNG, extension.Png, props.Rect{Percent: 100, Center: true}))),
		row.New(6),
		text.NewRow(6, "Summary", props.Text{Size: 11, Style: fontstyle.Bold, Color: &navy}),
		text.NewRow(18, data.String("summary", ""), props.Text{Size: 9.5, Color: &slate}),
	)

	document, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	if err := ensureDir(job.OutputPath); err != nil {
		return err
	}
	return document.Save(job.OutputPath)
}
