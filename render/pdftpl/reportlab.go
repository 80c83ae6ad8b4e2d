package pdftpl

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/flanksource/docstudio/render"
)

var (
	navy      = props.Color{Red: 30, Green: 58, Blue: 95}
	gold      = props.Color{Red: 201, Green: 162, Blue: 39}
	slate     = props.Color{Red: 71, Green: 85, Blue: 105}
	lightGray = props.Color{Red: 245, Green: 245, Blue: 245}
	white     = props.Color{Red: 255, Green: 255, Blue: 255}
)

// reportlab_advanced keeps its historical name; the design is drawn directly
// with maroto rather than converted from HTML.
func init() {
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:         "reportlab_advanced",
			DisplayName:  "Advanced Drawn Report",
			Description:  "Directly drawn business report with cover, KPI strip and styled tables",
			Format:       "pdf",
			Engine:       "maroto",
			ColorSchemes: []string{"business"},
			Tags:         []string{"builtin"},
		},
		Fn: renderReportlabAdvanced,
	})
}

var reportlabSample = render.Data{
	"title":    "Quarterly Business Review",
	"subtitle": "Q1 FY2026 — Sales & Operations",
	"company":  "Northwind Trading K.K.",
	"kpis": []any{
		map[string]any{"label": "Revenue", "value": "¥420M"},
		map[string]any{"label": "Gross Margin", "value": "61%"},
		map[string]any{"label": "New Accounts", "value": "87"},
		map[string]any{"label": "NPS", "value": "+52"},
	},
	"rows": []any{
		map[string]any{"region": "Kanto", "revenue": "¥182M", "growth": "+12%", "owner": "Sato"},
		map[string]any{"region": "Kansai", "revenue": "¥104M", "growth": "+8%", "owner": "Ito"},
		map[string]any{"region": "Kyushu", "revenue": "¥74M", "growth": "+19%", "owner": "Watanabe"},
		map[string]any{"region": "Overseas", "revenue": "¥60M", "growth": "+31%", "owner": "Chen"},
	},
	"notes": "Overseas growth is driven by the partner program launched in November. Kyushu benefited from the new distribution hub.",
}

func renderReportlabAdvanced(ctx context.Context, job render.Job) error {
	data := render.Merge(reportlabSample, job.Data)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		WithBottomMargin(15).
		Build()
	m := maroto.New(cfg)

	// Cover block
	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New(data.String("title", ""), props.Text{
					Size:  24,
					Style: fontstyle.Bold,
					Color: &navy,
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(data.String("subtitle", ""), props.Text{Size: 13, Color: &slate}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(data.String("company", ""), props.Text{Size: 10, Color: &gold, Style: fontstyle.Bold}),
			),
		),
		row.New(4).Add(col.New(12).Add(line.New(props.Line{Color: &gold, Thickness: 0.6}))),
	)

	// KPI strip
	kpis := data.Maps("kpis")
	if len(kpis) > 0 {
		span := 12 / len(kpis)
		if span < 1 {
			span = 1
		}
		kpiRow := row.New(18)
		for _, kpi := range kpis {
			kpiRow.Add(
				col.New(span).Add(
					text.New(kpi.String("value", ""), props.Text{
						Size: 16, Style: fontstyle.Bold, Align: align.Center, Color: &navy, Top: 3,
					}),
					text.New(kpi.String("label", ""), props.Text{
						Size: 8, Align: align.Center, Color: &slate, Top: 11,
					}),
				).WithStyle(&props.Cell{BackgroundColor: &lightGray}),
			)
		}
		m.AddRows(row.New(4), kpiRow, row.New(6))
	}

	// Regional table
	headerRow := row.New(8)
	for _, h := range []struct {
		span int
		text string
	}{{4, "Region"}, {3, "Revenue"}, {2, "Growth"}, {3, "Owner"}} {
		headerRow.Add(
			col.New(h.span).Add(
				text.New(h.text, props.Text{Size: 9, Style: fontstyle.Bold, Color: &white, Left: 2, Top: 1.5}),
			).WithStyle(&props.Cell{BackgroundColor: &navy}),
		)
	}
	m.AddRows(headerRow)

	for i, r := range data.Maps("rows") {
		cell := &props.Cell{}
		if i%2 == 1 {
			cell.BackgroundColor = &lightGray
		}
		m.AddRows(row.New(7).Add(
			col.New(4).Add(text.New(r.String("region", ""), props.Text{Size: 9, Left: 2, Top: 1.5})).WithStyle(cell),
			col.New(3).Add(text.New(r.String("revenue", ""), props.Text{Size: 9, Left: 2, Top: 1.5})).WithStyle(cell),
			col.New(2).Add(text.New(r.String("growth", ""), props.Text{Size: 9, Left: 2, Top: 1.5, Color: &gold, Style: fontstyle.Bold})).WithStyle(cell),
			col.New(3).Add(text.New(r.String("owner", ""), props.Text{Size: 9, Left: 2, Top: 1.5})).WithStyle(cell),
		))
	}

	// Notes
	if notes := data.String("notes", ""); notes != "" {
		m.AddRows(
			row.New(6),
			text.NewRow(6, "Notes", props.Text{Size: 11, Style: fontstyle.Bold, Color: &navy}),
			text.NewRow(14, notes, props.Text{Size: 9, Color: &slate}),
		)
	}

	document, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	if err := ensureDir(job.OutputPath); err != nil {
		return err
	}
	return document.Save(job.OutputPath)
}
