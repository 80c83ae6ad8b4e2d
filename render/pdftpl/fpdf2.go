package pdftpl

import (
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/flanksource/docstudio/render"
)

// fpdf2_modern keeps its historical name; the modern one-pager is drawn with
// gofpdf primitives.
func init() {
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:         "fpdf2_modern",
			DisplayName:  "Modern One-Pager",
			Description:  "Single-page modern brief with header band, highlight boxes and a footer",
			Format:       "pdf",
			Engine:       "gofpdf",
			ColorSchemes: []string{"business", "minimal"},
			Tags:         []string{"builtin"},
		},
		Fn: renderFpdf2Modern,
	})
}

var fpdf2Sample = render.Data{
	"title":    "Service Brief",
	"subtitle": "Managed document pipeline",
	"sections": []any{
		map[string]any{"heading": "What it is", "body": "A managed pipeline that turns structured data into branded PDF, slide and spreadsheet deliverables on every release."},
		map[string]any{"heading": "How it works", "body": "Templates live next to your code. CI calls the generator, preflight validates the output, artifacts land in your storage bucket."},
		map[string]any{"heading": "What you get", "body": "Consistent branding, reviewable templates, generation in seconds and a paper trail for every published document."},
	},
	"highlights": []any{"SOC2 ready", "99.9% uptime", "Unlimited templates"},
	"footer":     "docstudio.example · generated documents you can trust",
}

func renderFpdf2Modern(ctx context.Context, job render.Job) error {
	data := render.Merge(fpdf2Sample, job.Data)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(data.String("title", ""), true)
	pdf.SetAuthor("Doc Studio", true)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(30, 58, 95)
	pdf.Rect(0, 0, 210, 42, "F")
	pdf.SetFillColor(201, 162, 39)
	pdf.Rect(0, 42, 210, 2.5, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetXY(15, 12)
	pdf.CellFormat(180, 12, data.String("title", ""), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetX(15)
	pdf.SetTextColor(201, 162, 39)
	pdf.CellFormat(180, 8, data.String("subtitle", ""), "", 1, "L", false, 0, "")

	// Highlight boxes
	highlights := data.Strings("highlights")
	if len(highlights) > 0 {
		boxW := (180.0 - float64(len(highlights)-1)*5) / float64(len(highlights))
		y := 52.0
		for i, h := range highlights {
			x := 15 + float64(i)*(boxW+5)
			pdf.SetFillColor(245, 245, 245)
			pdf.Rect(x, y, boxW, 14, "F")
			pdf.SetTextColor(30, 58, 95)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetXY(x, y+4)
			pdf.CellFormat(boxW, 6, h, "", 0, "C", false, 0, "")
		}
		pdf.SetY(72)
	} else {
		pdf.SetY(52)
	}

	// Sections
	for _, section := range data.Maps("sections") {
		pdf.SetTextColor(30, 58, 95)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetX(15)
		pdf.CellFormat(180, 9, section.String("heading", ""), "", 1, "L", false, 0, "")
		pdf.SetDrawColor(201, 162, 39)
		pdf.SetLineWidth(0.5)
		pdf.Line(15, pdf.GetY(), 60, pdf.GetY())
		pdf.Ln(2)
		pdf.SetTextColor(60, 60, 60)
		pdf.SetFont("Helvetica", "", 10.5)
		pdf.SetX(15)
		pdf.MultiCell(180, 5.5, section.String("body", ""), "", "L", false)
		pdf.Ln(4)
	}

	// Footer
	pdf.SetY(-25)
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.3)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.SetTextColor(150, 150, 150)
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.CellFormat(180, 10, data.String("footer", ""), "", 0, "C", false, 0, "")

	if err := ensureDir(job.OutputPath); err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(job.OutputPath); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
