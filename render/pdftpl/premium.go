package pdftpl

import (
	"html/template"

	"github.com/flanksource/docstudio/render"
	"github.com/flanksource/docstudio/render/htmlpdf"
)

// weasyprint_premium keeps its historical name; the Go port renders the same
// typography-first design through wkhtmltopdf instead of a browser.
func init() {
	render.Builtin.Register(htmlTemplate(render.Meta{
		Name:         "weasyprint_premium",
		DisplayName:  "Premium Typeset Report",
		Description:  "Typography-focused dark cover design rendered without a browser, for board papers and premium reports",
		Format:       "pdf",
		Engine:       "wkhtmltopdf",
		ColorSchemes: []string{"formal", "dark"},
		Tags:         []string{"builtin"},
	}, premiumSample, premiumTmpl, func() htmlpdf.Engine { return PremiumEngine }))
}

var premiumSample = render.Data{
	"title":    "Strategic Review FY2026",
	"subtitle": "Prepared for the board of directors",
	"company":  "Northwind Holdings",
	"date":     "April 2026",
	"chapters": []any{
		map[string]any{
			"number":  "01",
			"heading": "Performance",
			"body":    "Consolidated revenue grew 14% year over year, led by the subscription segment. Operating margin improved two points on the back of platform consolidation completed in Q2.",
		},
		map[string]any{
			"number":  "02",
			"heading": "Risk",
			"body":    "Concentration risk in the top five accounts remains the principal exposure at 38% of revenue. Mitigation continues through the mid-market expansion program.",
		},
		map[string]any{
			"number":  "03",
			"heading": "Capital Allocation",
			"body":    "The buyback program completed in March. We recommend directing FY2027 free cash flow toward the automation roadmap and two targeted acquisitions.",
		},
	},
}

var premiumTmpl = template.Must(template.New("premium").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.title}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: Georgia, 'Noto Serif JP', serif; color: #1a1a2e; font-size: 11pt; }
    .cover {
      page-break-after: always;
      background: #1a1a2e;
      color: white;
      padding: 4cm 2.5cm;
      height: 26cm;
    }
    .cover .company {
      letter-spacing: 0.5em;
      font-size: 10pt;
      color: #c9a227;
      text-transform: uppercase;
      margin-bottom: 3cm;
    }
    .cover h1 { font-size: 32pt; font-weight: 400; line-height: 1.3; margin-bottom: 1cm; }
    .cover .subtitle { font-size: 13pt; color: #aaa; font-style: italic; }
    .cover .date {
      margin-top: 4cm;
      border-top: 1px solid #0f3460;
      padding-top: 0.5cm;
      font-size: 10pt;
      color: #888;
    }
    .chapter { padding: 2cm 2.5cm 0; page-break-inside: avoid; }
    .chapter .number { font-size: 28pt; color: #c9a227; }
    .chapter h2 {
      font-size: 18pt;
      font-weight: 400;
      margin: 0.2cm 0 0.7cm;
      padding-bottom: 0.3cm;
      border-bottom: 1px solid #ddd;
    }
    .chapter .body { line-height: 1.9; text-align: justify; }
  </style>
</head>
<body>
  <div class="cover">
    <div class="company">{{.company}}</div>
    <h1>{{.title}}</h1>
    <div class="subtitle">{{.subtitle}}</div>
    <div class="date">{{.date}}</div>
  </div>
  {{range .chapters}}
  <div class="chapter">
    <div class="number">{{.number}}</div>
    <h2>{{.heading}}</h2>
    <div class="body">{{.body}}</div>
  </div>
  {{end}}
</body>
</html>
`))
