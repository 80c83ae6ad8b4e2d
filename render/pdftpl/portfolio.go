package pdftpl

import (
	"html/template"

	"github.com/flanksource/docstudio/render"
	"github.com/flanksource/docstudio/render/htmlpdf"
)

func init() {
	render.Builtin.Register(htmlTemplate(render.Meta{
		Name:         "portfolio",
		DisplayName:  "Portfolio",
		Description:  "Creative monochrome layout with a single accent color, for design portfolios and photo books",
		Format:       "pdf",
		Engine:       "chromium",
		ColorSchemes: []string{"minimal", "creative"},
		Tags:         []string{"builtin"},
	}, portfolioSample, portfolioTmpl, func() htmlpdf.Engine { return HTMLEngine }))
}

var portfolioSample = render.Data{
	"name":   "Mika Tanaka",
	"role":   "Visual Designer",
	"intro":  "Selected work 2023 – 2026. Identity systems, editorial design and digital products for clients in retail, culture and technology.",
	"accent": "#e63946",
	"works": []any{
		map[string]any{"year": "2026", "title": "Kanda Books Rebrand", "category": "Identity", "summary": "Complete identity refresh for a century-old bookstore, spanning signage, bags and a new storefront system."},
		map[string]any{"year": "2025", "title": "Form & Function Annual", "category": "Editorial", "summary": "128-page annual report combining data visualisation with archival photography."},
		map[string]any{"year": "2024", "title": "Soto Weather App", "category": "Digital", "summary": "Weather application with a typographic interface and hourly haiku."},
		map[string]any{"year": "2023", "title": "Museum of Sound Posters", "category": "Print", "summary": "Series of twelve silkscreen posters for a year of concerts."},
	},
	"contact": "hello@mikatanaka.example",
}

var portfolioTmpl = template.Must(template.New("portfolio").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.name}} — Portfolio</title>
  <style>
    @page { size: A4; margin: 0; }
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #111; }
    .cover {
      height: 100vh;
      padding: 3cm;
      display: flex;
      flex-direction: column;
      justify-content: flex-end;
      background: #f5f5f5;
      page-break-after: always;
    }
    .cover h1 { font-size: 44pt; font-weight: 800; letter-spacing: -0.02em; }
    .cover .role {
      font-size: 14pt;
      color: {{.accent}};
      text-transform: uppercase;
      letter-spacing: 0.3em;
      margin: 0.5cm 0 1.5cm;
    }
    .cover .intro { font-size: 11pt; color: #555; max-width: 11cm; line-height: 1.8; }
    .works { padding: 2.5cm 3cm; }
    .work {
      display: grid;
      grid-template-columns: 2.2cm 1fr;
      gap: 0.8cm;
      padding: 0.9cm 0;
      border-top: 1px solid #e0e0e0;
      page-break-inside: avoid;
    }
    .work .year { font-size: 10pt; color: #999; }
    .work .title { font-size: 15pt; font-weight: 700; }
    .work .category {
      display: inline-block;
      font-size: 8pt;
      text-transform: uppercase;
      letter-spacing: 0.2em;
      color: {{.accent}};
      margin: 0.15cm 0 0.3cm;
    }
    .work .summary { font-size: 10pt; color: #555; line-height: 1.7; }
    .contact {
      padding: 0 3cm 2cm;
      font-size: 10pt;
      color: #999;
    }
  </style>
</head>
<body>
  <div class="cover">
    <h1>{{.name}}</h1>
    <div class="role">{{.role}}</div>
    <div class="intro">{{.intro}}</div>
  </div>
  <div class="works">
    {{range .works}}
    <div class="work">
      <div class="year">{{.year}}</div>
      <div>
        <div class="title">{{.title}}</div>
        <div class="category">{{.category}}</div>
        <div class="summary">{{.summary}}</div>
      </div>
    </div>
    {{end}}
  </div>
  <div class="contact">{{.contact}}</div>
</body>
</html>
`))
