package pdftpl

import (
	"html/template"

	"github.com/flanksource/docstudio/render"
	"github.com/flanksource/docstudio/render/htmlpdf"
)

func init() {
	render.Builtin.Register(htmlTemplate(render.Meta{
		Name:         "infographic",
		DisplayName:  "Infographic Report",
		Description:  "Data-visualisation heavy layout in vivid gradient colors, for statistics and annual reports",
		Format:       "pdf",
		Engine:       "chromium",
		ColorSchemes: []string{"creative"},
		Tags:         []string{"builtin"},
	}, infographicSample, infographicTmpl, func() htmlpdf.Engine { return HTMLEngine }))
}

var infographicSample = render.Data{
	"title":    "2026 Developer Survey",
	"subtitle": "Highlights from 12,000 responses",
	"kpis": []any{
		map[string]any{"value": "12,408", "label": "Responses"},
		map[string]any{"value": "94", "label": "Countries"},
		map[string]any{"value": "68%", "label": "Use AI tooling daily"},
		map[string]any{"value": "4.2y", "label": "Median tenure"},
	},
	"bars": []any{
		map[string]any{"label": "Go", "percent": 64},
		map[string]any{"label": "TypeScript", "percent": 58},
		map[string]any{"label": "Python", "percent": 55},
		map[string]any{"label": "Rust", "percent": 31},
		map[string]any{"label": "Kotlin", "percent": 19},
	},
	"facts": []any{
		map[string]any{"heading": "Remote stays", "body": "71% of respondents work remote at least three days a week, unchanged from last year."},
		map[string]any{"heading": "Smaller teams", "body": "Median team size dropped from 8 to 6 as AI tooling absorbs routine work."},
		map[string]any{"heading": "Docs pay off", "body": "Teams with generated documentation report 40% faster onboarding."},
	},
}

var infographicTmpl = template.Must(template.New("infographic").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.title}}</title>
  <style>
    @page { size: A4; margin: 0; }
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Helvetica Neue', 'Noto Sans JP', sans-serif; background: #f8f9fa; color: #2d3436; }
    .hero {
      background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
      color: white;
      padding: 2cm;
      text-align: center;
    }
    .hero h1 { font-size: 30pt; font-weight: 800; margin-bottom: 0.3cm; }
    .hero .subtitle { font-size: 12pt; opacity: 0.85; }
    .kpis {
      display: grid;
      grid-template-columns: repeat(4, 1fr);
      gap: 0.5cm;
      padding: 1cm 1.5cm;
    }
    .kpi {
      background: white;
      border-radius: 12px;
      padding: 0.7cm 0.4cm;
      text-align: center;
      box-shadow: 0 2px 8px rgba(0,0,0,0.08);
    }
    .kpi .value { font-size: 20pt; font-weight: 800; color: #667eea; }
    .kpi .label { font-size: 8.5pt; color: #777; margin-top: 0.15cm; }
    .panel {
      background: white;
      border-radius: 12px;
      margin: 0 1.5cm 0.8cm;
      padding: 0.9cm;
      box-shadow: 0 2px 8px rgba(0,0,0,0.08);
      page-break-inside: avoid;
    }
    .panel h2 { font-size: 13pt; margin-bottom: 0.5cm; color: #2d3436; }
    .bar-row { display: flex; align-items: center; margin-bottom: 0.35cm; }
    .bar-label { width: 3cm; font-size: 9.5pt; }
    .bar-track { flex: 1; background: #f0f0f0; border-radius: 6px; height: 0.5cm; overflow: hidden; }
    .bar-fill {
      height: 100%;
      background: linear-gradient(90deg, #667eea, #764ba2);
      border-radius: 6px;
    }
    .bar-value { width: 1.4cm; text-align: right; font-size: 9.5pt; font-weight: 700; color: #667eea; }
    .fact { margin-bottom: 0.5cm; }
    .fact .heading { font-weight: 700; font-size: 10.5pt; color: #764ba2; }
    .fact .body { font-size: 9.5pt; color: #555; line-height: 1.6; }
  </style>
</head>
<body>
  <div class="hero">
    <h1>{{.title}}</h1>
    <div class="subtitle">{{.subtitle}}</div>
  </div>
  <div class="kpis">
    {{range .kpis}}
    <div class="kpi"><div class="value">{{.value}}</div><div class="label">{{.label}}</div></div>
    {{end}}
  </div>
  <div class="panel">
    <h2>Top languages</h2>
    {{range .bars}}
    <div class="bar-row">
      <div class="bar-label">{{.label}}</div>
      <div class="bar-track"><div class="bar-fill" style="width: {{.percent}}%"></div></div>
      <div class="bar-value">{{.percent}}%</div>
    </div>
    {{end}}
  </div>
  <div class="panel">
    <h2>Key findings</h2>
    {{range .facts}}
    <div class="fact"><div class="heading">{{.heading}}</div><div class="body">{{.body}}</div></div>
    {{end}}
  </div>
</body>
</html>
`))
