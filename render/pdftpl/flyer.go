package pdftpl

import (
	"html/template"

	"github.com/flanksource/docstudio/render"
	"github.com/flanksource/docstudio/render/htmlpdf"
)

func init() {
	render.Builtin.Register(htmlTemplate(render.Meta{
		Name:         "flyer",
		DisplayName:  "Event Flyer",
		Description:  "Single-page vivid flyer for event announcements and promotions",
		Format:       "pdf",
		Engine:       "chromium",
		ColorSchemes: []string{"creative"},
		Tags:         []string{"builtin"},
	}, flyerSample, flyerTmpl, func() htmlpdf.Engine { return HTMLEngine }))
}

var flyerSample = render.Data{
	"kicker":   "TECH MEETUP · VOL. 12",
	"title":    "Ship Docs Like Code",
	"subtitle": "An evening on document automation, template pipelines and AI-assisted writing",
	"date":     "Friday, May 15 2026 · 19:00",
	"venue":    "Shibuya Garden Hall, Tokyo",
	"items": []any{
		map[string]any{"time": "19:00", "what": "Doors open, drinks"},
		map[string]any{"time": "19:30", "what": "Talks: template engines in production"},
		map[string]any{"time": "20:30", "what": "Lightning round"},
		map[string]any{"time": "21:00", "what": "Networking"},
	},
	"cta": "Free admission — register at meetup.example/vol12",
}

var flyerTmpl = template.Must(template.New("flyer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.title}}</title>
  <style>
    @page { size: A4; margin: 0; }
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      font-family: 'Helvetica Neue', 'Noto Sans JP', sans-serif;
      height: 100vh;
      background: linear-gradient(160deg, #667eea 0%, #764ba2 55%, #ff6b6b 100%);
      color: white;
      display: flex;
      flex-direction: column;
      justify-content: space-between;
      padding: 2cm;
    }
    .kicker {
      font-size: 11pt;
      letter-spacing: 0.4em;
      color: #ffd93d;
      font-weight: 700;
    }
    h1 { font-size: 48pt; font-weight: 900; line-height: 1.1; margin: 0.8cm 0 0.5cm; }
    .subtitle { font-size: 14pt; opacity: 0.9; max-width: 14cm; line-height: 1.6; }
    .when { margin-top: 1.2cm; font-size: 14pt; font-weight: 700; }
    .venue { font-size: 11pt; opacity: 0.85; }
    .schedule {
      background: rgba(255,255,255,0.12);
      border-radius: 14px;
      padding: 0.8cm;
      backdrop-filter: blur(4px);
    }
    .item { display: flex; padding: 0.22cm 0; font-size: 11.5pt; }
    .item .time { width: 2.4cm; font-weight: 700; color: #ffd93d; }
    .cta {
      text-align: center;
      font-size: 13pt;
      font-weight: 700;
      background: #ffd93d;
      color: #2d3436;
      border-radius: 999px;
      padding: 0.45cm;
    }
  </style>
</head>
<body>
  <div>
    <div class="kicker">{{.kicker}}</div>
    <h1>{{.title}}</h1>
    <div class="subtitle">{{.subtitle}}</div>
    <div class="when">{{.date}}</div>
    <div class="venue">{{.venue}}</div>
  </div>
  <div class="schedule">
    {{range .items}}<div class="item"><div class="time">{{.time}}</div><div>{{.what}}</div></div>
    {{end}}
  </div>
  <div class="cta">{{.cta}}</div>
</body>
</html>
`))
