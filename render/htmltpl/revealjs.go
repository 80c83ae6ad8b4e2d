// Package htmltpl renders the self-contained HTML presentation design.
package htmltpl

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/flanksource/docstudio/render"
)

func init() {
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:        "revealjs_presentation",
			DisplayName: "Reveal.js Presentation",
			Description: "Browser slideshow built on reveal.js, one section per slide",
			Format:      "html",
			Engine:      "revealjs",
			Tags:        []string{"presentation", "web"},
		},
		Fn: renderRevealJS,
	})
}

var revealSample = render.Data{
	"title":    "Engineering All Hands",
	"subtitle": "August 2026",
	"author":   "Platform Team",
	"theme":    "black",
	"sections": []any{
		map[string]any{
			"heading": "Shipped This Month",
			"bullets": []any{
				"Zero-downtime schema migrations",
				"Request tracing across all services",
			},
		},
		map[string]any{
			"heading": "Coming Up",
			"bullets": []any{
				"Multi-region failover drill",
				"On-call rotation changes from September",
			},
		},
	},
}

// schemeThemes maps the toolkit color schemes onto reveal.js stock themes.
var schemeThemes = map[string]string{
	"business": "white",
	"creative": "sky",
	"dark":     "night",
	"minimal":  "simple",
	"formal":   "serif",
}

var revealTmpl = template.Must(template.New("revealjs").Parse(`<!DOCTYPE html>
<html lang="{{.lang}}">
<head>
<meta charset="utf-8">
<title>{{.title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/reveal.js@5/dist/reveal.css">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/reveal.js@5/dist/theme/{{.theme}}.css">
</head>
<body>
<div class="reveal">
<div class="slides">
<section>
<h1>{{.title}}</h1>
<p>{{.subtitle}}</p>
<p><small>{{.author}}</small></p>
</section>
{{- range .sections}}
<section>
<h2>{{.heading}}</h2>
<ul>
{{- range .bullets}}
<li>{{.}}</li>
{{- end}}
</ul>
</section>
{{- end}}
</div>
</div>
<script src="https://cdn.jsdelivr.net/npm/reveal.js@5/dist/reveal.js"></script>
<script>Reveal.initialize({hash: true});</script>
</body>
</html>
`))

func renderRevealJS(_ context.Context, job render.Job) error {
	data := render.Merge(revealSample, job.Data)
	if _, overridden := job.Data["theme"]; !overridden {
		if theme, ok := schemeThemes[job.ColorScheme]; ok {
			data["theme"] = theme
		}
	}
	if data.String("theme", "") == "" {
		data["theme"] = "black"
	}
	data["lang"] = "en"
	if job.Language != "" {
		data["lang"] = job.Language
	}

	var buf bytes.Buffer
	if err := revealTmpl.Execute(&buf, map[string]any(data)); err != nil {
		return fmt.Errorf("revealjs template: %w", err)
	}
	if dir := filepath.Dir(job.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(job.OutputPath, buf.Bytes(), 0o644)
}
