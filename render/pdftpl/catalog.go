package pdftpl

import (
	"html/template"

	"github.com/flanksource/docstudio/render"
	"github.com/flanksource/docstudio/render/htmlpdf"
)

func init() {
	render.Builtin.Register(htmlTemplate(render.Meta{
		Name:         "catalog",
		DisplayName:  "Product Catalog",
		Description:  "Visual-first brochure layout in black and gold, for product catalogs and service guides",
		Format:       "pdf",
		Engine:       "chromium",
		ColorSchemes: []string{"business", "formal"},
		Tags:         []string{"builtin"},
	}, catalogSample, catalogTmpl, func() htmlpdf.Engine { return HTMLEngine }))
}

var catalogSample = render.Data{
	"brand":   "AURORA",
	"title":   "Collection 2026",
	"tagline": "Crafted tools for modern teams",
	"products": []any{
		map[string]any{"name": "Aurora Desk Pro", "price": "¥128,000", "description": "Height-adjustable desk with solid oak top and cable management."},
		map[string]any{"name": "Aurora Chair S2", "price": "¥86,000", "description": "Ergonomic task chair with breathable mesh and 4D armrests."},
		map[string]any{"name": "Aurora Light Bar", "price": "¥18,500", "description": "Asymmetric monitor lamp with automatic dimming."},
		map[string]any{"name": "Aurora Dock 12", "price": "¥32,000", "description": "Twelve-port Thunderbolt dock with dual 4K output."},
	},
	"contact": "sales@aurora.example · +81-3-0000-0000",
}

var catalogTmpl = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.title}}</title>
  <style>
    @page { size: A4; margin: 0; }
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Helvetica Neue', 'Noto Sans JP', sans-serif; color: #1a1a2e; }
    .cover {
      height: 100vh;
      background: linear-gradient(160deg, #1a1a2e 0%, #16213e 100%);
      color: white;
      display: flex;
      flex-direction: column;
      justify-content: center;
      align-items: center;
      page-break-after: always;
    }
    .cover .brand {
      letter-spacing: 0.8em;
      font-size: 14pt;
      color: #c9a227;
      margin-bottom: 1cm;
    }
    .cover h1 { font-size: 40pt; font-weight: 300; margin-bottom: 0.8cm; }
    .cover .tagline { font-size: 13pt; color: #bbb; }
    .cover .rule { width: 4cm; height: 2px; background: #c9a227; margin-top: 1.2cm; }
    .products { padding: 2cm; }
    .products h2 {
      font-size: 20pt;
      font-weight: 400;
      border-bottom: 2px solid #c9a227;
      padding-bottom: 0.3cm;
      margin-bottom: 1cm;
    }
    .product {
      display: flex;
      justify-content: space-between;
      padding: 0.7cm 0;
      border-bottom: 1px solid #e5e5e5;
      page-break-inside: avoid;
    }
    .product .name { font-size: 13pt; font-weight: 600; margin-bottom: 0.2cm; }
    .product .description { font-size: 10pt; color: #555; max-width: 12cm; line-height: 1.6; }
    .product .price { font-size: 13pt; color: #c9a227; font-weight: 600; white-space: nowrap; }
    .contact {
      margin-top: 1.5cm;
      text-align: center;
      font-size: 10pt;
      color: #888;
    }
  </style>
</head>
<body>
  <div class="cover">
    <div class="brand">{{.brand}}</div>
    <h1>{{.title}}</h1>
    <div class="tagline">{{.tagline}}</div>
    <div class="rule"></div>
  </div>
  <div class="products">
    <h2>Products</h2>
    {{range .products}}
    <div class="product">
      <div>
        <div class="name">{{.name}}</div>
        <div class="description">{{.description}}</div>
      </div>
      <div class="price">{{.price}}</div>
    </div>
    {{end}}
    <div class="contact">{{.contact}}</div>
  </div>
</body>
</html>
`))
