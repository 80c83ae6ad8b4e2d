package pptx

import (
	"context"
	"strconv"

	"github.com/flanksource/docstudio/render"
)

// deck wraps a slide-building function into a registered renderer.
func deck(meta render.Meta, sample render.Data, build func(p *Presentation, data render.Data)) render.Renderer {
	return render.Func{
		Info: meta,
		Fn: func(_ context.Context, job render.Job) error {
			data := render.Merge(sample, job.Data)
			p := New()
			p.Title = data.String("title", meta.DisplayName)
			p.Author = data.String("author", "Doc Studio")
			build(p, data)
			return p.Save(job.OutputPath)
		},
	}
}

var deckSample = render.Data{
	"title":    "Quarterly Business Review",
	"subtitle": "FY2026 Q2 Results and Outlook",
	"author":   "Strategy Office",
	"date":     "2026-07-15",
	"sections": []any{
		map[string]any{
			"heading": "Highlights",
			"bullets": []any{
				"Revenue up 14% year over year",
				"Two new enterprise accounts signed",
				"Churn held under 2% for the third straight quarter",
			},
		},
		map[string]any{
			"heading": "Challenges",
			"bullets": []any{
				"Hiring pipeline behind plan in engineering",
				"Support backlog grew 18% during the feature launch",
			},
		},
		map[string]any{
			"heading": "Next Quarter",
			"bullets": []any{
				"Launch the partner integration program",
				"Close the APAC reseller agreement",
				"Cut support backlog back to one-week turnaround",
			},
		},
	},
	"closing": "Thank you",
	"kpis": []any{
		map[string]any{"label": "Revenue", "value": "$4.2M"},
		map[string]any{"label": "Growth", "value": "+14%"},
		map[string]any{"label": "NPS", "value": "62"},
		map[string]any{"label": "Churn", "value": "1.8%"},
	},
}

func bulletParas(bullets []string, color string, size float64) []TextPara {
	paras := make([]TextPara, 0, len(bullets))
	for _, b := range bullets {
		paras = append(paras, TextPara{
			Bullet: true,
			Runs:   []TextRun{{Text: b, Size: size, Color: color}},
		})
	}
	return paras
}

func init() {
	render.Builtin.Register(deck(render.Meta{
		Name:         "business_modern",
		DisplayName:  "Modern Business Deck",
		Description:  "Navy and gold deck with side accent bars",
		Format:       "pptx",
		Engine:       "ooxml",
		ColorSchemes: []string{"business"},
		Tags:         []string{"business", "review"},
	}, deckSample, buildBusinessModern))

	render.Builtin.Register(deck(render.Meta{
		Name:         "creative_gradient",
		DisplayName:  "Creative Gradient Deck",
		Description:  "Vivid gradient backgrounds with bold white type",
		Format:       "pptx",
		Engine:       "ooxml",
		ColorSchemes: []string{"creative"},
		Tags:         []string{"creative", "pitch"},
	}, deckSample, buildCreativeGradient))

	render.Builtin.Register(deck(render.Meta{
		Name:         "technical_dark",
		DisplayName:  "Technical Dark Deck",
		Description:  "Dark slides with cyan accents and monospace headings",
		Format:       "pptx",
		Engine:       "ooxml",
		ColorSchemes: []string{"dark"},
		Tags:         []string{"technical", "engineering"},
	}, deckSample, buildTechnicalDark))

	render.Builtin.Register(deck(render.Meta{
		Name:         "minimalist",
		DisplayName:  "Minimalist Deck",
		Description:  "Monochrome slides with thin rules and generous whitespace",
		Format:       "pptx",
		Engine:       "ooxml",
		ColorSchemes: []string{"minimal"},
		Tags:         []string{"minimal"},
	}, deckSample, buildMinimalist))

	render.Builtin.Register(deck(render.Meta{
		Name:         "corporate_formal",
		DisplayName:  "Formal Corporate Deck",
		Description:  "Conservative serif deck for board-level material",
		Format:       "pptx",
		Engine:       "ooxml",
		ColorSchemes: []string{"formal"},
		Tags:         []string{"corporate", "board"},
	}, deckSample, buildCorporateFormal))

	render.Builtin.Register(deck(render.Meta{
		Name:         "advanced_business",
		DisplayName:  "Advanced Business Deck",
		Description:  "Business deck with KPI summary and agenda slides",
		Format:       "pptx",
		Engine:       "ooxml",
		ColorSchemes: []string{"business"},
		Tags:         []string{"business", "kpi"},
	}, deckSample, buildAdvancedBusiness))
}

const (
	navy  = "1E3A5F"
	gold  = "D69E2E"
	slate = "4A5568"
	gray  = "A0AEC0"
)

func buildBusinessModern(p *Presentation, data render.Data) {
	buildBusinessModernTitle(p, data)

	for _, section := range data.Maps("sections") {
		s := p.AddSlide()
		s.Background = Fill{Color: "FFFFFF"}
		s.AddRect(Rect{X: 0, Y: 0, W: SlideWidth, H: Inches(1.1), Fill: Fill{Color: navy}})
		s.AddRect(Rect{X: 0, Y: Inches(1.1), W: SlideWidth, H: Inches(0.06), Fill: Fill{Color: gold}})
		s.AddText(TextBox{
			X: Inches(0.7), Y: 0, W: Inches(11), H: Inches(1.1), Anchor: "ctr",
			Paras: []TextPara{{Runs: []TextRun{{Text: section.String("heading", ""), Size: 26, Bold: true, Color: "FFFFFF"}}}},
		})
		s.AddText(TextBox{
			X: Inches(1), Y: Inches(1.7), W: Inches(11), H: Inches(4.8),
			Paras: bulletParas(section.Strings("bullets"), slate, 18),
		})
	}

	closing := p.AddSlide()
	closing.Background = Fill{Color: navy}
	closing.AddRect(Rect{X: Inches(5.4), Y: Inches(4.1), W: Inches(2.5), H: Inches(0.05), Fill: Fill{Color: gold}})
	closing.AddText(TextBox{
		X: 0, Y: Inches(2.8), W: SlideWidth, H: Inches(1.2), Anchor: "ctr",
		Paras: []TextPara{{Align: "ctr", Runs: []TextRun{{Text: data.String("closing", "Thank you"), Size: 36, Bold: true, Color: "FFFFFF"}}}},
	})
}

func buildCreativeGradient(p *Presentation, data render.Data) {
	grad := Fill{Color: "7C3AED", GradTo: "EC4899", GradAngle: 45}

	title := p.AddSlide()
	title.Background = grad
	title.AddText(TextBox{
		X: Inches(0.9), Y: Inches(2.3), W: Inches(11.5), H: Inches(1.8), Anchor: "b",
		Paras: []TextPara{{Runs: []TextRun{{Text: data.String("title", ""), Size: 44, Bold: true, Color: "FFFFFF"}}}},
	})
	title.Text(Inches(0.9), Inches(4.2), Inches(11), Inches(0.8),
		TextRun{Text: data.String("subtitle", ""), Size: 20, Color: "FDE68A"})

	for _, section := range data.Maps("sections") {
		s := p.AddSlide()
		s.Background = Fill{Color: "FFFFFF"}
		s.AddRect(Rect{X: 0, Y: 0, W: Inches(4.2), H: SlideHeight, Fill: grad})
		s.AddText(TextBox{
			X: Inches(0.4), Y: Inches(0.8), W: Inches(3.5), H: Inches(3),
			Paras: []TextPara{{Runs: []TextRun{{Text: section.String("heading", ""), Size: 28, Bold: true, Color: "FFFFFF"}}}},
		})
		s.AddText(TextBox{
			X: Inches(4.8), Y: Inches(1), W: Inches(7.6), H: Inches(5),
			Paras: bulletParas(section.Strings("bullets"), "374151", 18),
		})
	}

	closing := p.AddSlide()
	closing.Background = grad
	closing.AddText(TextBox{
		X: 0, Y: Inches(2.9), W: SlideWidth, H: Inches(1.2), Anchor: "ctr",
		Paras: []TextPara{{Align: "ctr", Runs: []TextRun{{Text: data.String("closing", "Thank you"), Size: 40, Bold: true, Color: "FFFFFF"}}}},
	})
}

func buildTechnicalDark(p *Presentation, data render.Data) {
	const bg = "0F172A"
	const cyan = "22D3EE"
	const dim = "94A3B8"
	const mono = "Consolas"

	title := p.AddSlide()
	title.Background = Fill{Color: bg}
	title.Text(Inches(0.9), Inches(1.9), Inches(11), Inches(0.5),
		TextRun{Text: "$ " + data.String("date", ""), Size: 14, Color: cyan, Font: mono})
	title.AddText(TextBox{
		X: Inches(0.9), Y: Inches(2.5), W: Inches(11.5), H: Inches(1.5),
		Paras: []TextPara{{Runs: []TextRun{{Text: data.String("title", ""), Size: 38, Bold: true, Color: "F8FAFC", Font: mono}}}},
	})
	title.Text(Inches(0.9), Inches(4.1), Inches(11), Inches(0.7),
		TextRun{Text: data.String("subtitle", ""), Size: 18, Color: dim})

	for _, section := range data.Maps("sections") {
		s := p.AddSlide()
		s.Background = Fill{Color: bg}
		s.AddRect(Rect{X: Inches(0.9), Y: Inches(1.35), W: Inches(2.2), H: Inches(0.04), Fill: Fill{Color: cyan}})
		s.AddText(TextBox{
			X: Inches(0.9), Y: Inches(0.6), W: Inches(11), H: Inches(0.8),
			Paras: []TextPara{{Runs: []TextRun{
				{Text: "## ", Size: 24, Bold: true, Color: cyan, Font: mono},
				{Text: section.String("heading", ""), Size: 24, Bold: true, Color: "F8FAFC", Font: mono},
			}}},
		})
		s.AddText(TextBox{
			X: Inches(1.1), Y: Inches(1.8), W: Inches(10.8), H: Inches(4.6),
			Paras: bulletParas(section.Strings("bullets"), dim, 17),
		})
	}

	closing := p.AddSlide()
	closing.Background = Fill{Color: bg}
	closing.AddText(TextBox{
		X: 0, Y: Inches(2.9), W: SlideWidth, H: Inches(1), Anchor: "ctr",
		Paras: []TextPara{{Align: "ctr", Runs: []TextRun{
			{Text: data.String("closing", "EOF"), Size: 30, Bold: true, Color: cyan, Font: mono},
		}}},
	})
}

func buildMinimalist(p *Presentation, data render.Data) {
	const ink = "111111"
	const rule = "DDDDDD"

	title := p.AddSlide()
	title.Background = Fill{Color: "FFFFFF"}
	title.AddText(TextBox{
		X: Inches(1.4), Y: Inches(2.5), W: Inches(10.5), H: Inches(1.2),
		Paras: []TextPara{{Runs: []TextRun{{Text: data.String("title", ""), Size: 34, Color: ink}}}},
	})
	title.AddRect(Rect{X: Inches(1.4), Y: Inches(3.8), W: Inches(3), H: Inches(0.02), Fill: Fill{Color: ink}})
	title.Text(Inches(1.4), Inches(4), Inches(10), Inches(0.6),
		TextRun{Text: data.String("subtitle", ""), Size: 15, Color: "888888"})

	for _, section := range data.Maps("sections") {
		s := p.AddSlide()
		s.Background = Fill{Color: "FFFFFF"}
		s.Text(Inches(1.4), Inches(0.9), Inches(10), Inches(0.7),
			TextRun{Text: section.String("heading", ""), Size: 22, Color: ink})
		s.AddRect(Rect{X: Inches(1.4), Y: Inches(1.7), W: Inches(10.4), H: Inches(0.015), Fill: Fill{Color: rule}})
		s.AddText(TextBox{
			X: Inches(1.4), Y: Inches(2.1), W: Inches(10.4), H: Inches(4.4),
			Paras: bulletParas(section.Strings("bullets"), "444444", 16),
		})
	}

	closing := p.AddSlide()
	closing.Background = Fill{Color: "FFFFFF"}
	closing.AddText(TextBox{
		X: 0, Y: Inches(3.1), W: SlideWidth, H: Inches(0.8), Anchor: "ctr",
		Paras: []TextPara{{Align: "ctr", Runs: []TextRun{{Text: data.String("closing", "Thank you"), Size: 22, Color: ink}}}},
	})
}

func buildCorporateFormal(p *Presentation, data render.Data) {
	const deep = "14304D"
	const serif = "Georgia"

	title := p.AddSlide()
	title.Background = Fill{Color: "FFFFFF"}
	title.AddRect(Rect{X: 0, Y: Inches(2), W: SlideWidth, H: Inches(2.2), Fill: Fill{Color: deep}})
	title.AddText(TextBox{
		X: Inches(1), Y: Inches(2), W: Inches(11.3), H: Inches(2.2), Anchor: "ctr",
		Paras: []TextPara{
			{Align: "ctr", Runs: []TextRun{{Text: data.String("title", ""), Size: 34, Bold: true, Color: "FFFFFF", Font: serif}}},
			{Align: "ctr", Runs: []TextRun{{Text: data.String("subtitle", ""), Size: 16, Color: "C8D3DE", Font: serif}}},
		},
	})
	title.AddText(TextBox{
		X: 0, Y: Inches(6.3), W: SlideWidth, H: Inches(0.5),
		Paras: []TextPara{{Align: "ctr", Runs: []TextRun{
			{Text: data.String("author", "") + "  |  " + data.String("date", ""), Size: 11, Color: "7A8A99", Font: serif},
		}}},
	})

	for i, section := range data.Maps("sections") {
		s := p.AddSlide()
		s.Background = Fill{Color: "FFFFFF"}
		s.Text(Inches(0.9), Inches(0.7), Inches(11), Inches(0.8),
			TextRun{Text: section.String("heading", ""), Size: 24, Bold: true, Color: deep, Font: serif})
		s.AddRect(Rect{X: Inches(0.9), Y: Inches(1.5), W: Inches(11.5), H: Inches(0.025), Fill: Fill{Color: deep}})
		s.AddText(TextBox{
			X: Inches(1.1), Y: Inches(1.9), W: Inches(10.9), H: Inches(4.3),
			Paras: bulletParas(section.Strings("bullets"), "2D3748", 17),
		})
		s.Text(Inches(11.6), Inches(6.6), Inches(0.8), Inches(0.4),
			TextRun{Text: strconv.Itoa(i + 2), Size: 10, Color: "7A8A99", Font: serif})
	}

	closing := p.AddSlide()
	closing.Background = Fill{Color: deep}
	closing.AddText(TextBox{
		X: 0, Y: Inches(3), W: SlideWidth, H: Inches(1), Anchor: "ctr",
		Paras: []TextPara{{Align: "ctr", Runs: []TextRun{{Text: data.String("closing", "Thank you"), Size: 28, Color: "FFFFFF", Font: serif}}}},
	})
}

func buildAdvancedBusiness(p *Presentation, data render.Data) {
	buildBusinessModernTitle(p, data)

	// agenda
	agenda := p.AddSlide()
	agenda.Background = Fill{Color: "FFFFFF"}
	agenda.AddRect(Rect{X: 0, Y: 0, W: SlideWidth, H: Inches(1.1), Fill: Fill{Color: navy}})
	agenda.AddText(TextBox{
		X: Inches(0.7), Y: 0, W: Inches(11), H: Inches(1.1), Anchor: "ctr",
		Paras: []TextPara{{Runs: []TextRun{{Text: "Agenda", Size: 26, Bold: true, Color: "FFFFFF"}}}},
	})
	sections := data.Maps("sections")
	var agendaParas []TextPara
	for i, section := range sections {
		agendaParas = append(agendaParas, TextPara{Runs: []TextRun{
			{Text: strconv.Itoa(i+1) + "  ", Size: 20, Bold: true, Color: gold},
			{Text: section.String("heading", ""), Size: 20, Color: slate},
		}})
	}
	agenda.AddText(TextBox{X: Inches(1.2), Y: Inches(1.8), W: Inches(10), H: Inches(4.5), Paras: agendaParas})

	// KPI summary
	kpis := data.Maps("kpis")
	if len(kpis) > 0 {
		s := p.AddSlide()
		s.Background = Fill{Color: "FFFFFF"}
		s.AddRect(Rect{X: 0, Y: 0, W: SlideWidth, H: Inches(1.1), Fill: Fill{Color: navy}})
		s.AddText(TextBox{
			X: Inches(0.7), Y: 0, W: Inches(11), H: Inches(1.1), Anchor: "ctr",
			Paras: []TextPara{{Runs: []TextRun{{Text: "Key Metrics", Size: 26, Bold: true, Color: "FFFFFF"}}}},
		})
		boxW := Inches(2.7)
		gap := (SlideWidth - int64(len(kpis))*boxW) / int64(len(kpis)+1)
		for i, kpi := range kpis {
			x := gap + int64(i)*(boxW+gap)
			s.AddRect(Rect{X: x, Y: Inches(2.2), W: boxW, H: Inches(2), Fill: Fill{Color: "F7FAFC"}})
			s.AddRect(Rect{X: x, Y: Inches(2.2), W: boxW, H: Inches(0.08), Fill: Fill{Color: gold}})
			s.AddText(TextBox{
				X: x, Y: Inches(2.5), W: boxW, H: Inches(1.6), Anchor: "ctr",
				Paras: []TextPara{
					{Align: "ctr", Runs: []TextRun{{Text: kpi.String("value", ""), Size: 28, Bold: true, Color: navy}}},
					{Align: "ctr", Runs: []TextRun{{Text: kpi.String("label", ""), Size: 13, Color: slate}}},
				},
			})
		}
	}

	for _, section := range sections {
		s := p.AddSlide()
		s.Background = Fill{Color: "FFFFFF"}
		s.AddRect(Rect{X: 0, Y: 0, W: SlideWidth, H: Inches(1.1), Fill: Fill{Color: navy}})
		s.AddRect(Rect{X: 0, Y: Inches(1.1), W: SlideWidth, H: Inches(0.06), Fill: Fill{Color: gold}})
		s.AddText(TextBox{
			X: Inches(0.7), Y: 0, W: Inches(11), H: Inches(1.1), Anchor: "ctr",
			Paras: []TextPara{{Runs: []TextRun{{Text: section.String("heading", ""), Size: 26, Bold: true, Color: "FFFFFF"}}}},
		})
		s.AddText(TextBox{
			X: Inches(1), Y: Inches(1.7), W: Inches(11), H: Inches(4.8),
			Paras: bulletParas(section.Strings("bullets"), slate, 18),
		})
	}

	closing := p.AddSlide()
	closing.Background = Fill{Color: navy}
	closing.AddText(TextBox{
		X: 0, Y: Inches(2.8), W: SlideWidth, H: Inches(1.2), Anchor: "ctr",
		Paras: []TextPara{{Align: "ctr", Runs: []TextRun{{Text: data.String("closing", "Thank you"), Size: 36, Bold: true, Color: "FFFFFF"}}}},
	})
}

func buildBusinessModernTitle(p *Presentation, data render.Data) {
	title := p.AddSlide()
	title.Background = Fill{Color: "FFFFFF"}
	title.AddRect(Rect{X: 0, Y: 0, W: Inches(0.35), H: SlideHeight, Fill: Fill{Color: navy}})
	title.AddRect(Rect{X: Inches(0.35), Y: 0, W: Inches(0.1), H: SlideHeight, Fill: Fill{Color: gold}})
	title.AddText(TextBox{
		X: Inches(1.2), Y: Inches(2.2), W: Inches(10.5), H: Inches(1.6), Anchor: "b",
		Paras: []TextPara{{Runs: []TextRun{{Text: data.String("title", ""), Size: 40, Bold: true, Color: navy}}}},
	})
	title.AddText(TextBox{
		X: Inches(1.2), Y: Inches(3.9), W: Inches(10.5), H: Inches(0.8),
		Paras: []TextPara{{Runs: []TextRun{{Text: data.String("subtitle", ""), Size: 20, Color: slate}}}},
	})
	title.Text(Inches(1.2), Inches(6.2), Inches(8), Inches(0.5),
		TextRun{Text: data.String("author", "") + "    " + data.String("date", ""), Size: 12, Color: gray})
}

