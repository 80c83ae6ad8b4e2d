package docx

import (
	"context"
	"fmt"

	"github.com/flanksource/docstudio/render"
)

func init() {
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:        "proposal",
			DisplayName: "Business Proposal",
			Description: "Client proposal with scope, timeline and cost tables",
			Format:      "docx",
			Engine:      "ooxml",
			Tags:        []string{"business", "proposal"},
		},
		Fn: renderProposal,
	})
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:        "manual",
			DisplayName: "Operations Manual",
			Description: "Numbered procedure manual with warning callouts",
			Format:      "docx",
			Engine:      "ooxml",
			Tags:        []string{"manual", "operations"},
		},
		Fn: renderManual,
	})
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:        "resume",
			DisplayName: "Professional Resume",
			Description: "Single-column resume with skills and work history",
			Format:      "docx",
			Engine:      "ooxml",
			Tags:        []string{"resume", "career"},
		},
		Fn: renderResume,
	})
}

var proposalSample = render.Data{
	"title":    "Cloud Migration Proposal",
	"client":   "Northwind Trading",
	"author":   "Fieldstone Consulting",
	"date":     "2026-04-01",
	"summary":  "A phased migration of the order-management platform to managed cloud infrastructure, cutting hosting cost by 30% while improving deploy frequency.",
	"sections": []any{
		map[string]any{
			"heading": "Background",
			"body":    "The current platform runs on aging on-premise hardware approaching end of support. Peak-season load already exceeds comfortable capacity.",
		},
		map[string]any{
			"heading": "Proposed Approach",
			"body":    "We migrate service by service behind the existing load balancer, starting with stateless API workloads and finishing with the order database.",
		},
	},
	"milestones": []any{
		map[string]any{"phase": "Assessment", "deliverable": "Migration readiness report", "date": "2026-04-30"},
		map[string]any{"phase": "Pilot", "deliverable": "Two API services in production", "date": "2026-06-15"},
		map[string]any{"phase": "Cutover", "deliverable": "Full production traffic", "date": "2026-09-01"},
	},
	"costs": []any{
		map[string]any{"item": "Assessment and planning", "amount": "$18,000"},
		map[string]any{"item": "Migration engineering", "amount": "$96,000"},
		map[string]any{"item": "Cutover support", "amount": "$14,000"},
	},
	"total": "$128,000",
}

func renderProposal(_ context.Context, job render.Job) error {
	data := render.Merge(proposalSample, job.Data)

	doc := New()
	doc.Props.Title = data.String("title", "")
	doc.Props.Author = data.String("author", "")

	doc.AddHeading(data.String("title", ""), 0)
	doc.Add(Paragraph{Runs: []Run{
		{Text: "Prepared for ", Color: "718096"},
		{Text: data.String("client", ""), Bold: true, Color: "1E3A5F"},
		{Text: "  |  " + data.String("date", ""), Color: "718096"},
	}})
	doc.AddParagraph("")

	doc.AddHeading("Executive Summary", 1)
	doc.AddParagraph(data.String("summary", ""))

	for _, section := range data.Maps("sections") {
		doc.AddHeading(section.String("heading", ""), 1)
		doc.AddParagraph(section.String("body", ""))
	}

	doc.AddHeading("Milestones", 1)
	milestones := Table{Header: []string{"Phase", "Deliverable", "Target Date"}}
	for _, m := range data.Maps("milestones") {
		milestones.Rows = append(milestones.Rows, []string{
			m.String("phase", ""), m.String("deliverable", ""), m.String("date", ""),
		})
	}
	doc.AddTable(milestones)

	doc.AddHeading("Investment", 1)
	costs := Table{Header: []string{"Item", "Amount"}}
	for _, c := range data.Maps("costs") {
		costs.Rows = append(costs.Rows, []string{c.String("item", ""), c.String("amount", "")})
	}
	costs.Rows = append(costs.Rows, []string{"Total", data.String("total", "")})
	doc.AddTable(costs)

	return doc.Save(job.OutputPath)
}

var manualSample = render.Data{
	"title":    "Warehouse Receiving Manual",
	"version":  "3.2",
	"author":   "Operations Team",
	"overview": "Standard procedure for receiving, inspecting and shelving inbound stock. Applies to all receiving-dock staff.",
	"procedures": []any{
		map[string]any{
			"name": "Unloading",
			"steps": []any{
				"Verify the delivery note against the purchase order.",
				"Photograph any visible damage before unloading.",
				"Move pallets to the inspection zone within 30 minutes.",
			},
			"warning": "Never accept a shipment without a matching purchase order number.",
		},
		map[string]any{
			"name": "Inspection",
			"steps": []any{
				"Count items against the delivery note.",
				"Record discrepancies in the receiving log.",
				"Label inspected pallets with the green tag.",
			},
		},
	},
}

func renderManual(_ context.Context, job render.Job) error {
	data := render.Merge(manualSample, job.Data)

	doc := New()
	doc.Props.Title = data.String("title", "")
	doc.Props.Author = data.String("author", "")

	doc.AddHeading(data.String("title", ""), 0)
	doc.Add(Paragraph{Runs: []Run{
		{Text: "Version " + data.String("version", ""), Color: "718096"},
	}})
	doc.AddParagraph(data.String("overview", ""))

	for i, proc := range data.Maps("procedures") {
		doc.AddHeading(fmt.Sprintf("%d. %s", i+1, proc.String("name", "")), 1)
		for j, step := range proc.Strings("steps") {
			doc.Add(Paragraph{Runs: []Run{
				{Text: fmt.Sprintf("%d. ", j+1), Bold: true, Color: "1E3A5F"},
				{Text: step},
			}})
		}
		if warning := proc.String("warning", ""); warning != "" {
			doc.Add(Paragraph{Runs: []Run{
				{Text: "WARNING: ", Bold: true, Color: "C53030"},
				{Text: warning, Ital: true},
			}})
		}
	}

	return doc.Save(job.OutputPath)
}

var resumeSample = render.Data{
	"name":    "Alex Tanaka",
	"role":    "Senior Platform Engineer",
	"email":   "alex.tanaka@example.com",
	"phone":   "+81 90 0000 0000",
	"summary": "Platform engineer with nine years of experience building delivery pipelines and observability stacks for high-traffic services.",
	"skills":  []any{"Go", "Kubernetes", "Terraform", "PostgreSQL", "Grafana"},
	"experience": []any{
		map[string]any{
			"company": "Kiso Systems",
			"role":    "Senior Platform Engineer",
			"period":  "2021 - present",
			"detail":  "Led the migration of 40 services to a shared Kubernetes platform and cut median deploy time from 40 to 6 minutes.",
		},
		map[string]any{
			"company": "Harbor Analytics",
			"role":    "Site Reliability Engineer",
			"period":  "2017 - 2021",
			"detail":  "Owned the on-call rotation tooling and reduced paging volume by half through alert consolidation.",
		},
	},
	"education": []any{
		map[string]any{"school": "Tohoku University", "degree": "B.Eng. Information Science", "year": "2017"},
	},
}

func renderResume(_ context.Context, job render.Job) error {
	data := render.Merge(resumeSample, job.Data)

	doc := New()
	doc.Props.Title = data.String("name", "") + " - Resume"
	doc.Props.Author = data.String("name", "")

	doc.AddHeading(data.String("name", ""), 0)
	doc.Add(Paragraph{Runs: []Run{
		{Text: data.String("role", ""), Bold: true, Color: "2C5282"},
	}})
	doc.Add(Paragraph{Runs: []Run{
		{Text: data.String("email", "") + "  |  " + data.String("phone", ""), Color: "718096", Size: 10},
	}})

	doc.AddHeading("Summary", 1)
	doc.AddParagraph(data.String("summary", ""))

	doc.AddHeading("Skills", 1)
	skills := ""
	for i, s := range data.Strings("skills") {
		if i > 0 {
			skills += "  ·  "
		}
		skills += s
	}
	doc.AddParagraph(skills)

	doc.AddHeading("Experience", 1)
	for _, exp := range data.Maps("experience") {
		doc.Add(Paragraph{Runs: []Run{
			{Text: exp.String("role", ""), Bold: true},
			{Text: " at " + exp.String("company", "")},
			{Text: "  (" + exp.String("period", "") + ")", Color: "718096"},
		}})
		doc.AddParagraph(exp.String("detail", ""))
	}

	doc.AddHeading("Education", 1)
	for _, ed := range data.Maps("education") {
		doc.Add(Paragraph{Runs: []Run{
			{Text: ed.String("degree", ""), Bold: true},
			{Text: ", " + ed.String("school", "") + ", " + ed.String("year", "")},
		}})
	}

	return doc.Save(job.OutputPath)
}
