package docx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benjaminschreck/go-stencil/pkg/stencil"
	"github.com/flanksource/docstudio/render"
)

// proposal_template is the data-driven variant of the proposal design: the
// layout lives in a Word template with stencil expressions, so every field
// and list is substituted at render time rather than assembled in code.

func init() {
	render.Builtin.Register(render.Func{
		Info: render.Meta{
			Name:        "proposal_template",
			DisplayName: "Templated Proposal",
			Description: "Proposal rendered through a Word template with variable substitution",
			Format:      "docx",
			Engine:      "stencil",
			Tags:        []string{"business", "proposal", "templated"},
		},
		Fn: renderProposalTemplate,
	})
}

var proposalTemplateSample = render.Data{
	"company_name":   "Fieldstone Consulting",
	"document_title": "Project Proposal",
	"client_name":    "Northwind Trading",
	"date":           "2026-04-01",
	"summary":        "A twelve-week engagement to replace the manual order-entry workflow with an automated pipeline, freeing two full-time staff for higher-value work.",
	"team_members": []any{
		map[string]any{"name": "Alex Tanaka", "role": "Engagement Lead"},
		map[string]any{"name": "Mina Park", "role": "Solutions Architect"},
		map[string]any{"name": "Jon Weber", "role": "Delivery Engineer"},
	},
	"milestones": []any{
		map[string]any{"phase": "Discovery", "deliverable": "Current-state workflow map", "date": "2026-04-17"},
		map[string]any{"phase": "Build", "deliverable": "Automated pipeline in staging", "date": "2026-05-29"},
		map[string]any{"phase": "Rollout", "deliverable": "Production cutover and training", "date": "2026-06-26"},
	},
	"cost_breakdown": []any{
		map[string]any{"item": "Discovery", "amount": "$12,000"},
		map[string]any{"item": "Implementation", "amount": "$54,000"},
		map[string]any{"item": "Rollout and training", "amount": "$9,000"},
	},
	"risks": []any{
		map[string]any{"risk": "Legacy API has no staging environment", "mitigation": "Record and replay production traffic against the new pipeline"},
		map[string]any{"risk": "Key stakeholder availability during rollout", "mitigation": "Agree the cutover window eight weeks in advance"},
	},
}

// proposalTemplateDocx builds the Word template the renderer substitutes
// into. Expressions use stencil syntax and stay literal until Render.
func proposalTemplateDocx() ([]byte, error) {
	doc := New()
	doc.Props.Title = "Proposal Template"

	doc.AddHeading("{{document_title}}", 0)
	doc.Add(Paragraph{Runs: []Run{
		{Text: "{{company_name}}", Bold: true, Color: "1E3A5F"},
		{Text: " prepared for ", Color: "718096"},
		{Text: "{{client_name}}", Bold: true, Color: "1E3A5F"},
		{Text: "    {{date}}", Color: "718096"},
	}})

	doc.AddHeading("Summary", 1)
	doc.AddParagraph("{{summary}}")

	doc.AddHeading("Team", 1)
	doc.AddParagraph("{{for m in team_members}}{{m.name}} ({{m.role}})   {{end}}")

	doc.AddHeading("Milestones", 1)
	doc.AddParagraph("{{for ms in milestones}}{{ms.phase}}: {{ms.deliverable}}, due {{ms.date}}. {{end}}")

	doc.AddHeading("Cost Breakdown", 1)
	doc.AddParagraph("{{for c in cost_breakdown}}{{c.item}}: {{c.amount}}. {{end}}")

	doc.AddHeading("Risks", 1)
	doc.AddParagraph("{{for r in risks}}{{r.risk}} (mitigation: {{r.mitigation}}). {{end}}")

	return doc.Bytes()
}

func renderProposalTemplate(_ context.Context, job render.Job) error {
	data := render.Merge(proposalTemplateSample, job.Data)

	tplBytes, err := proposalTemplateDocx()
	if err != nil {
		return fmt.Errorf("failed to build proposal template: %w", err)
	}
	tpl, err := stencil.Prepare(bytes.NewReader(tplBytes))
	if err != nil {
		return fmt.Errorf("failed to prepare proposal template: %w", err)
	}
	defer tpl.Close()

	rendered, err := tpl.Render(stencil.TemplateData(data))
	if err != nil {
		return fmt.Errorf("failed to render proposal template: %w", err)
	}

	if dir := filepath.Dir(job.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(job.OutputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, rendered)
	return err
}
