package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/vitalcheck/internal/llm"
	"github.com/abhisek/vitalcheck/internal/patient"
)

// Report is a generated health report.
type Report struct {
	Summary string   `json:"summary"`
	Risks   []string `json:"risks"`
	Actions []string `json:"actions"`
	Model   string   `json:"-"`
}

// Text renders the report as the three numbered sections the prompt asks
// for.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("Summary\n")
	b.WriteString(r.Summary)
	writeList(&b, "Potential risks", r.Risks)
	writeList(&b, "Recommended actions", r.Actions)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n\n%s\n", title)
	if len(items) == 0 {
		b.WriteString("- none")
		return
	}
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- " + it)
	}
}

// Generator asks an LLM for a narrative report on a patient snapshot. It
// never sees or influences the rule-based diagnosis.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate returns the structured report for p.
func (g *Generator) Generate(ctx context.Context, p patient.Patient) (*Report, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.UserRequest(systemPrompt, buildUserMessage(p))
	req.Schema = Schema
	req.MaxTokens = g.cfg.MaxTokens
	req.Temperature = g.cfg.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("health report: %w", err)
	}

	var out Report
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse health report: %w", err)
	}
	out.Model = resp.Model
	return &out, nil
}

// Report returns the rendered report text, or "Error: <message>" when
// generation fails. It never returns an error so callers can show the
// result inline next to the diagnosis.
func (g *Generator) Report(ctx context.Context, p patient.Patient) string {
	r, err := g.Generate(ctx, p)
	if err != nil {
		return "Error: " + err.Error()
	}
	return r.Text()
}
