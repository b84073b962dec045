// Package report prints module selection reports and script evaluations.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/ui/output"
	"go.trai.ch/kindle/internal/ui/style"
)

// Printer renders reports to a writer. Colors are only used when the writer
// is a terminal.
type Printer struct {
	w io.Writer

	module   lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	problem  lipgloss.Style
	notice   lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	if output.IsTerminal(w) {
		r.SetColorProfile(output.ColorProfile())
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:        w,
		module:   style.Module.Renderer(r),
		active:   style.Active.Renderer(r),
		inactive: style.Inactive.Renderer(r),
		problem:  style.Problem.Renderer(r),
		notice:   style.Notice.Renderer(r),
	}
}

// Modules prints one block per module report.
func (p *Printer) Modules(reports []domain.ModuleReport) error {
	var b strings.Builder
	for _, r := range reports {
		status := string(r.Status)
		if r.Changed {
			status += ", changed"
		}
		fmt.Fprintf(&b, "%s %s\n", p.module.Render(r.Module), p.inactive.Render("("+status+")"))

		if len(r.ActiveProfiles) == 0 && r.Status != domain.VertexStatusSkipped {
			fmt.Fprintf(&b, "  %s\n", p.inactive.Render(style.Circle+" no active profiles"))
		}
		for _, id := range r.ActiveProfiles {
			fmt.Fprintf(&b, "  %s\n", p.active.Render(style.Dot+" "+id))
		}
		p.problems(&b, r.Problems)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Evaluation prints the outcome of a single script evaluation.
func (p *Printer) Evaluation(e Evaluation) error {
	var b strings.Builder
	if e.Active {
		fmt.Fprintf(&b, "%s\n", p.active.Render(style.Check+" active"))
	} else {
		fmt.Fprintf(&b, "%s\n", p.inactive.Render(style.Cross+" inactive"))
	}
	if len(e.Dependencies) > 0 {
		fmt.Fprintln(&b, "depends on:")
		for _, dep := range e.Dependencies {
			fmt.Fprintf(&b, "  %s\n", p.inactive.Render(style.Circle+" "+dep.String()))
		}
	}
	p.problems(&b, e.Problems)
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) problems(b *strings.Builder, problems []domain.Problem) {
	for _, pr := range problems {
		if pr.Severity == domain.SeverityWarning {
			fmt.Fprintf(b, "  %s\n", p.notice.Render(style.Warning+" "+pr.String()))
			continue
		}
		fmt.Fprintf(b, "  %s\n", p.problem.Render(style.Cross+" "+pr.String()))
	}
}

// Evaluation is the printable outcome of evaluating one script.
type Evaluation struct {
	Script       string
	Module       string
	Active       bool
	Dependencies []domain.Dependency
	Problems     []domain.Problem
}

type evaluationJSON struct {
	Script       string           `json:"script"`
	Module       string           `json:"module,omitzero"`
	Active       bool             `json:"active"`
	Dependencies []string         `json:"dependencies"`
	Problems     []domain.Problem `json:"problems,omitempty"`
}

// WriteJSON writes v as indented JSON. Evaluations are flattened so that
// dependencies render as text.
func WriteJSON(w io.Writer, v any) error {
	if e, ok := v.(Evaluation); ok {
		deps := make([]string, len(e.Dependencies))
		for i, d := range e.Dependencies {
			deps[i] = d.String()
		}
		v = evaluationJSON{
			Script:       e.Script,
			Module:       e.Module,
			Active:       e.Active,
			Dependencies: deps,
			Problems:     e.Problems,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
