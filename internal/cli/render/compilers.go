package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// CompilersRenderer renders compiler assignments
type CompilersRenderer struct {
	out io.Writer
}

// NewCompilersRenderer creates a new compilers renderer
func NewCompilersRenderer(out io.Writer) *CompilersRenderer {
	return &CompilersRenderer{
		out: out,
	}
}

type compilerAssignmentJSON struct {
	Source           string `json:"source"`
	Constraint       string `json:"constraint"`
	Version          string `json:"version,omitempty"`
	OptimizerEnabled bool   `json:"optimizerEnabled,omitempty"`
	OptimizerRuns    int    `json:"optimizerRuns,omitempty"`
	Overridden       bool   `json:"overridden,omitempty"`
	Error            string `json:"error,omitempty"`
}

// RenderJSON renders the assignments as JSON
func (r *CompilersRenderer) RenderJSON(result *usecase.ResolveCompilersResult) error {
	out := make([]compilerAssignmentJSON, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		item := compilerAssignmentJSON{
			Source:     a.SourcePath,
			Constraint: a.Constraint,
			Overridden: a.Overridden,
			Error:      errString(a.Error),
		}
		if a.Profile != nil {
			item.Version = a.Profile.Version
			item.OptimizerEnabled = a.Profile.OptimizerEnabled
			item.OptimizerRuns = a.Profile.OptimizerRuns
		}
		out = append(out, item)
	}
	return WriteJSON(r.out, out)
}

// RenderCompilers renders declared compilers and per-file assignments
func (r *CompilersRenderer) RenderCompilers(result *usecase.ResolveCompilersResult) error {
	section(r.out, "🔧 Declared compilers:")
	for _, c := range result.Compilers {
		fmt.Fprintf(r.out, "  %s %s\n", versionStyle.Sprint(c.String()),
			labelStyle.Sprintf("(%d files)", result.Usage[c.Version]))
	}
	fmt.Fprintln(r.out)

	if len(result.Assignments) == 0 {
		fmt.Fprintf(r.out, "No sources found in %s\n", result.SourcesDir)
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.AppendHeader(table.Row{"SOURCE", "PRAGMA", "COMPILER"})

	failed := 0
	for _, a := range result.Assignments {
		compiler := failStyle.Sprint("✗ no match")
		if a.Profile != nil {
			compiler = versionStyle.Sprint(a.Profile.Version)
			if a.Overridden {
				compiler += labelStyle.Sprint(" (override)")
			}
		} else {
			failed++
		}
		t.AppendRow(table.Row{a.SourcePath, a.Constraint, compiler})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	if failed == 0 {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("All %d sources have a compiler", len(result.Assignments))))
		return nil
	}

	for _, a := range result.Assignments {
		if a.Error != nil {
			fmt.Fprintf(r.out, "  %s %v\n", failStyle.Sprint("✗"), a.Error)
		}
	}
	fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%d of %d sources have no matching compiler", failed, len(result.Assignments))))
	return nil
}
