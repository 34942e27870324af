package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go2json.dev/pkg/go2json/internal/adapter"
	m "go2json.dev/pkg/go2json/internal/model"
)

// SimpleUI implements UI by writing to a cobra Command's output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	writer adapter.DocumentWriter
	mu     sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, writer adapter.DocumentWriter) *SimpleUI {
	return &SimpleUI{cmd: cmd, writer: writer}
}

// DisplayDocuments serializes the documents to standard output.
func (s *SimpleUI) DisplayDocuments(ctx context.Context, format m.Format, documents []m.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writer.Write(s.cmd.OutOrStdout(), format, documents...)
}

// DisplayTypes prints one table per source followed by its warnings.
func (s *SimpleUI) DisplayTypes(ctx context.Context, listings []m.TypeListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, listing := range listings {
		if len(listings) > 1 {
			s.printf("%s\n", listing.Source)
		}

		s.printf("%s", renderTypesTable(listing.Types))
		s.writeDiagnostics(s.cmd.OutOrStdout(), listing.Source, listing.Diagnostics)
	}

	return nil
}

func renderTypesTable(declared []m.DeclaredType) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Type", "Kind", "Base", "Constructor", "Materialized"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	materialized := 0

	for _, declaredType := range declared {
		mark := "no"
		if declaredType.HasDefaultConstructor() {
			mark = "yes"
			materialized++
		}

		table.Append([]string{
			declaredType.Name,
			string(declaredType.Kind),
			declaredType.Base,
			constructorLabel(declaredType),
			mark,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Types %d", len(declared)),
		"", "", "",
		fmt.Sprintf("%d", materialized),
	})

	table.Render()

	return tableBuffer.String()
}

func constructorLabel(declaredType m.DeclaredType) string {
	if len(declaredType.Constructors) == 0 {
		switch declaredType.Kind {
		case m.KindStruct, m.KindNamed:
			if !declaredType.Generic {
				return "zero value"
			}
		}

		return "-"
	}

	constructor, ok := declaredType.DefaultConstructor()
	if !ok {
		names := make([]string, 0, len(declaredType.Constructors))
		for _, c := range declaredType.Constructors {
			names = append(names, fmt.Sprintf("%s(%d)", c.Name, c.Params))
		}

		return strings.Join(names, ", ")
	}

	return constructor.Name + "()"
}

// DisplaySource prints a source unit as is.
func (s *SimpleUI) DisplaySource(ctx context.Context, unit m.SourceUnit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s", unit.Text)

	if !strings.HasSuffix(unit.Text, "\n") {
		s.printf("\n")
	}

	return nil
}

// DisplayDiagnostics prints styled diagnostics to standard error.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, source m.Path, diagnostics m.Diagnostics) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeDiagnostics(s.cmd.ErrOrStderr(), source, diagnostics)
}

func (s *SimpleUI) writeDiagnostics(w io.Writer, source m.Path, diagnostics m.Diagnostics) {
	if len(diagnostics) == 0 {
		return
	}

	renderer := lipgloss.NewRenderer(w)
	styles := map[m.Severity]lipgloss.Style{
		m.SeverityError:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		m.SeverityWarning: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
	position := renderer.NewStyle().Faint(true)

	for _, diagnostic := range diagnostics {
		location := diagnostic.Position.String()
		if !diagnostic.Position.IsValid() {
			location = string(source)
		}

		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			position.Render(location+":"),
			styles[diagnostic.Severity].Render(string(diagnostic.Severity)+":"),
			diagnostic.Message,
		)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
