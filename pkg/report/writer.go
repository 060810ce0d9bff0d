package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatMarkdown}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	case FormatMarkdown:
		return r.WriteMarkdown(w)
	case FormatTable, "":
		_, err := io.WriteString(w, r.RenderTable())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

func (r *Report) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return encoder.Close()
}

func (r *Report) WriteMarkdown(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# Study Plan\n\n")
	fmt.Fprintf(&sb, "- **Status:** %s\n", r.status())
	fmt.Fprintf(&sb, "- **Generated:** %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- **Terms used:** %d of %d\n", r.TermsUsed, r.Constraints.Terms)
	fmt.Fprintf(&sb, "- **Total credits:** %d\n", r.TotalCredits)
	fmt.Fprintf(&sb, "- **Credits per term:** %d to %d\n", r.Constraints.MinCredits, r.Constraints.MaxCredits)

	for _, term := range r.Terms {
		fmt.Fprintf(&sb, "\n## Term %d (%d credits)\n\n", term.Number, term.Credits)
		writeCourseTable(&sb, term.Courses)
	}

	if len(r.Unassigned) > 0 {
		sb.WriteString("\n## Unassigned\n\n")
		writeCourseTable(&sb, r.Unassigned)
	}

	writeList(&sb, "Notes", r.Notes)
	writeList(&sb, "Warnings", r.Warnings)

	if len(r.Hints) > 0 {
		sb.WriteString("\n## Suggestions\n\n")
		for _, hint := range r.Hints {
			fmt.Fprintf(&sb, "- %s (`%s` = %s)\n", hint.Message, hint.Key, hint.Value)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing Markdown report: %w", err)
	}
	return nil
}

func writeCourseTable(sb *strings.Builder, courses []Course) {
	sb.WriteString("| Course | Name | Credits |\n")
	sb.WriteString("|--------|------|--------:|\n")
	for _, c := range courses {
		fmt.Fprintf(sb, "| %s | %s | %d |\n", c.ID, escapeMarkdown(c.Name), c.Credits)
	}
}

func writeList(sb *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n\n", title)
	for _, line := range lines {
		fmt.Fprintf(sb, "- %s\n", line)
	}
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func (r *Report) status() string {
	if r.Feasible {
		return "feasible"
	}
	return "infeasible"
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
)

// RenderTable renders the report for a terminal.
func (r *Report) RenderTable() string {
	rows := make([][]string, 0)
	for _, term := range r.Terms {
		for _, c := range term.Courses {
			rows = append(rows, []string{strconv.Itoa(term.Number), c.ID, c.Name, strconv.Itoa(c.Credits)})
		}
	}
	for _, c := range r.Unassigned {
		rows = append(rows, []string{"-", c.ID, c.Name, strconv.Itoa(c.Credits)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 || col == 3 {
				return numericStyle
			}
			return cellStyle
		}).
		Headers("Term", "Course", "Name", "Credits").
		Rows(rows...)

	status := okStyle.Render("feasible")
	if !r.Feasible {
		status = failStyle.Render("infeasible")
	}

	lines := []string{
		titleStyle.Render("Study plan") + " " + status,
		t.String(),
		mutedStyle.Render(fmt.Sprintf("%d terms used of %d, %d credits total",
			r.TermsUsed, r.Constraints.Terms, r.TotalCredits)),
	}
	for _, term := range r.Terms {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("term %d: %d credits", term.Number, term.Credits)))
	}
	for _, note := range r.Notes {
		lines = append(lines, failStyle.Render("! ")+note)
	}
	for _, warning := range r.Warnings {
		lines = append(lines, warnStyle.Render("warning: ")+warning)
	}
	for _, hint := range r.Hints {
		lines = append(lines, okStyle.Render("hint: ")+fmt.Sprintf("%s (%s=%s)", hint.Message, hint.Key, hint.Value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}
