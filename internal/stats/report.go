package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/verte-zerg/textcalc/internal/model"
)

const (
	basicHeading    = "📊 Basic Statistics:"
	detailedHeading = "🔍 Detailed Analysis:"
	indent          = "   "
	rowIndent       = "     "
)

// Style controls how report headings are rendered.
type Style struct {
	heading lipgloss.Style
	label   lipgloss.Style
}

// NewStyle builds report styles for w. When color is false the styles render
// plain text.
func NewStyle(w io.Writer, color bool) Style {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return Style{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A")),
		label:   r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
}

// Render prints the analysis report.
func Render(w io.Writer, result model.AnalysisResult, style Style) error {
	if _, err := fmt.Fprintln(w, style.heading.Render(basicHeading)); err != nil {
		return err
	}
	basic := []struct {
		label string
		value int
	}{
		{"Words", result.Words},
		{"Characters", result.Chars},
		{"Characters (no spaces)", result.CharsNoSpaces},
		{"Sentences", result.Sentences},
		{"Paragraphs", result.Paragraphs},
	}
	for _, line := range basic {
		if _, err := fmt.Fprintf(w, "%s%s %d\n", indent, style.label.Render(line.label+":"), line.value); err != nil {
			return err
		}
	}
	if result.Detailed == nil {
		return nil
	}
	return renderDetailed(w, result.Detailed, style)
}

func renderDetailed(w io.Writer, d *model.DetailedStats, style Style) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", style.heading.Render(detailedHeading)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s %d\n", indent, style.label.Render("Unique words:"), d.UniqueWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s %.2f\n", indent, style.label.Render("Average word length:"), d.AverageWordLength); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, style.label.Render("Most common words:")); err != nil {
		return err
	}
	rows := make([][]string, 0, len(d.TopWords))
	for _, wc := range d.TopWords {
		rows = append(rows, []string{
			fmt.Sprintf("'%s':", wc.Word),
			fmt.Sprintf("%d times", wc.Count),
		})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintf(w, "%s%s\n", rowIndent, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s%s %s\n", indent, style.label.Render("Estimated reading time:"), formatReadingTime(d.ReadingTime))
	return err
}

func formatReadingTime(rt model.ReadingTime) string {
	if rt.UnderMinute {
		return fmt.Sprintf("%d seconds", rt.Seconds)
	}
	return fmt.Sprintf("%.1f minutes", rt.Minutes)
}

// RenderJSON writes the analysis result as indented JSON.
func RenderJSON(w io.Writer, result model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	return nil
}
