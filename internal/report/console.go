package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pgload/pkg/pgload"
)

var (
	colorSuccess = lipgloss.Color("34")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("240")
)

type styles struct {
	lookup   lipgloss.Style
	loaded   lipgloss.Style
	missing  lipgloss.Style
	failed   lipgloss.Style
	summary  lipgloss.Style
	headline lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		lookup:   lipgloss.NewStyle().Foreground(colorMuted),
		loaded:   lipgloss.NewStyle().Foreground(colorSuccess),
		missing:  lipgloss.NewStyle().Foreground(colorWarning),
		failed:   lipgloss.NewStyle().Foreground(colorError),
		summary:  lipgloss.NewStyle(),
		headline: lipgloss.NewStyle().Bold(true),
	}
}

// ConsoleReporter prints one status line per event to an io.Writer.
type ConsoleReporter struct {
	out    io.Writer
	styles styles
}

// NewConsoleReporter creates a reporter writing to w. With color false the
// lines are written without ANSI styling.
func NewConsoleReporter(w io.Writer, color bool) *ConsoleReporter {
	return &ConsoleReporter{out: w, styles: newStyles(color)}
}

func (r *ConsoleReporter) FileLookup(_ int, _ pgload.Mapping, path string) {
	r.println(r.styles.lookup, LookupLine(path))
}

func (r *ConsoleReporter) FileDone(_ int, result pgload.FileResult) {
	r.println(r.styleFor(result.Status), ResultLine(result))
}

func (r *ConsoleReporter) RunComplete(rep *pgload.Report) {
	for _, res := range rep.Results {
		if res.Status == pgload.StatusRolledBack {
			r.println(r.styles.failed, RolledBackLine(res))
		}
	}
	for i, line := range SummaryLines(rep) {
		if i == 0 {
			r.println(r.styles.headline, line)
			continue
		}
		r.println(r.styles.summary, line)
	}
}

func (r *ConsoleReporter) styleFor(status pgload.LoadStatus) lipgloss.Style {
	switch status {
	case pgload.StatusLoaded:
		return r.styles.loaded
	case pgload.StatusFileMissing:
		return r.styles.missing
	default:
		return r.styles.failed
	}
}

func (r *ConsoleReporter) println(style lipgloss.Style, line string) {
	fmt.Fprintln(r.out, style.Render(line))
}

var _ pgload.Reporter = (*ConsoleReporter)(nil)
