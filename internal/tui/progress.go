package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pgload/internal/report"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// FileLookupMsg is sent when the loader starts on a mapping entry.
type FileLookupMsg struct {
	Index   int
	Mapping pgload.Mapping
	Path    string
}

// FileDoneMsg carries the outcome of one file.
type FileDoneMsg struct {
	Index  int
	Result pgload.FileResult
}

// RunCompleteMsg carries the final report after the transaction finished.
type RunCompleteMsg struct {
	Report *pgload.Report
}

// LoadFinishedMsg is sent once Load has returned. It ends the program.
type LoadFinishedMsg struct {
	Err error
}

// ProgressModel shows finished files above a spinner for the file in flight.
type ProgressModel struct {
	total   int
	index   int
	current string

	lines   []string
	spinner spinner.Model
	keys    KeyMap

	cancel     context.CancelFunc
	cancelling bool
	finished   bool
}

// NewProgressModel creates a model for a run over total mappings. cancel is
// invoked when the user presses the cancel key.
func NewProgressModel(total int, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		total:   total,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle)),
		keys:    DefaultKeyMap(),
		cancel:  cancel,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) && !m.cancelling && !m.finished {
			m.cancelling = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case FileLookupMsg:
		m.index = msg.Index
		m.current = msg.Mapping.String()
		return m, nil

	case FileDoneMsg:
		m.lines = append(m.lines, resultLine(msg.Result))
		m.current = ""
		return m, nil

	case RunCompleteMsg:
		for _, res := range msg.Report.Results {
			if res.Status == pgload.StatusRolledBack {
				m.lines = append(m.lines, FailedStyle.Render(SymbolCross+" "+report.RolledBackLine(res)))
			}
		}
		m.lines = append(m.lines, "")
		m.lines = append(m.lines, report.SummaryLines(msg.Report)...)
		return m, nil

	case LoadFinishedMsg:
		m.finished = true
		if msg.Err != nil {
			m.lines = append(m.lines, FailedStyle.Render(SymbolCross+" "+report.Truncate(msg.Err.Error(), pgload.MaxErrorPreviewLength)))
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.finished {
		return b.String()
	}

	if m.current != "" {
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(),
			CurrentStyle.Render(fmt.Sprintf("[%d/%d] %s", m.index+1, m.total, m.current)))
	} else {
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), "Working...")
	}

	if m.cancelling {
		b.WriteString(HelpStyle.Render("Cancelling, rolling back..."))
	} else {
		b.WriteString(HelpStyle.Render(m.keys.HelpText()))
	}
	b.WriteString("\n")
	return b.String()
}

func resultLine(r pgload.FileResult) string {
	var style lipgloss.Style
	var symbol string
	switch r.Status {
	case pgload.StatusLoaded:
		style, symbol = LoadedStyle, SymbolCheck
	case pgload.StatusFileMissing:
		style, symbol = MissingStyle, SymbolSkip
	default:
		style, symbol = FailedStyle, SymbolCross
	}
	return style.Render(symbol + " " + report.ResultLine(r))
}

// ProgramReporter forwards loader events to a running bubbletea program.
type ProgramReporter struct {
	send func(tea.Msg)
}

func NewProgramReporter(p *tea.Program) *ProgramReporter {
	return &ProgramReporter{send: p.Send}
}

func (r *ProgramReporter) FileLookup(index int, m pgload.Mapping, path string) {
	r.send(FileLookupMsg{Index: index, Mapping: m, Path: path})
}

func (r *ProgramReporter) FileDone(index int, result pgload.FileResult) {
	r.send(FileDoneMsg{Index: index, Result: result})
}

func (r *ProgramReporter) RunComplete(rep *pgload.Report) {
	r.send(RunCompleteMsg{Report: rep})
}

var _ pgload.Reporter = (*ProgramReporter)(nil)

// LoadFunc runs a load, sending progress to reporter.
type LoadFunc func(ctx context.Context, reporter pgload.Reporter) (*pgload.Report, error)

// RunWithProgress runs load in a goroutine while the progress view owns the
// terminal. Cancelling from the view cancels the context passed to load, and
// RunWithProgress still waits for load to return so the transaction is rolled
// back before the caller continues.
func RunWithProgress(ctx context.Context, total int, load LoadFunc, opts ...tea.ProgramOption) (*pgload.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(total, cancel), opts...)

	var (
		rep     *pgload.Report
		loadErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		rep, loadErr = load(ctx, NewProgramReporter(p))
		p.Send(LoadFinishedMsg{Err: loadErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		if loadErr != nil {
			return rep, loadErr
		}
		return rep, fmt.Errorf("progress view: %w", err)
	}

	<-done
	return rep, loadErr
}
