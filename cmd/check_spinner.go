package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/reviewbot/internal/application"
	"github.com/bnema/reviewbot/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type checkFunc func(context.Context) (application.CheckReport, error)

// checkDoneMsg carries the finished single-cycle check back into the model.
type checkDoneMsg struct {
	report application.CheckReport
	err    error
}

type checkSpinnerModel struct {
	spinner spinner.Model
	since   domain.Checkpoint
	fetch   tea.Cmd
	report  application.CheckReport
	err     error
	done    bool
}

func newCheckSpinnerModel(ctx context.Context, since domain.Checkpoint, check checkFunc) checkSpinnerModel {
	return checkSpinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		since: since,
		fetch: func() tea.Msg {
			report, err := check(ctx)
			return checkDoneMsg{report: report, err: err}
		},
	}
}

func (m checkSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m checkSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case checkDoneMsg:
		m.report, m.err, m.done = msg.report, msg.err, true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m checkSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + " " + checkLabel(m.since, time.Local)
}

// checkLabel names the from_date window being fetched.
func checkLabel(since domain.Checkpoint, loc *time.Location) string {
	if since <= 0 {
		return "Fetching the whole review history..."
	}

	from := time.Unix(int64(since), 0).In(loc).Format("2006-01-02 15:04")
	return fmt.Sprintf("Fetching reviews updated since %s...", from)
}

// runCheckSpinner shows the spinner on output while check runs and returns
// its report.
func runCheckSpinner(ctx context.Context, output io.Writer, since domain.Checkpoint, check checkFunc) (application.CheckReport, error) {
	p := tea.NewProgram(
		newCheckSpinnerModel(ctx, since, check),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return application.CheckReport{}, err
	}

	m, ok := final.(checkSpinnerModel)
	if !ok {
		return application.CheckReport{}, fmt.Errorf("unexpected check model type %T", final)
	}

	return m.report, m.err
}
