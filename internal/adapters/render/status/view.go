package status

import (
	"fmt"
	"time"

	"github.com/bnema/reviewbot/internal/application"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// Location formats checkpoints; nil means UTC.
	Location *time.Location
}

// Render lays out a one-shot check report for the terminal.
func Render(report application.CheckReport, opts RenderOptions) string {
	s := newStyles()
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	lines := []string{
		s.title.Render("Review Status"),
		s.header.Render(fmt.Sprintf("records: %d  since: %s", report.Records, formatCheckpoint(int64(report.From), loc))),
	}

	if !report.HasUpdate() {
		lines = append(lines, s.empty.Render("No status updates in this window."))
		lines = append(lines, checkpointLine(report, loc, s))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	submission := lipgloss.JoinVertical(lipgloss.Left,
		s.homework.Render(report.Homework),
		s.label.Render("status: ")+s.verdict(report.Status).Render(string(report.Status)),
		s.message.Render(report.Message),
	)
	lines = append(lines, s.section.Render(submission))
	if report.Notified {
		lines = append(lines, s.detail.Render("notification sent"))
	}
	lines = append(lines, checkpointLine(report, loc, s))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func checkpointLine(report application.CheckReport, loc *time.Location, s styles) string {
	return s.label.Render(fmt.Sprintf("next checkpoint: %s", formatCheckpoint(int64(report.Next), loc)))
}

func formatCheckpoint(unix int64, loc *time.Location) string {
	if unix <= 0 {
		return "beginning"
	}

	return time.Unix(unix, 0).In(loc).Format("2006-01-02 15:04:05 MST")
}
