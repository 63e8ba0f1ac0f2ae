package status

import (
	"github.com/bnema/reviewbot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	homework lipgloss.Style
	detail   lipgloss.Style
	message  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	label    lipgloss.Style
	verdicts map[domain.Verdict]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		homework: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		message:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("244")).Padding(0, 1),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		verdicts: map[domain.Verdict]lipgloss.Style{
			domain.VerdictApproved:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
			domain.VerdictReviewing: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221")),
			domain.VerdictRejected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
	}
}

func (s styles) verdict(v domain.Verdict) lipgloss.Style {
	if style, ok := s.verdicts[v]; ok {
		return style
	}

	return s.detail
}
