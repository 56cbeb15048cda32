package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ogurasousui/office-rota/internal/adapters/grpc/rotarpc"
)

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	week    lipgloss.Style
	label   lipgloss.Style
	present lipgloss.Style
	remote  lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		week:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(9),
		present: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		remote:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}

// Render はスケジュールを端末向けに整形します。
func Render(m rotarpc.ScheduleMessage) string {
	return renderSchedule(m, newStyles())
}

func renderSchedule(m rotarpc.ScheduleMessage, s styles) string {
	lines := []string{
		s.title.Render("Office rota"),
		s.header.Render(fmt.Sprintf("schedule: %s  generated: %s  slots/week: %d",
			m.ID, m.GeneratedAt.Local().Format(time.DateTime), m.WorkingDaysPerWeek)),
	}

	if len(m.Weeks) == 0 {
		lines = append(lines, s.empty.Render("No weeks scheduled."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, w := range m.Weeks {
		block := lipgloss.JoinVertical(lipgloss.Left,
			s.week.Render(fmt.Sprintf("Week %d", i+1)),
			lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render("present"), s.present.Render(joinOrDash(w.Present))),
			lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render("remote"), s.remote.Render(joinOrDash(w.Remote))),
		)
		lines = append(lines, s.section.Render(block))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func joinOrDash(xs []string) string {
	if len(xs) == 0 {
		return "-"
	}
	return strings.Join(xs, ", ")
}
