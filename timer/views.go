package timer

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/momentum/internal/session"
)

// Style holds the lipgloss styles used by the timer views.
type Style struct {
	Base          lipgloss.Style
	Main          lipgloss.Style
	Secondary     lipgloss.Style
	Hint          lipgloss.Style
	Active        lipgloss.Style
	Paused        lipgloss.Style
	gradientStart string
	gradientEnd   string
}

func defaultStyle(dark bool) Style {
	s := Style{
		Base:          lipgloss.NewStyle().Padding(1, 2),
		Main:          lipgloss.NewStyle().Bold(true),
		Secondary:     lipgloss.NewStyle().Foreground(lipgloss.Color("#909090")),
		Hint:          lipgloss.NewStyle().Faint(true),
		Active:        lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("#2e7d32")).Foreground(lipgloss.Color("#ffffff")),
		Paused:        lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("#f9a825")).Foreground(lipgloss.Color("#000000")),
		gradientStart: "#216e39",
		gradientEnd:   "#9be9a8",
	}

	if dark {
		s.Secondary = s.Secondary.Foreground(lipgloss.Color("#c0c0c0"))
		s.gradientStart = "#0e4429"
		s.gradientEnd = "#39d353"
	}

	return s
}

func (t *Timer) statusView() string {
	var s strings.Builder

	if t.sess.Status == session.Paused {
		s.WriteString(t.style.Paused.Render("PAUSED"))
	} else {
		s.WriteString(t.style.Active.Render("FOCUS"))
	}

	if t.sess.Task != "" {
		s.WriteString(" " + t.style.Secondary.Render(t.sess.Task))
	}

	remaining := t.remaining()

	switch {
	case t.sess.Status == session.Paused:
		s.WriteString(" " + t.style.Hint.Render("[Paused]"))
	case remaining > 0:
		end := t.svc.Now().Add(time.Duration(remaining) * time.Second)
		s.WriteString(" " + t.style.Hint.Render("until "+end.Local().Format(t.timeFormat)))
	default:
		s.WriteString(" " + t.style.Hint.Render("overtime"))
	}

	return s.String()
}

func (t *Timer) timerView() string {
	var s strings.Builder

	s.WriteString(t.statusView())
	s.WriteString("\n\n")
	s.WriteString(t.style.Main.Render(session.FormatRemaining(t.remaining())))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(t.elapsedFraction()))
	s.WriteString("\n\n")
	s.WriteString(t.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.complete,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (t *Timer) View() string {
	switch {
	case t.err != nil:
		return ""
	case !t.loaded:
		return t.style.Base.Render(t.style.Hint.Render("Loading session..."))
	case t.ended && t.sess != nil && t.sess.Status == session.Completed:
		return t.style.Base.Render(t.style.Main.Render("Focus session complete. Nice work!"))
	case t.ended && t.sess != nil:
		return t.style.Base.Render(t.style.Secondary.Render("Focus session cancelled"))
	case t.sess == nil:
		return t.style.Base.Render(t.style.Secondary.Render("No focus session in progress"))
	}

	return t.style.Base.Render(t.timerView())
}
