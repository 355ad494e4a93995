package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/ui"
)

const noSessionsMsg = "No sessions found for the specified time range"

func statusText(s session.Status) string {
	switch s {
	case session.Completed:
		return ui.Green("completed")
	case session.Cancelled:
		return ui.Red("cancelled")
	case session.Paused:
		return ui.Magenta("paused")
	}

	return ui.Cyan("active")
}

// sessionRows builds the table body for sessions, header first.
func sessionRows(sessions []session.Session, timeFormat string) [][]string {
	layout := "Jan 02, 2006 " + timeFormat

	rows := make([][]string, 0, len(sessions)+1)
	rows = append(rows, []string{"#", "START DATE", "END DATE", "LENGTH", "TASK", "STATUS"})

	for i := range sessions {
		sess := &sessions[i]

		endDate := ""
		if sess.CompletedAt != nil {
			endDate = sess.CompletedAt.Local().Format(layout)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			sess.StartedAt.Local().Format(layout),
			endDate,
			(time.Duration(sess.DurationMinutes) * time.Minute).String(),
			sess.Task,
			statusText(sess.Status),
		})
	}

	return rows
}

// PrintSessions writes a table of sessions.
func PrintSessions(w io.Writer, sessions []session.Session, timeFormat string) {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	ui.PrintTable(sessionRows(sessions, timeFormat), w)
}
