package timer

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/momentum/internal/session"
)

// handleSession records the outcome of a store read or transition.
func (t *Timer) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	t.loaded = true

	if errors.Is(msg.err, session.ErrNotFound) {
		t.sess = nil
		t.ended = true
		return t, tea.Quit
	}

	if msg.err != nil {
		slog.Error("timer: session update failed", slog.Any("error", msg.err))

		t.err = msg.err

		return t, tea.Quit
	}

	t.sess = msg.sess

	if t.sess.Status.Terminal() {
		t.ended = true
		return t, tea.Quit
	}

	return t, nil
}

func (t *Timer) handleTick() (tea.Model, tea.Cmd) {
	t.ticks++

	if t.ticks%refreshEvery == 0 {
		return t, tea.Batch(t.fetch(), tick())
	}

	return t, tick()
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return t, tea.Quit
	case t.sess == nil:
		return t, nil
	case key.Matches(msg, defaultKeymap.togglePlay):
		if t.sess.Status == session.Paused {
			return t, t.apply(t.svc.Resume)
		}

		return t, t.apply(t.svc.Pause)
	case key.Matches(msg, defaultKeymap.complete):
		return t, t.apply(t.svc.Complete)
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return t.handleTick()
	case sessionMsg:
		return t.handleSession(msg)
	case tea.KeyMsg:
		return t.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		t.progress.Width = min(msg.Width-4, maxBarWidth)
		return t, nil
	}

	return t, nil
}
