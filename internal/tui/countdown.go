package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
	"github.com/cipher-shad0w/timeguardian/internal/usecase"
)

// countdownInterval is the headless polling slice: short enough that an
// early-cancel key press feels immediate.
const countdownInterval = 100 * time.Millisecond

type countdownTickMsg time.Time

// CountdownModel is the headless driver: the session is already started
// when the program runs; the model polls for expiry and an early-cancel
// key press. The caller performs the final Stop after the program exits,
// so the stop runs exactly once whether the session expired or was
// cancelled.
type CountdownModel struct {
	session      *usecase.Session
	task         string
	durationText string
	err          error
}

// NewCountdownModel creates the headless countdown over a started
// session.
func NewCountdownModel(session *usecase.Session, task, durationText string) CountdownModel {
	return CountdownModel{
		session:      session,
		task:         task,
		durationText: durationText,
	}
}

// Err returns the error from an expiry-triggered restore, if any.
func (m CountdownModel) Err() error { return m.err }

// Init schedules the first poll.
func (m CountdownModel) Init() tea.Cmd {
	return countdownTickCmd()
}

func countdownTickCmd() tea.Cmd {
	return tea.Tick(countdownInterval, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}

// Update exits on q/esc (early cancel) or once the session expires.
func (m CountdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case countdownTickMsg:
		_, err := m.session.Tick()
		if err != nil {
			m.err = err
		}
		if m.session.State() == domain.StateIdle {
			return m, tea.Quit
		}
		return m, countdownTickCmd()
	}
	return m, nil
}

// View shows the task and the remaining time.
func (m CountdownModel) View() string {
	remaining, ok := m.session.Remaining()
	if !ok {
		return "Blocking removed!\n"
	}
	return fmt.Sprintf("Blocking websites for %s for task: %s\nRemaining time: %s  (q or esc to stop early)\n",
		m.durationText, m.task, formatClock(remaining))
}
