// Package tui implements the interactive terminal interface and the
// headless countdown. Both are bubbletea programs: a producer delivers
// key, resize and tick events to a single Update loop that owns all
// session and list state, so no locks are needed.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/usecase"
)

// tickInterval is the interactive UI refresh rate.
const tickInterval = 250 * time.Millisecond

// uiMode selects how key events are interpreted.
type uiMode int

const (
	modeNormal uiMode = iota
	modeEditing
	modeHelp
)

// uiTab is the active tab.
type uiTab int

const (
	tabLists uiTab = iota
	tabTimer
)

var tabTitles = []string{"Website Lists", "Timer"}

// editTarget records what the Editing-mode input will create.
type editTarget int

const (
	editList editTarget = iota
	editDomain
)

// timeUnit is the unit the timer tab adjusts in.
type timeUnit int

const (
	unitMinutes timeUnit = iota
	unitHours
	unitSeconds
)

func (u timeUnit) String() string {
	switch u {
	case unitHours:
		return "hours"
	case unitSeconds:
		return "seconds"
	default:
		return "minutes"
	}
}

// tickMsg is the periodic timer event.
type tickMsg time.Time

// Model is the interactive TUI state. All mutation happens inside
// Update, driven by the bubbletea event loop.
type Model struct {
	store   *usecase.ListStore
	session *usecase.Session
	logger  *zap.Logger

	mode   uiMode
	tab    uiTab
	target editTarget
	input  textinput.Model
	status string

	timeValue int
	timeUnit  timeUnit

	width  int
	height int
}

// NewModel creates the interactive model over the given store and
// session. The timer defaults to 25 minutes.
func NewModel(store *usecase.ListStore, session *usecase.Session, logger *zap.Logger) Model {
	input := textinput.New()
	input.CharLimit = 128
	return Model{
		store:     store,
		session:   session,
		logger:    logger,
		input:     input,
		status:    "Welcome to TimeGuardian! Press '?' for help.",
		timeValue: 25,
		timeUnit:  unitMinutes,
	}
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// blockDuration is the session length configured on the timer tab.
func (m Model) blockDuration() time.Duration {
	switch m.timeUnit {
	case unitHours:
		return time.Duration(m.timeValue) * time.Hour
	case unitSeconds:
		return time.Duration(m.timeValue) * time.Second
	default:
		return time.Duration(m.timeValue) * time.Minute
	}
}

// increaseTime bumps the timer value in unit-specific steps.
func (m *Model) increaseTime() {
	switch m.timeUnit {
	case unitMinutes:
		if m.timeValue < 120 {
			m.timeValue += 5
		}
	case unitHours:
		if m.timeValue < 8 {
			m.timeValue++
		}
	case unitSeconds:
		if m.timeValue < 55 {
			m.timeValue += 5
		} else {
			m.timeValue = 60
		}
	}
}

// decreaseTime lowers the timer value in unit-specific steps.
func (m *Model) decreaseTime() {
	switch m.timeUnit {
	case unitMinutes:
		if m.timeValue > 5 {
			m.timeValue -= 5
		} else {
			m.timeValue = 1
		}
	case unitHours:
		if m.timeValue > 1 {
			m.timeValue--
		}
	case unitSeconds:
		if m.timeValue > 10 {
			m.timeValue -= 5
		} else {
			m.timeValue = 5
		}
	}
}

// cycleTimeUnit rotates minutes -> hours -> seconds, resetting the value
// to the unit's default.
func (m *Model) cycleTimeUnit() {
	switch m.timeUnit {
	case unitMinutes:
		m.timeUnit = unitHours
		m.timeValue = 1
	case unitHours:
		m.timeUnit = unitSeconds
		m.timeValue = 30
	case unitSeconds:
		m.timeUnit = unitMinutes
		m.timeValue = 25
	}
}

// formatClock renders a duration as HH:MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// formatDuration renders a duration the way status messages show it,
// e.g. "1h 05m 00s", "25m 00s" or "45s".
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
