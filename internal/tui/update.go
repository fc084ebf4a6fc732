package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

// Update advances the model for one event. Key events are interpreted
// according to the current mode and tab; tick events drive the session
// countdown.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		switch m.mode {
		case modeEditing:
			return m.handleEditingKey(msg)
		case modeHelp:
			return m.handleHelpKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

// handleTick runs the session countdown. Expiry transitions the session
// to idle inside Tick, so the status update happens exactly once.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	expired, err := m.session.Tick()
	if err != nil {
		m.status = "Error stopping website blocking: " + err.Error()
	} else if expired {
		m.status = "Session complete! Website blocking stopped."
		m.logInfo("session expired")
	}
	return m, tickCmd()
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "tab":
		m.tab = (m.tab + 1) % uiTab(len(tabTitles))
		return m, nil
	case "shift+tab":
		if m.tab == 0 {
			m.tab = uiTab(len(tabTitles) - 1)
		} else {
			m.tab--
		}
		return m, nil
	}

	if m.tab == tabLists {
		return m.handleListsKey(msg)
	}
	return m.handleTimerKey(msg)
}

func (m Model) handleListsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left":
		m.store.LeaveDomains()
	case "right":
		m.store.EnterDomains()
	case "up":
		if _, ok := m.store.SelectedDomain(); ok {
			m.store.PrevDomain()
		} else {
			m.store.PrevList()
		}
	case "down":
		if _, ok := m.store.SelectedDomain(); ok {
			m.store.NextDomain()
		} else {
			m.store.NextList()
		}
	case "n":
		m.target = editList
		m.input.Placeholder = "New List Name"
		m.input.SetValue("")
		m.input.Focus()
		m.mode = modeEditing
	case "a":
		if _, ok := m.store.SelectedList(); ok {
			m.target = editDomain
			m.input.Placeholder = "New Website URL"
			m.input.SetValue("")
			m.input.Focus()
			m.mode = modeEditing
		} else {
			m.status = "Please select a list first"
		}
	case "d":
		listIdx, listOK := m.store.SelectedList()
		domainIdx, domainOK := m.store.SelectedDomain()
		if listOK && domainOK && m.store.DeleteDomain(listIdx, domainIdx) {
			m.status = "Website removed"
		}
	case "D":
		if idx, ok := m.store.SelectedList(); ok && m.store.DeleteList(idx) {
			m.status = "List removed"
		}
	}
	return m, nil
}

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.increaseTime()
	case "down":
		m.decreaseTime()
	case "t":
		m.cycleTimeUnit()
	case "enter":
		return m.startSession()
	case "esc":
		if m.session.State() == domain.StateBlocking {
			if err := m.session.Stop(); err != nil {
				m.status = "Error stopping website blocking: " + err.Error()
			} else {
				m.status = "Website blocking stopped"
			}
		}
	}
	return m, nil
}

// startSession begins blocking with the selected list. Start while a
// session is already active is ignored here; the state machine has no
// re-entrant transition.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	if m.session.State() == domain.StateBlocking {
		return m, nil
	}
	list, ok := m.store.CurrentList()
	if !ok {
		m.status = "Please select a list first"
		return m, nil
	}
	domains := m.store.SelectedDomains()
	if len(domains) == 0 {
		m.status = "Selected list has no websites to block"
		return m, nil
	}

	duration := m.blockDuration()
	if err := m.session.Start(duration, domains, list.Name); err != nil {
		m.status = "Error blocking websites: " + err.Error()
		m.logWarn("session start failed", zap.Error(err))
		return m, nil
	}
	m.status = "Blocking websites for " + formatDuration(duration)
	return m, nil
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		if value == "" {
			return m, nil
		}
		m.status = m.commitInput(value)
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitInput applies the Editing-mode input. Rejections are validation
// outcomes reported as status text, never errors.
func (m *Model) commitInput(value string) string {
	switch m.target {
	case editDomain:
		idx, ok := m.store.SelectedList()
		if !ok {
			return "Please select a list first"
		}
		if !m.store.AddDomain(idx, value) {
			return "Website is empty or already in the list"
		}
		return "Website added successfully"
	default:
		if !m.store.AddList(value) {
			return "List name is empty or already exists"
		}
		return "List added successfully"
	}
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = modeNormal
	}
	return m, nil
}

func (m Model) logInfo(msg string, fields ...zap.Field) {
	if m.logger != nil {
		m.logger.Info(msg, fields...)
	}
}

func (m Model) logWarn(msg string, fields ...zap.Field) {
	if m.logger != nil {
		m.logger.Warn(msg, fields...)
	}
}
