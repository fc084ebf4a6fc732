package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7D56F4"))

	blockingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F7DC6F")).
			Padding(1, 2)
)

// View renders the full interface: title, tabs, the active tab's
// content, and the status bar. Help mode overlays the content area.
func (m Model) View() string {
	var b strings.Builder

	title := titleStyle.Render("TimeGuardian") +
		subtitleStyle.Render(" - Block distractions, stay focused")
	b.WriteString(title + "\n")
	b.WriteString(m.renderTabs() + "\n\n")

	switch {
	case m.mode == modeHelp:
		b.WriteString(m.renderHelp())
	case m.tab == tabLists:
		b.WriteString(m.renderListsTab())
	default:
		b.WriteString(m.renderTimerTab())
	}
	b.WriteString("\n")

	if m.mode == modeEditing {
		b.WriteString(inputStyle.Render(m.input.View()) + "\n")
	}

	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func (m Model) renderTabs() string {
	rendered := make([]string, len(tabTitles))
	for i, t := range tabTitles {
		if uiTab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(t)
		} else {
			rendered[i] = inactiveTabStyle.Render(t)
		}
	}
	return strings.Join(rendered, " ")
}

func (m Model) renderListsTab() string {
	selectedList, listOK := m.store.SelectedList()
	selectedDomain, domainOK := m.store.SelectedDomain()

	var lists strings.Builder
	lists.WriteString("Lists\n")
	if len(m.store.Lists()) == 0 {
		lists.WriteString("  (none - press n to create)\n")
	}
	for i, list := range m.store.Lists() {
		line := fmt.Sprintf("  %s (%d)", list.Name, len(list.Domains))
		if listOK && i == selectedList {
			line = selectedItemStyle.Render("> " + list.Name + fmt.Sprintf(" (%d)", len(list.Domains)))
		}
		lists.WriteString(line + "\n")
	}

	var domains strings.Builder
	domains.WriteString("Websites\n")
	if list, ok := m.store.CurrentList(); ok {
		if len(list.Domains) == 0 {
			domains.WriteString("  (empty - press a to add)\n")
		}
		for i, d := range list.Domains {
			line := "  " + d
			if domainOK && i == selectedDomain {
				line = selectedItemStyle.Render("> " + d)
			}
			domains.WriteString(line + "\n")
		}
	} else {
		domains.WriteString("  (select a list)\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(lists.String()),
		paneStyle.Render(domains.String()))
}

func (m Model) renderTimerTab() string {
	var b strings.Builder

	if m.session.State() == domain.StateBlocking {
		info := m.session.Info()
		remaining, _ := m.session.Remaining()
		b.WriteString(blockingStyle.Render("BLOCKING") + "\n\n")
		b.WriteString("Task:      " + info.Task + "\n")
		b.WriteString("Remaining: " + formatClock(remaining) + "\n\n")
		b.WriteString(subtitleStyle.Render("esc stop early"))
	} else {
		b.WriteString("No active session\n\n")
		b.WriteString(fmt.Sprintf("Duration:  %d %s\n\n", m.timeValue, m.timeUnit))
		b.WriteString(subtitleStyle.Render("up/down adjust · t change unit · enter start"))
	}

	return paneStyle.Render(b.String())
}

func (m Model) renderHelp() string {
	help := strings.Join([]string{
		"Keys",
		"",
		"q          quit",
		"?          toggle this help",
		"tab        switch tabs",
		"",
		"Website Lists tab:",
		"up/down    navigate",
		"left/right switch between lists and websites",
		"n          new list",
		"a          add website to selected list",
		"d          delete selected website",
		"D          delete selected list",
		"",
		"Timer tab:",
		"up/down    adjust duration",
		"t          cycle time unit",
		"enter      start blocking",
		"esc        stop blocking",
	}, "\n")
	return helpStyle.Render(help)
}
