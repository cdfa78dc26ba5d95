package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Hide):
			m.hideChecked = !m.hideChecked
			if n := len(m.visible()); m.cursor >= n && n > 0 {
				m.cursor = n - 1
			}

		case key.Matches(msg, m.keys.Toggle):
			visible := m.visible()
			if m.cursor >= len(visible) {
				break
			}
			item := visible[m.cursor]
			m.manager.ToggleShopItem(item.Key)
			if _, done := m.checked[item.Key]; done {
				delete(m.checked, item.Key)
			} else {
				m.checked[item.Key] = struct{}{}
			}
			if m.hideChecked {
				if n := len(m.visible()); m.cursor >= n && n > 0 {
					m.cursor = n - 1
				}
			}
		}
	}

	return m, nil
}
