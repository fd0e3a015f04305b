// Package ui hosts the interactive Bubble Tea surfaces of the lumen CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type browserModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	width    int
}

// NewBrowserModel returns a Bubble Tea model that lets the user scroll
// through rendered module metadata.
func NewBrowserModel(title, content string) tea.Model {
	return &browserModel{
		title:   title,
		content: content,
		width:   80,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 1
		footerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browserModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := titleStyle.Render(runewidth.Truncate(m.title, m.width, "…"))
	footer := footerStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll, q quit", m.viewport.ScrollPercent()*100))
	return header + "\n" + m.viewport.View() + "\n" + footer
}
