// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package picker

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned by Pick when the user quits without confirming.
var ErrAborted = errors.New("selection aborted")

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#623CE4")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00a86b"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Pick lets the user toggle at least minimum of items and returns the chosen
// indices in item order.
func Pick(items []string, minimum int, opts ...tea.ProgramOption) ([]int, error) {
	p := tea.NewProgram(newModel(items, minimum), opts...)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}

	m := final.(model)
	if !m.done {
		return nil, ErrAborted
	}
	return m.selection(), nil
}

type model struct {
	items     []string
	minimum   int
	visible   []int
	cursor    int
	selected  map[int]bool
	filter    textinput.Model
	filtering bool
	done      bool
}

func newModel(items []string, minimum int) model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"

	m := model{
		items:    items,
		minimum:  minimum,
		selected: map[int]bool{},
		filter:   filter,
	}
	m.refilter()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.filter.SetValue("")
			fallthrough
		case "enter":
			m.filtering = false
			m.filter.Blur()
			m.refilter()
			return m, nil
		}

		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.refilter()
		return m, cmd
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case " ":
		if len(m.visible) > 0 {
			i := m.visible[m.cursor]
			if m.selected[i] {
				delete(m.selected, i)
			} else {
				m.selected[i] = true
			}
		}
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	case "enter":
		if len(m.selected) >= m.minimum {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Select at least %d index files (%d selected):\n", m.minimum, len(m.selected))
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "\n")
	}
	b.WriteString("\n")

	for row, i := range m.visible {
		cursor := " "
		if m.cursor == row {
			cursor = cursorStyle.Render(">")
		}
		mark := " "
		label := m.items[i]
		if m.selected[i] {
			mark = "x"
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, label)
	}

	b.WriteString("\n" + helpStyle.Render("SPACE: toggle, /: filter, ENTER: go, Q/ESCAPE: quit") + "\n")
	return b.String()
}

// refilter recomputes the visible items from the filter text and keeps the
// cursor in range.
func (m *model) refilter() {
	needle := strings.ToLower(m.filter.Value())

	visible := make([]int, 0, len(m.items))
	for i, item := range m.items {
		if needle == "" || strings.Contains(strings.ToLower(item), needle) {
			visible = append(visible, i)
		}
	}
	m.visible = visible

	m.cursor = max(0, min(m.cursor, len(m.visible)-1))
}

func (m model) selection() []int {
	var picked []int
	for i := range m.selected {
		picked = append(picked, i)
	}
	slices.Sort(picked)
	return picked
}
