// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// ErrTooFew is returned when there are fewer than two items to pick from.
	ErrTooFew = errors.New("need at least two versions to pick from")
	// ErrAborted is returned when the picker is quit without a selection.
	ErrAborted = errors.New("selection aborted")
)

// Item is one pickable version.
type Item struct {
	Version    string
	ReleasedAt string
}

// Interactive reports whether stdin and stdout are both terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Pick lets the user mark two items and returns them in list order.
func Pick(title string, items []Item, opts ...tea.ProgramOption) ([]Item, error) {
	if len(items) < 2 {
		return nil, ErrTooFew
	}

	m, err := tea.NewProgram(newModel(title, items), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}

	picked := m.(model).result()
	if picked == nil {
		return nil, ErrAborted
	}
	return picked, nil
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Accept key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Accept, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Accept, k.Quit}}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "diff")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
)

type model struct {
	title    string
	items    []Item
	cursor   int
	selected []int
	accepted bool
	help     help.Model
}

func newModel(title string, items []Item) model {
	return model{title: title, items: items, help: help.New()}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.selected = nil
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if i := slices.Index(m.selected, m.cursor); i >= 0 {
				m.selected = slices.Delete(slices.Clone(m.selected), i, i+1)
			} else if len(m.selected) < 2 {
				m.selected = append(slices.Clone(m.selected), m.cursor)
			}
		case key.Matches(msg, keys.Accept):
			if len(m.selected) == 2 {
				m.accepted = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = cursorStyle.Render(">")
		}
		mark := " "
		if slices.Contains(m.selected, i) {
			mark = selectedStyle.Render("x")
		}
		fmt.Fprintf(&b, "%s [%s] %-8s %s\n", cursor, mark, item.Version, item.ReleasedAt)
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

// result returns the accepted items in list order, or nil.
func (m model) result() []Item {
	if !m.accepted || len(m.selected) != 2 {
		return nil
	}
	picked := slices.Sorted(slices.Values(m.selected))
	return []Item{m.items[picked[0]], m.items[picked[1]]}
}
