package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/session"
)

// Mode selects how pages are drawn.
type Mode int

const (
	ModeFlat Mode = iota
	ModeTOC
)

// Options configures the interactive model.
type Options struct {
	Mode         Mode
	MaxDisplayed int
	// OnCommit runs for every commit. A plain commit then quits; a commit
	// in a new context keeps the search open.
	OnCommit func(session.Target) error
}

type pageMsg session.Page

type commitDoneMsg struct {
	target session.Target
	err    error
}

// PageFeed returns a channel that receives completed pages, and the session
// option that feeds it. Only the newest undelivered page is kept.
func PageFeed() (chan session.Page, session.Option) {
	ch := make(chan session.Page, 1)
	return ch, session.WithOnResults(func(p session.Page) {
		for {
			select {
			case ch <- p:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
}

// Model is the bubbletea model of an interactive search.
type Model struct {
	sess   *session.Session
	pages  <-chan session.Page
	input  textinput.Model
	page   session.Page
	tree   TreeModel
	opts   Options
	width  int
	height int
	status string

	// Target is set when the user committed and the program quit.
	Target *session.Target
}

// NewModel builds the model around a session whose completed pages arrive
// on pages. initial is the page already shown on start.
func NewModel(sess *session.Session, pages <-chan session.Page, initial session.Page, opts Options) Model {
	if opts.MaxDisplayed <= 0 {
		opts.MaxDisplayed = search.DefaultMaxDisplayed
	}
	ti := textinput.New()
	ti.Placeholder = "Search... (=exact 'include ^prefix suffix$ !not a|b)"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 60
	ti.SetValue(initial.Query)

	m := Model{
		sess:  sess,
		pages: pages,
		input: ti,
		opts:  opts,
	}
	m.setPage(initial)
	return m
}

func waitForPage(pages <-chan session.Page) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-pages
		if !ok {
			return nil
		}
		return pageMsg(p)
	}
}

func (m *Model) setPage(p session.Page) {
	m.page = p
	height := m.height - 3
	if height <= 0 {
		height = 20
	}
	m.tree = NewTreeModel(p.Tree, m.width, height)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForPage(m.pages))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case pageMsg:
		m.setPage(session.Page(msg))
		m.status = ""
		return m, waitForPage(m.pages)

	case commitDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = dimStyle.Render("opened " + msg.target.URL)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tree.Width = msg.Width
		m.tree.Height = msg.Height - 3
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			t, ok := m.sess.Commit(false)
			if !ok {
				m.status = dimStyle.Render("nothing to open")
				return m, nil
			}
			m.Target = &t
			if m.opts.OnCommit != nil {
				if err := m.opts.OnCommit(t); err != nil {
					m.status = errorStyle.Render(err.Error())
					return m, nil
				}
			}
			return m, tea.Quit

		case "ctrl+o", "alt+enter":
			t, ok := m.sess.Commit(true)
			if !ok {
				m.status = dimStyle.Render("nothing to open")
				return m, nil
			}
			onCommit := m.opts.OnCommit
			return m, func() tea.Msg {
				var err error
				if onCommit != nil {
					err = onCommit(t)
				}
				return commitDoneMsg{target: t, err: err}
			}

		case "up", "down", "left", "right":
			if m.opts.Mode == ModeTOC {
				m.tree, cmd = m.tree.Update(msg)
				return m, cmd
			}
			return m, nil
		}
	}

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.sess.Input(after)
	}
	return m, cmd
}

func (m Model) View() string {
	var body string
	if m.opts.Mode == ModeTOC {
		body = m.tree.View()
	} else {
		body = RenderResults(m.page.Results, 0, m.opts.MaxDisplayed)
	}

	help := dimStyle.Render("Enter: open • Ctrl+O: open in new context • Esc: quit")
	if m.status != "" {
		help = m.status
	}
	count := dimStyle.Render(fmt.Sprintf("%d results", len(m.page.Results)))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.input.View()+"  "+count,
		body,
		help,
	)
}
