// Package tui is a terminal viewer that pages through the measures of a song
// one part at a time.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/grooveset/measure"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/pipeline"
	"github.com/jsphweid/grooveset/render"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d75f5f"))
)

type Model struct {
	title       string
	doc         *model.Document
	opts        pipeline.Options
	numMeasures int

	measure  int
	part     int
	parts    []pipeline.Roll
	err      error
	quitting bool
}

func New(title string, doc *model.Document, opts pipeline.Options) (Model, error) {
	numMeasures, err := measure.Count(doc)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		title:       title,
		doc:         doc,
		opts:        opts,
		numMeasures: numMeasures,
		measure:     1,
	}
	m.load()
	return m, nil
}

// load renders the current measure, instruments first and drums last.
func (m *Model) load() {
	m.parts = nil
	m.err = nil
	if m.numMeasures == 0 {
		return
	}
	rolls, err := pipeline.RollMeasure(m.doc, m.measure, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.parts = rolls.All()
	if m.part >= len(m.parts) {
		m.part = len(m.parts) - 1
	}
	if m.part < 0 {
		m.part = 0
	}
}

func (m Model) Measure() int {
	return m.measure
}

// Part is the name of the part on screen, empty when there is none.
func (m Model) Part() string {
	if m.part < len(m.parts) {
		return m.parts[m.part].Name
	}
	return ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "h", "left":
			if m.measure > 1 {
				m.measure--
				m.load()
			}

		case "l", "right":
			if m.measure < m.numMeasures {
				m.measure++
				m.load()
			}

		case "k", "up":
			if m.part > 0 {
				m.part--
			}

		case "j", "down":
			if m.part < len(m.parts)-1 {
				m.part++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render(fmt.Sprintf("%v  measure %d/%d", m.title, m.measure, m.numMeasures))
	help := dimStyle.Render("h/l:measure  j/k:part  q:quit")

	var body string
	switch {
	case m.err != nil:
		body = errorStyle.Render(m.err.Error())
	case len(m.parts) == 0:
		body = dimStyle.Render("nothing to show")
	default:
		roll := m.parts[m.part]
		title := fmt.Sprintf("%v (%d/%d)", roll.Name, m.part+1, len(m.parts))
		body = render.Text(title, roll.Matrix)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", help)
}
