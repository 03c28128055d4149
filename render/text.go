// Package render draws velocity matrices for people: as text for the
// terminal and as PNG images.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/model"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	softStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f87af"))
	loudStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00")).Bold(true)
)

// PitchName is the scientific name of a midi pitch, middle C being C4.
func PitchName(pitch int) string {
	return fmt.Sprintf("%v%d", noteNames[pitch%12], pitch/12-1)
}

func cell(velocity uint8) rune {
	switch {
	case velocity == 0:
		return '.'
	case velocity < 43:
		return '-'
	case velocity < 86:
		return 'o'
	default:
		return '#'
	}
}

// Grid is the matrix as plain text, one line per sounding pitch from the
// highest down. Pitches that never sound are left out.
func Grid(m model.VelocityMatrix) []string {
	var res []string
	for pitch := constants.NumPitches - 1; pitch >= 0; pitch-- {
		row := m[pitch]
		if isSilent(row) {
			continue
		}
		var b strings.Builder
		for _, v := range row {
			b.WriteRune(cell(v))
		}
		res = append(res, fmt.Sprintf("%-4v %v", PitchName(pitch), b.String()))
	}
	return res
}

func isSilent(row []uint8) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

func styleRow(line string) string {
	label, body := line[:5], line[5:]
	var b strings.Builder
	b.WriteString(labelStyle.Render(label))
	for _, r := range body {
		switch r {
		case '#':
			b.WriteString(loudStyle.Render(string(r)))
		case '.':
			b.WriteRune(r)
		default:
			b.WriteString(softStyle.Render(string(r)))
		}
	}
	return b.String()
}

// Text renders the grid with a title line, coloured when the terminal
// supports it.
func Text(title string, m model.VelocityMatrix) string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render(title)}
	grid := Grid(m)
	if len(grid) == 0 {
		lines = append(lines, labelStyle.Render("(silent)"))
	}
	for _, line := range grid {
		lines = append(lines, styleRow(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
