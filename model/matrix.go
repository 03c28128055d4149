package model

import "github.com/jsphweid/grooveset/constants"

// VelocityMatrix is a piano roll: one row per midi pitch, one column per
// time step, cells hold the note velocity (0 is silence).
type VelocityMatrix [constants.NumPitches][]uint8

func NewVelocityMatrix(width int) VelocityMatrix {
	var m VelocityMatrix
	for i := range m {
		m[i] = make([]uint8, width)
	}
	return m
}

func (m VelocityMatrix) Width() int {
	return len(m[0])
}

func (m VelocityMatrix) IsSilent() bool {
	for _, row := range m {
		for _, v := range row {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// Resize truncates or zero pads every row to width columns.
func (m VelocityMatrix) Resize(width int) VelocityMatrix {
	res := NewVelocityMatrix(width)
	for i, row := range m {
		copy(res[i], row)
	}
	return res
}
