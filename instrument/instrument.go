// Package instrument maps General MIDI program numbers to display names.
package instrument

import "fmt"

const Unknown = "Unknown"

var familyNames = [16]string{
	"Piano",
	"Chromatic Percussion",
	"Organ",
	"Guitar",
	"Bass",
	"Strings",
	"Ensemble",
	"Brass",
	"Reed",
	"Pipe",
	"Synth Lead",
	"Synth Pad",
	"Synth Effects",
	"Ethnic",
	"Percussive",
	"Sound Effects",
}

// Families holds the family name of every GM program, 0-indexed. GM groups
// programs in blocks of eight.
var Families = func() [128]string {
	var res [128]string
	for program := range res {
		res[program] = familyNames[program/8]
	}
	return res
}()

// Family falls back to a numbered label for programs outside the table.
func Family(program int) string {
	if program >= 0 && program < len(Families) {
		return Families[program]
	}
	return fmt.Sprintf("Program_%d", program)
}
