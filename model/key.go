package model

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// KeySignature is the payload of the smf key meta event: SharpsFlats is
// positive for sharps and negative for flats.
type KeySignature struct {
	SharpsFlats int8
	Minor       bool
}

// Tonic as a pitch class, 0 being C.
func (k KeySignature) Tonic() int {
	tonic := ((7*int(k.SharpsFlats))%12 + 12) % 12
	if k.Minor {
		tonic = (tonic + 9) % 12
	}
	return tonic
}

// String gives names like "C", "Am" or "Eb".
func (k KeySignature) String() string {
	names := sharpNames
	if k.SharpsFlats < 0 {
		names = flatNames
	}
	name := names[k.Tonic()]
	if k.Minor {
		name += "m"
	}
	return name
}
