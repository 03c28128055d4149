package model

import "fmt"

type Kind uint8

const (
	KindUnknown Kind = iota
	KindTempo
	KindTimeSignature
	KindKeySignature
	KindTrackName
	KindEndOfTrack
	KindOtherMeta
	KindNoteOn
	KindNoteOff
	KindProgramChange
	KindControlChange
	KindOtherChannel
	KindSysEx
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindTempo:         "set_tempo",
	KindTimeSignature: "time_signature",
	KindKeySignature:  "key_signature",
	KindTrackName:     "track_name",
	KindEndOfTrack:    "end_of_track",
	KindOtherMeta:     "meta",
	KindNoteOn:        "note_on",
	KindNoteOff:       "note_off",
	KindProgramChange: "program_change",
	KindControlChange: "control_change",
	KindOtherChannel:  "channel",
	KindSysEx:         "sysex",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is one delta-timed entry of a track. Which payload fields are
// meaningful depends on Kind:
//
//	NoteOn, NoteOff:  Channel, Key (pitch), Value (velocity)
//	ProgramChange:    Channel, Value (program)
//	ControlChange:    Channel, Key (controller), Value
//	Tempo:            Tempo (microseconds per beat)
//	TimeSignature:    Numerator, Denominator
//	KeySignature:     KeySig
//	TrackName:        Text
//	OtherMeta, OtherChannel, SysEx: Raw holds the undecoded message
type Event struct {
	Delta uint32
	Kind  Kind

	Channel uint8
	Key     uint8
	Value   uint8

	Tempo       uint32
	Numerator   uint8
	Denominator uint8
	KeySig      KeySignature
	Text        string

	Raw []byte
}

func (e Event) IsMeta() bool {
	switch e.Kind {
	case KindTempo, KindTimeSignature, KindKeySignature, KindTrackName, KindEndOfTrack, KindOtherMeta:
		return true
	}
	return false
}

func (e Event) IsChannel() bool {
	switch e.Kind {
	case KindNoteOn, KindNoteOff, KindProgramChange, KindControlChange, KindOtherChannel:
		return true
	}
	return false
}

func (e Event) IsNote() bool {
	return e.Kind == KindNoteOn || e.Kind == KindNoteOff
}

// IsNoteStart is a note on that actually sounds.
func (e Event) IsNoteStart() bool {
	return e.Kind == KindNoteOn && e.Value > 0
}

// IsNoteEnd treats a zero velocity note on like a note off.
func (e Event) IsNoteEnd() bool {
	return e.Kind == KindNoteOff || (e.Kind == KindNoteOn && e.Value == 0)
}

// Copy returns an event that shares nothing with e.
func (e Event) Copy() Event {
	if e.Raw != nil {
		e.Raw = append([]byte(nil), e.Raw...)
	}
	return e
}

func (e Event) WithDelta(delta uint32) Event {
	c := e.Copy()
	c.Delta = delta
	return c
}

func (e Event) String() string {
	switch e.Kind {
	case KindNoteOn, KindNoteOff:
		return fmt.Sprintf("%v channel=%d note=%d velocity=%d time=%d", e.Kind, e.Channel, e.Key, e.Value, e.Delta)
	case KindProgramChange:
		return fmt.Sprintf("%v channel=%d program=%d time=%d", e.Kind, e.Channel, e.Value, e.Delta)
	case KindControlChange:
		return fmt.Sprintf("%v channel=%d control=%d value=%d time=%d", e.Kind, e.Channel, e.Key, e.Value, e.Delta)
	case KindTempo:
		return fmt.Sprintf("%v tempo=%d time=%d", e.Kind, e.Tempo, e.Delta)
	case KindTimeSignature:
		return fmt.Sprintf("%v numerator=%d denominator=%d time=%d", e.Kind, e.Numerator, e.Denominator, e.Delta)
	case KindKeySignature:
		return fmt.Sprintf("%v key=%v time=%d", e.Kind, e.KeySig, e.Delta)
	case KindTrackName:
		return fmt.Sprintf("%v name=%q time=%d", e.Kind, e.Text, e.Delta)
	}
	return fmt.Sprintf("%v time=%d", e.Kind, e.Delta)
}

func NoteOn(delta uint32, channel, key, velocity uint8) Event {
	return Event{Delta: delta, Kind: KindNoteOn, Channel: channel, Key: key, Value: velocity}
}

func NoteOff(delta uint32, channel, key uint8) Event {
	return Event{Delta: delta, Kind: KindNoteOff, Channel: channel, Key: key}
}

func ProgramChange(delta uint32, channel, program uint8) Event {
	return Event{Delta: delta, Kind: KindProgramChange, Channel: channel, Value: program}
}

func ControlChange(delta uint32, channel, controller, value uint8) Event {
	return Event{Delta: delta, Kind: KindControlChange, Channel: channel, Key: controller, Value: value}
}

func SetTempo(delta uint32, microsecondsPerBeat uint32) Event {
	return Event{Delta: delta, Kind: KindTempo, Tempo: microsecondsPerBeat}
}

func TimeSig(delta uint32, numerator, denominator uint8) Event {
	return Event{Delta: delta, Kind: KindTimeSignature, Numerator: numerator, Denominator: denominator}
}

func SetKey(delta uint32, key KeySignature) Event {
	return Event{Delta: delta, Kind: KindKeySignature, KeySig: key}
}

func TrackName(delta uint32, name string) Event {
	return Event{Delta: delta, Kind: KindTrackName, Text: name}
}

func EndOfTrack(delta uint32) Event {
	return Event{Delta: delta, Kind: KindEndOfTrack}
}
