package model

import (
	"github.com/jsphweid/grooveset/constants"
	"github.com/pkg/errors"
)

type Track []Event

// Channels is the set of channels used by the channel events of t.
func (t Track) Channels() map[uint8]bool {
	res := make(map[uint8]bool)
	for _, evt := range t {
		if evt.IsChannel() {
			res[evt.Channel] = true
		}
	}
	return res
}

func (t Track) HasDrums() bool {
	return t.Channels()[constants.DrumChannel]
}

// TotalTicks sums every delta in the track, end of track included.
func (t Track) TotalTicks() uint64 {
	var total uint64
	for _, evt := range t {
		total += uint64(evt.Delta)
	}
	return total
}

func (t Track) MetaEvents() Track {
	res := make(Track, 0, len(t))
	for _, evt := range t {
		if evt.IsMeta() {
			res = append(res, evt.Copy())
		}
	}
	return res
}

func (t Track) Clone() Track {
	if t == nil {
		return nil
	}
	res := make(Track, len(t))
	for i, evt := range t {
		res[i] = evt.Copy()
	}
	return res
}

// Document is a parsed song. Meta is the global tempo/signature/key
// timeline (track 0 of the smf file) and Tracks are the performance tracks
// that followed it.
type Document struct {
	TicksPerBeat uint16
	// Tempo is a document wide fallback in microseconds per beat. Zero
	// means constants.DefaultTempo.
	Tempo  uint32
	Meta   Track
	Tracks []Track
}

func NewDocument(ticksPerBeat uint16, meta Track, tracks ...Track) *Document {
	return &Document{TicksPerBeat: ticksPerBeat, Meta: meta, Tracks: tracks}
}

// All is the smf view of the document: the meta track first, then every
// performance track.
func (d *Document) All() []Track {
	res := make([]Track, 0, len(d.Tracks)+1)
	res = append(res, d.Meta)
	return append(res, d.Tracks...)
}

func (d *Document) TempoOrDefault() uint32 {
	if d.Tempo == 0 {
		return constants.DefaultTempo
	}
	return d.Tempo
}

func (d *Document) Clone() *Document {
	res := &Document{
		TicksPerBeat: d.TicksPerBeat,
		Tempo:        d.Tempo,
		Meta:         d.Meta.Clone(),
	}
	for _, t := range d.Tracks {
		res.Tracks = append(res.Tracks, t.Clone())
	}
	return res
}

// Check is what every transformation runs first.
func Check(d *Document) error {
	if d == nil {
		return errors.Wrap(ErrInvalidInput, "no document")
	}
	if d.TicksPerBeat == 0 {
		return errors.Wrap(ErrInvalidInput, "document has no ticks per beat")
	}
	if d.Meta == nil && len(d.Tracks) == 0 {
		return errors.Wrap(ErrInvalidInput, "document has no tracks")
	}
	return nil
}
