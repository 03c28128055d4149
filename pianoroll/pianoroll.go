package pianoroll

import (
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/model"
	"github.com/pkg/errors"
)

type noteEvent struct {
	key      uint8
	velocity uint8
	delta    uint32
	isOn     bool
}

type activeNote struct {
	start    int
	velocity uint8
}

// collectNotes flattens the note events of every track, one track after the
// other, and makes sure they are either all drums or all not drums.
func collectNotes(doc *model.Document) ([]noteEvent, error) {
	var notes []noteEvent
	var sawDrums, sawMelodic bool
	for _, track := range doc.All() {
		for _, evt := range track {
			if !evt.IsNote() {
				continue
			}
			if evt.Channel == constants.DrumChannel {
				sawDrums = true
			} else {
				sawMelodic = true
			}
			if sawDrums && sawMelodic {
				return nil, errors.WithStack(model.ErrMixedContent)
			}
			notes = append(notes, noteEvent{
				key:      evt.Key,
				velocity: evt.Value,
				delta:    evt.Delta,
				isOn:     evt.Kind == model.KindNoteOn,
			})
		}
	}
	return notes, nil
}

// ToVelocityMatrix renders the notes of a single instrument (or of the drums)
// into a 128 x width piano roll sampled fs times per second.
//
// Only note events count towards time. A pitch holds at most one sounding
// note; a second note on replaces the first one, and notes that never get a
// note off are left out.
func ToVelocityMatrix(doc *model.Document, width int, fs float64) (model.VelocityMatrix, error) {
	if err := model.Check(doc); err != nil {
		return model.VelocityMatrix{}, err
	}
	if width < 0 {
		return model.VelocityMatrix{}, errors.Wrapf(model.ErrInvalidInput, "width %d", width)
	}
	if fs <= 0 {
		return model.VelocityMatrix{}, errors.Wrapf(model.ErrInvalidInput, "sample rate %v", fs)
	}

	notes, err := collectNotes(doc)
	if err != nil {
		return model.VelocityMatrix{}, err
	}

	ticksPerSecond := float64(doc.TicksPerBeat) * (1_000_000 / float64(doc.TempoOrDefault()))
	var totalTicks uint64
	for _, n := range notes {
		totalTicks += uint64(n.delta)
	}
	numSteps := int(float64(totalTicks) / ticksPerSecond * fs)
	full := model.NewVelocityMatrix(numSteps)

	var active [constants.NumPitches]*activeNote
	var absTicks uint64
	for _, n := range notes {
		absTicks += uint64(n.delta)
		step := int(float64(absTicks) / ticksPerSecond * fs)

		if int(n.key) >= constants.NumPitches {
			continue
		}
		if n.isOn && n.velocity > 0 {
			active[n.key] = &activeNote{start: step, velocity: n.velocity}
			continue
		}
		note := active[n.key]
		if note == nil {
			continue
		}
		if note.start < step {
			row := full[n.key][note.start:step]
			for i := range row {
				row[i] = note.velocity
			}
		}
		active[n.key] = nil
	}

	return full.Resize(width), nil
}
