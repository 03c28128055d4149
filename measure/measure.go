package measure

import (
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/model"
	"github.com/pkg/errors"
)

// Window is the tick range of one measure, sized by the first time
// signature of the meta timeline. Only the numerator counts towards the
// length, so 6/8 gives six beats.
type Window struct {
	Measure     int
	Start       uint64
	End         uint64
	Tempo       uint32
	Numerator   uint8
	Denominator uint8
}

func (w Window) TicksPerMeasure() uint64 {
	return w.End - w.Start
}

func (w Window) Contains(tick uint64) bool {
	return tick >= w.Start && tick < w.End
}

// BPM of the tempo that was in effect when the window was resolved.
func (w Window) BPM() float64 {
	tempo := w.Tempo
	if tempo == 0 {
		tempo = constants.DefaultTempo
	}
	return 60_000_000 / float64(tempo)
}

// globalTempoAndSignature looks for the first tempo and the first time
// signature of the meta timeline, stopping as soon as both turned up.
func globalTempoAndSignature(meta model.Track) (tempo uint32, num, denom uint8) {
	tempo = constants.DefaultTempo
	num, denom = constants.DefaultNumerator, constants.DefaultDenominator

	var tempoFound, sigFound bool
	for _, evt := range meta {
		switch {
		case evt.Kind == model.KindTimeSignature && !sigFound:
			if evt.Numerator > 0 {
				num, denom = evt.Numerator, evt.Denominator
			}
			sigFound = true
		case evt.Kind == model.KindTempo && !tempoFound:
			if evt.Tempo > 0 {
				tempo = evt.Tempo
			}
			tempoFound = true
		}
		if tempoFound && sigFound {
			break
		}
	}
	return tempo, num, denom
}

// WindowFor resolves the tick window of a 1-indexed measure.
func WindowFor(doc *model.Document, measureNum int) (Window, error) {
	if err := model.Check(doc); err != nil {
		return Window{}, err
	}
	if measureNum < 1 {
		return Window{}, errors.Wrapf(model.ErrInvalidInput, "measure %d, measures start at 1", measureNum)
	}

	tempo, num, denom := globalTempoAndSignature(doc.Meta)
	ticksPerMeasure := uint64(num) * uint64(doc.TicksPerBeat)
	start := uint64(measureNum-1) * ticksPerMeasure
	return Window{
		Measure:     measureNum,
		Start:       start,
		End:         start + ticksPerMeasure,
		Tempo:       tempo,
		Numerator:   num,
		Denominator: denom,
	}, nil
}

// Count is a lower bound on the number of measures in the document. It uses
// the shortest measure any time signature produces and the longest track.
func Count(doc *model.Document) (int, error) {
	if err := model.Check(doc); err != nil {
		return 0, err
	}

	var smallest uint64
	for _, evt := range doc.Meta {
		if evt.Kind != model.KindTimeSignature || evt.Numerator == 0 {
			continue
		}
		ticksPerMeasure := uint64(evt.Numerator) * uint64(doc.TicksPerBeat)
		if smallest == 0 || ticksPerMeasure < smallest {
			smallest = ticksPerMeasure
		}
	}
	if smallest == 0 {
		smallest = constants.DefaultNumerator * uint64(doc.TicksPerBeat)
	}

	var maxTicks uint64
	for _, track := range doc.All() {
		if total := track.TotalTicks(); total > maxTicks {
			maxTicks = total
		}
	}

	return int(maxTicks / smallest), nil
}
