// Package pipeline turns songs into (instrument, drums) training pairs, one
// pair per melodic instrument per measure that has drums.
package pipeline

import (
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/db"
	"github.com/jsphweid/grooveset/measure"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/pianoroll"
	"github.com/jsphweid/grooveset/split"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Width      int
	SampleRate float64

	// only used by ProcessDirectory
	Recursive bool
	MaxFiles  int
	Metadata  db.MetadataSource
}

func DefaultOptions() Options {
	return Options{
		Width:      constants.DefaultRollWidth,
		SampleRate: constants.DefaultSampleRate,
	}
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = constants.DefaultRollWidth
	}
	if o.SampleRate <= 0 {
		o.SampleRate = constants.DefaultSampleRate
	}
	return o
}

type Pair struct {
	Measure    int
	Instrument string
	Input      model.VelocityMatrix
	Target     model.VelocityMatrix
}

type Roll struct {
	Name   string
	Matrix model.VelocityMatrix
}

type MeasureRolls struct {
	// Measure is 0 when the whole document was rendered.
	Measure     int
	Instruments []Roll
	// Drums is nil when nothing in the measure is on the drum channel.
	Drums *Roll
}

// RollParts splits doc and renders every part, drums included.
func RollParts(doc *model.Document, opts Options) (MeasureRolls, error) {
	opts = opts.withDefaults()
	var res MeasureRolls
	parts, err := split.ByInstrument(doc)
	if err != nil {
		return res, err
	}

	if parts.HasDrums() {
		drums, err := pianoroll.ToVelocityMatrix(parts.Drums, opts.Width, opts.SampleRate)
		if err != nil {
			return res, err
		}
		res.Drums = &Roll{Name: "Drums", Matrix: drums}
	}
	for _, inst := range parts.Instruments {
		roll, err := pianoroll.ToVelocityMatrix(inst.Document, opts.Width, opts.SampleRate)
		if err != nil {
			return res, err
		}
		res.Instruments = append(res.Instruments, Roll{Name: inst.Name, Matrix: roll})
	}
	return res, nil
}

// RollMeasure is RollParts of a single extracted measure.
func RollMeasure(doc *model.Document, measureNum int, opts Options) (MeasureRolls, error) {
	extracted, err := measure.Extract(doc, measureNum)
	if err != nil {
		return MeasureRolls{Measure: measureNum}, err
	}
	res, err := RollParts(extracted, opts)
	res.Measure = measureNum
	return res, err
}

// All lists the instruments followed by the drums, if any.
func (r MeasureRolls) All() []Roll {
	res := append([]Roll{}, r.Instruments...)
	if r.Drums != nil {
		res = append(res, *r.Drums)
	}
	return res
}

func fromMeasure(doc *model.Document, measureNum int, opts Options) ([]Pair, error) {
	rolls, err := RollMeasure(doc, measureNum, opts)
	if err != nil {
		return nil, err
	}
	if rolls.Drums == nil {
		return nil, nil
	}

	res := make([]Pair, 0, len(rolls.Instruments))
	for _, inst := range rolls.Instruments {
		res = append(res, Pair{
			Measure:    measureNum,
			Instrument: inst.Name,
			Input:      inst.Matrix,
			Target:     rolls.Drums.Matrix,
		})
	}
	return res, nil
}

// FromSong pairs every melodic instrument of every measure with the drums of
// that measure. Measures without drums are skipped, and so are measures that
// fail to render; only a document that can't be measured at all is an error.
func FromSong(doc *model.Document, opts Options) ([]Pair, error) {
	opts = opts.withDefaults()
	numMeasures, err := measure.Count(doc)
	if err != nil {
		return nil, err
	}

	var res []Pair
	for n := 1; n <= numMeasures; n++ {
		pairs, err := fromMeasure(doc, n, opts)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"measure": n,
				"error":   err,
			}).Debug("Skipping measure")
			continue
		}
		res = append(res, pairs...)
	}
	return res, nil
}
