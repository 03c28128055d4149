package split

import (
	"fmt"
	"strings"

	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/instrument"
	"github.com/jsphweid/grooveset/model"
)

type Instrument struct {
	// Name is the GM family name, suffixed with _1, _2... when more than one
	// track resolves to the same family.
	Name     string
	Document *model.Document
}

// Filename is what the split command saves the instrument as.
func (i Instrument) Filename() string {
	return strings.ReplaceAll(i.Name, " ", "_") + ".mid"
}

type Result struct {
	Instruments []Instrument
	// Drums merges the percussion of every drum track, nil if the input had
	// none.
	Drums *model.Document
}

// Documents is the list form of the result: every instrument in order
// followed by one last slot for the drums, which is nil when there were no
// drums.
func (r Result) Documents() []*model.Document {
	res := make([]*model.Document, 0, len(r.Instruments)+1)
	for _, inst := range r.Instruments {
		res = append(res, inst.Document)
	}
	return append(res, r.Drums)
}

func (r Result) HasDrums() bool {
	return r.Drums != nil
}

// role is what a performance track turns into: either percussion, or a
// melodic instrument with a name.
type role struct {
	percussion bool
	name       string
}

func classify(track model.Track) role {
	if track.HasDrums() {
		return role{percussion: true}
	}
	for _, evt := range track {
		if evt.Kind == model.KindProgramChange {
			return role{name: instrument.Family(int(evt.Value))}
		}
	}
	return role{name: instrument.Unknown}
}

// drumKit accumulates channel 9 events across tracks, in track order and
// with their original deltas.
type drumKit struct {
	track model.Track
	found bool
}

func (k drumKit) add(track model.Track) drumKit {
	for _, evt := range track {
		if evt.IsChannel() && evt.Channel == constants.DrumChannel {
			k.track = append(k.track, evt.Copy())
			k.found = true
		}
	}
	return k
}

func twoTrackDocument(doc *model.Document, meta, track model.Track) *model.Document {
	return &model.Document{
		TicksPerBeat: doc.TicksPerBeat,
		Tempo:        doc.Tempo,
		Meta:         meta,
		Tracks:       []model.Track{track},
	}
}

// ByInstrument splits a document into one document per melodic track and
// one document holding all percussion. A track that plays anything on the
// drum channel counts as a drum track as a whole, so whatever else it plays
// on other channels is dropped.
func ByInstrument(doc *model.Document) (Result, error) {
	if err := model.Check(doc); err != nil {
		return Result{}, err
	}

	var res Result
	var kit drumKit
	instrumentCounts := make(map[string]int)

	for _, track := range doc.Tracks {
		r := classify(track)
		if r.percussion {
			kit = kit.add(track)
			continue
		}

		count := instrumentCounts[r.name]
		instrumentCounts[r.name] = count + 1
		name := r.name
		if count > 0 {
			name = fmt.Sprintf("%v_%d", r.name, count)
		}

		res.Instruments = append(res.Instruments, Instrument{
			Name:     name,
			Document: twoTrackDocument(doc, doc.Meta.MetaEvents(), track.Clone()),
		})
	}

	if kit.found {
		res.Drums = twoTrackDocument(doc, doc.Meta.MetaEvents(), kit.track)
	}
	return res, nil
}
