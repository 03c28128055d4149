package measure

import (
	"sort"

	"github.com/jsphweid/grooveset/model"
)

// context events are the ones a measure needs to be replayed on its own
func isContext(evt model.Event) bool {
	switch evt.Kind {
	case model.KindTrackName,
		model.KindTempo,
		model.KindTimeSignature,
		model.KindKeySignature,
		model.KindProgramChange,
		model.KindControlChange:
		return true
	}
	return false
}

type bufferedEvent struct {
	tick  uint64
	event model.Event
}

func flush(buffered []bufferedEvent) model.Track {
	sort.SliceStable(buffered, func(i, j int) bool {
		return buffered[i].tick < buffered[j].tick
	})
	res := make(model.Track, 0, len(buffered))
	for i, b := range buffered {
		var delta uint64
		if i > 0 {
			delta = b.tick - buffered[i-1].tick
		}
		res = append(res, b.event.WithDelta(uint32(delta)))
	}
	return res
}

func extractTrack(track model.Track, w Window) model.Track {
	newTrack := model.Track{}
	var buffered []bufferedEvent
	var absTicks uint64

TrackEventLoop:
	for _, evt := range track {
		absTicks += uint64(evt.Delta)
		switch {
		case absTicks < w.Start:
			if isContext(evt) {
				buffered = append(buffered, bufferedEvent{tick: absTicks, event: evt})
			}
		case absTicks >= w.End:
			break TrackEventLoop
		case len(newTrack) == 0:
			newTrack = append(newTrack, flush(buffered)...)
			newTrack = append(newTrack, evt.WithDelta(uint32(absTicks-w.Start)))
		default:
			newTrack = append(newTrack, evt.Copy())
		}
	}
	return newTrack
}

// Extract cuts a single 1-indexed measure out of doc. Every track keeps its
// place; events before the measure are dropped except for the context
// events (names, tempo, signatures, programs and controllers), which are
// replayed at the start of the track. A track with nothing inside the
// measure comes back empty.
func Extract(doc *model.Document, measureNum int) (*model.Document, error) {
	w, err := WindowFor(doc, measureNum)
	if err != nil {
		return nil, err
	}

	res := &model.Document{
		TicksPerBeat: doc.TicksPerBeat,
		Tempo:        doc.Tempo,
		Meta:         extractTrack(doc.Meta, w),
	}
	for _, track := range doc.Tracks {
		res.Tracks = append(res.Tracks, extractTrack(track, w))
	}
	return res, nil
}
