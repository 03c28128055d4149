package measure

import (
	"testing"

	"github.com/jsphweid/grooveset/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alternating note on/off for pitch 60 every 480 ticks, starting at tick 0
func pulse(n int) model.Track {
	var res model.Track
	for i := 0; i < n; i++ {
		var delta uint32 = 480
		if i == 0 {
			delta = 0
		}
		if i%2 == 0 {
			res = append(res, model.NoteOn(delta, 0, 60, 100))
		} else {
			res = append(res, model.NoteOff(delta, 0, 60))
		}
	}
	return res
}

func absTicks(track model.Track) []uint64 {
	var res []uint64
	var tick uint64
	for _, evt := range track {
		tick += uint64(evt.Delta)
		res = append(res, tick)
	}
	return res
}

func fourFourSong() *model.Document {
	meta := model.Track{
		model.TimeSig(0, 4, 4),
		model.SetTempo(0, 500000),
		model.EndOfTrack(5760),
	}
	track := append(model.Track{model.ProgramChange(0, 0, 33)}, pulse(12)...)
	return model.NewDocument(480, meta, track)
}

func TestCountWithoutTimeSignatureAssumesFourFour(t *testing.T) {
	track := model.Track{model.NoteOn(0, 0, 60, 90), model.NoteOff(7680, 0, 60)}
	doc := model.NewDocument(480, model.Track{}, track)

	n, err := Count(doc)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(4, n)
}

func TestCountUsesSmallestMeasureAndLongestTrack(t *testing.T) {
	meta := model.Track{model.TimeSig(0, 4, 4), model.TimeSig(1920, 3, 4)}
	short := model.Track{model.NoteOn(0, 0, 60, 90), model.NoteOff(100, 0, 60)}
	long := model.Track{model.NoteOn(0, 1, 40, 90), model.NoteOff(7200, 1, 40)}
	doc := model.NewDocument(480, meta, short, long)

	n, err := Count(doc)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(5, n) // 7200 / (3 * 480)
}

func TestCountRejectsMissingDocument(t *testing.T) {
	_, err := Count(nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = Count(&model.Document{})
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestNoTracksIsInvalid(t *testing.T) {
	doc := model.NewDocument(480, nil)

	_, err := Count(doc)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = Extract(doc, 1)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	// an empty meta track still counts as a track
	n, err := Count(model.NewDocument(480, model.Track{}))
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWindowUsesFirstSignatureNumeratorOnly(t *testing.T) {
	meta := model.Track{model.TimeSig(0, 6, 8), model.SetTempo(0, 600000), model.TimeSig(2880, 2, 4)}
	doc := model.NewDocument(480, meta)

	w, err := WindowFor(doc, 3)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint64(5760), w.Start)
	assert.Equal(uint64(8640), w.End)
	assert.Equal(uint32(600000), w.Tempo)
	assert.Equal(uint8(6), w.Numerator)
	assert.Equal(uint8(8), w.Denominator)
	assert.InDelta(100.0, w.BPM(), 0.0001)
}

func TestWindowDefaults(t *testing.T) {
	w, err := WindowFor(model.NewDocument(96, model.Track{}), 1)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint64(0), w.Start)
	assert.Equal(uint64(384), w.End)
	assert.Equal(uint32(500000), w.Tempo)
	assert.Equal(uint64(384), w.TicksPerMeasure())
	assert.True(w.Contains(0))
	assert.True(w.Contains(383))
	assert.False(w.Contains(384))
}

func TestZeroWindowBPM(t *testing.T) {
	assert.InDelta(t, 120.0, Window{}.BPM(), 0.0001)
}

func TestExtractKeepsOnlyEventsInsideTheMeasure(t *testing.T) {
	doc := fourFourSong()
	cases := []struct {
		measure    int
		start, end uint64
	}{
		{1, 0, 1920},
		{2, 1920, 3840},
		{3, 3840, 5760},
	}
	for _, c := range cases {
		extracted, err := Extract(doc, c.measure)
		require.NoError(t, err)
		require.Len(t, extracted.Tracks, 1)

		track := extracted.Tracks[0]
		ticks := absTicks(track)
		for i, evt := range track {
			if !evt.IsNote() {
				continue
			}
			original := ticks[i] + c.start
			assert.GreaterOrEqual(t, original, c.start, "measure %d event %v", c.measure, evt)
			assert.Less(t, original, c.end, "measure %d event %v", c.measure, evt)
		}
	}
}

func TestExtractSecondMeasure(t *testing.T) {
	extracted, err := Extract(fourFourSong(), 2)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint16(480), extracted.TicksPerBeat)
	assert.Equal(model.Track{
		model.ProgramChange(0, 0, 33),
		model.NoteOn(0, 0, 60, 100),
		model.NoteOff(480, 0, 60),
		model.NoteOn(480, 0, 60, 100),
		model.NoteOff(480, 0, 60),
	}, extracted.Tracks[0])
}

func TestExtractCarriesProgramChangeIntoLaterMeasure(t *testing.T) {
	track := model.Track{
		model.ProgramChange(100, 0, 25),
		model.NoteOn(3740, 0, 64, 80), // tick 3840, first tick of measure 3
		model.NoteOff(240, 0, 64),
	}
	doc := model.NewDocument(480, model.Track{model.TimeSig(0, 4, 4)}, track)

	extracted, err := Extract(doc, 3)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.Track{
		model.ProgramChange(0, 0, 25),
		model.NoteOn(0, 0, 64, 80),
		model.NoteOff(240, 0, 64),
	}, extracted.Tracks[0])
}

func TestExtractRelativeSpacingOfContext(t *testing.T) {
	track := model.Track{
		model.TrackName(0, "lead"),
		model.ProgramChange(120, 0, 80),
		model.NoteOn(0, 0, 70, 90), // dropped, not context
		model.ControlChange(60, 0, 7, 100),
		model.NoteOn(2000, 0, 72, 90), // tick 2180
	}
	doc := model.NewDocument(480, nil, track)

	extracted, err := Extract(doc, 2)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.Track{
		model.TrackName(0, "lead"),
		model.ProgramChange(120, 0, 80),
		model.ControlChange(60, 0, 7, 100),
		model.NoteOn(260, 0, 72, 90),
	}, extracted.Tracks[0])
}

func TestExtractTrackWithNothingInWindowIsEmpty(t *testing.T) {
	doc := fourFourSong()
	doc.Tracks = append(doc.Tracks, model.Track{
		model.ProgramChange(0, 1, 0),
		model.NoteOn(0, 1, 50, 90),
		model.NoteOff(100, 1, 50),
	})

	extracted, err := Extract(doc, 2)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(extracted.Tracks, 2)
	assert.Empty(extracted.Tracks[1])
	// meta only has context before the window and the end of track after it
	assert.Empty(extracted.Meta)
}

func TestExtractFirstMeasureKeepsMeta(t *testing.T) {
	extracted, err := Extract(fourFourSong(), 1)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.Track{model.TimeSig(0, 4, 4), model.SetTempo(0, 500000)}, extracted.Meta)
}

func TestExtractDoesNotTouchInput(t *testing.T) {
	doc := fourFourSong()
	before := doc.Clone()

	_, err := Extract(doc, 2)

	assert.NoError(t, err)
	assert.Equal(t, before, doc)
}

func TestExtractRejectsBadInput(t *testing.T) {
	_, err := Extract(nil, 1)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = Extract(fourFourSong(), 0)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}
