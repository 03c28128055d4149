package split

import (
	"testing"

	"github.com/jsphweid/grooveset/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var meta = model.Track{
	model.TrackName(0, "song"),
	model.TimeSig(0, 4, 4),
	model.SetTempo(0, 500000),
	model.ProgramChange(0, 2, 5), // not meta, never copied
	model.EndOfTrack(1920),
}

func bass() model.Track {
	return model.Track{
		model.ProgramChange(0, 0, 33),
		model.NoteOn(0, 0, 40, 90),
		model.NoteOff(480, 0, 40),
	}
}

func kick() model.Track {
	return model.Track{
		model.NoteOn(0, 9, 36, 110),
		model.NoteOff(240, 9, 36),
	}
}

func TestSplitSeparatesDrumsFromMelodic(t *testing.T) {
	doc := model.NewDocument(480, meta, bass(), kick())

	res, err := ByInstrument(doc)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(res.Instruments, 1)
	assert.True(res.HasDrums())
	assert.Equal("Bass", res.Instruments[0].Name)

	docs := res.Documents()
	assert.Len(docs, 2)
	assert.NotNil(docs[1])
	assert.Same(res.Drums, docs[1])
}

func TestSplitInstrumentDocumentLayout(t *testing.T) {
	doc := model.NewDocument(480, meta, bass())

	res, err := ByInstrument(doc)
	require.NoError(t, err)
	require.Len(t, res.Instruments, 1)

	inst := res.Instruments[0].Document
	assert := assert.New(t)
	assert.Equal(uint16(480), inst.TicksPerBeat)
	assert.Equal(model.Track{
		model.TrackName(0, "song"),
		model.TimeSig(0, 4, 4),
		model.SetTempo(0, 500000),
		model.EndOfTrack(1920),
	}, inst.Meta)
	assert.Equal([]model.Track{bass()}, inst.Tracks)
}

func TestSplitWithoutDrumsLeavesLastSlotEmpty(t *testing.T) {
	doc := model.NewDocument(480, meta, bass())

	res, err := ByInstrument(doc)
	require.NoError(t, err)

	docs := res.Documents()
	assert := assert.New(t)
	assert.False(res.HasDrums())
	assert.Len(docs, 2)
	assert.Nil(docs[len(docs)-1])
}

func TestSplitNoPerformanceTracks(t *testing.T) {
	res, err := ByInstrument(model.NewDocument(480, meta))
	require.NoError(t, err)

	assert.Equal(t, []*model.Document{nil}, res.Documents())
}

func TestSplitSuffixesRepeatedInstrumentNames(t *testing.T) {
	noProgram := model.Track{model.NoteOn(0, 3, 60, 64), model.NoteOff(10, 3, 60)}
	doc := model.NewDocument(480, meta, bass(), noProgram, bass(), bass(), noProgram)

	res, err := ByInstrument(doc)
	require.NoError(t, err)

	var names []string
	for _, inst := range res.Instruments {
		names = append(names, inst.Name)
	}
	assert.Equal(t, []string{"Bass", "Unknown", "Bass_1", "Bass_2", "Unknown_1"}, names)
}

func TestSplitUsesFirstProgramChange(t *testing.T) {
	track := model.Track{
		model.NoteOn(0, 0, 60, 64),
		model.ProgramChange(0, 0, 0),
		model.ProgramChange(0, 0, 40),
		model.NoteOff(10, 0, 60),
	}
	res, err := ByInstrument(model.NewDocument(480, nil, track))
	require.NoError(t, err)

	assert.Equal(t, "Piano", res.Instruments[0].Name)
	assert.Equal(t, "Piano.mid", res.Instruments[0].Filename())
}

func TestSplitFilenameReplacesSpaces(t *testing.T) {
	assert.Equal(t, "Synth_Lead_1.mid", Instrument{Name: "Synth Lead_1"}.Filename())
}

func TestSplitDrumTrackLosesOtherChannels(t *testing.T) {
	mixed := model.Track{
		model.ProgramChange(0, 0, 0),
		model.NoteOn(0, 0, 60, 64),
		model.NoteOn(10, 9, 38, 100),
		model.NoteOff(10, 0, 60),
		model.NoteOff(10, 9, 38),
	}
	doc := model.NewDocument(480, meta, mixed, kick())

	res, err := ByInstrument(doc)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Empty(res.Instruments)
	require.NotNil(t, res.Drums)
	assert.Equal([]model.Track{{
		model.NoteOn(10, 9, 38, 100),
		model.NoteOff(10, 9, 38),
		model.NoteOn(0, 9, 36, 110),
		model.NoteOff(240, 9, 36),
	}}, res.Drums.Tracks)
}

func TestSplitIsIdempotent(t *testing.T) {
	doc := model.NewDocument(480, meta, bass(), kick(), bass())

	first, err := ByInstrument(doc)
	require.NoError(t, err)
	second, err := ByInstrument(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSplitDoesNotShareEventsWithInput(t *testing.T) {
	doc := model.NewDocument(480, meta, bass())
	res, err := ByInstrument(doc)
	require.NoError(t, err)

	res.Instruments[0].Document.Tracks[0][0].Value = 99
	res.Instruments[0].Document.Meta[0].Text = "changed"

	assert.Equal(t, uint8(33), doc.Tracks[0][0].Value)
	assert.Equal(t, "song", doc.Meta[0].Text)
}

func TestSplitRejectsMissingDocument(t *testing.T) {
	_, err := ByInstrument(nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = ByInstrument(model.NewDocument(480, nil))
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}
