package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jsphweid/grooveset/dataset"
	"github.com/jsphweid/grooveset/midi"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSong() *model.Document {
	meta := model.Track{
		model.TimeSig(0, 4, 4),
		model.SetTempo(0, 500000),
		model.SetKey(0, model.KeySignature{SharpsFlats: -3}),
		model.EndOfTrack(3840),
	}
	piano := model.Track{
		model.TrackName(0, "Keys"),
		model.ProgramChange(0, 0, 0),
		model.NoteOn(0, 0, 60, 90),
		model.NoteOff(480, 0, 60),
		model.NoteOn(1440, 0, 62, 90),
		model.NoteOff(480, 0, 62),
	}
	bass := model.Track{
		model.ProgramChange(0, 1, 33),
		model.NoteOn(0, 1, 36, 80),
		model.NoteOff(960, 1, 36),
	}
	drums := model.Track{
		model.NoteOn(0, 9, 36, 100),
		model.NoteOff(240, 9, 36),
		model.NoteOn(1680, 9, 42, 70),
		model.NoteOff(240, 9, 42),
	}
	return model.NewDocument(480, meta, piano, bass, drums)
}

func writeTestSong(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "song.mid")
	require.NoError(t, midi.WriteMidiFile(path, testSong()))
	return path
}

func TestSplitFile(t *testing.T) {
	out := t.TempDir()
	paths, err := SplitFile(writeTestSong(t), out)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{
		filepath.Join(out, "song", "Piano.mid"),
		filepath.Join(out, "song", "Bass.mid"),
		filepath.Join(out, "song", "Drums.mid"),
	}, paths)

	drums, err := midi.Load(paths[2])
	require.NoError(t, err)
	assert.Len(drums.Tracks, 1)
	assert.True(drums.Tracks[0].HasDrums())
}

func TestExtractFile(t *testing.T) {
	out := t.TempDir()
	path, err := ExtractFile(writeTestSong(t), 2, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "song_measure_2.mid"), path)

	doc, err := midi.Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Tracks, 3)

	_, err = ExtractFile(writeTestSong(t), 0, out)
	assert.Error(t, err)
}

func TestRollsAndSaveRolls(t *testing.T) {
	rolls, err := Rolls(writeTestSong(t), 1, pipeline.Options{Width: 8, SampleRate: 4})
	require.NoError(t, err)

	var names []string
	for _, r := range rolls.All() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Piano", "Bass", "Drums"}, names)

	dir := t.TempDir()
	paths, err := SaveRolls(dir, rolls, 1)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
	assert.FileExists(t, filepath.Join(dir, "Piano_measure_1.png"))

	var buf bytes.Buffer
	printRolls(&buf, rolls)
	assert.Contains(t, buf.String(), "C4")
	assert.Contains(t, buf.String(), "Drums")
}

func TestRollsWholeSong(t *testing.T) {
	rolls, err := Rolls(writeTestSong(t), 0, pipeline.Options{Width: 16, SampleRate: 4})
	require.NoError(t, err)

	assert.Equal(t, 0, rolls.Measure)
	require.NotNil(t, rolls.Drums)
	assert.Equal(t, uint8(70), rolls.Drums.Matrix[42][8])
}

func TestInspect(t *testing.T) {
	path := writeTestSong(t)
	doc, err := midi.Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, inspect(&buf, path, doc))

	out := buf.String()
	assert := assert.New(t)
	assert.Contains(out, "ticks per beat: 480")
	assert.Contains(out, "tempo: 120.0 bpm")
	assert.Contains(out, "time signature: 4/4")
	assert.Contains(out, "key: Eb")
	assert.Contains(out, "measures: 2 of 1920 ticks")
	assert.Contains(out, "track 1: Keys:")
	assert.Contains(out, "parts: Piano, Bass, Drums")
}

func TestProcessAndReport(t *testing.T) {
	dir := filepath.Dir(writeTestSong(t))
	out := filepath.Join(t.TempDir(), "out", "dataset.dat")

	stats, err := Process(context.Background(), dir, out, pipeline.Options{Width: 8, SampleRate: 4})
	require.NoError(t, err)
	assert.Equal(t, pipeline.Stats{NumFiles: 1, NumSongs: 1, NumPairs: 4}, stats)

	// a second run appends instead of replacing
	_, err = Process(context.Background(), dir, out, pipeline.Options{Width: 8, SampleRate: 4})
	require.NoError(t, err)

	summary, err := dataset.Summarize(out)
	require.NoError(t, err)
	assert.Equal(t, 8, summary.NumRecords)
	assert.Equal(t, 2, summary.NumSongs)

	var buf bytes.Buffer
	report(&buf, out, summary)
	assert.Contains(t, buf.String(), "pairs per song")
	assert.Contains(t, buf.String(), "Piano")
}

func TestRankInstruments(t *testing.T) {
	ranked := rankInstruments(map[string]int{"Bass": 2, "Piano": 5, "Guitar": 2})
	assert.Equal(t, []string{"Piano", "Bass", "Guitar"}, ranked)
}

func TestReportSilentRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.dat")
	w, err := dataset.OpenWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(dataset.Record{SongID: uuid.New(), Instrument: "Bass"}))
	require.NoError(t, w.Close())

	summary, err := dataset.Summarize(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	report(&buf, path, summary)
	assert.Contains(t, buf.String(), "Bass")
}
