package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKeySignatureNames(t *testing.T) {
	cases := map[KeySignature]string{
		{SharpsFlats: 0}:               "C",
		{SharpsFlats: 0, Minor: true}:  "Am",
		{SharpsFlats: 1}:               "G",
		{SharpsFlats: 3, Minor: true}:  "F#m",
		{SharpsFlats: -1}:              "F",
		{SharpsFlats: -3}:              "Eb",
		{SharpsFlats: -2, Minor: true}: "Gm",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestNoteEndIncludesSilentNoteOn(t *testing.T) {
	assert := assert.New(t)
	assert.True(NoteOff(0, 0, 60).IsNoteEnd())
	assert.True(NoteOn(0, 0, 60, 0).IsNoteEnd())
	assert.False(NoteOn(0, 0, 60, 1).IsNoteEnd())
	assert.True(NoteOn(0, 0, 60, 1).IsNoteStart())
}

func TestTrackChannelsSkipMeta(t *testing.T) {
	track := Track{
		TrackName(0, "x"),
		NoteOn(0, 2, 60, 10),
		ControlChange(0, 9, 7, 100),
		NoteOff(10, 2, 60),
	}
	assert.Equal(t, map[uint8]bool{2: true, 9: true}, track.Channels())
	assert.True(t, track.HasDrums())
	assert.Equal(t, uint64(10), track.TotalTicks())
}

func TestCloneDoesNotShareRawBytes(t *testing.T) {
	doc := NewDocument(96, Track{{Kind: KindOtherMeta, Raw: []byte{0xFF, 0x01, 0x01, 'a'}}})
	clone := doc.Clone()
	clone.Meta[0].Raw[3] = 'b'

	assert.Equal(t, byte('a'), doc.Meta[0].Raw[3])
}

func TestResizePadsAndTruncates(t *testing.T) {
	m := NewVelocityMatrix(3)
	m[10][2] = 5

	assert := assert.New(t)
	assert.Equal(5, m.Resize(5).Width())
	assert.Equal(uint8(5), m.Resize(5)[10][2])
	assert.Equal(2, m.Resize(2).Width())
	assert.True(m.Resize(2).IsSilent())
	assert.False(m.IsSilent())
}

func TestCheck(t *testing.T) {
	assert := assert.New(t)
	assert.True(errors.Is(Check(nil), ErrInvalidInput))
	assert.True(errors.Is(Check(NewDocument(0, Track{})), ErrInvalidInput))
	assert.True(errors.Is(Check(NewDocument(480, nil)), ErrInvalidInput))
	assert.NoError(Check(NewDocument(480, Track{})))
	assert.NoError(Check(NewDocument(480, nil, Track{NoteOn(0, 0, 60, 90)})))
}
