package midi

import (
	"math"

	"github.com/jsphweid/grooveset/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const metaKeySig = 0x59

// key signature meta events are FF 59 02 sf mi
func getKeySig(msg smf.Message, key *model.KeySignature) bool {
	b := []byte(msg)
	if len(b) != 5 || b[0] != 0xFF || b[1] != metaKeySig || b[2] != 2 {
		return false
	}
	key.SharpsFlats = int8(b[3])
	key.Minor = b[4] == 1
	return true
}

func keySigMessage(key model.KeySignature) smf.Message {
	var mi byte
	if key.Minor {
		mi = 1
	}
	return smf.Message([]byte{0xFF, metaKeySig, 2, byte(key.SharpsFlats), mi})
}

func raw(msg smf.Message) []byte {
	return append([]byte(nil), msg...)
}

func decodeEvent(event smf.Event) model.Event {
	msg := event.Message
	res := model.Event{Delta: event.Delta}

	var channel, key, value uint8
	var bpm float64
	var num, denom, clocks, demisemiquavers uint8
	var text string

	switch {
	case msg.Is(smf.MetaEndOfTrackMsg):
		res.Kind = model.KindEndOfTrack
	case msg.GetMetaTempo(&bpm):
		res.Kind = model.KindTempo
		if bpm > 0 {
			res.Tempo = uint32(math.Round(60_000_000 / bpm))
		}
	case msg.GetMetaTimeSig(&num, &denom, &clocks, &demisemiquavers):
		res.Kind = model.KindTimeSignature
		res.Numerator, res.Denominator = num, denom
	case msg.GetMetaTrackName(&text):
		res.Kind = model.KindTrackName
		res.Text = text
	case getKeySig(msg, &res.KeySig):
		res.Kind = model.KindKeySignature
	case msg.IsMeta():
		res.Kind = model.KindOtherMeta
		res.Raw = raw(msg)
	case msg.GetNoteOff(&channel, &key, &value):
		res.Kind = model.KindNoteOff
		res.Channel, res.Key, res.Value = channel, key, value
	case msg.GetNoteOn(&channel, &key, &value):
		res.Kind = model.KindNoteOn
		res.Channel, res.Key, res.Value = channel, key, value
	case msg.GetProgramChange(&channel, &value):
		res.Kind = model.KindProgramChange
		res.Channel, res.Value = channel, value
	case msg.GetControlChange(&channel, &key, &value):
		res.Kind = model.KindControlChange
		res.Channel, res.Key, res.Value = channel, key, value
	case msg.GetChannel(&channel):
		res.Kind = model.KindOtherChannel
		res.Channel = channel
		res.Raw = raw(msg)
	default:
		res.Kind = model.KindSysEx
		res.Raw = raw(msg)
	}
	return res
}

func decodeTrack(track smf.Track) model.Track {
	res := make(model.Track, 0, len(track))
	for _, event := range track {
		res = append(res, decodeEvent(event))
	}
	return res
}

// Decode turns a parsed smf file into a document. The first track becomes
// the meta timeline, the rest are performance tracks.
func Decode(s *smf.SMF) (*model.Document, error) {
	if s == nil || len(s.Tracks) == 0 {
		return nil, errors.Wrap(model.ErrInvalidInput, "midi file has no tracks")
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks == 0 {
		return nil, errors.Wrapf(model.ErrInvalidInput, "unsupported time format %v", s.TimeFormat)
	}

	doc := &model.Document{
		TicksPerBeat: uint16(ticks),
		Meta:         decodeTrack(s.Tracks[0]),
	}
	for _, track := range s.Tracks[1:] {
		doc.Tracks = append(doc.Tracks, decodeTrack(track))
	}
	return doc, nil
}

func encodeEvent(evt model.Event) smf.Message {
	switch evt.Kind {
	case model.KindTempo:
		return smf.MetaTempo(60_000_000 / float64(evt.Tempo))
	case model.KindTimeSignature:
		return smf.MetaTimeSig(evt.Numerator, evt.Denominator, 24, 8)
	case model.KindKeySignature:
		return keySigMessage(evt.KeySig)
	case model.KindTrackName:
		return smf.MetaTrackSequenceName(evt.Text)
	case model.KindNoteOn:
		return smf.Message(gomidi.NoteOn(evt.Channel, evt.Key, evt.Value))
	case model.KindNoteOff:
		return smf.Message(gomidi.NoteOff(evt.Channel, evt.Key))
	case model.KindProgramChange:
		return smf.Message(gomidi.ProgramChange(evt.Channel, evt.Value))
	case model.KindControlChange:
		return smf.Message(gomidi.ControlChange(evt.Channel, evt.Key, evt.Value))
	}
	return smf.Message(evt.Raw)
}

// encodable reports whether evt carries enough to be written out.
func encodable(evt model.Event) bool {
	switch evt.Kind {
	case model.KindTempo:
		return evt.Tempo > 0
	case model.KindTimeSignature:
		return evt.Numerator > 0 && evt.Denominator > 0
	case model.KindOtherMeta, model.KindOtherChannel, model.KindSysEx, model.KindUnknown:
		return len(evt.Raw) > 0
	}
	return true
}

func encodeTrack(track model.Track) smf.Track {
	var res smf.Track
	// time of events that could not be written moves on to the next one
	var carry uint32
	for _, evt := range track {
		if evt.Kind == model.KindEndOfTrack {
			res.Close(carry + evt.Delta)
			return res
		}
		if !encodable(evt) {
			carry += evt.Delta
			continue
		}
		res = append(res, smf.Event{Delta: carry + evt.Delta, Message: encodeEvent(evt)})
		carry = 0
	}
	res.Close(carry)
	return res
}

// Encode writes the meta timeline as the first track followed by the
// performance tracks. Every track gets closed, even an empty one.
func Encode(doc *model.Document) (*smf.SMF, error) {
	if err := model.Check(doc); err != nil {
		return nil, err
	}
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(doc.TicksPerBeat)
	for _, track := range doc.All() {
		s.Tracks = append(s.Tracks, encodeTrack(track))
	}
	return s, nil
}
