package midi

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jsphweid/grooveset/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("Error parsing midi file %v... %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing midi file %v", filepath)
	}
	return res, nil
}

// Load reads and decodes a midi file in one go.
func Load(filepath string) (*model.Document, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not decode %v", filepath)
	}
	return doc, nil
}

func WriteMidiFile(filepath string, doc *model.Document) error {
	s, err := Encode(doc)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath)
	if err != nil {
		return errors.Wrap(err, "Could not create midi file")
	}
	defer f.Close()

	if _, err = s.WriteTo(f); err != nil {
		return errors.Wrap(err, fmt.Sprintf("Write failed for midi file %v", filepath))
	}
	return nil
}
