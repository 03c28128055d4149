// Package dataset stores training pairs in an append-only file. Every
// record is a little endian uint32 length followed by that many bytes of
// gob, so a file can be extended one song at a time and read back as a
// stream.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/util"
	"github.com/pkg/errors"
)

type Record struct {
	SongID     uuid.UUID
	Source     string
	Measure    int
	Instrument string
	Metadata   *model.MidiMetadata
	// Input is the instrument's piano roll, Target the drums of the same
	// measure.
	Input  model.VelocityMatrix
	Target model.VelocityMatrix
}

func encodeRecord(buf *bytes.Buffer, r Record) error {
	body := new(bytes.Buffer)
	if err := gob.NewEncoder(body).Encode(r); err != nil {
		return errors.Wrap(err, "Could not encode record")
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(body.Len())); err != nil {
		return err
	}
	_, err := buf.Write(body.Bytes())
	return err
}

type Writer struct {
	f     *os.File
	count int
}

// OpenWriter opens path for appending, creating it (and its directory) if
// needed. Existing records are kept.
func OpenWriter(path string) (*Writer, error) {
	if err := util.EnsureParentDir(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, errors.Wrap(err, "Could not open dataset")
	}
	return &Writer{f: f}, nil
}

// Append writes all records with a single write so a song either lands
// completely or not at all.
func (w *Writer) Append(records ...Record) error {
	if len(records) == 0 {
		return nil
	}
	buf := new(bytes.Buffer)
	for _, r := range records {
		if err := encodeRecord(buf, r); err != nil {
			return err
		}
	}
	if _, err := w.f.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "Could not write records to dataset")
	}
	w.count += len(records)
	return nil
}

// Count is the number of records appended through this writer.
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) Close() error {
	return w.f.Close()
}

// Each calls fn for every record in the file, in order.
func Each(path string, fn func(Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "Could not open dataset")
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	for i := 0; ; i++ {
		var size uint32
		err := binary.Read(reader, binary.LittleEndian, &size)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "Could not read size of record %v", i)
		}

		buf := make([]byte, size)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return errors.Wrapf(err, "Could not read record %v", i)
		}
		var r Record
		if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&r); err != nil {
			return errors.Wrapf(err, "Could not decode record %v", i)
		}
		if err := fn(r); err != nil {
			return err
		}
	}
}

func ReadAll(path string) ([]Record, error) {
	var res []Record
	err := Each(path, func(r Record) error {
		res = append(res, r)
		return nil
	})
	return res, err
}
