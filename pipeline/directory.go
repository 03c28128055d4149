package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/jsphweid/grooveset/dataset"
	"github.com/jsphweid/grooveset/file"
	"github.com/jsphweid/grooveset/midi"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Sink receives the records of one song at a time. *dataset.Writer is one.
type Sink interface {
	Append(records ...dataset.Record) error
}

type Stats struct {
	NumFiles   int
	NumSongs   int
	NumSkipped int
	NumPairs   int
}

func lookupMetadata(source model.FileNumToMidiPath, dir string, opts Options) map[string]model.MidiMetadata {
	if opts.Metadata == nil {
		return nil
	}
	var names []string
	for _, num := range util.GetKeys(source) {
		names = append(names, file.Relative(dir, source[num]))
	}
	res, err := opts.Metadata.GetMidiMetadatas(names)
	if err != nil {
		logrus.WithError(err).Warn("Could not get metadata, continuing without it")
		return nil
	}
	return res
}

func toRecords(songID uuid.UUID, source string, metadata *model.MidiMetadata, pairs []Pair) []dataset.Record {
	res := make([]dataset.Record, 0, len(pairs))
	for _, p := range pairs {
		res = append(res, dataset.Record{
			SongID:     songID,
			Source:     source,
			Measure:    p.Measure,
			Instrument: p.Instrument,
			Metadata:   metadata,
			Input:      p.Input,
			Target:     p.Target,
		})
	}
	return res
}

// ProcessDirectory runs FromSong over every midi file in dir and hands the
// pairs of each song to sink as soon as the song is done. Songs that can't be
// read or produce nothing are logged and skipped. Errors from the sink stop
// the run, as does ctx being cancelled between songs.
func ProcessDirectory(ctx context.Context, dir string, sink Sink, opts Options) (Stats, error) {
	var stats Stats
	paths, err := util.GatherAllMidiPaths(dir, opts.MaxFiles, opts.Recursive)
	if err != nil {
		return stats, err
	}
	fileNumMap := file.CreateFileNumMap(paths)
	metadatas := lookupMetadata(fileNumMap, dir, opts)
	stats.NumFiles = len(paths)

	keys := util.GetKeys(fileNumMap)
	for i, num := range keys {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		path := fileNumMap[num]
		name := file.Relative(dir, path)
		logrus.Infof("Processing %v of %v midi files", i+1, len(keys))
		log := logrus.WithField("file", name)

		doc, err := midi.Load(path)
		if err != nil {
			log.WithError(err).Warn("Skipping song")
			stats.NumSkipped += 1
			continue
		}
		pairs, err := FromSong(doc, opts)
		if err != nil {
			log.WithError(err).Warn("Skipping song")
			stats.NumSkipped += 1
			continue
		}
		if len(pairs) == 0 {
			log.Info("No valid pairs found")
			stats.NumSkipped += 1
			continue
		}

		var metadata *model.MidiMetadata
		if m, ok := metadatas[name]; ok {
			metadata = &m
		}
		if err := sink.Append(toRecords(uuid.New(), name, metadata, pairs)...); err != nil {
			return stats, errors.Wrapf(err, "Could not save pairs of %v", name)
		}
		log.WithField("pairs", len(pairs)).Debug("Saved pairs")
		stats.NumSongs += 1
		stats.NumPairs += len(pairs)
	}
	return stats, nil
}
