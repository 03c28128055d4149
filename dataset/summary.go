package dataset

import (
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Summary struct {
	NumRecords  int
	NumSongs    int
	NumBytes    int64
	Instruments map[string]int
	// SilentInputs counts pairs whose instrument roll has no notes at all.
	SilentInputs  int
	SilentTargets int
}

func Summarize(path string) (Summary, error) {
	stats, err := os.Stat(path)
	if err != nil {
		return Summary{}, errors.Wrap(err, "Could not get dataset stats")
	}

	s := Summary{NumBytes: stats.Size(), Instruments: make(map[string]int)}
	songs := make(map[uuid.UUID]bool)
	err = Each(path, func(r Record) error {
		s.NumRecords += 1
		songs[r.SongID] = true
		s.Instruments[r.Instrument] += 1
		if r.Input.IsSilent() {
			s.SilentInputs += 1
		}
		if r.Target.IsSilent() {
			s.SilentTargets += 1
		}
		return nil
	})
	s.NumSongs = len(songs)
	return s, err
}
