package file

import (
	"path/filepath"

	"github.com/jsphweid/grooveset/model"
)

func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// Relative strips the media dir off a path so ids and listings don't leak
// where the files live.
func Relative(mediaDir, path string) string {
	rel, err := filepath.Rel(mediaDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}
