package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func IsMidiPath(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasSuffix(lower, ".mid") || strings.HasSuffix(lower, ".midi")
}

// GatherAllMidiPaths lists the midi files under path in lexical order. With
// recursive unset only the files directly inside path are considered. A
// maxNum of 0 means no limit.
func GatherAllMidiPaths(path string, maxNum int, recursive bool) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s != path && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if IsMidiPath(s) {
			res = append(res, s)
			if maxNum > 0 && len(res) == maxNum {
				return filepath.SkipAll
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, errors.Wrapf(err, "Error walking %v", path)
	}
	return res, nil
}

// EnsureParentDir creates the directory a file is about to be written to.
func EnsureParentDir(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return errors.Wrapf(err, "Could not create %v", dir)
	}
	return nil
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}
