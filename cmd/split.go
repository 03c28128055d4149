package cmd

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/grooveset/midi"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/split"
	"github.com/jsphweid/grooveset/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var splitOutDir string

func init() {
	splitCmd.Flags().StringVarP(&splitOutDir, "out-dir", "o", ".", "where the folder of parts is created")
	rootCmd.AddCommand(splitCmd)
}

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Splits a song into one file per instrument plus one for the drums",
	Long: `Splits a song into one file per instrument plus Drums.mid, saved in a
folder named after the song.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := SplitFile(args[0], splitOutDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logrus.Infof("Saved %v", p)
		}
		return nil
	},
}

func writeDocument(path string, doc *model.Document) error {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	return midi.WriteMidiFile(path, doc)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SplitFile writes the parts of the song at path to outDir/<song name>/ and
// returns the paths it wrote.
func SplitFile(path, outDir string) ([]string, error) {
	doc, err := midi.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := split.ByInstrument(doc)
	if err != nil {
		return nil, err
	}

	folder := filepath.Join(outDir, baseName(path))
	var written []string
	save := func(name string, doc *model.Document) error {
		target := filepath.Join(folder, name)
		if err := writeDocument(target, doc); err != nil {
			return err
		}
		written = append(written, target)
		return nil
	}

	for _, inst := range res.Instruments {
		if err := save(inst.Filename(), inst.Document); err != nil {
			return written, err
		}
	}
	if res.HasDrums() {
		if err := save("Drums.mid", res.Drums); err != nil {
			return written, err
		}
	}
	return written, nil
}
