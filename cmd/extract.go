package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/grooveset/measure"
	"github.com/jsphweid/grooveset/midi"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var extractOutDir string

func init() {
	extractCmd.Flags().StringVarP(&extractOutDir, "out-dir", "o", ".", "where the measure is saved")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <file> <measure>",
	Short: "Saves a single measure of a song as its own midi file",
	Long: `Saves measure n (counting from 1) of a song as <song>_measure_<n>.mid,
keeping the names, tempo, signatures and programs it needs to play on its
own.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "measure must be a number")
		}
		path, err := ExtractFile(args[0], n, extractOutDir)
		if err != nil {
			return err
		}
		logrus.Infof("Saved %v", path)
		return nil
	},
}

func ExtractFile(path string, measureNum int, outDir string) (string, error) {
	doc, err := midi.Load(path)
	if err != nil {
		return "", err
	}
	extracted, err := measure.Extract(doc, measureNum)
	if err != nil {
		return "", err
	}
	target := filepath.Join(outDir, fmt.Sprintf("%v_measure_%d.mid", baseName(path), measureNum))
	return target, writeDocument(target, extracted)
}
