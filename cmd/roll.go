package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/midi"
	"github.com/jsphweid/grooveset/pipeline"
	"github.com/jsphweid/grooveset/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rollFlags struct {
	measure    int
	width      int
	sampleRate float64
	pngDir     string
	scale      int
}

func init() {
	f := rollCmd.Flags()
	f.IntVarP(&rollFlags.measure, "measure", "m", 0, "only this measure, counting from 1")
	f.IntVar(&rollFlags.width, "width", constants.DefaultRollWidth, "columns per piano roll")
	f.Float64Var(&rollFlags.sampleRate, "fs", constants.DefaultSampleRate, "piano roll columns per second")
	f.StringVar(&rollFlags.pngDir, "png", "", "save one PNG per part in this folder instead of printing")
	f.IntVar(&rollFlags.scale, "scale", 4, "pixels per cell in PNGs")
	rootCmd.AddCommand(rollCmd)
}

var rollCmd = &cobra.Command{
	Use:   "roll <file>",
	Short: "Shows the piano rolls of every part of a song or of one measure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pipeline.Options{Width: rollFlags.width, SampleRate: rollFlags.sampleRate}
		rolls, err := Rolls(args[0], rollFlags.measure, opts)
		if err != nil {
			return err
		}
		if rollFlags.pngDir == "" {
			printRolls(cmd.OutOrStdout(), rolls)
			return nil
		}
		paths, err := SaveRolls(rollFlags.pngDir, rolls, rollFlags.scale)
		for _, p := range paths {
			logrus.Infof("Saved %v", p)
		}
		return err
	},
}

// Rolls renders the parts of the song at path, or of one of its measures
// when measureNum is above 0.
func Rolls(path string, measureNum int, opts pipeline.Options) (pipeline.MeasureRolls, error) {
	doc, err := midi.Load(path)
	if err != nil {
		return pipeline.MeasureRolls{}, err
	}
	if measureNum > 0 {
		return pipeline.RollMeasure(doc, measureNum, opts)
	}
	return pipeline.RollParts(doc, opts)
}

func printRolls(w io.Writer, rolls pipeline.MeasureRolls) {
	for _, roll := range rolls.All() {
		fmt.Fprintln(w, render.Text(roll.Name, roll.Matrix))
		fmt.Fprintln(w)
	}
}

func SaveRolls(dir string, rolls pipeline.MeasureRolls, scale int) ([]string, error) {
	var res []string
	for _, roll := range rolls.All() {
		name := strings.ReplaceAll(roll.Name, " ", "_")
		if rolls.Measure > 0 {
			name = fmt.Sprintf("%v_measure_%d", name, rolls.Measure)
		}
		path := filepath.Join(dir, name+".png")
		if err := render.SavePNG(path, roll.Matrix, scale); err != nil {
			return res, err
		}
		res = append(res, path)
	}
	return res, nil
}
