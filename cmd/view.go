package cmd

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/midi"
	"github.com/jsphweid/grooveset/pipeline"
	"github.com/jsphweid/grooveset/tui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var viewFlags struct {
	width      int
	sampleRate float64
}

func init() {
	f := viewCmd.Flags()
	f.IntVar(&viewFlags.width, "width", constants.DefaultRollWidth, "columns per piano roll")
	f.Float64Var(&viewFlags.sampleRate, "fs", constants.DefaultSampleRate, "piano roll columns per second")
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Pages through the measures of a song in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := midi.Load(args[0])
		if err != nil {
			return err
		}
		m, err := tui.New(filepath.Base(args[0]), doc, pipeline.Options{
			Width:      viewFlags.width,
			SampleRate: viewFlags.sampleRate,
		})
		if err != nil {
			return err
		}
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return errors.Wrap(err, "Viewer failed")
		}
		return nil
	},
}
