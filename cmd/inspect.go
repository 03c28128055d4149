package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/grooveset/measure"
	"github.com/jsphweid/grooveset/midi"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/split"
	"github.com/jsphweid/grooveset/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describes a midi file",
	Long:  `Prints the timing, measures, tracks and instruments of a midi file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := midi.Load(args[0])
		if err != nil {
			return err
		}
		return inspect(cmd.OutOrStdout(), args[0], doc)
	},
}

func firstOfKind(track model.Track, kind model.Kind) (model.Event, bool) {
	for _, evt := range track {
		if evt.Kind == kind {
			return evt, true
		}
	}
	return model.Event{}, false
}

func describeTrack(track model.Track) string {
	name := "(unnamed)"
	if evt, ok := firstOfKind(track, model.KindTrackName); ok {
		name = evt.Text
	}
	var channels []string
	for _, ch := range util.GetKeys(track.Channels()) {
		channels = append(channels, fmt.Sprint(ch))
	}
	return fmt.Sprintf("%v: %v events, %v ticks, channels [%v]", name, len(track), track.TotalTicks(), strings.Join(channels, " "))
}

func inspect(w io.Writer, path string, doc *model.Document) error {
	numMeasures, err := measure.Count(doc)
	if err != nil {
		return err
	}
	window, err := measure.WindowFor(doc, 1)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "file: %v\n", path)
	fmt.Fprintf(w, "ticks per beat: %v\n", doc.TicksPerBeat)
	fmt.Fprintf(w, "tempo: %.1f bpm\n", window.BPM())
	fmt.Fprintf(w, "time signature: %v/%v\n", window.Numerator, window.Denominator)
	if evt, ok := firstOfKind(doc.Meta, model.KindKeySignature); ok {
		fmt.Fprintf(w, "key: %v\n", evt.KeySig)
	}
	fmt.Fprintf(w, "measures: %v of %v ticks\n", numMeasures, window.TicksPerMeasure())

	fmt.Fprintf(w, "meta track: %v\n", describeTrack(doc.Meta))
	for i, track := range doc.Tracks {
		fmt.Fprintf(w, "track %v: %v\n", i+1, describeTrack(track))
	}

	parts, err := split.ByInstrument(doc)
	if err != nil {
		return err
	}
	var names []string
	for _, inst := range parts.Instruments {
		names = append(names, inst.Name)
	}
	if parts.HasDrums() {
		names = append(names, "Drums")
	}
	fmt.Fprintf(w, "parts: %v\n", strings.Join(names, ", "))
	return nil
}
