package cmd

import (
	"context"
	"strconv"

	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/dataset"
	"github.com/jsphweid/grooveset/db"
	"github.com/jsphweid/grooveset/pipeline"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var processFlags struct {
	out          string
	width        int
	sampleRate   float64
	recursive    bool
	withMetadata bool
}

func init() {
	f := processCmd.Flags()
	f.StringVarP(&processFlags.out, "out", "o", constants.GetDatasetPath(), "dataset file to append to")
	f.IntVar(&processFlags.width, "width", constants.DefaultRollWidth, "columns per piano roll")
	f.Float64Var(&processFlags.sampleRate, "fs", constants.DefaultSampleRate, "piano roll columns per second")
	f.BoolVarP(&processFlags.recursive, "recursive", "r", false, "also look in subdirectories")
	f.BoolVar(&processFlags.withMetadata, "metadata", false, "look song metadata up in DynamoDB")
	rootCmd.AddCommand(processCmd)
}

var processCmd = &cobra.Command{
	Use:   "process [dir] [maxNum]",
	Short: "Appends the training pairs of a folder of songs to a dataset",
	Long: `Appends the training pairs of every midi file in dir (MEDIA_PATH by
default) to the dataset. maxNum limits how many files are processed.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetMediaDir()
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			return errors.New("No directory given and MEDIA_PATH is not set")
		}

		opts := pipeline.Options{
			Width:      processFlags.width,
			SampleRate: processFlags.sampleRate,
			Recursive:  processFlags.recursive,
		}
		if len(args) == 2 {
			maxNum, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrap(err, "maxNum must be a number")
			}
			opts.MaxFiles = maxNum
		}
		if processFlags.withMetadata {
			source, err := db.NewDynamoSource(constants.GetMetadataEndpoint(), constants.MetadataTable)
			if err != nil {
				return err
			}
			opts.Metadata = source
		}

		stats, err := Process(cmd.Context(), dir, processFlags.out, opts)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"files":   stats.NumFiles,
			"songs":   stats.NumSongs,
			"skipped": stats.NumSkipped,
			"pairs":   stats.NumPairs,
		}).Infof("Finished %v", dir)
		return nil
	},
}

// Process runs the directory pipeline and appends what it finds to the
// dataset at out.
func Process(ctx context.Context, dir, out string, opts pipeline.Options) (pipeline.Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := dataset.OpenWriter(out)
	if err != nil {
		return pipeline.Stats{}, err
	}
	stats, err := pipeline.ProcessDirectory(ctx, dir, w, opts)
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = errors.Wrap(closeErr, "Could not close dataset")
	}
	return stats, err
}
