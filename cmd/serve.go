package cmd

import (
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/db"
	"github.com/jsphweid/grooveset/file"
	"github.com/jsphweid/grooveset/pipeline"
	"github.com/jsphweid/grooveset/server"
	"github.com/jsphweid/grooveset/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr         string
	width        int
	sampleRate   float64
	recursive    bool
	withMetadata bool
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", constants.GetServeAddr(), "address to listen on")
	f.IntVar(&serveFlags.width, "width", constants.DefaultRollWidth, "columns per piano roll")
	f.Float64Var(&serveFlags.sampleRate, "fs", constants.DefaultSampleRate, "piano roll columns per second")
	f.BoolVarP(&serveFlags.recursive, "recursive", "r", true, "also serve songs in subdirectories")
	f.BoolVar(&serveFlags.withMetadata, "metadata", false, "look song metadata up in DynamoDB")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serves the measures of a folder of songs as JSON piano rolls",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetMediaDir()
		if len(args) == 1 {
			dir = args[0]
		}
		if dir == "" {
			return errors.New("No directory given and MEDIA_PATH is not set")
		}

		var metadata db.MetadataSource
		if serveFlags.withMetadata {
			source, err := db.NewDynamoSource(constants.GetMetadataEndpoint(), constants.MetadataTable)
			if err != nil {
				return err
			}
			metadata = source
		}

		s, err := NewServer(dir, serveFlags.recursive, metadata, pipeline.Options{
			Width:      serveFlags.width,
			SampleRate: serveFlags.sampleRate,
		})
		if err != nil {
			return err
		}
		return s.ListenAndServe(serveFlags.addr)
	},
}

// NewServer indexes the midi files under dir and serves them by number.
func NewServer(dir string, recursive bool, metadata db.MetadataSource, opts pipeline.Options) (*server.Server, error) {
	paths, err := util.GatherAllMidiPaths(dir, 0, recursive)
	if err != nil {
		return nil, err
	}
	return server.New(dir, file.CreateFileNumMap(paths), metadata, opts), nil
}
