package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "grooveset",
	Short: "Turns midi songs into measure sized training pairs",
	Long: `grooveset cuts midi songs into measures, splits every measure into its
instruments and drums and renders them as piano rolls. The process command
turns a folder of songs into a dataset of (instrument, drums) pairs.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
