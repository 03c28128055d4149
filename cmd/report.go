package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/dataset"
	"github.com/jsphweid/grooveset/util"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaf00"))
	reportKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888")).Width(24)
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [dataset]",
	Short: "Summarizes a dataset",
	Long:  `Summarizes a dataset (DATASET_PATH by default)`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := constants.GetDatasetPath()
		if len(args) == 1 {
			path = args[0]
		}
		summary, err := dataset.Summarize(path)
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), path, summary)
		return nil
	},
}

func reportLine(w io.Writer, key string, value any) {
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, reportKeyStyle.Render(key), fmt.Sprint(value)))
}

// instruments sorted by how often they show up, then by name
func rankInstruments(counts map[string]int) []string {
	names := maps.Keys(counts)
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func report(w io.Writer, path string, s dataset.Summary) {
	fmt.Fprintln(w, reportTitleStyle.Render(path))
	reportLine(w, "bytes", s.NumBytes)
	reportLine(w, "songs", s.NumSongs)
	reportLine(w, "pairs", s.NumRecords)
	if s.NumSongs > 0 {
		reportLine(w, "pairs per song", fmt.Sprintf("%.1f", float64(s.NumRecords)/float64(s.NumSongs)))
	}
	reportLine(w, "silent instrument rolls", s.SilentInputs)
	reportLine(w, "silent drum rolls", s.SilentTargets)

	counts := maps.Values(s.Instruments)
	reportLine(w, "instruments", fmt.Sprintf("%v kinds, %v pairs", len(counts), util.Sum(counts)))
	for _, name := range rankInstruments(s.Instruments) {
		reportLine(w, "  "+name, s.Instruments[name])
	}
}
