package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytparallel/vtt"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.vtt>",
	Short: "Parse a subtitle file and show its cleaned cues",
	Long: `Parse one VTT file the way the transcript pipeline does: formatting tags
stripped and repeated auto-caption cues merged. Useful for checking what a
track looks like before aligning it.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cues, err := vtt.ParseFile(args[0], cfg.MergeTolerance())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(cues))
	for _, cue := range cues {
		rows = append(rows, []string{
			vtt.FormatTimestamp(cue.Start),
			vtt.FormatTimestamp(cue.End),
			truncate(vtt.NormalizeText(cue.Text), 70),
		})
	}
	fmt.Println(renderTable(
		[]string{"Start", "End", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft},
	))
	fmt.Printf("%d cues after merging\n", len(cues))
	return nil
}
