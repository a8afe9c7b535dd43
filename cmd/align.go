package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ytparallel/align"
	"ytparallel/lang"
	"ytparallel/transcript"
	"ytparallel/vtt"
)

var (
	alignPrimaryLang   string
	alignSecondaryLang string
	alignTable         bool
	alignOutput        string
)

var alignCmd = &cobra.Command{
	Use:   "align <primary.vtt> <secondary.vtt>",
	Short: "Align two local subtitle files",
	Long: `Align the cues of two already-downloaded VTT files and either print the
pairing as a table or render the parallel HTML page. Language codes are
inferred from yt-dlp-style filenames (video.da.vtt) and can be overridden
with flags.`,
	Args: cobra.ExactArgs(2),
	RunE: runAlign,
}

func init() {
	alignCmd.Flags().StringVar(&alignPrimaryLang, "primary-lang", "", "Primary language code (default: from filename)")
	alignCmd.Flags().StringVar(&alignSecondaryLang, "secondary-lang", "", "Secondary language code (default: from filename)")
	alignCmd.Flags().BoolVar(&alignTable, "table", false, "Print the pairing as a table instead of writing HTML")
	alignCmd.Flags().StringVarP(&alignOutput, "output", "o", "", "Output HTML path ('-' for stdout)")
}

// langFromFilename pulls the language code out of yt-dlp's naming scheme,
// e.g. "video.da.vtt" → "da".
func langFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".vtt")
	if ext := filepath.Ext(base); len(ext) > 1 {
		return ext[1:]
	}
	return ""
}

func runAlign(cmd *cobra.Command, args []string) error {
	primaryPath, secondaryPath := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	primaryCode := alignPrimaryLang
	if primaryCode == "" {
		primaryCode = langFromFilename(primaryPath)
	}
	secondaryCode := alignSecondaryLang
	if secondaryCode == "" {
		secondaryCode = langFromFilename(secondaryPath)
	}
	if primaryCode == "" || secondaryCode == "" {
		return fmt.Errorf("cannot infer language codes from %q and %q; use --primary-lang/--secondary-lang", primaryPath, secondaryPath)
	}

	primary, err := lang.Parse(primaryCode)
	if err != nil {
		return fmt.Errorf("invalid primary language %q: %v", primaryCode, err)
	}
	secondary, err := lang.Parse(secondaryCode)
	if err != nil {
		return fmt.Errorf("invalid secondary language %q: %v", secondaryCode, err)
	}

	primaryCues, err := vtt.ParseFile(primaryPath, cfg.MergeTolerance())
	if err != nil {
		return err
	}
	secondaryCues, err := vtt.ParseFile(secondaryPath, cfg.MergeTolerance())
	if err != nil {
		return err
	}

	pairs := align.Tracks(primaryCues, secondaryCues, align.Options{
		MatchWindow:   cfg.MatchWindow(),
		PreferOverlap: cfg.Aligner.PreferOverlap,
	})

	if alignTable {
		rows := make([][]string, 0, len(pairs))
		for _, pair := range pairs {
			var p, s string
			if pair.Primary != nil {
				p = vtt.NormalizeText(pair.Primary.Text)
			}
			if pair.Secondary != nil {
				s = vtt.NormalizeText(pair.Secondary.Text)
			}
			rows = append(rows, []string{
				vtt.FormatTimestamp(pair.Anchor()),
				truncate(p, 46),
				truncate(s, 46),
			})
		}
		fmt.Println(renderTable(
			[]string{"Time", primary.DisplayName(), secondary.DisplayName()},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft},
		))
		return nil
	}

	title := strings.TrimSuffix(filepath.Base(primaryPath), ".vtt")
	title = strings.TrimSuffix(title, "."+primaryCode)
	doc := transcript.Build(title, primary, secondary, pairs)

	if alignOutput == "-" {
		return transcript.Write(doc, cmd.OutOrStdout())
	}
	outPath := alignOutput
	if outPath == "" {
		outPath = transcript.OutputPath(cfg.Output.Dir, title, primary, secondary)
	}
	if err := transcript.WriteFile(doc, outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d rows)\n", outPath, len(doc.Rows))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
