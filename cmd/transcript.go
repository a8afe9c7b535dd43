package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ytparallel/align"
	"ytparallel/espeak"
	"ytparallel/lang"
	"ytparallel/transcript"
	"ytparallel/vtt"
	"ytparallel/youtube"
)

var (
	transcriptOutput string
	transcriptNoIPA  bool
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript <url|video-id> <primary-lang> <secondary-lang>",
	Short: "Download, align, and render a parallel transcript",
	Long: `Download the autotranslated subtitle tracks for both languages via yt-dlp,
align their cues by time, annotate the primary language with IPA via espeak
(when available), and write the parallel HTML transcript.

The output filename is derived from the video title and the language codes;
pass -o - to write the HTML to stdout instead.`,
	Args: cobra.ExactArgs(3),
	RunE: runTranscript,
}

func init() {
	transcriptCmd.Flags().StringVarP(&transcriptOutput, "output", "o", "", "Output path ('-' for stdout)")
	transcriptCmd.Flags().BoolVar(&transcriptNoIPA, "no-ipa", false, "Skip espeak IPA annotation")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	ref := args[0]

	primary, err := lang.Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid primary language %q: %v", args[1], err)
	}
	secondary, err := lang.Parse(args[2])
	if err != nil {
		return fmt.Errorf("invalid secondary language %q: %v", args[2], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client := youtube.NewClient(cfg.Downloader.CookiesFromBrowser, cfg.Downloader.Impersonate, cfg.Downloader.Retries, logger)

	paths, workspace, err := client.FetchSubtitles(ctx, ref, []string{primary.Code, secondary.Code})
	if err != nil {
		return err
	}
	defer workspace.Cleanup()

	title, err := client.FetchTitle(ctx, ref)
	if err != nil {
		logger.Warn("could not fetch video title; using the video reference", "error", err)
		title = ref
	}

	primaryCues, err := vtt.ParseFile(paths[primary.Code], cfg.MergeTolerance())
	if err != nil {
		return err
	}

	var secondaryCues []vtt.Cue
	if path, ok := paths[secondary.Code]; ok {
		secondaryCues, err = vtt.ParseFile(path, cfg.MergeTolerance())
		if err != nil {
			return err
		}
	} else {
		logger.Warn("secondary subtitle track not available; rendering primary only",
			"lang", secondary.Code)
	}

	pairs := align.Tracks(primaryCues, secondaryCues, align.Options{
		MatchWindow:   cfg.MatchWindow(),
		PreferOverlap: cfg.Aligner.PreferOverlap,
	})

	doc := transcript.Build(title, primary, secondary, pairs)

	if cfg.IPA.Enabled && !transcriptNoIPA {
		annotator := espeak.New(cfg.IPA.EspeakPath, espeak.VoiceFor(cfg.IPA.Voice, primary.Base), logger)
		for i := range doc.Rows {
			if doc.Rows[i].Primary != "" {
				doc.Rows[i].IPA = annotator.IPA(ctx, vtt.NormalizeText(doc.Rows[i].Primary))
			}
		}
	}

	if transcriptOutput == "-" {
		return transcript.Write(doc, os.Stdout)
	}

	outPath := transcriptOutput
	if outPath == "" {
		outPath = transcript.OutputPath(cfg.Output.Dir, title, primary, secondary)
	}
	if err := transcript.WriteFile(doc, outPath); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d rows)\n", outPath, len(doc.Rows))
	return nil
}
