package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ytparallel/browser"
)

var previewOutput string

var previewCmd = &cobra.Command{
	Use:   "preview <file.html>",
	Short: "Screenshot a rendered transcript in a headless browser",
	Long: `Open a rendered transcript page in a headless browser and capture a
full-page PNG next to it. A quick way to eyeball a transcript on a machine
without a display.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "Screenshot path (default: <file>.png)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	htmlPath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if _, err := os.Stat(htmlPath); err != nil {
		return fmt.Errorf("transcript file %s not found", args[0])
	}

	outPath := previewOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".png"
	}

	session, err := browser.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Screenshot("file://"+htmlPath, outPath); err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", outPath)
	return nil
}
