package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pixlift/internal/pipeline"
	"pixlift/internal/tui"
)

var (
	processMaxSize     int64
	processTypes       []string
	processYieldEvery  int
	processPrivacyScan bool
	processManifest    string
)

var processCmd = &cobra.Command{
	Use:   "process <path>",
	Short: "Validate a batch of images and render data-URI previews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := collectFiles(args[0])
		if err != nil {
			return err
		}

		policy, err := buildPolicy()
		if err != nil {
			return err
		}

		updates := make(chan pipeline.ProgressUpdate, 64)
		model := tui.NewModel("pixlift ⬆ process", updates)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		proc := pipeline.NewProcessor(policy, pipeline.Options{
			YieldEvery:  processYieldEvery,
			PrivacyScan: processPrivacyScan,
		}, logger)
		summary, images, err := proc.Process(files, updates)
		close(updates)
		<-uiDone
		if err != nil {
			return err
		}

		rows := []tui.SummaryRow{
			{Label: "Files seen", Value: fmt.Sprintf("%d", summary.Total)},
			{Label: "Accepted", Value: fmt.Sprintf("%d", summary.Accepted)},
			{Label: "Rejected", Value: fmt.Sprintf("%d", summary.Rejected)},
			{Label: "Errors", Value: fmt.Sprintf("%d", summary.Errors)},
			{Label: "Bytes encoded", Value: fmt.Sprintf("%d", summary.BytesEncoded)},
		}
		if processPrivacyScan {
			rows = append(rows, tui.SummaryRow{
				Label: "Privacy flags",
				Value: fmt.Sprintf("%d", summary.PrivacyFlags),
				Warn:  summary.PrivacyFlags > 0,
			})
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary("Batch processed", rows))

		if processManifest != "" {
			if err := writeManifest(processManifest, images); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Preview manifest written to: %s\n", processManifest)
		}

		return nil
	},
}

func buildPolicy() (pipeline.Policy, error) {
	policy := pipeline.DefaultPolicy()
	if processMaxSize > 0 {
		policy.MaxSizeBytes = processMaxSize
	}
	if len(processTypes) > 0 {
		for _, t := range processTypes {
			if !strings.HasPrefix(t, "image/") {
				return pipeline.Policy{}, fmt.Errorf("not an image media type: %q", t)
			}
		}
		policy.AllowedTypes = processTypes
	}
	return policy, nil
}

// writeManifest emits one tab-separated line per accepted image:
// name, size, media type, preview data URI.
func writeManifest(path string, images []pipeline.ProcessedImage) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, img := range images {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", img.Name, img.Size, img.MIMEType, img.PreviewURI)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

func init() {
	processCmd.Flags().Int64Var(&processMaxSize, "max-size", 0, "per-file size cap in bytes (default 5242880)")
	processCmd.Flags().StringSliceVar(&processTypes, "types", nil, "allowed media types (default jpeg/jpg/png/gif/webp)")
	processCmd.Flags().IntVar(&processYieldEvery, "yield-every", 0, "files between scheduler yields (default 10)")
	processCmd.Flags().BoolVar(&processPrivacyScan, "privacy-scan", false, "warn about identifying EXIF metadata in accepted files")
	processCmd.Flags().StringVarP(&processManifest, "output", "o", "", "write a preview manifest to this file")

	rootCmd.AddCommand(processCmd)
}
