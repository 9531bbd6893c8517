package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pixlift/internal/pipeline"
	"pixlift/internal/tui"
)

var uploadDelay time.Duration

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Simulate uploading a batch of images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := collectFiles(args[0])
		if err != nil {
			return err
		}

		updates := make(chan pipeline.ProgressUpdate, 64)
		model := tui.NewModel("pixlift ⬆ upload", updates)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		uploader := pipeline.NewUploader(uploadDelay, logger)
		results := uploader.UploadAll(files, updates)
		close(updates)
		<-uiDone

		failed := 0
		for _, res := range results {
			if res.Failed() {
				failed++
				fmt.Fprintf(os.Stdout, "%s %s\n  %s\n",
					uploadFailStyle.Render("✗"),
					uploadFileStyle.Render(res.Filename),
					uploadDimStyle.Render(res.Err.Error()),
				)
				continue
			}
			fmt.Fprintf(os.Stdout, "%s %s\n  %s\n",
				uploadOKStyle.Render("✓"),
				uploadFileStyle.Render(res.Filename),
				uploadDimStyle.Render(fmt.Sprintf("id=%s size=%d uri-bytes=%d", res.UploadID, res.Size, len(res.URL))),
			)
		}

		fmt.Fprintln(os.Stdout, tui.RenderSummary("Batch uploaded", []tui.SummaryRow{
			{Label: "Uploaded", Value: fmt.Sprintf("%d", len(results)-failed)},
			{Label: "Failed", Value: fmt.Sprintf("%d", failed), Warn: failed > 0},
		}))
		return nil
	},
}

var (
	uploadFileStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	uploadOKStyle   = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	uploadFailStyle = lipgloss.NewStyle().Foreground(tui.ColorError)
	uploadDimStyle  = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	uploadCmd.Flags().DurationVar(&uploadDelay, "delay", 0, "simulated per-file network latency (default 500ms)")

	rootCmd.AddCommand(uploadCmd)
}
