package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/output"
)

var layoutFormat string

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Compute and print a toast's placed frame",
	Long: `Lay out a toast and print its frame.

The frame is in container coordinates; the background, text and image
rectangles are relative to the frame's origin.

Examples:
  # Phone portrait, default config screen
  toastui layout --text "Saved" --device phone

  # Landscape iPad-sized screen with an image, as JSON
  toastui layout --text "Copied" --image check --device pad \
    --width 1024 --height 768 --landscape --format json

  # Terminal cells (8x16 units each) instead of font metrics
  toastui layout --text "Hello" --measure cell`,
	RunE: runLayoutCmd,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	addLayoutFlags(layoutCmd)

	layoutCmd.Flags().StringVarP(&layoutFormat, "format", "f", "plain",
		"Output format (plain, json, yaml)")
}

func runLayoutCmd(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(layoutFormat)
	if err != nil {
		return err
	}

	run, err := runLayout(cmd)
	if err != nil {
		return err
	}
	defer run.Close()

	return output.NewFormatter(format).Format(cmd.OutOrStdout(), result(run))
}

// result converts a layout run into formatter input.
func result(run *layoutRun) output.Result {
	frame, _ := run.view.Frame()
	return output.Result{
		ID:             run.view.ID,
		Device:         run.class.String(),
		Landscape:      run.orientation.Landscape,
		ManualRotation: run.orientation.ManualRotation,
		Text:           run.view.Content.Text.String(),
		HasImage:       run.view.Content.HasImage(),
		Placed:         frame,
	}
}
