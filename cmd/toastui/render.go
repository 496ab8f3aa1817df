package main

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/render"
)

var renderOpts struct {
	out    string
	screen string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a laid-out toast to a PNG",
	Long: `Lay out a toast and draw it on a blank screen the size of the container.
Text is always measured with font metrics so the drawing matches the layout.

Examples:
  toastui render --text "Saved" --out toast.png
  toastui render --text "<b>Copied</b> to clipboard" --markup \
    --image-file icon.png --device pad --width 768 --height 1024`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addLayoutFlags(renderCmd)

	renderCmd.Flags().StringVarP(&renderOpts.out, "out", "o", "toast.png", "Output PNG path")
	renderCmd.Flags().StringVar(&renderOpts.screen, "screen", render.DefaultScreenColor.Hex(),
		"Screen background colour (#rrggbb)")
}

func runRender(cmd *cobra.Command, args []string) error {
	screen, err := colorful.Hex(renderOpts.screen)
	if err != nil {
		return fmt.Errorf("invalid screen colour %q: %w", renderOpts.screen, err)
	}

	layoutOpts.measure = "font"
	run, err := runLayout(cmd)
	if err != nil {
		return err
	}
	defer run.Close()

	frame, _ := run.view.Frame()
	scene := render.Scene{
		Placed:  frame,
		Content: run.view.Content,
		Style:   run.view.Style,
		Screen:  screen,
	}

	if err := render.NewRenderer(run.fonts).WriteFile(renderOpts.out, scene); err != nil {
		return err
	}

	logger.Info("rendered toast", "path", renderOpts.out, "id", run.view.ID)
	fmt.Fprintln(cmd.OutOrStdout(), renderOpts.out)
	return nil
}
