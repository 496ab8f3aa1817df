package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Launch the interactive layout preview",
	Long: `Launch a terminal preview of the toast. The terminal window is the
screen: resize it to watch the toast re-layout. Each cell stands for 8x16
layout units. Changes to the config file are picked up live.

Key bindings:
  o           Toggle landscape
  m           Toggle manual rotation
  i           Toggle image
  s           Toggle safe-area bottom offset
  d, tab      Next device class
  t           Toggle markup parsing
  e           Edit text (enter to apply, esc to cancel)
  r           Reset
  click       Hit-test the clicked cell
  ?           Show help
  q           Quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addLayoutFlags(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	text := layoutOpts.text
	if text == "" {
		text = "Hello from toastui"
	}

	return tui.Run(tui.RunOptions{
		Config:     cfg,
		ConfigPath: configPath(),
		Logger:     logger,
		Options: tui.Options{
			Text:   text,
			Markup: layoutOpts.markup,
			Image:  layoutOpts.image != "" || layoutOpts.imageFile != "",
			Class:  resolveClass(cmd.Context(), cmd.Flags().Changed("device")),
		},
	})
}
