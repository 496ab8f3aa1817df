package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/geom"
)

var hitCmd = &cobra.Command{
	Use:   "hit X Y",
	Short: "Test whether a point lands on the toast",
	Long: `Lay out a toast and report whether the point (X, Y), in container
coordinates, is inside its frame. Prints "hit <id>" or "miss".

The frame's left and top edges are inside; the right and bottom edges are not.

Examples:
  toastui hit 160 530 --text "Saved"
  toastui hit 10 10 --text "Saved"`,
	Args: cobra.ExactArgs(2),
	RunE: runHit,
}

func init() {
	rootCmd.AddCommand(hitCmd)
	addLayoutFlags(hitCmd)
}

func runHit(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid X %q: %w", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid Y %q: %w", args[1], err)
	}

	run, err := runLayout(cmd)
	if err != nil {
		return err
	}
	defer run.Close()

	if v := run.view.HitTest(geom.Point{X: x, Y: y}); v != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "hit", v.ID)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "miss")
	return nil
}
