package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/device"
)

var devicesOpts struct {
	detect bool
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List device classes and their layout constants",
	Long: `List the device profile table: font size and the distance between
the toast and the bottom of the screen in each orientation.

With --detect, also query systemd-hostnamed for this machine's chassis and
show the class it maps to.`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().BoolVar(&devicesOpts.detect, "detect", false,
		"Detect this machine's device class over D-Bus")
}

func runDevices(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tFONT\tPORTRAIT\tLANDSCAPE")
	for _, class := range device.Classes() {
		p := class.Profile()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			class,
			humanize.Ftoa(p.FontSize),
			humanize.Ftoa(p.BottomOffsetPortrait),
			humanize.Ftoa(p.BottomOffsetLandscape),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !devicesOpts.detect {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	class, err := device.DetectClass(ctx)
	if err != nil {
		return fmt.Errorf("failed to detect device class: %w", err)
	}
	fmt.Fprintf(out, "\ndetected: %s\n", class)
	return nil
}
