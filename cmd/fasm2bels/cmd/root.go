package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fasm2bels",
	Short: "FASM to BEL netlist converter",
	Long: `Reconstructs the gate-level connectivity of a programmed FPGA fabric
from its FASM features and lowers it into a structural Verilog netlist with
matching pin-constraint files.

Examples:
  fasm2bels convert design.fasm --db device.json --package PD64 --output-verilog top.v
  fasm2bels features design.fasm                     # Inspect classified features`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
