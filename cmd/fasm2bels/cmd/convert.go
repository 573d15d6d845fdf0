package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/bels"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/fasm"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/pcf"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/verilog"
	"github.com/spf13/cobra"
)

var (
	dbPath        string
	packageName   string
	inputPCF      string
	outputVerilog string
	outputPCF     string
	outputQCF     string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.fasm>",
	Short: "Convert a FASM file into a structural Verilog netlist",
	Long: `Convert decodes the FASM features of a programmed design against the
device database, reconstructs the connectivity between basic elements and
writes a structural Verilog module. Optional PCF/QCF outputs carry the pin
placement of the design's IOs.

Examples:
  fasm2bels convert design.fasm --db device.json --package PD64 --output-verilog top.v
  fasm2bels convert design.fasm --db device.json --package PU64 \
      --input-pcf pins.pcf --output-verilog top.v --output-pcf top.pcf --output-qcf top.qcf`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&dbPath, "db", "", "device database file (JSON)")
	convertCmd.Flags().StringVar(&packageName, "package", "PD64",
		"device package name (PD64, PU64, WR42)")
	convertCmd.Flags().StringVar(&inputPCF, "input-pcf", "",
		"input pin constraints; keeps the user's IO net names")
	convertCmd.Flags().StringVar(&outputVerilog, "output-verilog", "", "output Verilog file")
	convertCmd.Flags().StringVar(&outputPCF, "output-pcf", "", "output PCF file")
	convertCmd.Flags().StringVar(&outputQCF, "output-qcf", "", "output QCF file")
	convertCmd.MarkFlagRequired("db")
	convertCmd.MarkFlagRequired("output-verilog")
}

func runConvert(cmd *cobra.Command, args []string) error {
	db, err := device.Load(dbPath)
	if err != nil {
		return err
	}

	var constraints pcf.Constraints
	if inputPCF != "" {
		constraints, err = pcf.ParseFile(inputPCF)
		if err != nil {
			return err
		}
	}

	parser, err := fasm.NewParser()
	if err != nil {
		return err
	}
	file, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	features, err := fasm.SplitAll(file)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Parsed %d set features from %s\n", len(features), args[0])
	}

	converter, err := bels.NewConverter(db, packageName)
	if err != nil {
		return err
	}
	design, err := converter.Convert(features)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Resolved %d locations with connections, %d with cell settings\n",
			len(design.Connections), len(design.CellSettings))
	}

	gen := verilog.NewGenerator(design, db, constraints)

	if err := os.WriteFile(outputVerilog, []byte(gen.Verilog()), 0o644); err != nil {
		return fmt.Errorf("write verilog: %w", err)
	}
	if outputPCF != "" {
		if err := writeConstraints(outputPCF, gen, pcf.Constraints.Write); err != nil {
			return err
		}
	}
	if outputQCF != "" {
		if err := writeConstraints(outputQCF, gen, pcf.Constraints.WriteQCF); err != nil {
			return err
		}
	}
	return nil
}

func writeConstraints(path string, gen *verilog.Generator, write func(pcf.Constraints, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write constraints: %w", err)
	}
	defer f.Close()

	if err := write(gen.Constraints(), f); err != nil {
		return fmt.Errorf("write constraints: %w", err)
	}
	return nil
}
