package cmd

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/bels"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/fasm"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features <input.fasm>",
	Short: "Parse a FASM file and summarize its features",
	Long: `Features parses a FASM file, classifies every set feature by category
and prints a per-category summary. With --verbose each feature is listed with
its location and signature.

Examples:
  fasm2bels features design.fasm
  fasm2bels features -v design.fasm`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
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

	counts := make(map[string]int)
	byLoc := make(map[device.Loc][]fasm.Feature)
	for _, feature := range features {
		if _, ok := bels.ParseCategory(feature.Category); !ok {
			return fmt.Errorf("unsupported feature category %q at %s",
				feature.Category, feature.Loc)
		}
		counts[feature.Category]++
		byLoc[feature.Loc] = append(byLoc[feature.Loc], feature)
	}

	fmt.Printf("%d set features, %d locations\n", len(features), len(byLoc))

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Printf("  %-10s %d\n", category, counts[category])
	}

	if !verbose {
		return nil
	}

	locs := make([]device.Loc, 0, len(byLoc))
	for loc := range byLoc {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Before(locs[j]) })

	fmt.Println()
	for _, loc := range locs {
		fmt.Printf("%s:\n", loc)
		for _, feature := range byLoc[loc] {
			fmt.Printf("  %-10s %s\n", feature.Category, feature.Signature)
		}
	}
	return nil
}
