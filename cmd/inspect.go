package cmd

import (
	"fmt"
	"strings"

	"github.com/nataliekozlowskii/lab-data-processing/internal/refdata"
	"github.com/spf13/cobra"
)

var inspectWarnings bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <reference-file>",
	Short: "Summarize a reference catalog: groups, sample coverage, lab counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, warnings, err := refdata.Load(args[0])
		if err != nil {
			return err
		}
		samples := catalog.Samples()
		fmt.Printf("Rows: %d\n", catalog.Len())
		fmt.Printf("Samples: %s\n", intList(samples))
		fmt.Printf("Groups: %s\n", strings.Join(catalog.Groups(), ", "))
		fmt.Println("Candidates:")
		for _, cand := range catalog.Candidates() {
			rows := catalog.Rows(cand)
			var covered []int
			labs := rows[0].Labs
			labsVary := false
			for _, r := range rows {
				covered = append(covered, r.Sample)
				if r.Labs != labs {
					labsVary = true
				}
			}
			line := fmt.Sprintf("- %s: %d/%d samples, %d labs", cand, len(covered), len(samples), labs)
			if labsVary {
				line += " (varies)"
			}
			fmt.Println(line)
		}
		if inspectWarnings && len(warnings) > 0 {
			fmt.Println("Warnings:")
			for _, w := range warnings {
				fmt.Printf("⚠ %s\n", w)
			}
		}
		return nil
	},
}

func intList(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectWarnings, "warnings", false, "show parse warnings for skipped lines")
}
