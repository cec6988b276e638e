package cmd

import (
	"fmt"
	"os"

	"github.com/nataliekozlowskii/lab-data-processing/internal/match"
	"github.com/nataliekozlowskii/lab-data-processing/internal/refdata"
	"github.com/nataliekozlowskii/lab-data-processing/internal/report"
	"github.com/nataliekozlowskii/lab-data-processing/internal/sampledata"
	"github.com/nataliekozlowskii/lab-data-processing/internal/utils"
	"github.com/spf13/cobra"
)

var (
	matchReference string
	matchMetric    string
	matchTop       int
	matchPercent   float64
	matchOutput    string
	matchFormat    string
)

var matchCmd = &cobra.Command{
	Use:   "match <samples-file>",
	Short: "Rank reference groups by closeness to a measured sample series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		samplesPath := args[0]

		refPath := matchReference
		if refPath == "" && cfg != nil {
			refPath = cfg.ReferencePath
		}
		if refPath == "" {
			return fmt.Errorf("no reference catalog: pass --reference or set reference_path in config")
		}

		catalog, warnings, err := refdata.Load(refPath)
		if err != nil {
			return fmt.Errorf("load reference catalog: %w", err)
		}
		if debug {
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "⚠ %s: %s\n", refPath, w)
			}
		}
		series, err := sampledata.Load(samplesPath)
		if err != nil {
			return fmt.Errorf("load samples: %w", err)
		}

		opt, metricName, err := runOptions(cmd)
		if err != nil {
			return err
		}
		res, err := match.Run(catalog, series, opt)
		if err != nil {
			return err
		}

		rep := report.New(res)
		rep.ReferencePath = refPath
		rep.SamplesPath = samplesPath
		rep.Metric = metricName
		rep.WithinPercent = opt.WithinPercent
		rep.SeriesLen = series.Len()
		rep.SeriesCount = series.Count()
		rep.Top = matchTop
		if rep.Top == 0 && cfg != nil {
			rep.Top = cfg.Top
		}

		format := matchFormat
		if format == "" && cfg != nil {
			format = cfg.Format
		}
		var out []byte
		switch format {
		case "", "text":
			out = []byte(rep.Render())
		case "markdown", "md":
			out = []byte(rep.Markdown())
		case "json":
			out, err = rep.JSON()
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use text|markdown|json)", format)
		}

		if matchOutput != "" {
			if err := utils.SafeWriteFile(matchOutput, out); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", matchOutput)
			return nil
		}
		fmt.Print(string(out))
		return nil
	},
}

// runOptions merges config defaults with explicit flags. Flags win only
// when the user set them, matching config precedence elsewhere.
func runOptions(cmd *cobra.Command) (match.Options, string, error) {
	opt := match.DefaultOptions()
	metricName := "zscore"
	if cfg != nil {
		if cfg.Metric != "" {
			metricName = cfg.Metric
		}
		if cfg.WithinPercent > 0 {
			opt.WithinPercent = cfg.WithinPercent
		}
	}
	if cmd.Flags().Changed("metric") {
		metricName = matchMetric
	}
	if cmd.Flags().Changed("within-percent") {
		opt.WithinPercent = matchPercent
	}
	m, err := match.MetricByName(metricName)
	if err != nil {
		return opt, "", err
	}
	opt.Metric = m
	return opt, metricName, nil
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVarP(&matchReference, "reference", "r", "", "reference catalog file (survey report .txt or .csv/.tsv)")
	matchCmd.Flags().StringVarP(&matchMetric, "metric", "m", "zscore", "deviation metric: zscore|percent|absolute")
	matchCmd.Flags().IntVarP(&matchTop, "top", "t", 0, "show only the top N matches (0 = all)")
	matchCmd.Flags().Float64Var(&matchPercent, "within-percent", 30, "percent window around the mean for the within-percent count")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "optional path to write the report")
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", "", "report format: text|markdown|json")
}
