package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/nataliekozlowskii/lab-data-processing/internal/config"
	"github.com/nataliekozlowskii/lab-data-processing/internal/match"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set LabMatch configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("metric: %s\n", cfg.Metric)
		fmt.Printf("top: %d\n", cfg.Top)
		fmt.Printf("within_percent: %.1f\n", cfg.WithinPercent)
		fmt.Printf("format: %s\n", cfg.Format)
		if cfg.ReferencePath != "" {
			fmt.Printf("reference_path: %s\n", cfg.ReferencePath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "metric":
			if _, err := match.MetricByName(val); err != nil {
				return err
			}
			cfg.Metric = val
		case "top":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for top: %v", val)
			}
			cfg.Top = i
		case "within_percent":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid percent for within_percent: %v", val)
			}
			cfg.WithinPercent = f
		case "format":
			switch val {
			case "text", "markdown", "md", "json":
				cfg.Format = val
			default:
				return fmt.Errorf("invalid format: %s (use text|markdown|json)", val)
			}
		case "reference_path":
			cfg.ReferencePath = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
