package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"labelboard/internal/adapters/chart"
	"labelboard/internal/adapters/viewer"
	"labelboard/internal/application/commands"
	"labelboard/internal/ports"
)

var (
	chartFormat  string
	chartOut     string
	chartOffline bool
	chartOpen    bool
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the label distribution",
}

var chartExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the pie chart to a file",
	Long: `Write the label distribution pie chart as SVG or as an interactive
HTML page.

Examples:
  labelboard-cli chart export
  labelboard-cli chart export --format html --out board.html
  labelboard-cli chart export --offline
  labelboard-cli chart export --format html --open`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var renderer ports.ChartRenderer
		switch strings.ToLower(chartFormat) {
		case "svg":
			renderer = chart.NewSVG(cfg.Chart.Width, cfg.Chart.Height)
		case "html":
			renderer = chart.NewHTML(cfg.Chart.Width, cfg.Chart.Height)
		default:
			return fmt.Errorf("unsupported format %q (expected svg or html)", chartFormat)
		}

		ctx := cmd.Context()
		if chartOffline {
			if _, err := loadOffline(ctx); err != nil {
				return err
			}
		} else if err := load(ctx); err != nil {
			return err
		}

		result, err := commands.NewExportChartCommand(engine, renderer, chartOut).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)

		if chartOpen {
			var v ports.ChartViewer = viewer.New()
			if err := v.Open(result.Path); err != nil {
				return fmt.Errorf("failed to open %s: %w", result.Path, err)
			}
		}
		return nil
	},
}

func init() {
	chartExportCmd.Flags().StringVarP(&chartFormat, "format", "f", "svg", "svg or html")
	chartExportCmd.Flags().StringVarP(&chartOut, "out", "o", "", "output file (default labels.<format>)")
	chartExportCmd.Flags().BoolVar(&chartOffline, "offline", false, "use the last saved snapshot")
	chartExportCmd.Flags().BoolVar(&chartOpen, "open", false, "open the file with the default application")

	rootCmd.AddCommand(chartCmd)
	chartCmd.AddCommand(chartExportCmd)
}
