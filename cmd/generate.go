package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mttcabral/ride-dispatch-simulator/internal/factories"
	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic request workload",
	Long: `generate writes a CSV request workload suitable as ridesim input.
Origins and destinations cluster around randomly placed hotspots so the
grouping heuristic has pooling opportunities.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		factory := &factories.RequestFactory{}
		requests := factory.CreateRequests(cfg)

		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		file := os.Stdout
		if out != "" {
			file, err = os.Create(out)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer file.Close()
		}

		w := csv.NewWriter(file)
		for _, req := range requests {
			record := []string{
				req.ID,
				strconv.FormatInt(req.Timestamp, 10),
				strconv.FormatFloat(req.Origin.X, 'f', -1, 64),
				strconv.FormatFloat(req.Origin.Y, 'f', -1, 64),
				strconv.FormatFloat(req.Destination.X, 'f', -1, 64),
				strconv.FormatFloat(req.Destination.Y, 'f', -1, 64),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	},
}

func init() {
	generateCmd.Flags().String("out", "", "Output file (defaults to stdout)")
	generateCmd.Flags().Int("requests", 100, "Number of requests to generate")
	generateCmd.Flags().Int("hotspots", 5, "Number of demand hotspots")
	generateCmd.Flags().Int64("time-span", 1000, "Timestamp range of the workload")
	generateCmd.Flags().Float64("area-size", 100, "Side length of the square simulation area")
	generateCmd.Flags().Float64("spread", 0, "Scatter around each hotspot (0 derives from area size)")
	generateCmd.Flags().Int64("seed", 42, "Random seed")

	_ = viper.BindPFlag("generator_requests", generateCmd.Flags().Lookup("requests"))
	_ = viper.BindPFlag("generator_hotspots", generateCmd.Flags().Lookup("hotspots"))
	_ = viper.BindPFlag("generator_time_span", generateCmd.Flags().Lookup("time-span"))
	_ = viper.BindPFlag("generator_area_size", generateCmd.Flags().Lookup("area-size"))
	_ = viper.BindPFlag("generator_spread", generateCmd.Flags().Lookup("spread"))
	_ = viper.BindPFlag("seed", generateCmd.Flags().Lookup("seed"))

	rootCmd.AddCommand(generateCmd)
}
