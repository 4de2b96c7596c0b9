package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
	"github.com/mttcabral/ride-dispatch-simulator/internal/simulator"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ridesim",
	Short: "Groups ride requests into shared trips and simulates them",
	Long: `ridesim is a CLI tool that batches passenger ride requests into shared
vehicle trips under capacity, proximity, delay and efficiency constraints,
then replays each trip's route with a discrete-event simulation and emits a
completion record per ride.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		sim := simulator.NewSimulator(cfg)
		if err := sim.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Int("capacity", 4, "Maximum passengers per vehicle")
	rootCmd.Flags().Float64("speed", 1.0, "Vehicle speed in distance units per time unit")
	rootCmd.Flags().Float64("max-wait-time", 100, "Maximum passenger wait time (reserved)")
	rootCmd.Flags().Float64("max-delay", 10, "Maximum timestamp gap from a ride's anchor request")
	rootCmd.Flags().Float64("max-distance", 5, "Maximum pairwise origin/origin and destination/destination distance")
	rootCmd.Flags().Float64("min-efficiency", 0.5, "Minimum acceptable efficiency for an extended ride")
	rootCmd.Flags().String("input-file", "", "Request workload file")
	rootCmd.Flags().String("input-format", "csv", "Request input format (csv or stream)")
	rootCmd.Flags().String("output-destination", "console", "Output sink (console, json, csv, parquet, kafka, postgres)")
	rootCmd.Flags().String("output-path", "output", "Base directory for file outputs")
	rootCmd.Flags().String("output-folder", "rides", "Folder under the output path")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	bindFlags(rootCmd)
}

// bindFlags mirrors a command's flags into viper under the config file key
// names so flags, file values and environment variables share one namespace.
func bindFlags(cmd *cobra.Command) {
	keys := map[string]string{
		"capacity":           "capacity",
		"speed":              "speed",
		"max-wait-time":      "max_wait_time",
		"max-delay":          "max_delay",
		"max-distance":       "max_distance",
		"min-efficiency":     "min_efficiency",
		"input-file":         "input_file",
		"input-format":       "input_format",
		"output-destination": "output_destination",
		"output-path":        "output_path",
		"output-folder":      "output_folder",
		"kafka-broker-list":  "kafka_broker_list",
	}
	for flagName, key := range keys {
		if f := cmd.Flags().Lookup(flagName); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.AutomaticEnv()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
