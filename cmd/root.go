package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "linkrank <corpus>",
	Short: "Estimate PageRank for a corpus of linked pages",
	Long: `Linkrank ranks the pages of a corpus twice: once by sampling a random
surfer's walk and once by iterating the PageRank equation to convergence.

The corpus is either a directory of .html files, whose anchor tags define the
links, or a .toml manifest listing each page's links under [pages].`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .linkrank.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.Float64("damping", 0.85, "probability of following a link instead of jumping")
	pf.IntP("samples", "n", 10000, "number of pages visited by the sampling estimator")
	pf.Uint64("seed", 0, "random seed for sampling (0 picks one)")
	pf.Float64("epsilon", 0.001, "convergence threshold for the iterative estimator")
	pf.Int("max-iterations", 1000, "iteration cap for the iterative estimator")
	pf.String("criterion", "max", "convergence test: max (per-page delta) or total (summed delta)")
	pf.String("telemetry", "", "append JSONL run events to this file")

	for key, flag := range map[string]string{
		"verbose":        "verbose",
		"damping":        "damping",
		"samples":        "samples",
		"seed":           "seed",
		"epsilon":        "epsilon",
		"max_iterations": "max-iterations",
		"criterion":      "criterion",
		"telemetry":      "telemetry",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".linkrank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("LINKRANK")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
