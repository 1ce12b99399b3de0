package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/corpus"
)

var graphCmd = &cobra.Command{
	Use:   "graph <corpus>",
	Short: "Print a corpus's link graph as a TOML manifest",
	Long: `Crawls the corpus and prints the resulting link graph, after dropping
self links and links leaving the corpus, in the manifest format accepted by
linkrank. Useful for freezing an HTML corpus or checking what was crawled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := corpus.Load(args[0])
		if err != nil {
			return err
		}
		data, err := corpus.MarshalManifest(g)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
