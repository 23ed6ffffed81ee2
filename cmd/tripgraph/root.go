package tripgraph

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tripgraph",
	Short: "Build a travel knowledge graph in Neo4j",
	Long: `tripgraph ingests traveller, hotel, review and visa CSV files and
materializes them as a Neo4j property graph.

Travellers, hotels and reviews become nodes, connected to the cities
and countries they name. Review scores are aggregated per hotel and
visa requirements link countries directly.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
